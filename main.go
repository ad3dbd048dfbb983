// pathtracer renders one of the built-in scenes to an image file.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/golang/glog"
	"github.com/shirou/gopsutil/cpu"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/xerrors"

	"github.com/df07/go-offline-pathtracer/pkg/core"
	"github.com/df07/go-offline-pathtracer/pkg/integrator"
	"github.com/df07/go-offline-pathtracer/pkg/loaders"
	"github.com/df07/go-offline-pathtracer/pkg/renderer"
	"github.com/df07/go-offline-pathtracer/pkg/scene"
)

const tracerName = "github.com/df07/go-offline-pathtracer"

// options holds the parsed command line
type options struct {
	output     string
	width      int
	height     int
	samples    int
	maxDepth   int
	sceneName  string
	seed       int64
	workers    int
	background string
	texture    string
	listScenes bool
}

func newRootCommand() *cobra.Command {
	opts := &options{}
	defaults := renderer.DefaultSamplingConfig()

	cmd := &cobra.Command{
		Use:           "pathtracer",
		Short:         "Render a built-in scene with a Monte Carlo path tracer",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true, // main reports the error through glog
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.listScenes {
				for _, name := range scene.Names() {
					fmt.Fprintf(cmd.OutOrStdout(), "%-16s %s\n", name, scene.Describe(name))
				}
				return nil
			}
			return run(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.output, "output", "o", "output.png", "Output image; format chosen by extension")
	flags.IntVar(&opts.width, "width", defaults.Width, "Image width in pixels")
	flags.IntVar(&opts.height, "height", defaults.Height, "Image height in pixels")
	flags.IntVar(&opts.samples, "samples", defaults.SamplesPerPixel, "Samples per pixel")
	flags.IntVar(&opts.maxDepth, "max-depth", defaults.MaxDepth, "Maximum ray bounce depth")
	flags.StringVar(&opts.sceneName, "scene", "cornell", "Scene to render; see --list-scenes")
	flags.Int64Var(&opts.seed, "seed", defaults.Seed, "Seed for scene layout and sampling")
	flags.IntVar(&opts.workers, "workers", 0, "Render goroutines; 0 uses every logical CPU")
	flags.StringVar(&opts.background, "background", "", "Background override: black or sky (default: per scene)")
	flags.StringVar(&opts.texture, "texture", "", "Image texture for scenes with textured spheres")
	flags.BoolVar(&opts.listScenes, "list-scenes", false, "List available scenes and exit")

	// Expose glog's -v, -logtostderr and friends
	cmd.PersistentFlags().AddGoFlagSet(flag.CommandLine)
	return cmd
}

func (o *options) validate() error {
	positive := []struct {
		name  string
		value int
	}{
		{"width", o.width},
		{"height", o.height},
		{"samples", o.samples},
		{"max-depth", o.maxDepth},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return xerrors.Errorf("--%s must be a positive integer, got %d", p.name, p.value)
		}
	}
	if o.workers < 0 {
		return xerrors.Errorf("--workers must not be negative, got %d", o.workers)
	}
	if _, err := backgroundFor(o.background, nil); err != nil {
		return err
	}
	if o.listScenes {
		return nil
	}

	ext := strings.ToLower(filepath.Ext(o.output))
	for _, supported := range loaders.SupportedOutputExtensions() {
		if ext == supported {
			return nil
		}
	}
	return xerrors.Errorf("--output %q: %w", o.output, loaders.ErrUnsupportedFormat)
}

// backgroundFor resolves the --background flag, falling back to the scene default
func backgroundFor(name string, s *scene.Scene) (integrator.Background, error) {
	switch name {
	case "":
		if s == nil {
			return integrator.BackgroundBlack, nil
		}
		return s.Background, nil
	case "black":
		return integrator.BackgroundBlack, nil
	case "sky":
		return integrator.SkyGradient, nil
	default:
		return nil, xerrors.Errorf("--background must be black or sky, got %q", name)
	}
}

// defaultWorkers counts logical CPUs, preferring the host view over the Go runtime's
func defaultWorkers() int {
	n, err := cpu.Counts(true)
	if err != nil || n <= 0 {
		glog.Warningf("Could not count CPUs (%v), using runtime.NumCPU", err)
		return runtime.NumCPU()
	}
	return n
}

func logHost() {
	infos, err := cpu.Info()
	if err != nil || len(infos) == 0 {
		glog.V(1).Infof("CPU model unavailable: %v", err)
		return
	}
	glog.Infof("Host CPU: %s", infos[0].ModelName)
}

func run(ctx context.Context, opts *options) error {
	if ctx == nil {
		ctx = context.Background()
	}
	tracer := otel.Tracer(tracerName)
	var span trace.Span
	ctx, span = tracer.Start(ctx, "pathtracer.run")
	defer span.End()

	config := renderer.SamplingConfig{
		Width:           opts.width,
		Height:          opts.height,
		SamplesPerPixel: opts.samples,
		MaxDepth:        opts.maxDepth,
		NumWorkers:      opts.workers,
		Seed:            opts.seed,
	}
	if config.NumWorkers == 0 {
		config.NumWorkers = defaultWorkers()
	}
	logHost()

	raytracer, err := buildRaytracer(ctx, opts, config)
	if err != nil {
		return err
	}

	_, renderSpan := tracer.Start(ctx, "pathtracer.render")
	img, stats, err := raytracer.Render()
	renderSpan.End()
	if err != nil {
		return xerrors.Errorf("while rendering: %w", err)
	}
	glog.Infof("Average luminance %.4f, %.1f samples per pixel, %d workers, %v",
		stats.AverageLuminance, stats.AverageSamples, stats.Workers, stats.Duration)

	_, encodeSpan := tracer.Start(ctx, "pathtracer.encode")
	encodeSpan.SetAttributes(attribute.String("output", opts.output))
	defer encodeSpan.End()
	fallback, err := saveRender(opts.output, img)
	if err != nil {
		glog.Errorf("Render finished but the image could not be written: %v", err)
		if fallback != "" {
			glog.Warningf("Render kept in %s", fallback)
		}
		return err
	}
	glog.Infof("Render saved as %s", opts.output)
	return nil
}

// saveRender writes img to output. If that fails the pixels are written as a
// PNG in the temp directory and its path is returned along with the error.
func saveRender(output string, img image.Image) (string, error) {
	err := loaders.SaveImage(output, img)
	if err == nil {
		return "", nil
	}
	err = xerrors.Errorf("while saving render to %q: %w", output, err)

	f, tmpErr := os.CreateTemp("", "pathtracer-*.png")
	if tmpErr != nil {
		glog.Errorf("Could not create fallback file: %v", tmpErr)
		return "", err
	}
	fallback := f.Name()
	f.Close()
	if saveErr := loaders.SaveImage(fallback, img); saveErr != nil {
		glog.Errorf("Could not write fallback file: %v", saveErr)
		os.Remove(fallback)
		return "", err
	}
	return fallback, err
}

// buildRaytracer creates the scene, its BVH, the camera and the integrator
func buildRaytracer(ctx context.Context, opts *options, config renderer.SamplingConfig) (*renderer.Raytracer, error) {
	_, span := otel.Tracer(tracerName).Start(ctx, "pathtracer.buildScene")
	defer span.End()

	s, err := scene.Build(opts.sceneName, scene.Options{
		AspectRatio: float32(config.Width) / float32(config.Height),
		Seed:        config.Seed,
		TexturePath: opts.texture,
	})
	if err != nil {
		return nil, err
	}
	span.SetAttributes(
		attribute.String("scene", s.Name),
		attribute.Int("objects", len(s.Objects)),
	)

	world, err := s.World(core.NewSeededSampler(config.Seed))
	if err != nil {
		return nil, err
	}
	stats := world.Stats()
	glog.Infof("Scene %s: %d objects, BVH %d nodes, depth %d", s.Name, len(s.Objects), stats.TotalNodes, stats.MaxDepth)

	background, err := backgroundFor(opts.background, s)
	if err != nil {
		return nil, err
	}
	integ := integrator.NewPathTracingIntegrator(config.MaxDepth, background)
	return renderer.NewRaytracer(world, renderer.NewCamera(s.Camera), integ, config), nil
}

func main() {
	glog.CopyStandardLogTo("INFO")
	defer glog.Flush()

	// glog reads its flags from the standard flag set
	flag.CommandLine.Parse([]string{})

	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		glog.Flush()
		glog.Exitf("pathtracer: %v", err)
	}
}
