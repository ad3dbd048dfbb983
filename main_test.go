package main

import (
	"bytes"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/xerrors"

	"github.com/df07/go-offline-pathtracer/pkg/core"
	"github.com/df07/go-offline-pathtracer/pkg/integrator"
	"github.com/df07/go-offline-pathtracer/pkg/loaders"
	"github.com/df07/go-offline-pathtracer/pkg/scene"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestFlagValidation(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		expectError bool
	}{
		{"zero width", []string{"--width", "0"}, true},
		{"negative height", []string{"--height", "-5"}, true},
		{"zero samples", []string{"--samples", "0"}, true},
		{"zero depth", []string{"--max-depth", "0"}, true},
		{"negative workers", []string{"--workers", "-1"}, true},
		{"non-numeric width", []string{"--width", "wide"}, true},
		{"unknown background", []string{"--background", "purple"}, true},
		{"unsupported output", []string{"-o", "render.gif"}, true},
		{"stray argument", []string{"cornell"}, true},
		{"list scenes", []string{"--list-scenes"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if (err != nil) != tt.expectError {
				t.Errorf("execute(%v) error = %v, expectError %t", tt.args, err, tt.expectError)
			}
		})
	}
}

func TestErrorsAreNotPrintedByCobra(t *testing.T) {
	out, err := execute(t, "--width", "0")
	if err == nil {
		t.Fatal("Expected a validation error")
	}
	if out != "" {
		t.Errorf("Expected no command output, got:\n%s", out)
	}
}

func TestUnsupportedOutputFailsBeforeRendering(t *testing.T) {
	output := filepath.Join(t.TempDir(), "render.gif")
	_, err := execute(t, "-o", output)
	if !xerrors.Is(err, loaders.ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
	if _, statErr := os.Stat(output); !os.IsNotExist(statErr) {
		t.Error("Expected no output file")
	}
}

func TestListScenes(t *testing.T) {
	out, err := execute(t, "--list-scenes")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	for _, name := range scene.Names() {
		if !strings.Contains(out, name) {
			t.Errorf("Expected %q in scene list:\n%s", name, out)
		}
	}
}

func rayDown() core.Ray {
	return core.NewRay(core.Vec3{}, core.NewVec3(0, -1, 0))
}

func TestBackgroundFor(t *testing.T) {
	s := &scene.Scene{Background: integrator.SkyGradient}

	bg, err := backgroundFor("", s)
	if err != nil {
		t.Fatalf("backgroundFor: %v", err)
	}
	if got, want := bg(rayDown()), integrator.SkyGradient(rayDown()); got != want {
		t.Errorf("Expected the scene default background %v, got %v", want, got)
	}

	bg, err = backgroundFor("black", s)
	if err != nil {
		t.Fatalf("backgroundFor: %v", err)
	}
	if got := bg(rayDown()); got.Luminance() != 0 {
		t.Errorf("Expected black, got %v", got)
	}

	if _, err := backgroundFor("sky", nil); err != nil {
		t.Errorf("backgroundFor(sky): %v", err)
	}
}

func TestRender_EndToEnd(t *testing.T) {
	output := filepath.Join(t.TempDir(), "cornell.png")
	_, err := execute(t,
		"--scene", "cornell",
		"--width", "8",
		"--height", "8",
		"--samples", "1",
		"--max-depth", "3",
		"--workers", "2",
		"-o", output,
	)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	data, err := loaders.LoadImage(output)
	if err != nil {
		t.Fatalf("LoadImage: %v", err)
	}
	if data.Width != 8 || data.Height != 8 {
		t.Errorf("Expected 8x8 image, got %dx%d", data.Width, data.Height)
	}
}

func TestRender_UnknownScene(t *testing.T) {
	_, err := execute(t, "--scene", "nonexistent", "-o", filepath.Join(t.TempDir(), "out.png"))
	if !xerrors.Is(err, scene.ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
}

func TestSaveRender_FallsBackToTempDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TMPDIR", dir)

	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	fallback, err := saveRender(filepath.Join(dir, "missing", "out.png"), img)
	if err == nil {
		t.Fatal("Expected an error writing into a missing directory")
	}
	if fallback == "" || filepath.Dir(fallback) != dir {
		t.Fatalf("Expected a fallback file in %s, got %q", dir, fallback)
	}

	data, err := loaders.LoadImage(fallback)
	if err != nil {
		t.Fatalf("LoadImage(fallback): %v", err)
	}
	if data.Width != 4 || data.Height != 2 {
		t.Errorf("Expected 4x2 fallback image, got %dx%d", data.Width, data.Height)
	}
}

func TestSaveRender_Success(t *testing.T) {
	output := filepath.Join(t.TempDir(), "out.bmp")
	fallback, err := saveRender(output, image.NewRGBA(image.Rect(0, 0, 2, 2)))
	if err != nil || fallback != "" {
		t.Fatalf("saveRender = (%q, %v), want no fallback and no error", fallback, err)
	}
	if _, err := os.Stat(output); err != nil {
		t.Errorf("Expected output file: %v", err)
	}
}

func TestRender_UnwritableOutput(t *testing.T) {
	t.Setenv("TMPDIR", t.TempDir())
	output := filepath.Join(t.TempDir(), "missing", "out.png")
	_, err := execute(t, "--scene", "cornell", "--width", "4", "--height", "4", "--samples", "1", "-o", output)
	if err == nil {
		t.Error("Expected an error writing into a missing directory")
	}
}
