package renderer

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/df07/go-offline-pathtracer/pkg/core"
)

var approx = cmpopts.EquateApprox(0, 1e-5)

func pinholeConfig() CameraConfig {
	return CameraConfig{
		LookFrom:    core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.NewVec3(0, 1, 0),
		VFov:        90,
		AspectRatio: 2,
	}
}

func TestCameraGetCameraForward(t *testing.T) {
	camera := NewCamera(pinholeConfig())
	if diff := cmp.Diff(core.NewVec3(0, 0, -1), camera.GetCameraForward(), approx); diff != "" {
		t.Errorf("unexpected forward direction (-want +got):\n%s", diff)
	}
}

func TestCamera_GetRay_Pinhole(t *testing.T) {
	camera := NewCamera(pinholeConfig())
	sampler := core.NewSeededSampler(1)

	tests := []struct {
		name      string
		s, t      float32
		direction core.Vec3
	}{
		{"center", 0.5, 0.5, core.NewVec3(0, 0, -1)},
		// tan(45°) = 1 half height, aspect 2 gives half width 2
		{"lower left", 0, 0, core.NewVec3(-2, -1, -1)},
		{"upper right", 1, 1, core.NewVec3(2, 1, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GetRay(tt.s, tt.t, sampler)
			if ray.Origin != (core.Vec3{}) {
				t.Errorf("Expected pinhole origin, got %v", ray.Origin)
			}
			if diff := cmp.Diff(tt.direction, ray.Direction, approx); diff != "" {
				t.Errorf("unexpected direction (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCamera_GetRay_DepthOfField(t *testing.T) {
	config := pinholeConfig()
	config.Aperture = 0.5
	config.FocusDist = 3
	camera := NewCamera(config)
	sampler := core.NewSeededSampler(2)

	// Every lens sample for the same (s, t) passes through the same point on the focal plane
	focal := camera.GetRay(0.3, 0.7, sampler)
	target := focal.Origin.Add(focal.Direction)
	for i := 0; i < 100; i++ {
		ray := camera.GetRay(0.3, 0.7, sampler)

		if d := ray.Origin.Length(); d > 0.25 {
			t.Fatalf("origin %v outside lens radius", ray.Origin)
		}
		if math32.Abs(ray.Origin.Z) > 1e-6 {
			t.Fatalf("origin %v not on the lens plane", ray.Origin)
		}
		if diff := cmp.Diff(target, ray.Origin.Add(ray.Direction), cmpopts.EquateApprox(0, 1e-4)); diff != "" {
			t.Fatalf("ray misses the focal point (-want +got):\n%s", diff)
		}
	}
	if math32.Abs(target.Z+3) > 1e-4 {
		t.Errorf("Expected focal plane at z=-3, got %f", target.Z)
	}
}

func TestCamera_GetRay_ShutterTime(t *testing.T) {
	config := pinholeConfig()
	config.Time0, config.Time1 = 0.25, 0.75
	camera := NewCamera(config)
	sampler := core.NewSeededSampler(3)

	var lo, hi float32 = 1, 0
	for i := 0; i < 500; i++ {
		ray := camera.GetRay(0.5, 0.5, sampler)
		if ray.Time < 0.25 || ray.Time > 0.75 {
			t.Fatalf("time %f outside shutter interval", ray.Time)
		}
		lo, hi = min(lo, ray.Time), max(hi, ray.Time)
	}
	if hi-lo < 0.4 {
		t.Errorf("times do not cover the shutter interval: [%f, %f]", lo, hi)
	}
}

func TestCamera_DefaultFocusDistance(t *testing.T) {
	config := pinholeConfig()
	config.LookAt = core.NewVec3(0, 0, -4)
	camera := NewCamera(config)

	ray := camera.GetRay(0.5, 0.5, core.NewSeededSampler(1))
	if diff := cmp.Diff(core.NewVec3(0, 0, -4), ray.Direction, approx); diff != "" {
		t.Errorf("image plane should sit at the look-at distance (-want +got):\n%s", diff)
	}
}
