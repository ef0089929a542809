package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
)

func defaultCameraConfig() CameraConfig {
	return CameraConfig{
		Position:      core.Vec3{},
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          90,
		AspectRatio:   1,
		FocusDistance: 1,
	}
}

func TestNewCamera_ViewParams(t *testing.T) {
	config := defaultCameraConfig()
	config.AspectRatio = 2
	config.FocusDistance = 3
	camera := NewCamera(config)

	// tan(45 degrees) * 2 * focus
	if math.Abs(camera.ViewParams.Y-6) > 1e-9 {
		t.Errorf("Expected plane height 6, got %f", camera.ViewParams.Y)
	}
	if math.Abs(camera.ViewParams.X-12) > 1e-9 {
		t.Errorf("Expected plane width 12, got %f", camera.ViewParams.X)
	}
	if camera.ViewParams.Z != 3 {
		t.Errorf("Expected focus distance 3, got %f", camera.ViewParams.Z)
	}
}

func TestNewCamera_FocusClamp(t *testing.T) {
	config := defaultCameraConfig()
	config.FocusDistance = 0.2
	camera := NewCamera(config)
	if camera.ViewParams.Z != 1 {
		t.Errorf("Expected focus distance clamped to 1, got %f", camera.ViewParams.Z)
	}
}

func TestCamera_GetRay(t *testing.T) {
	camera := NewCamera(defaultCameraConfig())
	const size = 101

	tests := []struct {
		name     string
		pixel    core.Vec2
		expected core.Vec3
	}{
		{"center", core.NewVec2(50, 50), core.NewVec3(0, 0, -1)},
		{"top center", core.NewVec2(50, 100), core.NewVec3(0, 1, -1).Normalize()},
		{"right center", core.NewVec2(100, 50), core.NewVec3(1, 0, -1).Normalize()},
		{"bottom left", core.NewVec2(0, 0), core.NewVec3(-1, -1, -1).Normalize()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GetRay(tt.pixel, size, size, core.Vec2{}, core.Vec2{})
			if !ray.Origin.Equals(core.Vec3{}) {
				t.Errorf("Expected origin at camera position, got %v", ray.Origin)
			}
			if !ray.Direction.Equals(tt.expected) {
				t.Errorf("Expected direction %v, got %v", tt.expected, ray.Direction)
			}
		})
	}
}

func TestCamera_DefocusKeepsFocusPoint(t *testing.T) {
	config := defaultCameraConfig()
	config.Position = core.NewVec3(1, 2, 3)
	config.LookAt = core.NewVec3(1, 2, -7)
	config.FocusDistance = 4
	config.DefocusStrength = 50
	camera := NewCamera(config)

	focusPoint := core.NewVec3(1, 2, -1)
	for _, jitter := range []core.Vec2{core.NewVec2(1, 0), core.NewVec2(-0.5, 0.3), core.NewVec2(0, -0.9)} {
		ray := camera.GetRay(core.NewVec2(50, 50), 101, 101, jitter, core.Vec2{})
		if ray.Origin.Equals(config.Position) {
			t.Errorf("Expected jittered origin for %v", jitter)
		}
		toFocus := focusPoint.Subtract(ray.Origin)
		if !ray.Direction.Equals(toFocus.Normalize()) {
			t.Errorf("Jitter %v: ray %v does not pass through focus point", jitter, ray.Direction)
		}
	}
}

func TestCamera_DivergeMovesFocusPoint(t *testing.T) {
	config := defaultCameraConfig()
	config.DivergeStrength = 20
	camera := NewCamera(config)

	ray := camera.GetRay(core.NewVec2(50, 50), 101, 101, core.Vec2{}, core.NewVec2(1, 0))
	if !ray.Origin.Equals(core.Vec3{}) {
		t.Errorf("Divergence must not move the origin, got %v", ray.Origin)
	}
	if ray.Direction.X <= 0 {
		t.Errorf("Expected direction pushed toward +x, got %v", ray.Direction)
	}
}
