package renderer

import (
	"testing"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
)

// renderDebug renders the center pixel of an odd-sized frame of the single sphere scene
func renderDebug(t *testing.T, mode DebugMode, scale float64) core.Vec4 {
	t.Helper()
	params := DefaultParams(11, 11)
	params.DebugMode = mode
	params.DebugScale = scale

	buffer := NewAccumulationBuffer(11, 11)
	NewKernel(loadScene(t, "single"), params).RenderPixel(5, 5, buffer, nil)
	return buffer.Load(5, 5)
}

func TestDebug_Modes(t *testing.T) {
	// The center ray hits the sphere head on at distance 4 with normal +Z
	tests := []struct {
		name  string
		mode  DebugMode
		scale float64
		want  core.Vec3
	}{
		{"depth", DebugDepth, 8, core.NewVec3(0.5, 0.5, 0.5)},
		{"depth out of range", DebugDepth, 2, core.NewVec3(1, 0, 0)},
		{"normals", DebugNormals, 1, core.NewVec3(0.5, 0.5, 1)},
		{"focus before plane", DebugFocus, 8, core.NewVec3(0.5, 0.5, 0.5)},
		{"no box tests without meshes", DebugBoxTests, 1, core.Vec3{}},
		{"no triangle tests without meshes", DebugTriangleTests, 1, core.Vec3{}},
		{"box and triangle", DebugBoxAndTriangleTests, 1, core.Vec3{}},
		{"no normal map", DebugNormalMap, 1, core.Vec3{}},
		{"unknown", DebugMode(42), 1, core.NewVec3(1, 0, 1)},
		{"negative unknown", DebugMode(-3), 1, core.NewVec3(1, 0, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := renderDebug(t, tt.mode, tt.scale)
			if !got.Vec3().Equals(tt.want) {
				t.Errorf("%s = %v, want %v", tt.mode, got.Vec3(), tt.want)
			}
			if got.W != 1 {
				t.Errorf("alpha = %v, want 1", got.W)
			}
		})
	}
}

func TestDebug_TraversalCounts(t *testing.T) {
	params := DefaultParams(9, 9)
	params.DebugScale = 1e6
	s := loadScene(t, "room")

	// The camera sits inside the room mesh, so some leaf is always tested
	params.DebugMode = DebugTriangleTests
	buffer := NewAccumulationBuffer(9, 9)
	NewKernel(s, params).RenderPixel(4, 4, buffer, nil)
	if got := buffer.Load(4, 4); got.X <= 0 || got.X > 1 || got.X != got.Y {
		t.Errorf("%s: pixel = %v, want a grey level in (0,1]", params.DebugMode, got)
	}

	params.DebugMode = DebugBoxTests
	NewKernel(s, params).RenderPixel(4, 4, buffer, nil)
	if got := buffer.Load(4, 4); got.X < 0 || got.X > 1 || got.X != got.Y {
		t.Errorf("%s: pixel = %v, want a grey level in [0,1]", params.DebugMode, got)
	}

	// A tiny scale pushes every count out of range
	params.DebugMode = DebugBoxAndTriangleTests
	params.DebugScale = 1e-3
	NewKernel(s, params).RenderPixel(4, 4, buffer, nil)
	if got := buffer.Load(4, 4).Vec3(); !got.Equals(core.NewVec3(1, 0, 0)) {
		t.Errorf("out of range = %v, want red", got)
	}
}

func TestDebug_IgnoresHistory(t *testing.T) {
	params := DefaultParams(11, 11)
	params.DebugMode = DebugNormals
	params.Frame = 7

	buffer := NewAccumulationBuffer(11, 11)
	buffer.Store(5, 5, core.NewVec4(9, 9, 9, 1))
	NewKernel(loadScene(t, "single"), params).RenderPixel(5, 5, buffer, nil)

	if got := buffer.Load(5, 5).Vec3(); !got.Equals(core.NewVec3(0.5, 0.5, 1)) {
		t.Errorf("pixel = %v, want the normal color without blending", got)
	}
}

func TestParseDebugMode(t *testing.T) {
	for _, mode := range DebugModes() {
		got, err := ParseDebugMode(mode.String())
		if err != nil {
			t.Errorf("ParseDebugMode(%q) failed: %v", mode.String(), err)
		}
		if got != mode {
			t.Errorf("ParseDebugMode(%q) = %v, want %v", mode.String(), got, mode)
		}
	}

	if got, err := ParseDebugMode(""); err != nil || got != DebugOff {
		t.Errorf("empty mode = %v, %v; want off", got, err)
	}
	if _, err := ParseDebugMode("sparkles"); err == nil {
		t.Error("expected an error for an unknown mode")
	}
}
