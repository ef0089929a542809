package material

import (
	"math"
	"testing"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
)

func TestMaterialConstructors(t *testing.T) {
	tests := []struct {
		name     string
		material Material
		kind     Kind
		glass    bool
	}{
		{"default", NewMaterial(), Opaque, false},
		{"diffuse", NewDiffuse(core.NewVec3(1, 0, 0)), Opaque, false},
		{"glass", NewGlass(1.5), Glass, true},
		{"emissive", NewEmissive(core.NewVec3(1, 1, 1), 4), Opaque, false},
		{"textured", NewMaterial().WithTexture(2), Textured, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.material.Kind != tt.kind {
				t.Errorf("Expected kind %v, got %v", tt.kind, tt.material.Kind)
			}
			if tt.material.IsGlass() != tt.glass {
				t.Errorf("Expected IsGlass %v", tt.glass)
			}
			if tt.material.NormalTexture != NoTexture {
				t.Errorf("Expected unset normal texture, got %d", tt.material.NormalTexture)
			}
		})
	}
}

func TestMaterialBuildersCopy(t *testing.T) {
	base := NewDiffuse(core.NewVec3(0.5, 0.5, 0.5))
	shiny := base.WithSpecular(core.NewVec3(1, 1, 1), 0.3).WithSmoothness(0.8)

	if base.SpecularProbability != 0 {
		t.Error("With* must not modify the receiver")
	}
	if shiny.SpecularProbability != 0.3 || shiny.Smoothness != 0.8 {
		t.Errorf("Unexpected specular settings %+v", shiny)
	}

	emissive := NewEmissive(core.NewVec3(1, 0.5, 0.25), 4)
	if !emissive.Emission().Equals(core.NewVec3(4, 2, 1)) {
		t.Errorf("Expected emission (4,2,1), got %v", emissive.Emission())
	}

	absorbing := NewGlass(1.5).WithAbsorption(core.NewVec3(0.1, 0.2, 0.3), 2)
	if !absorbing.Absorption().Equals(core.NewVec3(0.2, 0.4, 0.6)) {
		t.Errorf("Unexpected absorption %v", absorbing.Absorption())
	}
}

func TestReflectance(t *testing.T) {
	// Normal incidence into glass from air: ((1-1.5)/(1+1.5))^2 = 0.04
	got := Reflectance(1.0, 1.5)
	if math.Abs(got-0.04) > 1e-12 {
		t.Errorf("Expected 0.04 at normal incidence, got %v", got)
	}
	// The ratio and its inverse give the same r0
	if math.Abs(Reflectance(1.0, 1/1.5)-0.04) > 1e-12 {
		t.Errorf("Expected symmetric r0, got %v", Reflectance(1.0, 1/1.5))
	}
	// Grazing incidence reflects everything
	if math.Abs(Reflectance(0, 1.5)-1) > 1e-12 {
		t.Errorf("Expected 1 at grazing incidence, got %v", Reflectance(0, 1.5))
	}
}

func TestReflect(t *testing.T) {
	v := core.NewVec3(1, -1, 0).Normalize()
	n := core.NewVec3(0, 1, 0)
	got := Reflect(v, n)
	expected := core.NewVec3(1, 1, 0).Normalize()
	if !got.Equals(expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestRefract(t *testing.T) {
	n := core.NewVec3(0, 1, 0)

	t.Run("normal incidence passes straight", func(t *testing.T) {
		got, ok := Refract(core.NewVec3(0, -1, 0), n, 1/1.5)
		if !ok {
			t.Fatal("Expected refraction")
		}
		if !got.Equals(core.NewVec3(0, -1, 0)) {
			t.Errorf("Expected (0,-1,0), got %v", got)
		}
	})

	t.Run("snell's law", func(t *testing.T) {
		incident := core.NewVec3(math.Sin(0.5), -math.Cos(0.5), 0)
		ratio := 1 / 1.5
		got, ok := Refract(incident, n, ratio)
		if !ok {
			t.Fatal("Expected refraction")
		}
		if math.Abs(got.Length()-1) > 1e-9 {
			t.Errorf("Refracted direction not unit: %v", got)
		}
		if math.Abs(got.X-ratio*math.Sin(0.5)) > 1e-9 {
			t.Errorf("Expected sin(theta_t) = %v, got %v", ratio*math.Sin(0.5), got.X)
		}
	})

	t.Run("total internal reflection", func(t *testing.T) {
		incident := core.NewVec3(math.Sin(1.2), -math.Cos(1.2), 0)
		if _, ok := Refract(incident, n, 1.5); ok {
			t.Error("Expected refraction to fail beyond the critical angle")
		}
		if !CannotRefract(math.Cos(1.2), 1.5) {
			t.Error("Expected CannotRefract beyond the critical angle")
		}
		if CannotRefract(math.Cos(0.2), 1.5) {
			t.Error("Expected refraction below the critical angle")
		}
	})
}

func TestTextureTable(t *testing.T) {
	red := core.NewVec3(1, 0, 0)
	table := TextureTable{NewSolidColor(red), nil}

	tests := []struct {
		name     string
		material Material
		expected core.Vec3
	}{
		{"flat color ignores table", NewDiffuse(core.NewVec3(0, 1, 0)), core.NewVec3(0, 1, 0)},
		{"textured samples table", NewDiffuse(core.NewVec3(0, 1, 0)).WithTexture(0), red},
		{"nil slot falls back", NewDiffuse(core.NewVec3(0, 0, 1)).WithTexture(1), core.NewVec3(0, 0, 1)},
		{"out of range falls back", NewDiffuse(core.NewVec3(0, 0, 1)).WithTexture(7), core.NewVec3(0, 0, 1)},
		{"diffuse slot without textured kind", Material{Kind: Opaque, Color: core.NewVec3(0, 1, 0), DiffuseTexture: 0, NormalTexture: NoTexture}, red},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := table.BaseColor(tt.material, core.NewVec2(0.5, 0.5), core.Vec3{})
			if !got.Equals(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}

	if _, ok := table.NormalTexel(NewMaterial(), core.Vec2{}, core.Vec3{}); ok {
		t.Error("Expected no normal texel for a material without a normal map")
	}
}

func TestDecodeNormal(t *testing.T) {
	got := DecodeNormal(core.NewVec3(0.5, 0.5, 1))
	if !got.Equals(core.NewVec3(0, 0, 1)) {
		t.Errorf("Expected +Z, got %v", got)
	}
}

func TestCheckerTexture(t *testing.T) {
	white := core.NewVec3(1, 1, 1)
	black := core.NewVec3(0, 0, 0)
	checker := NewCheckerTexture(2, white, black)

	tests := []struct {
		uv       core.Vec2
		expected core.Vec3
	}{
		{core.NewVec2(0.1, 0.1), white},
		{core.NewVec2(0.6, 0.1), black},
		{core.NewVec2(0.6, 0.6), white},
		{core.NewVec2(-0.1, 0.1), black},
	}

	for _, tt := range tests {
		if got := checker.Evaluate(tt.uv, core.Vec3{}); !got.Equals(tt.expected) {
			t.Errorf("UV%v: expected %v, got %v", tt.uv, tt.expected, got)
		}
	}
}
