package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
	"github.com/df07/go-progressive-pathtracer/pkg/material"
)

func TestSphere_Intersect_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, material.NewMaterial())
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	if hit, ok := sphere.Intersect(&ray, true); ok {
		t.Errorf("Expected miss, got hit at t=%f", hit.T)
	}
}

func TestSphere_Intersect_DistanceAndNormal(t *testing.T) {
	tests := []struct {
		name   string
		radius float64
		dir    core.Vec3
		d      float64
	}{
		{"unit sphere along +x", 1, core.NewVec3(1, 0, 0), 3},
		{"radius 2 along diagonal", 2, core.NewVec3(1, 1, 1).Normalize(), 10},
		{"small sphere along -z", 0.5, core.NewVec3(0, 0, -1), 1.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sphere := NewSphere(core.Vec3{}, tt.radius, material.NewMaterial())
			origin := tt.dir.Multiply(tt.d)
			ray := core.NewRay(origin, tt.dir.Negate())

			hit, ok := sphere.Intersect(&ray, true)
			if !ok {
				t.Fatal("Expected hit")
			}
			if math.Abs(hit.T-(tt.d-tt.radius)) > 1e-9 {
				t.Errorf("Expected t=%f, got %f", tt.d-tt.radius, hit.T)
			}
			if !hit.Normal.Equals(tt.dir) {
				t.Errorf("Expected normal %v, got %v", tt.dir, hit.Normal)
			}
			if hit.Backface {
				t.Error("Expected front face hit")
			}
		})
	}
}

func TestSphere_Intersect_Inside(t *testing.T) {
	sphere := NewSphere(core.Vec3{}, 1.0, material.NewGlass(1.5))
	ray := core.NewRay(core.NewVec3(0, 0, 0.5), core.NewVec3(0, 0, 1))

	hit, ok := sphere.Intersect(&ray, false)
	if !ok {
		t.Fatal("Expected hit from inside")
	}
	if !hit.Backface {
		t.Error("Expected backface hit from inside")
	}
	if math.Abs(hit.T-0.5) > 1e-9 {
		t.Errorf("Expected far root t=0.5, got %f", hit.T)
	}
	if !hit.Normal.Equals(core.NewVec3(0, 0, -1)) {
		t.Errorf("Expected inward normal, got %v", hit.Normal)
	}

	if _, ok := sphere.Intersect(&ray, true); ok {
		t.Error("Expected culled backface hit")
	}
}

func TestSphere_Intersect_Behind(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 5), 1.0, material.NewMaterial())
	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1))

	if _, ok := sphere.Intersect(&ray, false); ok {
		t.Error("Expected miss for sphere behind the ray")
	}
}

func TestSphere_Intersect_Epsilon(t *testing.T) {
	sphere := NewSphere(core.Vec3{}, 1.0, material.NewMaterial())
	// Origin on the surface leaving outward: near root is ~0 and far root is behind
	ray := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, 1))
	if hit, ok := sphere.Intersect(&ray, false); ok {
		t.Errorf("Expected self-intersection to be rejected, got t=%g", hit.T)
	}
}

func TestSphereUV(t *testing.T) {
	tests := []struct {
		name   string
		normal core.Vec3
		v      float64
	}{
		{"north pole", core.NewVec3(0, 1, 0), 1},
		{"south pole", core.NewVec3(0, -1, 0), 0},
		{"equator", core.NewVec3(1, 0, 0), 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uv := SphereUV(tt.normal)
			if math.Abs(uv.Y-tt.v) > 1e-9 {
				t.Errorf("Expected v=%f, got %f", tt.v, uv.Y)
			}
			if uv.X < 0 || uv.X > 1 {
				t.Errorf("u out of range: %f", uv.X)
			}
		})
	}
}
