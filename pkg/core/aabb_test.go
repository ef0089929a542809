package core

import (
	"math"
	"testing"
)

func TestAABB_RayDistance(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))

	tests := []struct {
		name     string
		ray      Ray
		expected float64
	}{
		{"hit from outside", NewRay(NewVec3(0, 0, -5), NewVec3(0, 0, 1)), 4},
		{"origin inside", NewRay(NewVec3(0, 0, 0), NewVec3(1, 0, 0)), 0},
		{"box behind ray", NewRay(NewVec3(0, 0, 5), NewVec3(0, 0, 1)), math.Inf(1)},
		{"parallel outside slab", NewRay(NewVec3(0, 2, -5), NewVec3(0, 0, 1)), math.Inf(1)},
		{"miss", NewRay(NewVec3(3, 0, -5), NewVec3(0, 0.1, 1)), math.Inf(1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := box.RayDistance(&tt.ray)
			if math.IsInf(tt.expected, 1) {
				if !math.IsInf(got, 1) {
					t.Errorf("Expected miss, got %v", got)
				}
				return
			}
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestAABB_FlatBoxIsHit(t *testing.T) {
	// Axis-aligned triangles produce zero thickness boxes
	box := NewAABB(NewVec3(-1, 0, -1), NewVec3(1, 0, 1))
	ray := NewRay(NewVec3(0, 3, 0), NewVec3(0, -1, 0))
	if got := box.RayDistance(&ray); math.Abs(got-3) > 1e-9 {
		t.Errorf("Expected 3, got %v", got)
	}
}

func TestAABB_GrowAndUnion(t *testing.T) {
	box := EmptyAABB()
	if box.IsValid() {
		t.Error("Empty box should be invalid")
	}
	if box.HalfArea() != 0 {
		t.Errorf("Empty box should have zero area, got %v", box.HalfArea())
	}

	box = box.Grow(NewVec3(1, 2, 3)).Grow(NewVec3(-1, 0, 5))
	expected := NewAABB(NewVec3(-1, 0, 3), NewVec3(1, 2, 5))
	if box != expected {
		t.Errorf("Expected %v, got %v", expected, box)
	}

	other := NewAABB(NewVec3(0, 0, 0), NewVec3(4, 1, 1))
	union := box.Union(other)
	if !union.Contains(box) || !union.Contains(other) {
		t.Errorf("Union %v does not contain both inputs", union)
	}
}

func TestAABB_HalfAreaAndAxis(t *testing.T) {
	box := NewAABB(NewVec3(0, 0, 0), NewVec3(4, 2, 1))
	if got := box.HalfArea(); got != 4*2+2*1+1*4 {
		t.Errorf("Expected half area 14, got %v", got)
	}
	if got := box.LongestAxis(); got != 0 {
		t.Errorf("Expected longest axis 0, got %d", got)
	}
	if got := box.Center(); got != NewVec3(2, 1, 0.5) {
		t.Errorf("Expected center (2,1,0.5), got %v", got)
	}
}
