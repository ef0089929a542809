package core

import "math"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// EmptyAABB returns an inverted box that any Grow or Union call replaces
func EmptyAABB() AABB {
	inf := math.Inf(1)
	return AABB{
		Min: NewVec3(inf, inf, inf),
		Max: NewVec3(-inf, -inf, -inf),
	}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}

	box := AABB{Min: points[0], Max: points[0]}
	for _, point := range points[1:] {
		box = box.Grow(point)
	}
	return box
}

// Grow returns the box extended to contain point
func (aabb AABB) Grow(point Vec3) AABB {
	return AABB{Min: aabb.Min.Min(point), Max: aabb.Max.Max(point)}
}

// RayDistance returns the parametric distance at which the ray enters the box, 0 if
// the origin is inside the box, or +Inf if the ray misses it. The ray's cached
// reciprocal direction is used so no division happens per test.
func (aabb AABB) RayDistance(ray *Ray) float64 {
	tNear := math.Inf(-1)
	tFar := math.Inf(1)

	for axis := 0; axis < 3; axis++ {
		origin := ray.Origin.Component(axis)
		lo := aabb.Min.Component(axis)
		hi := aabb.Max.Component(axis)

		// Parallel to the slab: either always inside it or never
		if ray.Direction.Component(axis) == 0 {
			if origin < lo || origin > hi {
				return math.Inf(1)
			}
			continue
		}

		inv := ray.InvDirection.Component(axis)
		t1 := (lo - origin) * inv
		t2 := (hi - origin) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}

		tNear = math.Max(tNear, t1)
		tFar = math.Min(tFar, t2)
	}

	if tFar < tNear || tFar <= 0 {
		return math.Inf(1)
	}
	return math.Max(tNear, 0)
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	return AABB{Min: aabb.Min.Min(other.Min), Max: aabb.Max.Max(other.Max)}
}

// Contains reports whether other lies entirely inside this box
func (aabb AABB) Contains(other AABB) bool {
	return aabb.Min.X <= other.Min.X && aabb.Min.Y <= other.Min.Y && aabb.Min.Z <= other.Min.Z &&
		aabb.Max.X >= other.Max.X && aabb.Max.Y >= other.Max.Y && aabb.Max.Z >= other.Max.Z
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// Size returns the size (extent) of the AABB along each axis
func (aabb AABB) Size() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// HalfArea returns half the surface area, the quantity used by the SAH cost
func (aabb AABB) HalfArea() float64 {
	if !aabb.IsValid() {
		return 0
	}
	size := aabb.Size()
	return size.X*size.Y + size.Y*size.Z + size.Z*size.X
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the longest extent
func (aabb AABB) LongestAxis() int {
	size := aabb.Size()
	if size.X > size.Y && size.X > size.Z {
		return 0 // X axis
	}
	if size.Y > size.Z {
		return 1 // Y axis
	}
	return 2 // Z axis
}

// IsValid returns true if this is a valid AABB (min <= max for all axes)
func (aabb AABB) IsValid() bool {
	return aabb.Min.X <= aabb.Max.X &&
		aabb.Min.Y <= aabb.Max.Y &&
		aabb.Min.Z <= aabb.Max.Z
}

// Expand returns an AABB expanded by the given amount in all directions
func (aabb AABB) Expand(amount float64) AABB {
	expansion := NewVec3(amount, amount, amount)
	return AABB{
		Min: aabb.Min.Subtract(expansion),
		Max: aabb.Max.Add(expansion),
	}
}
