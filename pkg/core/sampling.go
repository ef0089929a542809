package core

import (
	"math"
)

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	Get1D() float64
	Get2D() Vec2
	Get3D() Vec3
}

// Up is the fallback direction used when a sampled vector cannot be normalized
var Up = NewVec3(0, 1, 0)

// SampleNormal draws a normally distributed value using the Box-Muller transform
func SampleNormal(sampler Sampler) float64 {
	theta := 2 * math.Pi * sampler.Get1D()
	rho := math.Sqrt(-2 * math.Log(sampler.Get1D()))
	return rho * math.Cos(theta)
}

// SampleUnitSphere returns a uniformly distributed direction built from three normal
// draws. A degenerate (near zero) vector falls back to Up.
func SampleUnitSphere(sampler Sampler) Vec3 {
	x := SampleNormal(sampler)
	y := SampleNormal(sampler)
	z := SampleNormal(sampler)
	return NewVec3(x, y, z).SafeNormalize(Up)
}

// SampleHemisphere returns a unit sphere direction flipped into the hemisphere of
// normal. The distribution is uniform over the hemisphere, not cosine weighted.
func SampleHemisphere(normal Vec3, sampler Sampler) Vec3 {
	dir := SampleUnitSphere(sampler)
	if dir.Dot(normal) < 0 {
		return dir.Negate()
	}
	return dir
}

// SampleUnitDisk returns a point in the unit disk using the closed-form polar mapping
func SampleUnitDisk(sampler Sampler) Vec2 {
	angle := 2 * math.Pi * sampler.Get1D()
	radius := math.Sqrt(sampler.Get1D())
	return NewVec2(math.Cos(angle)*radius, math.Sin(angle)*radius)
}

// SampleCosineHemisphere generates a cosine-weighted random direction in hemisphere around normal
func SampleCosineHemisphere(normal Vec3, sample Vec2) Vec3 {
	// Generate point in unit disk using uniform random sampling
	a := 2.0 * math.Pi * sample.X
	z := sample.Y
	r := math.Sqrt(z)

	x := r * math.Cos(a)
	y := r * math.Sin(a)
	zCoord := math.Sqrt(1.0 - z)

	// Create local coordinate system around normal
	// Find a vector perpendicular to normal
	var nt Vec3
	if math.Abs(normal.X) > 0.1 {
		nt = NewVec3(0, 1, 0)
	} else {
		nt = NewVec3(1, 0, 0)
	}

	// Create orthonormal basis
	tangent := nt.Cross(normal).Normalize()
	bitangent := normal.Cross(tangent)

	// Transform to world space
	return tangent.Multiply(x).Add(bitangent.Multiply(y)).Add(normal.Multiply(zCoord))
}
