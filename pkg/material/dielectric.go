package material

import (
	"math"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
)

// Reflectance calculates the Fresnel reflectance using Schlick's approximation.
// ratio is the relative index of refraction across the interface.
func Reflectance(cosine, ratio float64) float64 {
	r0 := (1 - ratio) / (1 + ratio)
	r0 = r0 * r0
	return r0 + (1-r0)*math.Pow(1-cosine, 5)
}

// Reflect mirrors v about the surface normal n: r = v - 2*dot(v,n)*n
func Reflect(v, n core.Vec3) core.Vec3 {
	return v.Subtract(n.Multiply(2 * v.Dot(n)))
}

// CannotRefract reports total internal reflection for the given cosine and ratio
func CannotRefract(cosine, ratio float64) bool {
	sinTheta := math.Sqrt(math.Max(0, 1-cosine*cosine))
	return ratio*sinTheta > 1.0
}

// Refract bends the unit direction v through a surface with normal n (facing against
// v) using Snell's law with ratio = eta_in/eta_out. ok is false when the radicand is
// negative, in which case the caller should reflect instead.
func Refract(v, n core.Vec3, ratio float64) (core.Vec3, bool) {
	cosIncident := -n.Dot(v)
	sinSqrTransmit := ratio * ratio * (1 - cosIncident*cosIncident)
	if sinSqrTransmit > 1 {
		return core.Vec3{}, false
	}
	cosTransmit := math.Sqrt(1 - sinSqrTransmit)
	return v.Multiply(ratio).Add(n.Multiply(ratio*cosIncident - cosTransmit)), true
}
