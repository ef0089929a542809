package geometry

import (
	"math"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
	"github.com/df07/go-progressive-pathtracer/pkg/material"
)

// HitEpsilon is the minimum accepted hit distance. Nearer hits are treated as
// self-intersections of the surface the ray just left.
const HitEpsilon = 1e-4

// Hit describes the closest intersection found along a ray
type Hit struct {
	T        float64   // Parametric distance along the ray
	Point    core.Vec3 // World-space hit point
	Normal   core.Vec3 // Unit normal facing the side the ray arrived from
	UV       core.Vec2 // Texture coordinates
	Backface bool      // True when the ray origin is inside the volume
	Material material.Material
}

// NoHit returns a miss with infinite distance, the starting point of closest-hit searches
func NoHit() Hit {
	return Hit{T: math.Inf(1)}
}
