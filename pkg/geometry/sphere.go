package geometry

import (
	"math"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
	"github.com/df07/go-progressive-pathtracer/pkg/material"
)

// Sphere is a world-space sphere that owns its material
type Sphere struct {
	Center   core.Vec3
	Radius   float64
	Material material.Material
}

// NewSphere creates a new sphere
func NewSphere(center core.Vec3, radius float64, mat material.Material) Sphere {
	return Sphere{
		Center:   center,
		Radius:   radius,
		Material: mat,
	}
}

// Intersect tests the ray against the sphere. When the ray starts inside, the far
// root is used, the normal points inward and Backface is set; cullBackface rejects
// such hits.
func (s *Sphere) Intersect(ray *core.Ray, cullBackface bool) (Hit, bool) {
	oc := ray.Origin.Subtract(s.Center)

	// a*t^2 + b*t + c = 0
	a := ray.Direction.Dot(ray.Direction)
	b := 2 * oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return Hit{}, false
	}

	sqrtD := math.Sqrt(discriminant)
	near := (-b - sqrtD) / (2 * a)
	far := (-b + sqrtD) / (2 * a)
	if far < 0 {
		return Hit{}, false
	}

	t := near
	backface := near <= 0
	if backface {
		if cullBackface {
			return Hit{}, false
		}
		t = far
	}
	if t < HitEpsilon {
		return Hit{}, false
	}

	point := ray.At(t)
	outward := point.Subtract(s.Center).Multiply(1.0 / s.Radius)
	normal := outward
	if backface {
		normal = outward.Negate()
	}

	return Hit{
		T:        t,
		Point:    point,
		Normal:   normal,
		UV:       SphereUV(outward),
		Backface: backface,
		Material: s.Material,
	}, true
}

// SphereUV maps an outward unit normal to latitude/longitude texture coordinates
func SphereUV(n core.Vec3) core.Vec2 {
	u := 0.5 + math.Atan2(n.Z, n.X)/(2*math.Pi)
	v := 0.5 + math.Asin(math.Max(-1, math.Min(1, n.Y)))/math.Pi
	return core.NewVec2(u, v)
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() core.AABB {
	radius := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.NewAABB(s.Center.Subtract(radius), s.Center.Add(radius))
}
