package geometry

import (
	"math"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
)

// parallelEpsilon rejects rays nearly parallel to the triangle plane
const parallelEpsilon = 1e-8

// Triangle is a mesh triangle in the owning mesh's local space with per-corner
// normals and texture coordinates
type Triangle struct {
	A, B, C    core.Vec3 // Positions
	NA, NB, NC core.Vec3 // Vertex normals
	UVA, UVB   core.Vec2
	UVC        core.Vec2
}

// NewTriangle creates a flat-shaded triangle whose vertex normals all equal the
// geometric normal
func NewTriangle(a, b, c core.Vec3) Triangle {
	n := b.Subtract(a).Cross(c.Subtract(a)).SafeNormalize(core.Up)
	return Triangle{
		A: a, B: b, C: c,
		NA: n, NB: n, NC: n,
		UVA: core.NewVec2(0, 0), UVB: core.NewVec2(1, 0), UVC: core.NewVec2(0, 1),
	}
}

// WithNormals returns a copy with explicit vertex normals
func (t Triangle) WithNormals(na, nb, nc core.Vec3) Triangle {
	t.NA, t.NB, t.NC = na, nb, nc
	return t
}

// WithUVs returns a copy with explicit texture coordinates
func (t Triangle) WithUVs(a, b, c core.Vec2) Triangle {
	t.UVA, t.UVB, t.UVC = a, b, c
	return t
}

// Intersect tests the ray against the triangle. With cullBackface set only hits on
// the side the winding normal faces are accepted; otherwise the triangle is
// two-sided and the returned normal is flipped to face the ray.
func (t *Triangle) Intersect(ray *core.Ray, cullBackface bool) (Hit, bool) {
	ab := t.B.Subtract(t.A)
	ac := t.C.Subtract(t.A)
	normal := ab.Cross(ac)
	ao := ray.Origin.Subtract(t.A)
	dao := ao.Cross(ray.Direction)

	det := -ray.Direction.Dot(normal)
	if cullBackface {
		if det < parallelEpsilon {
			return Hit{}, false
		}
	} else if math.Abs(det) < parallelEpsilon {
		return Hit{}, false
	}

	invDet := 1 / det
	dst := ao.Dot(normal) * invDet
	u := ac.Dot(dao) * invDet
	v := -ab.Dot(dao) * invDet
	w := 1 - u - v

	if dst < HitEpsilon || u < 0 || v < 0 || w < 0 {
		return Hit{}, false
	}

	geometric := normal.Normalize()
	shading := t.NA.Multiply(w).Add(t.NB.Multiply(u)).Add(t.NC.Multiply(v)).SafeNormalize(geometric)
	if det < 0 {
		shading = shading.Negate()
	}

	uv := t.UVA.Multiply(w).Add(t.UVB.Multiply(u)).Add(t.UVC.Multiply(v))

	return Hit{
		T:        dst,
		Point:    ray.At(dst),
		Normal:   shading,
		UV:       uv,
		Backface: det < 0,
	}, true
}

// Bounds returns the bounding box of the three positions
func (t *Triangle) Bounds() core.AABB {
	return core.NewAABBFromPoints(t.A, t.B, t.C)
}

// Centroid returns the average of the three positions
func (t *Triangle) Centroid() core.Vec3 {
	return t.A.Add(t.B).Add(t.C).Multiply(1.0 / 3.0)
}
