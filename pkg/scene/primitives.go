package scene

import (
	"math"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
	"github.com/df07/go-progressive-pathtracer/pkg/geometry"
)

// TRS composes a transform that scales, then rotates (Z, X, then Y, in radians),
// then translates
func TRS(position, rotation, scale core.Vec3) core.Mat4 {
	return core.Translate(position).
		Mul(core.RotateY(rotation.Y)).
		Mul(core.RotateX(rotation.X)).
		Mul(core.RotateZ(rotation.Z)).
		Mul(core.Scale(scale))
}

// Quad returns a 2x2 square in the z=0 plane facing +Z with UVs spanning [0,1]
func Quad() []geometry.Triangle {
	a := core.NewVec3(-1, -1, 0)
	b := core.NewVec3(1, -1, 0)
	c := core.NewVec3(1, 1, 0)
	d := core.NewVec3(-1, 1, 0)
	uvA, uvB, uvC, uvD := core.NewVec2(0, 0), core.NewVec2(1, 0), core.NewVec2(1, 1), core.NewVec2(0, 1)

	return []geometry.Triangle{
		geometry.NewTriangle(a, b, c).WithUVs(uvA, uvB, uvC),
		geometry.NewTriangle(a, c, d).WithUVs(uvA, uvC, uvD),
	}
}

// Box returns a 2x2x2 cube centered on the origin with outward faces
func Box() []geometry.Triangle {
	front := TransformTriangles(Quad(), core.Translate(core.NewVec3(0, 0, 1)))
	faces := []core.Mat4{
		core.Identity(),
		core.RotateY(math.Pi / 2),
		core.RotateY(math.Pi),
		core.RotateY(-math.Pi / 2),
		core.RotateX(-math.Pi / 2),
		core.RotateX(math.Pi / 2),
	}

	tris := make([]geometry.Triangle, 0, 12)
	for _, face := range faces {
		tris = append(tris, TransformTriangles(front, face)...)
	}
	return tris
}

// UVSphere returns a unit sphere with smooth normals and lat/long UVs
func UVSphere(segments, rings int) []geometry.Triangle {
	segments = max(segments, 3)
	rings = max(rings, 2)

	vertex := func(ring, segment int) (core.Vec3, core.Vec2) {
		theta := math.Pi * float64(ring) / float64(rings)
		phi := 2 * math.Pi * float64(segment) / float64(segments)
		p := core.NewVec3(math.Sin(theta)*math.Cos(phi), math.Cos(theta), math.Sin(theta)*math.Sin(phi))
		uv := core.NewVec2(float64(segment)/float64(segments), 1-float64(ring)/float64(rings))
		return p, uv
	}

	var tris []geometry.Triangle
	for i := 0; i < rings; i++ {
		for j := 0; j < segments; j++ {
			p00, uv00 := vertex(i, j)
			p01, uv01 := vertex(i, j+1)
			p10, uv10 := vertex(i+1, j)
			p11, uv11 := vertex(i+1, j+1)

			// The pole rows collapse one triangle of each quad to a point
			if i > 0 {
				tris = append(tris, geometry.NewTriangle(p00, p01, p10).
					WithNormals(p00, p01, p10).WithUVs(uv00, uv01, uv10))
			}
			if i < rings-1 {
				tris = append(tris, geometry.NewTriangle(p01, p11, p10).
					WithNormals(p01, p11, p10).WithUVs(uv01, uv11, uv10))
			}
		}
	}
	return tris
}

// TransformTriangles returns copies of tris with positions and normals transformed by m
func TransformTriangles(tris []geometry.Triangle, m core.Mat4) []geometry.Triangle {
	inv, err := m.Inverse()
	if err != nil {
		inv = core.Identity()
	}

	normal := func(n core.Vec3) core.Vec3 {
		return inv.MulNormalTransposed(n).SafeNormalize(n)
	}

	out := make([]geometry.Triangle, len(tris))
	for i, t := range tris {
		out[i] = t
		out[i].A, out[i].B, out[i].C = m.MulPoint(t.A), m.MulPoint(t.B), m.MulPoint(t.C)
		out[i].NA, out[i].NB, out[i].NC = normal(t.NA), normal(t.NB), normal(t.NC)
	}
	return out
}

// Flip reverses the winding and normals of tris so they face the other way
func Flip(tris []geometry.Triangle) []geometry.Triangle {
	out := make([]geometry.Triangle, len(tris))
	for i, t := range tris {
		out[i] = geometry.Triangle{
			A: t.A, B: t.C, C: t.B,
			NA: t.NA.Negate(), NB: t.NC.Negate(), NC: t.NB.Negate(),
			UVA: t.UVA, UVB: t.UVC, UVC: t.UVB,
		}
	}
	return out
}
