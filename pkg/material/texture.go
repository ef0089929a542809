package material

import (
	"github.com/df07/go-progressive-pathtracer/pkg/core"
)

// ColorSource provides spatially varying colors for materials
type ColorSource interface {
	// Evaluate returns the color at the given texture coordinates and world point.
	// Image textures use uv, procedural textures may use the point.
	Evaluate(uv core.Vec2, point core.Vec3) core.Vec3
}

// SolidColor provides a uniform color
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a new solid color source
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Evaluate returns the solid color regardless of UV or position
func (s *SolidColor) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	return s.Color
}

// TextureTable is the read-only table materials index into through DiffuseTexture and
// NormalTexture
type TextureTable []ColorSource

// Lookup returns the texture at index, or false when the index is unset or out of range
func (t TextureTable) Lookup(index int) (ColorSource, bool) {
	if index < 0 || index >= len(t) || t[index] == nil {
		return nil, false
	}
	return t[index], true
}

// BaseColor resolves the base color of m at a hit. A valid diffuse slot is sampled
// regardless of Kind, everything else uses the flat color.
func (t TextureTable) BaseColor(m Material, uv core.Vec2, point core.Vec3) core.Vec3 {
	if tex, ok := t.Lookup(m.DiffuseTexture); ok {
		return tex.Evaluate(uv, point)
	}
	return m.Color
}

// NormalTexel returns the raw normal map texel for m, or false when it has no normal map
func (t TextureTable) NormalTexel(m Material, uv core.Vec2, point core.Vec3) (core.Vec3, bool) {
	tex, ok := t.Lookup(m.NormalTexture)
	if !ok {
		return core.Vec3{}, false
	}
	return tex.Evaluate(uv, point), true
}

// DecodeNormal maps a texel in [0,1] to a tangent-space direction in [-1,1]
func DecodeNormal(texel core.Vec3) core.Vec3 {
	return texel.Multiply(2).Subtract(core.NewVec3(1, 1, 1)).SafeNormalize(core.NewVec3(0, 0, 1))
}
