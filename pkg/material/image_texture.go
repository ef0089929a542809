package material

import (
	"math"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
)

// Filter selects how texels are reconstructed between pixel centers
type Filter int

const (
	FilterNearest Filter = iota
	FilterBilinear
)

// ImageTexture provides color from a 2D image with repeat wrapping
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major: Pixels[y*Width + x], row 0 at the top
	Filter Filter
}

// NewImageTexture creates a nearest-filtered image texture
func NewImageTexture(width, height int, pixels []core.Vec3) *ImageTexture {
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// WithFilter returns the texture using the given filter
func (t *ImageTexture) WithFilter(filter Filter) *ImageTexture {
	t.Filter = filter
	return t
}

// Evaluate samples the texture at uv. V=0 is the bottom row of the image.
func (t *ImageTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	if t.Width == 0 || t.Height == 0 {
		return core.Vec3{}
	}

	u := wrap(uv.X)
	v := 1.0 - wrap(uv.Y)

	if t.Filter == FilterBilinear {
		return t.bilinear(u*float64(t.Width)-0.5, v*float64(t.Height)-0.5)
	}
	return t.texel(int(u*float64(t.Width)), int(v*float64(t.Height)))
}

func (t *ImageTexture) bilinear(x, y float64) core.Vec3 {
	x0 := math.Floor(x)
	y0 := math.Floor(y)
	fx := x - x0
	fy := y - y0
	ix, iy := int(x0), int(y0)

	top := t.texel(ix, iy).Lerp(t.texel(ix+1, iy), fx)
	bottom := t.texel(ix, iy+1).Lerp(t.texel(ix+1, iy+1), fx)
	return top.Lerp(bottom, fy)
}

// texel returns the pixel at (x, y) with repeat addressing
func (t *ImageTexture) texel(x, y int) core.Vec3 {
	x %= t.Width
	if x < 0 {
		x += t.Width
	}
	y %= t.Height
	if y < 0 {
		y += t.Height
	}
	return t.Pixels[y*t.Width+x]
}

// wrap maps a coordinate into [0, 1)
func wrap(c float64) float64 {
	c -= math.Floor(c)
	if c >= 1 {
		return 0
	}
	return c
}
