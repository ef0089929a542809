package material

import (
	"math"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
)

// CheckerTexture alternates two colors on a grid in texture space
type CheckerTexture struct {
	Even, Odd core.Vec3
	Scale     float64 // Number of checks per unit of UV
}

// NewCheckerTexture creates a checkerboard with scale checks per UV unit
func NewCheckerTexture(scale float64, even, odd core.Vec3) *CheckerTexture {
	return &CheckerTexture{Even: even, Odd: odd, Scale: scale}
}

// Evaluate returns the color of the check containing uv
func (c *CheckerTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	cx := int(math.Floor(uv.X * c.Scale))
	cy := int(math.Floor(uv.Y * c.Scale))
	if (cx+cy)%2 == 0 {
		return c.Even
	}
	return c.Odd
}

// UVTexture shows texture coordinates as colors: U in red, V in green
type UVTexture struct{}

// Evaluate returns (u, v, 0) with both coordinates wrapped into [0,1)
func (UVTexture) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	return core.NewVec3(wrap(uv.X), wrap(uv.Y), 0)
}

// NewCheckerboardImage bakes a checkerboard into an image texture, checkSize pixels per check
func NewCheckerboardImage(width, height, checkSize int, color1, color2 core.Vec3) *ImageTexture {
	pixels := make([]core.Vec3, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if (x/checkSize+y/checkSize)%2 == 0 {
				pixels[y*width+x] = color1
			} else {
				pixels[y*width+x] = color2
			}
		}
	}
	return NewImageTexture(width, height, pixels)
}

// NewGradientImage bakes a vertical gradient from top to bottom
func NewGradientImage(width, height int, top, bottom core.Vec3) *ImageTexture {
	pixels := make([]core.Vec3, width*height)
	for y := 0; y < height; y++ {
		t := 0.0
		if height > 1 {
			t = float64(y) / float64(height-1)
		}
		color := top.Lerp(bottom, t)
		for x := 0; x < width; x++ {
			pixels[y*width+x] = color
		}
	}
	return NewImageTexture(width, height, pixels)
}

// NewFlatNormalImage bakes a normal map whose every texel encodes the +Z tangent normal
func NewFlatNormalImage(width, height int) *ImageTexture {
	pixels := make([]core.Vec3, width*height)
	for i := range pixels {
		pixels[i] = core.NewVec3(0.5, 0.5, 1)
	}
	return NewImageTexture(width, height, pixels)
}
