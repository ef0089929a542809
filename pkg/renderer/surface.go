package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
)

// Surface is the per-pixel output the kernel reads its previous value from and
// writes its new value to
type Surface interface {
	Load(x, y int) core.Vec4
	Store(x, y int, c core.Vec4)
}

// AccumulationBuffer is an in-memory Surface. Pixel tasks touch disjoint cells, so
// concurrent Load/Store on different pixels needs no locking.
type AccumulationBuffer struct {
	width, height int
	pixels        []core.Vec4
}

// NewAccumulationBuffer creates a cleared buffer
func NewAccumulationBuffer(width, height int) *AccumulationBuffer {
	return &AccumulationBuffer{
		width:  width,
		height: height,
		pixels: make([]core.Vec4, width*height),
	}
}

// Width returns the buffer width in pixels
func (b *AccumulationBuffer) Width() int { return b.width }

// Height returns the buffer height in pixels
func (b *AccumulationBuffer) Height() int { return b.height }

// Load returns the accumulated value at (x, y)
func (b *AccumulationBuffer) Load(x, y int) core.Vec4 {
	return b.pixels[y*b.width+x]
}

// Store replaces the accumulated value at (x, y)
func (b *AccumulationBuffer) Store(x, y int, c core.Vec4) {
	b.pixels[y*b.width+x] = c
}

// Reset clears all pixels, e.g. after the camera moved
func (b *AccumulationBuffer) Reset() {
	clear(b.pixels)
}

// Image converts the buffer to an 8-bit image. Row 0 is the top of the frame.
func (b *AccumulationBuffer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.width, b.height))
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			img.SetRGBA(x, y, vec3ToColor(b.Load(x, y).Vec3()))
		}
	}
	return img
}

// vec3ToColor converts a linear color to RGBA with gamma 2 and clamping
func vec3ToColor(colorVec core.Vec3) color.RGBA {
	colorVec = colorVec.GammaCorrect(2.0)
	colorVec = colorVec.Clamp(0.0, 1.0)

	return color.RGBA{
		R: uint8(255 * colorVec.X),
		G: uint8(255 * colorVec.Y),
		B: uint8(255 * colorVec.Z),
		A: 255,
	}
}
