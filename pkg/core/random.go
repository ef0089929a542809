package core

import "math"

// seedFrameStride decorrelates the seeds of successive frames for the same pixel
const seedFrameStride = 719393

// RandomStream is a deterministic PCG-style generator. Each pixel sample owns its
// own stream; there is no shared generator state between pixels or frames.
type RandomStream struct {
	state uint32
}

// NewRandomStream creates a stream from a raw seed
func NewRandomStream(seed uint32) *RandomStream {
	return &RandomStream{state: seed}
}

// PixelSeed derives the seed for a pixel in a given frame:
// floor(y)*width + floor(x) + |frame|*719393
func PixelSeed(x, y float64, width, frame int) uint32 {
	if frame < 0 {
		frame = -frame
	}
	px := uint32(int64(math.Floor(x)))
	py := uint32(int64(math.Floor(y)))
	return py*uint32(width) + px + uint32(frame)*seedFrameStride
}

// NewPixelStream creates the stream for a pixel in a given frame
func NewPixelStream(x, y float64, width, frame int) *RandomStream {
	return NewRandomStream(PixelSeed(x, y, width, frame))
}

// Seed returns the current generator state
func (r *RandomStream) Seed() uint32 {
	return r.state
}

// Uint32 advances the stream and returns the next permuted value. The returned value
// also becomes the new state.
func (r *RandomStream) Uint32() uint32 {
	state := r.state*747796405 + 2891336453
	result := ((state >> ((state >> 28) + 4)) ^ state) * 277803737
	result = (result >> 22) ^ result
	r.state = result
	return result
}

// Float returns a uniform value in [0, 1]
func (r *RandomStream) Float() float64 {
	return float64(r.Uint32()) / 4294967295.0
}

// Get1D implements Sampler
func (r *RandomStream) Get1D() float64 {
	return r.Float()
}

// Get2D implements Sampler
func (r *RandomStream) Get2D() Vec2 {
	return NewVec2(r.Float(), r.Float())
}

// Get3D implements Sampler
func (r *RandomStream) Get3D() Vec3 {
	return NewVec3(r.Float(), r.Float(), r.Float())
}
