package renderer

import (
	"image"
	"time"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
)

// FrameStats contains statistics about one rendered frame or tile
type FrameStats struct {
	Frame         int           // Frame index
	Pixels        int           // Pixels rendered
	Samples       int           // Camera paths traced
	BoxTests      int           // BVH child box tests
	TriangleTests int           // Ray/triangle tests
	Duration      time.Duration // Wall time, set for whole frames only
}

// Add merges tile statistics into s
func (s *FrameStats) Add(other FrameStats) {
	s.Pixels += other.Pixels
	s.Samples += other.Samples
	s.BoxTests += other.BoxTests
	s.TriangleTests += other.TriangleTests
}

// AverageSamples returns samples per pixel
func (s FrameStats) AverageSamples() float64 {
	if s.Pixels == 0 {
		return 0
	}
	return float64(s.Samples) / float64(s.Pixels)
}

// TestsPerSample returns box plus triangle tests per camera path
func (s FrameStats) TestsPerSample() float64 {
	if s.Samples == 0 {
		return 0
	}
	return float64(s.BoxTests+s.TriangleTests) / float64(s.Samples)
}

// SamplesPerSecond returns camera paths traced per second of wall time
func (s FrameStats) SamplesPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.Samples) / s.Duration.Seconds()
}

// CalculateAverageLuminance returns the mean perceptual luminance of img in [0,1]
func CalculateAverageLuminance(img *image.RGBA) float64 {
	bounds := img.Bounds()
	count := bounds.Dx() * bounds.Dy()
	if count == 0 {
		return 0
	}

	var total float64
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.RGBAAt(x, y)
			total += core.NewVec3(float64(c.R), float64(c.G), float64(c.B)).Multiply(1.0 / 255).Luminance()
		}
	}
	return total / float64(count)
}
