package renderer

import (
	"github.com/df07/go-progressive-pathtracer/pkg/core"
	"github.com/df07/go-progressive-pathtracer/pkg/geometry"
	"github.com/df07/go-progressive-pathtracer/pkg/integrator"
	"github.com/df07/go-progressive-pathtracer/pkg/lights"
	"github.com/df07/go-progressive-pathtracer/pkg/scene"
)

// Kernel renders individual pixels of one frame. It is read-only once built and
// shared by every worker.
type Kernel struct {
	scene  *scene.Scene
	params Params
	tracer *integrator.PathTracer
}

// NewKernel prepares the per-frame kernel for params
func NewKernel(s *scene.Scene, params Params) *Kernel {
	var environment lights.Environment
	if params.EnvironmentLight {
		environment = lights.NewSky()
	}

	tracer := integrator.NewPathTracer(s, params.MaxBounces, environment)
	tracer.NormalMapping = params.NormalMapping
	tracer.CosineWeightedDiffuse = params.CosineWeightedDiffuse

	return &Kernel{scene: s, params: params, tracer: tracer}
}

// Params returns the frame parameters the kernel was built with
func (k *Kernel) Params() Params {
	return k.params
}

// BlendWeight returns the weight of a new frame in the running average: 1/(frame+1)
// once there is history to blend with, otherwise 1 (overwrite)
func BlendWeight(frame int, accumulate bool) float64 {
	if !accumulate || frame < 1 {
		return 1
	}
	return 1 / float64(frame+1)
}

// RenderPixel renders pixel (x, y), row 0 being the top of the image, and writes
// the result to surface. stats collects traversal counts and may be nil.
func (k *Kernel) RenderPixel(x, y int, surface Surface, stats *geometry.TraversalStats) {
	if k.params.DebugMode != DebugOff {
		surface.Store(x, y, k.debugColor(x, y).Vec4(1))
		return
	}

	rng := core.NewPixelStream(float64(x), float64(y), k.params.Width, k.params.Frame)
	sample := k.samplePixel(x, y, rng, stats)

	weight := BlendWeight(k.params.Frame, k.params.Accumulate)
	if weight < 1 {
		surface.Store(x, y, surface.Load(x, y).Lerp(sample, weight))
	} else {
		surface.Store(x, y, sample)
	}
}

// samplePixel averages SamplesPerPixel jittered camera paths
func (k *Kernel) samplePixel(x, y int, rng *core.RandomStream, stats *geometry.TraversalStats) core.Vec4 {
	n := k.params.SamplesPerPixel
	if n <= 0 {
		return core.NewVec4(0, 0, 0, 1)
	}

	camera := &k.scene.Camera
	var sum core.Vec3
	for i := 0; i < n; i++ {
		jitter := core.NewVec2(rng.Float()-0.5, rng.Float()-0.5)
		defocus := core.SampleUnitDisk(rng)
		diverge := core.SampleUnitDisk(rng)

		pixel := k.cameraPixel(x, y).Add(jitter)
		ray := camera.GetRay(pixel, k.params.Width, k.params.Height, defocus, diverge)
		sum = sum.Add(k.tracer.Trace(ray, rng, stats))
	}

	return sum.Multiply(1 / float64(n)).Vec4(1)
}

// cameraPixel maps an image row (growing down) to the camera's upward pixel y
func (k *Kernel) cameraPixel(x, y int) core.Vec2 {
	return core.NewVec2(float64(x), float64(k.params.Height-1-y))
}
