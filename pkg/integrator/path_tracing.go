package integrator

import (
	"github.com/df07/go-progressive-pathtracer/pkg/core"
	"github.com/df07/go-progressive-pathtracer/pkg/geometry"
	"github.com/df07/go-progressive-pathtracer/pkg/lights"
	"github.com/df07/go-progressive-pathtracer/pkg/scene"
)

// PathTracer implements unidirectional path tracing with Russian roulette
// termination. It holds only read-only state and is shared by every pixel task.
type PathTracer struct {
	Scene      *scene.Scene
	MaxBounces int

	// Environment lights rays that escape the scene; nil leaves them black
	Environment lights.Environment

	// NormalMapping enables the material normal map hook
	NormalMapping bool

	// CosineWeightedDiffuse replaces the uniform hemisphere sampler with a cosine
	// weighted one
	CosineWeightedDiffuse bool
}

// NewPathTracer creates a path tracer for s
func NewPathTracer(s *scene.Scene, maxBounces int, environment lights.Environment) *PathTracer {
	return &PathTracer{
		Scene:       s,
		MaxBounces:  maxBounces,
		Environment: environment,
	}
}

// Trace returns the radiance carried back along ray for one sample. The loop runs
// from the ray's bounce index through MaxBounces inclusive and ends early when the
// ray escapes or Russian roulette terminates it. stats may be nil.
func (pt *PathTracer) Trace(ray core.Ray, sampler core.Sampler, stats *geometry.TraversalStats) core.Vec3 {
	var light core.Vec3

	for ; ray.Bounce <= pt.MaxBounces; ray.Bounce++ {
		hit, ok := pt.Scene.Query(&ray, stats)
		if !ok {
			light = light.Add(pt.escape(&ray))
			break
		}

		light = light.Add(pt.shade(&ray, hit, sampler))

		if !russianRoulette(&ray, sampler) {
			break
		}
	}

	return light
}

// escape returns the environment light for a ray leaving the scene
func (pt *PathTracer) escape(ray *core.Ray) core.Vec3 {
	if pt.Environment == nil {
		return core.Vec3{}
	}
	return pt.Environment.Radiance(ray.Direction).MultiplyVec(ray.Throughput)
}
