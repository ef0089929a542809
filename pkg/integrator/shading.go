package integrator

import (
	"math"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
	"github.com/df07/go-progressive-pathtracer/pkg/geometry"
	"github.com/df07/go-progressive-pathtracer/pkg/material"
)

const (
	// Glass moves the next ray off the surface by a fraction of the hit distance,
	// never less than glassMinOffset
	glassOffsetScale = 1e-4
	glassMinOffset   = 1e-3
)

// shade applies the material at hit to ray: it picks the next direction, moves the
// origin and updates the throughput in place. The returned light is the surface
// emission weighted by the throughput the ray carried into the hit.
func (pt *PathTracer) shade(ray *core.Ray, hit geometry.Hit, sampler core.Sampler) core.Vec3 {
	if hit.Material.IsGlass() {
		pt.shadeGlass(ray, hit, sampler)
		return core.Vec3{}
	}
	return pt.shadeOpaque(ray, hit, sampler)
}

// shadeGlass reflects or refracts through a dielectric boundary. Exiting rays are
// attenuated by Beer-Lambert absorption over the distance travelled inside.
func (pt *PathTracer) shadeGlass(ray *core.Ray, hit geometry.Hit, sampler core.Sampler) {
	m := hit.Material

	ratio := 1 / m.IOR
	if hit.Backface {
		ray.Throughput = ray.Throughput.MultiplyVec(m.Absorption().Multiply(-hit.T).Exp())
		ratio = m.IOR
	}

	cosTheta := math.Min(-ray.Direction.Dot(hit.Normal), 1)

	var direction core.Vec3
	refracted := false
	if !material.CannotRefract(cosTheta, ratio) && sampler.Get1D() >= material.Reflectance(cosTheta, ratio) {
		direction, refracted = material.Refract(ray.Direction, hit.Normal, ratio)
	}

	// The normal faces the incoming ray: reflections stay on its side, refractions cross
	offset := math.Max(glassMinOffset, hit.T*glassOffsetScale)
	side := hit.Normal
	if refracted {
		side = side.Negate()
	} else {
		direction = material.Reflect(ray.Direction, hit.Normal)
	}

	ray.Origin = hit.Point.Add(side.Multiply(offset))
	ray.SetDirection(direction)
}

// shadeOpaque picks between a diffuse and a specular bounce and blends the diffuse
// direction toward the mirror direction by smoothness on specular bounces
func (pt *PathTracer) shadeOpaque(ray *core.Ray, hit geometry.Hit, sampler core.Sampler) core.Vec3 {
	m := hit.Material
	normal := hit.Normal
	if pt.NormalMapping {
		normal = pt.perturbNormal(hit)
	}

	isSpecular := sampler.Get1D() < m.SpecularProbability

	var diffuse core.Vec3
	if pt.CosineWeightedDiffuse {
		diffuse = core.SampleCosineHemisphere(normal, sampler.Get2D())
	} else {
		diffuse = core.SampleHemisphere(normal, sampler)
	}
	specular := material.Reflect(ray.Direction, normal)

	var weight float64
	if isSpecular {
		weight = m.Smoothness
	}
	direction := diffuse.Lerp(specular, weight).SafeNormalize(normal)

	emitted := m.Emission().MultiplyVec(ray.Throughput)

	if isSpecular {
		ray.Throughput = ray.Throughput.MultiplyVec(m.SpecularColor)
	} else {
		ray.Throughput = ray.Throughput.MultiplyVec(pt.Scene.Textures.BaseColor(m, hit.UV, hit.Point))
	}

	ray.Origin = hit.Point
	ray.SetDirection(direction)
	return emitted
}

// perturbNormal bends the shading normal by the material's normal map, if it has one.
// The map is read in a tangent frame built around the geometric normal.
func (pt *PathTracer) perturbNormal(hit geometry.Hit) core.Vec3 {
	texel, ok := pt.Scene.Textures.NormalTexel(hit.Material, hit.UV, hit.Point)
	if !ok {
		return hit.Normal
	}

	local := material.DecodeNormal(texel)
	tangent, bitangent := tangentFrame(hit.Normal)
	return tangent.Multiply(local.X).
		Add(bitangent.Multiply(local.Y)).
		Add(hit.Normal.Multiply(local.Z)).
		SafeNormalize(hit.Normal)
}

// tangentFrame returns two unit vectors completing an orthonormal basis with n
func tangentFrame(n core.Vec3) (core.Vec3, core.Vec3) {
	helper := core.NewVec3(1, 0, 0)
	if math.Abs(n.X) > 0.9 {
		helper = core.Up
	}
	tangent := helper.Cross(n).Normalize()
	return tangent, n.Cross(tangent)
}

// russianRoulette terminates the path when the draw reaches p, p being the largest
// throughput channel, and reweights survivors by 1/p. A p above 1 always survives
// and is scaled down. It reports whether the path survives.
func russianRoulette(ray *core.Ray, sampler core.Sampler) bool {
	p := ray.Throughput.MaxComponent()
	if sampler.Get1D() >= p {
		return false
	}
	ray.Throughput = ray.Throughput.Multiply(1 / p)
	return true
}
