package lights

import (
	"math"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
)

// Environment returns the radiance arriving along a ray that escapes the scene
type Environment interface {
	Radiance(direction core.Vec3) core.Vec3
}

// Sky is a procedural sky: a horizon to zenith gradient above a flat ground color,
// plus a sun lobe that is only visible above the horizon
type Sky struct {
	Horizon      core.Vec3
	Zenith       core.Vec3
	Ground       core.Vec3
	SunDirection core.Vec3 // Unit vector toward the sun
	SunFocus     float64   // Lobe exponent, larger is a smaller sun
	SunIntensity float64
}

// NewSky returns a daylight sky with the sun high in the south-west
func NewSky() *Sky {
	return &Sky{
		Horizon:      core.NewVec3(1, 1, 1),
		Zenith:       core.NewVec3(0.08, 0.37, 0.73),
		Ground:       core.NewVec3(0.35, 0.3, 0.35),
		SunDirection: core.NewVec3(-0.4, 0.8, 0.45).Normalize(),
		SunFocus:     500,
		SunIntensity: 10,
	}
}

// Radiance evaluates the sky along a unit direction
func (s *Sky) Radiance(direction core.Vec3) core.Vec3 {
	gradientT := math.Pow(Smoothstep(0, 0.4, direction.Y), 0.35)
	groundToSkyT := Smoothstep(-0.01, 0, direction.Y)
	gradient := s.Horizon.Lerp(s.Zenith, gradientT)

	var sun float64
	if groundToSkyT >= 1 {
		sun = math.Pow(math.Max(0, direction.Dot(s.SunDirection)), s.SunFocus) * s.SunIntensity
	}

	return s.Ground.Lerp(gradient, groundToSkyT).Add(core.NewVec3(sun, sun, sun))
}

// Uniform is a constant environment, useful for furnace tests and flat lighting
type Uniform struct {
	Color core.Vec3
}

// NewUniform creates a constant environment
func NewUniform(color core.Vec3) *Uniform {
	return &Uniform{Color: color}
}

// Radiance returns the constant color for every direction
func (u *Uniform) Radiance(direction core.Vec3) core.Vec3 {
	return u.Color
}

// Gradient blends linearly from Bottom (straight down) to Top (straight up)
type Gradient struct {
	Top    core.Vec3
	Bottom core.Vec3
}

// NewGradient creates a vertical gradient environment
func NewGradient(top, bottom core.Vec3) *Gradient {
	return &Gradient{Top: top, Bottom: bottom}
}

// Radiance maps direction.Y from [-1,1] onto the gradient
func (g *Gradient) Radiance(direction core.Vec3) core.Vec3 {
	t := 0.5 * (direction.Y + 1.0)
	return g.Bottom.Lerp(g.Top, t)
}

// Smoothstep is the cubic Hermite step between edge0 and edge1
func Smoothstep(edge0, edge1, x float64) float64 {
	t := math.Max(0, math.Min(1, (x-edge0)/(edge1-edge0)))
	return t * t * (3 - 2*t)
}
