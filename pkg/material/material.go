package material

import (
	"github.com/df07/go-progressive-pathtracer/pkg/core"
)

// Kind selects the shading branch taken for a surface
type Kind int

const (
	Opaque   Kind = iota // Diffuse/specular mix
	Glass                // Dielectric with refraction and absorption
	Textured             // Opaque with the base color read from a texture
)

// String returns a readable name for the kind
func (k Kind) String() string {
	switch k {
	case Opaque:
		return "opaque"
	case Glass:
		return "glass"
	case Textured:
		return "textured"
	default:
		return "unknown"
	}
}

// NoTexture marks an unset texture slot
const NoTexture = -1

// Material describes how a surface emits, reflects and transmits light. Materials are
// small values copied into every primitive that uses them and never mutated while
// rendering.
type Material struct {
	Color               core.Vec3 // Base (albedo) color
	EmissionColor       core.Vec3
	EmissionStrength    float64
	SpecularColor       core.Vec3 // Tint applied on specular bounces
	SpecularProbability float64   // Chance in [0,1] that a bounce is specular
	Smoothness          float64   // Mix weight between diffuse and mirror direction
	IOR                 float64   // Index of refraction, glass only
	AbsorptionColor     core.Vec3 // Beer-Lambert coefficients, glass only
	AbsorptionStrength  float64
	Kind                Kind
	DiffuseTexture      int // Index into the texture table or NoTexture
	NormalTexture       int // Index into the texture table or NoTexture
}

// NewMaterial returns an opaque, non-emissive grey material with no textures
func NewMaterial() Material {
	return Material{
		Color:          core.NewVec3(0.7, 0.7, 0.7),
		SpecularColor:  core.NewVec3(1, 1, 1),
		Smoothness:     1.0,
		IOR:            1.0,
		Kind:           Opaque,
		DiffuseTexture: NoTexture,
		NormalTexture:  NoTexture,
	}
}

// NewDiffuse creates an opaque material with the given base color
func NewDiffuse(color core.Vec3) Material {
	return NewMaterial().WithColor(color)
}

// NewGlass creates a clear dielectric with the given index of refraction
func NewGlass(ior float64) Material {
	m := NewMaterial()
	m.Color = core.NewVec3(1, 1, 1)
	m.IOR = ior
	m.Kind = Glass
	return m
}

// NewEmissive creates a black surface that emits color scaled by strength
func NewEmissive(color core.Vec3, strength float64) Material {
	return NewMaterial().WithColor(core.Vec3{}).WithEmission(color, strength)
}

// WithColor returns a copy with a new base color
func (m Material) WithColor(color core.Vec3) Material {
	m.Color = color
	return m
}

// WithEmission returns a copy that emits color scaled by strength
func (m Material) WithEmission(color core.Vec3, strength float64) Material {
	m.EmissionColor = color
	m.EmissionStrength = strength
	return m
}

// WithSpecular returns a copy with a specular tint and bounce probability
func (m Material) WithSpecular(color core.Vec3, probability float64) Material {
	m.SpecularColor = color
	m.SpecularProbability = probability
	return m
}

// WithSmoothness returns a copy with a new smoothness
func (m Material) WithSmoothness(smoothness float64) Material {
	m.Smoothness = smoothness
	return m
}

// WithAbsorption returns a copy with Beer-Lambert absorption coefficients
func (m Material) WithAbsorption(color core.Vec3, strength float64) Material {
	m.AbsorptionColor = color
	m.AbsorptionStrength = strength
	return m
}

// WithTexture returns a textured copy sampling its base color from the given table slot
func (m Material) WithTexture(diffuse int) Material {
	m.DiffuseTexture = diffuse
	m.Kind = Textured
	return m
}

// WithNormalMap returns a copy referencing a normal map
func (m Material) WithNormalMap(normal int) Material {
	m.NormalTexture = normal
	return m
}

// IsGlass reports whether the glass branch handles this material
func (m Material) IsGlass() bool {
	return m.Kind == Glass
}

// Emission returns the emitted radiance
func (m Material) Emission() core.Vec3 {
	return m.EmissionColor.Multiply(m.EmissionStrength)
}

// Absorption returns the per-unit-distance attenuation coefficients
func (m Material) Absorption() core.Vec3 {
	return m.AbsorptionColor.Multiply(m.AbsorptionStrength)
}
