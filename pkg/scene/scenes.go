package scene

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
	"github.com/df07/go-progressive-pathtracer/pkg/geometry"
	"github.com/df07/go-progressive-pathtracer/pkg/material"
)

// ErrUnknownScene is returned by Load for names that are not registered
var ErrUnknownScene = errors.New("unknown scene")

// Options configures a built-in scene
type Options struct {
	AspectRatio float64
	Quality     geometry.Quality
	Order       geometry.Order
	Texture     material.ColorSource // Overrides the default texture of textured scenes
}

// DefaultOptions returns 16:9 options with the high quality BVH builder
func DefaultOptions() Options {
	return Options{
		AspectRatio: 16.0 / 9.0,
		Quality:     geometry.QualityHigh,
		Order:       geometry.NearestFirst,
	}
}

// Info describes a registered scene
type Info struct {
	Name        string
	Description string
}

type sceneEntry struct {
	description string
	build       func(b *Builder, opts Options) error
}

var registry = map[string]sceneEntry{
	"single": {
		description: "one white diffuse sphere at (0,0,-5) seen from the origin",
		build:       buildSingle,
	},
	"balls": {
		description: "a field of random diffuse, glossy and glass spheres on a large ground sphere",
		build:       buildBalls,
	},
	"room": {
		description: "closed room lit by an emissive ceiling quad with a mirror box and a glass sphere",
		build:       buildRoom,
	},
	"glass": {
		description: "glass meshes with absorption over a checkered floor",
		build:       buildGlass,
	},
	"textured": {
		description: "textured quad and uv sphere meshes with a normal map",
		build:       buildTextured,
	},
}

// Names returns the registered scene names in sorted order
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List returns the registered scenes in name order
func List() []Info {
	infos := make([]Info, 0, len(registry))
	for _, name := range Names() {
		infos = append(infos, Info{Name: name, Description: registry[name].description})
	}
	return infos
}

// Load builds the named scene
func Load(name string, opts Options) (*Scene, error) {
	entry, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	if opts.AspectRatio <= 0 {
		opts.AspectRatio = DefaultOptions().AspectRatio
	}

	b := NewBuilder(name, geometry.BuildOptions{Quality: opts.Quality})
	b.SetTraversalOrder(opts.Order)
	if err := entry.build(b, opts); err != nil {
		return nil, fmt.Errorf("build scene %q: %w", name, err)
	}
	return b.Build()
}

func buildSingle(b *Builder, opts Options) error {
	b.SetCamera(geometry.NewCamera(geometry.CameraConfig{
		Position:      core.NewVec3(0, 0, 0),
		LookAt:        core.NewVec3(0, 0, -1),
		Up:            core.Up,
		VFov:          45,
		AspectRatio:   opts.AspectRatio,
		FocusDistance: 5,
	}))
	b.AddSphere(geometry.NewSphere(core.NewVec3(0, 0, -5), 1, material.NewDiffuse(core.NewVec3(1, 1, 1))))
	return nil
}

func buildBalls(b *Builder, opts Options) error {
	b.SetCamera(geometry.NewCamera(geometry.CameraConfig{
		Position:        core.NewVec3(13, 2, 3),
		LookAt:          core.NewVec3(0, 0, 0),
		Up:              core.Up,
		VFov:            20,
		AspectRatio:     opts.AspectRatio,
		FocusDistance:   10,
		DefocusStrength: 2,
		DivergeStrength: 0.5,
	}))

	b.AddSphere(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewDiffuse(core.NewVec3(0.5, 0.5, 0.5))))

	// Fixed seed keeps the layout identical between runs
	rng := core.NewRandomStream(42)
	for a := -6; a < 6; a++ {
		for c := -6; c < 6; c++ {
			center := core.NewVec3(float64(a)+0.9*rng.Float(), 0.2, float64(c)+0.9*rng.Float())
			if center.Subtract(core.NewVec3(4, 0.2, 0)).Length() <= 0.9 {
				continue
			}

			var mat material.Material
			switch choose := rng.Float(); {
			case choose < 0.7:
				albedo := rng.Get3D().MultiplyVec(rng.Get3D())
				mat = material.NewDiffuse(albedo)
			case choose < 0.9:
				albedo := rng.Get3D().Multiply(0.5).Add(core.NewVec3(0.5, 0.5, 0.5))
				mat = material.NewDiffuse(albedo).
					WithSpecular(core.NewVec3(1, 1, 1), 0.3+0.5*rng.Float()).
					WithSmoothness(0.7 + 0.3*rng.Float())
			default:
				mat = material.NewGlass(1.5)
			}
			b.AddSphere(geometry.NewSphere(center, 0.2, mat))
		}
	}

	b.AddSphere(geometry.NewSphere(core.NewVec3(0, 1, 0), 1, material.NewGlass(1.5)))
	b.AddSphere(geometry.NewSphere(core.NewVec3(-4, 1, 0), 1, material.NewDiffuse(core.NewVec3(0.4, 0.2, 0.1))))
	b.AddSphere(geometry.NewSphere(core.NewVec3(4, 1, 0), 1,
		material.NewDiffuse(core.NewVec3(0.7, 0.6, 0.5)).WithSpecular(core.NewVec3(0.7, 0.6, 0.5), 1)))
	return nil
}

func buildRoom(b *Builder, opts Options) error {
	b.SetCamera(geometry.NewCamera(geometry.CameraConfig{
		Position:      core.NewVec3(0, 0, 3.8),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.Up,
		VFov:          50,
		AspectRatio:   opts.AspectRatio,
		FocusDistance: 3.8,
	}))

	// The room is a box seen from inside, so its faces are flipped inward
	walls := material.NewDiffuse(core.NewVec3(0.73, 0.73, 0.73))
	room := TRS(core.Vec3{}, core.Vec3{}, core.NewVec3(2, 2, 5))
	if err := b.AddMesh("room", Flip(Box()), room, walls); err != nil {
		return err
	}

	red := material.NewDiffuse(core.NewVec3(0.65, 0.05, 0.05))
	leftWall := TRS(core.NewVec3(-1.99, 0, 0), core.NewVec3(0, math.Pi/2, 0), core.NewVec3(2, 2, 1))
	if err := b.AddMesh("left wall", Quad(), leftWall, red); err != nil {
		return err
	}

	green := material.NewDiffuse(core.NewVec3(0.12, 0.45, 0.15))
	rightWall := TRS(core.NewVec3(1.99, 0, 0), core.NewVec3(0, -math.Pi/2, 0), core.NewVec3(2, 2, 1))
	if err := b.AddMesh("right wall", Quad(), rightWall, green); err != nil {
		return err
	}

	light := material.NewEmissive(core.NewVec3(1, 0.95, 0.85), 6)
	lamp := TRS(core.NewVec3(0, 1.98, 0), core.NewVec3(math.Pi/2, 0, 0), core.NewVec3(0.6, 0.6, 1))
	if err := b.AddMesh("light", Quad(), lamp, light); err != nil {
		return err
	}

	mirror := material.NewDiffuse(core.NewVec3(0.9, 0.9, 0.9)).WithSpecular(core.NewVec3(0.95, 0.95, 0.95), 1)
	block := TRS(core.NewVec3(-0.7, -1.4, -0.6), core.NewVec3(0, 0.3, 0), core.NewVec3(0.5, 0.6, 0.5))
	if err := b.AddMesh("mirror box", Box(), block, mirror); err != nil {
		return err
	}

	b.AddSphere(geometry.NewSphere(core.NewVec3(0.7, -1.4, 0.2), 0.6, material.NewGlass(1.5)))
	return nil
}

func buildGlass(b *Builder, opts Options) error {
	b.SetCamera(geometry.NewCamera(geometry.CameraConfig{
		Position:      core.NewVec3(0, 1.5, 6),
		LookAt:        core.NewVec3(0, 0.5, 0),
		Up:            core.Up,
		VFov:          40,
		AspectRatio:   opts.AspectRatio,
		FocusDistance: 6,
	}))

	checker := b.AddTexture(material.NewCheckerTexture(8, core.NewVec3(0.9, 0.9, 0.9), core.NewVec3(0.2, 0.2, 0.2)))
	floor := TRS(core.Vec3{}, core.NewVec3(-math.Pi/2, 0, 0), core.NewVec3(8, 8, 1))
	if err := b.AddMesh("floor", Quad(), floor, material.NewMaterial().WithTexture(checker)); err != nil {
		return err
	}

	tinted := material.NewGlass(1.5).WithAbsorption(core.NewVec3(0.1, 0.6, 0.9), 1.5)
	cube := TRS(core.NewVec3(-1.2, 0.6, 0), core.NewVec3(0, math.Pi/5, 0), core.NewVec3(0.6, 0.6, 0.6))
	if err := b.AddMesh("glass cube", Box(), cube, tinted); err != nil {
		return err
	}

	water := material.NewGlass(1.33)
	ball := TRS(core.NewVec3(1.2, 0.8, 0), core.Vec3{}, core.NewVec3(0.8, 0.8, 0.8))
	if err := b.AddMesh("glass ball", UVSphere(32, 16), ball, water); err != nil {
		return err
	}

	b.AddSphere(geometry.NewSphere(core.NewVec3(0, 0.4, -1.5), 0.4, material.NewEmissive(core.NewVec3(1, 0.6, 0.2), 4)))
	return nil
}

func buildTextured(b *Builder, opts Options) error {
	b.SetCamera(geometry.NewCamera(geometry.CameraConfig{
		Position:      core.NewVec3(0, 1, 5),
		LookAt:        core.NewVec3(0, 0.5, 0),
		Up:            core.Up,
		VFov:          45,
		AspectRatio:   opts.AspectRatio,
		FocusDistance: 5,
	}))

	var texture material.ColorSource = material.NewCheckerboardImage(256, 256, 32,
		core.NewVec3(0.8, 0.1, 0.1), core.NewVec3(0.9, 0.9, 0.9))
	if opts.Texture != nil {
		texture = opts.Texture
	}
	diffuse := b.AddTexture(texture)
	gradient := b.AddTexture(material.NewGradientImage(64, 64, core.NewVec3(0.2, 0.4, 0.9), core.NewVec3(0.9, 0.8, 0.3)))
	normals := b.AddTexture(material.NewFlatNormalImage(16, 16))

	floor := TRS(core.Vec3{}, core.NewVec3(-math.Pi/2, 0, 0), core.NewVec3(4, 4, 1))
	if err := b.AddMesh("floor", Quad(), floor, material.NewMaterial().WithTexture(gradient)); err != nil {
		return err
	}

	panel := TRS(core.NewVec3(-1.2, 1, -1), core.NewVec3(0, math.Pi/8, 0), core.NewVec3(1, 1, 1))
	if err := b.AddMesh("panel", Quad(), panel, material.NewMaterial().WithTexture(diffuse).WithNormalMap(normals)); err != nil {
		return err
	}

	globe := TRS(core.NewVec3(1.2, 0.8, 0), core.NewVec3(0, math.Pi/4, 0), core.NewVec3(0.8, 0.8, 0.8))
	if err := b.AddMesh("globe", UVSphere(48, 24), globe, material.NewMaterial().WithTexture(diffuse)); err != nil {
		return err
	}
	return nil
}
