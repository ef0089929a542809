package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
	"github.com/df07/go-progressive-pathtracer/pkg/geometry"
	"github.com/df07/go-progressive-pathtracer/pkg/log"
	"github.com/df07/go-progressive-pathtracer/pkg/material"
)

var (
	// ErrEmptyMesh is returned when a mesh has no triangles
	ErrEmptyMesh = errors.New("mesh has no triangles")

	// ErrUnknownTexture is returned when a material references a missing texture slot
	ErrUnknownTexture = errors.New("material references unknown texture")
)

// Builder packs spheres and meshes into the flat buffers of a Scene. Each mesh gets
// its own BVH whose node and triangle indices stay local to the mesh's ranges.
type Builder struct {
	logger log.Logger
	opts   geometry.BuildOptions
	scene  *Scene
}

// NewBuilder creates a builder for a named scene
func NewBuilder(name string, opts geometry.BuildOptions) *Builder {
	return &Builder{
		logger: log.New("scene"),
		opts:   opts,
		scene:  &Scene{Name: name},
	}
}

// SetCamera sets the scene camera
func (b *Builder) SetCamera(camera geometry.Camera) {
	b.scene.Camera = camera
}

// SetTraversalOrder sets the BVH child order used by queries
func (b *Builder) SetTraversalOrder(order geometry.Order) {
	b.scene.TraversalOrder = order
}

// AddSphere adds a world-space sphere
func (b *Builder) AddSphere(sphere geometry.Sphere) {
	b.scene.Spheres = append(b.scene.Spheres, sphere)
}

// AddTexture appends a texture to the table and returns its index
func (b *Builder) AddTexture(texture material.ColorSource) int {
	b.scene.Textures = append(b.scene.Textures, texture)
	return len(b.scene.Textures) - 1
}

// AddMesh builds a BVH over triangles (given in local space) and places the mesh in
// the world with the localToWorld transform
func (b *Builder) AddMesh(name string, triangles []geometry.Triangle, localToWorld core.Mat4, mat material.Material) error {
	if len(triangles) == 0 {
		return fmt.Errorf("mesh %q: %w", name, ErrEmptyMesh)
	}

	worldToLocal, err := localToWorld.Inverse()
	if err != nil {
		return fmt.Errorf("mesh %q: %w", name, err)
	}

	bvh, err := geometry.BuildBVH(triangles, b.opts)
	if err != nil {
		return fmt.Errorf("mesh %q: build bvh: %w", name, err)
	}

	mesh := Mesh{
		Name:           name,
		WorldToLocal:   worldToLocal,
		LocalToWorld:   localToWorld,
		TriangleOffset: len(b.scene.Triangles),
		TriangleCount:  len(bvh.Triangles),
		NodeOffset:     len(b.scene.Nodes),
		NodeCount:      len(bvh.Nodes),
		Material:       mat,
		BVHStats:       bvh.Stats,
	}
	b.scene.Triangles = append(b.scene.Triangles, bvh.Triangles...)
	b.scene.Nodes = append(b.scene.Nodes, bvh.Nodes...)
	b.scene.Meshes = append(b.scene.Meshes, mesh)

	b.logger.Debugf("mesh %q: %d triangles, %d nodes, max leaf depth %d",
		name, mesh.TriangleCount, mesh.NodeCount, bvh.Stats.MaxLeafDepth)
	return nil
}

// Build validates the buffers and returns the finished scene. The builder must not
// be used afterwards.
func (b *Builder) Build() (*Scene, error) {
	s := b.scene

	for i := range s.Meshes {
		mesh := &s.Meshes[i]
		if err := geometry.ValidateNodes(s.MeshNodes(mesh), mesh.TriangleCount); err != nil {
			return nil, fmt.Errorf("mesh %q: %w", mesh.Name, err)
		}
		if err := b.validateMaterial(mesh.Material); err != nil {
			return nil, fmt.Errorf("mesh %q: %w", mesh.Name, err)
		}
	}
	for i := range s.Spheres {
		if err := b.validateMaterial(s.Spheres[i].Material); err != nil {
			return nil, fmt.Errorf("sphere %d: %w", i, err)
		}
	}

	b.logger.Infof("scene %q: %d spheres, %d meshes, %d triangles, %d nodes, %d textures",
		s.Name, len(s.Spheres), len(s.Meshes), len(s.Triangles), len(s.Nodes), len(s.Textures))
	return s, nil
}

func (b *Builder) validateMaterial(m material.Material) error {
	for _, index := range []int{m.DiffuseTexture, m.NormalTexture} {
		if index == material.NoTexture {
			continue
		}
		if _, ok := b.scene.Textures.Lookup(index); !ok {
			return fmt.Errorf("texture %d of %d: %w", index, len(b.scene.Textures), ErrUnknownTexture)
		}
	}
	return nil
}
