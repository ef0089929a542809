package scene

import (
	"github.com/df07/go-progressive-pathtracer/pkg/core"
	"github.com/df07/go-progressive-pathtracer/pkg/geometry"
	"github.com/df07/go-progressive-pathtracer/pkg/material"
)

// Mesh places a range of the shared triangle and node buffers in the world
type Mesh struct {
	Name           string
	WorldToLocal   core.Mat4
	LocalToWorld   core.Mat4
	TriangleOffset int // First triangle in Scene.Triangles
	TriangleCount  int
	NodeOffset     int // Root node in Scene.Nodes
	NodeCount      int
	Material       material.Material
	BVHStats       geometry.BuildStats
}

// Scene holds the read-only buffers shared by every pixel task during a frame
type Scene struct {
	Name      string
	Camera    geometry.Camera
	Spheres   []geometry.Sphere
	Meshes    []Mesh
	Triangles []geometry.Triangle
	Nodes     []geometry.Node
	Textures  material.TextureTable

	// TraversalOrder selects the child visiting order for every mesh traversal
	TraversalOrder geometry.Order
}

// MeshNodes returns the node range of mesh m
func (s *Scene) MeshNodes(m *Mesh) []geometry.Node {
	return s.Nodes[m.NodeOffset : m.NodeOffset+m.NodeCount]
}

// MeshTriangles returns the triangle range of mesh m
func (s *Scene) MeshTriangles(m *Mesh) []geometry.Triangle {
	return s.Triangles[m.TriangleOffset : m.TriangleOffset+m.TriangleCount]
}

// PrimitiveCount returns the number of spheres plus triangles
func (s *Scene) PrimitiveCount() int {
	return len(s.Spheres) + len(s.Triangles)
}
