package scene

import (
	"errors"
	"testing"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
	"github.com/df07/go-progressive-pathtracer/pkg/geometry"
	"github.com/df07/go-progressive-pathtracer/pkg/material"
)

func TestBuilder_PacksMeshRanges(t *testing.T) {
	b := NewBuilder("packed", geometry.BuildOptions{Quality: geometry.QualityHigh})
	if err := b.AddMesh("quad", Quad(), core.Identity(), material.NewMaterial()); err != nil {
		t.Fatalf("AddMesh quad failed: %v", err)
	}
	if err := b.AddMesh("box", Box(), core.Translate(core.NewVec3(0, 3, 0)), material.NewMaterial()); err != nil {
		t.Fatalf("AddMesh box failed: %v", err)
	}
	s, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if len(s.Meshes) != 2 {
		t.Fatalf("meshes = %d, want 2", len(s.Meshes))
	}
	quad, box := s.Meshes[0], s.Meshes[1]
	if quad.TriangleOffset != 0 || quad.TriangleCount != 2 {
		t.Errorf("quad triangles = [%d,+%d), want [0,+2)", quad.TriangleOffset, quad.TriangleCount)
	}
	if box.TriangleOffset != 2 || box.TriangleCount != 12 {
		t.Errorf("box triangles = [%d,+%d), want [2,+12)", box.TriangleOffset, box.TriangleCount)
	}
	if box.NodeOffset != quad.NodeCount {
		t.Errorf("box node offset = %d, want %d", box.NodeOffset, quad.NodeCount)
	}
	if len(s.Nodes) != quad.NodeCount+box.NodeCount {
		t.Errorf("nodes = %d, want %d", len(s.Nodes), quad.NodeCount+box.NodeCount)
	}
	if s.PrimitiveCount() != 14 {
		t.Errorf("PrimitiveCount = %d, want 14", s.PrimitiveCount())
	}

	// WorldToLocal must undo LocalToWorld
	p := core.NewVec3(1, 2, 3)
	if got := box.WorldToLocal.MulPoint(box.LocalToWorld.MulPoint(p)); !got.Equals(p) {
		t.Errorf("round trip = %v, want %v", got, p)
	}
}

func TestBuilder_Errors(t *testing.T) {
	tests := []struct {
		name  string
		setup func(b *Builder) error
		want  error
	}{
		{
			name: "empty mesh",
			setup: func(b *Builder) error {
				return b.AddMesh("empty", nil, core.Identity(), material.NewMaterial())
			},
			want: ErrEmptyMesh,
		},
		{
			name: "unknown diffuse texture",
			setup: func(b *Builder) error {
				b.AddSphere(geometry.NewSphere(core.Vec3{}, 1, material.NewMaterial().WithTexture(3)))
				_, err := b.Build()
				return err
			},
			want: ErrUnknownTexture,
		},
		{
			name: "unknown normal map",
			setup: func(b *Builder) error {
				b.AddTexture(material.NewSolidColor(core.NewVec3(1, 1, 1)))
				if err := b.AddMesh("quad", Quad(), core.Identity(), material.NewMaterial().WithNormalMap(1)); err != nil {
					return err
				}
				_, err := b.Build()
				return err
			},
			want: ErrUnknownTexture,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.setup(NewBuilder(tt.name, geometry.BuildOptions{}))
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestBuilder_SingularTransform(t *testing.T) {
	b := NewBuilder("singular", geometry.BuildOptions{})
	err := b.AddMesh("flat", Quad(), core.Scale(core.NewVec3(1, 0, 1)), material.NewMaterial())
	if err == nil {
		t.Error("expected an error for a singular transform")
	}
}

func TestBuilder_ValidTexture(t *testing.T) {
	b := NewBuilder("textured", geometry.BuildOptions{})
	index := b.AddTexture(material.NewSolidColor(core.NewVec3(1, 0, 0)))
	if index != 0 {
		t.Fatalf("AddTexture index = %d, want 0", index)
	}
	b.AddSphere(geometry.NewSphere(core.Vec3{}, 1, material.NewMaterial().WithTexture(index)))
	if _, err := b.Build(); err != nil {
		t.Errorf("Build failed: %v", err)
	}
}
