package geometry

import (
	"errors"
	"testing"
)

func TestBuildBVH_Qualities(t *testing.T) {
	tris := randomTriangles(300, 7)

	tests := []struct {
		name       string
		quality    Quality
		singleLeaf bool
	}{
		{"disabled", QualityDisabled, true},
		{"low", QualityLow, false},
		{"high", QualityHigh, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bvh, err := BuildBVH(tris, BuildOptions{Quality: tt.quality})
			if err != nil {
				t.Fatalf("Build failed: %v", err)
			}
			if len(bvh.Triangles) != len(tris) {
				t.Fatalf("Expected %d triangles, got %d", len(tris), len(bvh.Triangles))
			}
			if err := ValidateNodes(bvh.Nodes, len(bvh.Triangles)); err != nil {
				t.Fatalf("Invalid tree: %v", err)
			}

			if tt.singleLeaf {
				if len(bvh.Nodes) != 1 || !bvh.Nodes[0].IsLeaf() || bvh.Nodes[0].Count != len(tris) {
					t.Errorf("Expected a single leaf holding every triangle, got %+v", bvh.Nodes)
				}
				return
			}

			leaves, covered := 0, 0
			for _, node := range bvh.Nodes {
				if !node.IsLeaf() {
					continue
				}
				leaves++
				covered += node.Count
				for i := node.First; i < node.First+node.Count; i++ {
					if !node.Bounds.Expand(1e-9).Contains(bvh.Triangles[i].Bounds()) {
						t.Fatalf("Leaf bounds %v do not contain triangle %d", node.Bounds, i)
					}
				}
			}
			if covered != len(tris) {
				t.Errorf("Leaves cover %d triangles, expected %d", covered, len(tris))
			}
			if leaves < 2 {
				t.Errorf("Expected the tree to split, got %d leaves", leaves)
			}
			if bvh.Stats.Leaves != leaves || bvh.Stats.Nodes != len(bvh.Nodes) {
				t.Errorf("Stats %+v disagree with %d leaves, %d nodes", bvh.Stats, leaves, len(bvh.Nodes))
			}
			if bvh.Stats.Nodes != 2*leaves-1 {
				t.Errorf("Binary tree with %d leaves should have %d nodes, got %d", leaves, 2*leaves-1, bvh.Stats.Nodes)
			}
			if bvh.Stats.MinLeafDepth > bvh.Stats.MaxLeafDepth {
				t.Errorf("Inconsistent leaf depth stats %+v", bvh.Stats)
			}
			if bvh.Stats.MaxLeafDepth != Depth(bvh.Nodes) {
				t.Errorf("Max leaf depth %d, tree depth %d", bvh.Stats.MaxLeafDepth, Depth(bvh.Nodes))
			}
		})
	}
}

func TestBuildBVH_MaxDepth(t *testing.T) {
	tris := randomTriangles(400, 3)

	bvh, err := BuildBVH(tris, BuildOptions{Quality: QualityHigh, MaxDepth: 2})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if depth := Depth(bvh.Nodes); depth > 2 {
		t.Errorf("Expected depth <= 2, got %d", depth)
	}

	_, err = BuildBVH(tris, BuildOptions{MaxDepth: StackCapacity})
	if !errors.Is(err, ErrTreeTooDeep) {
		t.Errorf("Expected ErrTreeTooDeep, got %v", err)
	}
}

func TestBuildBVH_Empty(t *testing.T) {
	bvh, err := BuildBVH(nil, BuildOptions{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(bvh.Nodes) != 1 || bvh.Nodes[0].Count != 0 {
		t.Errorf("Expected a single empty leaf, got %+v", bvh.Nodes)
	}
}

func TestParseQuality(t *testing.T) {
	for _, q := range []Quality{QualityLow, QualityHigh, QualityDisabled} {
		parsed, err := ParseQuality(q.String())
		if err != nil || parsed != q {
			t.Errorf("ParseQuality(%q) = %v, %v", q.String(), parsed, err)
		}
	}
	if _, err := ParseQuality("ultra"); err == nil {
		t.Error("Expected error for unknown quality")
	}
}
