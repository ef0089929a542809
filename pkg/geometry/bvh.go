package geometry

import (
	"errors"
	"fmt"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
)

// StackCapacity is the fixed traversal stack size. It bounds the supported tree
// depth: a tree whose deepest leaf sits at depth StackCapacity-1 never needs more.
const StackCapacity = 32

var (
	// ErrStackOverflow is the panic value raised when traversal needs more than
	// StackCapacity entries. Trees accepted by ValidateNodes never trigger it.
	ErrStackOverflow = errors.New("bvh traversal stack overflow")

	// ErrTreeTooDeep is returned when a tree cannot be traversed with StackCapacity entries
	ErrTreeTooDeep = errors.New("bvh deeper than traversal stack")

	// ErrInvalidNode is returned for child or triangle ranges outside their buffers
	ErrInvalidNode = errors.New("invalid bvh node")
)

// NodeKind discriminates interior nodes from leaves
type NodeKind uint8

const (
	Interior NodeKind = iota
	Leaf
)

// Node is one entry of a flattened BVH. Child and triangle indices are local to the
// owning mesh's node and triangle ranges; the root is the first node of the range.
type Node struct {
	Bounds core.AABB
	Kind   NodeKind
	Left   int // Interior only
	Right  int // Interior only
	First  int // Leaf only: first triangle
	Count  int // Leaf only: number of contiguous triangles
}

// NewInteriorNode creates an interior node with two children
func NewInteriorNode(bounds core.AABB, left, right int) Node {
	return Node{Bounds: bounds, Kind: Interior, Left: left, Right: right}
}

// NewLeafNode creates a leaf covering triangles [first, first+count)
func NewLeafNode(bounds core.AABB, first, count int) Node {
	return Node{Bounds: bounds, Kind: Leaf, First: first, Count: count}
}

// IsLeaf reports whether the node holds triangles
func (n *Node) IsLeaf() bool {
	return n.Kind == Leaf
}

// Order selects which child traversal visits first
type Order int

const (
	// NearestFirst visits the child whose box the ray enters first, which prunes more
	NearestFirst Order = iota
	// LeftFirst always visits the left child first, for comparison and profiling
	LeftFirst
)

// TraverseOptions configures a traversal
type TraverseOptions struct {
	CullBackface bool
	Order        Order
}

// TraversalStats counts the work done by traversals. A nil *TraversalStats disables counting.
type TraversalStats struct {
	BoxTests      int
	TriangleTests int
}

// Add accumulates other into s
func (s *TraversalStats) Add(other TraversalStats) {
	s.BoxTests += other.BoxTests
	s.TriangleTests += other.TriangleTests
}

// nodeStack is a bounds-checked fixed arena of node indices
type nodeStack struct {
	items [StackCapacity]int
	size  int
}

func (s *nodeStack) push(index int) {
	if s.size == StackCapacity {
		panic(ErrStackOverflow)
	}
	s.items[s.size] = index
	s.size++
}

func (s *nodeStack) pop() int {
	s.size--
	return s.items[s.size]
}

// Traverse finds the closest triangle hit nearer than maxDist. nodes and triangles are
// one mesh's ranges. The returned index is the triangle's position in triangles.
func Traverse(ray *core.Ray, maxDist float64, nodes []Node, triangles []Triangle, opts TraverseOptions, stats *TraversalStats) (Hit, int, bool) {
	closest := Hit{T: maxDist}
	closestIndex := -1
	if len(nodes) == 0 {
		return closest, closestIndex, false
	}

	var boxTests, triangleTests int
	var stack nodeStack
	stack.push(0)

	for stack.size > 0 {
		node := &nodes[stack.pop()]

		if node.Kind == Leaf {
			triangleTests += node.Count
			for i := node.First; i < node.First+node.Count; i++ {
				hit, ok := triangles[i].Intersect(ray, opts.CullBackface)
				if ok && hit.T < closest.T {
					closest = hit
					closestIndex = i
				}
			}
			continue
		}

		left := &nodes[node.Left]
		right := &nodes[node.Right]
		distLeft := left.Bounds.RayDistance(ray)
		distRight := right.Bounds.RayDistance(ray)
		boxTests += 2

		// Pushed last means popped first
		firstIdx, firstDist := node.Left, distLeft
		secondIdx, secondDist := node.Right, distRight
		if opts.Order == NearestFirst && distRight < distLeft {
			firstIdx, firstDist, secondIdx, secondDist = secondIdx, secondDist, firstIdx, firstDist
		}

		if secondDist < closest.T {
			stack.push(secondIdx)
		}
		if firstDist < closest.T {
			stack.push(firstIdx)
		}
	}

	if stats != nil {
		stats.BoxTests += boxTests
		stats.TriangleTests += triangleTests
	}
	return closest, closestIndex, closestIndex >= 0
}

// ValidateNodes checks that a flattened tree is well formed for triangleCount
// triangles and shallow enough for the traversal stack
func ValidateNodes(nodes []Node, triangleCount int) error {
	if len(nodes) == 0 {
		return nil
	}

	type entry struct{ index, depth int }
	pending := []entry{{0, 0}}
	visited := make([]bool, len(nodes))

	for len(pending) > 0 {
		current := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		if visited[current.index] {
			return fmt.Errorf("node %d reachable twice: %w", current.index, ErrInvalidNode)
		}
		visited[current.index] = true

		if current.depth > StackCapacity-1 {
			return fmt.Errorf("node %d at depth %d: %w", current.index, current.depth, ErrTreeTooDeep)
		}

		node := nodes[current.index]
		switch node.Kind {
		case Leaf:
			if node.First < 0 || node.Count < 0 || node.First+node.Count > triangleCount {
				return fmt.Errorf("leaf %d covers [%d,%d) of %d triangles: %w",
					current.index, node.First, node.First+node.Count, triangleCount, ErrInvalidNode)
			}
		case Interior:
			for _, child := range []int{node.Left, node.Right} {
				if child < 0 || child >= len(nodes) {
					return fmt.Errorf("node %d has child %d of %d: %w", current.index, child, len(nodes), ErrInvalidNode)
				}
				if nodes[child].Bounds.IsValid() && !node.Bounds.Expand(1e-9).Contains(nodes[child].Bounds) {
					return fmt.Errorf("node %d does not contain child %d: %w", current.index, child, ErrInvalidNode)
				}
				pending = append(pending, entry{child, current.depth + 1})
			}
		default:
			return fmt.Errorf("node %d has kind %d: %w", current.index, node.Kind, ErrInvalidNode)
		}
	}
	return nil
}

// Depth returns the depth of the deepest node, with the root at depth 0
func Depth(nodes []Node) int {
	if len(nodes) == 0 {
		return 0
	}
	var walk func(index, depth int) int
	walk = func(index, depth int) int {
		node := nodes[index]
		if node.Kind == Leaf {
			return depth
		}
		return max(walk(node.Left, depth+1), walk(node.Right, depth+1))
	}
	return walk(0, 0)
}
