package geometry

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/df07/go-progressive-pathtracer/pkg/core"
	"github.com/df07/go-progressive-pathtracer/pkg/log"
)

// Quality selects how hard the builder searches for splits
type Quality int

const (
	// QualityLow scores a single midpoint split along the longest axis
	QualityLow Quality = iota
	// QualityHigh scores evenly spaced candidate splits on every axis
	QualityHigh
	// QualityDisabled puts every triangle in one leaf
	QualityDisabled
)

// String returns the flag spelling of the quality
func (q Quality) String() string {
	switch q {
	case QualityLow:
		return "low"
	case QualityHigh:
		return "high"
	case QualityDisabled:
		return "disabled"
	default:
		return fmt.Sprintf("quality(%d)", int(q))
	}
}

// ParseQuality parses the flag spelling of a quality
func ParseQuality(s string) (Quality, error) {
	switch s {
	case "low":
		return QualityLow, nil
	case "high":
		return QualityHigh, nil
	case "disabled", "off":
		return QualityDisabled, nil
	}
	return QualityLow, fmt.Errorf("unknown bvh quality %q", s)
}

const (
	// highQualitySplits is the number of candidate positions tried per axis
	highQualitySplits = 50

	// Nodes with at least this many triangles score their axes concurrently
	parallelScoreThreshold = 2048
)

// BuildOptions configures BuildBVH
type BuildOptions struct {
	Quality  Quality
	MaxDepth int // Deepest allowed leaf; 0 selects StackCapacity-1
}

// BuildStats summarizes a built tree
type BuildStats struct {
	Nodes             int
	Leaves            int
	MinLeafDepth      int
	MaxLeafDepth      int
	MeanLeafDepth     float64
	MinLeafTriangles  int
	MaxLeafTriangles  int
	MeanLeafTriangles float64
	Duration          time.Duration
}

// BVH is a built hierarchy together with the triangles reordered so that every leaf
// covers a contiguous range
type BVH struct {
	Nodes     []Node
	Triangles []Triangle
	Stats     BuildStats
}

type buildTriangle struct {
	bounds   core.AABB
	centroid core.Vec3
}

type builder struct {
	logger  log.Logger
	opts    BuildOptions
	tris    []buildTriangle
	order   []int // Maps build position to input triangle index
	nodes   []Node
	depths  []int
	counts  []int
	started time.Time
}

// BuildBVH builds a surface area heuristic BVH over triangles. A split is kept only
// when it is cheaper than the parent leaf and the depth limit allows it.
func BuildBVH(triangles []Triangle, opts BuildOptions) (*BVH, error) {
	if opts.MaxDepth == 0 {
		opts.MaxDepth = StackCapacity - 1
	}
	if opts.MaxDepth < 0 || opts.MaxDepth > StackCapacity-1 {
		return nil, fmt.Errorf("max depth %d exceeds %d: %w", opts.MaxDepth, StackCapacity-1, ErrTreeTooDeep)
	}

	b := &builder{
		logger:  log.New("bvh"),
		opts:    opts,
		tris:    make([]buildTriangle, len(triangles)),
		order:   make([]int, len(triangles)),
		nodes:   make([]Node, 0, 2*len(triangles)+1),
		started: time.Now(),
	}

	bounds := core.EmptyAABB()
	for i := range triangles {
		b.tris[i] = buildTriangle{bounds: triangles[i].Bounds(), centroid: triangles[i].Centroid()}
		b.order[i] = i
		bounds = bounds.Union(b.tris[i].bounds)
	}

	b.nodes = append(b.nodes, NewLeafNode(bounds, 0, len(triangles)))
	if opts.Quality != QualityDisabled {
		b.subdivide(0, 0)
	} else {
		b.recordLeaf(0, len(triangles))
	}

	ordered := make([]Triangle, len(triangles))
	for i, src := range b.order {
		ordered[i] = triangles[src]
	}

	stats := b.stats()
	b.logger.Debugf(
		"built %s bvh in %s: %d triangles, %d nodes, %d leaves, leaf depth %d..%d (mean %.1f)",
		opts.Quality, stats.Duration, len(triangles), stats.Nodes, stats.Leaves,
		stats.MinLeafDepth, stats.MaxLeafDepth, stats.MeanLeafDepth,
	)

	return &BVH{Nodes: b.nodes, Triangles: ordered, Stats: stats}, nil
}

func (b *builder) subdivide(index, depth int) {
	node := b.nodes[index]
	parentCost := node.Bounds.HalfArea() * float64(node.Count)

	axis, pos, cost := b.findBestSplit(node)
	if !(cost < parentCost) || depth >= b.opts.MaxDepth {
		b.recordLeaf(depth, node.Count)
		return
	}

	// Partition the node's range in place around the split
	leftBounds, rightBounds := core.EmptyAABB(), core.EmptyAABB()
	leftCount := 0
	for i := node.First; i < node.First+node.Count; i++ {
		tri := b.tris[b.order[i]]
		if tri.centroid.Component(axis) < pos {
			leftBounds = leftBounds.Union(tri.bounds)
			b.order[node.First+leftCount], b.order[i] = b.order[i], b.order[node.First+leftCount]
			leftCount++
		} else {
			rightBounds = rightBounds.Union(tri.bounds)
		}
	}

	leftIndex := len(b.nodes)
	rightIndex := leftIndex + 1
	b.nodes = append(b.nodes,
		NewLeafNode(leftBounds, node.First, leftCount),
		NewLeafNode(rightBounds, node.First+leftCount, node.Count-leftCount),
	)
	b.nodes[index] = NewInteriorNode(node.Bounds, leftIndex, rightIndex)

	b.subdivide(leftIndex, depth+1)
	b.subdivide(rightIndex, depth+1)
}

func (b *builder) findBestSplit(node Node) (axis int, pos, cost float64) {
	if node.Count <= 1 {
		return 0, 0, math.Inf(1)
	}

	size := node.Bounds.Size()
	switch b.opts.Quality {
	case QualityLow:
		axis = node.Bounds.LongestAxis()
		pos = node.Bounds.Min.Component(axis) + size.Component(axis)*0.5
		return axis, pos, b.evaluateSAH(node, axis, pos)

	case QualityHigh:
		var results [3]struct{ pos, cost float64 }
		scoreAxis := func(a int) {
			results[a].cost = math.Inf(1)
			lo, extent := node.Bounds.Min.Component(a), size.Component(a)
			if extent <= 0 {
				return
			}
			for i := 0; i < highQualitySplits; i++ {
				candidate := lo + extent*float64(i+1)/float64(highQualitySplits+1)
				if c := b.evaluateSAH(node, a, candidate); c < results[a].cost {
					results[a].pos, results[a].cost = candidate, c
				}
			}
		}

		if node.Count >= parallelScoreThreshold {
			var wg sync.WaitGroup
			for a := 0; a < 3; a++ {
				wg.Add(1)
				go func(a int) {
					defer wg.Done()
					scoreAxis(a)
				}(a)
			}
			wg.Wait()
		} else {
			for a := 0; a < 3; a++ {
				scoreAxis(a)
			}
		}

		cost = math.Inf(1)
		for a, r := range results {
			if r.cost < cost {
				axis, pos, cost = a, r.pos, r.cost
			}
		}
		return axis, pos, cost
	}

	return 0, 0, math.Inf(1)
}

// evaluateSAH scores splitting node at pos along axis. A split leaving either side
// empty cannot improve traversal and scores +Inf.
func (b *builder) evaluateSAH(node Node, axis int, pos float64) float64 {
	leftBounds, rightBounds := core.EmptyAABB(), core.EmptyAABB()
	leftCount, rightCount := 0, 0
	for i := node.First; i < node.First+node.Count; i++ {
		tri := b.tris[b.order[i]]
		if tri.centroid.Component(axis) < pos {
			leftCount++
			leftBounds = leftBounds.Union(tri.bounds)
		} else {
			rightCount++
			rightBounds = rightBounds.Union(tri.bounds)
		}
	}
	if leftCount == 0 || rightCount == 0 {
		return math.Inf(1)
	}
	return float64(leftCount)*leftBounds.HalfArea() + float64(rightCount)*rightBounds.HalfArea()
}

func (b *builder) recordLeaf(depth, count int) {
	b.depths = append(b.depths, depth)
	b.counts = append(b.counts, count)
}

func (b *builder) stats() BuildStats {
	stats := BuildStats{
		Nodes:    len(b.nodes),
		Leaves:   len(b.depths),
		Duration: time.Since(b.started),
	}
	if stats.Leaves == 0 {
		return stats
	}

	stats.MinLeafDepth, stats.MinLeafTriangles = math.MaxInt, math.MaxInt
	var depthSum, countSum int
	for i := range b.depths {
		stats.MinLeafDepth = min(stats.MinLeafDepth, b.depths[i])
		stats.MaxLeafDepth = max(stats.MaxLeafDepth, b.depths[i])
		stats.MinLeafTriangles = min(stats.MinLeafTriangles, b.counts[i])
		stats.MaxLeafTriangles = max(stats.MaxLeafTriangles, b.counts[i])
		depthSum += b.depths[i]
		countSum += b.counts[i]
	}
	stats.MeanLeafDepth = float64(depthSum) / float64(stats.Leaves)
	stats.MeanLeafTriangles = float64(countSum) / float64(stats.Leaves)
	return stats
}
