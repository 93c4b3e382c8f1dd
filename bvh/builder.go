package bvh

import (
	"math"
	"sort"
	"time"

	"github.com/D3rJ4n/raytracing-webgpu-sub001/log"
	"github.com/D3rJ4n/raytracing-webgpu-sub001/types"
)

// Build limits and the bounds they are clamped to. Out-of-range values are
// silently clamped rather than rejected so callers can feed user input
// straight through.
const (
	DefaultMaxLeafSize = 6
	DefaultMaxDepth    = 20

	minLeafSizeLimit = 1
	maxLeafSizeLimit = 16
	minDepthLimit    = 1
	maxDepthLimit    = 30
)

// Stats captures counters for the most recent build. They are reset at the
// start of every build and are only meaningful after Build returns.
type Stats struct {
	Nodes     int
	Leafs     int
	MaxDepth  int
	BuildTime time.Duration
}

// Result is the GPU-consumable output of a single build: the encoded node
// buffer (NodeStride floats per node), the final sphere index permutation and
// the structural counters. Results are immutable and independent of the
// builder that produced them.
type Result struct {
	Nodes   []float32
	Indices []uint32

	NodeCount int
	LeafCount int
	MaxDepth  int

	// The limits the build ran with, kept so archived results stay
	// verifiable without the originating builder.
	MaxLeafSize int
	DepthLimit  int
}

// Builder partitions sphere buffers into BVH trees. A builder owns its
// configuration and per-build scratch state; it is single-writer and must
// not be shared between goroutines without external synchronization.
type Builder struct {
	logger log.Logger

	maxLeafSize int
	maxDepth    int

	// Scratch state for the build in progress.
	prims   []Primitive
	indices []uint32
	nodes   []Node

	stats Stats
}

// Create a builder with the default leaf size and depth limits.
func NewBuilder() *Builder {
	return &Builder{
		logger:      log.New("bvh"),
		maxLeafSize: DefaultMaxLeafSize,
		maxDepth:    DefaultMaxDepth,
	}
}

// SetLimits adjusts the leaf size and depth bounds used by subsequent builds.
// Values outside [1,16] and [1,30] are clamped to the nearest bound. Builds
// that already completed are not affected.
func (b *Builder) SetLimits(maxLeafSize, maxDepth int) {
	b.maxLeafSize = clamp(maxLeafSize, minLeafSizeLimit, maxLeafSizeLimit)
	b.maxDepth = clamp(maxDepth, minDepthLimit, maxDepthLimit)
}

// Limits returns the clamped leaf size and depth bounds currently in effect.
func (b *Builder) Limits() (maxLeafSize, maxDepth int) {
	return b.maxLeafSize, b.maxDepth
}

// LastBuildStats returns the counters captured by the most recent build.
func (b *Builder) LastBuildStats() Stats {
	return b.stats
}

// Build constructs a BVH over the first sphereCount records of a packed
// sphere buffer (SphereStride floats per sphere) and encodes it for GPU
// traversal. The build is synchronous and deterministic: identical input and
// limits produce byte-identical buffers.
//
// A zero sphereCount returns an empty result. The caller guarantees
// sphereCount*SphereStride <= len(buffer); violations panic.
func (b *Builder) Build(buffer []float32, sphereCount int) *Result {
	b.stats = Stats{}
	start := time.Now()

	b.prims = ExtractPrimitives(buffer, sphereCount)
	b.indices = make([]uint32, sphereCount)
	for i := range b.indices {
		b.indices[i] = uint32(i)
	}
	b.nodes = b.nodes[:0]

	if sphereCount > 0 {
		b.partition(0, sphereCount, 0)
	}
	b.stats.Nodes = len(b.nodes)

	nodeBuffer, indexBuffer := Encode(b.nodes, b.indices)
	b.stats.BuildTime = time.Since(start)

	b.logger.Debugf(
		"hierarchy build time: %d ms, maxDepth: %d, nodes: %d, leafs: %d",
		b.stats.BuildTime.Nanoseconds()/1e6,
		b.stats.MaxDepth, b.stats.Nodes, b.stats.Leafs,
	)

	return &Result{
		Nodes:       nodeBuffer,
		Indices:     indexBuffer,
		NodeCount:   b.stats.Nodes,
		LeafCount:   b.stats.Leafs,
		MaxDepth:    b.stats.MaxDepth,
		MaxLeafSize: b.maxLeafSize,
		DepthLimit:  b.maxDepth,
	}
}

// Partition the index sub-range [start, start+count) and return the index of
// the node that covers it. count must be >= 1.
func (b *Builder) partition(start, count, depth int) int32 {
	if depth > b.stats.MaxDepth {
		b.stats.MaxDepth = depth
	}

	// Calculate bounding box for the sub-range
	min := types.Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32}
	max := types.Vec3{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32}
	for _, sphereIndex := range b.indices[start : start+count] {
		prim := &b.prims[sphereIndex]
		min = types.MinVec3(min, prim.Min)
		max = types.MaxVec3(max, prim.Max)
	}

	// Small ranges become leafs; the depth bound forces a leaf regardless of
	// count so degenerate inputs cannot blow the recursion.
	if count <= b.maxLeafSize || depth >= b.maxDepth {
		return b.createLeaf(min, max, start, count)
	}

	// Split along the widest bbox axis. Comparisons are strict so ties keep
	// the earliest axis.
	side := max.Sub(min)
	axis := 0
	if side[1] > side[axis] {
		axis = 1
	}
	if side[2] > side[axis] {
		axis = 2
	}

	// Object-median split: reorder the sub-range by center along the chosen
	// axis and cut at the midpoint. The stable sort keeps equal centers in
	// their current order, which makes rebuilds reproducible.
	sub := b.indices[start : start+count]
	sort.SliceStable(sub, func(i, j int) bool {
		return b.prims[sub[i]].Center[axis] < b.prims[sub[j]].Center[axis]
	})

	leftCount := count / 2
	rightCount := count - leftCount
	if leftCount == 0 || rightCount == 0 {
		// Unreachable for count >= 2, but an empty child would corrupt the
		// encoded tree, so leaf out instead.
		return b.createLeaf(min, max, start, count)
	}

	// Append the node before its children so its index is known, then patch
	// in the child indices once both sub-trees exist.
	nodeIndex := int32(len(b.nodes))
	b.nodes = append(b.nodes, newNode(min, max))

	left := b.partition(start, leftCount, depth+1)
	right := b.partition(start+leftCount, rightCount, depth+1)
	b.nodes[nodeIndex].SetChildNodes(left, right)

	return nodeIndex
}

// Append a leaf covering [start, start+count) and return its node index.
func (b *Builder) createLeaf(min, max types.Vec3, start, count int) int32 {
	nodeIndex := int32(len(b.nodes))
	node := newNode(min, max)
	node.SetSpheres(int32(start), int32(count))
	b.nodes = append(b.nodes, node)

	b.stats.Leafs++
	return nodeIndex
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
