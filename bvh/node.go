package bvh

import (
	"github.com/D3rJ4n/raytracing-webgpu-sub001/types"
)

// Node is a single BVH node addressed by its position in the flat node list.
// Child links are list positions rather than pointers so the tree can be
// encoded for flat GPU-side traversal without a layout change.
//
// A negative Left marks a leaf; leaves own the index-buffer range
// [FirstSphere, FirstSphere+SphereCount). Internal nodes carry valid
// Left/Right child positions and FirstSphere = -1, SphereCount = 0.
type Node struct {
	Min types.Vec3
	Max types.Vec3

	Left  int32
	Right int32

	FirstSphere int32
	SphereCount int32
}

// Create an unlinked node covering the given bounds. Callers either patch in
// child indices with SetChildNodes or claim a sphere range with SetSpheres.
func newNode(min, max types.Vec3) Node {
	return Node{
		Min:         min,
		Max:         max,
		Left:        -1,
		Right:       -1,
		FirstSphere: -1,
	}
}

// Set left and right child node indices.
func (n *Node) SetChildNodes(left, right int32) {
	n.Left = left
	n.Right = right
	n.FirstSphere = -1
	n.SphereCount = 0
}

// Set the sphere range owned by this leaf.
func (n *Node) SetSpheres(first, count int32) {
	n.FirstSphere = first
	n.SphereCount = count
}

// Leaf reports whether this node terminates traversal. The check matches the
// branch the traversal kernel performs on the encoded buffer.
func (n *Node) Leaf() bool {
	return n.Left < 0
}
