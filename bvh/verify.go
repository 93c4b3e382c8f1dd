package bvh

import (
	"math"

	"github.com/pkg/errors"

	"github.com/D3rJ4n/raytracing-webgpu-sub001/types"
)

// Verify checks the structural invariants of an encoded build result against
// the sphere buffer it was built from. It returns nil when the result is a
// well-formed tree: the index buffer is a permutation of the sphere indices,
// every node is reachable exactly once from the root, child boxes nest inside
// their parents, leaf ranges tile the index buffer left to right and every
// leaf box exactly bounds its spheres.
//
// Verify exists for tests and tooling; traversal does not depend on it.
func Verify(buffer []float32, sphereCount int, res *Result) error {
	if res == nil {
		return errors.New("bvh: nil result")
	}
	if len(res.Nodes)%NodeStride != 0 {
		return errors.Errorf("bvh: node buffer length %d is not a multiple of %d", len(res.Nodes), NodeStride)
	}
	nodeCount := len(res.Nodes) / NodeStride
	if nodeCount != res.NodeCount {
		return errors.Errorf("bvh: node buffer holds %d nodes; result reports %d", nodeCount, res.NodeCount)
	}
	if len(res.Indices) != sphereCount {
		return errors.Errorf("bvh: index buffer holds %d entries; expected %d", len(res.Indices), sphereCount)
	}

	// The index buffer must be a permutation of [0, sphereCount).
	seen := make([]bool, sphereCount)
	for pos, sphereIndex := range res.Indices {
		if int(sphereIndex) >= sphereCount {
			return errors.Errorf("bvh: index buffer entry %d references sphere %d of %d", pos, sphereIndex, sphereCount)
		}
		if seen[sphereIndex] {
			return errors.Errorf("bvh: sphere %d appears more than once in the index buffer", sphereIndex)
		}
		seen[sphereIndex] = true
	}

	if sphereCount == 0 {
		if nodeCount != 0 {
			return errors.Errorf("bvh: empty scene encoded %d nodes", nodeCount)
		}
		return nil
	}
	if nodeCount == 0 {
		return errors.Errorf("bvh: %d spheres encoded without nodes", sphereCount)
	}

	prims := ExtractPrimitives(buffer, sphereCount)

	// Walk the tree from the root. Children are pushed right-then-left so
	// nodes pop in pre-order, which lets leaf ranges be checked for a
	// left-to-right tiling of the index buffer.
	type frame struct {
		node  int32
		depth int
	}
	visited := make([]bool, nodeCount)
	stack := []frame{{node: 0}}

	var leafs, maxDepth int
	var nextFirst int32
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if cur.node < 0 || int(cur.node) >= nodeCount {
			return errors.Errorf("bvh: child index %d outside node buffer of %d nodes", cur.node, nodeCount)
		}
		if visited[cur.node] {
			return errors.Errorf("bvh: node %d is reachable more than once", cur.node)
		}
		visited[cur.node] = true

		if cur.depth > maxDepth {
			maxDepth = cur.depth
		}
		if cur.depth > res.DepthLimit {
			return errors.Errorf("bvh: node %d sits at depth %d; the build limit was %d", cur.node, cur.depth, res.DepthLimit)
		}

		node := DecodeNode(res.Nodes, int(cur.node))
		if node.Leaf() {
			leafs++
			if node.Right >= 0 {
				return errors.Errorf("bvh: leaf %d carries right child %d", cur.node, node.Right)
			}
			if node.SphereCount < 1 {
				return errors.Errorf("bvh: leaf %d holds %d spheres", cur.node, node.SphereCount)
			}
			if node.SphereCount > int32(res.MaxLeafSize) && cur.depth < res.DepthLimit {
				return errors.Errorf("bvh: leaf %d holds %d spheres with limit %d and room to split at depth %d", cur.node, node.SphereCount, res.MaxLeafSize, cur.depth)
			}
			if node.FirstSphere != nextFirst {
				return errors.Errorf("bvh: leaf %d starts at index %d; expected %d", cur.node, node.FirstSphere, nextFirst)
			}
			nextFirst += node.SphereCount
			if nextFirst > int32(sphereCount) {
				return errors.Errorf("bvh: leaf %d ends at index %d past %d spheres", cur.node, nextFirst, sphereCount)
			}

			// Both the builder and foldBounds accumulate in index order, so
			// a correct leaf box matches bit for bit.
			min, max := foldBounds(prims, res.Indices[node.FirstSphere:node.FirstSphere+node.SphereCount])
			if node.Min != min || node.Max != max {
				return errors.Errorf("bvh: leaf %d box %v - %v does not bound its spheres (%v - %v)", cur.node, node.Min, node.Max, min, max)
			}
			continue
		}

		if node.Right < 0 {
			return errors.Errorf("bvh: internal node %d lacks a right child", cur.node)
		}
		if node.FirstSphere != -1 || node.SphereCount != 0 {
			return errors.Errorf("bvh: internal node %d carries sphere range %d+%d", cur.node, node.FirstSphere, node.SphereCount)
		}
		for _, child := range [2]int32{node.Left, node.Right} {
			if child < 0 || int(child) >= nodeCount {
				return errors.Errorf("bvh: node %d references child %d outside node buffer", cur.node, child)
			}
			childNode := DecodeNode(res.Nodes, int(child))
			for axis := 0; axis < 3; axis++ {
				if childNode.Min[axis] < node.Min[axis] || childNode.Max[axis] > node.Max[axis] {
					return errors.Errorf("bvh: child %d box exceeds parent %d on axis %d", child, cur.node, axis)
				}
			}
		}
		stack = append(stack,
			frame{node: node.Right, depth: cur.depth + 1},
			frame{node: node.Left, depth: cur.depth + 1},
		)
	}

	for i, ok := range visited {
		if !ok {
			return errors.Errorf("bvh: node %d is not reachable from the root", i)
		}
	}
	if nextFirst != int32(sphereCount) {
		return errors.Errorf("bvh: leaf ranges cover %d of %d spheres", nextFirst, sphereCount)
	}
	if leafs != res.LeafCount {
		return errors.Errorf("bvh: walk found %d leafs; result reports %d", leafs, res.LeafCount)
	}
	if maxDepth != res.MaxDepth {
		return errors.Errorf("bvh: walk reached depth %d; result reports %d", maxDepth, res.MaxDepth)
	}

	return nil
}

// foldBounds accumulates the union of the referenced primitive bounds in
// index order.
func foldBounds(prims []Primitive, indices []uint32) (types.Vec3, types.Vec3) {
	min := types.Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32}
	max := types.Vec3{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32}
	for _, sphereIndex := range indices {
		min = types.MinVec3(min, prims[sphereIndex].Min)
		max = types.MaxVec3(max, prims[sphereIndex].Max)
	}
	return min, max
}
