package bvh

import "github.com/D3rJ4n/raytracing-webgpu-sub001/types"

// NodeStride is the number of float32 values per encoded node. The layout is
// [minX, minY, minZ, maxX, maxY, maxZ, leftChild, rightChild, firstSphere,
// sphereCount]; the integer fields are stored as float32 conversions of
// their int32 values so the whole node fits a single flat float buffer.
const NodeStride = 10

// Encode flattens a node list into a GPU-consumable float buffer and copies
// the sphere index permutation alongside it. Node order is preserved, so the
// root stays at offset 0 and child indices remain valid.
func Encode(nodes []Node, indices []uint32) ([]float32, []uint32) {
	nodeBuffer := make([]float32, len(nodes)*NodeStride)
	for i, node := range nodes {
		offset := i * NodeStride
		nodeBuffer[offset+0] = node.Min[0]
		nodeBuffer[offset+1] = node.Min[1]
		nodeBuffer[offset+2] = node.Min[2]
		nodeBuffer[offset+3] = node.Max[0]
		nodeBuffer[offset+4] = node.Max[1]
		nodeBuffer[offset+5] = node.Max[2]
		nodeBuffer[offset+6] = float32(node.Left)
		nodeBuffer[offset+7] = float32(node.Right)
		nodeBuffer[offset+8] = float32(node.FirstSphere)
		nodeBuffer[offset+9] = float32(node.SphereCount)
	}

	indexBuffer := make([]uint32, len(indices))
	copy(indexBuffer, indices)

	return nodeBuffer, indexBuffer
}

// DecodeNode reconstructs node i from an encoded node buffer. It is the
// inverse of the per-node layout written by Encode and is what CPU-side
// traversal and validation use instead of a separate node list.
func DecodeNode(buffer []float32, i int) Node {
	offset := i * NodeStride
	return Node{
		Min:         types.Vec3{buffer[offset+0], buffer[offset+1], buffer[offset+2]},
		Max:         types.Vec3{buffer[offset+3], buffer[offset+4], buffer[offset+5]},
		Left:        int32(buffer[offset+6]),
		Right:       int32(buffer[offset+7]),
		FirstSphere: int32(buffer[offset+8]),
		SphereCount: int32(buffer[offset+9]),
	}
}
