package trace

import (
	"github.com/D3rJ4n/raytracing-webgpu-sub001/bvh"
	"github.com/D3rJ4n/raytracing-webgpu-sub001/scene"
	"github.com/D3rJ4n/raytracing-webgpu-sub001/types"
)

// Hit describes the nearest sphere intersection along a ray.
type Hit struct {
	// Index of the sphere in the original scene order.
	Sphere int

	// Distance along the ray direction.
	T float32

	Point  types.Vec3
	Normal types.Vec3
}

// Traverser walks a compiled scene on the CPU. It consumes the same flat
// buffers the GPU shader does, which makes it both a reference for shader
// ports and the oracle the validate tooling checks hierarchies against.
//
// Traversers are stateless after construction and safe for concurrent use.
type Traverser struct {
	nodes       []float32
	indices     []uint32
	spheres     []float32
	sphereCount int
}

// Create a traverser over a compiled scene's buffers.
func NewTraverser(sc *scene.CompiledScene) *Traverser {
	return &Traverser{
		nodes:       sc.NodeBuffer,
		indices:     sc.IndexBuffer,
		spheres:     sc.SphereBuffer,
		sphereCount: sc.SphereCount,
	}
}

// Nearest returns the closest sphere hit along the ray with distance below
// tMax, walking the hierarchy and visiting the near child first.
func (tr *Traverser) Nearest(origin, dir types.Vec3, tMax float32) (Hit, bool) {
	if len(tr.nodes) == 0 {
		return Hit{}, false
	}

	bestT := tMax
	bestSphere := -1
	rr := computeRayRecips(dir)

	type entry struct {
		node int32
		tmin float32
	}
	root := bvh.DecodeNode(tr.nodes, 0)
	rootOK, rootT := rayAABB(origin, root.Min, root.Max, rr)
	if !rootOK || rootT > bestT {
		return Hit{}, false
	}

	stack := make([]entry, 0, 64)
	stack = append(stack, entry{node: 0, tmin: rootT})
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		// Entry distances are captured when a node is pushed; a hit found
		// since then may have moved bestT below them.
		if e.tmin > bestT {
			continue
		}

		node := bvh.DecodeNode(tr.nodes, int(e.node))
		if node.Leaf() {
			for i := node.FirstSphere; i < node.FirstSphere+node.SphereCount; i++ {
				sphereIndex := int(tr.indices[i])
				if t, ok := tr.intersectSphere(origin, dir, sphereIndex); ok && t < bestT {
					bestT = t
					bestSphere = sphereIndex
				}
			}
			continue
		}

		// Order children near to far; the far child is pushed first so the
		// near one pops next and tightens bestT before the far side is
		// considered.
		left := bvh.DecodeNode(tr.nodes, int(node.Left))
		right := bvh.DecodeNode(tr.nodes, int(node.Right))
		lOK, lT := rayAABB(origin, left.Min, left.Max, rr)
		rOK, rT := rayAABB(origin, right.Min, right.Max, rr)
		lOK = lOK && lT <= bestT
		rOK = rOK && rT <= bestT

		switch {
		case lOK && rOK:
			if lT < rT {
				stack = append(stack, entry{node.Right, rT}, entry{node.Left, lT})
			} else {
				stack = append(stack, entry{node.Left, lT}, entry{node.Right, rT})
			}
		case lOK:
			stack = append(stack, entry{node.Left, lT})
		case rOK:
			stack = append(stack, entry{node.Right, rT})
		}
	}

	if bestSphere < 0 {
		return Hit{}, false
	}
	return tr.makeHit(origin, dir, bestSphere, bestT), true
}

// NearestLinear intersects every sphere without the hierarchy. It is the
// brute-force reference the traversal is cross-checked against.
func (tr *Traverser) NearestLinear(origin, dir types.Vec3, tMax float32) (Hit, bool) {
	bestT := tMax
	bestSphere := -1
	for i := 0; i < tr.sphereCount; i++ {
		if t, ok := tr.intersectSphere(origin, dir, i); ok && t < bestT {
			bestT = t
			bestSphere = i
		}
	}

	if bestSphere < 0 {
		return Hit{}, false
	}
	return tr.makeHit(origin, dir, bestSphere, bestT), true
}

func (tr *Traverser) intersectSphere(origin, dir types.Vec3, sphereIndex int) (float32, bool) {
	base := sphereIndex * bvh.SphereStride
	center := types.Vec3{tr.spheres[base], tr.spheres[base+1], tr.spheres[base+2]}
	return raySphere(origin, dir, center, tr.spheres[base+3])
}

func (tr *Traverser) makeHit(origin, dir types.Vec3, sphereIndex int, t float32) Hit {
	base := sphereIndex * bvh.SphereStride
	center := types.Vec3{tr.spheres[base], tr.spheres[base+1], tr.spheres[base+2]}
	point := origin.Add(dir.Mul(t))
	return Hit{
		Sphere: sphereIndex,
		T:      t,
		Point:  point,
		Normal: point.Sub(center).Mul(1 / tr.spheres[base+3]),
	}
}
