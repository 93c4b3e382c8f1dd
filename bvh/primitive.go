package bvh

import (
	"fmt"

	"github.com/D3rJ4n/raytracing-webgpu-sub001/types"
)

// SphereStride is the number of float32 values each sphere occupies in the
// input buffer: [cx, cy, cz, radius, colorR, colorG, colorB, metallic].
// The builder only reads the first four fields; the color/material tail is
// carried for the shading stage and ignored here.
const SphereStride = 8

// Primitive is the in-memory build representation of one input sphere:
// its position in the original buffer plus precomputed world-space bounds.
// Primitives are created once per build and never mutated afterwards.
type Primitive struct {
	Index  uint32
	Center types.Vec3
	Radius float32

	Min types.Vec3
	Max types.Vec3
}

// ExtractPrimitives converts the first count records of a packed sphere
// buffer into primitives with bounds = center ± radius per axis.
//
// The caller guarantees count*SphereStride <= len(buffer); this is the same
// contract the GPU upload path relies on, so violations fail fast instead of
// producing a silently truncated hierarchy.
func ExtractPrimitives(buffer []float32, count int) []Primitive {
	if count < 0 || count*SphereStride > len(buffer) {
		panic(fmt.Sprintf("bvh: sphere buffer of %d floats cannot hold %d spheres (stride %d)", len(buffer), count, SphereStride))
	}

	prims := make([]Primitive, count)
	for i := 0; i < count; i++ {
		base := i * SphereStride
		center := types.Vec3{buffer[base], buffer[base+1], buffer[base+2]}
		radius := buffer[base+3]
		extent := types.Vec3{radius, radius, radius}

		prims[i] = Primitive{
			Index:  uint32(i),
			Center: center,
			Radius: radius,
			Min:    center.Sub(extent),
			Max:    center.Add(extent),
		}
	}
	return prims
}
