package trace

import (
	"math"

	"github.com/D3rJ4n/raytracing-webgpu-sub001/types"
)

// Direction components below this magnitude are treated as parallel to the
// slab planes.
const parallelEpsilon float32 = 1e-12

// Intersection distances below this are rejected so rays spawned on a
// surface do not immediately re-hit it.
const hitEpsilon float32 = 1e-6

type rayRecips struct {
	inv [3]float32
	par [3]bool
}

func computeRayRecips(dir types.Vec3) rayRecips {
	var rr rayRecips
	for axis := 0; axis < 3; axis++ {
		if d := dir[axis]; d > parallelEpsilon || d < -parallelEpsilon {
			rr.inv[axis] = 1 / d
		} else {
			rr.par[axis] = true
		}
	}
	return rr
}

// Slab test against an axis-aligned box. Returns the entry distance, clamped
// to zero when the origin sits inside the box.
func rayAABB(origin, min, max types.Vec3, rr rayRecips) (bool, float32) {
	tmin, tmax := float32(-math.MaxFloat32), float32(math.MaxFloat32)

	for axis := 0; axis < 3; axis++ {
		if !rr.par[axis] {
			t1 := (min[axis] - origin[axis]) * rr.inv[axis]
			t2 := (max[axis] - origin[axis]) * rr.inv[axis]
			if t1 > t2 {
				t1, t2 = t2, t1
			}
			if t1 > tmin {
				tmin = t1
			}
			if t2 < tmax {
				tmax = t2
			}
		} else if origin[axis] < min[axis] || origin[axis] > max[axis] {
			return false, 0
		}
	}

	if tmax < 0 || tmin > tmax {
		return false, 0
	}
	if tmin < 0 {
		tmin = 0
	}
	return true, tmin
}

// Nearest positive root of the ray/sphere quadratic; the smaller root is
// preferred, falling back to the exit point when the origin is inside.
func raySphere(origin, dir, center types.Vec3, radius float32) (float32, bool) {
	oc := origin.Sub(center)
	a := dir.Dot(dir)
	b := 2 * oc.Dot(dir)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, false
	}

	sqrtD := float32(math.Sqrt(float64(disc)))
	inv2a := 1 / (2 * a)
	t0 := (-b - sqrtD) * inv2a
	t1 := (-b + sqrtD) * inv2a
	if t0 > t1 {
		t0, t1 = t1, t0
	}

	t := t0
	if t <= hitEpsilon {
		t = t1
	}
	if t <= hitEpsilon {
		return 0, false
	}
	return t, true
}
