package scene

import (
	"github.com/pkg/errors"

	"github.com/D3rJ4n/raytracing-webgpu-sub001/bvh"
	"github.com/D3rJ4n/raytracing-webgpu-sub001/types"
)

// Sphere is a single scene primitive: an analytic sphere with a solid base
// color and a metalness factor that the shading stage interpolates on.
type Sphere struct {
	Center   types.Vec3
	Radius   float32
	Color    types.Vec3
	Metallic float32
}

// Scene holds a scene definition as authored: a flat list of spheres in
// world space.
type Scene struct {
	Spheres []Sphere
}

// Create a new empty scene.
func NewScene() *Scene {
	return &Scene{
		Spheres: make([]Sphere, 0),
	}
}

// Validate checks that the sphere parameters are renderable.
func (s Sphere) Validate() error {
	if s.Radius <= 0 {
		return errors.Errorf("non-positive radius %g", s.Radius)
	}
	if s.Metallic < 0 || s.Metallic > 1 {
		return errors.Errorf("metalness %g outside [0, 1]", s.Metallic)
	}
	return nil
}

// Add a sphere to the scene.
func (s *Scene) AddSphere(sphere Sphere) error {
	if err := sphere.Validate(); err != nil {
		return errors.Wrapf(err, "scene: sphere %d", len(s.Spheres))
	}
	s.Spheres = append(s.Spheres, sphere)
	return nil
}

// Pack flattens the sphere list into the interleaved float32 layout that the
// GPU pipeline and the hierarchy builder consume: bvh.SphereStride values per
// sphere, [center xyz, radius, color rgb, metallic].
func (s *Scene) Pack() []float32 {
	buffer := make([]float32, len(s.Spheres)*bvh.SphereStride)
	for i, sphere := range s.Spheres {
		base := i * bvh.SphereStride
		buffer[base+0] = sphere.Center[0]
		buffer[base+1] = sphere.Center[1]
		buffer[base+2] = sphere.Center[2]
		buffer[base+3] = sphere.Radius
		buffer[base+4] = sphere.Color[0]
		buffer[base+5] = sphere.Color[1]
		buffer[base+6] = sphere.Color[2]
		buffer[base+7] = sphere.Metallic
	}
	return buffer
}

// UnpackSpheres recovers sphere values from a packed buffer. It is the
// inverse of Pack and is used when inspecting compiled scenes.
func UnpackSpheres(buffer []float32, count int) []Sphere {
	spheres := make([]Sphere, count)
	for i := 0; i < count; i++ {
		base := i * bvh.SphereStride
		spheres[i] = Sphere{
			Center:   types.Vec3{buffer[base+0], buffer[base+1], buffer[base+2]},
			Radius:   buffer[base+3],
			Color:    types.Vec3{buffer[base+4], buffer[base+5], buffer[base+6]},
			Metallic: buffer[base+7],
		}
	}
	return spheres
}
