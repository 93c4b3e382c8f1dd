package scene

import (
	"reflect"
	"testing"

	"github.com/D3rJ4n/raytracing-webgpu-sub001/bvh"
	"github.com/D3rJ4n/raytracing-webgpu-sub001/types"
)

func TestAddSphere(t *testing.T) {
	sc := NewScene()

	err := sc.AddSphere(Sphere{Center: types.Vec3{0, 1, -3}, Radius: 1, Color: types.Vec3{1, 1, 1}})
	if err != nil {
		t.Fatal(err)
	}

	err = sc.AddSphere(Sphere{Center: types.Vec3{1, 0, 0}})
	if err == nil {
		t.Fatal("expected error when adding a sphere with non-positive radius")
	}

	err = sc.AddSphere(Sphere{Radius: 1, Metallic: 1.5})
	if err == nil {
		t.Fatal("expected error when adding a sphere with out of range metalness")
	}

	expCount := 1
	if len(sc.Spheres) != expCount {
		t.Fatalf("expected scene to contain %d sphere; got %d", expCount, len(sc.Spheres))
	}
}

func TestPackSpheres(t *testing.T) {
	sc := NewScene()
	spheres := []Sphere{
		{Center: types.Vec3{1, 2, 3}, Radius: 0.5, Color: types.Vec3{0.9, 0.1, 0.2}, Metallic: 1},
		{Center: types.Vec3{-4, 0, -7}, Radius: 2, Color: types.Vec3{0.2, 0.8, 0.3}, Metallic: 0.25},
	}
	for _, sphere := range spheres {
		if err := sc.AddSphere(sphere); err != nil {
			t.Fatal(err)
		}
	}

	buffer := sc.Pack()

	expLen := 2 * bvh.SphereStride
	if len(buffer) != expLen {
		t.Fatalf("expected packed buffer of %d floats; got %d", expLen, len(buffer))
	}
	exp := []float32{
		1, 2, 3, 0.5, 0.9, 0.1, 0.2, 1,
		-4, 0, -7, 2, 0.2, 0.8, 0.3, 0.25,
	}
	if !reflect.DeepEqual(buffer, exp) {
		t.Fatalf("expected packed layout %v; got %v", exp, buffer)
	}

	unpacked := UnpackSpheres(buffer, 2)
	if !reflect.DeepEqual(unpacked, spheres) {
		t.Fatalf("expected unpacked spheres to match the input; got %+v", unpacked)
	}
}
