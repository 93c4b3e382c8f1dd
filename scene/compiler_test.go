package scene

import (
	"testing"

	"github.com/D3rJ4n/raytracing-webgpu-sub001/bvh"
	"github.com/D3rJ4n/raytracing-webgpu-sub001/types"
)

func makeTestScene(t *testing.T, sphereCount int) *Scene {
	sc := NewScene()
	for i := 0; i < sphereCount; i++ {
		err := sc.AddSphere(Sphere{
			Center: types.Vec3{
				float32(i%8) * 3,
				float32(i/8) * 3,
				-float32(i),
			},
			Radius:   1,
			Color:    types.Vec3{0.5, 0.5, 0.5},
			Metallic: float32(i%2) * 0.5,
		})
		if err != nil {
			t.Fatal(err)
		}
	}
	return sc
}

func TestCompile(t *testing.T) {
	sc := makeTestScene(t, 32)

	compiled, err := Compile(sc, BuildOptions{})
	if err != nil {
		t.Fatal(err)
	}

	expCount := 32
	if compiled.SphereCount != expCount {
		t.Fatalf("expected compiled scene with %d spheres; got %d", expCount, compiled.SphereCount)
	}
	expLen := expCount * bvh.SphereStride
	if len(compiled.SphereBuffer) != expLen {
		t.Fatalf("expected sphere buffer of %d floats; got %d", expLen, len(compiled.SphereBuffer))
	}
	expLen = compiled.NodeCount * bvh.NodeStride
	if len(compiled.NodeBuffer) != expLen {
		t.Fatalf("expected node buffer of %d floats; got %d", expLen, len(compiled.NodeBuffer))
	}
	expLeafSize, expDepthLimit := bvh.DefaultMaxLeafSize, bvh.DefaultMaxDepth
	if compiled.MaxLeafSize != expLeafSize || compiled.DepthLimit != expDepthLimit {
		t.Fatalf("expected default build limits %d/%d; got %d/%d",
			expLeafSize, expDepthLimit, compiled.MaxLeafSize, compiled.DepthLimit)
	}

	if err = bvh.Verify(compiled.SphereBuffer, compiled.SphereCount, compiled.Result()); err != nil {
		t.Fatalf("expected compiled hierarchy to verify; got %v", err)
	}
}

func TestCompileBuildOptions(t *testing.T) {
	sc := makeTestScene(t, 16)

	compiled, err := Compile(sc, BuildOptions{MaxLeafSize: 1, MaxDepth: 2})
	if err != nil {
		t.Fatal(err)
	}

	expLeafSize, expDepthLimit := 1, 2
	if compiled.MaxLeafSize != expLeafSize || compiled.DepthLimit != expDepthLimit {
		t.Fatalf("expected build limits %d/%d; got %d/%d",
			expLeafSize, expDepthLimit, compiled.MaxLeafSize, compiled.DepthLimit)
	}
	if compiled.MaxDepth != expDepthLimit {
		t.Fatalf("expected the tree to stop at depth %d; got %d", expDepthLimit, compiled.MaxDepth)
	}

	// Out of range limits are clamped, not rejected.
	compiled, err = Compile(sc, BuildOptions{MaxLeafSize: 99, MaxDepth: 99})
	if err != nil {
		t.Fatal(err)
	}
	expLeafSize, expDepthLimit = 16, 30
	if compiled.MaxLeafSize != expLeafSize || compiled.DepthLimit != expDepthLimit {
		t.Fatalf("expected build limits clamped to %d/%d; got %d/%d",
			expLeafSize, expDepthLimit, compiled.MaxLeafSize, compiled.DepthLimit)
	}
}

func TestCompileEmptyScene(t *testing.T) {
	compiled, err := Compile(NewScene(), BuildOptions{})
	if err != nil {
		t.Fatal(err)
	}

	expCount := 0
	if compiled.SphereCount != expCount || compiled.NodeCount != expCount {
		t.Fatalf("expected empty buffers; got %d spheres, %d nodes", compiled.SphereCount, compiled.NodeCount)
	}
}

func TestCompileRejectsInvalidSpheres(t *testing.T) {
	sc := &Scene{
		Spheres: []Sphere{
			{Center: types.Vec3{0, 0, 0}, Radius: 1},
			{Center: types.Vec3{1, 0, 0}, Radius: -2},
		},
	}

	_, err := Compile(sc, BuildOptions{})
	if err == nil {
		t.Fatal("expected compiling a scene with a negative radius sphere to fail")
	}
}
