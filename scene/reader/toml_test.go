package reader

import (
	"strings"
	"testing"

	"github.com/D3rJ4n/raytracing-webgpu-sub001/bvh"
	"github.com/D3rJ4n/raytracing-webgpu-sub001/scene"
	"github.com/D3rJ4n/raytracing-webgpu-sub001/types"
)

const testSceneDef = `
# three spheres hovering in front of the camera
[build]
max-leaf-size = 2
max-depth = 8

[[spheres]]
center = [0.0, 0.0, -5.0]
radius = 1.0
color = [0.9, 0.1, 0.1]
metallic = 0.0

[[spheres]]
center = [3.0, 0.0, -5.0]
radius = 0.5
color = [0.1, 0.9, 0.1]
metallic = 1.0

[[spheres]]
center = [-3.0, 1.0, -6.0]
radius = 2.0
color = [0.2, 0.2, 0.9]
metallic = 0.25
`

func TestTomlSceneReader(t *testing.T) {
	reader := newTomlSceneReader()

	sc, err := reader.Read(scene.NewResourceFromStream("scene.toml", strings.NewReader(testSceneDef)))
	if err != nil {
		t.Fatal(err)
	}

	expCount := 3
	if sc.SphereCount != expCount {
		t.Fatalf("expected compiled scene with %d spheres; got %d", expCount, sc.SphereCount)
	}
	expLeafSize, expDepthLimit := 2, 8
	if sc.MaxLeafSize != expLeafSize || sc.DepthLimit != expDepthLimit {
		t.Fatalf("expected build limits %d/%d from the definition; got %d/%d",
			expLeafSize, expDepthLimit, sc.MaxLeafSize, sc.DepthLimit)
	}

	if err = bvh.Verify(sc.SphereBuffer, sc.SphereCount, sc.Result()); err != nil {
		t.Fatalf("expected compiled hierarchy to verify; got %v", err)
	}

	// Sphere values survive parsing and packing unchanged.
	spheres := scene.UnpackSpheres(sc.SphereBuffer, sc.SphereCount)
	exp := scene.Sphere{Center: types.Vec3{3, 0, -5}, Radius: 0.5, Color: types.Vec3{0.1, 0.9, 0.1}, Metallic: 1}
	if spheres[1] != exp {
		t.Fatalf("expected sphere 1 to unpack as %+v; got %+v", exp, spheres[1])
	}
}

func TestTomlSceneReaderDefaultLimits(t *testing.T) {
	payload := `
[[spheres]]
center = [0.0, 0.0, -5.0]
radius = 1.0
`
	sc, err := newTomlSceneReader().Read(scene.NewResourceFromStream("scene.toml", strings.NewReader(payload)))
	if err != nil {
		t.Fatal(err)
	}

	expLeafSize, expDepthLimit := bvh.DefaultMaxLeafSize, bvh.DefaultMaxDepth
	if sc.MaxLeafSize != expLeafSize || sc.DepthLimit != expDepthLimit {
		t.Fatalf("expected builder default limits %d/%d; got %d/%d",
			expLeafSize, expDepthLimit, sc.MaxLeafSize, sc.DepthLimit)
	}
}

func TestTomlSceneReaderInvalidSphere(t *testing.T) {
	payload := `
[[spheres]]
center = [0.0, 0.0, 0.0]
radius = -1.0
`
	_, err := newTomlSceneReader().Read(scene.NewResourceFromStream("scene.toml", strings.NewReader(payload)))
	if err == nil {
		t.Fatal("expected reading a sphere with negative radius to fail")
	}
}

func TestTomlSceneReaderParseError(t *testing.T) {
	_, err := newTomlSceneReader().Read(scene.NewResourceFromStream("scene.toml", strings.NewReader("= bogus")))
	if err == nil {
		t.Fatal("expected reading a malformed definition to fail")
	}
}
