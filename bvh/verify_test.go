package bvh

import "testing"

func TestVerifyAcceptsBuilds(t *testing.T) {
	builder := NewBuilder()

	buffers := map[string][]float32{
		"empty":     nil,
		"single":    lineOfSpheres(1, 1, 0.5),
		"one leaf":  lineOfSpheres(6, 1, 0.5),
		"two level": lineOfSpheres(13, 2, 0.5),
		"scattered": scatteredSpheres(128),
	}
	for name, buffer := range buffers {
		sphereCount := len(buffer) / SphereStride
		res := builder.Build(buffer, sphereCount)
		if err := Verify(buffer, sphereCount, res); err != nil {
			t.Fatalf("expected %s build to verify; got %v", name, err)
		}
	}
}

func TestVerifyRejectsTampering(t *testing.T) {
	buffer := scatteredSpheres(64)
	build := func() *Result {
		return NewBuilder().Build(buffer, 64)
	}

	res := build()
	res.Indices[3] = res.Indices[5]
	if err := Verify(buffer, 64, res); err == nil {
		t.Fatal("expected verification to fail for a duplicated index entry")
	}

	res = build()
	res.Nodes[0] += 10 // shrink the root box past its children
	if err := Verify(buffer, 64, res); err == nil {
		t.Fatal("expected verification to fail for a box that no longer bounds its children")
	}

	res = build()
	res.Nodes[6] = 0 // root left child points back at the root
	if err := Verify(buffer, 64, res); err == nil {
		t.Fatal("expected verification to fail for a cyclic child reference")
	}

	res = build()
	res.NodeCount++
	if err := Verify(buffer, 64, res); err == nil {
		t.Fatal("expected verification to fail for a node count mismatch")
	}

	res = build()
	res.Nodes[9] = -1 // the root is internal, its sphere count slot must stay 0
	if err := Verify(buffer, 64, res); err == nil {
		t.Fatal("expected verification to fail for a corrupted sphere range")
	}

	if err := Verify(buffer, 64, nil); err == nil {
		t.Fatal("expected verification to fail for a missing result")
	}
}

func TestVerifyDepthLimitExemption(t *testing.T) {
	buffer := lineOfSpheres(40, 1, 0.25)
	builder := NewBuilder()
	builder.SetLimits(2, 3)

	// Depth 3 leaves hold 5 spheres each, over the 2-sphere limit; hitting
	// the depth limit makes that legal.
	res := builder.Build(buffer, 40)
	if err := Verify(buffer, 40, res); err != nil {
		t.Fatalf("expected depth-limited build to verify; got %v", err)
	}
	expDepth := 3
	if res.MaxDepth != expDepth {
		t.Fatalf("expected tree depth %d; got %d", expDepth, res.MaxDepth)
	}
}
