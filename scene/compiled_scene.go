package scene

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/D3rJ4n/raytracing-webgpu-sub001/bvh"
)

// CompiledScene is the GPU-friendly form of a scene: the packed sphere
// buffer together with the bounding volume hierarchy built over it. All
// three buffers upload verbatim; the hierarchy references spheres through
// the index buffer so the sphere buffer itself is never reordered.
type CompiledScene struct {
	// Interleaved sphere data, bvh.SphereStride floats per sphere.
	SphereBuffer []float32
	SphereCount  int

	// Flattened hierarchy nodes, bvh.NodeStride floats per node, root first.
	NodeBuffer []float32

	// Sphere index permutation referenced by the hierarchy leafs.
	IndexBuffer []uint32

	// Shape counters captured at build time.
	NodeCount int
	LeafCount int
	MaxDepth  int

	// The (clamped) limits the hierarchy was built with.
	MaxLeafSize int
	DepthLimit  int
}

// Result reassembles the hierarchy build result so validation tooling can
// check an archived scene without the builder that produced it.
func (sc *CompiledScene) Result() *bvh.Result {
	return &bvh.Result{
		Nodes:       sc.NodeBuffer,
		Indices:     sc.IndexBuffer,
		NodeCount:   sc.NodeCount,
		LeafCount:   sc.LeafCount,
		MaxDepth:    sc.MaxDepth,
		MaxLeafSize: sc.MaxLeafSize,
		DepthLimit:  sc.DepthLimit,
	}
}

// SphereBufferBytes returns the sphere buffer as little-endian bytes ready
// for a device upload.
func (sc *CompiledScene) SphereBufferBytes() []byte {
	return float32Bytes(sc.SphereBuffer)
}

// NodeBufferBytes returns the node buffer as little-endian bytes ready for a
// device upload.
func (sc *CompiledScene) NodeBufferBytes() []byte {
	return float32Bytes(sc.NodeBuffer)
}

// IndexBufferBytes returns the index buffer as little-endian bytes ready for
// a device upload.
func (sc *CompiledScene) IndexBufferBytes() []byte {
	buf := make([]byte, len(sc.IndexBuffer)*4)
	for i, v := range sc.IndexBuffer {
		binary.LittleEndian.PutUint32(buf[i*4:], v)
	}
	return buf
}

func float32Bytes(values []float32) []byte {
	buf := make([]byte, len(values)*4)
	for i, v := range values {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

// Build a tabular representation of scene statistics.
func (sc *CompiledScene) Stats() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Buffer", "Entries", "Size"})
	table.Append([]string{"Spheres", fmt.Sprintf("%d", sc.SphereCount), fmtSize(sc.SphereBuffer)})
	table.Append([]string{"BVH nodes", fmt.Sprintf("%d", sc.NodeCount), fmtSize(sc.NodeBuffer)})
	table.Append([]string{"BVH indices", fmt.Sprintf("%d", len(sc.IndexBuffer)), fmtSize(sc.IndexBuffer)})
	table.Append([]string{" ", " ", " "})
	table.Append([]string{"Tree shape", fmt.Sprintf("%d leafs / depth %d", sc.LeafCount, sc.MaxDepth), " "})
	table.SetFooter([]string{"Total", " ", strings.TrimLeft(fmtSize(sc.SphereBuffer, sc.NodeBuffer, sc.IndexBuffer), " ")})

	table.Render()
	return buf.String()
}

// Sum the total space used by a set of slices and return back a formatted
// value with the appropriate byte/kb/mb unit.
func fmtSize(items ...interface{}) string {
	var totalBytes float32 = 0.0
	for _, item := range items {
		t := reflect.TypeOf(item)
		v := reflect.ValueOf(item)
		if v.Len() == 0 {
			continue
		}

		totalBytes += float32(int(t.Elem().Size()) * v.Len())
	}

	if totalBytes < 1e3 {
		return fmt.Sprintf("%3d bytes", int(totalBytes))
	} else if totalBytes < 1e6 {
		return fmt.Sprintf("%3.1f kb", totalBytes/1e3)
	}
	return fmt.Sprintf("%5.1f mb", totalBytes/1e6)
}
