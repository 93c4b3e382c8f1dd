package cmd

import (
	"math"
	"runtime"

	"github.com/pkg/errors"
	"github.com/urfave/cli"
	"golang.org/x/sync/errgroup"

	"github.com/D3rJ4n/raytracing-webgpu-sub001/bvh"
	"github.com/D3rJ4n/raytracing-webgpu-sub001/scene"
	"github.com/D3rJ4n/raytracing-webgpu-sub001/scene/reader"
	"github.com/D3rJ4n/raytracing-webgpu-sub001/trace"
	"github.com/D3rJ4n/raytracing-webgpu-sub001/types"
)

// Validate a scene: check the hierarchy invariants of the compiled buffers
// and cross-check hierarchy traversal against a brute-force linear scan over
// a grid of probe rays.
func ValidateScene(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing scene file argument")
	}

	sc, err := reader.ReadScene(ctx.Args().First())
	if err != nil {
		return err
	}

	logger.Notice("checking hierarchy invariants")
	if err = bvh.Verify(sc.SphereBuffer, sc.SphereCount, sc.Result()); err != nil {
		return err
	}

	gridSize := ctx.Int("rays")
	if gridSize < 1 {
		gridSize = 1
	}
	logger.Noticef("cross-checking traversal on a %dx%d probe grid", gridSize, gridSize)
	if err = crossCheckTraversal(sc, gridSize); err != nil {
		return err
	}

	logger.Noticef("scene is valid: %d spheres, %d nodes, %d leafs, depth %d",
		sc.SphereCount, sc.NodeCount, sc.LeafCount, sc.MaxDepth)
	return nil
}

// Shoot probe rays from two eye points outside the scene bounds towards a
// grid of targets inside them and require traversal and linear scan to agree
// on every hit. Grid rows are checked in parallel.
func crossCheckTraversal(sc *scene.CompiledScene, gridSize int) error {
	if sc.SphereCount == 0 {
		return nil
	}

	tr := trace.NewTraverser(sc)
	root := bvh.DecodeNode(sc.NodeBuffer, 0)
	span := root.Max.Sub(root.Min)
	midZ := (root.Min[2] + root.Max[2]) * 0.5

	eyes := []types.Vec3{
		root.Max.Add(span.Mul(0.5)),
		root.Min.Sub(span.Mul(0.5)),
	}

	var g errgroup.Group
	rows := make(chan int, gridSize)
	for row := 0; row < gridSize; row++ {
		rows <- row
	}
	close(rows)

	for worker := 0; worker < runtime.NumCPU(); worker++ {
		g.Go(func() error {
			for row := range rows {
				v := (float32(row) + 0.5) / float32(gridSize)
				for col := 0; col < gridSize; col++ {
					u := (float32(col) + 0.5) / float32(gridSize)
					target := types.Vec3{
						root.Min[0] + span[0]*u,
						root.Min[1] + span[1]*v,
						midZ,
					}

					for _, eye := range eyes {
						dir := target.Sub(eye).Normalize()
						hit, ok := tr.Nearest(eye, dir, float32(math.MaxFloat32))
						ref, refOK := tr.NearestLinear(eye, dir, float32(math.MaxFloat32))
						if ok != refOK {
							return errors.Errorf("traversal mismatch for ray %v -> %v: hierarchy hit=%v, linear hit=%v",
								eye, target, ok, refOK)
						}
						if ok && (hit.Sphere != ref.Sphere || hit.T != ref.T) {
							return errors.Errorf("traversal mismatch for ray %v -> %v: hierarchy found sphere %d at t=%g, linear found sphere %d at t=%g",
								eye, target, hit.Sphere, hit.T, ref.Sphere, ref.T)
						}
					}
				}
			}
			return nil
		})
	}

	return g.Wait()
}
