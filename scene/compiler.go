package scene

import (
	"time"

	"github.com/pkg/errors"

	"github.com/D3rJ4n/raytracing-webgpu-sub001/bvh"
	"github.com/D3rJ4n/raytracing-webgpu-sub001/log"
)

// BuildOptions control the hierarchy construction step of a compile. A zero
// field keeps the builder default for that limit; out-of-range values are
// clamped by the builder.
type BuildOptions struct {
	MaxLeafSize int
	MaxDepth    int
}

type sceneCompiler struct {
	parsedScene   *Scene
	compiledScene *CompiledScene
	logger        log.Logger
}

// Compile a parsed scene into its GPU-friendly packed form: flatten the
// sphere list into the interleaved upload layout and build a bounding volume
// hierarchy over it.
func Compile(parsedScene *Scene, options BuildOptions) (*CompiledScene, error) {
	compiler := &sceneCompiler{
		parsedScene:   parsedScene,
		compiledScene: &CompiledScene{},
		logger:        log.New("scene compiler"),
	}

	start := time.Now()
	compiler.logger.Noticef("compiling scene with %d spheres", len(parsedScene.Spheres))

	var err error
	err = compiler.validateScene()
	if err != nil {
		return nil, err
	}

	err = compiler.packSpheres()
	if err != nil {
		return nil, err
	}

	err = compiler.partitionSpheres(options)
	if err != nil {
		return nil, err
	}

	compiler.logger.Noticef("compiled scene in %d ms", time.Since(start).Nanoseconds()/1e6)
	return compiler.compiledScene, nil
}

// Reject scenes assembled without AddSphere that carry unrenderable values.
func (sc *sceneCompiler) validateScene() error {
	for i, sphere := range sc.parsedScene.Spheres {
		if err := sphere.Validate(); err != nil {
			return errors.Wrapf(err, "scene: sphere %d", i)
		}
	}
	return nil
}

// Flatten the sphere list into the interleaved upload layout.
func (sc *sceneCompiler) packSpheres() error {
	start := time.Now()
	sc.logger.Notice("packing sphere buffer")

	sc.compiledScene.SphereBuffer = sc.parsedScene.Pack()
	sc.compiledScene.SphereCount = len(sc.parsedScene.Spheres)

	sc.logger.Noticef("packed %d spheres in %d ms", sc.compiledScene.SphereCount, time.Since(start).Nanoseconds()/1e6)
	return nil
}

// Build the bounding volume hierarchy over the packed sphere buffer.
func (sc *sceneCompiler) partitionSpheres(options BuildOptions) error {
	start := time.Now()
	sc.logger.Notice("partitioning spheres")

	builder := bvh.NewBuilder()
	maxLeafSize, maxDepth := builder.Limits()
	if options.MaxLeafSize != 0 {
		maxLeafSize = options.MaxLeafSize
	}
	if options.MaxDepth != 0 {
		maxDepth = options.MaxDepth
	}
	builder.SetLimits(maxLeafSize, maxDepth)

	res := builder.Build(sc.compiledScene.SphereBuffer, sc.compiledScene.SphereCount)
	sc.compiledScene.NodeBuffer = res.Nodes
	sc.compiledScene.IndexBuffer = res.Indices
	sc.compiledScene.NodeCount = res.NodeCount
	sc.compiledScene.LeafCount = res.LeafCount
	sc.compiledScene.MaxDepth = res.MaxDepth
	sc.compiledScene.MaxLeafSize = res.MaxLeafSize
	sc.compiledScene.DepthLimit = res.DepthLimit

	sc.logger.Noticef("partitioned %d spheres in %d ms", sc.compiledScene.SphereCount, time.Since(start).Nanoseconds()/1e6)
	return nil
}
