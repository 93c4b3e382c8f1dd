package cmd

import (
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/D3rJ4n/raytracing-webgpu-sub001/scene/reader"
)

// Generate a random sphere scene definition. The same seed always produces
// the same definition, which makes generated scenes usable as benchmark and
// regression fixtures.
func GenerateScene(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing output file argument")
	}
	outFile := ctx.Args().First()
	if !strings.HasSuffix(outFile, ".toml") {
		return errors.New("only scene definitions with a .toml extension can be generated")
	}

	count := ctx.Int("spheres")
	if count < 1 {
		return errors.New("sphere count must be at least 1")
	}
	seed := ctx.Int64("seed")
	rng := rand.New(rand.NewSource(seed))

	def := &reader.SceneDef{
		Build: reader.BuildDef{
			MaxLeafSize: ctx.Int("max-leaf-size"),
			MaxDepth:    ctx.Int("max-depth"),
		},
		Spheres: make([]reader.SphereDef, count),
	}
	for i := range def.Spheres {
		def.Spheres[i] = reader.SphereDef{
			Center: [3]float32{
				rng.Float32()*60 - 30,
				rng.Float32()*30 - 5,
				rng.Float32()*50 - 60,
			},
			Radius: 0.5 + rng.Float32()*2.5,
			Color: [3]float32{
				0.05 + rng.Float32()*0.9,
				0.05 + rng.Float32()*0.9,
				0.05 + rng.Float32()*0.9,
			},
			Metallic: float32(rng.Intn(2)) * rng.Float32(),
		}
	}

	logger.Noticef("writing %d spheres to %s (seed %d)", count, outFile, seed)

	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	defer f.Close()

	fmt.Fprintf(f, "# generated sphere scene, seed %d\n\n", seed)
	if err = toml.NewEncoder(f).Encode(def); err != nil {
		return errors.Wrapf(err, "failed to encode %s", outFile)
	}

	return nil
}
