package main

import (
	"os"

	"github.com/urfave/cli"

	"github.com/D3rJ4n/raytracing-webgpu-sub001/cmd"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "raytracing-webgpu-sub001"
	app.Usage = "compile and validate sphere scenes for the WebGPU raytracer"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "compile",
			Usage: "compile scene definitions into a binary compressed format",
			Description: `
Parse sphere scene definitions from TOML files, build a bounding volume
hierarchy over each scene and pack the results into the flat buffers the
renderer uploads to the GPU.

The compiled scene data is written to a zip archive next to each input which
can be supplied as an argument to the info and validate commands.`,
			ArgsUsage: "scene1.toml scene2.toml ...",
			Action:    cmd.CompileScene,
		},
		{
			Name:      "info",
			Usage:     "print buffer statistics for a compiled scene",
			ArgsUsage: "scene.zip",
			Action:    cmd.ShowSceneInfo,
		},
		{
			Name:  "validate",
			Usage: "check the hierarchy of a compiled scene",
			Description: `
Check the structural invariants of a scene's bounding volume hierarchy and
cross-check hierarchy traversal against a brute-force linear scan over a grid
of probe rays. TOML definitions are compiled on the fly before validation.`,
			ArgsUsage: "scene.toml|scene.zip",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "rays",
					Value: 32,
					Usage: "probe ray grid size per eye point",
				},
			},
			Action: cmd.ValidateScene,
		},
		{
			Name:      "generate",
			Usage:     "generate a random sphere scene definition",
			ArgsUsage: "scene.toml",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "spheres",
					Value: 256,
					Usage: "number of spheres to generate",
				},
				cli.Int64Flag{
					Name:  "seed",
					Value: 1,
					Usage: "random generator seed",
				},
				cli.IntFlag{
					Name:  "max-leaf-size",
					Usage: "hierarchy leaf size limit to embed in the definition",
				},
				cli.IntFlag{
					Name:  "max-depth",
					Usage: "hierarchy depth limit to embed in the definition",
				},
			},
			Action: cmd.GenerateScene,
		},
	}

	app.Run(os.Args)
}
