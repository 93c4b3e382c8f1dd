package cmd

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/D3rJ4n/raytracing-webgpu-sub001/scene/reader"
	"github.com/D3rJ4n/raytracing-webgpu-sub001/scene/writer"
)

// Compile scene definitions to the binary format the renderer uploads.
func CompileScene(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() == 0 {
		return errors.New("missing scene definition argument")
	}

	for idx := 0; idx < ctx.NArg(); idx++ {
		sceneFile := ctx.Args().Get(idx)
		if !strings.HasSuffix(sceneFile, ".toml") {
			logger.Warningf("skipping unsupported file %s", sceneFile)
			continue
		}

		logger.Noticef("parsing and compiling scene: %s", sceneFile)
		sc, err := reader.ReadScene(sceneFile)
		if err != nil {
			return err
		}

		// Display compiled scene info
		logger.Noticef("scene information:\n%s", sc.Stats())

		zipFile := strings.Replace(sceneFile, ".toml", ".zip", -1)
		err = writer.WriteScene(sc, zipFile)
		if err != nil {
			return err
		}
	}

	return nil
}

// Display compiled scene info.
func ShowSceneInfo(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing compiled scene zip file")
	}

	sceneFile := ctx.Args().First()
	if !strings.HasSuffix(sceneFile, ".zip") {
		return errors.New("only compiled scene files with a .zip extension are supported")
	}

	sc, err := reader.ReadScene(sceneFile)
	if err != nil {
		return err
	}

	// Display compiled scene info
	logger.Noticef("scene information:\n%s", sc.Stats())

	return nil
}
