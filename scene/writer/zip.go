package writer

import (
	"archive/zip"
	"encoding/gob"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/D3rJ4n/raytracing-webgpu-sub001/log"
	"github.com/D3rJ4n/raytracing-webgpu-sub001/scene"
)

const (
	dataFile = "scene.bin"
)

type zipSceneWriter struct {
	logger    log.Logger
	sceneFile string
}

// Create a new zip scene writer.
func newZipSceneWriter(sceneFile string) *zipSceneWriter {
	return &zipSceneWriter{
		logger:    log.New("zip writer"),
		sceneFile: sceneFile,
	}
}

// Write a compiled scene to a zip archive.
func (w *zipSceneWriter) Write(sc *scene.CompiledScene) error {
	w.logger.Noticef(`writing compressed scene to "%s"`, w.sceneFile)
	start := time.Now()

	zipFile, err := os.Create(w.sceneFile)
	if err != nil {
		return err
	}
	defer zipFile.Close()

	zw := zip.NewWriter(zipFile)
	defer zw.Close()

	cw, err := zw.Create(dataFile)
	if err != nil {
		return err
	}
	err = gob.NewEncoder(cw).Encode(sc)
	if err != nil {
		return errors.Wrapf(err, "zipSceneWriter: failed to write %s", dataFile)
	}

	w.logger.Noticef("compressed scene in %d ms", time.Since(start).Nanoseconds()/1e6)
	return nil
}
