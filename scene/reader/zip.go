package reader

import (
	"archive/zip"
	"bytes"
	"encoding/gob"
	"io"
	"time"

	"github.com/pkg/errors"

	"github.com/D3rJ4n/raytracing-webgpu-sub001/log"
	"github.com/D3rJ4n/raytracing-webgpu-sub001/scene"
)

const (
	dataFile = "scene.bin"
)

type zipSceneReader struct {
	logger log.Logger
}

// Create a new zip scene reader.
func newZipSceneReader() *zipSceneReader {
	return &zipSceneReader{
		logger: log.New("zip reader"),
	}
}

// Read a compiled scene from a zip archive.
func (p *zipSceneReader) Read(sceneRes *scene.Resource) (*scene.CompiledScene, error) {
	p.logger.Noticef(`parsing compiled scene from "%s"`, sceneRes.Path())
	start := time.Now()

	// zip package requires a reader implementing ReaderAt. To work around
	// this requirement we read the entire zip file into memory and create
	// a reader from the bytes package that implements ReaderAt
	data, err := io.ReadAll(sceneRes)
	if err != nil {
		return nil, err
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	sc := &scene.CompiledScene{}
	var loaded bool
	for _, f := range zr.File {
		switch f.Name {
		case dataFile:
		default:
			p.logger.Warningf("unknown file %s in scene zip file; skipping", f.Name)
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		err = gob.NewDecoder(rc).Decode(sc)
		rc.Close()
		if err != nil {
			return nil, errors.Wrapf(err, "zipSceneReader: failed to load %s", f.Name)
		}
		loaded = true
	}
	if !loaded {
		return nil, errors.Errorf("zipSceneReader: archive does not contain %s", dataFile)
	}

	p.logger.Noticef("loaded scene in %d ms", time.Since(start).Nanoseconds()/1e6)
	return sc, nil
}
