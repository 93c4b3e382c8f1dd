package reader

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/D3rJ4n/raytracing-webgpu-sub001/scene"
)

// The Reader interface is implemented by all scene readers.
type Reader interface {
	// Read a compiled scene from a resource.
	Read(*scene.Resource) (*scene.CompiledScene, error)
}

// Read a scene from the given file. TOML scene definitions are compiled on
// the fly; zip archives already contain a compiled scene.
func ReadScene(filename string) (*scene.CompiledScene, error) {
	res, err := scene.NewResource(filename, nil)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	// Select reader based on file extension
	var reader Reader
	if strings.HasSuffix(filename, ".toml") {
		reader = newTomlSceneReader()
	} else if strings.HasSuffix(filename, ".zip") {
		reader = newZipSceneReader()
	} else {
		return nil, errors.New("readScene: unsupported file format")
	}
	return reader.Read(res)
}
