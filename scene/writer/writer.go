package writer

import "github.com/D3rJ4n/raytracing-webgpu-sub001/scene"

// The Writer interface is implemented by all scene writers.
type Writer interface {
	// Write a compiled scene.
	Write(*scene.CompiledScene) error
}

// Write a compiled scene to binary format.
func WriteScene(sc *scene.CompiledScene, filename string) error {
	writer := newZipSceneWriter(filename)
	return writer.Write(sc)
}
