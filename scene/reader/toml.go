package reader

import (
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/D3rJ4n/raytracing-webgpu-sub001/log"
	"github.com/D3rJ4n/raytracing-webgpu-sub001/scene"
	"github.com/D3rJ4n/raytracing-webgpu-sub001/types"
)

// SceneDef is the TOML scene definition schema. It is exported so tooling
// that emits scene definitions shares one schema with the reader.
type SceneDef struct {
	Build   BuildDef    `toml:"build"`
	Spheres []SphereDef `toml:"spheres"`
}

// BuildDef carries optional hierarchy build limits; a zero value keeps the
// builder default.
type BuildDef struct {
	MaxLeafSize int `toml:"max-leaf-size,omitempty"`
	MaxDepth    int `toml:"max-depth,omitempty"`
}

// SphereDef describes one sphere entry.
type SphereDef struct {
	Center   [3]float32 `toml:"center"`
	Radius   float32    `toml:"radius"`
	Color    [3]float32 `toml:"color"`
	Metallic float32    `toml:"metallic"`
}

type tomlSceneReader struct {
	logger log.Logger
}

// Create a new TOML scene reader.
func newTomlSceneReader() *tomlSceneReader {
	return &tomlSceneReader{
		logger: log.New("toml reader"),
	}
}

// Read a scene definition from a TOML resource and compile it.
func (p *tomlSceneReader) Read(sceneRes *scene.Resource) (*scene.CompiledScene, error) {
	p.logger.Noticef(`parsing scene definition from "%s"`, sceneRes.Path())
	start := time.Now()

	var def SceneDef
	md, err := toml.NewDecoder(sceneRes).Decode(&def)
	if err != nil {
		return nil, errors.Wrapf(err, "tomlSceneReader: failed to parse %s", sceneRes.Path())
	}
	for _, key := range md.Undecoded() {
		p.logger.Warningf("unknown key %q in scene definition; skipping", key.String())
	}

	parsed := scene.NewScene()
	for _, sphere := range def.Spheres {
		err = parsed.AddSphere(scene.Sphere{
			Center:   types.Vec3{sphere.Center[0], sphere.Center[1], sphere.Center[2]},
			Radius:   sphere.Radius,
			Color:    types.Vec3{sphere.Color[0], sphere.Color[1], sphere.Color[2]},
			Metallic: sphere.Metallic,
		})
		if err != nil {
			return nil, errors.Wrapf(err, "tomlSceneReader: %s", sceneRes.Path())
		}
	}

	p.logger.Noticef("parsed %d spheres in %d ms", len(parsed.Spheres), time.Since(start).Nanoseconds()/1e6)

	return scene.Compile(parsed, scene.BuildOptions{
		MaxLeafSize: def.Build.MaxLeafSize,
		MaxDepth:    def.Build.MaxDepth,
	})
}
