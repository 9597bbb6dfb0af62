package viewer

import (
	"github.com/davecgh/go-spew/spew"
	"go.uber.org/zap"

	"github.com/Faultbox/gltfview/internal/config"
	"github.com/Faultbox/gltfview/internal/engine/gpu"
	"github.com/Faultbox/gltfview/internal/engine/scene"
	"github.com/Faultbox/gltfview/internal/engine/shader/shaders"
	"github.com/Faultbox/gltfview/internal/logger"
)

// Scene is what startup produces: filled resource tables, the assets they
// came from and the shared mesh shader.
type Scene struct {
	Resources *scene.Resources
	Assets    []scene.Asset
	Shader    gpu.Shader
}

// Capacity converts configured table sizes.
func Capacity(cfg config.ResourcesConfig) scene.Capacity {
	return scene.Capacity{
		Buffers:   cfg.MaxBuffers,
		Pipelines: cfg.MaxPipelines,
		Submeshes: cfg.MaxSubmeshes,
		Meshes:    cfg.MaxMeshes,
		Entities:  cfg.MaxEntities,
	}
}

// LoadScene compiles the mesh shader, loads every configured asset in
// order and places one entity per mesh. Any failure aborts startup.
func LoadScene(dev gpu.Device, cfg *config.Config) (*Scene, error) {
	log := logger.Named("setup")

	sh, err := dev.CreateShader(shaders.MeshVertexShader, shaders.MeshFragmentShader)
	if err != nil {
		return nil, err
	}

	res := scene.NewResources(Capacity(cfg.Resources))
	loader := scene.NewLoader(dev, res, sh, cfg.Window.SampleCount)

	s := &Scene{Resources: res, Shader: sh}
	for _, path := range cfg.Assets.Paths {
		asset, err := loader.LoadAsset(path)
		if err != nil {
			return nil, err
		}
		s.Assets = append(s.Assets, asset)
	}

	if err := scene.PlaceEntities(res); err != nil {
		return nil, err
	}

	log.Info("scene ready",
		zap.Int("assets", len(s.Assets)),
		zap.Int("meshes", res.MeshCount()),
		zap.Int("entities", res.EntityCount()),
	)
	if log.Core().Enabled(zap.DebugLevel) {
		log.Debug("resource tables\n" + spew.Sdump(res.Stats()))
	}
	return s, nil
}
