// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Window    WindowConfig    `yaml:"window"`
	Camera    CameraConfig    `yaml:"camera"`
	Render    RenderConfig    `yaml:"render"`
	Resources ResourcesConfig `yaml:"resources"`
	Assets    AssetsConfig    `yaml:"assets"`
	Input     InputConfig     `yaml:"input"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// WindowConfig holds display settings.
type WindowConfig struct {
	Title       string `yaml:"title"`
	Width       int    `yaml:"width"`
	Height      int    `yaml:"height"`
	Fullscreen  bool   `yaml:"fullscreen"`
	VSync       bool   `yaml:"vsync"`
	SampleCount int    `yaml:"sample_count"`
}

// CameraConfig describes the fixed look-at camera.
type CameraConfig struct {
	Position [3]float32 `yaml:"position"`
	Target   [3]float32 `yaml:"target"`
	FovY     float32    `yaml:"fov_y"` // degrees
	Near     float32    `yaml:"near"`
	Far      float32    `yaml:"far"`
}

// RenderConfig holds per-frame render settings.
type RenderConfig struct {
	ClearColor [4]float32 `yaml:"clear_color"`
}

// ResourcesConfig holds the fixed capacities of the resource tables.
type ResourcesConfig struct {
	MaxBuffers   int `yaml:"max_buffers"`
	MaxPipelines int `yaml:"max_pipelines"`
	MaxSubmeshes int `yaml:"max_submeshes"`
	MaxMeshes    int `yaml:"max_meshes"`
	MaxEntities  int `yaml:"max_entities"`
}

// AssetsConfig lists the glTF files loaded at startup, in order.
// The same path may appear more than once; every entry is loaded independently.
type AssetsConfig struct {
	Paths []string `yaml:"paths"`
}

// InputConfig controls how button input moves the controlled entity.
type InputConfig struct {
	ControlledEntity int     `yaml:"controlled_entity"`
	TurnStep         float32 `yaml:"turn_step"` // degrees per frame
	MoveStep         float32 `yaml:"move_step"` // units per frame
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with the demo's default values.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Title:       "builder.town",
			Width:       800,
			Height:      600,
			Fullscreen:  false,
			VSync:       true,
			SampleCount: 4,
		},
		Camera: CameraConfig{
			Position: [3]float32{0, 50, 50},
			Target:   [3]float32{0, 0, 0},
			FovY:     60,
			Near:     0.01,
			Far:      1000,
		},
		Render: RenderConfig{
			ClearColor: [4]float32{0.25, 0.5, 0.75, 1.0},
		},
		Resources: ResourcesConfig{
			MaxBuffers:   64,
			MaxPipelines: 32,
			MaxSubmeshes: 32,
			MaxMeshes:    16,
			MaxEntities:  16,
		},
		Assets: AssetsConfig{
			Paths: []string{
				"assets/toob.gltf",
				"assets/plus.gltf",
				"assets/toob.gltf",
				"assets/reggie.gltf",
			},
		},
		Input: InputConfig{
			ControlledEntity: 1,
			TurnStep:         5,
			MoveStep:         0.5,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
