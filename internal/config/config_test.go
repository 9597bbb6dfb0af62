package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Window.Width != 800 || cfg.Window.Height != 600 {
		t.Errorf("expected 800x600, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Window.Title != "builder.town" {
		t.Errorf("expected title builder.town, got %s", cfg.Window.Title)
	}
	if cfg.Window.SampleCount != 4 {
		t.Errorf("expected sample count 4, got %d", cfg.Window.SampleCount)
	}

	if cfg.Camera.Position != [3]float32{0, 50, 50} {
		t.Errorf("unexpected camera position %v", cfg.Camera.Position)
	}
	if cfg.Camera.FovY != 60 {
		t.Errorf("expected fov 60, got %f", cfg.Camera.FovY)
	}

	r := cfg.Resources
	if r.MaxBuffers != 64 || r.MaxPipelines != 32 || r.MaxSubmeshes != 32 || r.MaxMeshes != 16 || r.MaxEntities != 16 {
		t.Errorf("unexpected capacities %+v", r)
	}

	// toob.gltf appears twice on purpose
	if len(cfg.Assets.Paths) != 4 {
		t.Fatalf("expected 4 asset paths, got %d", len(cfg.Assets.Paths))
	}
	if cfg.Assets.Paths[0] != cfg.Assets.Paths[2] {
		t.Errorf("expected first and third asset to match, got %s and %s", cfg.Assets.Paths[0], cfg.Assets.Paths[2])
	}

	if cfg.Input.ControlledEntity != 1 {
		t.Errorf("expected controlled entity 1, got %d", cfg.Input.ControlledEntity)
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1920
  height: 1080
  fullscreen: true
  sample_count: 1

camera:
  position: [0, 10, 20]
  fov_y: 45

resources:
  max_meshes: 2

assets:
  paths:
    - scene/a.glb
    - scene/b.gltf

input:
  controlled_entity: 0

logging:
  level: "debug"
  log_file: "viewer.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Window.Width != 1920 || cfg.Window.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if !cfg.Window.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Window.SampleCount != 1 {
		t.Errorf("expected sample count 1, got %d", cfg.Window.SampleCount)
	}
	// Unset keys keep their defaults
	if cfg.Window.Title != "builder.town" {
		t.Errorf("expected default title, got %s", cfg.Window.Title)
	}

	if cfg.Camera.Position != [3]float32{0, 10, 20} {
		t.Errorf("unexpected camera position %v", cfg.Camera.Position)
	}
	if cfg.Camera.FovY != 45 {
		t.Errorf("expected fov 45, got %f", cfg.Camera.FovY)
	}

	if cfg.Resources.MaxMeshes != 2 {
		t.Errorf("expected max meshes 2, got %d", cfg.Resources.MaxMeshes)
	}
	if cfg.Resources.MaxBuffers != 64 {
		t.Errorf("expected default max buffers 64, got %d", cfg.Resources.MaxBuffers)
	}

	if len(cfg.Assets.Paths) != 2 || cfg.Assets.Paths[1] != "scene/b.gltf" {
		t.Errorf("unexpected asset paths %v", cfg.Assets.Paths)
	}

	if cfg.Input.ControlledEntity != 0 {
		t.Errorf("expected controlled entity 0, got %d", cfg.Input.ControlledEntity)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "viewer.log" {
		t.Errorf("expected log file 'viewer.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
window:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"zero capacity", func(c *Config) { c.Resources.MaxMeshes = 0 }, true},
		{"negative width", func(c *Config) { c.Window.Width = -1 }, true},
		{"zero samples", func(c *Config) { c.Window.SampleCount = 0 }, true},
		{"far before near", func(c *Config) { c.Camera.Far = c.Camera.Near / 2 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("got error=%v, wantErr=%v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	os.Chdir(tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("window:\n  width: 640\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Window.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.Width != 2560 || cfg.Window.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Window.Width, cfg.Window.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name:  "samples flag",
			setup: func() { *flagSamples = 8 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Window.SampleCount != 8 {
					t.Errorf("expected sample count 8, got %d", cfg.Window.SampleCount)
				}
			},
			teardown: func() { *flagSamples = 0 },
		},
		{
			name: "asset flags replace list",
			setup: func() {
				flagAssets.Set("a.glb")
				flagAssets.Set("a.glb")
			},
			verify: func(t *testing.T, cfg *Config) {
				if len(cfg.Assets.Paths) != 2 || cfg.Assets.Paths[0] != "a.glb" {
					t.Errorf("unexpected asset paths %v", cfg.Assets.Paths)
				}
			},
			teardown: func() { flagAssets = nil },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
window:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width should be from flag (1920), not file (1600)
	if cfg.Window.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Window.Width)
	}
	if cfg.Window.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Window.Height)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Assets.Paths = []string{"only.glb"}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("loadFromFile: %v", err)
	}
	if len(loaded.Assets.Paths) != 1 || loaded.Assets.Paths[0] != "only.glb" {
		t.Errorf("unexpected asset paths after reload %v", loaded.Assets.Paths)
	}
}

func TestLoadFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
assets:
  paths: [a.glb, b.glb]
resources:
  max_meshes: 4
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Flags are not consulted.
	*flagWidth = 1920
	defer func() { *flagWidth = 0 }()

	cfg, err := LoadFile(configPath)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Window.Width != 800 {
		t.Errorf("expected default width 800, got %d", cfg.Window.Width)
	}
	if len(cfg.Assets.Paths) != 2 || cfg.Resources.MaxMeshes != 4 {
		t.Errorf("file values not applied: %+v %+v", cfg.Assets, cfg.Resources)
	}

	if err := os.WriteFile(configPath, []byte("resources:\n  max_entities: 0\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	if _, err := LoadFile(configPath); err == nil {
		t.Error("expected validation error for zero capacity")
	}

	if _, err := LoadFile(filepath.Join(tmpDir, "missing.yaml")); err == nil {
		t.Error("expected error for missing explicit file")
	}
}
