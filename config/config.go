package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the modeller looks for its config, relative to the
// working directory.
const DefaultPath = "config/modeller.yaml"

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

type Window struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type Camera struct {
	FOV      float32 `yaml:"fov"`
	Near     float32 `yaml:"near"`
	Far      float32 `yaml:"far"`
	Distance float32 `yaml:"distance"`
}

// Position is an [x, y, z] triple.
type Position [3]float32

type Scene struct {
	Seed       int64      `yaml:"seed"`
	PlaceDepth float32    `yaml:"place_depth"`
	BumpCount  int        `yaml:"bump_count"`
	BumpScale  float32    `yaml:"bump_scale"`
	Cells      []Position `yaml:"cells"`

	// Meshes maps extra placeable kinds to .obj, .gltf or .glb files.
	Meshes map[string]string `yaml:"meshes,omitempty"`
}

type Config struct {
	Window Window `yaml:"window"`
	Camera Camera `yaml:"camera"`
	Scene  Scene  `yaml:"scene"`
}

// Default returns the built-in configuration: four cells in a 640x480 window.
func Default() Config {
	return Config{
		Window: Window{
			Width:  640,
			Height: 480,
			Title:  "Cancer Cell Modeller",
		},
		Camera: Camera{
			FOV:      70,
			Near:     0.1,
			Far:      1000,
			Distance: 15,
		},
		Scene: Scene{
			Seed:       1,
			PlaceDepth: 15,
			BumpCount:  15,
			BumpScale:  0.3,
			Cells: []Position{
				{0, 0, 0},
				{0, 1, 0},
				{0, 0, 1},
				{0, 0, 2},
			},
		},
	}
}

// Load reads path over the defaults. A missing file is not an error and
// yields Default(). Fields absent from the file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrapf(err, "read %s", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, errors.Wrap(err, path)
	}
	// relative mesh paths are resolved against the config file
	dir := filepath.Dir(path)
	for kind, p := range cfg.Scene.Meshes {
		if !filepath.IsAbs(p) {
			cfg.Scene.Meshes[kind] = filepath.Join(dir, p)
		}
	}
	return cfg, nil
}

// Save writes cfg to path as YAML, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "create config dir")
	}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return errors.Wrap(err, "encode config")
	}
	return errors.Wrapf(os.WriteFile(path, data, 0644), "write %s", path)
}

func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return errors.Wrapf(ErrInvalid, "window size %dx%d", c.Window.Width, c.Window.Height)
	case c.Camera.FOV <= 0 || c.Camera.FOV >= 180:
		return errors.Wrapf(ErrInvalid, "fov %g", c.Camera.FOV)
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return errors.Wrapf(ErrInvalid, "clip planes %g..%g", c.Camera.Near, c.Camera.Far)
	case c.Scene.PlaceDepth <= 0:
		return errors.Wrapf(ErrInvalid, "place depth %g", c.Scene.PlaceDepth)
	case c.Scene.BumpCount < 0:
		return errors.Wrapf(ErrInvalid, "bump count %d", c.Scene.BumpCount)
	case c.Scene.BumpScale <= 0:
		return errors.Wrapf(ErrInvalid, "bump scale %g", c.Scene.BumpScale)
	}
	for kind, p := range c.Scene.Meshes {
		if kind == "" || p == "" {
			return errors.Wrapf(ErrInvalid, "mesh %q: %q", kind, p)
		}
	}
	return nil
}
