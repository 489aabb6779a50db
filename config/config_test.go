package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
)

func writeFile(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "modeller.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if len(cfg.Scene.Cells) != 4 || cfg.Camera.Distance != 15 || cfg.Scene.PlaceDepth != 15 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Window != Default().Window {
		t.Errorf("expected defaults, got %+v", cfg.Window)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, `
window:
  width: 800
scene:
  seed: 7
  cells:
    - [1, 2, 3]
  meshes:
    virus: virus.glb
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Window.Width != 800 || cfg.Window.Height != 480 {
		t.Errorf("expected 800x480, got %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Scene.Seed != 7 || cfg.Scene.BumpCount != 15 {
		t.Errorf("unexpected scene %+v", cfg.Scene)
	}
	if len(cfg.Scene.Cells) != 1 || cfg.Scene.Cells[0] != (Position{1, 2, 3}) {
		t.Errorf("expected one cell at 1,2,3, got %v", cfg.Scene.Cells)
	}
	if want := filepath.Join(dir, "virus.glb"); cfg.Scene.Meshes["virus"] != want {
		t.Errorf("expected mesh path %s, got %s", want, cfg.Scene.Meshes["virus"])
	}
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"zero width", "window: {width: 0}"},
		{"fov", "camera: {fov: 180}"},
		{"near", "camera: {near: 0}"},
		{"far before near", "camera: {near: 10, far: 5}"},
		{"place depth", "scene: {place_depth: -1}"},
		{"bump count", "scene: {bump_count: -2}"},
		{"bump scale", "scene: {bump_scale: 0}"},
		{"empty mesh path", "scene: {meshes: {virus: ''}}"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, t.TempDir(), tt.body))
			if !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestLoadMalformed(t *testing.T) {
	_, err := Load(writeFile(t, t.TempDir(), "window: [1, 2"))
	if err == nil || errors.Is(err, ErrInvalid) {
		t.Errorf("expected a parse error, got %v", err)
	}
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "modeller.yaml")
	cfg := Default()
	cfg.Scene.Seed = 99
	cfg.Window.Title = "saved"
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Scene.Seed != 99 || got.Window.Title != "saved" || len(got.Scene.Cells) != 4 {
		t.Errorf("unexpected round trip %+v", got)
	}
}
