package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}

	if cfg.Flow.Count != 150 {
		t.Errorf("flow.count = %d, want 150", cfg.Flow.Count)
	}
	if cfg.Wave.Bands != 5 {
		t.Errorf("wave.bands = %d, want 5", cfg.Wave.Bands)
	}
	if cfg.Mesh.Cols != 20 || cfg.Mesh.Rows != 20 {
		t.Errorf("mesh = %dx%d, want 20x20", cfg.Mesh.Cols, cfg.Mesh.Rows)
	}
	if cfg.Emitter.Lifespan != 255 || cfg.Emitter.Decay != 2 {
		t.Errorf("emitter lifespan/decay = %d/%d, want 255/2", cfg.Emitter.Lifespan, cfg.Emitter.Decay)
	}
	if cfg.Noise.Backend != "perlin" {
		t.Errorf("noise.backend = %q, want perlin", cfg.Noise.Backend)
	}
	if _, ok := cfg.View("mesh"); !ok {
		t.Error("expected a mesh view in defaults")
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	data := []byte("flow:\n  count: 42\nnoise:\n  backend: opensimplex\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Flow.Count != 42 {
		t.Errorf("flow.count = %d, want 42", cfg.Flow.Count)
	}
	// Untouched fields keep their defaults
	if cfg.Flow.LinkRadius != 100 {
		t.Errorf("flow.link_radius = %v, want 100", cfg.Flow.LinkRadius)
	}
	if cfg.Noise.Backend != "opensimplex" {
		t.Errorf("noise.backend = %q, want opensimplex", cfg.Noise.Backend)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"unknown backend", "noise:\n  backend: worley\n"},
		{"tiny mesh", "mesh:\n  cols: 1\n"},
		{"zero decay", "emitter:\n  decay: 0\n"},
		{"duplicate view", "stage:\n  views:\n    - id: a\n    - id: a\n"},
		{"unknown sketch", "stage:\n  views:\n    - id: flow\n      sketch: flow\n    - id: bad\n      sketch: spiral\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg := Default()
	cfg.Mesh.PointerRadius = 77

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML failed: %v", err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if back.Mesh.PointerRadius != 77 {
		t.Errorf("pointer_radius = %v, want 77", back.Mesh.PointerRadius)
	}
}
