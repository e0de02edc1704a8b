package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultMatchesBuiltin(t *testing.T) {
	cfg, err := Parse(defaultGameYAML)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg != DefaultGameConfig() {
		t.Fatalf("embedded default %+v differs from DefaultGameConfig %+v", cfg, DefaultGameConfig())
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestParseKeepsDefaultsForMissingFields(t *testing.T) {
	cfg, err := Parse([]byte("tps: 30\nscene: orbit.yaml\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.TPS != 30 || cfg.Scene != "orbit.yaml" {
		t.Fatalf("overrides lost: %+v", cfg)
	}
	if cfg.Window != DefaultGameConfig().Window {
		t.Fatalf("window defaults lost: %+v", cfg.Window)
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(good, []byte("debug:\n  bounds: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte("tps: [\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cases := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"good", good, false},
		{"bad_yaml", bad, true},
		{"missing", filepath.Join(dir, "nope.yaml"), true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg, err := Load(c.path)
			if (err != nil) != c.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, c.wantErr)
			}
			if !c.wantErr && !cfg.Debug.Bounds {
				t.Fatalf("custom value not applied")
			}
		})
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(c *GameConfig)
		wantErr bool
	}{
		{"default", func(c *GameConfig) {}, false},
		{"zero_tps", func(c *GameConfig) { c.TPS = 0 }, true},
		{"no_scene", func(c *GameConfig) { c.Scene = "" }, true},
		{"negative_speed", func(c *GameConfig) { c.Sprite.Speed = -1 }, true},
		{"flat_window", func(c *GameConfig) { c.Window.Height = 0 }, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := DefaultGameConfig()
			c.mutate(&cfg)
			if err := cfg.Validate(); (err != nil) != c.wantErr {
				t.Fatalf("Validate = %v, wantErr %v", err, c.wantErr)
			}
		})
	}
}
