package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "marblemaze.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Physics.GravityScale != 50 || cfg.Physics.PointsPerMeter != 150 {
		t.Fatalf("physics defaults = %+v", cfg.Physics)
	}
	if cfg.Game.StartLevel != 1 || cfg.Input.Source != InputPointer {
		t.Fatalf("defaults = %+v", cfg)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[physics]
gravity_scale = 25.0

[input]
source = "keys"

[game]
start_level = 2
hot_reload = false

[logging]
level = "debug"
format = "json"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Physics.GravityScale != 25 {
		t.Fatalf("gravity scale = %v", cfg.Physics.GravityScale)
	}
	if cfg.Physics.PointsPerMeter != 150 {
		t.Fatalf("unset key lost its default: %v", cfg.Physics.PointsPerMeter)
	}
	if cfg.Input.Source != InputKeys || cfg.Game.StartLevel != 2 || cfg.Game.HotReload {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.Window.Width != 1024 {
		t.Fatalf("window defaults lost: %+v", cfg.Window)
	}
}

func TestLoadWindowSize(t *testing.T) {
	path := writeConfig(t, `
[window]
title = "Maze"
width = 800
height = 600
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := WindowConfig{Title: "Maze", Width: 800, Height: 600}
	if cfg.Window != want {
		t.Fatalf("window = %+v, want %+v", cfg.Window, want)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"syntax", "[physics\n", "parse config"},
		{"input", "[input]\nsource = \"joystick\"\n", "unknown input source"},
		{"level", "[game]\nstart_level = 0\n", "start_level"},
		{"gravity", "[physics]\ngravity_scale = -1.0\n", "physics scales"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestNewLogger(t *testing.T) {
	for _, cfg := range []LoggingConfig{
		{Level: "debug", Format: "json"},
		{Level: "warn", Format: "console"},
		{Level: "bogus", Format: ""},
	} {
		log, err := NewLogger(cfg)
		if err != nil {
			t.Fatalf("NewLogger(%+v): %v", cfg, err)
		}
		_ = log.Sync()
	}
}
