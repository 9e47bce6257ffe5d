package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
)

func TestDefaultMatchesClassicGame(t *testing.T) {
	cfg := Default()
	if cfg.Columns() != 30 || cfg.Rows() != 30 {
		t.Errorf("grid = %dx%d, want 30x30", cfg.Columns(), cfg.Rows())
	}
	if cfg.TickInterval != 70*time.Millisecond {
		t.Errorf("TickInterval = %v, want 70ms", cfg.TickInterval)
	}
	if cfg.ScoreReward != 10 {
		t.Errorf("ScoreReward = %d, want 10", cfg.ScoreReward)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadOverlaysFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snake.yaml")
	data := []byte("width: 400\ncell_size: 10\ntick_interval: 50ms\nfood_policy: uniform\nseed: 9\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Columns() != 40 || cfg.Rows() != 60 {
		t.Errorf("grid = %dx%d, want 40x60", cfg.Columns(), cfg.Rows())
	}
	if cfg.TickInterval != 50*time.Millisecond {
		t.Errorf("TickInterval = %v", cfg.TickInterval)
	}
	if cfg.FoodPolicy != "uniform" || cfg.Seed != 9 || cfg.RandomSeed() != 9 {
		t.Errorf("policy/seed = %q/%d", cfg.FoodPolicy, cfg.Seed)
	}
	if cfg.ScoreReward != 10 {
		t.Error("unset fields should keep their defaults")
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil || cfg != Default() {
		t.Errorf("Load(\"\") = %+v, %v", cfg, err)
	}
}

func TestLoadRejectsUnknownField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snake.yaml")
	os.WriteFile(path, []byte("speed: 3\n"), 0644)
	if _, err := Load(path); err == nil {
		t.Error("expected error for unknown field")
	}
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"cell size":   func(c *Config) { c.CellSize = 0 },
		"tiny grid":   func(c *Config) { c.Width = 20 },
		"tick":        func(c *Config) { c.TickInterval = 0 },
		"reward":      func(c *Config) { c.ScoreReward = -1 },
		"food policy": func(c *Config) { c.FoodPolicy = "nearest" },
	}
	for name, mutate := range cases {
		cfg := Default()
		mutate(&cfg)
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("%s: expected ErrInvalidConfig, got %v", name, err)
		}
	}
}

func TestExampleConfigMatchesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "config.example.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Errorf("example config drifted from defaults:\n%+v\n%+v", cfg, Default())
	}
}
