// Package config holds the tunables of the game and its frontends.
package config

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config mirrors the YAML file. Pixel sizes describe the playing field; the
// grid is Width/CellSize columns by Height/CellSize rows.
type Config struct {
	Width        int           `yaml:"width"`
	Height       int           `yaml:"height"`
	CellSize     int           `yaml:"cell_size"`
	TickInterval time.Duration `yaml:"tick_interval"`
	ScoreReward  int           `yaml:"score_reward"`

	FoodPolicy string `yaml:"food_policy"` // "reject" or "uniform"
	Seed       uint64 `yaml:"seed"`        // 0 picks a time based seed

	StatsFile      string `yaml:"stats_file"`
	StatsGroupSize int    `yaml:"stats_group_size"`

	Listen            string        `yaml:"listen"`
	BroadcastInterval time.Duration `yaml:"broadcast_interval"`

	Autopilot         bool          `yaml:"autopilot"`
	AutopilotInterval time.Duration `yaml:"autopilot_interval"`
	AutoRestart       bool          `yaml:"auto_restart"`
}

func Default() Config {
	return Config{
		Width:             600,
		Height:            600,
		CellSize:          20,
		TickInterval:      70 * time.Millisecond,
		ScoreReward:       10,
		FoodPolicy:        "reject",
		StatsFile:         "data/stats.json",
		StatsGroupSize:    100,
		Listen:            ":8080",
		BroadcastInterval: 35 * time.Millisecond,
		AutopilotInterval: 35 * time.Millisecond,
	}
}

// Load reads path on top of Default. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "read config %s", path)
	}
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch {
	case c.CellSize <= 0:
		return errors.Wrapf(ErrInvalidConfig, "cell_size must be positive, got %d", c.CellSize)
	case c.Columns() < 2 || c.Rows() < 2:
		return errors.Wrapf(ErrInvalidConfig, "grid %dx%d is too small", c.Columns(), c.Rows())
	case c.TickInterval <= 0:
		return errors.Wrapf(ErrInvalidConfig, "tick_interval must be positive, got %s", c.TickInterval)
	case c.ScoreReward < 0:
		return errors.Wrapf(ErrInvalidConfig, "score_reward must not be negative, got %d", c.ScoreReward)
	case c.FoodPolicy != "" && c.FoodPolicy != "reject" && c.FoodPolicy != "uniform":
		return errors.Wrapf(ErrInvalidConfig, "food_policy %q", c.FoodPolicy)
	}
	return nil
}

func (c Config) Columns() int {
	if c.CellSize <= 0 {
		return 0
	}
	return c.Width / c.CellSize
}

func (c Config) Rows() int {
	if c.CellSize <= 0 {
		return 0
	}
	return c.Height / c.CellSize
}

// RandomSeed returns Seed, or a time based seed when Seed is zero.
func (c Config) RandomSeed() uint64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return uint64(time.Now().UnixNano())
}
