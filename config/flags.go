package config

import (
	"flag"
	"time"
)

// Flags are the command line overrides shared by all frontends. Zero values
// keep what the config file says.
type Flags struct {
	Path      string
	Speed     int
	Seed      uint64
	Stats     string
	Listen    string
	Autopilot bool
}

func RegisterFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{}
	fs.StringVar(&f.Path, "config", "", "YAML config file")
	fs.IntVar(&f.Speed, "speed", 0, "Tick interval in milliseconds (lower = faster)")
	fs.Uint64Var(&f.Seed, "seed", 0, "Food placement seed (0 picks one from the clock)")
	fs.StringVar(&f.Stats, "stats", "", "Stats file")
	fs.StringVar(&f.Listen, "listen", "", "HTTP listen address")
	fs.BoolVar(&f.Autopilot, "autopilot", false, "Let the computer play and restart by itself")
	return f
}

// Load reads the config file and applies the overrides.
func (f *Flags) Load() (Config, error) {
	cfg, err := Load(f.Path)
	if err != nil {
		return cfg, err
	}
	f.Apply(&cfg)
	return cfg, cfg.Validate()
}

func (f *Flags) Apply(cfg *Config) {
	if f.Speed > 0 {
		cfg.TickInterval = time.Duration(f.Speed) * time.Millisecond
	}
	if f.Seed != 0 {
		cfg.Seed = f.Seed
	}
	if f.Stats != "" {
		cfg.StatsFile = f.Stats
	}
	if f.Listen != "" {
		cfg.Listen = f.Listen
	}
	if f.Autopilot {
		cfg.Autopilot = true
		cfg.AutoRestart = true
	}
}
