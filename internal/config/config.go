package config

import (
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	WindowWidth  = 1024
	WindowHeight = 640

	// Particle field
	ParticleCount = 55
	ParticleSpeed = 0.4
	LinkThreshold = 140
	NodeRadius    = 1.4
	LinkWidth     = 1

	// Line charts
	ChartInterval = 4 * time.Second
	ChartLength   = 12
	LineWidth     = 2
	MarkerRadius  = 3

	// Radial chart
	RadialLevels       = 4
	RadialMargin       = 10
	RadialSpokeWidth   = 3
	RadialMarkerRadius = 4

	HeadlessHz = 60
)

// Config is the runtime configuration. Zero values are not meaningful; start
// from Default.
type Config struct {
	Title         string        `toml:"title"`
	Width         int           `toml:"width"`
	Height        int           `toml:"height"`
	Particles     int           `toml:"particles"`
	Speed         float64       `toml:"speed"`
	Threshold     float64       `toml:"threshold"`
	ChartInterval time.Duration `toml:"chart_interval"`
	ChartLength   int           `toml:"chart_length"`
	Seed          int64         `toml:"seed"`
	Hide          string        `toml:"hide"`

	ThemeFile  string `toml:"theme_file"`
	PreferDark bool   `toml:"prefer_dark"`
	LogLevel   string `toml:"log_level"`

	Headless bool    `toml:"headless"`
	Hz       int     `toml:"hz"`
	Ticks    uint64  `toml:"ticks"`
	Scale    float64 `toml:"scale"`
	Snapshot string  `toml:"snapshot"`
}

func Default() Config {
	return Config{
		Title:         "Constellation - T: toggle theme, Esc/Q: quit",
		Width:         WindowWidth,
		Height:        WindowHeight,
		Particles:     ParticleCount,
		Speed:         ParticleSpeed,
		Threshold:     LinkThreshold,
		ChartInterval: ChartInterval,
		ChartLength:   ChartLength,
		LogLevel:      "info",
		Hz:            HeadlessHz,
		Scale:         1,
	}
}

// Parse binds every field to fs, parses args and, when -config names a file,
// decodes it over the parsed values. Flags given on the command line win over
// the file.
func Parse(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := Default()
	var path string
	fs.StringVar(&path, "config", "", "TOML configuration file.")
	fs.StringVar(&cfg.Title, "title", cfg.Title, "Window title.")
	fs.IntVar(&cfg.Width, "width", cfg.Width, "Initial window width in logical pixels.")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "Initial window height in logical pixels.")
	fs.IntVar(&cfg.Particles, "particles", cfg.Particles, "Number of particles in the field.")
	fs.Float64Var(&cfg.Speed, "speed", cfg.Speed, "Maximum particle speed per axis, in pixels per frame.")
	fs.Float64Var(&cfg.Threshold, "threshold", cfg.Threshold, "Distance below which particles are linked.")
	fs.DurationVar(&cfg.ChartInterval, "chart-interval", cfg.ChartInterval, "Period between demo chart redraws.")
	fs.IntVar(&cfg.ChartLength, "chart-length", cfg.ChartLength, "Number of points in a demo chart series.")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed (0 = time based).")
	fs.StringVar(&cfg.Hide, "hide", cfg.Hide, "Comma separated panels to leave out.")
	fs.StringVar(&cfg.ThemeFile, "theme-file", cfg.ThemeFile, "Where the theme choice is persisted.")
	fs.BoolVar(&cfg.PreferDark, "prefer-dark", cfg.PreferDark, "Start dark when no theme has been saved.")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error.")
	fs.BoolVar(&cfg.Headless, "headless", cfg.Headless, "Run without a window.")
	fs.IntVar(&cfg.Hz, "hz", cfg.Hz, "Tick rate in headless mode.")
	fs.Uint64Var(&cfg.Ticks, "ticks", cfg.Ticks, "Stop after N ticks in headless mode (0 = run forever).")
	fs.Float64Var(&cfg.Scale, "scale", cfg.Scale, "Device pixel ratio in headless mode.")
	fs.StringVar(&cfg.Snapshot, "snapshot", cfg.Snapshot, "Write a PNG of the last headless frame, after -ticks frames or on interrupt.")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := fs.Parse(args); err != nil {
			return cfg, err
		}
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var errs []error
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", c.Width, c.Height))
	}
	if c.Particles < 0 {
		errs = append(errs, fmt.Errorf("particles must not be negative, got %d", c.Particles))
	}
	if c.Threshold <= 0 {
		errs = append(errs, fmt.Errorf("threshold must be positive, got %g", c.Threshold))
	}
	if c.ChartInterval <= 0 {
		errs = append(errs, fmt.Errorf("chart interval must be positive, got %s", c.ChartInterval))
	}
	if c.ChartLength < 2 {
		errs = append(errs, fmt.Errorf("chart length must be at least 2, got %d", c.ChartLength))
	}
	if c.Hz <= 0 {
		errs = append(errs, fmt.Errorf("invalid headless hz: %d", c.Hz))
	}
	return errors.Join(errs...)
}

// Hidden reports whether the named panel was left out with -hide.
func (c Config) Hidden(name string) bool {
	for _, h := range strings.Split(c.Hide, ",") {
		if strings.TrimSpace(h) == name {
			return true
		}
	}
	return false
}
