package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	EnvLogLevel = "MIDIFILE_LOG_LEVEL"
	EnvWorkers  = "MIDIFILE_WORKERS"
)

type Config struct {
	Log       LogConfig       `toml:"log"`
	Scan      ScanConfig      `toml:"scan"`
	Humanize  HumanizeConfig  `toml:"humanize"`
	PianoRoll PianoRollConfig `toml:"pianoroll"`
}

type LogConfig struct {
	Level       string `toml:"level"`
	Development bool   `toml:"development"`
}

type ScanConfig struct {
	// Workers bounds the number of files decoded in parallel.
	Workers int `toml:"workers"`
}

type HumanizeConfig struct {
	MinVelocity int `toml:"min_velocity"`
	MaxVelocity int `toml:"max_velocity"`
}

type PianoRollConfig struct {
	PixelsPerBeat float64 `toml:"pixels_per_beat"`
	NoteHeight    float64 `toml:"note_height"`
	// MaxWidth and MaxHeight bound the rendered image in pixels.
	MaxWidth  int `toml:"max_width"`
	MaxHeight int `toml:"max_height"`
}

func Default() Config {
	return Config{
		Log:       LogConfig{Level: "info"},
		Scan:      ScanConfig{Workers: 10},
		Humanize:  HumanizeConfig{MinVelocity: 0, MaxVelocity: 127},
		PianoRoll: PianoRollConfig{PixelsPerBeat: 40, NoteHeight: 6, MaxWidth: 16384, MaxHeight: 4096},
	}
}

// Load reads the TOML file at path over the defaults. An empty path yields the
// defaults. Environment overrides are applied last.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
		}
	}

	if err := applyEnvOverrides(&cfg); err != nil {
		return Config{}, err
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) error {
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Log.Level = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvWorkers)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse %s: %w", EnvWorkers, err)
		}
		cfg.Scan.Workers = n
	}
	return nil
}

func Validate(cfg Config) error {
	if cfg.Scan.Workers <= 0 {
		return fmt.Errorf("scan.workers must be > 0, got %d", cfg.Scan.Workers)
	}
	h := cfg.Humanize
	if h.MinVelocity < 0 || h.MaxVelocity > 127 || h.MinVelocity >= h.MaxVelocity {
		return fmt.Errorf("humanize velocity range [%d, %d] invalid", h.MinVelocity, h.MaxVelocity)
	}
	p := cfg.PianoRoll
	if p.PixelsPerBeat <= 0 || p.NoteHeight <= 0 || p.MaxWidth <= 0 || p.MaxHeight <= 0 {
		return fmt.Errorf("pianoroll dimensions must be positive")
	}
	return nil
}
