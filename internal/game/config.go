package game

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/samdwyer/mazmorra/internal/telemetry"
	"github.com/samdwyer/mazmorra/internal/world"
)

// Config holds game configuration options. Values come from the environment
// (optionally a .env file) and may be overridden by command-line flags.
type Config struct {
	// Seed for random number generation. Used for reproducible dungeon generation.
	// A seed of 0 means a random seed will be generated.
	Seed int64 `env:"MAZMORRA_SEED"`
	// Size is the side length of the square dungeon.
	Size int `env:"MAZMORRA_SIZE"`
	// StartX and StartY place the player at the start of a session.
	StartX int `env:"MAZMORRA_START_X"`
	StartY int `env:"MAZMORRA_START_Y"`

	Colors bool `env:"MAZMORRA_COLORS"`
	// Plain selects the line-oriented console instead of the full-screen UI.
	Plain bool `env:"MAZMORRA_PLAIN"`

	LogFile  string `env:"MAZMORRA_LOG_FILE"`
	LogLevel string `env:"MAZMORRA_LOG_LEVEL"`

	Telemetry        bool   `env:"MAZMORRA_TELEMETRY"`
	OTLPEndpoint     string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	HoneycombAPIKey  string `env:"HONEYCOMB_MAZMORRA_API_KEY"`
	HoneycombDataset string `env:"HONEYCOMB_MAZMORRA_DATASET"`
}

// DefaultConfig returns the configuration used when nothing is set.
// Environment variables that are present replace these values.
func DefaultConfig() Config {
	return Config{
		Size:             world.DefaultSize,
		Colors:           true,
		LogLevel:         "info",
		HoneycombDataset: "mazmorra",
	}
}

// LoadConfig reads the configuration from the process environment on top
// of DefaultConfig. It does not validate: callers apply their overrides
// first and then call Validate.
func LoadConfig() (Config, error) {
	cfg := DefaultConfig()
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate rejects configurations the dungeon cannot be built from.
func (c Config) Validate() error {
	if c.Size < world.MinSize {
		return fmt.Errorf("size %d: %w", c.Size, world.ErrSizeTooSmall)
	}
	if c.StartX < 0 || c.StartX >= c.Size || c.StartY < 0 || c.StartY >= c.Size {
		return fmt.Errorf("start (%d,%d): %w", c.StartX, c.StartY, world.ErrInvalidStart)
	}
	if c.StartX == c.Size-1 && c.StartY == c.Size-1 {
		return fmt.Errorf("start (%d,%d): %w", c.StartX, c.StartY, world.ErrInvalidStart)
	}
	if _, err := c.level(); err != nil {
		return err
	}
	return nil
}

// ResolveSeed returns Seed, or a clock-derived seed when Seed is 0.
func (c Config) ResolveSeed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return time.Now().UnixNano()
}

// NewRand returns a fresh random source for one session.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// TelemetryConfig returns the exporter settings.
func (c Config) TelemetryConfig() telemetry.Config {
	return telemetry.Config{
		Endpoint: c.OTLPEndpoint,
		APIKey:   c.HoneycombAPIKey,
		Dataset:  c.HoneycombDataset,
	}
}

// level parses LogLevel.
func (c Config) level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("log level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}

// NewLogger builds the structured logger. Without a LogFile everything is
// discarded: the terminal is owned by the game. The returned close function
// releases the log file.
func NewLogger(cfg Config) (*slog.Logger, func() error, error) {
	lvl, err := cfg.level()
	if err != nil {
		return nil, nil, err
	}

	var w io.Writer = io.Discard
	closeFn := func() error { return nil }
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = f.Close
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
	return logger, closeFn, nil
}
