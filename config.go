package logd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/pooriaaskarim/logd/record"
)

// Config captures the renderer settings loadable from a TOML file.
type Config struct {
	Width     int           `toml:"width"`
	Level     string        `toml:"level"`
	Formatter string        `toml:"formatter"`
	Encoder   string        `toml:"encoder"`
	Border    string        `toml:"border"`
	Color     string        `toml:"color"`
	Fields    record.Fields `toml:"fields"`
}

// DefaultConfig returns the settings used when no file exists.
func DefaultConfig() Config {
	return Config{
		Width:     80,
		Level:     "info",
		Formatter: "plain",
		Encoder:   "ansi",
		Border:    "sharp",
		Color:     "auto",
		Fields:    record.AllFields(),
	}
}

// LoadConfig parses the TOML config at path, falling back to defaults when
// the file is missing. Fields left empty in the file keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Width == 0 {
		cfg.Width = DefaultConfig().Width
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects deliberately invalid configuration at construction time.
// Only layout-internal width math clamps; a caller handing in a bad width
// gets an error, not a silent coercion.
func (c Config) Validate() error {
	if c.Width <= 0 {
		return fmt.Errorf("config: width must be positive, got %d", c.Width)
	}
	if _, ok := record.ParseLevel(c.Level); c.Level != "" && !ok {
		return fmt.Errorf("config: unknown level %q", c.Level)
	}
	switch strings.ToLower(c.Formatter) {
	case "", "plain", "structured", "boxed":
	default:
		return fmt.Errorf("config: unknown formatter %q", c.Formatter)
	}
	switch strings.ToLower(c.Encoder) {
	case "", "ansi", "plain", "json", "markdown", "html":
	default:
		return fmt.Errorf("config: unknown encoder %q", c.Encoder)
	}
	switch strings.ToLower(c.Border) {
	case "", "sharp", "rounded", "double":
	default:
		return fmt.Errorf("config: unknown border style %q", c.Border)
	}
	switch strings.ToLower(c.Color) {
	case "", "auto", "always", "never":
	default:
		return fmt.Errorf("config: unknown color mode %q", c.Color)
	}
	return nil
}
