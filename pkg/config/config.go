package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lestrrat-go/strftime"
	"gopkg.in/yaml.v3"

	"github.com/Veraticus/partial-match/pkg/pattern"
	"github.com/Veraticus/partial-match/pkg/types"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds all configuration for partial-match
type Config struct {
	// Named patterns, in the order best-match ties are broken
	Patterns []types.Pattern `yaml:"patterns"`

	// Fail on patterns that do not compile instead of truncating them
	Strict bool `yaml:"strict" env:"PARTIAL_MATCH_STRICT"`

	// Output settings
	Format          string `yaml:"format" env:"PARTIAL_MATCH_FORMAT"`
	Color           string `yaml:"color" env:"PARTIAL_MATCH_COLOR"`
	TimestampFormat string `yaml:"timestamp_format" env:"PARTIAL_MATCH_TIMESTAMP_FORMAT"`

	Debug bool `yaml:"debug" env:"PARTIAL_MATCH_DEBUG"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Patterns: []types.Pattern{
			{
				Name:        "3hex",
				Expr:        "#[0-9a-fA-F]{3}",
				Description: "short hex color",
			},
			{
				Name:        "6hex",
				Expr:        "#[0-9a-fA-F]{6}",
				Description: "hex color",
			},
		},
		Format: FormatText,
		Color:  ColorAuto,
	}
}

// Load loads configuration from the default file location and environment
func Load() (*Config, error) {
	return LoadFile(getConfigPath())
}

// LoadFile loads configuration from path and the environment. A missing
// file is not an error; defaults are used instead.
func LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if err := loadFromFile(cfg, path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	// Override with environment variables
	if err := loadFromEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// getConfigPath returns the config file path
func getConfigPath() string {
	// Check for explicit config path
	if path := os.Getenv("PARTIAL_MATCH_CONFIG"); path != "" {
		return path
	}

	// Check XDG config directory
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "partial-match", "config.yaml")
	}

	// Fall back to home directory
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "partial-match", "config.yaml")
	}

	return ""
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(cfg *Config, path string) error {
	// #nosec G304 - The config file path comes from trusted sources (flag, env var or standard locations)
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, cfg)
}

// loadFromEnv loads configuration from environment variables
func loadFromEnv(cfg *Config) error {
	if format := os.Getenv("PARTIAL_MATCH_FORMAT"); format != "" {
		cfg.Format = strings.ToLower(format)
	}

	if color := os.Getenv("PARTIAL_MATCH_COLOR"); color != "" {
		cfg.Color = strings.ToLower(color)
	}

	if tsFormat, ok := os.LookupEnv("PARTIAL_MATCH_TIMESTAMP_FORMAT"); ok {
		cfg.TimestampFormat = tsFormat
	}

	if err := envBool("PARTIAL_MATCH_STRICT", &cfg.Strict); err != nil {
		return err
	}

	return envBool("PARTIAL_MATCH_DEBUG", &cfg.Debug)
}

func envBool(name string, dst *bool) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	switch v {
	case "true", "1", "yes":
		*dst = true
	case "false", "0", "no":
		*dst = false
	default:
		return fmt.Errorf("invalid %s value: %q (use true/false)", name, v)
	}
	return nil
}

// Validate validates the configuration
func Validate(cfg *Config) error {
	switch cfg.Format {
	case FormatText, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("unknown format %q (use text, json or yaml)", cfg.Format)
	}

	switch cfg.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("unknown color mode %q (use auto, always or never)", cfg.Color)
	}

	if cfg.TimestampFormat != "" {
		if _, err := strftime.New(cfg.TimestampFormat); err != nil {
			return fmt.Errorf("invalid timestamp_format %q: %w", cfg.TimestampFormat, err)
		}
	}

	seen := make(map[string]bool, len(cfg.Patterns))
	for i, p := range cfg.Patterns {
		if p.Name == "" {
			return fmt.Errorf("patterns[%d]: name is required", i)
		}
		if seen[p.Name] {
			return fmt.Errorf("patterns[%d]: duplicate name %q", i, p.Name)
		}
		seen[p.Name] = true

		if cfg.Strict && !p.Disabled {
			if _, err := pattern.Compile(p.Expr); err != nil {
				return fmt.Errorf("patterns[%d] %q: %w", i, p.Name, err)
			}
		}
	}

	return nil
}

// ParsePatternFlag parses a "name=expr" command line pattern definition.
func ParsePatternFlag(s string) (types.Pattern, error) {
	name, expr, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return types.Pattern{}, fmt.Errorf("invalid pattern %q (use name=pattern)", s)
	}
	return types.Pattern{Name: name, Expr: expr}, nil
}
