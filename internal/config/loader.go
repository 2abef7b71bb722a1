package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML configuration file at path and returns a validated
// [Config]. It is a convenience wrapper around [LoadFromReader].
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r and validates the result.
// Useful in tests where configs are constructed from string literals.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	// Server
	if cfg.Server.LogLevel != "" && !cfg.Server.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("server.log_level %q is invalid; valid values: debug, info, warn, error", cfg.Server.LogLevel))
	}

	// Analysis
	if cfg.Analysis.Rounding != "" && !cfg.Analysis.Rounding.IsValid() {
		errs = append(errs, fmt.Errorf("analysis.rounding %q is invalid; valid values: half-up, half-even, truncate", cfg.Analysis.Rounding))
	}
	if t := cfg.Analysis.FuzzyThreshold; t != 0 && (t <= 0 || t > 1) {
		errs = append(errs, fmt.Errorf("analysis.fuzzy_threshold %.2f is out of range (0, 1]", t))
	}
	if cfg.Analysis.FuzzyThreshold != 0 && !cfg.Analysis.FuzzyMatching {
		slog.Warn("analysis.fuzzy_threshold is set but analysis.fuzzy_matching is false; the threshold has no effect")
	}

	// Discord
	if cfg.Discord.Token == "" {
		if cfg.Discord.GuildID != "" || cfg.Discord.CommandRoleID != "" {
			slog.Warn("discord.token is empty; guild and role settings are ignored and the Discord surface stays disabled")
		}
	}

	return errors.Join(errs...)
}
