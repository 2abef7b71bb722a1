// Package config provides the configuration schema, loader and file watcher
// for the rapport server and CLI.
package config

import (
	"log/slog"

	"github.com/MrWong99/rapport/pkg/depth"
)

// LogLevel controls log verbosity.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Slog maps l to its slog level. Unknown or empty values map to info.
func (l LogLevel) Slog() slog.Level {
	switch l {
	case LogDebug:
		return slog.LevelDebug
	case LogWarn:
		return slog.LevelWarn
	case LogError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Config is the root configuration structure. It is typically loaded from a
// YAML file using [Load] or [LoadFromReader].
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Discord  DiscordConfig  `yaml:"discord"`
}

// ServerConfig holds network and logging settings for the serve mode.
type ServerConfig struct {
	// ListenAddr is the TCP address the HTTP server listens on
	// (e.g., ":8080"). Empty means the built-in default.
	ListenAddr string `yaml:"listen_addr"`

	// LogLevel controls verbosity.
	LogLevel LogLevel `yaml:"log_level"`
}

// AnalysisConfig tunes how transcripts are scored.
type AnalysisConfig struct {
	// Rounding selects the percentage rounding policy. Empty means the
	// analyzer default (half-up).
	Rounding depth.Rounding `yaml:"rounding"`

	// FuzzyMatching enables Jaro-Winkler fallback matching for cue words,
	// so near spellings still register.
	FuzzyMatching bool `yaml:"fuzzy_matching"`

	// FuzzyThreshold is the minimum similarity for a fuzzy cue hit, in
	// (0, 1]. Zero means the analyzer default.
	FuzzyThreshold float64 `yaml:"fuzzy_threshold"`
}

// Options converts the analysis section into analyzer options.
func (a AnalysisConfig) Options() []depth.Option {
	var opts []depth.Option
	if a.Rounding != "" {
		opts = append(opts, depth.WithRounding(a.Rounding))
	}
	if a.FuzzyMatching {
		opts = append(opts, depth.WithFuzzyMatching(a.FuzzyThreshold))
	}
	return opts
}

// DiscordConfig holds bot credentials and the optional command gate.
// An empty token disables the Discord surface entirely.
type DiscordConfig struct {
	// Token is the Discord bot token.
	Token string `yaml:"token"`

	// GuildID scopes slash-command registration to one guild. Empty
	// registers commands globally.
	GuildID string `yaml:"guild_id"`

	// CommandRoleID restricts slash commands to members holding this role.
	// Empty allows everyone.
	CommandRoleID string `yaml:"command_role_id"`
}
