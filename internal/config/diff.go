package config

// ConfigDiff describes what changed between two configs, split into changes
// that hot-reload and changes that only take effect after a restart.
type ConfigDiff struct {
	// AnalysisChanged is true when any scoring option changed. The serve
	// mode reacts by swapping in a rebuilt analyzer.
	AnalysisChanged bool

	// LogLevelChanged is true when the log level changed.
	LogLevelChanged bool
	NewLogLevel     LogLevel

	// RestartNeeded is true when the listen address or Discord settings
	// changed; those are bound at startup.
	RestartNeeded bool
}

// Diff compares old and new configs and returns what changed.
func Diff(old, new *Config) ConfigDiff {
	d := ConfigDiff{}

	if old.Analysis != new.Analysis {
		d.AnalysisChanged = true
	}

	if old.Server.LogLevel != new.Server.LogLevel {
		d.LogLevelChanged = true
		d.NewLogLevel = new.Server.LogLevel
	}

	if old.Server.ListenAddr != new.Server.ListenAddr || old.Discord != new.Discord {
		d.RestartNeeded = true
	}

	return d
}
