// Package config reads environment defaults for the gocompare hosts.
package config

import (
	"log/slog"
	"strings"

	"github.com/shouni/go-utils/envutil"
)

// Environment variable names.
const (
	EnvTheme    = "GOCOMPARE_THEME"
	EnvSettings = "GOCOMPARE_SETTINGS"
	EnvFont     = "GOCOMPARE_FONT"
	EnvLogLevel = "GOCOMPARE_LOG_LEVEL"
)

// Defaults used when the environment is silent.
const (
	DefaultTheme    = "light"
	DefaultLogLevel = "warn"
	DefaultOutput   = "which-choice"
)

// Config holds environment-level defaults. Command-line flags override them.
type Config struct {
	Theme        string
	SettingsPath string
	FontPath     string
	LogLevel     string
}

// Load reads the environment.
func Load() *Config {
	return &Config{
		Theme:        envutil.GetEnv(EnvTheme, DefaultTheme),
		SettingsPath: envutil.GetEnv(EnvSettings, ""),
		FontPath:     envutil.GetEnv(EnvFont, ""),
		LogLevel:     envutil.GetEnv(EnvLogLevel, DefaultLogLevel),
	}
}

// ParseLogLevel maps debug, info, warn and error to slog levels. Anything
// else is warn.
func ParseLogLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
