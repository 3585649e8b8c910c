// Package config provides configuration management for tsbrowse.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Data: source
//   - Share: origin, base_path
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields:
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use TSBROWSE_ prefix with underscores for nesting:
//
//	TSBROWSE_DATA_SOURCE=https://example.org/data
//	TSBROWSE_SHARE_ORIGIN=https://example.org
//	TSBROWSE_LOG_LEVEL=info
//	TSBROWSE_JOBS_NUMBER=8
package config

import (
	"runtime"
	"strings"
)

// Config represents the complete tsbrowse configuration.
type Config struct {
	// Data describes where the standards dataset lives.
	Data DataConfig `mapstructure:"data" yaml:"data"`

	// Share contains settings for building shareable comparison links.
	Share ShareConfig `mapstructure:"share" yaml:"share"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber limits how many subject documents are fetched
	// concurrently. Default value is the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, collections and logs reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// DataConfig points to the static dataset documents.
type DataConfig struct {
	// Source is the directory or URL containing manifest.json,
	// subjects_meta.json, skills_meta.json, by_subject/ and indexes/.
	// Auto-detected: starts with http:// or https:// = URL,
	// otherwise = directory.
	Source string `mapstructure:"source" yaml:"source"`
}

// IsURL is true when the data source has to be fetched over HTTP.
func (d DataConfig) IsURL() bool {
	return isURL(d.Source)
}

// ShareConfig defines origin and path used in shareable links.
type ShareConfig struct {
	// Origin is the scheme and host of the browsing site,
	// for example https://standards.example.org.
	Origin string `mapstructure:"origin" yaml:"origin"`

	// BasePath is the path of the search page, /search by default.
	BasePath string `mapstructure:"base_path" yaml:"base_path"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json' or 'text'.
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Data: DataConfig{
			Source: "public/data",
		},
		Share: ShareConfig{
			Origin:   "http://localhost:5173",
			BasePath: "/search",
		},
		Log: LogConfig{
			Format:      "json",
			Level:       "info",
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
