package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "tsbrowse"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/tsbrowse by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// ShareDir returns the directory for persistent user data such as
// collections. Returns ~/.local/share/tsbrowse by default.
func ShareDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/tsbrowse/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(ShareDir(homeDir), "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/tsbrowse/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// CollectionsFilePath returns the path to the SQLite file that keeps
// user collections.
func CollectionsFilePath(homeDir string) string {
	return filepath.Join(ShareDir(homeDir), "collections.sqlite")
}
