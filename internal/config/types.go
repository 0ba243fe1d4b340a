package config

import "github.com/nibzard/colortasks/internal/datadir"

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources wraps Config with source tracking for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
}

// Defaults.
const (
	DefaultDataDir       = datadir.DefaultDataDir
	DefaultStorageKey    = "color-coded-tasks"
	DefaultBackend       = "file"
	DefaultFormat        = "json"
	DefaultColor         = "default"
	DefaultConfirmDelete = true
	DefaultLogLevel      = "warn"
	DefaultLogFormat     = "text"
)

// Config holds the resolved settings.
type Config struct {
	// DataDir is the directory holding the storage backend.
	DataDir string `toml:"data_dir"`

	// StorageKey names the slot the task list is stored under.
	StorageKey string `toml:"storage_key"`

	// Backend is the kv backend: file or sqlite.
	Backend string `toml:"backend"`

	// Format is the slot encoding: json or yaml.
	Format string `toml:"format"`

	// DefaultColor is preselected for new tasks.
	DefaultColor string `toml:"default_color"`

	// ConfirmDelete asks before removing a task.
	ConfirmDelete bool `toml:"confirm_delete"`

	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Files lists the config files that were read, in load order.
	Files []string `toml:"-"`
}

// configFields returns the TOML keys of every tracked field, in display order.
func configFields() []string {
	return []string{
		"data_dir",
		"storage_key",
		"backend",
		"format",
		"default_color",
		"confirm_delete",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
	}
}

// Fields returns the TOML keys of every setting, in display order.
func Fields() []string {
	return configFields()
}
