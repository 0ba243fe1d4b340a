package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# colortasks configuration file
# Values can be overridden by COLORTASKS_* environment variables or CLI flags

# Data directory (supports ~ expansion and %VAR% on Windows)
data_dir = "~/.colortasks"

# Storage slot name; the file backend stores it as <key>.json or <key>.yaml
storage_key = "color-coded-tasks"

# Storage backend: file or sqlite
backend = "file"

# Slot encoding: json or yaml
format = "json"

# Color preselected for new tasks: default, red, blue, green, yellow
default_color = "default"

# Ask before deleting a task
confirm_delete = true

# Logging: debug, info, warn, error
log_level = "warn"
# text, json or logfmt
log_format = "text"
log_timestamps = false
log_caller = false
`
}
