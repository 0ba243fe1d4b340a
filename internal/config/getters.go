package config

// Value returns the value of the setting with the given TOML key.
func (c *Config) Value(field string) (any, bool) {
	switch field {
	case "data_dir":
		return c.DataDir, true
	case "storage_key":
		return c.StorageKey, true
	case "backend":
		return c.Backend, true
	case "format":
		return c.Format, true
	case "default_color":
		return c.DefaultColor, true
	case "confirm_delete":
		return c.ConfirmDelete, true
	case "log_level":
		return c.LogLevel, true
	case "log_format":
		return c.LogFormat, true
	case "log_timestamps":
		return c.LogTimestamps, true
	case "log_caller":
		return c.LogCaller, true
	}
	return nil, false
}

// EnvName returns the environment variable that sets field.
func EnvName(field string) string {
	return envName(field)
}
