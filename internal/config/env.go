package config

import (
	"fmt"
	"os"
	"strings"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "COLORTASKS_"

// loadFromEnv overrides config from environment variables. If sources is
// non-nil, it tracks the source of each value.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) error {
	setString := func(field string, dst *string) {
		if v := os.Getenv(envName(field)); v != "" {
			*dst = v
			if sources != nil {
				sources[field] = SourceEnv
			}
		}
	}
	setBool := func(field string, dst *bool) error {
		v := os.Getenv(envName(field))
		if v == "" {
			return nil
		}
		b, ok := boolFromString(v)
		if !ok {
			return fmt.Errorf("%s: invalid boolean %q", envName(field), v)
		}
		*dst = b
		if sources != nil {
			sources[field] = SourceEnv
		}
		return nil
	}

	setString("data_dir", &cfg.DataDir)
	setString("storage_key", &cfg.StorageKey)
	setString("backend", &cfg.Backend)
	setString("format", &cfg.Format)
	setString("default_color", &cfg.DefaultColor)
	setString("log_level", &cfg.LogLevel)
	setString("log_format", &cfg.LogFormat)

	if err := setBool("confirm_delete", &cfg.ConfirmDelete); err != nil {
		return err
	}
	if err := setBool("log_timestamps", &cfg.LogTimestamps); err != nil {
		return err
	}
	return setBool("log_caller", &cfg.LogCaller)
}

// envName maps a TOML key to its environment variable, e.g.
// "data_dir" to "COLORTASKS_DATA_DIR".
func envName(field string) string {
	return EnvPrefix + strings.ToUpper(field)
}

func boolFromString(v string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	default:
		return false, false
	}
}
