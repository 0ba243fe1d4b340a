package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/nibzard/colortasks/internal/kv"
	"github.com/nibzard/colortasks/internal/logging"
	"github.com/nibzard/colortasks/internal/store"
	"github.com/nibzard/colortasks/internal/task"
)

// Validate reports every setting that cannot be used.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.StorageKey) == "" {
		errs = append(errs, errors.New("storage_key must not be empty"))
	} else if strings.ContainsAny(c.StorageKey, `/\`) {
		errs = append(errs, fmt.Errorf("storage_key %q must not contain path separators", c.StorageKey))
	}
	if !slices.Contains(kv.Backends(), c.Backend) {
		errs = append(errs, fmt.Errorf("unknown backend %q (expected %s)", c.Backend, strings.Join(kv.Backends(), "|")))
	}
	if _, err := store.CodecFor(c.Format); err != nil {
		errs = append(errs, err)
	}
	if _, ok := task.ParseColor(c.DefaultColor); !ok {
		errs = append(errs, fmt.Errorf("unknown default_color %q", c.DefaultColor))
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if _, err := logging.ParseFormatter(c.LogFormat); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Color returns the parsed default color.
func (c *Config) Color() task.Color {
	color, _ := task.ParseColor(c.DefaultColor)
	return color
}

// LoggingOptions returns logger options for the configured log settings.
func (c *Config) LoggingOptions() logging.Options {
	opts := logging.DefaultOptions()
	opts.Level = c.LogLevel
	opts.Format = c.LogFormat
	opts.ReportTimestamp = c.LogTimestamps
	opts.ReportCaller = c.LogCaller
	return opts
}

// ConfigFile returns the last config file that was read, or "".
func (c *Config) ConfigFile() string {
	if len(c.Files) == 0 {
		return ""
	}
	return c.Files[len(c.Files)-1]
}
