package config

import "flag"

// flagFields maps flag names to the TOML key they set.
var flagFields = map[string]string{
	"data-dir":   "data_dir",
	"key":        "storage_key",
	"backend":    "backend",
	"format":     "format",
	"log-level":  "log_level",
	"log-format": "log_format",
}

// parseFlags defines and parses CLI flags. If sources is non-nil, flags
// that were set explicitly are recorded as SourceFlag.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("colortasks", flag.ContinueOnError)
	}

	fs.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "Data directory")
	fs.StringVar(&cfg.StorageKey, "key", cfg.StorageKey, "Storage key")
	fs.StringVar(&cfg.Backend, "backend", cfg.Backend, "Storage backend (file|sqlite)")
	fs.StringVar(&cfg.Format, "format", cfg.Format, "Storage format (json|yaml)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug|info|warn|error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text|json|logfmt)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if sources != nil {
		fs.Visit(func(f *flag.Flag) {
			if field, ok := flagFields[f.Name]; ok {
				sources[field] = SourceFlag
			}
		})
	}
	return nil
}
