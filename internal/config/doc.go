// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.colortasks/colortasks.toml or OS-specific config directory)
// 3. Project config file (colortasks.toml or .colortasks.toml in the working directory)
// 4. Environment variables (COLORTASKS_*)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - ~/.colortasks/colortasks.toml (preferred)
// - Windows: %APPDATA%\colortasks\colortasks.toml
// - macOS: ~/Library/Application Support/colortasks/colortasks.toml
// - Linux/BSD: $XDG_CONFIG_HOME/colortasks/colortasks.toml or ~/.config/colortasks/colortasks.toml
package config
