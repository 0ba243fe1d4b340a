// Package datadir provides names and paths for the colortasks data and
// configuration directories.
package datadir

import "path/filepath"

const (
	// AppName names the application directory under OS config dirs.
	AppName = "colortasks"

	// Dir is the name of the per-user data directory inside $HOME.
	Dir = ".colortasks"

	// ConfigFile is the config file name.
	ConfigFile = "colortasks.toml"

	// HiddenConfigFile is the alternative project config file name.
	HiddenConfigFile = ".colortasks.toml"
)

// DefaultDataDir is the unexpanded default data directory.
const DefaultDataDir = "~/" + Dir

// HomePath returns the data directory inside home.
func HomePath(home string) string {
	return filepath.Join(home, Dir)
}

// ConfigPath returns the config file path inside dir.
func ConfigPath(dir string) string {
	return filepath.Join(dir, ConfigFile)
}

// ProjectConfigNames returns the project config file names in lookup order.
func ProjectConfigNames() []string {
	return []string{ConfigFile, HiddenConfigFile}
}
