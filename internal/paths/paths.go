// Package paths resolves where the catalog CLI keeps its configuration, its
// workspace database and the catalog definition file.
//
// Every location follows the same precedence: command-line flag, then
// config.yaml, then environment variable, then a default.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppName names the per-user platform directories.
const AppName = "catalog"

// Directory and file names relative to CWD or the config dir.
const (
	DefaultDataDirName     = ".catalog-db"
	DefaultCatalogFileName = "catalog.yaml"
	ConfigFileName         = "config.yaml"
)

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "CATALOG_CONFIG_DIR"
	EnvDataDir   = "CATALOG_DATA_DIR"
	EnvCatalog   = "CATALOG_FILE"
)

// platform holds lookups that tests replace.
var platform = struct {
	goos          string
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
	getwd         func() (string, error)
}{
	goos:          runtime.GOOS,
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
	getwd:         os.Getwd,
}

// DefaultConfigDir returns the per-user configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/catalog (fallback ~/.config/catalog)
// macOS:   ~/Library/Application Support/catalog
// Windows: %APPDATA%/catalog
func DefaultConfigDir() (string, error) {
	if platform.goos == "linux" {
		return xdgDir("XDG_CONFIG_HOME", ".config")
	}
	dir, err := platform.userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppName), nil
}

func xdgDir(env string, fallback ...string) (string, error) {
	if xdg := os.Getenv(env); xdg != "" {
		return filepath.Join(xdg, AppName), nil
	}
	home, err := platform.homeDir()
	if err != nil {
		return "", err
	}
	parts := append([]string{home}, fallback...)
	return filepath.Join(append(parts, AppName)...), nil
}

// ResolveConfigDir returns the configuration directory:
// flag > CATALOG_CONFIG_DIR > DefaultConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	return first(DefaultConfigDir, flag, os.Getenv(EnvConfigDir))
}

// ResolveDataDir returns the workspace directory:
// flag > data_dir in config.yaml > CATALOG_DATA_DIR > $(CWD)/.catalog-db.
func ResolveDataDir(flag, configValue string) (string, error) {
	return first(func() (string, error) {
		cwd, err := platform.getwd()
		if err != nil {
			return "", err
		}
		return filepath.Join(cwd, DefaultDataDirName), nil
	}, flag, configValue, os.Getenv(EnvDataDir))
}

// ResolveCatalogFile returns the catalog definition path:
// flag > catalog_file in config.yaml > CATALOG_FILE > $(CWD)/catalog.yaml.
// A relative config.yaml value is taken relative to configDir; other
// relative values are taken relative to CWD.
func ResolveCatalogFile(flag, configValue, configDir string) (string, error) {
	if flag == "" && configValue != "" && !filepath.IsAbs(configValue) && configDir != "" {
		configValue = filepath.Join(configDir, configValue)
	}
	return first(func() (string, error) {
		cwd, err := platform.getwd()
		if err != nil {
			return "", err
		}
		return filepath.Join(cwd, DefaultCatalogFileName), nil
	}, flag, configValue, os.Getenv(EnvCatalog))
}

// ConfigFile returns the config.yaml path inside configDir.
func ConfigFile(configDir string) string {
	return filepath.Join(configDir, ConfigFileName)
}

// first returns the first non-empty candidate made absolute, or fallback().
func first(fallback func() (string, error), candidates ...string) (string, error) {
	for _, c := range candidates {
		if c != "" {
			return filepath.Abs(c)
		}
	}
	return fallback()
}
