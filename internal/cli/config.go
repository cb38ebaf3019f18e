package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/catalog/internal/paths"
	"github.com/mesh-intelligence/catalog/internal/search"
	"github.com/mesh-intelligence/catalog/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	cfgKeyBackend        = "backend"
	cfgKeyDataDir        = "data_dir"
	cfgKeyCatalogFile    = "catalog_file"
	cfgKeyLogLevel       = "log_level"
	cfgKeyMaxConcurrency = "search.max_concurrency"

	envLogLevel = "CATALOG_LOG_LEVEL"

	defaultLogLevel = "info"
)

// configFile holds the structure written to config.yaml by init.
type configFile struct {
	Backend     string       `yaml:"backend"`
	DataDir     string       `yaml:"data_dir,omitempty"`
	CatalogFile string       `yaml:"catalog_file"`
	LogLevel    string       `yaml:"log_level"`
	Search      searchConfig `yaml:"search"`
}

type searchConfig struct {
	MaxConcurrency int `yaml:"max_concurrency"`
}

// loadConfig reads config.yaml from configDir using Viper. A missing
// config.yaml is not an error; defaults apply.
func loadConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendSQLite)
	v.SetDefault(cfgKeyCatalogFile, paths.DefaultCatalogFileName)
	v.SetDefault(cfgKeyLogLevel, defaultLogLevel)
	v.SetDefault(cfgKeyMaxConcurrency, search.DefaultMaxConcurrency)
	if err := v.BindEnv(cfgKeyLogLevel, envLogLevel); err != nil {
		return nil, err
	}
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// writeConfigIfMissing creates config.yaml with default values unless it
// already exists. Returns whether a file was written.
func writeConfigIfMissing(path, dataDir string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	cfg := configFile{
		Backend:     types.BackendSQLite,
		DataDir:     dataDir,
		CatalogFile: paths.DefaultCatalogFileName,
		LogLevel:    defaultLogLevel,
		Search:      searchConfig{MaxConcurrency: search.DefaultMaxConcurrency},
	}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	return true, os.WriteFile(path, data, 0o644)
}

// newLogger returns a text logger at the named level. Unknown level names
// fall back to info.
func newLogger(w io.Writer, level string) *slog.Logger {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		l = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: l}))
}
