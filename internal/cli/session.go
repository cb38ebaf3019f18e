package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/catalog/internal/catalog"
	"github.com/mesh-intelligence/catalog/internal/paths"
	"github.com/mesh-intelligence/catalog/internal/sqlite"
	workspace "github.com/mesh-intelligence/catalog/pkg/sqlite"
	"github.com/mesh-intelligence/catalog/pkg/types"
)

// session holds what a command resolved from flags, environment and
// config.yaml.
type session struct {
	configDir string
	dataDir   string
	cfg       *viper.Viper
	log       *slog.Logger
	flags     *rootFlags
}

func newSession(cmd *cobra.Command, flags *rootFlags) (*session, error) {
	configDir, err := paths.ResolveConfigDir(flags.configDir)
	if err != nil {
		return nil, fmt.Errorf("resolve config dir: %w", err)
	}
	cfg, err := loadConfig(configDir)
	if err != nil {
		return nil, err
	}
	dataDir, err := paths.ResolveDataDir(flags.dataDir, cfg.GetString(cfgKeyDataDir))
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}
	return &session{
		configDir: configDir,
		dataDir:   dataDir,
		cfg:       cfg,
		log:       newLogger(cmd.ErrOrStderr(), cfg.GetString(cfgKeyLogLevel)),
		flags:     flags,
	}, nil
}

func (s *session) workspaceConfig() types.Config {
	return types.Config{Backend: s.cfg.GetString(cfgKeyBackend), DataDir: s.dataDir}
}

// catalogPath resolves the catalog definition file.
func (s *session) catalogPath() (string, error) {
	return paths.ResolveCatalogFile(s.flags.catalogFile, s.cfg.GetString(cfgKeyCatalogFile), s.configDir)
}

// loadCatalog loads the definition file and, when a workspace exists,
// re-applies the persisted user strata.
func (s *session) loadCatalog() (*catalog.Catalog, error) {
	path, err := s.catalogPath()
	if err != nil {
		return nil, err
	}
	c := catalog.New(catalog.Options{Logger: s.log})
	if err := c.LoadFile(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, userError{fmt.Errorf("catalog file %s not found (use --catalog or catalog_file in config.yaml)", path)}
		}
		return nil, err
	}

	if !s.workspaceExists() {
		return c, nil
	}
	ws, err := s.attach()
	if err != nil {
		return nil, err
	}
	defer ws.Detach()

	n, err := c.RestoreStrata(ws)
	if err != nil {
		return nil, fmt.Errorf("restore strata: %w", err)
	}
	s.log.Debug("strata restored", slog.Int("values", n), slog.String("data_dir", s.dataDir))
	return c, nil
}

func (s *session) workspaceExists() bool {
	_, err := os.Stat(filepath.Join(s.dataDir, sqlite.DatabaseFile))
	return err == nil
}

// attach opens the workspace, creating it when needed. The caller must
// Detach it.
func (s *session) attach() (types.Workspace, error) {
	ws := workspace.NewBackend()
	if err := ws.Attach(s.workspaceConfig()); err != nil {
		return nil, fmt.Errorf("attach workspace: %w", err)
	}
	return ws, nil
}

// save persists the catalog's user strata to the workspace.
func (s *session) save(c *catalog.Catalog) error {
	ws, err := s.attach()
	if err != nil {
		return err
	}
	if err := c.SaveStrata(ws); err != nil {
		ws.Detach()
		return fmt.Errorf("save strata: %w", err)
	}
	return ws.Detach()
}
