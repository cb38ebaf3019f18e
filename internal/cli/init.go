package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/catalog/internal/paths"
)

func newInitCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize catalog configuration and workspace",
		Long:  "Create the configuration directory with a default config.yaml, then create the workspace database.",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, flags)
		},
	}
}

func runInit(cmd *cobra.Command, flags *rootFlags) error {
	s, err := newSession(cmd, flags)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.configDir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	var dataDir string
	if flags.dataDir != "" {
		dataDir = s.dataDir
	}
	wrote, err := writeConfigIfMissing(paths.ConfigFile(s.configDir), dataDir)
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	ws, err := s.attach()
	if err != nil {
		return err
	}
	if err := ws.Detach(); err != nil {
		return fmt.Errorf("finalize workspace: %w", err)
	}

	out := cmd.OutOrStdout()
	if wrote {
		fmt.Fprintf(out, "Wrote %s\n", paths.ConfigFile(s.configDir))
	}
	fmt.Fprintf(out, "Catalog workspace initialized at %s\n", s.dataDir)
	return nil
}
