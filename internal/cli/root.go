// Package cli implements the catalog command-line interface: inspecting
// catalog members, their strata and styles, and searching their items.
package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir   string
	dataDir     string
	catalogFile string
	jsonMode    bool
}

// NewRootCmd creates the top-level "catalog" command with global flags
// and all subcommands registered. Each call returns an independent tree.
func NewRootCmd() *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect catalog members, their layered traits and styles",
		Long: "Catalog loads a catalog definition file, reports what each member can do,\n" +
			"shows how its traits resolve across strata, and records style choices.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return userError{err}
	})

	root.PersistentFlags().StringVar(&flags.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/catalog)")
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "workspace directory (default: $(CWD)/.catalog-db)")
	root.PersistentFlags().StringVar(&flags.catalogFile, "catalog", "", "catalog definition file (default: $(CWD)/catalog.yaml)")
	root.PersistentFlags().BoolVar(&flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(flags))
	root.AddCommand(newSchemaCmd(flags))
	root.AddCommand(newProvidersCmd(flags))
	root.AddCommand(newItemsCmd(flags))
	root.AddCommand(newShowCmd(flags))
	root.AddCommand(newStrataCmd(flags))
	root.AddCommand(newStyleCmd(flags))
	root.AddCommand(newSearchCmd(flags))

	return root
}

// Execute runs the root command, prints any error to stderr and returns the
// process exit code.
func Execute() int {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
		return exitCode(err)
	}
	return exitSuccess
}

// userError marks errors caused by the command line rather than the system.
type userError struct{ err error }

func (e userError) Error() string { return e.err.Error() }
func (e userError) Unwrap() error { return e.err }

// userErrors are sentinels that map to exitUserError.
var userErrors = []error{
	types.ErrMemberNotFound,
	types.ErrInvalidStyle,
	types.ErrKeyNotFound,
	types.ErrUnknownStratum,
	types.ErrInvalidDefinition,
	types.ErrUnsupportedVersion,
	types.ErrDuplicateMember,
	types.ErrDuplicateStyle,
	types.ErrStratumConflict,
	types.ErrCapabilityAbsent,
	types.ErrSearchNotConfigured,
	types.ErrBackendEmpty,
	types.ErrBackendUnknown,
}

// exitCode maps err to exitUserError or exitSysError.
func exitCode(err error) int {
	var ue userError
	if errors.As(err, &ue) {
		return exitUserError
	}
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return exitUserError
		}
	}
	return exitSysError
}

// exactArgs is cobra.ExactArgs reporting a user error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return userError{err}
		}
		return nil
	}
}
