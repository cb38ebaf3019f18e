package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/catalog/internal/catalog"
	"github.com/mesh-intelligence/catalog/internal/search"
)

type providersView struct {
	SearchProviders []string `json:"search_providers"`
	MemberTypes     []string `json:"member_types"`
}

func newProvidersCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "providers",
		Short: "List registered item search providers and member types",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			view := providersView{
				SearchProviders: search.NewCatalog().Keys(),
				MemberTypes:     catalog.NewMemberRegistry().Keys(),
			}
			if flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), view)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Search providers:")
			for _, k := range view.SearchProviders {
				fmt.Fprintf(out, "  %s\n", k)
			}
			fmt.Fprintln(out, "Member types:")
			for _, k := range view.MemberTypes {
				fmt.Fprintf(out, "  %s\n", k)
			}
			return nil
		},
	}
}
