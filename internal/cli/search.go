package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/catalog/internal/search"
	"github.com/mesh-intelligence/catalog/pkg/capability"
	"github.com/mesh-intelligence/catalog/pkg/types"
)

func newSearchCmd(flags *rootFlags) *cobra.Command {
	var itemIDs []string
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the items of every searchable member",
		Long: "Search runs the query against the item search provider of each member\n" +
			"that configures one. Query tokens containing *, ? or [ are glob patterns.",
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, flags)
			if err != nil {
				return err
			}
			c, err := s.loadCatalog()
			if err != nil {
				return err
			}

			targets := c.Searchable()
			if len(itemIDs) > 0 {
				targets = nil
				for _, id := range itemIDs {
					m, err := c.Member(id)
					if err != nil {
						return err
					}
					item, ok := capability.As[types.SearchableItem](m)
					if !ok {
						return fmt.Errorf("%w: %s (%s) is not searchable", types.ErrCapabilityAbsent, id, m.Type())
					}
					targets = append(targets, item)
				}
			}

			results, err := search.SearchAll(cmd.Context(), targets, args[0], search.FanOutOptions{
				MaxConcurrency: s.cfg.GetInt(cfgKeyMaxConcurrency),
				Logger:         s.log,
			})
			if err != nil {
				return err
			}
			if flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), results)
			}
			out := cmd.OutOrStdout()
			for _, r := range results {
				fmt.Fprintf(out, "%-24s %-16s %s\n", r.MemberID, r.ID, r.Name)
			}
			fmt.Fprintf(out, "%d result(s)\n", len(results))
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&itemIDs, "item", nil, "restrict the search to these member ids")
	return cmd
}
