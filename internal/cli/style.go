package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/catalog/internal/catalog"
	"github.com/mesh-intelligence/catalog/internal/style"
	"github.com/mesh-intelligence/catalog/pkg/capability"
	"github.com/mesh-intelligence/catalog/pkg/types"
)

type styleView struct {
	ID     string `json:"id"`
	Name   string `json:"name,omitempty"`
	Active bool   `json:"active"`
}

type styleListView struct {
	Item   string      `json:"item"`
	Group  string      `json:"group"`
	Active string      `json:"active,omitempty"`
	Styles []styleView `json:"styles"`
}

func newStyleCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "style",
		Short: "List, choose or clear a member's active style",
	}
	cmd.AddCommand(newStyleListCmd(flags))
	cmd.AddCommand(newStyleChooseCmd(flags))
	cmd.AddCommand(newStyleClearCmd(flags))
	return cmd
}

// selectable loads the catalog and returns member id as a SelectableStyle.
func selectable(s *session, id string) (*catalog.Catalog, types.SelectableStyle, error) {
	c, err := s.loadCatalog()
	if err != nil {
		return nil, nil, err
	}
	m, err := c.Member(id)
	if err != nil {
		return nil, nil, err
	}
	sel, ok := capability.As[types.SelectableStyle](m)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s (%s) has no selectable styles", types.ErrCapabilityAbsent, id, m.Type())
	}
	return c, sel, nil
}

func newStyleListCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list <id>",
		Short: "List the styles a member offers",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, flags)
			if err != nil {
				return err
			}
			_, sel, err := selectable(s, args[0])
			if err != nil {
				return err
			}

			active, _ := sel.ActiveStyleID()
			v := styleListView{Item: args[0], Group: sel.StyleGroup(), Active: active, Styles: []styleView{}}
			for _, st := range sel.AvailableStyles() {
				v.Styles = append(v.Styles, styleView{ID: st.ID, Name: st.Name, Active: st.ID == active})
			}
			if flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), v)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Style group %s of %s:\n", v.Group, v.Item)
			for _, st := range v.Styles {
				mark := " "
				if st.Active {
					mark = "*"
				}
				fmt.Fprintf(out, "%s %-16s %s\n", mark, st.ID, st.Name)
			}
			return nil
		},
	}
}

// userStratum checks that stratumID is one whose values are persisted.
func userStratum(c *catalog.Catalog, stratumID string) error {
	if !c.Order().Has(stratumID) {
		return &types.UnknownStratumError{StratumID: stratumID}
	}
	if !c.Order().IsUserStratum(stratumID) {
		return userError{fmt.Errorf("stratum %q is not a user stratum; use %s or %s", stratumID, types.StratumUser, types.StratumOverride)}
	}
	return nil
}

func newStyleChooseCmd(flags *rootFlags) *cobra.Command {
	var stratumID string
	cmd := &cobra.Command{
		Use:   "choose <id> <style-id>",
		Short: "Choose a member's active style",
		Args:  exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, flags)
			if err != nil {
				return err
			}
			c, sel, err := selectable(s, args[0])
			if err != nil {
				return err
			}
			if err := userStratum(c, stratumID); err != nil {
				return err
			}
			if err := sel.ChooseActiveStyle(stratumID, args[1]); err != nil {
				return err
			}
			if err := s.save(c); err != nil {
				return err
			}

			active, _ := sel.ActiveStyleID()
			fmt.Fprintf(cmd.OutOrStdout(), "Chose %s for %s in stratum %s (active: %s)\n", args[1], args[0], stratumID, active)
			return nil
		},
	}
	cmd.Flags().StringVar(&stratumID, "stratum", types.StratumUser, "stratum that records the choice")
	return cmd
}

func newStyleClearCmd(flags *rootFlags) *cobra.Command {
	var stratumID string
	cmd := &cobra.Command{
		Use:   "clear <id>",
		Short: "Clear the style choice a stratum holds for a member",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, flags)
			if err != nil {
				return err
			}
			c, sel, err := selectable(s, args[0])
			if err != nil {
				return err
			}
			if err := userStratum(c, stratumID); err != nil {
				return err
			}
			l, ok := capability.As[types.Layered](sel)
			if !ok {
				return fmt.Errorf("%w: %s has no strata", types.ErrCapabilityAbsent, args[0])
			}
			if err := l.Strata().ClearValue(stratumID, style.TraitKey(sel.StyleGroup())); err != nil {
				return err
			}
			if err := s.save(c); err != nil {
				return err
			}

			active, _ := sel.ActiveStyleID()
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared stratum %s for %s (active: %s)\n", stratumID, args[0], orNone(active))
			return nil
		},
	}
	cmd.Flags().StringVar(&stratumID, "stratum", types.StratumUser, "stratum to clear")
	return cmd
}
