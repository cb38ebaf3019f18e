package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/catalog/internal/catalog"
	"github.com/mesh-intelligence/catalog/pkg/capability"
	"github.com/mesh-intelligence/catalog/pkg/types"
)

// memberView is the output form of one catalog member.
type memberView struct {
	ID           string      `json:"id"`
	Type         string      `json:"type"`
	Name         string      `json:"name"`
	Description  string      `json:"description,omitempty"`
	Capabilities []string    `json:"capabilities"`
	LocalData    bool        `json:"local_data"`
	StyleGroup   string      `json:"style_group,omitempty"`
	ActiveStyle  string      `json:"active_style,omitempty"`
	Traits       []traitView `json:"traits,omitempty"`
}

// traitView is a trait's effective value and the stratum it came from.
type traitView struct {
	Trait   string `json:"trait"`
	Value   string `json:"value"`
	Stratum string `json:"stratum"`
}

// resolvingStore is implemented by *strata.Store.
type resolvingStore interface {
	Traits() []string
	Resolve(trait string) (value, stratumID string, ok bool)
	Snapshot() map[string]map[string]string
}

type describer interface {
	Description() string
}

func viewMember(m types.Member, withTraits bool) memberView {
	v := memberView{
		ID:           m.ID(),
		Type:         m.Type(),
		Name:         m.Name(),
		Capabilities: capability.Names(m),
		LocalData:    capability.LocalData(m),
	}
	if d, ok := m.(describer); ok {
		v.Description = d.Description()
	}
	if sel, ok := capability.As[types.SelectableStyle](m); ok {
		v.StyleGroup = sel.StyleGroup()
		v.ActiveStyle, _ = sel.ActiveStyleID()
	}
	if withTraits {
		if store, ok := storeOf(m); ok {
			for _, trait := range store.Traits() {
				value, stratum, _ := store.Resolve(trait)
				v.Traits = append(v.Traits, traitView{Trait: trait, Value: value, Stratum: stratum})
			}
		}
	}
	return v
}

func storeOf(m types.Member) (resolvingStore, bool) {
	l, ok := capability.As[types.Layered](m)
	if !ok {
		return nil, false
	}
	s, ok := l.Strata().(resolvingStore)
	return s, ok
}

func newItemsCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "items",
		Short: "List catalog members with their capabilities",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, flags)
			if err != nil {
				return err
			}
			c, err := s.loadCatalog()
			if err != nil {
				return err
			}

			views := []memberView{}
			for _, m := range c.Members() {
				views = append(views, viewMember(m, false))
			}
			if flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), views)
			}
			out := cmd.OutOrStdout()
			for _, v := range views {
				fmt.Fprintf(out, "%-24s %-8s %-24s %s\n", v.ID, v.Type, v.Name, strings.Join(v.Capabilities, ","))
			}
			return nil
		},
	}
}

func newShowCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a member's capabilities and effective traits",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, flags)
			if err != nil {
				return err
			}
			c, err := s.loadCatalog()
			if err != nil {
				return err
			}
			m, err := c.Member(args[0])
			if err != nil {
				return err
			}

			v := viewMember(m, true)
			if flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), v)
			}
			printMember(cmd.OutOrStdout(), v)
			return nil
		},
	}
}

func printMember(out io.Writer, v memberView) {
	fmt.Fprintf(out, "ID:           %s\n", v.ID)
	fmt.Fprintf(out, "Type:         %s\n", v.Type)
	fmt.Fprintf(out, "Name:         %s\n", v.Name)
	if v.Description != "" {
		fmt.Fprintf(out, "Description:  %s\n", v.Description)
	}
	fmt.Fprintf(out, "Capabilities: %s\n", strings.Join(v.Capabilities, ", "))
	fmt.Fprintf(out, "Local data:   %t\n", v.LocalData)
	if v.StyleGroup != "" {
		fmt.Fprintf(out, "Style group:  %s\n", v.StyleGroup)
		fmt.Fprintf(out, "Active style: %s\n", orNone(v.ActiveStyle))
	}
	if len(v.Traits) > 0 {
		fmt.Fprintln(out, "Traits:")
		for _, t := range v.Traits {
			fmt.Fprintf(out, "  %s = %s (%s)\n", t.Trait, t.Value, t.Stratum)
		}
	}
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

// stratumView lists the values one stratum holds.
type stratumView struct {
	ID       string            `json:"id"`
	Priority int               `json:"priority"`
	Values   map[string]string `json:"values"`
}

type strataView struct {
	ID        string        `json:"id"`
	Strata    []stratumView `json:"strata"`
	Effective []traitView   `json:"effective"`
}

func newStrataCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "strata <id>",
		Short: "Show every stratum of a member and which one wins per trait",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, flags)
			if err != nil {
				return err
			}
			c, err := s.loadCatalog()
			if err != nil {
				return err
			}
			m, err := c.Member(args[0])
			if err != nil {
				return err
			}
			v, err := viewStrata(c, m)
			if err != nil {
				return err
			}
			if flags.jsonMode {
				return printJSON(cmd.OutOrStdout(), v)
			}

			out := cmd.OutOrStdout()
			for _, st := range v.Strata {
				fmt.Fprintf(out, "[%s] priority %d\n", st.ID, st.Priority)
				for _, trait := range sortedKeys(st.Values) {
					fmt.Fprintf(out, "  %s = %s\n", trait, st.Values[trait])
				}
			}
			fmt.Fprintln(out, "Effective:")
			for _, t := range v.Effective {
				fmt.Fprintf(out, "  %s = %s (%s)\n", t.Trait, t.Value, t.Stratum)
			}
			return nil
		},
	}
}

func viewStrata(c *catalog.Catalog, m types.Member) (strataView, error) {
	store, ok := storeOf(m)
	if !ok {
		return strataView{}, fmt.Errorf("%w: %s has no strata", types.ErrCapabilityAbsent, m.ID())
	}
	l, _ := capability.As[types.Layered](m)
	snapshot := store.Snapshot()

	v := strataView{ID: m.ID(), Strata: []stratumView{}, Effective: []traitView{}}
	for _, id := range l.Strata().Strata() {
		p, _ := c.Order().Priority(id)
		v.Strata = append(v.Strata, stratumView{ID: id, Priority: p, Values: snapshot[id]})
	}
	for _, trait := range store.Traits() {
		value, stratum, _ := store.Resolve(trait)
		v.Effective = append(v.Effective, traitView{Trait: trait, Value: value, Stratum: stratum})
	}
	return v, nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
