package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/catalog/internal/catalog"
)

func newSchemaCmd(_ *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of catalog definition files",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := catalog.Schema()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
}
