package cli

import (
	"github.com/spf13/cobra"

	"github.com/guttosm/laundry-service/internal/catalog"
)

func catalogCmd() *cobra.Command {
	var catalogFile string

	c := &cobra.Command{
		Use:   "catalog",
		Short: "Print the effective catalog as YAML",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cat, err := catalog.Resolve(catalogFile)
			if err != nil {
				return err
			}
			return catalog.Encode(cmd.OutOrStdout(), cat)
		},
	}

	c.Flags().StringVar(&catalogFile, "catalog", "", "YAML catalog file (defaults to the built-in catalog)")
	return c
}
