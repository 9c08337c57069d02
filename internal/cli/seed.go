// internal/cli/seed.go
package cli

import (
	"github.com/spf13/cobra"

	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/database"
)

func newSeedCmd() *cobra.Command {
	var demo bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load reference data (emission factors, packaging materials, labels, ingredient profiles)",
		Long: `Upserts the built-in reference tables. Running it again updates rows in place.

With --demo a small catalog of example products is loaded as well.`,
		Example: `  ecoscore seed
  ecoscore seed --demo`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			env, err := bootstrap()
			if err != nil {
				return err
			}
			defer env.Close()

			if err := database.SeedReferenceData(env.db); err != nil {
				return err
			}
			if demo {
				return database.SeedDemoCatalog(env.db)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&demo, "demo", false, "also load demo products")
	return cmd
}
