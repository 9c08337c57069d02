// internal/cli/migrate.go
package cli

import (
	"github.com/spf13/cobra"

	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/database"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			env, err := bootstrap()
			if err != nil {
				return err
			}
			defer env.Close()

			return database.RunMigrations(env.db)
		},
	}
}
