// internal/cli/root.go
package cli

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/config"
	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/database"
	"github.com/eyramm/Cognizant-BrAInstorm-Challenge-2025/internal/i18n"
)

// NewRootCmd creates the ecoscore command tree.
func NewRootCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ecoscore",
		Short:         "Product sustainability scoring service",
		Long:          "EcoScore scores packaged products for sustainability and recommends greener alternatives.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newServeCmd(), newMigrateCmd(), newSeedCmd(), newScoreCmd())
	return cmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute(version string) {
	if err := NewRootCmd(version).Execute(); err != nil {
		logrus.WithError(err).Error("Command failed")
		os.Exit(1)
	}
}

// environment is what every subcommand needs before doing work.
type environment struct {
	cfg *config.Config
	db  *gorm.DB
}

func (e *environment) Close() {
	if e.db != nil {
		database.Close(e.db)
	}
}

// bootstrap loads configuration, sets up logging and translations and opens
// the database.
func bootstrap() (*environment, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	config.ConfigureLogging(cfg.Log)

	if err := i18n.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize i18n: %w", err)
	}

	db, err := database.Initialize(cfg.Database)
	if err != nil {
		return nil, err
	}

	return &environment{cfg: cfg, db: db}, nil
}
