package cli

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"quiz-progress-service/internal/config"
	"quiz-progress-service/internal/infra/postgres"
)

// NewMigrateCmd applies database migrations.
func NewMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			return runMigrations(cmd.Context(), cfg, newLogger(true))
		},
	}
}

func runMigrations(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	applied, err := postgres.Migrate(ctx, cfg.Postgres.URL)
	if err != nil {
		return err
	}
	logger.Info("migrations applied", "migrations", applied)
	return nil
}
