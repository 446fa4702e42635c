package cmd

import (
	"context"
	"fmt"

	"github.com/frahmantamala/absence-request/pkg/logger"
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"
)

const migrationTable = "schema_migrations"

var (
	migrateCmd = &cobra.Command{
		RunE:  runMigration,
		Use:   "migrate",
		Short: "to run db migration files under db/migrations directory",
	}
	migrateRollback bool
	migrateDir      string
)

func init() {
	migrateCmd.Flags().BoolVarP(&migrateRollback, "rollback", "r", false, "to rollback the latest version of sql migration")
	migrateCmd.PersistentFlags().StringVarP(&migrateDir, "dir", "d", "db/migrations", "sql migrations directory")
}

func runMigration(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	lg := logger.L()

	db, err := goose.OpenDBWithDriver(dbDriver, cfg.Database.Source)
	if err != nil {
		return fmt.Errorf("goose: failed to open DB: %w", err)
	}
	defer db.Close()

	goose.SetTableName(migrationTable)

	direction := "up"
	if migrateRollback {
		direction = "down"
	}

	lg.Info("running migrations", "direction", direction, "dir", migrateDir)
	if err := goose.RunContext(ctx, direction, db, migrateDir); err != nil {
		return fmt.Errorf("goose %s: %w", direction, err)
	}

	version, err := goose.GetDBVersion(db)
	if err != nil {
		return fmt.Errorf("goose version: %w", err)
	}
	lg.Info("migrations complete", "version", version)
	return nil
}
