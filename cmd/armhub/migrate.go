package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/iliyamo/armhub-seatdesk/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down|step-up|drop]",
	Short:     "Apply or roll back the database schema",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{database.MigrateUp, database.MigrateDown, database.MigrateStepUp, database.MigrateDrop},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()

		action := database.MigrateUp
		if len(args) == 1 {
			action = args[0]
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()
		db, err := database.Open(ctx, dbOptions(cfg))
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()
		return database.Migrate(db, action, log)
	},
}
