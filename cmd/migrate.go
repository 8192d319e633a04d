package main

import (
	"github.com/lshigami/mybeing/config"
	"github.com/lshigami/mybeing/database"
	"github.com/lshigami/mybeing/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return runOnce(cfg, database.AutoMigrate)
	},
}

// runOnce builds the core graph and calls fn once. Invoked functions run while the
// app is constructed, so nothing needs to be started.
func runOnce(cfg *config.Config, fn interface{}) error {
	app := fx.New(
		fx.NopLogger,
		fx.Supply(cfg),
		server.Core,
		fx.Invoke(fn),
	)
	return app.Err()
}
