package main

import (
	"context"

	"github.com/lshigami/mybeing/internal/server"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		app := fx.New(
			fx.Supply(cfg),
			server.Core,
			server.HTTP,
		)

		if err := app.Start(context.Background()); err != nil {
			return err
		}

		// Wait for a shutdown signal
		sig := <-app.Wait()
		log.Info().Str("signal", sig.Signal.String()).Msg("Application shutting down gracefully...")
		return app.Stop(context.Background())
	},
}
