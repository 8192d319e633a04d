package main

import (
	"github.com/lshigami/mybeing/config"
	"github.com/lshigami/mybeing/internal/logger"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "mybeing",
	Short:         "MyBeing quiz and content API",
	Long:          "MyBeing serves self-assessment quizzes, newsletter sign-ups, articles and the owner's admin API.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "Override LOG_LEVEL (debug, info, warn, error)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(checkBandsCmd)
}

// loadConfig reads the configuration and initialises the global logger from it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.Log.Level = lvl
	}
	logger.Init(cfg.Log.Level, cfg.Log.Pretty)
	return cfg, nil
}
