package main

import (
	"context"
	"fmt"

	"github.com/lshigami/mybeing/database"
	"github.com/lshigami/mybeing/internal/seed"
	"github.com/lshigami/mybeing/internal/service"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the built-in quiz catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return runOnce(cfg, func(db *gorm.DB, quizzes service.AdminQuizService) error {
			if err := database.AutoMigrate(db); err != nil {
				return err
			}
			n, err := seed.Run(context.Background(), quizzes)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d quiz(zes)\n", n)
			return nil
		})
	},
}
