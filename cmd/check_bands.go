package main

import (
	"context"
	"fmt"
	"io"

	"github.com/lshigami/mybeing/internal/dto"
	"github.com/lshigami/mybeing/internal/service"
	"github.com/spf13/cobra"
)

var checkBandsCmd = &cobra.Command{
	Use:   "check-bands",
	Short: "Report quizzes whose bands leave gaps or overlap",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return runOnce(cfg, func(quizzes service.AdminQuizService) error {
			checks, err := quizzes.CheckAllBands(context.Background())
			if err != nil {
				return err
			}
			return reportBands(cmd.OutOrStdout(), checks)
		})
	},
}

// reportBands prints one line per quiz and fails when any quiz has issues.
func reportBands(w io.Writer, checks []dto.BandCheckResponse) error {
	bad := 0
	for _, c := range checks {
		if c.Valid {
			fmt.Fprintf(w, "ok    %s (%d..%d)\n", c.Slug, c.MinScore, c.MaxScore)
			continue
		}
		bad++
		fmt.Fprintf(w, "FAIL  %s (%d..%d)\n", c.Slug, c.MinScore, c.MaxScore)
		for _, issue := range c.Issues {
			fmt.Fprintf(w, "      %s: %s\n", issue.Kind, issue.Message)
		}
	}
	if bad > 0 {
		return fmt.Errorf("%d quiz(zes) have invalid bands", bad)
	}
	return nil
}
