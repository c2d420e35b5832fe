package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var (
	sessionProjectID int64
	sessionDuration  time.Duration
	sessionLabel     string
)

// sessionCmd represents the session command group
var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Practice session commands",
	Long: `Commands for recording practice sessions.

Example:
  practicectl session log --project 3 --duration 45m --label "scales"`,
}

// sessionLogCmd records a practice session
var sessionLogCmd = &cobra.Command{
	Use:   "log",
	Short: "Record a practice session",
	Long: `Record a finished practice session against a project.

The session is stamped as ending now, with the start time derived
from the duration. Logging a session bumps the project to the top
of the practice list.

Examples:
  practicectl session log --project 3 --duration 30m
  practicectl session log --project 3 --duration 1h15m --label "full run-through"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if sessionDuration <= 0 {
			return fmt.Errorf("--duration must be positive")
		}

		end := time.Now()
		start := end.Add(-sessionDuration)

		id, err := newClient().LogSession(context.Background(), sessionProjectID, sessionDuration, start, end, sessionLabel)
		if err != nil {
			return fmt.Errorf("log session: %w", err)
		}

		fmt.Printf("Recorded %s for project %d (session %d)\n",
			sessionDuration.Round(time.Second), sessionProjectID, id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionLogCmd)

	sessionLogCmd.Flags().Int64Var(&sessionProjectID, "project", 0, "project ID (required)")
	sessionLogCmd.Flags().DurationVar(&sessionDuration, "duration", 0, "practice duration, e.g. 30m (required)")
	sessionLogCmd.Flags().StringVar(&sessionLabel, "label", "", "optional session label")
	sessionLogCmd.MarkFlagRequired("project")
	sessionLogCmd.MarkFlagRequired("duration")
}
