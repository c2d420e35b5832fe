package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/good-yellow-bee/practicelog/internal/client"
)

var timerProjectID int64

// sessionTimeCmd times a practice session interactively
var sessionTimeCmd = &cobra.Command{
	Use:   "time",
	Short: "Time a practice session",
	Long: `Start a stopwatch for a practice session and record it when done.

Press Enter to stop the stopwatch and log the session. The stopwatch
follows the wall clock, so time keeps counting if your machine sleeps.

Example:
  practicectl session time --project 3`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := newClient()
		ctx := context.Background()

		project, _, err := c.GetProject(ctx, timerProjectID)
		if err != nil {
			return err
		}

		watch := client.NewStopwatch()
		watch.Start()
		startedAt := time.Now()

		fmt.Printf("Practicing '%s', press Enter to stop... ", project.Title)
		bufio.NewReader(os.Stdin).ReadString('\n')

		elapsed := watch.Stop()
		if elapsed < time.Second {
			fmt.Println("Session too short, nothing recorded.")
			return nil
		}

		id, err := c.LogSession(ctx, project.ID, elapsed, startedAt, time.Now(), "")
		if err != nil {
			return fmt.Errorf("log session: %w", err)
		}

		fmt.Printf("Recorded %s for '%s' (session %d)\n",
			elapsed.Round(time.Second), project.Title, id)
		return nil
	},
}

func init() {
	sessionCmd.AddCommand(sessionTimeCmd)

	sessionTimeCmd.Flags().Int64Var(&timerProjectID, "project", 0, "project ID (required)")
	sessionTimeCmd.MarkFlagRequired("project")
}
