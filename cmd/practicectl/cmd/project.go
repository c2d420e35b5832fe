package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/good-yellow-bee/practicelog/internal/client"
)

var (
	projectSearch       string
	projectID           int64
	projectTitle        string
	projectArtist       string
	projectTags         []string
	projectNotes        string
	projectChordsURL    string
	projectRecordingURL string
	projectCapo         int
	projectTranspose    int
	projectMemorized    bool
	projectDeleteNow    bool
)

// projectCmd represents the project command group
var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Project management commands",
	Long: `Commands for managing practice projects.

A project is a song or piece you are working on, with its tags,
chord chart link, and practice history.

Examples:
  # List all projects
  practicectl project list

  # Create a new project
  practicectl project create --title "Blackbird" --artist "The Beatles"

  # Show project details with practice history
  practicectl project show --id 3

  # Delete a project (5 second undo window)
  practicectl project delete --id 3`,
}

// projectListCmd lists all projects
var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all projects",
	Long: `List projects, most recently practiced first.

With --search, only projects whose title or artist contains the
query (case-insensitive) are shown.

Examples:
  practicectl project list
  practicectl project list --search beatles`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := client.NewStore(newClient())
		ctx := context.Background()

		if err := store.Refresh(ctx); err != nil {
			return fmt.Errorf("list projects: %w", err)
		}

		projects := store.Filter(projectSearch)
		if len(projects) == 0 {
			fmt.Println("No projects found.")
			return nil
		}

		// Print header
		fmt.Printf("\n%-6s  %-25s  %-20s  %-25s  %s\n",
			"ID", "TITLE", "ARTIST", "TAGS", "LAST PRACTICED")
		fmt.Println(strings.Repeat("-", 100))

		for _, p := range projects {
			fmt.Printf("%-6d  %-25s  %-20s  %-25s  %s\n",
				p.ID,
				truncate(p.Title, 25),
				truncate(p.Artist, 20),
				truncate(strings.Join(p.Tags, ","), 25),
				p.LastUpdated.Local().Format("2006-01-02 15:04"),
			)
		}
		fmt.Printf("\nTotal: %d project(s)\n", len(projects))

		return nil
	},
}

// projectShowCmd shows project details
var projectShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show project details",
	Long: `Show a project with its full practice history.

Example:
  practicectl project show --id 3`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		project, sessions, err := newClient().GetProject(ctx, projectID)
		if err != nil {
			return err
		}

		fmt.Println("\nProject Details:")
		fmt.Printf("  ID:        %d\n", project.ID)
		fmt.Printf("  Title:     %s\n", project.Title)
		fmt.Printf("  Artist:    %s\n", project.Artist)
		fmt.Printf("  Tags:      %s\n", strings.Join(project.Tags, ", "))
		if project.ChordsURL != "" {
			fmt.Printf("  Chords:    %s\n", project.ChordsURL)
		}
		if project.RecordingURL != "" {
			fmt.Printf("  Recording: %s\n", project.RecordingURL)
		}
		if project.Capo != nil {
			fmt.Printf("  Capo:      %d\n", *project.Capo)
		}
		if project.Transpose != nil {
			fmt.Printf("  Transpose: %+d\n", *project.Transpose)
		}
		if project.Memorized != nil {
			fmt.Printf("  Memorized: %t\n", *project.Memorized)
		}
		if project.Notes != "" {
			fmt.Printf("  Notes:     %s\n", project.Notes)
		}
		fmt.Printf("  Created:   %s\n", project.CreatedAt.Local().Format("2006-01-02 15:04:05"))
		fmt.Printf("  Updated:   %s\n", project.LastUpdated.Local().Format("2006-01-02 15:04:05"))

		if len(sessions) == 0 {
			fmt.Println("\nNo practice sessions recorded.")
			return nil
		}

		var total time.Duration
		fmt.Printf("\nPractice sessions:\n\n")
		fmt.Printf("%-6s  %-12s  %-20s  %s\n", "ID", "DURATION", "STARTED", "LABEL")
		fmt.Println(strings.Repeat("-", 60))
		for _, s := range sessions {
			d := time.Duration(s.Duration) * time.Millisecond
			total += d
			fmt.Printf("%-6d  %-12s  %-20s  %s\n",
				s.ID,
				d.Round(time.Second),
				s.StartTime.Local().Format("2006-01-02 15:04"),
				s.Label,
			)
		}
		fmt.Printf("\nTotal: %d session(s), %s\n", len(sessions), total.Round(time.Second))

		return nil
	},
}

// projectCreateCmd creates a new project
var projectCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new project",
	Long: `Add a song or piece to the practice list.

Example:
  practicectl project create --title "Blackbird" --artist "The Beatles" --tags fingerstyle --capo 0`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(projectTitle) == "" {
			return fmt.Errorf("--title is required")
		}

		p := &client.Project{
			Title:        strings.TrimSpace(projectTitle),
			Artist:       strings.TrimSpace(projectArtist),
			Tags:         projectTags,
			Notes:        projectNotes,
			ChordsURL:    projectChordsURL,
			RecordingURL: projectRecordingURL,
		}
		if cmd.Flags().Changed("capo") {
			p.Capo = &projectCapo
		}
		if cmd.Flags().Changed("transpose") {
			p.Transpose = &projectTranspose
		}
		if cmd.Flags().Changed("memorized") {
			p.Memorized = &projectMemorized
		}

		if err := newClient().CreateProject(context.Background(), p); err != nil {
			return fmt.Errorf("create project: %w", err)
		}

		fmt.Printf("\nProject created successfully:\n")
		fmt.Printf("  ID:     %d\n", p.ID)
		fmt.Printf("  Title:  %s\n", p.Title)
		fmt.Printf("  Artist: %s\n", p.Artist)

		return nil
	},
}

// projectUpdateCmd updates a project
var projectUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update project fields",
	Long: `Update an existing project. Only the flags you pass change.

Examples:
  practicectl project update --id 3 --notes "work on the bridge"
  practicectl project update --id 3 --memorized --capo 2`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		c := newClient()

		project, _, err := c.GetProject(ctx, projectID)
		if err != nil {
			return err
		}

		changed := false
		if cmd.Flags().Changed("title") {
			if strings.TrimSpace(projectTitle) == "" {
				return fmt.Errorf("title cannot be blank")
			}
			project.Title = strings.TrimSpace(projectTitle)
			changed = true
		}
		if cmd.Flags().Changed("artist") {
			project.Artist = strings.TrimSpace(projectArtist)
			changed = true
		}
		if cmd.Flags().Changed("tags") {
			project.Tags = projectTags
			changed = true
		}
		if cmd.Flags().Changed("notes") {
			project.Notes = projectNotes
			changed = true
		}
		if cmd.Flags().Changed("chords-url") {
			project.ChordsURL = projectChordsURL
			changed = true
		}
		if cmd.Flags().Changed("recording-url") {
			project.RecordingURL = projectRecordingURL
			changed = true
		}
		if cmd.Flags().Changed("capo") {
			project.Capo = &projectCapo
			changed = true
		}
		if cmd.Flags().Changed("transpose") {
			project.Transpose = &projectTranspose
			changed = true
		}
		if cmd.Flags().Changed("memorized") {
			project.Memorized = &projectMemorized
			changed = true
		}

		if !changed {
			return fmt.Errorf("specify at least one field to update")
		}

		if err := c.UpdateProject(ctx, project); err != nil {
			return fmt.Errorf("update project: %w", err)
		}

		fmt.Printf("Project updated: %s\n", project.Title)
		return nil
	},
}

// projectDeleteCmd deletes a project
var projectDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a project",
	Long: `Delete a project and all of its practice sessions.

The delete is held for 5 seconds; press Enter during the countdown
to undo it. Use --now to delete immediately.

Examples:
  practicectl project delete --id 3
  practicectl project delete --id 3 --now`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := client.NewStore(newClient())
		ctx := context.Background()

		if err := store.Refresh(ctx); err != nil {
			return fmt.Errorf("load projects: %w", err)
		}
		project, ok := store.Get(projectID)
		if !ok {
			return fmt.Errorf("project not found: %d", projectID)
		}

		if projectDeleteNow {
			// Zero window commits the server delete before Delete returns.
			store.SetUndoWindow(0)
			store.Delete(projectID)
			fmt.Printf("Project deleted: %s\n", project.Title)
			return nil
		}

		// Hold the commit until the countdown resolves.
		store.SetUndoWindow(time.Hour)
		store.Delete(projectID)

		fmt.Printf("Deleting '%s', press Enter within 5s to undo... ", project.Title)

		entered := make(chan struct{})
		go func() {
			bufio.NewReader(os.Stdin).ReadString('\n')
			close(entered)
		}()

		select {
		case <-entered:
			if store.Undo(projectID) {
				fmt.Println("Restored.")
				return nil
			}
		case <-time.After(client.DefaultUndoWindow):
		}

		store.Flush()
		fmt.Printf("\nProject deleted: %s\n", project.Title)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(projectCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectShowCmd)
	projectCmd.AddCommand(projectCreateCmd)
	projectCmd.AddCommand(projectUpdateCmd)
	projectCmd.AddCommand(projectDeleteCmd)

	// List flags
	projectListCmd.Flags().StringVar(&projectSearch, "search", "", "filter by title or artist")

	// Show flags
	projectShowCmd.Flags().Int64Var(&projectID, "id", 0, "project ID (required)")
	projectShowCmd.MarkFlagRequired("id")

	// Create flags
	projectCreateCmd.Flags().StringVar(&projectTitle, "title", "", "project title (required)")
	projectCreateCmd.Flags().StringVar(&projectArtist, "artist", "", "artist or composer")
	projectCreateCmd.Flags().StringSliceVar(&projectTags, "tags", nil, "comma-separated tags")
	projectCreateCmd.Flags().StringVar(&projectNotes, "notes", "", "free-form notes")
	projectCreateCmd.Flags().StringVar(&projectChordsURL, "chords-url", "", "link to chord chart")
	projectCreateCmd.Flags().StringVar(&projectRecordingURL, "recording-url", "", "link to reference recording")
	projectCreateCmd.Flags().IntVar(&projectCapo, "capo", 0, "capo fret")
	projectCreateCmd.Flags().IntVar(&projectTranspose, "transpose", 0, "transpose in semitones")
	projectCreateCmd.Flags().BoolVar(&projectMemorized, "memorized", false, "piece is memorized")
	projectCreateCmd.MarkFlagRequired("title")

	// Update flags
	projectUpdateCmd.Flags().Int64Var(&projectID, "id", 0, "project ID (required)")
	projectUpdateCmd.Flags().StringVar(&projectTitle, "title", "", "new title")
	projectUpdateCmd.Flags().StringVar(&projectArtist, "artist", "", "new artist")
	projectUpdateCmd.Flags().StringSliceVar(&projectTags, "tags", nil, "replacement tags")
	projectUpdateCmd.Flags().StringVar(&projectNotes, "notes", "", "new notes")
	projectUpdateCmd.Flags().StringVar(&projectChordsURL, "chords-url", "", "new chord chart link")
	projectUpdateCmd.Flags().StringVar(&projectRecordingURL, "recording-url", "", "new recording link")
	projectUpdateCmd.Flags().IntVar(&projectCapo, "capo", 0, "capo fret")
	projectUpdateCmd.Flags().IntVar(&projectTranspose, "transpose", 0, "transpose in semitones")
	projectUpdateCmd.Flags().BoolVar(&projectMemorized, "memorized", false, "piece is memorized")
	projectUpdateCmd.MarkFlagRequired("id")

	// Delete flags
	projectDeleteCmd.Flags().Int64Var(&projectID, "id", 0, "project ID (required)")
	projectDeleteCmd.Flags().BoolVar(&projectDeleteNow, "now", false, "delete immediately, no undo window")
	projectDeleteCmd.MarkFlagRequired("id")
}

// truncate shortens a string to maxLen characters, counting runes so
// multi-byte titles are never split mid-character.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-2]) + ".."
}
