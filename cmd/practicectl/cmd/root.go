// Package cmd contains the CLI commands for practicelog.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/good-yellow-bee/practicelog/internal/client"
)

// defaultAPIURL is the default API address, can be overridden via PRACTICELOG_API_URL env var
var defaultAPIURL = "http://localhost:3001"

func init() {
	if envURL := os.Getenv("PRACTICELOG_API_URL"); envURL != "" {
		defaultAPIURL = envURL
	}
}

var (
	// Used for flags
	apiURL  string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "practicectl",
	Short: "PracticeLog - Music practice tracker",
	Long: `PracticeLog tracks the songs and pieces you are working on
and the time you spend practicing them.

Examples:
  # List all projects
  practicectl project list

  # Search by title or artist
  practicectl project list --search beatles

  # Add a new project
  practicectl project create --title "Blackbird" --artist "The Beatles" --tags fingerstyle,acoustic

  # Log half an hour of practice
  practicectl session log --project 3 --duration 30m`,
	// Run when no subcommand is specified
	Run: func(cmd *cobra.Command, args []string) {
		// Show help by default
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", defaultAPIURL, "practicelog server URL")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// newClient returns an API client for the configured server.
func newClient() *client.Client {
	return client.New(apiURL, nil)
}

// PrintVerbose prints a message only if verbose mode is enabled.
func PrintVerbose(format string, args ...interface{}) {
	if verbose {
		fmt.Printf(format+"\n", args...)
	}
}
