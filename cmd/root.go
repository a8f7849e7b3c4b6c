// Package cmd contains the interviewd CLI.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "interviewd",
	Short: "HR candidate-feedback interview service",
	Long: `interviewd runs LLM-driven candidate feedback interviews: an admin
configures a scenario through a manager agent, candidates chat with an
interview agent via a shareable link, and transcripts are persisted for
analytics.`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
