// Package cmd wires the medport CLI commands.
package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "medport",
	Short: "Patient and doctor portal client",
	Long: `medport is a terminal client for the medical portal backend.

Patients browse doctors, check schedules, book and cancel visits, and keep
their profile up to date. Doctors review their weekly schedule. Authentication
state is kept locally between runs.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initApp()
	},
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with a cancellable context
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
