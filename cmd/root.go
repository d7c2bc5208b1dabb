package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "answerlens",
	Short: "Short-answer analytics for instructors",
	Long: `answerlens analyzes a class's short written answers: it scores them,
groups similar answers, surfaces recurring mistakes and drafts feedback
for the instructor to review.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Database file or URL (overrides ANSWERLENS_DB and the config file)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default answerlens.yaml, or ANSWERLENS_CONFIG)")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(feedbackCmd)
	rootCmd.AddCommand(approveCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(publishCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(activityCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}
