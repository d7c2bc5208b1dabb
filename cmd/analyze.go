package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/answerlens/internal/browser"
	"github.com/abhisek/answerlens/internal/render"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <assignment-id>",
	Short: "Run analysis for an assignment and store the report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")
		autoScore, _ := cmd.Flags().GetBool("auto-score")

		a, err := openApp(cmd, appOptions{autoScore: autoScore})
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		report, err := a.svc.Analyze(ctx, args[0])
		if err != nil {
			return err
		}

		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}

		assignment, err := a.svc.Assignment(ctx, args[0])
		if err != nil {
			return err
		}
		return render.Report(cmd.OutOrStdout(), assignment, report)
	},
}

var reportCmd = &cobra.Command{
	Use:   "report <assignment-id>",
	Short: "Show the latest report, regenerating it if missing or stale",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(appOptions{}, func(cmd *cobra.Command, args []string, a *app) error {
		ctx := cmd.Context()
		assignment, err := a.svc.Assignment(ctx, args[0])
		if err != nil {
			return err
		}
		report, err := a.svc.Report(ctx, args[0])
		if err != nil {
			return err
		}
		return render.Report(cmd.OutOrStdout(), assignment, report)
	}),
}

var browseCmd = &cobra.Command{
	Use:   "browse <assignment-id>",
	Short: "Browse a report interactively",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(appOptions{}, func(cmd *cobra.Command, args []string, a *app) error {
		ctx := cmd.Context()
		assignment, err := a.svc.Assignment(ctx, args[0])
		if err != nil {
			return err
		}
		report, err := a.svc.Report(ctx, args[0])
		if err != nil {
			return err
		}
		if len(assignment.Questions) == 0 {
			return fmt.Errorf("assignment %s has no questions", assignment.ID)
		}
		return browser.Run(assignment, report)
	}),
}

func init() {
	analyzeCmd.Flags().Bool("json", false, "Print the report as JSON")
	analyzeCmd.Flags().Bool("auto-score", false, "Score unscored answers with the keyword heuristic")
}
