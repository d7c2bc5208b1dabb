package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/answerlens/internal/render"
	"github.com/abhisek/answerlens/internal/review"
)

var importCmd = &cobra.Command{
	Use:   "import <file.json|file.yaml>",
	Short: "Import an assignment and its submissions",
	Long: `Import an assignment with a batch of student answers.

Submissions are appended to any already stored for the assignment unless
--replace is given or the file sets "replace: true".`,
	Args: cobra.ExactArgs(1),
	RunE: withApp(appOptions{}, func(cmd *cobra.Command, args []string, a *app) error {
		batch, err := review.ReadBatchFile(args[0])
		if err != nil {
			return err
		}
		if replace, _ := cmd.Flags().GetBool("replace"); replace {
			batch.Replace = true
		}

		res, err := a.svc.ImportBatch(cmd.Context(), batch)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d submissions into %s\n", res.Submissions, res.AssignmentID)

		if analyze, _ := cmd.Flags().GetBool("analyze"); analyze {
			report, err := a.svc.Analyze(cmd.Context(), res.AssignmentID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Analyzed %d answers, class average %d%%\n",
				report.TotalSubmissions, report.ClassAvg)
		}
		return nil
	}),
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored assignments",
	RunE: withApp(appOptions{}, func(cmd *cobra.Command, args []string, a *app) error {
		list, err := a.svc.Assignments(cmd.Context())
		if err != nil {
			return err
		}
		if len(list) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No assignments yet. Run `answerlens import` or `answerlens seed`.")
			return nil
		}
		return render.Assignments(cmd.OutOrStdout(), list)
	}),
}

var deleteCmd = &cobra.Command{
	Use:   "delete <assignment-id>",
	Short: "Delete an assignment with its submissions, report and feedback",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(appOptions{}, func(cmd *cobra.Command, args []string, a *app) error {
		if err := a.svc.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
		return nil
	}),
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the demo assignment into an empty database",
	RunE: withApp(appOptions{}, func(cmd *cobra.Command, args []string, a *app) error {
		seeded, err := a.svc.SeedDemo(cmd.Context())
		if err != nil {
			return err
		}
		if !seeded {
			fmt.Fprintln(cmd.OutOrStdout(), "Database already has assignments; demo data not loaded.")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Loaded demo assignment %s\n", review.DemoAssignmentID)
		return nil
	}),
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show dashboard totals",
	RunE: withApp(appOptions{}, func(cmd *cobra.Command, args []string, a *app) error {
		st, err := a.svc.Stats(cmd.Context())
		if err != nil {
			return err
		}
		return render.Stats(cmd.OutOrStdout(), st)
	}),
}

var activityCmd = &cobra.Command{
	Use:   "activity",
	Short: "Show recent activity",
	RunE: withApp(appOptions{}, func(cmd *cobra.Command, args []string, a *app) error {
		limit, _ := cmd.Flags().GetInt("limit")
		entries, err := a.svc.Activity(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No activity recorded yet.")
			return nil
		}
		return render.Activity(cmd.OutOrStdout(), entries)
	}),
}

func init() {
	importCmd.Flags().Bool("replace", false, "Replace stored submissions instead of appending")
	importCmd.Flags().Bool("analyze", false, "Analyze the assignment after importing")

	activityCmd.Flags().IntP("limit", "n", 10, "Number of entries to show")
}
