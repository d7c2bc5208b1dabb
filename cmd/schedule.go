package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/answerlens/internal/schedule"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Re-analyze every assignment on a cron schedule",
	Long: `Run in the foreground, re-analyzing all stored assignments whenever
the schedule fires. Schedules are five-field cron expressions and
descriptors such as "@hourly" or "@every 30m". Stop with Ctrl+C.`,
	RunE: withApp(appOptions{}, func(cmd *cobra.Command, args []string, a *app) error {
		spec, _ := cmd.Flags().GetString("spec")
		if spec == "" {
			spec = a.cfg.Schedule
		}

		runner, err := schedule.New(spec, a.svc, a.log)
		if err != nil {
			return err
		}

		if now, _ := cmd.Flags().GetBool("now"); now {
			runner.RunOnce(cmd.Context())
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Re-analyzing on %q. Press Ctrl+C to stop.\n", spec)
		return runner.Run(cmd.Context())
	}),
}

func init() {
	scheduleCmd.Flags().String("spec", "", "Cron spec (overrides schedule in config)")
	scheduleCmd.Flags().Bool("now", false, "Run once immediately before waiting for the schedule")
}
