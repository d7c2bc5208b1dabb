package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/abhisek/answerlens/internal/feedback"
	"github.com/abhisek/answerlens/internal/notify"
	"github.com/abhisek/answerlens/internal/render"
	"github.com/abhisek/answerlens/internal/review"
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback <assignment-id>",
	Short: "Draft feedback for an assignment",
	Long: `Draft class, question and student feedback from the latest report.

Drafts start as pending and must be approved before publishing. With
--show, prints the stored drafts without regenerating them. With --llm,
the class summary is rewritten by the configured model.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		useLLM, _ := cmd.Flags().GetBool("llm")
		show, _ := cmd.Flags().GetBool("show")

		a, err := openApp(cmd, appOptions{llm: useLLM})
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cmd.Context()
		var pkg *feedback.Package
		switch {
		case show:
			pkg, err = a.svc.Feedback(ctx, args[0])
		case useLLM:
			pkg, err = a.svc.EnhanceFeedback(ctx, args[0])
		default:
			pkg, err = a.svc.GenerateFeedback(ctx, args[0])
		}
		if err != nil {
			return err
		}
		return render.Feedback(cmd.OutOrStdout(), pkg)
	},
}

var approveCmd = &cobra.Command{
	Use:   "approve <assignment-id> <target>",
	Short: "Approve or reject a feedback draft",
	Long: `Set the review status of one feedback draft.

Targets are "summary", "question:<index>" (zero-based) or
"student:<id>", as listed by the feedback command.`,
	Args: cobra.ExactArgs(2),
	RunE: withApp(appOptions{}, func(cmd *cobra.Command, args []string, a *app) error {
		status := feedback.StatusApproved
		if reject, _ := cmd.Flags().GetBool("reject"); reject {
			status = feedback.StatusRejected
		}
		if reset, _ := cmd.Flags().GetBool("reset"); reset {
			status = feedback.StatusPending
		}

		if _, err := a.svc.SetDraftStatus(cmd.Context(), args[0], args[1], status); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", args[1], status)
		return nil
	}),
}

var explainCmd = &cobra.Command{
	Use:   "explain <assignment-id> <question-number>",
	Short: "Ask the model why students make a question's common mistakes",
	Long: `Explain each mistake pattern of a question using the configured model.

Questions are numbered from 1, as shown in reports.`,
	Args: cobra.ExactArgs(2),
	RunE: withApp(appOptions{llm: true}, func(cmd *cobra.Command, args []string, a *app) error {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid question number %q", args[1])
		}

		ctx := cmd.Context()
		assignment, err := a.svc.Assignment(ctx, args[0])
		if err != nil {
			return err
		}
		exps, err := a.svc.ExplainMistakes(ctx, args[0], n-1)
		if err != nil {
			return err
		}
		return render.Explanations(cmd.OutOrStdout(), assignment.Questions[n-1], exps)
	}),
}

var publishCmd = &cobra.Command{
	Use:   "publish <assignment-id>",
	Short: "Post the approved class summary to Slack",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(appOptions{}, func(cmd *cobra.Command, args []string, a *app) error {
		channel, _ := cmd.Flags().GetString("channel")
		if channel == "" {
			channel = a.cfg.Slack.Channel
		}
		if a.cfg.Slack.Token == "" {
			return errors.New("slack token not configured (set ANSWERLENS_SLACK_TOKEN or slack.token)")
		}

		ctx := cmd.Context()
		assignment, err := a.svc.Assignment(ctx, args[0])
		if err != nil {
			return err
		}
		pkg, err := a.svc.Feedback(ctx, args[0])
		if errors.Is(err, review.ErrNoFeedback) {
			return fmt.Errorf("%w; run `answerlens feedback %s` first", err, args[0])
		}
		if err != nil {
			return err
		}

		pub := notify.NewSlackPublisher(a.cfg.Slack.Token, a.log)
		if _, err := pub.PublishSummary(ctx, channel, assignment, pkg); err != nil {
			if errors.Is(err, notify.ErrNotApproved) {
				return fmt.Errorf("%w; run `answerlens approve %s summary` first", err, args[0])
			}
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Published summary for %q to %s\n", assignment.Title, channel)
		return nil
	}),
}

func init() {
	feedbackCmd.Flags().Bool("llm", false, "Rewrite the class summary with the configured model")
	feedbackCmd.Flags().Bool("show", false, "Print stored drafts without regenerating")

	approveCmd.Flags().Bool("reject", false, "Reject the draft instead of approving it")
	approveCmd.Flags().Bool("reset", false, "Return the draft to pending")
	approveCmd.MarkFlagsMutuallyExclusive("reject", "reset")

	publishCmd.Flags().String("channel", "", "Slack channel (overrides slack.channel)")
}
