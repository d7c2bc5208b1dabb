// Package notify publishes approved feedback to Slack.
package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/slack-go/slack"

	"github.com/abhisek/answerlens/internal/analysis"
	"github.com/abhisek/answerlens/internal/feedback"
)

// ErrNotApproved is returned when publishing a summary that has not been
// approved.
var ErrNotApproved = errors.New("class summary is not approved")

const (
	maxHeaderRunes  = 150
	maxSectionRunes = 3000
)

// Poster is the subset of the Slack client used for publishing.
type Poster interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

// SlackPublisher posts class summaries to a channel.
type SlackPublisher struct {
	client Poster
	log    *slog.Logger
}

// NewSlackPublisher creates a publisher authenticated with a bot token.
func NewSlackPublisher(token string, logger *slog.Logger, opts ...slack.Option) *SlackPublisher {
	return NewSlackPublisherWithClient(slack.New(token, opts...), logger)
}

// NewSlackPublisherWithClient creates a publisher over an existing client.
func NewSlackPublisherWithClient(client Poster, logger *slog.Logger) *SlackPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlackPublisher{client: client, log: logger}
}

// PublishSummary posts the approved class summary, followed by any
// approved question drafts. Student drafts are never published. It
// returns the message timestamp.
func (p *SlackPublisher) PublishSummary(ctx context.Context, channel string, a *analysis.Assignment, pkg *feedback.Package) (string, error) {
	if channel == "" {
		return "", fmt.Errorf("no Slack channel configured")
	}
	if pkg == nil || pkg.SummaryStatus != feedback.StatusApproved {
		return "", ErrNotApproved
	}

	blocks := SummaryBlocks(a, pkg)
	_, ts, err := p.client.PostMessageContext(ctx, channel,
		slack.MsgOptionText(fmt.Sprintf("Feedback for %s", a.Title), false),
		slack.MsgOptionBlocks(blocks...),
	)
	if err != nil {
		return "", fmt.Errorf("post to slack: %w", err)
	}
	p.log.Info("published class summary", "assignment", a.ID, "channel", channel, "ts", ts)
	return ts, nil
}

// SummaryBlocks builds the Slack message for an assignment's feedback.
func SummaryBlocks(a *analysis.Assignment, pkg *feedback.Package) []slack.Block {
	blocks := []slack.Block{
		slack.NewHeaderBlock(
			slack.NewTextBlockObject(slack.PlainTextType, clip("Feedback: "+a.Title, maxHeaderRunes), false, false),
		),
		slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, clip(pkg.Summary, maxSectionRunes), false, false),
			nil, nil,
		),
	}

	var approved []feedback.QuestionDraft
	for _, d := range pkg.QuestionDrafts {
		if d.Status == feedback.StatusApproved {
			approved = append(approved, d)
		}
	}
	if len(approved) > 0 {
		blocks = append(blocks, slack.NewDividerBlock())
		for _, d := range approved {
			text := fmt.Sprintf("*Q%d. %s*\n%s", d.QuestionIndex+1, d.Question, d.Draft)
			blocks = append(blocks, slack.NewSectionBlock(
				slack.NewTextBlockObject(slack.MarkdownType, clip(text, maxSectionRunes), false, false),
				nil, nil,
			))
		}
	}

	footer := a.Subject
	if footer != "" {
		footer += " · "
	}
	footer += "drafted " + pkg.GeneratedAt.Format("Jan 2, 2006")
	blocks = append(blocks, slack.NewContextBlock("",
		slack.NewTextBlockObject(slack.MarkdownType, footer, false, false),
	))
	return blocks
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
