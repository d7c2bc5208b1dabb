package review

import (
	"context"
	"fmt"

	"github.com/abhisek/answerlens/internal/analysis"
	"github.com/abhisek/answerlens/internal/feedback"
	"github.com/abhisek/answerlens/internal/insight"
	"github.com/abhisek/answerlens/internal/store"
)

// GenerateFeedback drafts template feedback from the current report and
// replaces any stored drafts. Every draft starts pending.
func (s *Service) GenerateFeedback(ctx context.Context, assignmentID string) (*feedback.Package, error) {
	a, err := s.Assignment(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	r, err := s.Report(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	subs, err := s.Submissions(ctx, a)
	if err != nil {
		return nil, err
	}

	pkg, err := feedback.GenerateAll(a, subs, r)
	if err != nil {
		return nil, fmt.Errorf("draft feedback: %w", err)
	}
	pkg.GeneratedAt = s.now()
	if err := s.repos.Feedback.Save(ctx, a.ID, pkg); err != nil {
		return nil, fmt.Errorf("save feedback: %w", err)
	}

	s.activity(ctx, fmt.Sprintf("Drafted feedback for %q: %d questions, %d students",
		a.Title, len(pkg.QuestionDrafts), len(pkg.StudentDrafts)), store.ActivityInfo)
	return pkg, nil
}

// EnhanceFeedback replaces the class summary with a model-written one.
// Template drafts are generated first when none are stored. The new
// summary is pending review.
func (s *Service) EnhanceFeedback(ctx context.Context, assignmentID string) (*feedback.Package, error) {
	a, err := s.Assignment(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	pkg, err := s.repos.Feedback.Get(ctx, a.ID)
	if err != nil {
		return nil, fmt.Errorf("load feedback: %w", err)
	}
	if pkg == nil {
		if pkg, err = s.GenerateFeedback(ctx, a.ID); err != nil {
			return nil, err
		}
	}
	r, err := s.Report(ctx, a.ID)
	if err != nil {
		return nil, err
	}

	cf, err := s.explainer.DraftClassFeedback(ctx, a, r)
	if err != nil {
		return nil, err
	}
	pkg.Summary = cf.Text()
	pkg.SummaryStatus = feedback.StatusPending
	if err := s.repos.Feedback.Save(ctx, a.ID, pkg); err != nil {
		return nil, fmt.Errorf("save feedback: %w", err)
	}

	s.activity(ctx, fmt.Sprintf("AI summary drafted for %q", a.Title), store.ActivityInfo)
	return pkg, nil
}

// Feedback returns the stored drafts, or ErrNoFeedback.
func (s *Service) Feedback(ctx context.Context, assignmentID string) (*feedback.Package, error) {
	pkg, err := s.repos.Feedback.Get(ctx, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("load feedback: %w", err)
	}
	if pkg == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoFeedback, assignmentID)
	}
	return pkg, nil
}

// SetDraftStatus approves or rejects one draft. target is "summary",
// "question:<index>" or "student:<id>".
func (s *Service) SetDraftStatus(ctx context.Context, assignmentID, target string, status feedback.Status) (*feedback.Package, error) {
	pkg, err := s.Feedback(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if err := pkg.SetStatus(target, status); err != nil {
		return nil, err
	}
	if err := s.repos.Feedback.Save(ctx, assignmentID, pkg); err != nil {
		return nil, fmt.Errorf("save feedback: %w", err)
	}

	kind := store.ActivitySuccess
	if status == feedback.StatusRejected {
		kind = store.ActivityWarning
	}
	s.activity(ctx, fmt.Sprintf("Marked %s %s", target, status), kind)
	return pkg, nil
}

// MistakeExplanation pairs a mistake pattern with the model's reading of it.
type MistakeExplanation struct {
	Pattern     analysis.MistakePattern
	Explanation *insight.Explanation
}

// ExplainMistakes asks the model about every mistake pattern found for
// question qi (zero-based).
func (s *Service) ExplainMistakes(ctx context.Context, assignmentID string, qi int) ([]MistakeExplanation, error) {
	a, err := s.Assignment(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if qi < 0 || qi >= len(a.Questions) {
		return nil, fmt.Errorf("question %d out of range: %q has %d questions", qi, a.Title, len(a.Questions))
	}
	r, err := s.Report(ctx, a.ID)
	if err != nil {
		return nil, err
	}

	var out []MistakeExplanation
	for _, qm := range r.MistakesByQuestion {
		if qm.QuestionIndex != qi {
			continue
		}
		for _, m := range qm.Mistakes {
			exp, err := s.explainer.ExplainMistake(ctx, a.Questions[qi], m)
			if err != nil {
				return out, err
			}
			out = append(out, MistakeExplanation{Pattern: m, Explanation: exp})
		}
	}
	return out, nil
}
