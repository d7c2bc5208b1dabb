// Package review is the instructor workflow around the analytics engine:
// importing answers, analyzing and persisting reports, and drafting and
// approving feedback.
package review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/answerlens/internal/analysis"
	"github.com/abhisek/answerlens/internal/insight"
	"github.com/abhisek/answerlens/internal/store"
)

var (
	// ErrAssignmentNotFound is returned for an unknown assignment ID.
	ErrAssignmentNotFound = errors.New("assignment not found")

	// ErrNoFeedback is returned when an assignment has no drafted feedback.
	ErrNoFeedback = errors.New("no feedback drafted for assignment")
)

// Repos are the repositories the service reads and writes.
type Repos struct {
	Assignments store.AssignmentRepo
	Submissions store.SubmissionRepo
	Reports     store.ReportRepo
	Feedback    store.FeedbackRepo
	Activity    store.ActivityRepo
}

// ReposFromStore returns the repositories backed by s.
func ReposFromStore(s *store.Store) Repos {
	return Repos{
		Assignments: s.AssignmentRepo(),
		Submissions: s.SubmissionRepo(),
		Reports:     s.ReportRepo(),
		Feedback:    s.FeedbackRepo(),
		Activity:    s.ActivityRepo(),
	}
}

// Options configures a Service.
type Options struct {
	Analysis analysis.Options

	// AutoScore fills missing scores with the keyword heuristic before
	// analysis. Stored submissions are never modified.
	AutoScore bool

	// Explainer enables model-written feedback and mistake explanations.
	Explainer *insight.Explainer

	Logger *slog.Logger
}

// Service coordinates persistence, analysis and feedback drafting.
type Service struct {
	repos     Repos
	analyzer  *analysis.Analyzer
	autoScore bool
	explainer *insight.Explainer
	log       *slog.Logger
	now       func() time.Time
}

// NewService creates a Service.
func NewService(repos Repos, opts Options) *Service {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	analyzer := analysis.New(opts.Analysis)
	explainer := opts.Explainer
	if explainer == nil {
		explainer = insight.NewExplainer(nil, insight.DefaultConfig())
	}
	return &Service{
		repos:     repos,
		analyzer:  analyzer,
		autoScore: opts.AutoScore,
		explainer: explainer,
		log:       log,
		now:       analyzer.Options().Now,
	}
}

// ImportResult describes a completed import.
type ImportResult struct {
	AssignmentID string
	Submissions  int
}

// ImportBatch saves the batch's assignment and appends its submissions.
// Submissions inherit the assignment's ID.
func (s *Service) ImportBatch(ctx context.Context, b *Batch) (*ImportResult, error) {
	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("invalid batch: %w", err)
	}

	a := b.Assignment
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = s.now()
	}
	if err := s.repos.Assignments.Save(ctx, &a); err != nil {
		return nil, fmt.Errorf("save assignment: %w", err)
	}

	if b.Replace {
		if err := s.repos.Submissions.ClearAssignment(ctx, a.ID); err != nil {
			return nil, fmt.Errorf("clear submissions: %w", err)
		}
	}

	subs := make([]analysis.Submission, len(b.Submissions))
	for i, sub := range b.Submissions {
		sub.AssignmentID = a.ID
		subs[i] = sub
	}
	if err := s.repos.Submissions.Append(ctx, subs); err != nil {
		return nil, fmt.Errorf("save submissions: %w", err)
	}

	s.log.Info("imported batch", "assignment", a.ID, "submissions", len(subs))
	s.activity(ctx, fmt.Sprintf("Imported %d answers for %q", len(subs), a.Title), store.ActivitySuccess)
	return &ImportResult{AssignmentID: a.ID, Submissions: len(subs)}, nil
}

// Assignment returns the assignment or ErrAssignmentNotFound.
func (s *Service) Assignment(ctx context.Context, id string) (*analysis.Assignment, error) {
	a, err := s.repos.Assignments.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load assignment: %w", err)
	}
	if a == nil {
		return nil, fmt.Errorf("%w: %s", ErrAssignmentNotFound, id)
	}
	return a, nil
}

// Assignments lists stored assignments, oldest first.
func (s *Service) Assignments(ctx context.Context) ([]*analysis.Assignment, error) {
	return s.repos.Assignments.List(ctx)
}

// Submissions returns the snapshot analysis runs on: stored submissions,
// with missing scores filled when auto-scoring is enabled.
func (s *Service) Submissions(ctx context.Context, a *analysis.Assignment) ([]analysis.Submission, error) {
	subs, err := s.repos.Submissions.ForAssignment(ctx, a.ID)
	if err != nil {
		return nil, fmt.Errorf("load submissions: %w", err)
	}
	if s.autoScore {
		subs = analysis.FillMissingScores(s.analyzer.Tokenizer(), a, subs)
	}
	return subs, nil
}

// Analyze runs the analytics over the assignment's current submissions and
// replaces its stored report.
func (s *Service) Analyze(ctx context.Context, assignmentID string) (*analysis.AnalysisReport, error) {
	a, err := s.Assignment(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	subs, err := s.Submissions(ctx, a)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	report := s.analyzer.Analyze(a, subs)
	s.log.Debug("analysis complete",
		"assignment", a.ID,
		"submissions", len(subs),
		"elapsed", time.Since(start))

	if err := s.repos.Reports.Save(ctx, report); err != nil {
		return nil, fmt.Errorf("save report: %w", err)
	}

	s.activity(ctx, fmt.Sprintf("Analyzed %q: %d answers, %d mistake patterns",
		a.Title, report.TotalSubmissions, report.MistakeCount()), store.ActivitySuccess)
	return report, nil
}

// Report returns the stored report, running analysis when there is none
// or the stored one predates the current report schema.
func (s *Service) Report(ctx context.Context, assignmentID string) (*analysis.AnalysisReport, error) {
	r, err := s.repos.Reports.Latest(ctx, assignmentID)
	switch {
	case errors.Is(err, store.ErrStaleReport):
		s.log.Info("regenerating stale report", "assignment", assignmentID)
	case err != nil:
		return nil, fmt.Errorf("load report: %w", err)
	case r != nil:
		return r, nil
	}
	return s.Analyze(ctx, assignmentID)
}

// ReanalyzeAll analyzes every stored assignment. A failure is logged and
// the remaining assignments are still processed; the returned error
// joins all failures.
func (s *Service) ReanalyzeAll(ctx context.Context) (int, error) {
	assignments, err := s.repos.Assignments.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list assignments: %w", err)
	}

	var (
		done int
		errs []error
	)
	for _, a := range assignments {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if _, err := s.Analyze(ctx, a.ID); err != nil {
			s.log.Warn("re-analysis failed", "assignment", a.ID, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", a.ID, err))
			continue
		}
		done++
	}
	return done, errors.Join(errs...)
}

// Delete removes an assignment and everything stored for it.
func (s *Service) Delete(ctx context.Context, assignmentID string) error {
	a, err := s.Assignment(ctx, assignmentID)
	if err != nil {
		return err
	}
	if err := s.repos.Assignments.Delete(ctx, a.ID); err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	s.activity(ctx, fmt.Sprintf("Deleted %q", a.Title), store.ActivityWarning)
	return nil
}

// Activity returns the most recent activity entries, newest first.
func (s *Service) Activity(ctx context.Context, limit int) ([]store.Activity, error) {
	return s.repos.Activity.Recent(ctx, limit)
}

// ReportStats are the dashboard counters.
type ReportStats struct {
	Assignments     int `json:"assignments"`
	Submissions     int `json:"submissions"`
	MistakePatterns int `json:"mistakePatterns"`
	FeedbackDrafts  int `json:"feedbackDrafts"`
}

// Stats counts what is stored.
func (s *Service) Stats(ctx context.Context) (*ReportStats, error) {
	assignments, err := s.repos.Assignments.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	subs, err := s.repos.Submissions.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count submissions: %w", err)
	}
	mistakes, err := s.repos.Reports.MistakePatternTotal(ctx)
	if err != nil {
		return nil, fmt.Errorf("count mistake patterns: %w", err)
	}
	drafts, err := s.repos.Feedback.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("count feedback: %w", err)
	}
	return &ReportStats{
		Assignments:     len(assignments),
		Submissions:     subs,
		MistakePatterns: mistakes,
		FeedbackDrafts:  drafts,
	}, nil
}

// activity records a user-visible event. Failures are logged and dropped.
func (s *Service) activity(ctx context.Context, msg string, kind store.ActivityKind) {
	if err := s.repos.Activity.Log(ctx, msg, kind); err != nil {
		s.log.Warn("failed to log activity", "error", err)
	}
}
