package store

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/answerlens/internal/analysis"
	"github.com/abhisek/answerlens/internal/feedback"
)

// ErrStaleReport is returned when a stored report was produced by an
// incompatible analysis schema and must be regenerated.
var ErrStaleReport = errors.New("stored report has an incompatible schema version")

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	Purpose string    // exact purpose match when non-empty
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
}

// AssignmentRepo stores assignments keyed by ID.
type AssignmentRepo interface {
	// Save inserts or replaces an assignment. An empty ID is filled with a
	// new UUID.
	Save(ctx context.Context, a *analysis.Assignment) error

	// Get returns the assignment, or nil if it does not exist.
	Get(ctx context.Context, id string) (*analysis.Assignment, error)

	// List returns all assignments, oldest first.
	List(ctx context.Context) ([]*analysis.Assignment, error)

	// Delete removes the assignment with its submissions, report and
	// feedback.
	Delete(ctx context.Context, id string) error
}

// SubmissionRepo stores submission batches.
type SubmissionRepo interface {
	// Append adds submissions after any already stored. Submissions without
	// an ID get a new UUID.
	Append(ctx context.Context, subs []analysis.Submission) error

	// ForAssignment returns an assignment's submissions in insertion order.
	ForAssignment(ctx context.Context, assignmentID string) ([]analysis.Submission, error)

	// ClearAssignment removes every submission of an assignment.
	ClearAssignment(ctx context.Context, assignmentID string) error

	// Count returns the number of stored submissions.
	Count(ctx context.Context) (int, error)
}

// ReportRepo keeps the latest analysis report per assignment.
type ReportRepo interface {
	// Save replaces the assignment's report.
	Save(ctx context.Context, report *analysis.AnalysisReport) error

	// Latest returns the stored report, nil if none exists, or
	// ErrStaleReport when its schema major version differs from the
	// running analyzer's.
	Latest(ctx context.Context, assignmentID string) (*analysis.AnalysisReport, error)

	// MistakePatternTotal sums mistake patterns across all stored reports.
	MistakePatternTotal(ctx context.Context) (int, error)
}

// FeedbackRepo keeps one feedback package per assignment.
type FeedbackRepo interface {
	Save(ctx context.Context, assignmentID string, pkg *feedback.Package) error
	Get(ctx context.Context, assignmentID string) (*feedback.Package, error)
	Count(ctx context.Context) (int, error)
}

// ActivityKind categorizes an activity log entry.
type ActivityKind string

const (
	ActivityInfo    ActivityKind = "info"
	ActivitySuccess ActivityKind = "success"
	ActivityWarning ActivityKind = "warning"
	ActivityError   ActivityKind = "error"
)

// Activity is one activity log entry.
type Activity struct {
	ID        int
	Message   string
	Kind      ActivityKind
	Timestamp time.Time
}

// ActivityRepo is a bounded log of recent user-visible actions.
type ActivityRepo interface {
	// Log records a message, discarding entries beyond the newest
	// MaxActivityEntries.
	Log(ctx context.Context, msg string, kind ActivityKind) error

	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]Activity, error)
}

// MaxActivityEntries bounds the activity log.
const MaxActivityEntries = 50

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a stored LLM request event.
type LLMRequestEvent struct {
	ID        int
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates token usage for one purpose or model.
type LLMUsage struct {
	Purpose      string
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo records and queries LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns one event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMRequestEvent, error)

	// LLMUsageByPurpose aggregates usage per purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)

	// LLMUsageByModel aggregates usage per model.
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)
}
