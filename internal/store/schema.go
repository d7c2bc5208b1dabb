package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// textSize forces an unbounded text column on every dialect.
const textSize = 2147483647

var (
	assignmentsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString, Size: 64},
		{Name: "title", Type: field.TypeString, Size: textSize},
		{Name: "subject", Type: field.TypeString, Size: textSize},
		{Name: "questions", Type: field.TypeString, Size: textSize},
		{Name: "model_keywords", Type: field.TypeString, Size: textSize},
		{Name: "created_at", Type: field.TypeInt64},
	}
	assignmentsTable = &schema.Table{
		Name:       "assignments",
		Columns:    assignmentsColumns,
		PrimaryKey: []*schema.Column{assignmentsColumns[0]},
	}

	submissionsColumns = []*schema.Column{
		{Name: "seq", Type: field.TypeInt, Increment: true},
		{Name: "id", Type: field.TypeString, Size: 64, Unique: true},
		{Name: "assignment_id", Type: field.TypeString, Size: 64},
		{Name: "student_id", Type: field.TypeString, Size: textSize},
		{Name: "question_index", Type: field.TypeInt},
		{Name: "answer_text", Type: field.TypeString, Size: textSize},
		{Name: "score", Type: field.TypeFloat64, Nullable: true},
	}
	submissionsTable = &schema.Table{
		Name:       "submissions",
		Columns:    submissionsColumns,
		PrimaryKey: []*schema.Column{submissionsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "submission_assignment_id", Columns: []*schema.Column{submissionsColumns[2]}},
		},
	}

	reportsColumns = []*schema.Column{
		{Name: "assignment_id", Type: field.TypeString, Size: 64},
		{Name: "schema_version", Type: field.TypeString, Size: 32},
		{Name: "body", Type: field.TypeString, Size: textSize},
		{Name: "generated_at", Type: field.TypeInt64},
	}
	reportsTable = &schema.Table{
		Name:       "reports",
		Columns:    reportsColumns,
		PrimaryKey: []*schema.Column{reportsColumns[0]},
	}

	feedbackColumns = []*schema.Column{
		{Name: "assignment_id", Type: field.TypeString, Size: 64},
		{Name: "body", Type: field.TypeString, Size: textSize},
		{Name: "updated_at", Type: field.TypeInt64},
	}
	feedbackTable = &schema.Table{
		Name:       "feedback_packages",
		Columns:    feedbackColumns,
		PrimaryKey: []*schema.Column{feedbackColumns[0]},
	}

	activityColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "message", Type: field.TypeString, Size: textSize},
		{Name: "kind", Type: field.TypeString, Size: 16},
		{Name: "created_at", Type: field.TypeInt64},
	}
	activityTable = &schema.Table{
		Name:       "activity_log",
		Columns:    activityColumns,
		PrimaryKey: []*schema.Column{activityColumns[0]},
	}

	llmEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "created_at", Type: field.TypeInt64},
		{Name: "provider", Type: field.TypeString, Size: 64},
		{Name: "model", Type: field.TypeString, Size: 128},
		{Name: "purpose", Type: field.TypeString, Size: 64},
		{Name: "input_tokens", Type: field.TypeInt},
		{Name: "output_tokens", Type: field.TypeInt},
		{Name: "latency_ms", Type: field.TypeInt64},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Size: textSize},
		{Name: "request_body", Type: field.TypeString, Size: textSize},
		{Name: "response_body", Type: field.TypeString, Size: textSize},
	}
	llmEventsTable = &schema.Table{
		Name:       "llm_request_events",
		Columns:    llmEventsColumns,
		PrimaryKey: []*schema.Column{llmEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmrequestevent_purpose", Columns: []*schema.Column{llmEventsColumns[4]}},
		},
	}

	tables = []*schema.Table{
		assignmentsTable,
		submissionsTable,
		reportsTable,
		feedbackTable,
		activityTable,
		llmEventsTable,
	}
)

// migrate creates missing tables, columns and indexes.
func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("init migrate: %w", err)
	}
	return m.Create(ctx, tables...)
}
