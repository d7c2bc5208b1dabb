package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/abhisek/answerlens/internal/analysis"
)

type submissionRepo struct {
	s *Store
}

// appendBatchSize keeps multi-row inserts under SQLite's bound-variable
// limit.
const appendBatchSize = 500

func (r *submissionRepo) Append(ctx context.Context, subs []analysis.Submission) error {
	if len(subs) == 0 {
		return nil
	}
	return r.s.inTx(ctx, func(tx *sql.Tx) error {
		for start := 0; start < len(subs); start += appendBatchSize {
			end := min(start+appendBatchSize, len(subs))
			ins := r.s.builder().Insert(submissionsTable.Name).
				Columns("id", "assignment_id", "student_id", "question_index", "answer_text", "score")
			for i := start; i < end; i++ {
				s := &subs[i]
				if s.ID == "" {
					s.ID = uuid.New().String()
				}
				var score sql.NullFloat64
				if s.Score != nil {
					score = sql.NullFloat64{Float64: *s.Score, Valid: true}
				}
				ins.Values(s.ID, s.AssignmentID, s.StudentID, s.QuestionIndex, s.AnswerText, score)
			}
			if err := execStmt(ctx, tx, ins); err != nil {
				return fmt.Errorf("append submissions: %w", err)
			}
		}
		return nil
	})
}

func (r *submissionRepo) ForAssignment(ctx context.Context, assignmentID string) ([]analysis.Submission, error) {
	b := r.s.builder()
	sel := b.Select("id", "assignment_id", "student_id", "question_index", "answer_text", "score").
		From(b.Table(submissionsTable.Name)).
		Where(entsql.EQ("assignment_id", assignmentID)).
		OrderBy("seq")

	rows, err := queryStmt(ctx, r.s.db, sel)
	if err != nil {
		return nil, fmt.Errorf("query submissions: %w", err)
	}
	defer rows.Close()

	out := []analysis.Submission{}
	for rows.Next() {
		var (
			s     analysis.Submission
			score sql.NullFloat64
		)
		if err := rows.Scan(&s.ID, &s.AssignmentID, &s.StudentID, &s.QuestionIndex, &s.AnswerText, &score); err != nil {
			return nil, fmt.Errorf("scan submission: %w", err)
		}
		if score.Valid {
			s.Score = analysis.Score(score.Float64)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *submissionRepo) ClearAssignment(ctx context.Context, assignmentID string) error {
	del := r.s.builder().Delete(submissionsTable.Name).Where(entsql.EQ("assignment_id", assignmentID))
	if err := execStmt(ctx, r.s.db, del); err != nil {
		return fmt.Errorf("clear submissions: %w", err)
	}
	return nil
}

func (r *submissionRepo) Count(ctx context.Context) (int, error) {
	return countRows(ctx, r.s, submissionsTable.Name)
}

// countRows returns the number of rows in table.
func countRows(ctx context.Context, s *Store, table string) (int, error) {
	b := s.builder()
	sel := b.Select(entsql.Count("*")).From(b.Table(table))
	rows, err := queryStmt(ctx, s.db, sel)
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	defer rows.Close()

	var n int
	if rows.Next() {
		if err := rows.Scan(&n); err != nil {
			return 0, fmt.Errorf("count %s: %w", table, err)
		}
	}
	return n, rows.Err()
}
