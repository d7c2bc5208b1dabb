package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/abhisek/answerlens/internal/analysis"
)

type assignmentRepo struct {
	s *Store
}

func (r *assignmentRepo) Save(ctx context.Context, a *analysis.Assignment) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}

	questions, err := json.Marshal(a.Questions)
	if err != nil {
		return fmt.Errorf("marshal questions: %w", err)
	}
	keywords, err := json.Marshal(a.ModelKeywords)
	if err != nil {
		return fmt.Errorf("marshal model keywords: %w", err)
	}

	ins := r.s.builder().Insert(assignmentsTable.Name).
		Columns("id", "title", "subject", "questions", "model_keywords", "created_at").
		Values(a.ID, a.Title, a.Subject, string(questions), string(keywords), a.CreatedAt.UnixMilli()).
		OnConflict(entsql.ConflictColumns("id"), entsql.ResolveWithNewValues())
	if err := execStmt(ctx, r.s.db, ins); err != nil {
		return fmt.Errorf("save assignment: %w", err)
	}
	return nil
}

func (r *assignmentRepo) Get(ctx context.Context, id string) (*analysis.Assignment, error) {
	sel := r.selectAssignments().Where(entsql.EQ("id", id))
	list, err := r.scan(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("get assignment: %w", err)
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}

func (r *assignmentRepo) List(ctx context.Context) ([]*analysis.Assignment, error) {
	sel := r.selectAssignments().OrderBy("created_at", "id")
	list, err := r.scan(ctx, sel)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	return list, nil
}

func (r *assignmentRepo) Delete(ctx context.Context, id string) error {
	b := r.s.builder()
	return r.s.inTx(ctx, func(tx *sql.Tx) error {
		stmts := []statement{
			b.Delete(submissionsTable.Name).Where(entsql.EQ("assignment_id", id)),
			b.Delete(reportsTable.Name).Where(entsql.EQ("assignment_id", id)),
			b.Delete(feedbackTable.Name).Where(entsql.EQ("assignment_id", id)),
			b.Delete(assignmentsTable.Name).Where(entsql.EQ("id", id)),
		}
		for _, st := range stmts {
			if err := execStmt(ctx, tx, st); err != nil {
				return fmt.Errorf("delete assignment %s: %w", id, err)
			}
		}
		return nil
	})
}

func (r *assignmentRepo) selectAssignments() *entsql.Selector {
	b := r.s.builder()
	return b.Select("id", "title", "subject", "questions", "model_keywords", "created_at").
		From(b.Table(assignmentsTable.Name))
}

func (r *assignmentRepo) scan(ctx context.Context, sel *entsql.Selector) ([]*analysis.Assignment, error) {
	rows, err := queryStmt(ctx, r.s.db, sel)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*analysis.Assignment
	for rows.Next() {
		var (
			a                   analysis.Assignment
			questions, keywords string
			createdAt           int64
		)
		if err := rows.Scan(&a.ID, &a.Title, &a.Subject, &questions, &keywords, &createdAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(questions), &a.Questions); err != nil {
			return nil, fmt.Errorf("decode questions of %s: %w", a.ID, err)
		}
		if err := json.Unmarshal([]byte(keywords), &a.ModelKeywords); err != nil {
			return nil, fmt.Errorf("decode model keywords of %s: %w", a.ID, err)
		}
		a.CreatedAt = time.UnixMilli(createdAt)
		out = append(out, &a)
	}
	return out, rows.Err()
}
