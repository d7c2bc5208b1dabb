package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/answerlens/internal/feedback"
)

type feedbackRepo struct {
	s *Store
}

func (r *feedbackRepo) Save(ctx context.Context, assignmentID string, pkg *feedback.Package) error {
	body, err := json.Marshal(pkg)
	if err != nil {
		return fmt.Errorf("marshal feedback: %w", err)
	}
	ins := r.s.builder().Insert(feedbackTable.Name).
		Columns("assignment_id", "body", "updated_at").
		Values(assignmentID, string(body), time.Now().UnixMilli()).
		OnConflict(entsql.ConflictColumns("assignment_id"), entsql.ResolveWithNewValues())
	if err := execStmt(ctx, r.s.db, ins); err != nil {
		return fmt.Errorf("save feedback: %w", err)
	}
	return nil
}

func (r *feedbackRepo) Get(ctx context.Context, assignmentID string) (*feedback.Package, error) {
	b := r.s.builder()
	sel := b.Select("body").
		From(b.Table(feedbackTable.Name)).
		Where(entsql.EQ("assignment_id", assignmentID))

	rows, err := queryStmt(ctx, r.s.db, sel)
	if err != nil {
		return nil, fmt.Errorf("query feedback: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	var body string
	if err := rows.Scan(&body); err != nil {
		return nil, fmt.Errorf("scan feedback: %w", err)
	}
	var pkg feedback.Package
	if err := json.Unmarshal([]byte(body), &pkg); err != nil {
		return nil, fmt.Errorf("decode feedback: %w", err)
	}
	return &pkg, nil
}

func (r *feedbackRepo) Count(ctx context.Context) (int, error) {
	return countRows(ctx, r.s, feedbackTable.Name)
}
