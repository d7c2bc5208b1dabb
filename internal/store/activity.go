package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

type activityRepo struct {
	s *Store
}

func (r *activityRepo) Log(ctx context.Context, msg string, kind ActivityKind) error {
	if kind == "" {
		kind = ActivityInfo
	}
	b := r.s.builder()
	return r.s.inTx(ctx, func(tx *sql.Tx) error {
		ins := b.Insert(activityTable.Name).
			Columns("message", "kind", "created_at").
			Values(msg, string(kind), time.Now().UnixMilli())
		if err := execStmt(ctx, tx, ins); err != nil {
			return fmt.Errorf("log activity: %w", err)
		}

		// The oldest entry still retained.
		sel := b.Select("id").
			From(b.Table(activityTable.Name)).
			OrderBy(entsql.Desc("id")).
			Limit(1).
			Offset(MaxActivityEntries - 1)
		rows, err := queryStmt(ctx, tx, sel)
		if err != nil {
			return fmt.Errorf("prune activity: %w", err)
		}
		var cutoff int
		found := rows.Next()
		if found {
			err = rows.Scan(&cutoff)
		}
		rows.Close()
		if err != nil {
			return fmt.Errorf("prune activity: %w", err)
		}
		if !found {
			return nil
		}

		del := b.Delete(activityTable.Name).Where(entsql.LT("id", cutoff))
		if err := execStmt(ctx, tx, del); err != nil {
			return fmt.Errorf("prune activity: %w", err)
		}
		return nil
	})
}

func (r *activityRepo) Recent(ctx context.Context, limit int) ([]Activity, error) {
	b := r.s.builder()
	sel := b.Select("id", "message", "kind", "created_at").
		From(b.Table(activityTable.Name)).
		OrderBy(entsql.Desc("id"))
	if limit > 0 {
		sel.Limit(limit)
	}

	rows, err := queryStmt(ctx, r.s.db, sel)
	if err != nil {
		return nil, fmt.Errorf("query activity: %w", err)
	}
	defer rows.Close()

	var out []Activity
	for rows.Next() {
		var (
			a         Activity
			kind      string
			createdAt int64
		)
		if err := rows.Scan(&a.ID, &a.Message, &kind, &createdAt); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		a.Kind = ActivityKind(kind)
		a.Timestamp = time.UnixMilli(createdAt)
		out = append(out, a)
	}
	return out, rows.Err()
}
