package store

import (
	"context"
	"encoding/json"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
	"golang.org/x/mod/semver"

	"github.com/abhisek/answerlens/internal/analysis"
)

type reportRepo struct {
	s *Store
}

func (r *reportRepo) Save(ctx context.Context, report *analysis.AnalysisReport) error {
	body, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	version := report.SchemaVersion
	if version == "" {
		version = analysis.SchemaVersion
	}

	ins := r.s.builder().Insert(reportsTable.Name).
		Columns("assignment_id", "schema_version", "body", "generated_at").
		Values(report.AssignmentID, version, string(body), report.GeneratedAt.UnixMilli()).
		OnConflict(entsql.ConflictColumns("assignment_id"), entsql.ResolveWithNewValues())
	if err := execStmt(ctx, r.s.db, ins); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	return nil
}

func (r *reportRepo) Latest(ctx context.Context, assignmentID string) (*analysis.AnalysisReport, error) {
	b := r.s.builder()
	sel := b.Select("schema_version", "body").
		From(b.Table(reportsTable.Name)).
		Where(entsql.EQ("assignment_id", assignmentID))

	rows, err := queryStmt(ctx, r.s.db, sel)
	if err != nil {
		return nil, fmt.Errorf("query report: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	var version, body string
	if err := rows.Scan(&version, &body); err != nil {
		return nil, fmt.Errorf("scan report: %w", err)
	}
	return decodeReport(version, body)
}

func (r *reportRepo) MistakePatternTotal(ctx context.Context) (int, error) {
	b := r.s.builder()
	sel := b.Select("schema_version", "body").From(b.Table(reportsTable.Name))

	rows, err := queryStmt(ctx, r.s.db, sel)
	if err != nil {
		return 0, fmt.Errorf("query reports: %w", err)
	}
	defer rows.Close()

	total := 0
	for rows.Next() {
		var version, body string
		if err := rows.Scan(&version, &body); err != nil {
			return 0, fmt.Errorf("scan report: %w", err)
		}
		report, err := decodeReport(version, body)
		if err != nil {
			// Stale reports are regenerated on demand and not counted.
			continue
		}
		total += report.MistakeCount()
	}
	return total, rows.Err()
}

// Compatible reports whether a report stamped with version can be decoded
// by the running analyzer.
func Compatible(version string) bool {
	return semver.IsValid(version) && semver.Major(version) == semver.Major(analysis.SchemaVersion)
}

func decodeReport(version, body string) (*analysis.AnalysisReport, error) {
	if !Compatible(version) {
		return nil, fmt.Errorf("%w: %s (running %s)", ErrStaleReport, version, analysis.SchemaVersion)
	}
	var report analysis.AnalysisReport
	if err := json.Unmarshal([]byte(body), &report); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &report, nil
}
