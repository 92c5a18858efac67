package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/siddhant230/draftclaim"
)

// Compile-time interface verification.
var _ draftclaim.RunService = (*RunService)(nil)

// RunService implements draftclaim.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// CreateRun records a new run.
func (s *RunService) CreateRun(ctx context.Context, run *draftclaim.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	run.ID = uuid.New().String()
	now := time.Now().UTC()
	run.CreatedAt = now
	run.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, kind, model, disclosure_path, claims_path, disclosure_hash, claims_hash,
			question_count, approved_count, report_path, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, string(run.Kind), run.Model, run.DisclosurePath, run.ClaimsPath,
		run.DisclosureHash, run.ClaimsHash, run.QuestionCount, run.ApprovedCount, run.ReportPath,
		run.CreatedAt.Format(time.RFC3339), run.UpdatedAt.Format(time.RFC3339))

	return err
}

// FindRunByID retrieves a run by ID.
func (s *RunService) FindRunByID(ctx context.Context, id string) (*draftclaim.Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, kind, model, disclosure_path, claims_path, disclosure_hash, claims_hash,
			question_count, approved_count, report_path, created_at, updated_at
		FROM runs
		WHERE id = ?
	`, id)

	run, err := scanRun(row.Scan)
	if err == sql.ErrNoRows {
		return nil, draftclaim.Errorf(draftclaim.ENOTFOUND, "run not found")
	}
	if err != nil {
		return nil, err
	}

	return run, nil
}

// FindRuns retrieves runs matching the filter, newest first.
func (s *RunService) FindRuns(ctx context.Context, filter draftclaim.RunFilter) ([]*draftclaim.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString(`SELECT id, kind, model, disclosure_path, claims_path, disclosure_hash, claims_hash,
		question_count, approved_count, report_path, created_at, updated_at FROM runs WHERE 1=1`)

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Kind != nil {
		query.WriteString(" AND kind = ?")
		args = append(args, string(*filter.Kind))
	}
	if filter.Model != nil {
		query.WriteString(" AND model = ?")
		args = append(args, *filter.Model)
	}

	query.WriteString(" ORDER BY created_at DESC, id")

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*draftclaim.Run
	for rows.Next() {
		run, err := scanRun(rows.Scan)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// UpdateRun updates an existing run.
func (s *RunService) UpdateRun(ctx context.Context, id string, upd draftclaim.RunUpdate) (*draftclaim.Run, error) {
	// First check if run exists
	run, err := s.FindRunByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Apply updates
	if upd.ApprovedCount != nil {
		run.ApprovedCount = *upd.ApprovedCount
	}
	if upd.ReportPath != nil {
		run.ReportPath = *upd.ReportPath
	}

	// Validate before persisting
	if err := run.Validate(); err != nil {
		return nil, err
	}

	run.UpdatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		UPDATE runs
		SET approved_count = ?, report_path = ?, updated_at = ?
		WHERE id = ?
	`, run.ApprovedCount, run.ReportPath, run.UpdatedAt.Format(time.RFC3339), id)

	if err != nil {
		return nil, err
	}

	return run, nil
}

// DeleteRun permanently removes a run. Archived answers cascade.
func (s *RunService) DeleteRun(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return draftclaim.Errorf(draftclaim.ENOTFOUND, "run not found")
	}

	return nil
}

// scanRun reads one runs row through the given scan function.
func scanRun(scan func(dest ...any) error) (*draftclaim.Run, error) {
	var run draftclaim.Run
	var kind, createdAt, updatedAt string

	if err := scan(&run.ID, &kind, &run.Model, &run.DisclosurePath, &run.ClaimsPath,
		&run.DisclosureHash, &run.ClaimsHash, &run.QuestionCount, &run.ApprovedCount, &run.ReportPath,
		&createdAt, &updatedAt); err != nil {
		return nil, err
	}

	run.Kind = draftclaim.RunKind(kind)

	var err error
	run.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}
	run.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at")
	if err != nil {
		return nil, err
	}

	return &run, nil
}
