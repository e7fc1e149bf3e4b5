package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// AppDraftCreateInput is used when storing a generated draft
type AppDraftCreateInput struct {
	JobID            uuid.UUID
	ModelName        string
	CVContent        string
	LetterContent    string
	SourceCVPath     string
	SourceLetterPath string
	Notes            string
}

const draftColumns = `id, job_id, model_name, cv_content, letter_content,
	 source_cv_path, source_letter_path, notes, created_at`

func scanDraft(row pgx.Row) (*AppDraft, error) {
	var d AppDraft
	err := row.Scan(&d.ID, &d.JobID, &d.ModelName, &d.CVContent, &d.LetterContent,
		&d.SourceCVPath, &d.SourceLetterPath, &d.Notes, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// CreateAppDraft stores a generated draft for a job
func (db *DB) CreateAppDraft(ctx context.Context, input *AppDraftCreateInput) (*AppDraft, error) {
	d, err := scanDraft(db.pool.QueryRow(ctx,
		`INSERT INTO app_drafts (job_id, model_name, cv_content, letter_content,
		                         source_cv_path, source_letter_path, notes)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING `+draftColumns,
		input.JobID, input.ModelName, nullIfEmpty(input.CVContent),
		nullIfEmpty(input.LetterContent), nullIfEmpty(input.SourceCVPath),
		nullIfEmpty(input.SourceLetterPath), input.Notes))
	if err != nil {
		return nil, fmt.Errorf("failed to create app draft: %w", err)
	}
	return d, nil
}

// GetAppDraft retrieves a draft by ID. Returns nil if not found.
func (db *DB) GetAppDraft(ctx context.Context, id uuid.UUID) (*AppDraft, error) {
	d, err := scanDraft(db.pool.QueryRow(ctx,
		`SELECT `+draftColumns+` FROM app_drafts WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get app draft: %w", err)
	}
	return d, nil
}

// ListAppDrafts retrieves all drafts for a job, newest first
func (db *DB) ListAppDrafts(ctx context.Context, jobID uuid.UUID) ([]AppDraft, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+draftColumns+` FROM app_drafts
		 WHERE job_id = $1 ORDER BY created_at DESC`,
		jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list app drafts: %w", err)
	}
	defer rows.Close()

	var drafts []AppDraft
	for rows.Next() {
		d, err := scanDraft(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan app draft: %w", err)
		}
		drafts = append(drafts, *d)
	}
	return drafts, nil
}

// DeleteAppDraft removes a single draft
func (db *DB) DeleteAppDraft(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM app_drafts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete app draft: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("app draft not found: %s", id)
	}
	return nil
}

// DeleteAppDraftsByJob removes all drafts for a job, returning the count
func (db *DB) DeleteAppDraftsByJob(ctx context.Context, jobID uuid.UUID) (int, error) {
	result, err := db.pool.Exec(ctx, `DELETE FROM app_drafts WHERE job_id = $1`, jobID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete app drafts: %w", err)
	}
	return int(result.RowsAffected()), nil
}
