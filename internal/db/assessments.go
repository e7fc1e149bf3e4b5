package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// FitAssessmentCreateInput is used when storing a new assessment
type FitAssessmentCreateInput struct {
	JobID           uuid.UUID
	ModelName       string
	Score           int
	Summary         string
	Strengths       []string
	Gaps            []string
	Recommendations string
	KeyInsights     string
	ContextFiles    []string
}

// CreateFitAssessment stores a generated assessment for a job
func (db *DB) CreateFitAssessment(ctx context.Context, input *FitAssessmentCreateInput) (*FitAssessment, error) {
	strengthsJSON, err := json.Marshal(input.Strengths)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal strengths: %w", err)
	}
	gapsJSON, err := json.Marshal(input.Gaps)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal gaps: %w", err)
	}
	contextJSON, err := json.Marshal(input.ContextFiles)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal context files: %w", err)
	}

	var a FitAssessment
	err = db.pool.QueryRow(ctx,
		`INSERT INTO fit_assessments (job_id, model_name, score, summary, strengths,
		                              gaps, recommendations, key_insights, context_files)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, job_id, model_name, score, summary, recommendations, key_insights, created_at`,
		input.JobID, input.ModelName, input.Score, input.Summary, strengthsJSON,
		gapsJSON, input.Recommendations, input.KeyInsights, contextJSON,
	).Scan(&a.ID, &a.JobID, &a.ModelName, &a.Score, &a.Summary,
		&a.Recommendations, &a.KeyInsights, &a.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create fit assessment: %w", err)
	}

	a.Strengths = input.Strengths
	a.Gaps = input.Gaps
	a.ContextFiles = input.ContextFiles
	return &a, nil
}

func scanAssessment(row pgx.Row) (*FitAssessment, error) {
	var a FitAssessment
	var strengthsJSON, gapsJSON, contextJSON []byte

	err := row.Scan(&a.ID, &a.JobID, &a.ModelName, &a.Score, &a.Summary,
		&strengthsJSON, &gapsJSON, &a.Recommendations, &a.KeyInsights,
		&contextJSON, &a.CreatedAt)
	if err != nil {
		return nil, err
	}

	if strengthsJSON != nil {
		_ = json.Unmarshal(strengthsJSON, &a.Strengths)
	}
	if gapsJSON != nil {
		_ = json.Unmarshal(gapsJSON, &a.Gaps)
	}
	if contextJSON != nil {
		_ = json.Unmarshal(contextJSON, &a.ContextFiles)
	}
	return &a, nil
}

const assessmentColumns = `id, job_id, model_name, score, summary, strengths,
	 gaps, recommendations, key_insights, context_files, created_at`

// GetFitAssessment retrieves an assessment by ID. Returns nil if not found.
func (db *DB) GetFitAssessment(ctx context.Context, id uuid.UUID) (*FitAssessment, error) {
	a, err := scanAssessment(db.pool.QueryRow(ctx,
		`SELECT `+assessmentColumns+` FROM fit_assessments WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get fit assessment: %w", err)
	}
	return a, nil
}

// ListFitAssessments retrieves all assessments for a job, newest first
func (db *DB) ListFitAssessments(ctx context.Context, jobID uuid.UUID) ([]FitAssessment, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+assessmentColumns+` FROM fit_assessments
		 WHERE job_id = $1 ORDER BY created_at DESC`,
		jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list fit assessments: %w", err)
	}
	defer rows.Close()

	var assessments []FitAssessment
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fit assessment: %w", err)
		}
		assessments = append(assessments, *a)
	}
	return assessments, nil
}

// DeleteFitAssessment removes a single assessment
func (db *DB) DeleteFitAssessment(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM fit_assessments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete fit assessment: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("fit assessment not found: %s", id)
	}
	return nil
}

// DeleteFitAssessmentsByJob removes all assessments for a job, returning the count
func (db *DB) DeleteFitAssessmentsByJob(ctx context.Context, jobID uuid.UUID) (int, error) {
	result, err := db.pool.Exec(ctx, `DELETE FROM fit_assessments WHERE job_id = $1`, jobID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete fit assessments: %w", err)
	}
	return int(result.RowsAffected()), nil
}
