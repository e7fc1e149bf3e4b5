package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const jobColumns = `id, url, title, company, location, deadline, department,
	 hiring_manager, full_ad, source_title, github_repo, github_issue_number,
	 github_issue_url, posted_at, created_at, updated_at`

func scanJob(row pgx.Row) (*Job, error) {
	var j Job
	err := row.Scan(&j.ID, &j.URL, &j.Title, &j.Company, &j.Location, &j.Deadline,
		&j.Department, &j.HiringManager, &j.FullAd, &j.SourceTitle,
		&j.GitHubRepo, &j.GitHubIssueNumber, &j.GitHubIssueURL, &j.PostedAt,
		&j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// GetJobByID retrieves a job by its ID. Returns nil if not found.
func (db *DB) GetJobByID(ctx context.Context, id uuid.UUID) (*Job, error) {
	j, err := scanJob(db.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return j, nil
}

// GetJobByURL retrieves a job by its posting URL. Returns nil if not found.
func (db *DB) GetJobByURL(ctx context.Context, url string) (*Job, error) {
	j, err := scanJob(db.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE url = $1`, url))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return j, nil
}

// UpsertJob creates a job record, or replaces the extracted fields of an
// existing record with the same URL.
func (db *DB) UpsertJob(ctx context.Context, input *JobCreateInput) (*Job, error) {
	j, err := scanJob(db.pool.QueryRow(ctx,
		`INSERT INTO jobs (url, title, company, location, deadline, department,
		                   hiring_manager, full_ad, source_title)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (url) DO UPDATE SET
		     title = $2,
		     company = $3,
		     location = $4,
		     deadline = $5,
		     department = $6,
		     hiring_manager = $7,
		     full_ad = $8,
		     source_title = $9,
		     updated_at = NOW()
		 RETURNING `+jobColumns,
		input.URL, input.Title, input.Company, input.Location, input.Deadline,
		input.Department, input.HiringManager, input.FullAd,
		nullIfEmpty(input.SourceTitle)))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert job: %w", err)
	}
	return j, nil
}

// ListJobs retrieves jobs ordered by creation time, newest first
func (db *DB) ListJobs(ctx context.Context, limit int) ([]Job, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := db.pool.Query(ctx,
		`SELECT `+jobColumns+` FROM jobs ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()
	return collectJobs(rows)
}

// FindJobs searches title, company, department, location, and ad text
// case-insensitively for the query substring.
func (db *DB) FindJobs(ctx context.Context, query string) ([]Job, error) {
	pattern := "%" + query + "%"
	rows, err := db.pool.Query(ctx,
		`SELECT `+jobColumns+` FROM jobs
		 WHERE title ILIKE $1 OR company ILIKE $1 OR department ILIKE $1
		    OR location ILIKE $1 OR full_ad ILIKE $1
		 ORDER BY created_at DESC`,
		pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to find jobs: %w", err)
	}
	defer rows.Close()
	return collectJobs(rows)
}

func collectJobs(rows pgx.Rows) ([]Job, error) {
	var jobs []Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, *j)
	}
	return jobs, nil
}

// DeleteJob removes a job and its assessments and drafts (via cascade)
func (db *DB) DeleteJob(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("job not found: %s", id)
	}
	return nil
}

// UpdateJobField sets a single whitelisted column. A nil value clears the
// column to its empty default.
func (db *DB) UpdateJobField(ctx context.Context, id uuid.UUID, field string, value *string) (*Job, error) {
	col, ok := UpdatableField(field)
	if !ok {
		return nil, fmt.Errorf("field %q is not updatable (valid: %v)", field, UpdatableFieldNames())
	}

	v := ""
	if value != nil {
		v = *value
	}

	j, err := scanJob(db.pool.QueryRow(ctx,
		fmt.Sprintf(`UPDATE jobs SET %s = $1, updated_at = NOW() WHERE id = $2
		 RETURNING `+jobColumns, col),
		v, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("job not found: %s", id)
		}
		return nil, fmt.Errorf("failed to update job: %w", err)
	}
	return j, nil
}

// ResolveJob looks a job up by UUID, falling back to posting URL.
// Returns nil if neither matches.
func (db *DB) ResolveJob(ctx context.Context, ref string) (*Job, error) {
	if id, err := uuid.Parse(ref); err == nil {
		return db.GetJobByID(ctx, id)
	}
	return db.GetJobByURL(ctx, ref)
}

// SetGitHubIssue records the issue created for a job
func (db *DB) SetGitHubIssue(ctx context.Context, id uuid.UUID, repo string, number int, issueURL string, postedAt time.Time) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE jobs SET github_repo = $1, github_issue_number = $2,
		        github_issue_url = $3, posted_at = $4, updated_at = NOW()
		 WHERE id = $5`,
		repo, number, issueURL, postedAt, id)
	if err != nil {
		return fmt.Errorf("failed to record github issue: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("job not found: %s", id)
	}
	return nil
}
