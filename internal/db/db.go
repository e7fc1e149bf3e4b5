// Package db provides PostgreSQL storage for tracked job ads,
// fit assessments, and application drafts.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS jobs (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		url TEXT NOT NULL UNIQUE,
		title TEXT NOT NULL DEFAULT '',
		company TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		deadline TEXT NOT NULL DEFAULT '',
		department TEXT NOT NULL DEFAULT '',
		hiring_manager TEXT NOT NULL DEFAULT '',
		full_ad TEXT NOT NULL DEFAULT '',
		source_title TEXT,
		github_repo TEXT,
		github_issue_number INTEGER,
		github_issue_url TEXT,
		posted_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_jobs_company ON jobs (company)`,
	`CREATE INDEX IF NOT EXISTS idx_jobs_title ON jobs (title)`,
	`CREATE TABLE IF NOT EXISTS fit_assessments (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		job_id UUID NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
		model_name TEXT NOT NULL,
		score INTEGER NOT NULL,
		summary TEXT NOT NULL DEFAULT '',
		strengths JSONB,
		gaps JSONB,
		recommendations TEXT NOT NULL DEFAULT '',
		key_insights TEXT NOT NULL DEFAULT '',
		context_files JSONB,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_fit_assessments_job ON fit_assessments (job_id)`,
	`CREATE TABLE IF NOT EXISTS app_drafts (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		job_id UUID NOT NULL REFERENCES jobs(id) ON DELETE CASCADE,
		model_name TEXT NOT NULL,
		cv_content TEXT,
		letter_content TEXT,
		source_cv_path TEXT,
		source_letter_path TEXT,
		notes TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_app_drafts_job ON app_drafts (job_id)`,
}

// EnsureSchema creates the tables and indexes if they do not exist.
// Safe to run repeatedly.
func (db *DB) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to ensure schema: %w", err)
		}
	}
	return nil
}

// Stats holds row counts for the db stats command
type Stats struct {
	Jobs        int `json:"n_jobs"`
	Assessments int `json:"n_fits"`
	Drafts      int `json:"n_apps"`
}

// GetStats returns row counts for all tables
func (db *DB) GetStats(ctx context.Context) (Stats, error) {
	var s Stats
	err := db.pool.QueryRow(ctx,
		`SELECT
		   (SELECT COUNT(*) FROM jobs),
		   (SELECT COUNT(*) FROM fit_assessments),
		   (SELECT COUNT(*) FROM app_drafts)`,
	).Scan(&s.Jobs, &s.Assessments, &s.Drafts)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to get stats: %w", err)
	}
	return s, nil
}

// Reset drops all tables. Used by `db del --force`.
func (db *DB) Reset(ctx context.Context) error {
	_, err := db.pool.Exec(ctx,
		`DROP TABLE IF EXISTS app_drafts, fit_assessments, jobs`)
	if err != nil {
		return fmt.Errorf("failed to reset database: %w", err)
	}
	return nil
}
