package db

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Job represents a stored job ad with its extracted fields
type Job struct {
	ID            uuid.UUID `json:"id"`
	URL           string    `json:"url"`
	Title         string    `json:"title"`
	Company       string    `json:"company"`
	Location      string    `json:"location"`
	Deadline      string    `json:"deadline"`
	Department    string    `json:"department"`
	HiringManager string    `json:"hiring_manager"`
	FullAd        string    `json:"full_ad"`
	SourceTitle   *string   `json:"source_title,omitempty"`

	// GitHub tracking metadata, set when the job is published as an issue
	GitHubRepo        *string    `json:"github_repo,omitempty"`
	GitHubIssueNumber *int       `json:"github_issue_number,omitempty"`
	GitHubIssueURL    *string    `json:"github_issue_url,omitempty"`
	PostedAt          *time.Time `json:"posted_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FitAssessment represents an AI-generated candidate/job fit evaluation
type FitAssessment struct {
	ID              uuid.UUID `json:"id"`
	JobID           uuid.UUID `json:"job_id"`
	ModelName       string    `json:"model_name"`
	Score           int       `json:"overall_fit_score"`
	Summary         string    `json:"fit_summary"`
	Strengths       []string  `json:"strengths"`
	Gaps            []string  `json:"gaps"`
	Recommendations string    `json:"recommendations"`
	KeyInsights     string    `json:"key_insights"`
	ContextFiles    []string  `json:"context_files,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// AppDraft represents a generated CV and/or cover letter draft for a job
type AppDraft struct {
	ID               uuid.UUID `json:"id"`
	JobID            uuid.UUID `json:"job_id"`
	ModelName        string    `json:"model_name"`
	CVContent        *string   `json:"cv_content,omitempty"`
	LetterContent    *string   `json:"letter_content,omitempty"`
	SourceCVPath     *string   `json:"source_cv_path,omitempty"`
	SourceLetterPath *string   `json:"source_letter_path,omitempty"`
	Notes            string    `json:"notes"`
	CreatedAt        time.Time `json:"created_at"`
}

// JobCreateInput is used when upserting a job record
type JobCreateInput struct {
	URL           string
	Title         string
	Company       string
	Location      string
	Deadline      string
	Department    string
	HiringManager string
	FullAd        string
	SourceTitle   string
}

// updatableFields maps user-facing field names to jobs table columns.
// Only these columns may be touched through UpdateJobField.
var updatableFields = map[string]string{
	"title":          "title",
	"company":        "company",
	"location":       "location",
	"deadline":       "deadline",
	"department":     "department",
	"hiring_manager": "hiring_manager",
	"full_ad":        "full_ad",
}

// UpdatableField resolves a user-supplied field name to its column,
// reporting whether the field may be updated.
func UpdatableField(name string) (string, bool) {
	col, ok := updatableFields[strings.ToLower(strings.TrimSpace(name))]
	return col, ok
}

// UpdatableFieldNames returns the sorted list of field names accepted by
// UpdateJobField, for help text and error messages.
func UpdatableFieldNames() []string {
	return []string{"company", "deadline", "department", "full_ad", "hiring_manager", "location", "title"}
}

// Score bands used when rendering assessments
const (
	ScoreExcellent = 80
	ScoreGood      = 60
	ScoreModerate  = 40
)

// ScoreLabel returns the qualitative band for a fit score
func ScoreLabel(score int) string {
	switch {
	case score >= ScoreExcellent:
		return "excellent"
	case score >= ScoreGood:
		return "good"
	case score >= ScoreModerate:
		return "moderate"
	default:
		return "poor"
	}
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
