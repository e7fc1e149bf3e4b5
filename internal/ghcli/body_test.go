package ghcli

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-agent/internal/db"
)

func sampleJob() *db.Job {
	return &db.Job{
		ID:       uuid.New(),
		URL:      "https://acme.example/jobs/1",
		Title:    "Backend Engineer",
		Company:  "Acme",
		Location: "Oslo",
		FullAd:   "We are hiring a backend engineer.\n\nApply now.",
	}
}

func TestIssueTitle(t *testing.T) {
	assert.Equal(t, "Backend Engineer at Acme", IssueTitle(sampleJob()))
}

func TestBuildIssueBody_RoundTrip(t *testing.T) {
	job := sampleJob()
	job.Department = "Platform"
	job.Deadline = "2026-09-30"

	body := BuildIssueBody(job)
	parsed := ParseIssueBody(body)

	assert.Equal(t, "Acme", parsed.Company)
	assert.Equal(t, "Oslo", parsed.Location)
	assert.Equal(t, "Platform", parsed.Department)
	assert.Equal(t, "2026-09-30", parsed.Deadline)
	assert.Equal(t, job.URL, parsed.URL)
	assert.Equal(t, job.FullAd, parsed.FullAd)
}

func TestBuildIssueBody_EmptyFieldsRenderedAsNA(t *testing.T) {
	body := BuildIssueBody(sampleJob())

	assert.Contains(t, body, "**Department:** N/A")
	assert.Contains(t, body, "**Deadline:** N/A")
	assert.Contains(t, body, "**Hiring Manager:** N/A")

	// N/A comes back as empty on parse
	parsed := ParseIssueBody(body)
	assert.Empty(t, parsed.Department)
	assert.Empty(t, parsed.Deadline)
	assert.Empty(t, parsed.HiringManager)
}

func TestParseIssueBody_FreeFormFallback(t *testing.T) {
	body := "Someone pasted a job ad here without the template.\nSecond line."

	parsed := ParseIssueBody(body)
	assert.Empty(t, parsed.Company)
	assert.Equal(t, body, parsed.FullAd)
}

func TestParseIssueNumber(t *testing.T) {
	tests := []struct {
		url     string
		number  int
		wantErr bool
	}{
		{"https://github.com/owner/repo/issues/123", 123, false},
		{"https://github.com/owner/repo/issues/7/", 7, false},
		{"https://github.com/owner/repo/issues/abc", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		n, err := ParseIssueNumber(tt.url)
		if tt.wantErr {
			assert.Error(t, err, tt.url)
		} else {
			require.NoError(t, err, tt.url)
			assert.Equal(t, tt.number, n)
		}
	}
}

func TestBuildAssessmentComment(t *testing.T) {
	job := sampleJob()
	a := &db.FitAssessment{
		ID:              uuid.New(),
		JobID:           job.ID,
		ModelName:       "gemini-2.5-flash",
		Score:           72,
		Summary:         "Solid technical match.",
		Strengths:       []string{"Go experience", "API design"},
		Gaps:            []string{"No Kubernetes"},
		Recommendations: "Highlight backend work.",
		KeyInsights:     "Team is growing.",
		ContextFiles:    []string{"/home/user/docs/cv.md"},
		CreatedAt:       time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
	}

	md := BuildAssessmentComment(job, a)

	assert.Contains(t, md, "### Overall Fit: 72/100")
	assert.Contains(t, md, "[Backend Engineer](https://acme.example/jobs/1)")
	assert.Contains(t, md, "- Go experience")
	assert.Contains(t, md, "- No Kubernetes")
	// Context files are listed by basename only
	assert.Contains(t, md, "**Context:** cv.md")
	assert.NotContains(t, md, "/home/user/docs")
	assert.Contains(t, md, "**Created:** 2026-08-30 10:00:00")
}
