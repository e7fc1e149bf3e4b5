package main

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-agent/internal/db"
)

func TestFitViewCommandRegistered(t *testing.T) {
	view, _, err := fitCmd.Find([]string{"view"})
	require.NoError(t, err)
	require.Equal(t, "view", view.Name())
	assert.NotNil(t, view.Flags().Lookup("id"), "view should accept -i to pick an assessment")
}

func TestDisplayAssessment(t *testing.T) {
	job := &db.Job{
		ID:      uuid.New(),
		URL:     "https://jobs.example.com/backend",
		Title:   "Backend Engineer",
		Company: "Acme",
	}
	a := &db.FitAssessment{
		ID:              uuid.New(),
		JobID:           job.ID,
		ModelName:       "gemini-2.5-flash",
		Score:           82,
		Summary:         "Strong overlap with the posted requirements.",
		Strengths:       []string{"Go services in production", "Postgres schema design"},
		Gaps:            []string{"No Kubernetes operator experience"},
		Recommendations: "Lead with the data-pipeline migration project.",
		KeyInsights:     "Team is early-stage; breadth matters more than depth.",
	}

	var buf strings.Builder
	displayAssessment(&buf, job, a)
	out := buf.String()

	assert.Contains(t, out, "Backend Engineer at Acme")
	assert.Contains(t, out, "Overall Fit: 82/100 (excellent)")
	assert.Contains(t, out, "Strong overlap with the posted requirements.")
	assert.Contains(t, out, "  + Go services in production")
	assert.Contains(t, out, "  - No Kubernetes operator experience")
	assert.Contains(t, out, "Lead with the data-pipeline migration project.")
	assert.Contains(t, out, "breadth matters more than depth")
	assert.Contains(t, out, a.ID.String())
}
