package ghcli

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jonathan/job-agent/internal/db"
)

// IssueTitle builds the issue title for a job posting
func IssueTitle(job *db.Job) string {
	return fmt.Sprintf("%s at %s", job.Title, job.Company)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// BuildIssueBody renders a job as the markdown issue body. The format is
// stable: ParseIssueBody reads the same fields back when a job is imported
// from an existing issue.
func BuildIssueBody(job *db.Job) string {
	return fmt.Sprintf(`**Company:** %s
**Location:** %s
**Department:** %s
**Deadline:** %s
**Hiring Manager:** %s

**Job Posting:** %s

---

## Full Job Description

%s
`,
		job.Company, job.Location, orNA(job.Department), orNA(job.Deadline),
		orNA(job.HiringManager), job.URL, job.FullAd)
}

// BuildAssessmentComment renders a fit assessment as a markdown issue comment
func BuildAssessmentComment(job *db.Job, a *db.FitAssessment) string {
	var contextNames []string
	for _, p := range a.ContextFiles {
		contextNames = append(contextNames, filepath.Base(p))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "## Job Fit Assessment\n\n")
	fmt.Fprintf(&sb, "**Job:** [%s](%s)\n", job.Title, job.URL)
	fmt.Fprintf(&sb, "**Company:** %s\n", job.Company)
	fmt.Fprintf(&sb, "**Location:** %s\n\n---\n\n", job.Location)
	fmt.Fprintf(&sb, "### Overall Fit: %d/100\n\n%s\n\n---\n\n", a.Score, a.Summary)

	sb.WriteString("### Strengths\n\n")
	for _, s := range a.Strengths {
		fmt.Fprintf(&sb, "- %s\n", s)
	}
	sb.WriteString("\n---\n\n### Gaps\n\n")
	for _, g := range a.Gaps {
		fmt.Fprintf(&sb, "- %s\n", g)
	}
	fmt.Fprintf(&sb, "\n---\n\n### Recommendations\n\n%s\n\n", a.Recommendations)
	fmt.Fprintf(&sb, "---\n\n### Key Insights\n\n%s\n\n", a.KeyInsights)

	fmt.Fprintf(&sb, "---\n\n<details>\n<summary>Assessment Details</summary>\n\n")
	fmt.Fprintf(&sb, "**Model:** %s\n", a.ModelName)
	fmt.Fprintf(&sb, "**Created:** %s\n", a.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&sb, "**Context:** %s\n", strings.Join(contextNames, ", "))
	fmt.Fprintf(&sb, "**Assessment ID:** %s\n\n</details>\n", a.ID)

	return sb.String()
}

// ParsedJob holds job fields recovered from an issue body
type ParsedJob struct {
	Company       string
	Location      string
	Department    string
	Deadline      string
	HiringManager string
	URL           string
	FullAd        string
}

var issueFieldPatterns = map[string]*regexp.Regexp{
	"company":        regexp.MustCompile(`(?m)\*\*Company:\*\*\s*(.+)`),
	"location":       regexp.MustCompile(`(?m)\*\*Location:\*\*\s*(.+)`),
	"department":     regexp.MustCompile(`(?m)\*\*Department:\*\*\s*(.+)`),
	"deadline":       regexp.MustCompile(`(?m)\*\*Deadline:\*\*\s*(.+)`),
	"hiring_manager": regexp.MustCompile(`(?m)\*\*Hiring Manager:\*\*\s*(.+)`),
	"url":            regexp.MustCompile(`(?m)\*\*Job Posting:\*\*\s*(.+)`),
}

var fullAdPattern = regexp.MustCompile(`(?s)## Full Job Description\s*\n\n(.+)`)

// ParseIssueBody recovers job fields from an issue body in the
// BuildIssueBody format. "N/A" values become empty strings. When the body
// lacks the description heading, the whole body is kept as the ad text.
func ParseIssueBody(body string) ParsedJob {
	fields := make(map[string]string, len(issueFieldPatterns))
	for name, re := range issueFieldPatterns {
		if m := re.FindStringSubmatch(body); m != nil {
			value := strings.TrimSpace(m[1])
			if value == "N/A" {
				value = ""
			}
			fields[name] = value
		}
	}

	parsed := ParsedJob{
		Company:       fields["company"],
		Location:      fields["location"],
		Department:    fields["department"],
		Deadline:      fields["deadline"],
		HiringManager: fields["hiring_manager"],
		URL:           fields["url"],
	}

	if m := fullAdPattern.FindStringSubmatch(body); m != nil {
		parsed.FullAd = strings.TrimSpace(m[1])
	} else {
		parsed.FullAd = strings.TrimSpace(body)
	}
	return parsed
}
