package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/job-agent/internal/schemas"
)

// ExtractionSchema defines the structure for LLM-based content extraction.
type ExtractionSchema struct {
	Name        string        // Schema name (e.g., "JobAd", "FitAssessment")
	Description string        // System prompt preamble describing the extraction task
	Fields      []SchemaField // Expected output fields
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint: "string", "[]string"
	Description string // Description for the LLM
	Required    bool   // Whether this field is required
}

// BuildExtractionPrompt constructs the LLM prompt from schema and input text.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder

	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")

	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "\"string\""
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  \"%s\": %s%s", field.Name, typeHint, requiredHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Extract information directly from the text, do not invent facts.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n\n")

	sb.WriteString("Input text:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// JobExtraction holds the structured fields pulled from a raw job ad
type JobExtraction struct {
	Title         string `json:"title"`
	Company       string `json:"company"`
	Location      string `json:"location"`
	Deadline      string `json:"deadline"`
	Department    string `json:"department"`
	HiringManager string `json:"hiring_manager"`
	FullAd        string `json:"full_ad"`
}

// FitExtraction holds an AI-generated fit assessment
type FitExtraction struct {
	Score           int      `json:"overall_fit_score"`
	Summary         string   `json:"fit_summary"`
	Strengths       []string `json:"strengths"`
	Gaps            []string `json:"gaps"`
	Recommendations string   `json:"recommendations"`
	KeyInsights     string   `json:"key_insights"`
}

// DraftExtraction holds a generated CV and cover letter draft
type DraftExtraction struct {
	CVContent     string `json:"cv_content"`
	LetterContent string `json:"letter_content"`
	Notes         string `json:"notes"`
}

// JobAdSchema returns the extraction schema for raw job postings.
func JobAdSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "JobAd",
		Description: `You extract structured job posting information from raw job ad text.

Rules:
- Always return valid JSON matching the schema.
- If a field is not explicitly mentioned, return an empty string.
- Do not invent facts.
- deadline must be ISO format (YYYY-MM-DD) or empty string.`,
		Fields: []SchemaField{
			{Name: "title", Type: "\"string\"", Description: "Job title", Required: true},
			{Name: "company", Type: "\"string\"", Description: "Hiring company name", Required: true},
			{Name: "location", Type: "\"string\"", Description: "Work location, including remote/hybrid policy if stated"},
			{Name: "deadline", Type: "\"string\"", Description: "Application deadline as YYYY-MM-DD, or empty string"},
			{Name: "department", Type: "\"string\"", Description: "Team or department name"},
			{Name: "hiring_manager", Type: "\"string\"", Description: "Hiring manager or contact person"},
			{Name: "full_ad", Type: "\"string\"", Description: "The full job ad text, cleaned of navigation and boilerplate", Required: true},
		},
	}
}

// FitAssessmentSchema returns the extraction schema for candidate fit evaluation.
func FitAssessmentSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "FitAssessment",
		Description: `You are an experienced career advisor. Evaluate how well the candidate
described in the context documents fits the job posting. Be honest and specific:
an inflated score helps nobody. Base every statement on the provided documents.`,
		Fields: []SchemaField{
			{Name: "overall_fit_score", Type: "integer", Description: "Overall fit score from 0-100. 80-100=excellent, 60-79=good, 40-59=moderate, 0-39=poor", Required: true},
			{Name: "fit_summary", Type: "\"string\"", Description: "2-3 sentence summary of the candidate's overall fit for this role", Required: true},
			{Name: "strengths", Type: "[\"string\"]", Description: "Specific qualifications, experiences, and skills that match the job well. Each item is a concise statement (1-2 sentences).", Required: true},
			{Name: "gaps", Type: "[\"string\"]", Description: "Missing qualifications, skills, or experiences that the job requires. Each item is a concise statement (1-2 sentences).", Required: true},
			{Name: "recommendations", Type: "\"string\"", Description: "Specific, actionable advice on how to strengthen the application, address gaps, and prepare for interviews", Required: true},
			{Name: "key_insights", Type: "\"string\"", Description: "Notable observations about the match: timing considerations, unique angles, red flags, growth opportunities", Required: true},
		},
	}
}

// AppDraftSchema returns the extraction schema for application drafting.
func AppDraftSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "AppDraft",
		Description: `You are a professional application writer. Tailor the candidate's CV and
cover letter to the job posting. Reuse only facts present in the source documents;
never fabricate experience. Keep the candidate's own voice and formatting.`,
		Fields: []SchemaField{
			{Name: "cv_content", Type: "\"string\"", Description: "The tailored CV, full text. Empty string if no CV was requested."},
			{Name: "letter_content", Type: "\"string\"", Description: "The tailored cover letter, full text. Empty string if no letter was requested."},
			{Name: "notes", Type: "\"string\"", Description: "Short notes on what was changed and why", Required: true},
		},
	}
}

// ExtractJobAd runs structured extraction over raw job ad text.
func ExtractJobAd(ctx context.Context, client Client, model, url, text string) (*JobExtraction, error) {
	input := fmt.Sprintf("Job posting URL: %s\n\n%s", url, text)
	prompt := BuildExtractionPrompt(JobAdSchema(), input)

	raw, err := client.GenerateJSON(ctx, model, prompt)
	if err != nil {
		return nil, fmt.Errorf("job ad extraction failed: %w", err)
	}
	if err := schemas.ValidateJSONString(schemas.JobAdSchema, raw); err != nil {
		return nil, fmt.Errorf("job ad extraction returned invalid data: %w", err)
	}

	var out JobExtraction
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("failed to parse job ad extraction: %w", err)
	}
	return &out, nil
}

// AssessFit evaluates candidate/job fit from the job ad and context documents.
func AssessFit(ctx context.Context, client Client, model, jobText, contextText string) (*FitExtraction, error) {
	input := fmt.Sprintf("JOB POSTING:\n%s\n\nCANDIDATE CONTEXT:\n%s", jobText, contextText)
	prompt := BuildExtractionPrompt(FitAssessmentSchema(), input)

	raw, err := client.GenerateJSON(ctx, model, prompt)
	if err != nil {
		return nil, fmt.Errorf("fit assessment failed: %w", err)
	}
	if err := schemas.ValidateJSONString(schemas.FitAssessmentSchema, raw); err != nil {
		return nil, fmt.Errorf("fit assessment returned invalid data: %w", err)
	}

	var out FitExtraction
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("failed to parse fit assessment: %w", err)
	}
	return &out, nil
}

// DraftRequest describes what WriteDraft should generate
type DraftRequest struct {
	JobText      string
	CVSource     string // source CV text, empty when no CV requested
	LetterSource string // source letter text, empty when no letter requested
}

// WriteDraft generates tailored application documents for a job.
func WriteDraft(ctx context.Context, client Client, model string, req DraftRequest) (*DraftExtraction, error) {
	var sb strings.Builder
	sb.WriteString("JOB POSTING:\n")
	sb.WriteString(req.JobText)
	if req.CVSource != "" {
		sb.WriteString("\n\nSOURCE CV:\n")
		sb.WriteString(req.CVSource)
	} else {
		sb.WriteString("\n\nNo CV requested; return an empty cv_content.")
	}
	if req.LetterSource != "" {
		sb.WriteString("\n\nSOURCE COVER LETTER:\n")
		sb.WriteString(req.LetterSource)
	} else {
		sb.WriteString("\n\nNo cover letter requested; return an empty letter_content.")
	}

	prompt := BuildExtractionPrompt(AppDraftSchema(), sb.String())

	raw, err := client.GenerateJSON(ctx, model, prompt)
	if err != nil {
		return nil, fmt.Errorf("draft generation failed: %w", err)
	}
	if err := schemas.ValidateJSONString(schemas.AppDraftSchema, raw); err != nil {
		return nil, fmt.Errorf("draft generation returned invalid data: %w", err)
	}

	var out DraftExtraction
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("failed to parse draft: %w", err)
	}
	return &out, nil
}
