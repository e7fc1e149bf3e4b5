package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateJSONString_ValidJobAd(t *testing.T) {
	doc := `{
		"title": "Backend Engineer",
		"company": "Acme",
		"location": "Oslo",
		"deadline": "2026-09-30",
		"department": "Platform",
		"hiring_manager": "",
		"full_ad": "We are hiring."
	}`

	err := ValidateJSONString(JobAdSchema, doc)
	assert.NoError(t, err)
}

func TestValidateJSONString_EmptyDeadlineAllowed(t *testing.T) {
	doc := `{"title": "E", "company": "A", "deadline": "", "full_ad": "x"}`
	assert.NoError(t, ValidateJSONString(JobAdSchema, doc))
}

func TestValidateJSONString_BadDeadlineFormat(t *testing.T) {
	doc := `{"title": "E", "company": "A", "deadline": "September 30", "full_ad": "x"}`

	err := ValidateJSONString(JobAdSchema, doc)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidateJSONString_MissingRequiredField(t *testing.T) {
	doc := `{"company": "Acme", "full_ad": "text"}`

	err := ValidateJSONString(JobAdSchema, doc)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidateJSONString_FitScoreBounds(t *testing.T) {
	valid := `{
		"overall_fit_score": 72,
		"fit_summary": "Good match.",
		"strengths": ["Go"],
		"gaps": [],
		"recommendations": "Apply.",
		"key_insights": ""
	}`
	assert.NoError(t, ValidateJSONString(FitAssessmentSchema, valid))

	outOfRange := `{
		"overall_fit_score": 120,
		"fit_summary": "x",
		"strengths": [],
		"gaps": [],
		"recommendations": "",
		"key_insights": ""
	}`
	err := ValidateJSONString(FitAssessmentSchema, outOfRange)
	require.Error(t, err)

	wrongType := `{
		"overall_fit_score": "72",
		"fit_summary": "x",
		"strengths": [],
		"gaps": [],
		"recommendations": "",
		"key_insights": ""
	}`
	err = ValidateJSONString(FitAssessmentSchema, wrongType)
	require.Error(t, err)
}

func TestValidateJSONString_AppDraft(t *testing.T) {
	assert.NoError(t, ValidateJSONString(AppDraftSchema,
		`{"cv_content": "", "letter_content": "Dear team,", "notes": "tailored letter only"}`))

	err := ValidateJSONString(AppDraftSchema, `{"cv_content": "x"}`)
	require.Error(t, err)
}

func TestValidateJSONString_UnparseableSchema(t *testing.T) {
	err := ValidateJSONString(`{not json`, `{}`)
	require.Error(t, err)

	_, ok := err.(*SchemaLoadError)
	assert.True(t, ok, "error should be SchemaLoadError type")
}
