// Package schemas provides JSON Schema validation for structured LLM output.
package schemas

// JobAdSchema validates extracted job ad fields
const JobAdSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["title", "company", "full_ad"],
  "properties": {
    "title": {"type": "string"},
    "company": {"type": "string"},
    "location": {"type": "string"},
    "deadline": {
      "type": "string",
      "pattern": "^(\\d{4}-\\d{2}-\\d{2})?$"
    },
    "department": {"type": "string"},
    "hiring_manager": {"type": "string"},
    "full_ad": {"type": "string"}
  },
  "additionalProperties": false
}`

// FitAssessmentSchema validates generated fit assessments
const FitAssessmentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["overall_fit_score", "fit_summary", "strengths", "gaps", "recommendations", "key_insights"],
  "properties": {
    "overall_fit_score": {
      "type": "integer",
      "minimum": 0,
      "maximum": 100
    },
    "fit_summary": {"type": "string", "minLength": 1},
    "strengths": {
      "type": "array",
      "items": {"type": "string"}
    },
    "gaps": {
      "type": "array",
      "items": {"type": "string"}
    },
    "recommendations": {"type": "string"},
    "key_insights": {"type": "string"}
  },
  "additionalProperties": false
}`

// AppDraftSchema validates generated application drafts
const AppDraftSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["notes"],
  "properties": {
    "cv_content": {"type": "string"},
    "letter_content": {"type": "string"},
    "notes": {"type": "string"}
  },
  "additionalProperties": false
}`
