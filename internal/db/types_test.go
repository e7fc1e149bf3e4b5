package db

import (
	"testing"
)

func TestUpdatableField(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		wantCol  string
		wantOK   bool
	}{
		{"title", "title", "title", true},
		{"hiring manager", "hiring_manager", "hiring_manager", true},
		{"case insensitive", "Company", "company", true},
		{"surrounding space", " location ", "location", true},
		{"url not updatable", "url", "", false},
		{"id not updatable", "id", "", false},
		{"github columns not updatable", "github_repo", "", false},
		{"unknown", "salary", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			col, ok := UpdatableField(tt.field)
			if ok != tt.wantOK || col != tt.wantCol {
				t.Errorf("UpdatableField(%q) = (%q, %v), want (%q, %v)",
					tt.field, col, ok, tt.wantCol, tt.wantOK)
			}
		})
	}
}

func TestUpdatableFieldNames_AllResolve(t *testing.T) {
	for _, name := range UpdatableFieldNames() {
		if _, ok := UpdatableField(name); !ok {
			t.Errorf("advertised field %q does not resolve", name)
		}
	}
}

func TestScoreLabel(t *testing.T) {
	tests := []struct {
		score    int
		expected string
	}{
		{100, "excellent"},
		{80, "excellent"},
		{79, "good"},
		{60, "good"},
		{59, "moderate"},
		{40, "moderate"},
		{39, "poor"},
		{0, "poor"},
	}

	for _, tt := range tests {
		if got := ScoreLabel(tt.score); got != tt.expected {
			t.Errorf("ScoreLabel(%d) = %q, want %q", tt.score, got, tt.expected)
		}
	}
}

func TestNullIfEmpty(t *testing.T) {
	if nullIfEmpty("") != nil {
		t.Error("nullIfEmpty(\"\") should be nil")
	}
	if v := nullIfEmpty("x"); v == nil || *v != "x" {
		t.Errorf("nullIfEmpty(\"x\") = %v, want pointer to \"x\"", v)
	}
}
