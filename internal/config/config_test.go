package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "job.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `
[job]
model = "gemini-2.5-pro"
database-url = "postgres://localhost/jobs"

[job.gh]
repo = "acme/hiring"

[job.search]
keywords = ["go", "golang"]
parallel = true
since = 7

[[job.search.in]]
company = "Acme"
url = "https://acme.example/careers"

[[job.search.in]]
company = "Initech"
url = "https://initech.example/jobs"
enabled = false
keywords = ["python"]
`)

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-pro", s.Model)
	assert.Equal(t, "postgres://localhost/jobs", s.DatabaseURL)
	assert.Equal(t, "acme/hiring", s.GH.Repo)
	assert.True(t, s.Search.Parallel)
	assert.Equal(t, 7, s.Search.Since)
	require.Len(t, s.Search.Pages, 2)
	assert.Equal(t, path, s.ConfigPath)

	enabled := s.Search.EnabledPages()
	require.Len(t, enabled, 1)
	assert.Equal(t, "Acme", enabled[0].Company)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("JOB_CONFIG", filepath.Join(t.TempDir(), "nope.toml"))
	t.Chdir(t.TempDir())

	s, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, s.ConfigPath)
	assert.Empty(t, s.Search.Pages)
}

func TestLoad_PageMissingURL(t *testing.T) {
	path := writeConfig(t, `
[[job.search.in]]
company = "Acme"
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Acme")
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
[job]
model = "gemini-2.5-flash"

[job.search]
parallel = false
`)
	t.Setenv("JOB_MODEL", "gemini-2.5-pro")
	t.Setenv("JOB_SEARCH__PARALLEL", "true")

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-pro", s.Model)
	assert.True(t, s.Search.Parallel)
}

func TestKeywordsFor_PageOverride(t *testing.T) {
	cfg := SearchConfig{
		Keywords: []string{"go", "rust"},
	}
	page := CareerPage{Company: "Acme", URL: "https://a", Keywords: []string{"python"}}
	assert.Equal(t, []string{"python"}, cfg.KeywordsFor(page))
}

func TestKeywordsFor_DefaultsPlusExtras(t *testing.T) {
	cfg := SearchConfig{
		Keywords: []string{"go", "rust", "go"},
	}
	page := CareerPage{Company: "Acme", URL: "https://a", ExtraKeywords: []string{"rust", "kubernetes"}}
	// Deduplicated, first-seen order preserved.
	assert.Equal(t, []string{"go", "rust", "kubernetes"}, cfg.KeywordsFor(page))
}

func TestCareerPage_EnabledDefault(t *testing.T) {
	assert.True(t, CareerPage{Company: "A", URL: "https://a"}.IsEnabled())

	off := false
	assert.False(t, CareerPage{Company: "A", URL: "https://a", Enabled: &off}.IsEnabled())
}

func TestGetModel_Precedence(t *testing.T) {
	s := &Settings{Model: "from-config"}
	assert.Equal(t, "override", s.GetModel("override"))
	assert.Equal(t, "from-config", s.GetModel(""))

	s.Model = ""
	t.Setenv("JOB_MODEL", "from-env")
	assert.Equal(t, "from-env", s.GetModel(""))

	t.Setenv("JOB_MODEL", "")
	assert.Equal(t, DefaultModel, s.GetModel(""))
}
