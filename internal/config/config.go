// Package config loads job_agent settings from job.toml and JOB_* environment
// variables. The file is searched in several standard locations; all settings
// are optional and commands fall back to flags or defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// DefaultModel is used when no model is configured anywhere.
const DefaultModel = "gemini-2.5-flash"

// CareerPage is one configured career page to scan for job listings.
type CareerPage struct {
	Company string `mapstructure:"company" validate:"required"`
	URL     string `mapstructure:"url" validate:"required,url"`
	Enabled *bool  `mapstructure:"enabled"`
	// Keywords, when set, fully replace the global defaults for this page.
	Keywords []string `mapstructure:"keywords"`
	// ExtraKeywords are appended to the global defaults.
	ExtraKeywords []string `mapstructure:"extra-keywords"`
}

// IsEnabled reports whether the page takes part in scans. Pages are enabled
// unless explicitly disabled.
func (p CareerPage) IsEnabled() bool {
	return p.Enabled == nil || *p.Enabled
}

func (p CareerPage) String() string {
	return fmt.Sprintf("%s (%s)", p.Company, p.URL)
}

// SearchConfig holds the [job.search] section.
type SearchConfig struct {
	Keywords []string     `mapstructure:"keywords"`
	Parallel bool         `mapstructure:"parallel"`
	Since    int          `mapstructure:"since"`
	Pages    []CareerPage `mapstructure:"in"`
}

// EnabledPages returns only the enabled pages, in declaration order.
func (s SearchConfig) EnabledPages() []CareerPage {
	var pages []CareerPage
	for _, p := range s.Pages {
		if p.IsEnabled() {
			pages = append(pages, p)
		}
	}
	return pages
}

// KeywordsFor resolves the effective keyword list for a page: the page's own
// keywords when set, otherwise the global defaults plus the page's extra
// keywords, deduplicated preserving first-seen order.
func (s SearchConfig) KeywordsFor(p CareerPage) []string {
	if len(p.Keywords) > 0 {
		return p.Keywords
	}
	combined := make([]string, 0, len(s.Keywords)+len(p.ExtraKeywords))
	seen := make(map[string]bool, len(s.Keywords)+len(p.ExtraKeywords))
	for _, kw := range s.Keywords {
		if !seen[kw] {
			seen[kw] = true
			combined = append(combined, kw)
		}
	}
	for _, kw := range p.ExtraKeywords {
		if !seen[kw] {
			seen[kw] = true
			combined = append(combined, kw)
		}
	}
	return combined
}

// GHConfig holds the [job.gh] section.
type GHConfig struct {
	Repo string `mapstructure:"repo"`
}

// FitConfig holds the [job.fit] section.
type FitConfig struct {
	Model   string   `mapstructure:"model"`
	Context []string `mapstructure:"context"`
}

// AddConfig holds the [job.add] section.
type AddConfig struct {
	Browser    bool   `mapstructure:"browser"`
	Structured bool   `mapstructure:"structured"`
	Model      string `mapstructure:"model"`
}

// DraftConfig holds the [job.app] section.
type DraftConfig struct {
	Model        string `mapstructure:"model"`
	CVSource     string `mapstructure:"cv"`
	LetterSource string `mapstructure:"letter"`
}

// Settings is the full configuration tree under the [job] table.
type Settings struct {
	Model       string       `mapstructure:"model"`
	Verbose     bool         `mapstructure:"verbose"`
	DatabaseURL string       `mapstructure:"database-url"`
	GH          GHConfig     `mapstructure:"gh"`
	Fit         FitConfig    `mapstructure:"fit"`
	Add         AddConfig    `mapstructure:"add"`
	App         DraftConfig  `mapstructure:"app"`
	Search      SearchConfig `mapstructure:"search"`

	// ConfigPath is the file the settings were loaded from, empty when no
	// config file was found.
	ConfigPath string `mapstructure:"-"`
}

// GetModel resolves the AI model with precedence override > config > env > default.
func (s *Settings) GetModel(override string) string {
	if override != "" {
		return override
	}
	if s.Model != "" {
		return s.Model
	}
	if env := os.Getenv("JOB_MODEL"); env != "" {
		return env
	}
	return DefaultModel
}

// GetDatabaseURL resolves the Postgres connection string from config or env.
func (s *Settings) GetDatabaseURL() string {
	if s.DatabaseURL != "" {
		return s.DatabaseURL
	}
	return os.Getenv("JOB_DATABASE_URL")
}

// FindConfigFile locates job.toml. Search order: JOB_CONFIG env var,
// ./job.toml, $XDG_CONFIG_HOME/job/job.toml, ~/.job.toml. Returns empty
// string when no config file exists.
func FindConfigFile() string {
	if envPath := os.Getenv("JOB_CONFIG"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	if cwd, err := os.Getwd(); err == nil {
		path := filepath.Join(cwd, "job.toml")
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		if home, err := os.UserHomeDir(); err == nil {
			configHome = filepath.Join(home, ".config")
		}
	}
	if configHome != "" {
		path := filepath.Join(configHome, "job", "job.toml")
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(home, ".job.toml")
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// Load reads settings from the given path, or from the standard search
// locations when path is empty. A missing config file yields defaults, not
// an error.
func Load(path string) (*Settings, error) {
	if path == "" {
		path = FindConfigFile()
	}

	v := viper.New()
	v.SetConfigType("toml")
	bindEnv(v)

	settings := &Settings{}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		settings.ConfigPath = path
	}

	// All settings live under the [job] table, mirroring the env prefix.
	if err := v.UnmarshalKey("job", settings); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	applyEnv(v, settings)

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// bindEnv registers JOB_* environment overrides for scalar settings.
func bindEnv(v *viper.Viper) {
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}
}

var envBindings = map[string]string{
	"job.model":           "JOB_MODEL",
	"job.verbose":         "JOB_VERBOSE",
	"job.database-url":    "JOB_DATABASE_URL",
	"job.gh.repo":         "JOB_GH__REPO",
	"job.search.parallel": "JOB_SEARCH__PARALLEL",
	"job.search.since":    "JOB_SEARCH__SINCE",
}

// applyEnv overlays bound env values onto the settings struct. UnmarshalKey
// does not consult env bindings, so scalars are re-read here.
func applyEnv(v *viper.Viper, s *Settings) {
	if v.IsSet("job.model") {
		s.Model = v.GetString("job.model")
	}
	if v.IsSet("job.verbose") {
		s.Verbose = v.GetBool("job.verbose")
	}
	if v.IsSet("job.database-url") {
		s.DatabaseURL = v.GetString("job.database-url")
	}
	if v.IsSet("job.gh.repo") {
		s.GH.Repo = v.GetString("job.gh.repo")
	}
	if v.IsSet("job.search.parallel") {
		s.Search.Parallel = v.GetBool("job.search.parallel")
	}
	if v.IsSet("job.search.since") {
		s.Search.Since = v.GetInt("job.search.since")
	}
}

// Validate checks structural invariants, most importantly that every
// configured career page has a company and a URL.
func (s *Settings) Validate() error {
	validate := validator.New()
	for i, page := range s.Search.Pages {
		if err := validate.Struct(page); err != nil {
			return fmt.Errorf("config error: search page %d (%s): %w", i+1, page.Company, err)
		}
	}
	if s.Search.Since < 0 {
		return fmt.Errorf("config error: search.since must be non-negative")
	}
	return nil
}
