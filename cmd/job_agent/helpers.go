package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/job-agent/internal/db"
	"github.com/jonathan/job-agent/internal/fetch"
	"github.com/jonathan/job-agent/internal/llm"
)

// openDB connects to the configured database and ensures the schema exists
func openDB(ctx context.Context) (*db.DB, error) {
	url := settings.GetDatabaseURL()
	if url == "" {
		return nil, fmt.Errorf("database not configured: set JOB_DATABASE_URL or database-url in job.toml")
	}

	conn, err := db.Connect(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := conn.EnsureSchema(ctx); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}

// newLLMClient creates the Gemini client from GEMINI_API_KEY
func newLLMClient(ctx context.Context) (llm.Client, error) {
	return llm.NewGeminiClient(ctx, os.Getenv("GEMINI_API_KEY"))
}

// resolveJob looks up a job by ID or URL and errors when it does not exist
func resolveJob(ctx context.Context, conn *db.DB, ref string) (*db.Job, error) {
	job, err := conn.ResolveJob(ctx, ref)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, fmt.Errorf("no job found with ID or URL: %s", ref)
	}
	return job, nil
}

// fetchMode maps the --browser/--static flags onto a fetch strategy
func fetchMode(browser, static bool) (fetch.Mode, error) {
	if browser && static {
		return 0, fmt.Errorf("--browser and --static are mutually exclusive")
	}
	switch {
	case browser:
		return fetch.ModeBrowserOnly, nil
	case static:
		return fetch.ModeStaticOnly, nil
	default:
		return fetch.ModeStaticThenBrowser, nil
	}
}

// readContextFiles concatenates context documents for prompt building.
// Returns the combined text and the absolute paths actually read.
func readContextFiles(paths []string) (string, []string, error) {
	var combined strings.Builder
	var read []string

	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return "", nil, fmt.Errorf("failed to resolve %s: %w", p, err)
		}
		content, err := os.ReadFile(abs)
		if err != nil {
			return "", nil, fmt.Errorf("failed to read context file %s: %w", p, err)
		}
		fmt.Fprintf(&combined, "=== %s ===\n%s\n\n", filepath.Base(abs), content)
		read = append(read, abs)
	}

	if len(read) == 0 {
		return "", nil, fmt.Errorf("at least one context file is required")
	}
	return combined.String(), read, nil
}

// printJSON writes indented JSON to stdout
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// truncate shortens a string for table display
func truncate(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// shortID renders the first UUID block for compact table output
func shortID(id fmt.Stringer) string {
	s := id.String()
	if i := strings.Index(s, "-"); i > 0 {
		return s[:i]
	}
	return s
}
