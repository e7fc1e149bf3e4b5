// Package ghcli shells out to the GitHub CLI (`gh`) for issue integration.
// The gh binary handles authentication, so no tokens are managed here.
package ghcli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// Issue holds the fields fetched from `gh issue view --json`
type Issue struct {
	Title  string `json:"title"`
	Body   string `json:"body"`
	URL    string `json:"url"`
	Author struct {
		Login string `json:"login"`
	} `json:"author"`
}

type runFunc func(ctx context.Context, args ...string) (string, error)

// Client wraps gh CLI invocations
type Client struct {
	run runFunc
}

// NewClient creates a client that invokes the gh binary from PATH
func NewClient() *Client {
	return &Client{run: runGH}
}

func runGH(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "gh", args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return "", fmt.Errorf("gh %s: %s", args[0], msg)
	}
	return stdout.String(), nil
}

// EnsureGH reports whether the gh binary is available
func EnsureGH() error {
	if _, err := exec.LookPath("gh"); err != nil {
		return fmt.Errorf("gh CLI not found in PATH: %w", err)
	}
	return nil
}

// ViewIssue fetches an issue from the current repository context
func (c *Client) ViewIssue(ctx context.Context, number int) (*Issue, error) {
	out, err := c.run(ctx, "issue", "view", strconv.Itoa(number),
		"--json", "title,body,url,author")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch issue %d: %w", number, err)
	}

	var issue Issue
	if err := json.Unmarshal([]byte(strings.TrimSpace(out)), &issue); err != nil {
		return nil, fmt.Errorf("failed to parse issue JSON: %w", err)
	}
	return &issue, nil
}

// CreateIssue creates an issue and returns its URL and number.
// The body goes through a temp file since ads can exceed argv limits.
func (c *Client) CreateIssue(ctx context.Context, repo, title, body string) (string, int, error) {
	bodyFile, err := writeTempBody(body)
	if err != nil {
		return "", 0, err
	}
	defer os.Remove(bodyFile)

	out, err := c.run(ctx, "issue", "create",
		"--repo", repo,
		"--title", title,
		"--body-file", bodyFile)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create issue: %w", err)
	}

	issueURL := strings.TrimSpace(out)
	number, err := ParseIssueNumber(issueURL)
	if err != nil {
		return "", 0, err
	}
	return issueURL, number, nil
}

// Comment posts a markdown comment on an issue and returns the comment URL
func (c *Client) Comment(ctx context.Context, repo string, number int, body string) (string, error) {
	bodyFile, err := writeTempBody(body)
	if err != nil {
		return "", err
	}
	defer os.Remove(bodyFile)

	out, err := c.run(ctx, "issue", "comment", strconv.Itoa(number),
		"--repo", repo,
		"--body-file", bodyFile)
	if err != nil {
		return "", fmt.Errorf("failed to post comment: %w", err)
	}
	return strings.TrimSpace(out), nil
}

func writeTempBody(body string) (string, error) {
	f, err := os.CreateTemp("", "job-agent-*.md")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := f.WriteString(body); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to close temp file: %w", err)
	}
	return f.Name(), nil
}

// ParseIssueNumber extracts the issue number from a GitHub issue URL
// (format: https://github.com/owner/repo/issues/123).
func ParseIssueNumber(issueURL string) (int, error) {
	parts := strings.Split(strings.TrimRight(issueURL, "/"), "/")
	if len(parts) == 0 {
		return 0, fmt.Errorf("could not parse issue number from: %s", issueURL)
	}
	number, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return 0, fmt.Errorf("could not parse issue number from: %s", issueURL)
	}
	return number, nil
}
