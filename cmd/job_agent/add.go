package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jonathan/job-agent/internal/db"
	"github.com/jonathan/job-agent/internal/fetch"
	"github.com/jonathan/job-agent/internal/ghcli"
	"github.com/jonathan/job-agent/internal/llm"
)

var addCmd = &cobra.Command{
	Use:   "add [url]",
	Short: "Add a job posting from a URL or GitHub issue",
	Long: "Fetch a job ad, optionally extract structured fields with AI, and store it. " +
		"Re-adding an existing URL updates the record in place.",
	Args: cobra.MaximumNArgs(1),
	RunE: runAdd,
}

var (
	addFromIssue  int
	addStructured bool
	addBrowser    bool
	addStatic     bool
)

func init() {
	addCmd.Flags().IntVar(&addFromIssue, "from-issue", 0, "Import from a GitHub issue number instead of a URL")
	addCmd.Flags().BoolVarP(&addStructured, "structured", "s", false, "Extract structured fields with AI")
	addCmd.Flags().BoolVarP(&addBrowser, "browser", "b", false, "Fetch with a headless browser only")
	addCmd.Flags().BoolVar(&addStatic, "static", false, "Fetch with plain HTTP only, no browser fallback")

	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	url := ""
	if len(args) > 0 {
		url = args[0]
	}

	if url != "" && addFromIssue > 0 {
		return fmt.Errorf("provide either a URL or --from-issue, not both")
	}
	if url == "" && addFromIssue == 0 {
		return fmt.Errorf("provide a URL or --from-issue")
	}

	structured := addStructured || settings.Add.Structured

	ctx := cmd.Context()
	conn, err := openDB(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	var input *db.JobCreateInput
	if addFromIssue > 0 {
		input, err = jobFromIssue(ctx, addFromIssue, structured)
	} else {
		input, err = jobFromURL(ctx, url, structured, addBrowser || settings.Add.Browser, addStatic)
	}
	if err != nil {
		return err
	}

	job, err := conn.UpsertJob(ctx, input)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Added job %s: %s at %s\n", job.ID, job.Title, job.Company)
	return nil
}

// jobFromURL fetches a posting and builds the record, extracting fields
// with AI when structured is set.
func jobFromURL(ctx context.Context, url string, structured, browser, static bool) (*db.JobCreateInput, error) {
	mode, err := fetchMode(browser, static)
	if err != nil {
		return nil, err
	}

	log.Debug().Str("url", url).Msg("fetching job posting")
	result, err := fetch.NewClient(mode).Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	if !structured {
		return &db.JobCreateInput{
			URL:         url,
			Title:       result.Title,
			FullAd:      result.Content,
			SourceTitle: result.Title,
		}, nil
	}

	client, err := newLLMClient(ctx)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	model := settings.GetModel(firstNonEmpty(modelFlag, settings.Add.Model))
	log.Debug().Str("model", model).Msg("extracting job fields")

	extracted, err := llm.ExtractJobAd(ctx, client, model, url, result.Content)
	if err != nil {
		return nil, err
	}
	return &db.JobCreateInput{
		URL:           url,
		Title:         extracted.Title,
		Company:       extracted.Company,
		Location:      extracted.Location,
		Deadline:      extracted.Deadline,
		Department:    extracted.Department,
		HiringManager: extracted.HiringManager,
		FullAd:        extracted.FullAd,
		SourceTitle:   result.Title,
	}, nil
}

// jobFromIssue imports a job from a GitHub issue created by `job gh issue`,
// falling back to the raw body for free-form issues.
func jobFromIssue(ctx context.Context, number int, structured bool) (*db.JobCreateInput, error) {
	if err := ghcli.EnsureGH(); err != nil {
		return nil, err
	}

	log.Debug().Int("issue", number).Msg("fetching GitHub issue")
	issue, err := ghcli.NewClient().ViewIssue(ctx, number)
	if err != nil {
		return nil, err
	}

	parsed := ghcli.ParseIssueBody(issue.Body)
	url := parsed.URL
	if url == "" {
		url = issue.URL
	}

	input := &db.JobCreateInput{
		URL:           url,
		Title:         issue.Title,
		Company:       parsed.Company,
		Location:      parsed.Location,
		Deadline:      parsed.Deadline,
		Department:    parsed.Department,
		HiringManager: parsed.HiringManager,
		FullAd:        parsed.FullAd,
		SourceTitle:   issue.Title,
	}
	if !structured {
		return input, nil
	}

	client, err := newLLMClient(ctx)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	model := settings.GetModel(firstNonEmpty(modelFlag, settings.Add.Model))
	combined := fmt.Sprintf("Title: %s\n\n%s", issue.Title, issue.Body)
	extracted, err := llm.ExtractJobAd(ctx, client, model, url, combined)
	if err != nil {
		return nil, err
	}

	input.Title = extracted.Title
	input.Company = extracted.Company
	input.Location = extracted.Location
	input.Deadline = extracted.Deadline
	input.Department = extracted.Department
	input.HiringManager = extracted.HiringManager
	// The issue body stays authoritative for the ad text
	return input, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
