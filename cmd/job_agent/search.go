package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jonathan/job-agent/internal/config"
	"github.com/jonathan/job-agent/internal/fetch"
	"github.com/jonathan/job-agent/internal/scan"
)

var searchCmd = &cobra.Command{
	Use:   "search [keywords...]",
	Short: "Scan configured career pages for keywords",
	Long: "Fetch every enabled career page from job.toml and report keyword matches " +
		"with surrounding context. Keywords given on the command line replace the " +
		"configured defaults for this run.",
	RunE: runSearch,
}

var (
	searchParallel bool
	searchSince    int
	searchBrowser  bool
	searchStatic   bool
	searchCompany  string
)

func init() {
	searchCmd.Flags().BoolVarP(&searchParallel, "parallel", "p", false, "Scan pages concurrently")
	searchCmd.Flags().IntVar(&searchSince, "since", 0, "Only count mentions near a date within the last N days")
	searchCmd.Flags().BoolVarP(&searchBrowser, "browser", "b", false, "Fetch with a headless browser only")
	searchCmd.Flags().BoolVar(&searchStatic, "static", false, "Fetch with plain HTTP only, no browser fallback")
	searchCmd.Flags().StringVar(&searchCompany, "company", "", "Scan only pages whose company name contains this string")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	search := settings.Search
	if len(args) > 0 {
		search.Keywords = args
	}
	if cmd.Flags().Changed("since") {
		search.Since = searchSince
	}
	parallel := searchParallel || search.Parallel

	pages := search.EnabledPages()
	if searchCompany != "" {
		var filtered []config.CareerPage
		needle := strings.ToLower(searchCompany)
		for _, p := range pages {
			if strings.Contains(strings.ToLower(p.Company), needle) {
				filtered = append(filtered, p)
			}
		}
		pages = filtered
	}
	if len(pages) == 0 {
		return fmt.Errorf("no career pages configured: add [[job.search.in]] entries to job.toml")
	}
	if len(search.Keywords) == 0 {
		return fmt.Errorf("no keywords configured: pass keywords or set [job.search] keywords")
	}

	mode, err := fetchMode(searchBrowser, searchStatic)
	if err != nil {
		return err
	}

	scanner := &scan.Scanner{
		Fetcher: fetch.NewClient(mode),
		Opts: scan.MatchOptions{
			SinceDays: search.Since,
			Now:       time.Now(),
		},
		OnStart: func(p config.CareerPage) {
			log.Info().Str("company", p.Company).Str("url", p.URL).Msg("scanning")
		},
	}

	ctx := cmd.Context()
	var results []scan.PageScanResult
	if parallel {
		results = scanner.ScanAllParallel(ctx, pages, search.KeywordsFor)
	} else {
		results = scanner.ScanAll(ctx, pages, search.KeywordsFor)
	}

	renderScanResults(results)
	return nil
}

func renderScanResults(results []scan.PageScanResult) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleRounded)
	t.Style().Options.SeparateRows = true
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, WidthMax: 70},
	})
	t.AppendHeader(table.Row{"Company", "Keyword", "Count", "Context"})

	successful := 0
	totalMatches := 0
	for _, r := range results {
		if !r.Success {
			t.AppendRow(table.Row{r.Page.Company, "-", "-", "error: " + r.ErrorMessage})
			continue
		}
		successful++
		totalMatches += r.TotalMatches()

		if len(r.Matches) == 0 {
			t.AppendRow(table.Row{r.Page.Company, "-", 0, "no matches"})
			continue
		}
		for _, m := range r.Matches {
			t.AppendRow(table.Row{
				r.Page.Company,
				m.Keyword,
				m.Count,
				strings.Join(m.ContextSnippets, "\n"),
			})
		}
	}
	t.Render()

	fmt.Fprintf(os.Stdout, "\n%d/%d pages scanned successfully, %d total matches\n",
		successful, len(results), totalMatches)
}
