package scan

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/job-agent/internal/config"
	"github.com/jonathan/job-agent/internal/fetch"
)

// PageScanResult is the outcome of scanning a single career page. A failed
// page never aborts the batch; the failure is captured here instead.
type PageScanResult struct {
	Page          config.CareerPage
	Success       bool
	Matches       []SearchMatch
	ErrorMessage  string
	ContentLength int
}

// TotalMatches sums the match counts across all keywords.
func (r PageScanResult) TotalMatches() int {
	total := 0
	for _, m := range r.Matches {
		total += m.Count
	}
	return total
}

// MatchedKeywords lists the keywords that occurred at least once.
func (r PageScanResult) MatchedKeywords() []string {
	var keywords []string
	for _, m := range r.Matches {
		if m.Count > 0 {
			keywords = append(keywords, m.Keyword)
		}
	}
	return keywords
}

// Scanner drives keyword scans across configured career pages.
type Scanner struct {
	Fetcher fetch.Fetcher
	Opts    MatchOptions
	// OnStart, when set, is called before each page's scan begins. In
	// parallel mode the calls happen as goroutines launch, in dispatch order.
	OnStart func(page config.CareerPage)
}

// ScanPage fetches one page and matches keywords against its text. It never
// returns an error: fetch failures and empty content are captured in the
// result with Success=false.
func (s *Scanner) ScanPage(ctx context.Context, page config.CareerPage, keywords []string) PageScanResult {
	result, err := s.Fetcher.Fetch(ctx, page.URL)
	if err != nil {
		return PageScanResult{
			Page:         page,
			Success:      false,
			ErrorMessage: err.Error(),
		}
	}

	if strings.TrimSpace(result.Content) == "" {
		return PageScanResult{
			Page:         page,
			Success:      false,
			ErrorMessage: "no text content extracted from page",
		}
	}

	return PageScanResult{
		Page:          page,
		Success:       true,
		Matches:       SearchKeywords(result.Content, keywords, s.Opts),
		ContentLength: len(result.Content),
	}
}

// ScanAll scans every page sequentially, in declaration order. Each page
// runs to completion before the next starts.
func (s *Scanner) ScanAll(ctx context.Context, pages []config.CareerPage, keywordsFor func(config.CareerPage) []string) []PageScanResult {
	results := make([]PageScanResult, 0, len(pages))
	for _, page := range pages {
		if s.OnStart != nil {
			s.OnStart(page)
		}
		results = append(results, s.ScanPage(ctx, page, keywordsFor(page)))
	}
	return results
}

// ScanAllParallel dispatches every page at once and joins when all have
// settled. Fan-out is deliberately unbounded: the page list is a small
// user-configured set, not a crawl frontier. Results preserve input-page
// order regardless of completion order, and a page's failure never cancels
// its siblings.
func (s *Scanner) ScanAllParallel(ctx context.Context, pages []config.CareerPage, keywordsFor func(config.CareerPage) []string) []PageScanResult {
	results := make([]PageScanResult, len(pages))

	g, gCtx := errgroup.WithContext(ctx)
	for i, page := range pages {
		if s.OnStart != nil {
			s.OnStart(page)
		}
		g.Go(func() error {
			results[i] = s.ScanPage(gCtx, page, keywordsFor(page))
			return nil
		})
	}
	// ScanPage captures all failures, so the group never errors.
	_ = g.Wait()

	return results
}
