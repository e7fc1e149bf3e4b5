package scan

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/job-agent/internal/config"
	"github.com/jonathan/job-agent/internal/fetch"
)

// mapFetcher serves canned content per URL and fails for unknown URLs.
type mapFetcher struct {
	mu      sync.Mutex
	pages   map[string]string
	fetched []string
}

func (m *mapFetcher) Fetch(_ context.Context, url string) (*fetch.Result, error) {
	m.mu.Lock()
	m.fetched = append(m.fetched, url)
	m.mu.Unlock()

	content, ok := m.pages[url]
	if !ok {
		return nil, &fetch.Error{URL: url, Kind: fetch.KindRequestFailed, Message: "connection refused"}
	}
	return &fetch.Result{Content: content}, nil
}

func testPages() []config.CareerPage {
	return []config.CareerPage{
		{Company: "Acme", URL: "http://acme.example/careers"},
		{Company: "Initech", URL: "http://initech.example/jobs"},
		{Company: "Umbrella", URL: "http://umbrella.example/openings"},
	}
}

func staticKeywords(kw ...string) func(config.CareerPage) []string {
	return func(config.CareerPage) []string { return kw }
}

func TestScanPage_Success(t *testing.T) {
	fetcher := &mapFetcher{pages: map[string]string{
		"http://a": "We need a Python developer urgently.",
	}}
	s := &Scanner{Fetcher: fetcher}

	result := s.ScanPage(context.Background(), config.CareerPage{Company: "A", URL: "http://a"}, []string{"python"})
	require.True(t, result.Success)
	assert.Equal(t, len("We need a Python developer urgently."), result.ContentLength)
	require.Len(t, result.Matches, 1)
	assert.Equal(t, "python", result.Matches[0].Keyword)
	assert.Equal(t, 1, result.Matches[0].Count)
	require.Len(t, result.Matches[0].ContextSnippets, 1)
	assert.Contains(t, result.Matches[0].ContextSnippets[0], "We need a Python developer")
}

func TestScanPage_FetchError(t *testing.T) {
	s := &Scanner{Fetcher: &mapFetcher{}}

	result := s.ScanPage(context.Background(), config.CareerPage{Company: "A", URL: "http://down"}, []string{"go"})
	assert.False(t, result.Success)
	assert.Contains(t, result.ErrorMessage, "connection refused")
	assert.Empty(t, result.Matches)
}

func TestScanPage_EmptyContent(t *testing.T) {
	fetcher := &mapFetcher{pages: map[string]string{"http://empty": "   \n  "}}
	s := &Scanner{Fetcher: fetcher}

	result := s.ScanPage(context.Background(), config.CareerPage{Company: "A", URL: "http://empty"}, []string{"go"})
	assert.False(t, result.Success)
	assert.Equal(t, "no text content extracted from page", result.ErrorMessage)
}

func TestScanAll_FailureDoesNotAbortBatch(t *testing.T) {
	pages := testPages()
	fetcher := &mapFetcher{pages: map[string]string{
		pages[0].URL: "Go engineers wanted",
		// pages[1] fails
		pages[2].URL: "More Go roles",
	}}
	s := &Scanner{Fetcher: fetcher}

	results := s.ScanAll(context.Background(), pages, staticKeywords("go"))
	require.Len(t, results, 3)
	assert.True(t, results[0].Success)
	assert.False(t, results[1].Success)
	assert.NotEmpty(t, results[1].ErrorMessage)
	assert.True(t, results[2].Success)

	// Input order preserved.
	assert.Equal(t, "Acme", results[0].Page.Company)
	assert.Equal(t, "Initech", results[1].Page.Company)
	assert.Equal(t, "Umbrella", results[2].Page.Company)
}

func TestScanAll_StatusCallbackPerPage(t *testing.T) {
	pages := testPages()
	fetcher := &mapFetcher{pages: map[string]string{}}
	var started []string
	s := &Scanner{
		Fetcher: fetcher,
		OnStart: func(p config.CareerPage) { started = append(started, p.Company) },
	}

	s.ScanAll(context.Background(), pages, staticKeywords("go"))
	assert.Equal(t, []string{"Acme", "Initech", "Umbrella"}, started)
}

func TestScanAllParallel_PreservesInputOrder(t *testing.T) {
	pages := testPages()
	fetcher := &mapFetcher{pages: map[string]string{
		pages[0].URL: "Go engineers wanted",
		pages[2].URL: "More Go roles here and Go again",
	}}
	s := &Scanner{Fetcher: fetcher}

	results := s.ScanAllParallel(context.Background(), pages, staticKeywords("go"))
	require.Len(t, results, 3)
	assert.Equal(t, "Acme", results[0].Page.Company)
	assert.Equal(t, "Initech", results[1].Page.Company)
	assert.Equal(t, "Umbrella", results[2].Page.Company)

	assert.True(t, results[0].Success)
	assert.False(t, results[1].Success)
	assert.True(t, results[2].Success)
	assert.Equal(t, 2, results[2].TotalMatches())

	// Every page was dispatched.
	assert.Len(t, fetcher.fetched, 3)
}

func TestPageScanResult_DerivedProperties(t *testing.T) {
	r := PageScanResult{
		Matches: []SearchMatch{
			{Keyword: "go", Count: 3},
			{Keyword: "rust", Count: 1},
		},
	}
	assert.Equal(t, 4, r.TotalMatches())
	assert.Equal(t, []string{"go", "rust"}, r.MatchedKeywords())
}
