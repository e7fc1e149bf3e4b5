package scan

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Snippet extraction defaults. The context window is widened when recency
// filtering is active because posting dates usually sit further from the
// keyword than the immediate phrase.
const (
	DefaultMaxSnippets = 2
	RecencyMaxSnippets = 1000
	contextWindow      = 40
	recencyWindow      = 100
)

// SearchMatch is one keyword with at least one occurrence on a page.
type SearchMatch struct {
	Keyword         string
	Count           int
	ContextSnippets []string
}

// MatchOptions controls keyword matching.
type MatchOptions struct {
	// MaxSnippets caps context snippets per keyword. Zero uses the default
	// for the active mode.
	MaxSnippets int
	// SinceDays, when positive, discards snippets whose surrounding text
	// contains a parseable date older than this many days. Snippets with no
	// recognizable date are kept.
	SinceDays int
	// Now anchors relative dates; zero means time.Now(). Settable in tests.
	Now time.Time
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// SearchKeywords finds case-insensitive whole-word keyword occurrences in
// text and returns matches sorted by count descending (stable on ties).
// Keywords containing regexp metacharacters are matched literally. Duplicate
// keywords are processed independently. With a since-window active, Count is
// the number of snippets surviving the date filter rather than the raw
// occurrence count: recency mode counts qualifying mentions, not mentions.
func SearchKeywords(text string, keywords []string, opts MatchOptions) []SearchMatch {
	var matches []SearchMatch

	for _, keyword := range keywords {
		wordRe, err := regexp.Compile(`(?i)\b` + regexp.QuoteMeta(keyword) + `\b`)
		if err != nil {
			continue
		}
		count := len(wordRe.FindAllStringIndex(text, -1))
		if count == 0 {
			continue
		}

		snippets := extractContext(text, keyword, opts)
		if opts.SinceDays > 0 {
			snippets = filterRecent(snippets, opts.SinceDays, opts.Now)
			count = len(snippets)
			if count == 0 {
				continue
			}
		}

		matches = append(matches, SearchMatch{
			Keyword:         keyword,
			Count:           count,
			ContextSnippets: snippets,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Count > matches[j].Count
	})
	return matches
}

// extractContext captures a bounded window of text around each keyword
// occurrence, collapses internal whitespace and wraps the snippet in
// ellipsis markers.
func extractContext(text, keyword string, opts MatchOptions) []string {
	window := contextWindow
	maxSnippets := opts.MaxSnippets
	if opts.SinceDays > 0 {
		window = recencyWindow
		if maxSnippets == 0 {
			maxSnippets = RecencyMaxSnippets
		}
	}
	if maxSnippets == 0 {
		maxSnippets = DefaultMaxSnippets
	}

	win := strconv.Itoa(window)
	pattern, err := regexp.Compile(`(?i).{0,` + win + `}\b` + regexp.QuoteMeta(keyword) + `\b.{0,` + win + `}`)
	if err != nil {
		return nil
	}

	var snippets []string
	for _, raw := range pattern.FindAllString(text, -1) {
		snippet := whitespaceRe.ReplaceAllString(strings.TrimSpace(raw), " ")
		if snippet == "" {
			continue
		}
		snippets = append(snippets, "..."+snippet+"...")
		if len(snippets) >= maxSnippets {
			break
		}
	}
	return snippets
}

// filterRecent keeps snippets whose parsed date falls within the window.
// Snippets with no parseable date are kept; absence of a recognizable date
// must never cause a false negative.
func filterRecent(snippets []string, sinceDays int, now time.Time) []string {
	if now.IsZero() {
		now = time.Now()
	}
	cutoff := now.AddDate(0, 0, -sinceDays)

	var kept []string
	for _, snippet := range snippets {
		ts, ok := ParseDate(snippet, now)
		if !ok || !ts.Before(cutoff) {
			kept = append(kept, snippet)
		}
	}
	return kept
}
