// Package scan finds keyword matches on fetched career pages and drives
// multi-page scans. It also houses the best-effort posting-date parser used
// by the recency filter.
package scan

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	todayRe     = regexp.MustCompile(`(?i)\btoday\b`)
	yesterdayRe = regexp.MustCompile(`(?i)\byesterday\b`)
	daysAgoRe   = regexp.MustCompile(`(?i)\b(\d+)\s+days?\s+ago\b`)

	// Absolute patterns, tried in fixed order. Matching text is normalized
	// (3-letter month, commas stripped) before time.Parse.
	monthDayYearRe = regexp.MustCompile(`(?i)\b([A-Za-z]{3,9})\.?\s+(\d{1,2}),?\s+(\d{4})\b`)
	dayMonthYearRe = regexp.MustCompile(`(?i)\b(\d{1,2})\s+([A-Za-z]{3,9})\.?\s+(\d{4})\b`)
	isoDateRe      = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
	slashDateRe    = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{4})\b`)
)

var monthAbbrevs = map[string]string{
	"jan": "Jan", "feb": "Feb", "mar": "Mar", "apr": "Apr",
	"may": "May", "jun": "Jun", "jul": "Jul", "aug": "Aug",
	"sep": "Sep", "oct": "Oct", "nov": "Nov", "dec": "Dec",
}

// normalizeMonth reduces a full or abbreviated month name to its canonical
// 3-letter form. Returns empty string for non-month words.
func normalizeMonth(name string) string {
	if len(name) < 3 {
		return ""
	}
	return monthAbbrevs[strings.ToLower(name[:3])]
}

// ParseDate extracts a best-guess publication date from a text snippet.
// Resolution order: "today", "yesterday", "N day(s) ago", then absolute
// formats ("Jan 15, 2026", "15 Jan 2026", ISO, MM/DD/YYYY, DD/MM/YYYY).
// Slash dates are inherently ambiguous; MM/DD/YYYY always wins when it
// parses. A failed attempt falls through to the next pattern; no input ever
// produces an error, only ok=false.
func ParseDate(text string, now time.Time) (time.Time, bool) {
	if now.IsZero() {
		now = time.Now()
	}

	if todayRe.MatchString(text) {
		return now, true
	}
	if yesterdayRe.MatchString(text) {
		return now.AddDate(0, 0, -1), true
	}
	if m := daysAgoRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return now.AddDate(0, 0, -n), true
		}
	}

	// Each pattern can match non-date text (e.g. "the 15, 2026"), so every
	// candidate is tried before moving to the next pattern.
	for _, m := range monthDayYearRe.FindAllStringSubmatch(text, -1) {
		if month := normalizeMonth(m[1]); month != "" {
			if ts, err := time.Parse("Jan 2 2006", month+" "+m[2]+" "+m[3]); err == nil {
				return ts, true
			}
		}
	}
	for _, m := range dayMonthYearRe.FindAllStringSubmatch(text, -1) {
		if month := normalizeMonth(m[2]); month != "" {
			if ts, err := time.Parse("2 Jan 2006", m[1]+" "+month+" "+m[3]); err == nil {
				return ts, true
			}
		}
	}
	for _, m := range isoDateRe.FindAllStringSubmatch(text, -1) {
		if ts, err := time.Parse("2006-01-02", m[0]); err == nil {
			return ts, true
		}
	}
	for _, m := range slashDateRe.FindAllStringSubmatch(text, -1) {
		candidate := m[1] + "/" + m[2] + "/" + m[3]
		if ts, err := time.Parse("1/2/2006", candidate); err == nil {
			return ts, true
		}
		if ts, err := time.Parse("2/1/2006", candidate); err == nil {
			return ts, true
		}
	}

	return time.Time{}, false
}
