package scan

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var anchor = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func TestParseDate_RelativePhrases(t *testing.T) {
	for _, n := range []int{0, 1, 5, 30} {
		text := fmt.Sprintf("Posted %d days ago", n)
		ts, ok := ParseDate(text, anchor)
		require.True(t, ok, text)
		assert.WithinDuration(t, anchor.AddDate(0, 0, -n), ts, time.Second, text)
	}
}

func TestParseDate_TodayYesterday(t *testing.T) {
	ts, ok := ParseDate("Posted today", anchor)
	require.True(t, ok)
	assert.Equal(t, anchor, ts)

	ts, ok = ParseDate("Posted Yesterday", anchor)
	require.True(t, ok)
	assert.Equal(t, anchor.AddDate(0, 0, -1), ts)
}

func TestParseDate_AbsoluteFormats(t *testing.T) {
	expected := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		text string
	}{
		{"month day year", "Posted Jan 15, 2026"},
		{"full month name", "Posted January 15, 2026"},
		{"day month year", "Posted on 15 Jan 2026"},
		{"iso", "Posted 2026-01-15 by HR"},
		{"slash mm/dd", "Posted 01/15/2026"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ts, ok := ParseDate(tc.text, anchor)
			require.True(t, ok)
			assert.Equal(t, expected, ts)
		})
	}
}

func TestParseDate_ISOExact(t *testing.T) {
	ts, ok := ParseDate("2026-01-15", anchor)
	require.True(t, ok)
	assert.Equal(t, 2026, ts.Year())
	assert.Equal(t, time.January, ts.Month())
	assert.Equal(t, 15, ts.Day())
}

func TestParseDate_SlashAmbiguityPrefersMonthFirst(t *testing.T) {
	// 03/04/2026 always resolves as March 4, never April 3. Fixed priority,
	// no locale detection.
	ts, ok := ParseDate("03/04/2026", anchor)
	require.True(t, ok)
	assert.Equal(t, time.March, ts.Month())
	assert.Equal(t, 4, ts.Day())
}

func TestParseDate_SlashDayFirstFallback(t *testing.T) {
	// 25/12/2026 cannot be month-first, so the day-first parse wins.
	ts, ok := ParseDate("25/12/2026", anchor)
	require.True(t, ok)
	assert.Equal(t, time.December, ts.Month())
	assert.Equal(t, 25, ts.Day())
}

func TestParseDate_SkipsNonDateCandidates(t *testing.T) {
	// "the 15, 2026" matches the month-day-year shape but "the" is not a
	// month; the later real date must still be found.
	ts, ok := ParseDate("see the 15, 2026 update ... Feb 3, 2026", anchor)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC), ts)

	// Same for day-month-year: "12 nothing 2026" is shaped right but has no
	// month name.
	ts, ok = ParseDate("12 nothing 2026 then 3 Feb 2026", anchor)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 2, 3, 0, 0, 0, 0, time.UTC), ts)
}

func TestParseDate_SkipsUnparseableSlashCandidates(t *testing.T) {
	ts, ok := ParseDate("ref 99/99/2026, posted 01/15/2026", anchor)
	require.True(t, ok)
	assert.Equal(t, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), ts)
}

func TestParseDate_Unrecognizable(t *testing.T) {
	for _, text := range []string{"banana", "", "99/99/9999", "Foo 15, 2026", "some day soon"} {
		_, ok := ParseDate(text, anchor)
		assert.False(t, ok, text)
	}
}

func TestParseDate_MalformedNeverPanics(t *testing.T) {
	// Date-like garbage falls through pattern by pattern.
	_, ok := ParseDate("Posted 45 Jan 2026 and also 13/45/2026", anchor)
	assert.False(t, ok)
}
