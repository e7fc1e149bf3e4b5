package fetch

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Mode selects the fetch strategy composition. The caller decides the mode
// explicitly; it is never inferred from the page.
type Mode int

const (
	// ModeStaticThenBrowser tries the static fetch first and retries with
	// the browser on any static failure.
	ModeStaticThenBrowser Mode = iota
	// ModeStaticOnly never launches a browser.
	ModeStaticOnly
	// ModeBrowserOnly skips the static attempt, for pages known to be
	// JS-rendered.
	ModeBrowserOnly
)

// Client composes the two fetch strategies behind a single Fetch call.
type Client struct {
	Static  Fetcher
	Browser Fetcher
	Mode    Mode
}

// NewClient builds a client with default fetchers and the given mode.
func NewClient(mode Mode) *Client {
	return &Client{
		Static:  NewStaticFetcher(0),
		Browser: NewBrowserFetcher(0, 0),
		Mode:    mode,
	}
}

// Fetch retrieves the page using the configured mode. In fallback mode the
// static failure is observed in the log only; the browser result or error is
// final. There are no retries beyond the single static-to-browser fallback.
func (c *Client) Fetch(ctx context.Context, url string) (*Result, error) {
	switch c.Mode {
	case ModeStaticOnly:
		return c.Static.Fetch(ctx, url)
	case ModeBrowserOnly:
		return c.Browser.Fetch(ctx, url)
	default:
		result, err := c.Static.Fetch(ctx, url)
		if err == nil {
			return result, nil
		}
		log.Debug().Str("url", url).Err(err).Msg("static fetch failed, retrying with browser")
		return c.Browser.Fetch(ctx, url)
	}
}
