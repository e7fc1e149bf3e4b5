// Package fetch - browser.go renders pages in a headless browser for
// JavaScript-dependent career pages and job boards.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"
)

// Browser fetch defaults.
const (
	DefaultNavTimeout = 30 * time.Second
	DefaultSettleTime = 2 * time.Second
	// networkQuietWindow is the event-free window after which the network
	// is considered idle.
	networkQuietWindow = 500 * time.Millisecond
)

// WaitStrategy selects what the browser waits for before the settle sleep.
type WaitStrategy int

const (
	// WaitDOMReady waits for the body element to be ready.
	WaitDOMReady WaitStrategy = iota
	// WaitNetworkIdle additionally waits for a quiet window with no
	// network activity, for pages that load listings over XHR.
	WaitNetworkIdle
)

// BrowserFetcher retrieves page content by rendering it in headless Chrome.
type BrowserFetcher struct {
	NavTimeout time.Duration
	SettleTime time.Duration
	WaitUntil  WaitStrategy
}

// NewBrowserFetcher creates a browser fetcher. Zero durations use defaults.
func NewBrowserFetcher(navTimeout, settleTime time.Duration) *BrowserFetcher {
	if navTimeout <= 0 {
		navTimeout = DefaultNavTimeout
	}
	if settleTime <= 0 {
		settleTime = DefaultSettleTime
	}
	return &BrowserFetcher{NavTimeout: navTimeout, SettleTime: settleTime}
}

// chromeBinaries are executable names probed by EnsureBrowser.
var chromeBinaries = []string{
	"google-chrome",
	"google-chrome-stable",
	"chromium",
	"chromium-browser",
	"chrome",
}

// EnsureBrowser verifies that a Chrome or Chromium binary is available.
// Installing one is an operator step, not something this package performs.
func EnsureBrowser() error {
	for _, bin := range chromeBinaries {
		if _, err := exec.LookPath(bin); err == nil {
			return nil
		}
	}
	return fmt.Errorf("no Chrome or Chromium binary found in PATH (tried %s); install one to enable browser fetching",
		strings.Join(chromeBinaries, ", "))
}

// Fetch navigates to the URL, waits for the page to render, then extracts
// the visible body text and document title.
func (f *BrowserFetcher) Fetch(ctx context.Context, urlStr string) (*Result, error) {
	if err := EnsureBrowser(); err != nil {
		return nil, &Error{URL: urlStr, Kind: KindRequestFailed, Message: "browser unavailable", Cause: err}
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, f.NavTimeout)
	defer cancel()

	actions := []chromedp.Action{
		network.Enable(),
		chromedp.Navigate(urlStr),
		chromedp.WaitReady("body", chromedp.ByQuery),
	}
	if f.WaitUntil == WaitNetworkIdle {
		actions = append(actions, waitNetworkIdle(networkQuietWindow))
	}

	var content, title string
	actions = append(actions,
		chromedp.Sleep(f.SettleTime),
		chromedp.Evaluate(`document.body ? document.body.innerText : ""`, &content),
		chromedp.Title(&title),
	)

	if err := chromedp.Run(browserCtx, actions...); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, &Error{
				URL:     urlStr,
				Kind:    KindTimeout,
				Message: fmt.Sprintf("navigation timed out after %s", f.NavTimeout),
				Cause:   err,
			}
		}
		return nil, &Error{URL: urlStr, Kind: KindRequestFailed, Message: "browser rendering failed", Cause: err}
	}

	log.Debug().Str("url", urlStr).Int("chars", len(content)).Str("title", title).Msg("browser fetch ok")
	return &Result{Content: content, Title: strings.TrimSpace(title)}, nil
}

// waitNetworkIdle blocks until no network events have been observed for the
// quiet window, or the context is done.
func waitNetworkIdle(quiet time.Duration) chromedp.ActionFunc {
	return func(ctx context.Context) error {
		activity := make(chan struct{}, 1)
		chromedp.ListenTarget(ctx, func(ev interface{}) {
			switch ev.(type) {
			case *network.EventRequestWillBeSent, *network.EventLoadingFinished, *network.EventLoadingFailed:
				select {
				case activity <- struct{}{}:
				default:
				}
			}
		})

		timer := time.NewTimer(quiet)
		defer timer.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-activity:
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(quiet)
			case <-timer.C:
				return nil
			}
		}
	}
}
