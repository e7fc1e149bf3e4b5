// Package fetch retrieves rendered page text from job posting and career page
// URLs. Two interchangeable strategies are provided: a fast static HTTP GET
// with HTML-to-text extraction, and a headless browser render for
// JavaScript-heavy pages.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"
)

// DefaultStaticTimeout is the default timeout for a static HTTP fetch.
const DefaultStaticTimeout = 15 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; JobAgent/1.0)"

// Result holds the extracted text content from a page fetch.
// Title is empty when the document has no usable title.
type Result struct {
	Content string
	Title   string
}

// Kind classifies a fetch failure.
type Kind int

const (
	// KindRequestFailed covers transport errors, non-2xx statuses,
	// navigation errors and browser crashes.
	KindRequestFailed Kind = iota
	// KindTimeout means the configured fetch timeout was exceeded.
	KindTimeout
)

func (k Kind) String() string {
	if k == KindTimeout {
		return "timeout"
	}
	return "request failed"
}

// Error represents a failed page fetch.
type Error struct {
	URL     string
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Fetcher is the common contract for page fetching strategies.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Result, error)
}

// StaticFetcher retrieves page content with a plain HTTP GET, without
// executing page scripts.
type StaticFetcher struct {
	Timeout   time.Duration
	UserAgent string
	client    *http.Client
}

// NewStaticFetcher creates a static fetcher with the given timeout.
// A zero timeout uses DefaultStaticTimeout.
func NewStaticFetcher(timeout time.Duration) *StaticFetcher {
	if timeout <= 0 {
		timeout = DefaultStaticTimeout
	}
	return &StaticFetcher{
		Timeout:   timeout,
		UserAgent: DefaultUserAgent,
		client:    &http.Client{Timeout: timeout},
	}
}

// Fetch issues one GET request and extracts the document text.
func (f *StaticFetcher) Fetch(ctx context.Context, urlStr string) (*Result, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, &Error{URL: urlStr, Kind: KindRequestFailed, Message: "invalid URL", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &Error{URL: urlStr, Kind: KindRequestFailed, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", f.UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		kind := KindRequestFailed
		msg := "HTTP request failed"
		if isTimeout(err) {
			kind = KindTimeout
			msg = fmt.Sprintf("request timed out after %s", f.Timeout)
		}
		return nil, &Error{URL: urlStr, Kind: kind, Message: msg, Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{URL: urlStr, Kind: KindRequestFailed, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{URL: urlStr, Kind: KindRequestFailed, Message: "failed to read response body", Cause: err}
	}

	result, err := ExtractText(string(bodyBytes))
	if err != nil {
		return nil, &Error{URL: urlStr, Kind: KindRequestFailed, Message: "failed to parse HTML", Cause: err}
	}

	log.Debug().Str("url", urlStr).Int("chars", len(result.Content)).Msg("static fetch ok")
	return result, nil
}

// ExtractText converts an HTML document into plain text. Text is taken from
// the <body> element when present, otherwise from the whole document. Each
// text node is trimmed and nodes are newline-joined; script, style and
// noscript content is skipped. The document <title> is returned alongside.
func ExtractText(htmlStr string) (*Result, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlStr))
	if err != nil {
		return nil, err
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())

	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}

	return &Result{Content: nodeText(root), Title: title}, nil
}

// nodeText walks the selection's nodes collecting trimmed text node
// contents joined by newlines.
func nodeText(sel *goquery.Selection) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
			return
		}
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "title":
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return strings.Join(parts, "\n")
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
