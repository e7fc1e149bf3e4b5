package fetch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubFetcher records calls and returns a fixed result or error.
type stubFetcher struct {
	result *Result
	err    error
	calls  int
}

func (s *stubFetcher) Fetch(_ context.Context, _ string) (*Result, error) {
	s.calls++
	return s.result, s.err
}

func TestClient_StaticSuccessSkipsBrowser(t *testing.T) {
	static := &stubFetcher{result: &Result{Content: "static content"}}
	browser := &stubFetcher{result: &Result{Content: "rendered content"}}
	c := &Client{Static: static, Browser: browser, Mode: ModeStaticThenBrowser}

	result, err := c.Fetch(context.Background(), "http://example.com")
	require.NoError(t, err)
	assert.Equal(t, "static content", result.Content)
	assert.Equal(t, 1, static.calls)
	assert.Equal(t, 0, browser.calls)
}

func TestClient_FallbackOnStaticFailure(t *testing.T) {
	static := &stubFetcher{err: &Error{URL: "http://example.com", Kind: KindRequestFailed, Message: "boom"}}
	browser := &stubFetcher{result: &Result{Content: "rendered content", Title: "Careers"}}
	c := &Client{Static: static, Browser: browser, Mode: ModeStaticThenBrowser}

	result, err := c.Fetch(context.Background(), "http://example.com")
	require.NoError(t, err)
	assert.Equal(t, "rendered content", result.Content)
	assert.Equal(t, 1, static.calls)
	assert.Equal(t, 1, browser.calls, "browser must be invoked exactly once")
}

func TestClient_FallbackSurfacesBrowserError(t *testing.T) {
	staticErr := &Error{URL: "http://example.com", Kind: KindRequestFailed, Message: "static boom"}
	browserErr := &Error{URL: "http://example.com", Kind: KindTimeout, Message: "nav timeout"}
	c := &Client{
		Static:  &stubFetcher{err: staticErr},
		Browser: &stubFetcher{err: browserErr},
		Mode:    ModeStaticThenBrowser,
	}

	_, err := c.Fetch(context.Background(), "http://example.com")
	require.Error(t, err)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	// The browser error is final; the static failure is not visible.
	assert.Equal(t, KindTimeout, fetchErr.Kind)
	assert.False(t, errors.Is(err, staticErr))
}

func TestClient_BrowserOnlySkipsStatic(t *testing.T) {
	static := &stubFetcher{result: &Result{Content: "static content"}}
	browser := &stubFetcher{result: &Result{Content: "rendered content"}}
	c := &Client{Static: static, Browser: browser, Mode: ModeBrowserOnly}

	result, err := c.Fetch(context.Background(), "http://example.com")
	require.NoError(t, err)
	assert.Equal(t, "rendered content", result.Content)
	assert.Equal(t, 0, static.calls)
}

func TestClient_StaticOnlyNoFallback(t *testing.T) {
	static := &stubFetcher{err: &Error{URL: "http://example.com", Kind: KindRequestFailed, Message: "boom"}}
	browser := &stubFetcher{result: &Result{Content: "rendered content"}}
	c := &Client{Static: static, Browser: browser, Mode: ModeStaticOnly}

	_, err := c.Fetch(context.Background(), "http://example.com")
	require.Error(t, err)
	assert.Equal(t, 0, browser.calls)
}
