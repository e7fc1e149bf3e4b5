package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticFetch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head><title>Acme Careers</title></head>
			<body><h1>Open Roles</h1><p>We need a Python developer urgently.</p></body></html>`))
	}))
	defer server.Close()

	result, err := NewStaticFetcher(0).Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "Acme Careers", result.Title)
	assert.Contains(t, result.Content, "Open Roles")
	assert.Contains(t, result.Content, "Python developer")
}

func TestStaticFetch_InvalidURL(t *testing.T) {
	_, err := NewStaticFetcher(0).Fetch(context.Background(), "not-a-valid-url")
	require.Error(t, err)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, KindRequestFailed, fetchErr.Kind)
	assert.Contains(t, err.Error(), "invalid URL")
}

func TestStaticFetch_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := NewStaticFetcher(0).Fetch(context.Background(), server.URL)
	require.Error(t, err)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, KindRequestFailed, fetchErr.Kind)
	assert.Contains(t, err.Error(), "404")
}

func TestStaticFetch_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte("<html><body>late</body></html>"))
	}))
	defer server.Close()

	_, err := NewStaticFetcher(20 * time.Millisecond).Fetch(context.Background(), server.URL)
	require.Error(t, err)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, KindTimeout, fetchErr.Kind)
}

func TestExtractText_BodyWithBlocks(t *testing.T) {
	html := `
	<html>
		<head><title>  Jobs  </title></head>
		<body>
			<div>First block</div>
			<div>  Second block  </div>
			<script>ignored()</script>
		</body>
	</html>`

	result, err := ExtractText(html)
	require.NoError(t, err)
	assert.Equal(t, "Jobs", result.Title)
	assert.Equal(t, "First block\nSecond block", result.Content)
}

func TestExtractText_NoBody(t *testing.T) {
	// goquery normalizes fragments into a body, but a non-HTML payload
	// still extracts as whole-document text.
	result, err := ExtractText("just some plain text")
	require.NoError(t, err)
	assert.Contains(t, result.Content, "just some plain text")
	assert.Empty(t, result.Title)
}

func TestExtractText_NoTitle(t *testing.T) {
	result, err := ExtractText("<html><body><p>content</p></body></html>")
	require.NoError(t, err)
	assert.Empty(t, result.Title)
	assert.Equal(t, "content", result.Content)
}
