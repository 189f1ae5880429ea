package reference_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"storefront_ai_server/internal/reference"
)

const samplePage = `<!doctype html><html><head><title>Brew</title><style>body{color:red}</style></head>
<body><nav>Skip me</nav><main><h1>Slow coffee</h1><p>Roasted <strong>weekly</strong>.</p>
<script>alert(1)</script><ul><li>Single origin</li><li>Free shipping</li></ul></main></body></html>`

func TestDigest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(samplePage))
	}))
	defer srv.Close()

	f := reference.NewHTTPFetcher(time.Second, reference.WithHTTPClient(srv.Client()))
	md, err := f.Digest(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Contains(t, md, "# Slow coffee")
	assert.Contains(t, md, "**weekly**")
	assert.Contains(t, md, "Single origin")
	assert.NotContains(t, md, "alert")
	assert.NotContains(t, md, "Skip me")
}

func TestDigest_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	f := reference.NewHTTPFetcher(time.Second, reference.WithHTTPClient(srv.Client()))
	_, err := f.Digest(context.Background(), srv.URL)
	assert.ErrorContains(t, err, "status: 404")

	for _, u := range []string{"", "ftp://example.com", "/relative", "javascript:alert(1)"} {
		_, err := f.Digest(context.Background(), u)
		assert.ErrorIs(t, err, reference.ErrUnsupportedURL, u)
	}
}

func TestSummarize_Truncates(t *testing.T) {
	doc, err := html.Parse(strings.NewReader("<body><p>" + strings.Repeat("é", 50) + "</p></body>"))
	require.NoError(t, err)

	md, err := reference.Summarize(doc, 10)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("é", 10)+"\n…", md)
}
