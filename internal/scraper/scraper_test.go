package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/simplifiedchinese"

	"github.com/ocrandkong/ragflow/pkg/errors"
)

const samplePage = `<!DOCTYPE html>
<html>
<head>
<title> Sample Page </title>
<meta name="description" content="A page for tests">
<style>body { color: red; }</style>
</head>
<body>
<script>var tracked = true;</script>
<noscript>enable javascript</noscript>
<article id="main">
<h1>Privacy Policy</h1>
<p>We respect <strong>your</strong> privacy.</p>
</article>
<footer>contact us</footer>
</body>
</html>`

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "markdown", want: FormatMarkdown},
		{in: "MARKDOWN", want: FormatMarkdown},
		{in: "text", want: FormatText},
		{in: "Html", want: FormatHTML},
		{in: "pdf", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if tt.wantErr {
			require.Error(t, err, tt.in)
			assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInput))
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}

func TestFetch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(samplePage))
	}))
	defer ts.Close()

	s := New("test-agent/1.0")
	result, err := s.Fetch(context.Background(), ts.URL, 5*time.Second)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Equal(t, ts.URL, result.FinalURL)
	assert.Contains(t, result.ContentType, "text/html")
	assert.Contains(t, result.Body, "Privacy Policy")
}

func TestFetchDecodesNonUTF8Charset(t *testing.T) {
	const page = `<html><head><meta name="description" content="黑牌用户查询">` +
		`<title>奖励类查询</title></head><body><p>用户无法提现</p></body></html>`

	encoded, err := simplifiedchinese.GBK.NewEncoder().String(page)
	require.NoError(t, err)
	require.NotEqual(t, page, encoded, "sample must not already be valid UTF-8")

	t.Run("charset in Content-Type", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=gbk")
			_, _ = w.Write([]byte(encoded))
		}))
		defer ts.Close()

		s := New("test-agent/1.0")
		result, err := s.Fetch(context.Background(), ts.URL, 5*time.Second)
		require.NoError(t, err)
		assert.Contains(t, result.Body, "用户无法提现")

		parsed, err := Parse(result.Body)
		require.NoError(t, err)
		assert.Equal(t, "奖励类查询", parsed.Title)
		assert.Equal(t, "黑牌用户查询", parsed.Description)
	})

	t.Run("charset in meta tag only", func(t *testing.T) {
		const metaPage = `<html><head><meta charset="gbk">` +
			`<title>奖励类查询</title></head><body></body></html>`
		metaEncoded, err := simplifiedchinese.GBK.NewEncoder().String(metaPage)
		require.NoError(t, err)

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(metaEncoded))
		}))
		defer ts.Close()

		s := New("test-agent/1.0")
		result, err := s.Fetch(context.Background(), ts.URL, 5*time.Second)
		require.NoError(t, err)
		assert.Contains(t, result.Body, "奖励类查询")
	})
}

func TestFetchFollowsRedirects(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/old" {
			http.Redirect(w, r, "/new", http.StatusMovedPermanently)
			return
		}
		_, _ = w.Write([]byte("<html><body>landed</body></html>"))
	}))
	defer ts.Close()

	s := New("test-agent/1.0")
	result, err := s.Fetch(context.Background(), ts.URL+"/old", 5*time.Second)
	require.NoError(t, err)
	assert.Equal(t, ts.URL+"/new", result.FinalURL)
}

func TestFetchErrors(t *testing.T) {
	t.Run("invalid URL", func(t *testing.T) {
		s := New("test-agent/1.0")
		for _, bad := range []string{"", "example.com/no-scheme", "ftp://example.com", "https://"} {
			_, err := s.Fetch(context.Background(), bad, time.Second)
			require.Error(t, err, bad)
			assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInput), bad)
		}
	})

	t.Run("non-success status", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer ts.Close()

		s := New("test-agent/1.0")
		_, err := s.Fetch(context.Background(), ts.URL, time.Second)
		require.Error(t, err)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeTransport))
	})

	t.Run("timeout", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(300 * time.Millisecond)
		}))
		defer ts.Close()

		s := New("test-agent/1.0")
		_, err := s.Fetch(context.Background(), ts.URL, 50*time.Millisecond)
		require.Error(t, err)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeTransport))
	})
}

func TestParseMetadata(t *testing.T) {
	page, err := Parse(samplePage)
	require.NoError(t, err)
	assert.Equal(t, "Sample Page", page.Title)
	assert.Equal(t, "A page for tests", page.Description)
}

func TestExtractMarkdown(t *testing.T) {
	page, err := Parse(samplePage)
	require.NoError(t, err)

	content, err := page.Extract("", FormatMarkdown, true, true)
	require.NoError(t, err)
	assert.Contains(t, content, "Privacy Policy")
	assert.Contains(t, content, "**your**")
	assert.NotContains(t, content, "var tracked", "scripts must be stripped")
	assert.NotContains(t, content, "color: red", "styles must be stripped")
	assert.NotContains(t, content, "enable javascript", "noscript is always removed")
}

func TestExtractText(t *testing.T) {
	page, err := Parse(samplePage)
	require.NoError(t, err)

	content, err := page.Extract("", FormatText, true, true)
	require.NoError(t, err)
	assert.Contains(t, content, "We respect your privacy.")
	assert.NotContains(t, content, "<p>")
	assert.NotContains(t, content, "var tracked")
}

func TestExtractHTML(t *testing.T) {
	page, err := Parse(samplePage)
	require.NoError(t, err)

	content, err := page.Extract("", FormatHTML, true, true)
	require.NoError(t, err)
	assert.Contains(t, content, "<h1>Privacy Policy</h1>")
	assert.NotContains(t, content, "<script>")
}

func TestExtractKeepsScriptsWhenAsked(t *testing.T) {
	page, err := Parse(samplePage)
	require.NoError(t, err)

	content, err := page.Extract("", FormatHTML, false, false)
	require.NoError(t, err)
	assert.Contains(t, content, "var tracked")
	assert.Contains(t, content, "color: red")
}

func TestExtractWithSelector(t *testing.T) {
	page, err := Parse(samplePage)
	require.NoError(t, err)

	content, err := page.Extract("#main", FormatText, true, true)
	require.NoError(t, err)
	assert.Contains(t, content, "Privacy Policy")
	assert.NotContains(t, content, "contact us", "selector limits output to the matched element")
}

func TestExtractSelectorNotFound(t *testing.T) {
	page, err := Parse(samplePage)
	require.NoError(t, err)

	_, err = page.Extract(".does-not-exist", FormatText, true, true)
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeInput))
}

func TestNormalizeText(t *testing.T) {
	in := "  Hello   world \n\n\n  second\tline  \n"
	assert.Equal(t, "Hello world\nsecond line", normalizeText(in))
}
