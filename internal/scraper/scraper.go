// Package scraper fetches web pages and converts their content to
// markdown, plain text, or cleaned HTML.
package scraper

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"

	"github.com/ocrandkong/ragflow/pkg/errors"
	"github.com/ocrandkong/ragflow/pkg/logger"
)

// Format selects the output representation of extracted content.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
	FormatHTML     Format = "html"
)

// ParseFormat validates a caller-supplied format string, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case FormatMarkdown:
		return FormatMarkdown, nil
	case FormatText:
		return FormatText, nil
	case FormatHTML:
		return FormatHTML, nil
	default:
		return "", errors.NewInvalidFormat(s)
	}
}

// Responses larger than this are truncated at the transport.
const maxBodyBytes = 5 << 20

// Scraper fetches pages with browser-like headers. Safe for concurrent use.
type Scraper struct {
	httpClient *http.Client
	userAgent  string
	logger     *zap.Logger
}

// New creates a Scraper. Timeouts are applied per request, not per client,
// because each invocation carries its own timeout parameter.
func New(userAgent string) *Scraper {
	return &Scraper{
		httpClient: &http.Client{},
		userAgent:  userAgent,
		logger:     logger.Get(),
	}
}

// FetchResult is the raw outcome of one page fetch.
type FetchResult struct {
	StatusCode  int
	ContentType string
	FinalURL    string // after redirects
	Body        string
}

// Fetch retrieves a URL, following redirects. The URL must carry an http or
// https scheme and a host. Non-2xx responses are transport errors. The body
// is decoded to UTF-8 from the charset declared in the Content-Type header
// or sniffed from the document itself; GBK and GB2312 pages are common for
// the Chinese-language content this tool reads.
func (s *Scraper) Fetch(ctx context.Context, rawURL string, timeout time.Duration) (*FetchResult, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, errors.NewInvalidURL(rawURL)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, errors.NewInvalidURL(rawURL)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.NewFetchFailed(rawURL, err)
	}

	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	s.logger.Debug("Fetching URL", zap.String("url", rawURL))

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, errors.NewFetchTimeout(rawURL, timeout)
		}
		return nil, errors.NewFetchFailed(rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.NewHTTPStatus(rawURL, resp.StatusCode)
	}

	decoded, err := charset.NewReader(io.LimitReader(resp.Body, maxBodyBytes), resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, errors.NewFetchFailed(rawURL, err)
	}

	body, err := io.ReadAll(decoded)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, errors.NewFetchTimeout(rawURL, timeout)
		}
		return nil, errors.NewFetchFailed(rawURL, err)
	}

	return &FetchResult{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		FinalURL:    resp.Request.URL.String(),
		Body:        string(body),
	}, nil
}

// Page is a parsed HTML document plus the metadata the envelope reports.
type Page struct {
	Title       string
	Description string

	doc *goquery.Document
}

// Parse builds a Page from raw HTML.
func Parse(html string) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, errors.NewParseFailed("", err)
	}

	description, _ := doc.Find(`meta[name="description"]`).First().Attr("content")

	return &Page{
		Title:       strings.TrimSpace(doc.Find("title").First().Text()),
		Description: description,
		doc:         doc,
	}, nil
}

// Extract cleans the document and renders it in the requested format. When
// selector is non-empty, only the first matching element is rendered; a
// selector with no matches is an input error. Extract mutates the page by
// removing stripped nodes, so build a fresh Page per invocation.
func (p *Page) Extract(selector string, format Format, stripScripts, stripStyles bool) (string, error) {
	// noscript and iframe are noise in every format.
	p.doc.Find("noscript, iframe").Remove()
	if stripScripts {
		p.doc.Find("script").Remove()
	}
	if stripStyles {
		p.doc.Find("style").Remove()
	}

	content := p.doc.Selection
	if selector != "" {
		matched := p.doc.Find(selector)
		if matched.Length() == 0 {
			return "", errors.NewSelectorNotFound(selector)
		}
		content = matched.First()
	}

	html, err := renderHTML(content)
	if err != nil {
		return "", errors.NewParseFailed("", err)
	}

	switch format {
	case FormatMarkdown:
		markdown, err := htmltomarkdown.ConvertString(html)
		if err != nil {
			return "", errors.NewMarkdownConversionFailed(err)
		}
		return markdown, nil
	case FormatText:
		return normalizeText(content.Text()), nil
	case FormatHTML:
		return html, nil
	default:
		return "", errors.NewInvalidFormat(string(format))
	}
}

func renderHTML(sel *goquery.Selection) (string, error) {
	return goquery.OuterHtml(sel)
}

// normalizeText collapses runs of whitespace within lines and drops blank
// lines, keeping one line per block of text.
func normalizeText(text string) string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
