package tools

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/ocrandkong/ragflow/internal/scraper"
	"github.com/ocrandkong/ragflow/pkg/errors"
)

const (
	defaultScrapeTimeout = 30 * time.Second
	minScrapeTimeout     = 5 * time.Second
	maxScrapeTimeout     = 120 * time.Second
)

// scrapeEnvelope is the success response of the web scraper tool.
type scrapeEnvelope struct {
	Success       bool    `json:"success"`
	URL           string  `json:"url"`
	FinalURL      string  `json:"final_url"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	Content       string  `json:"content"`
	ContentLength int     `json:"content_length"`
	Format        string  `json:"format"`
	StatusCode    int     `json:"status_code"`
	ContentType   string  `json:"content_type"`
	SelectorUsed  *string `json:"selector_used"`
	Message       string  `json:"message"`
}

// executeWebScrape fetches a URL, cleans the HTML, and renders it in the
// requested format.
func (e *Executor) executeWebScrape(ctx context.Context, args map[string]interface{}) string {
	urlStr, _ := args["url"].(string)
	if urlStr == "" {
		return encodeResult(errorEnvelope{
			Success: false,
			Error:   "url is required",
			Message: "The url parameter must be provided",
		})
	}

	format, err := scraper.ParseFormat(argString(args, "format", string(scraper.FormatMarkdown)))
	if err != nil {
		return e.scrapeError(urlStr, err)
	}

	selector := argString(args, "selector", "")
	removeScripts := argBool(args, "remove_scripts", true)
	removeStyles := argBool(args, "remove_styles", true)
	timeout := clampTimeout(time.Duration(argInt(args, "timeout", int(defaultScrapeTimeout/time.Second))) * time.Second)

	e.logger.Info("Web scraper invoked",
		zap.String("url", urlStr),
		zap.String("format", string(format)),
		zap.String("selector", selector),
		zap.Duration("timeout", timeout),
	)

	fetched, err := e.scraper.Fetch(ctx, urlStr, timeout)
	if err != nil {
		return e.scrapeError(urlStr, err)
	}

	page, err := scraper.Parse(fetched.Body)
	if err != nil {
		return e.scrapeError(urlStr, err)
	}

	content, err := page.Extract(selector, format, removeScripts, removeStyles)
	if err != nil {
		return e.scrapeError(urlStr, err)
	}

	var selectorUsed *string
	if selector != "" {
		selectorUsed = &selector
	}

	e.logger.Info("Successfully scraped",
		zap.String("url", urlStr),
		zap.Int("content_length", len(content)),
	)

	return encodeResult(scrapeEnvelope{
		Success:       true,
		URL:           urlStr,
		FinalURL:      fetched.FinalURL,
		Title:         page.Title,
		Description:   page.Description,
		Content:       content,
		ContentLength: len(content),
		Format:        string(format),
		StatusCode:    fetched.StatusCode,
		ContentType:   fetched.ContentType,
		SelectorUsed:  selectorUsed,
		Message:       fmt.Sprintf("Successfully scraped %s", urlStr),
	})
}

func (e *Executor) scrapeError(urlStr string, err error) string {
	e.logger.Error("Web scraping failed",
		zap.String("url", urlStr),
		zap.Error(err),
	)
	return encodeResult(errorEnvelope{
		Success: false,
		URL:     urlStr,
		Error:   scrapeErrorClass(err),
		Message: err.Error(),
	})
}

// scrapeErrorClass maps a typed error to the short error code the envelope
// carries alongside the human-readable message.
func scrapeErrorClass(err error) string {
	var (
		invalidURL    *errors.ErrInvalidURL
		invalidFormat *errors.ErrInvalidFormat
		selectorMiss  *errors.ErrSelectorNotFound
		timeout       *errors.ErrFetchTimeout
		httpStatus    *errors.ErrHTTPStatus
	)
	switch {
	case stderrors.As(err, &invalidURL):
		return "Invalid URL"
	case stderrors.As(err, &invalidFormat):
		return "Invalid format"
	case stderrors.As(err, &selectorMiss):
		return "Selector not found"
	case stderrors.As(err, &timeout):
		return "Request timeout"
	case stderrors.As(err, &httpStatus):
		return "Request failed"
	case errors.IsErrorType(err, errors.ErrorTypeTransport):
		return "Request failed"
	case errors.IsErrorType(err, errors.ErrorTypeScrape):
		return "Extraction failed"
	default:
		return "Scraping failed"
	}
}

func clampTimeout(d time.Duration) time.Duration {
	if d < minScrapeTimeout {
		return minScrapeTimeout
	}
	if d > maxScrapeTimeout {
		return maxScrapeTimeout
	}
	return d
}
