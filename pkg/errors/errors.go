package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"time"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeConfig represents configuration errors (missing credentials, bad table id)
	ErrorTypeConfig ErrorType = "config"
	// ErrorTypeInput represents caller input errors (bad URL, unknown format, unmatched selector)
	ErrorTypeInput ErrorType = "input"
	// ErrorTypeTransport represents network/HTTP errors
	ErrorTypeTransport ErrorType = "transport"
	// ErrorTypeSheets represents Google Sheets API errors
	ErrorTypeSheets ErrorType = "sheets"
	// ErrorTypeScrape represents HTML parsing/extraction errors
	ErrorTypeScrape ErrorType = "scrape"
	// ErrorTypeTool represents tool dispatch errors
	ErrorTypeTool ErrorType = "tool"
)

// BaseError is the base error type with common fields
type BaseError struct {
	Type      ErrorType
	Message   string
	Timestamp time.Time
	Err       error // Wrapped error
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error for error unwrapping
func (e *BaseError) Unwrap() error {
	return e.Err
}

// NewBaseError creates a new base error
func NewBaseError(errType ErrorType, message string, err error) *BaseError {
	return &BaseError{
		Type:      errType,
		Message:   message,
		Timestamp: time.Now(),
		Err:       err,
	}
}

// Config Errors

// ErrConfigMissingRequired is returned when a required config value is missing
type ErrConfigMissingRequired struct {
	*BaseError
	Field string
}

func NewConfigMissingRequired(field string) *ErrConfigMissingRequired {
	return &ErrConfigMissingRequired{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("missing required config: %s", field), nil),
		Field:     field,
	}
}

// ErrCredentialsFileNotFound is returned when the service account file does not exist
type ErrCredentialsFileNotFound struct {
	*BaseError
	Path string
}

func NewCredentialsFileNotFound(path string) *ErrCredentialsFileNotFound {
	return &ErrCredentialsFileNotFound{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("service account file not found: %s", path), nil),
		Path:      path,
	}
}

// Sheets Errors

// ErrSheetsAuthFailed is returned when the Sheets client cannot be initialized
type ErrSheetsAuthFailed struct {
	*BaseError
	SpreadsheetID string
}

func NewSheetsAuthFailed(spreadsheetID string, err error) *ErrSheetsAuthFailed {
	return &ErrSheetsAuthFailed{
		BaseError:     NewBaseError(ErrorTypeSheets, "failed to connect to Google Sheets", err),
		SpreadsheetID: spreadsheetID,
	}
}

// ErrWorksheetNotFound is returned when the requested worksheet does not exist
type ErrWorksheetNotFound struct {
	*BaseError
	Worksheet string
	Available []string
}

func NewWorksheetNotFound(worksheet string, available []string) *ErrWorksheetNotFound {
	msg := fmt.Sprintf("worksheet %q not found", worksheet)
	if len(available) > 0 {
		msg = fmt.Sprintf("%s. Available worksheets: %s. Note: sheet names are case-sensitive", msg, strings.Join(available, ", "))
	}
	return &ErrWorksheetNotFound{
		BaseError: NewBaseError(ErrorTypeSheets, msg, nil),
		Worksheet: worksheet,
		Available: available,
	}
}

// ErrSheetsReadFailed is returned when reading rows from a worksheet fails
type ErrSheetsReadFailed struct {
	*BaseError
	Worksheet string
}

func NewSheetsReadFailed(worksheet string, err error) *ErrSheetsReadFailed {
	return &ErrSheetsReadFailed{
		BaseError: NewBaseError(ErrorTypeSheets, fmt.Sprintf("failed to read worksheet: %s", worksheet), err),
		Worksheet: worksheet,
	}
}

// Input Errors

// ErrInvalidURL is returned when a URL is missing its scheme or host
type ErrInvalidURL struct {
	*BaseError
	URL string
}

func NewInvalidURL(url string) *ErrInvalidURL {
	return &ErrInvalidURL{
		BaseError: NewBaseError(ErrorTypeInput, fmt.Sprintf("URL must include scheme (http/https): %s", url), nil),
		URL:       url,
	}
}

// ErrSelectorNotFound is returned when a CSS selector matches nothing
type ErrSelectorNotFound struct {
	*BaseError
	Selector string
}

func NewSelectorNotFound(selector string) *ErrSelectorNotFound {
	return &ErrSelectorNotFound{
		BaseError: NewBaseError(ErrorTypeInput, fmt.Sprintf("no elements found matching selector: %s", selector), nil),
		Selector:  selector,
	}
}

// ErrInvalidFormat is returned for an unrecognized output format
type ErrInvalidFormat struct {
	*BaseError
	Format string
}

func NewInvalidFormat(format string) *ErrInvalidFormat {
	return &ErrInvalidFormat{
		BaseError: NewBaseError(ErrorTypeInput, fmt.Sprintf("format must be 'markdown', 'text', or 'html', got: %s", format), nil),
		Format:    format,
	}
}

// Transport Errors

// ErrFetchFailed is returned when an HTTP request fails outright
type ErrFetchFailed struct {
	*BaseError
	URL string
}

func NewFetchFailed(url string, err error) *ErrFetchFailed {
	return &ErrFetchFailed{
		BaseError: NewBaseError(ErrorTypeTransport, fmt.Sprintf("failed to fetch URL: %s", url), err),
		URL:       url,
	}
}

// ErrFetchTimeout is returned when the fetch deadline is exceeded
type ErrFetchTimeout struct {
	*BaseError
	URL     string
	Timeout time.Duration
}

func NewFetchTimeout(url string, timeout time.Duration) *ErrFetchTimeout {
	return &ErrFetchTimeout{
		BaseError: NewBaseError(ErrorTypeTransport, fmt.Sprintf("request timed out after %v", timeout), nil),
		URL:       url,
		Timeout:   timeout,
	}
}

// ErrHTTPStatus is returned for a non-success HTTP response
type ErrHTTPStatus struct {
	*BaseError
	URL        string
	StatusCode int
}

func NewHTTPStatus(url string, statusCode int) *ErrHTTPStatus {
	return &ErrHTTPStatus{
		BaseError:  NewBaseError(ErrorTypeTransport, fmt.Sprintf("HTTP %d fetching %s", statusCode, url), nil),
		URL:        url,
		StatusCode: statusCode,
	}
}

// Scrape Errors

// ErrParseFailed is returned when the fetched body cannot be parsed as HTML
type ErrParseFailed struct {
	*BaseError
	URL string
}

func NewParseFailed(url string, err error) *ErrParseFailed {
	return &ErrParseFailed{
		BaseError: NewBaseError(ErrorTypeScrape, "failed to parse HTML", err),
		URL:       url,
	}
}

// ErrMarkdownConversionFailed is returned when HTML cannot be converted to markdown
type ErrMarkdownConversionFailed struct {
	*BaseError
}

func NewMarkdownConversionFailed(err error) *ErrMarkdownConversionFailed {
	return &ErrMarkdownConversionFailed{
		BaseError: NewBaseError(ErrorTypeScrape, "failed to convert HTML to markdown", err),
	}
}

// Tool Errors

// ErrToolNotFound is returned when a requested tool is not found
type ErrToolNotFound struct {
	*BaseError
	ToolName string
}

func NewToolNotFound(toolName string) *ErrToolNotFound {
	return &ErrToolNotFound{
		BaseError: NewBaseError(ErrorTypeTool, fmt.Sprintf("unknown tool: %s", toolName), nil),
		ToolName:  toolName,
	}
}

// Helper functions

// Category returns the taxonomy category. Promoted through embedding, so
// every typed error in this package answers it.
func (e *BaseError) Category() ErrorType {
	return e.Type
}

// IsErrorType checks if an error belongs to a taxonomy category, walking
// wrapped errors as needed.
func IsErrorType(err error, errType ErrorType) bool {
	for err != nil {
		if typed, ok := err.(interface{ Category() ErrorType }); ok {
			return typed.Category() == errType
		}
		err = stderrors.Unwrap(err)
	}
	return false
}
