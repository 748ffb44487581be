// Package sheets wraps the Google Sheets API as a read-only row source.
// A single API handle is initialized lazily on first use and shared by all
// callers; worksheet rows are returned as header-keyed records.
package sheets

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/ocrandkong/ragflow/internal/router"
	"github.com/ocrandkong/ragflow/pkg/errors"
	"github.com/ocrandkong/ragflow/pkg/logger"
)

// Service reads worksheets from one spreadsheet using service account
// credentials. Safe for concurrent use.
type Service struct {
	credentialsFile string
	spreadsheetID   string
	logger          *zap.Logger

	// The API handle is built at most once. Concurrent first callers are
	// collapsed into a single authentication handshake by the singleflight
	// group; a failed handshake is returned to all of them but never cached,
	// so the next call retries.
	mu    sync.Mutex
	api   *sheetsapi.Service
	group singleflight.Group

	// newAPI builds the underlying client. Overridden in tests.
	newAPI func(ctx context.Context) (*sheetsapi.Service, error)
}

// NewService creates a Service. No network I/O happens until the first read.
func NewService(credentialsFile, spreadsheetID string) *Service {
	s := &Service{
		credentialsFile: credentialsFile,
		spreadsheetID:   spreadsheetID,
		logger:          logger.Get(),
	}
	s.newAPI = s.buildAPI
	return s
}

func (s *Service) buildAPI(ctx context.Context) (*sheetsapi.Service, error) {
	if s.credentialsFile == "" {
		return nil, errors.NewConfigMissingRequired("GOOGLE_SHEETS_SERVICE_ACCOUNT_FILE")
	}
	if s.spreadsheetID == "" {
		return nil, errors.NewConfigMissingRequired("GOOGLE_SHEETS_SHEET_ID")
	}
	if _, err := os.Stat(s.credentialsFile); err != nil {
		return nil, errors.NewCredentialsFileNotFound(s.credentialsFile)
	}

	api, err := sheetsapi.NewService(ctx,
		option.WithCredentialsFile(s.credentialsFile),
		option.WithScopes(sheetsapi.SpreadsheetsReadonlyScope),
	)
	if err != nil {
		return nil, errors.NewSheetsAuthFailed(s.spreadsheetID, err)
	}

	s.logger.Info("Google Sheets client initialized",
		zap.String("spreadsheet_id", s.spreadsheetID),
	)
	return api, nil
}

// client returns the shared API handle, initializing it on first use.
func (s *Service) client(ctx context.Context) (*sheetsapi.Service, error) {
	s.mu.Lock()
	if s.api != nil {
		api := s.api
		s.mu.Unlock()
		return api, nil
	}
	s.mu.Unlock()

	v, err, _ := s.group.Do("init", func() (interface{}, error) {
		// Re-check: a previous flight may have won while we queued.
		s.mu.Lock()
		if s.api != nil {
			api := s.api
			s.mu.Unlock()
			return api, nil
		}
		s.mu.Unlock()

		api, err := s.newAPI(ctx)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.api = api
		s.mu.Unlock()
		return api, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*sheetsapi.Service), nil
}

// Rows reads the named worksheet and returns its data rows keyed by the
// header row, mirroring gspread's get_all_records.
func (s *Service) Rows(ctx context.Context, worksheet string) ([]router.Row, error) {
	api, err := s.client(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := api.Spreadsheets.Values.Get(s.spreadsheetID, worksheet).Context(ctx).Do()
	if err != nil {
		// The Values endpoint rejects unknown worksheet titles as a bad
		// range; list the spreadsheet's worksheets so the caller sees what
		// exists (titles are case-sensitive).
		if titles, lerr := s.worksheetTitles(ctx, api); lerr == nil && !containsTitle(titles, worksheet) {
			return nil, errors.NewWorksheetNotFound(worksheet, titles)
		}
		return nil, errors.NewSheetsReadFailed(worksheet, err)
	}

	rows := rowsFromValues(resp.Values)
	s.logger.Debug("Worksheet rows fetched",
		zap.String("worksheet", worksheet),
		zap.Int("rows", len(rows)),
	)
	return rows, nil
}

func (s *Service) worksheetTitles(ctx context.Context, api *sheetsapi.Service) ([]string, error) {
	meta, err := api.Spreadsheets.Get(s.spreadsheetID).
		Fields("sheets.properties.title").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list worksheets: %w", err)
	}
	titles := make([]string, 0, len(meta.Sheets))
	for _, sh := range meta.Sheets {
		if sh.Properties != nil {
			titles = append(titles, sh.Properties.Title)
		}
	}
	return titles, nil
}

func containsTitle(titles []string, want string) bool {
	for _, t := range titles {
		if t == want {
			return true
		}
	}
	return false
}

// rowsFromValues maps the first row onto the remaining ones. Short rows are
// padded with empty strings; columns without a header are dropped.
func rowsFromValues(values [][]interface{}) []router.Row {
	if len(values) < 2 {
		return nil
	}

	headers := make([]string, len(values[0]))
	for i, cell := range values[0] {
		headers[i] = cellString(cell)
	}

	rows := make([]router.Row, 0, len(values)-1)
	for _, raw := range values[1:] {
		row := make(router.Row, len(headers))
		for i, header := range headers {
			if header == "" {
				continue
			}
			if i < len(raw) {
				row[header] = cellString(raw[i])
			} else {
				row[header] = ""
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// cellString renders a cell value textually. Unformatted numeric cells come
// back as float64; they must not pick up a trailing ".0" or scientific
// notation, or UID comparison would silently break.
func cellString(v interface{}) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(c)
	default:
		return fmt.Sprint(c)
	}
}
