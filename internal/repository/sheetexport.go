package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"sanjuan-construye/internal/domain"
	"sanjuan-construye/internal/sheet"

	"go.uber.org/zap"
)

// SheetExportSource reads the catalog straight from the spreadsheet's JSON
// export, used when the Apps Script endpoint is down.
type SheetExportSource struct {
	sheetsURL string
	apiKey    string
	client    *http.Client
	logger    *zap.Logger
}

// NewSheetExportSource creates a source for the raw sheet export. The API key
// is optional and only raises rate limits.
func NewSheetExportSource(sheetsURL, apiKey string, client *http.Client, logger *zap.Logger) *SheetExportSource {
	if client == nil {
		client = defaultHTTPClient()
	}
	return &SheetExportSource{sheetsURL: sheetsURL, apiKey: apiKey, client: client, logger: logger}
}

func (s *SheetExportSource) Name() string { return "sheet-export" }

func (s *SheetExportSource) Configured() bool { return s.sheetsURL != "" }

// sheetExportResponse is the raw grid shape of the export endpoint: the first
// row holds headers, the rest hold data cells.
type sheetExportResponse struct {
	Values [][]any `json:"values"`
}

// ExportURL derives the export endpoint from the sheet's edit URL.
func (s *SheetExportSource) ExportURL() string {
	base := strings.Replace(s.sheetsURL, "/edit", "/export", 1)

	params := url.Values{}
	params.Set("format", "json")
	params.Set("gid", "0")
	if s.apiKey != "" {
		params.Set("key", s.apiKey)
	}

	return base + "?" + params.Encode()
}

// Fetch downloads the grid and runs every data row through the normalizer.
// Rejected rows are skipped with a warning carrying the sheet row number.
func (s *SheetExportSource) Fetch(ctx context.Context) ([]domain.Product, error) {
	if s.sheetsURL == "" {
		return nil, ErrSourceNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.ExportURL(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build sheet export request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sheet export request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: sheet export status %d", ErrBadPayload, resp.StatusCode)
	}

	var payload sheetExportResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}

	if len(payload.Values) < 2 {
		return nil, fmt.Errorf("%w: need a header row and at least one data row", ErrBadPayload)
	}

	headers := make([]string, 0, len(payload.Values[0]))
	for _, h := range payload.Values[0] {
		hs, _ := h.(string)
		headers = append(headers, hs)
	}

	products := make([]domain.Product, 0, len(payload.Values)-1)
	for i, row := range payload.Values[1:] {
		if len(row) == 0 || isEmptyCell(row[0]) {
			continue
		}

		p := sheet.NormalizeRow(row, headers)
		if p == nil {
			// Sheet row numbers are 1-based and include the header.
			s.logger.Warn("Skipping invalid sheet row", zap.Int("row", i+2))
			continue
		}
		products = append(products, *p)
	}

	if len(products) == 0 {
		return nil, ErrNoProducts
	}

	return products, nil
}

func isEmptyCell(v any) bool {
	s, ok := v.(string)
	return v == nil || (ok && strings.TrimSpace(s) == "")
}
