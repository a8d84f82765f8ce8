package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"sanjuan-construye/internal/domain"
	"sanjuan-construye/internal/sheet"

	"go.uber.org/zap"
)

// AppsScriptSource reads the catalog through the Apps Script web app, which
// serves rows already keyed by header.
type AppsScriptSource struct {
	url    string
	client *http.Client
	logger *zap.Logger
}

// NewAppsScriptSource creates a source for the Apps Script endpoint. A nil
// client gets a default with a request timeout.
func NewAppsScriptSource(url string, client *http.Client, logger *zap.Logger) *AppsScriptSource {
	if client == nil {
		client = defaultHTTPClient()
	}
	return &AppsScriptSource{url: url, client: client, logger: logger}
}

func (s *AppsScriptSource) Name() string { return "apps-script" }

func (s *AppsScriptSource) Configured() bool { return s.url != "" }

// appsScriptResponse is the envelope the Apps Script web app returns.
type appsScriptResponse struct {
	Success  bool             `json:"success"`
	Products []map[string]any `json:"products"`
	Error    string           `json:"error"`
}

// Fetch downloads and normalizes the catalog. Individual records failing
// normalization are skipped with a warning; only an unusable response as a
// whole is an error.
func (s *AppsScriptSource) Fetch(ctx context.Context) ([]domain.Product, error) {
	if s.url == "" {
		return nil, ErrSourceNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build apps script request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("apps script request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: apps script status %d", ErrBadPayload, resp.StatusCode)
	}

	var payload appsScriptResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadPayload, err)
	}

	if !payload.Success || payload.Products == nil {
		return nil, fmt.Errorf("%w: success=%t error=%q", ErrBadPayload, payload.Success, payload.Error)
	}

	products := make([]domain.Product, 0, len(payload.Products))
	for i, rec := range payload.Products {
		p := sheet.NormalizeRecord(rec)
		if p == nil {
			s.logger.Warn("Skipping invalid apps script record",
				zap.Int("index", i),
			)
			continue
		}
		products = append(products, *p)
	}

	if len(products) == 0 {
		return nil, ErrNoProducts
	}

	return products, nil
}
