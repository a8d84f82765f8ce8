package repository

import (
	"context"
	"errors"
	"net/http"
	"time"

	"sanjuan-construye/internal/domain"
)

var (
	// ErrSourceNotConfigured indicates the source has no URL to fetch from.
	ErrSourceNotConfigured = errors.New("catalog source not configured")

	// ErrBadPayload indicates the source responded with a body that does not
	// match the expected shape.
	ErrBadPayload = errors.New("catalog source returned an invalid payload")

	// ErrNoProducts indicates the source responded but yielded zero usable
	// products after normalization.
	ErrNoProducts = errors.New("catalog source yielded no usable products")
)

// Source fetches and normalizes products from one remote catalog origin.
type Source interface {
	Name() string
	Configured() bool
	Fetch(ctx context.Context) ([]domain.Product, error)
}

// fetchTimeout bounds a single catalog request so a hung origin degrades to
// the next source instead of stalling the pipeline.
const fetchTimeout = 10 * time.Second

func defaultHTTPClient() *http.Client {
	return &http.Client{Timeout: fetchTimeout}
}
