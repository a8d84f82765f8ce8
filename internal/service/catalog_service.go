package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"sanjuan-construye/internal/domain"
	"sanjuan-construye/internal/repository"
	"sanjuan-construye/internal/sheet"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// SourceFallback labels catalogs served from the embedded fallback list.
const SourceFallback = "fallback"

// SortOrder represents the sort direction
type SortOrder string

const (
	SortOrderAsc  SortOrder = "ASC"
	SortOrderDesc SortOrder = "DESC"
)

// ProductQuery describes the storefront's catalog filters.
type ProductQuery struct {
	Category  string
	Search    string
	MinPrice  *float64
	MaxPrice  *float64
	OnSale    bool
	InStock   bool
	SortBy    string
	SortOrder SortOrder
	Page      int
	PageSize  int
}

// ProductPage is one page of filtered catalog results.
type ProductPage struct {
	Products []domain.Product
	Total    int
	Page     int
	PageSize int
	Source   string
}

// Diagnostics reports the catalog's configuration and cache state.
type Diagnostics struct {
	Sources    map[string]bool `json:"sources"`
	CacheFresh bool            `json:"cache_fresh"`
	LastSource string          `json:"last_source,omitempty"`
	LastUpdate *time.Time      `json:"last_update,omitempty"`
}

// CatalogService defines the interface for catalog business logic. Load and
// Refresh never fail: when every source is exhausted they serve the embedded
// fallback list.
type CatalogService interface {
	Load(ctx context.Context) ([]domain.Product, string)
	Refresh(ctx context.Context) ([]domain.Product, string)
	Query(ctx context.Context, q ProductQuery) ProductPage
	Diagnostics(ctx context.Context) Diagnostics
}

type catalogService struct {
	sources []repository.Source
	store   repository.SnapshotStore
	logger  *zap.Logger

	// group collapses overlapping ingestion runs: concurrent callers share
	// the result of the run already in flight.
	group singleflight.Group

	mu         sync.RWMutex
	lastSource string
	lastUpdate time.Time
}

// NewCatalogService creates a new instance of CatalogService. Sources are
// tried in the order given.
func NewCatalogService(sources []repository.Source, store repository.SnapshotStore, logger *zap.Logger) CatalogService {
	return &catalogService{
		sources: sources,
		store:   store,
		logger:  logger,
	}
}

// Load returns the current catalog and the label of where it came from. A
// fresh snapshot short-circuits any network access.
func (s *catalogService) Load(ctx context.Context) ([]domain.Product, string) {
	if snap, err := s.store.Read(ctx); err == nil {
		return snap.Products, snap.Source
	}

	return s.ingest(ctx)
}

// Refresh drops the snapshot and re-ingests from the sources.
func (s *catalogService) Refresh(ctx context.Context) ([]domain.Product, string) {
	if err := s.store.Clear(ctx); err != nil {
		s.logger.Warn("Failed to clear catalog snapshot", zap.Error(err))
	}

	return s.ingest(ctx)
}

type ingestResult struct {
	products []domain.Product
	source   string
}

// ingest walks the sources in order and falls back to the embedded list when
// none produces a usable catalog. Overlapping calls are collapsed into one
// underlying attempt.
func (s *catalogService) ingest(ctx context.Context) ([]domain.Product, string) {
	v, _, _ := s.group.Do("catalog", func() (interface{}, error) {
		for _, src := range s.sources {
			products, err := src.Fetch(ctx)
			if err != nil {
				s.logger.Warn("Catalog source failed",
					zap.String("source", src.Name()),
					zap.Error(err),
				)
				continue
			}

			now := time.Now()
			snap := &repository.Snapshot{Products: products, Timestamp: now, Source: src.Name()}
			if err := s.store.Write(ctx, snap); err != nil {
				s.logger.Warn("Failed to persist catalog snapshot", zap.Error(err))
			}

			s.mu.Lock()
			s.lastSource = src.Name()
			s.lastUpdate = now
			s.mu.Unlock()

			s.logger.Info("Catalog loaded",
				zap.String("source", src.Name()),
				zap.Int("products", len(products)),
			)
			return ingestResult{products: products, source: src.Name()}, nil
		}

		s.logger.Warn("All catalog sources failed, serving fallback products")
		return ingestResult{products: sheet.FallbackProducts(), source: SourceFallback}, nil
	})

	res := v.(ingestResult)
	return res.products, res.source
}

// Query loads the catalog and applies the storefront filters, sorting and
// pagination.
func (s *catalogService) Query(ctx context.Context, q ProductQuery) ProductPage {
	products, source := s.Load(ctx)

	filtered := filterProducts(products, q)
	sortProducts(filtered, q.SortBy, q.SortOrder)

	total := len(filtered)

	page := q.Page
	if page < 1 {
		page = 1
	}
	pageSize := q.PageSize
	if pageSize < 1 {
		pageSize = 12
	}

	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return ProductPage{
		Products: filtered[start:end],
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		Source:   source,
	}
}

// Diagnostics reports which sources are configured and whether a fresh
// snapshot is available.
func (s *catalogService) Diagnostics(ctx context.Context) Diagnostics {
	sources := make(map[string]bool, len(s.sources))
	for _, src := range s.sources {
		sources[src.Name()] = src.Configured()
	}

	_, err := s.store.Read(ctx)

	s.mu.RLock()
	defer s.mu.RUnlock()

	d := Diagnostics{
		Sources:    sources,
		CacheFresh: err == nil,
		LastSource: s.lastSource,
	}
	if !s.lastUpdate.IsZero() {
		t := s.lastUpdate
		d.LastUpdate = &t
	}
	return d
}

func filterProducts(products []domain.Product, q ProductQuery) []domain.Product {
	out := make([]domain.Product, 0, len(products))

	search := strings.ToLower(strings.TrimSpace(q.Search))

	for _, p := range products {
		if q.Category != "" && q.Category != "all" && string(p.Category) != strings.ToLower(q.Category) {
			continue
		}
		if search != "" && !matchesSearch(&p, search) {
			continue
		}
		if q.MinPrice != nil && p.Price < *q.MinPrice {
			continue
		}
		if q.MaxPrice != nil && p.Price > *q.MaxPrice {
			continue
		}
		if q.OnSale && !p.OnSale() {
			continue
		}
		if q.InStock && p.Stock == 0 {
			continue
		}
		out = append(out, p)
	}

	return out
}

func matchesSearch(p *domain.Product, term string) bool {
	return strings.Contains(strings.ToLower(p.Name), term) ||
		strings.Contains(strings.ToLower(p.Description), term) ||
		strings.Contains(strings.ToLower(p.SKU), term) ||
		strings.Contains(string(p.Category), term)
}

func sortProducts(products []domain.Product, sortBy string, order SortOrder) {
	var less func(a, b *domain.Product) bool

	switch sortBy {
	case "price":
		less = func(a, b *domain.Product) bool { return a.Price < b.Price }
	case "discount":
		less = func(a, b *domain.Product) bool { return a.Discount < b.Discount }
	case "stock":
		less = func(a, b *domain.Product) bool { return a.Stock < b.Stock }
	default: // name
		less = func(a, b *domain.Product) bool {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	}

	sort.SliceStable(products, func(i, j int) bool {
		if order == SortOrderDesc {
			return less(&products[j], &products[i])
		}
		return less(&products[i], &products[j])
	})
}
