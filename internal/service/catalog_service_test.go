package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"sanjuan-construye/internal/domain"
	"sanjuan-construye/internal/repository"

	"go.uber.org/zap"
)

// mockSource is a scriptable catalog source that counts its fetches.
type mockSource struct {
	name     string
	products []domain.Product
	err      error
	delay    time.Duration
	calls    atomic.Int64
}

func (m *mockSource) Name() string     { return m.name }
func (m *mockSource) Configured() bool { return true }

func (m *mockSource) Fetch(ctx context.Context) ([]domain.Product, error) {
	m.calls.Add(1)
	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.products, nil
}

func testProducts() []domain.Product {
	return []domain.Product{
		{ID: 1, Name: "Taladro", Price: 8500, Discount: 15, Category: domain.CategoryHerramientas, Stock: 15, SKU: "TAL001"},
		{ID: 2, Name: "Cemento", Price: 3200, Category: domain.CategoryMateriales, Stock: 50, SKU: "MAT001"},
		{ID: 3, Name: "Pintura Látex", Price: 4500, Discount: 20, Category: domain.CategoryPintura, Stock: 0, SKU: "PIN001"},
	}
}

func newTestService(sources ...repository.Source) CatalogService {
	store := repository.NewMemorySnapshotStore(30 * time.Minute)
	return NewCatalogService(sources, store, zap.NewNop())
}

func TestCatalogService_LoadFromFirstSource(t *testing.T) {
	primary := &mockSource{name: "apps-script", products: testProducts()}
	secondary := &mockSource{name: "sheet-export", products: testProducts()}
	svc := newTestService(primary, secondary)

	products, source := svc.Load(context.Background())

	if source != "apps-script" {
		t.Errorf("source = %q, want apps-script", source)
	}
	if len(products) != 3 {
		t.Errorf("got %d products, want 3", len(products))
	}
	if secondary.calls.Load() != 0 {
		t.Error("secondary source was fetched even though the primary succeeded")
	}
}

func TestCatalogService_FallsThroughToSecondSource(t *testing.T) {
	primary := &mockSource{name: "apps-script", err: errors.New("endpoint down")}
	secondary := &mockSource{name: "sheet-export", products: testProducts()}
	svc := newTestService(primary, secondary)

	products, source := svc.Load(context.Background())

	if source != "sheet-export" {
		t.Errorf("source = %q, want sheet-export", source)
	}
	if len(products) != 3 {
		t.Errorf("got %d products, want 3", len(products))
	}
	if primary.calls.Load() != 1 {
		t.Errorf("primary fetched %d times, want 1", primary.calls.Load())
	}
}

func TestCatalogService_FallbackWhenAllSourcesFail(t *testing.T) {
	primary := &mockSource{name: "apps-script", err: errors.New("down")}
	secondary := &mockSource{name: "sheet-export", err: errors.New("down")}
	svc := newTestService(primary, secondary)

	products, source := svc.Load(context.Background())

	if source != SourceFallback {
		t.Errorf("source = %q, want %q", source, SourceFallback)
	}
	if len(products) < 3 {
		t.Errorf("fallback yielded %d products, want at least 3", len(products))
	}
}

func TestCatalogService_CacheShortCircuitsFetch(t *testing.T) {
	src := &mockSource{name: "apps-script", products: testProducts()}
	svc := newTestService(src)
	ctx := context.Background()

	svc.Load(ctx)
	svc.Load(ctx)
	svc.Load(ctx)

	if got := src.calls.Load(); got != 1 {
		t.Errorf("source fetched %d times across cached loads, want 1", got)
	}
}

func TestCatalogService_FallbackIsNotCached(t *testing.T) {
	src := &mockSource{name: "apps-script", err: errors.New("down")}
	svc := newTestService(src)
	ctx := context.Background()

	svc.Load(ctx)
	svc.Load(ctx)

	// Every load retries the source while it keeps failing.
	if got := src.calls.Load(); got != 2 {
		t.Errorf("source fetched %d times, want 2", got)
	}
}

func TestCatalogService_RefreshBypassesCache(t *testing.T) {
	src := &mockSource{name: "apps-script", products: testProducts()}
	svc := newTestService(src)
	ctx := context.Background()

	svc.Load(ctx)
	svc.Refresh(ctx)

	if got := src.calls.Load(); got != 2 {
		t.Errorf("source fetched %d times, want 2", got)
	}
}

func TestCatalogService_ConcurrentLoadsShareOneFetch(t *testing.T) {
	src := &mockSource{name: "apps-script", products: testProducts(), delay: 50 * time.Millisecond}
	svc := newTestService(src)

	const callers = 10
	var wg sync.WaitGroup
	results := make([][]domain.Product, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = svc.Load(context.Background())
		}(i)
	}
	wg.Wait()

	if got := src.calls.Load(); got != 1 {
		t.Errorf("source fetched %d times for %d overlapping callers, want 1", got, callers)
	}
	for i, r := range results {
		if len(r) != 3 {
			t.Errorf("caller %d got %d products, want 3", i, len(r))
		}
	}
}

func TestCatalogService_QueryFilters(t *testing.T) {
	svc := newTestService(&mockSource{name: "apps-script", products: testProducts()})
	ctx := context.Background()

	tests := []struct {
		name  string
		query ProductQuery
		want  []int64
	}{
		{"by category", ProductQuery{Category: "herramientas"}, []int64{1}},
		{"category all", ProductQuery{Category: "all", SortBy: "price"}, []int64{2, 3, 1}},
		{"search by name", ProductQuery{Search: "cemento"}, []int64{2}},
		{"search by sku", ProductQuery{Search: "pin001"}, []int64{3}},
		{"on sale only", ProductQuery{OnSale: true, SortBy: "price"}, []int64{3, 1}},
		{"in stock only", ProductQuery{InStock: true, SortBy: "price"}, []int64{2, 1}},
		{"price range", ProductQuery{MinPrice: ptr(4000.0), MaxPrice: ptr(9000.0), SortBy: "price"}, []int64{3, 1}},
		{"sort price desc", ProductQuery{SortBy: "price", SortOrder: SortOrderDesc}, []int64{1, 3, 2}},
		{"sort discount desc", ProductQuery{SortBy: "discount", SortOrder: SortOrderDesc}, []int64{3, 1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := svc.Query(ctx, tt.query)
			got := make([]int64, 0, len(page.Products))
			for _, p := range page.Products {
				got = append(got, p.ID)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got ids %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("got ids %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestCatalogService_QueryPagination(t *testing.T) {
	svc := newTestService(&mockSource{name: "apps-script", products: testProducts()})

	page := svc.Query(context.Background(), ProductQuery{SortBy: "price", Page: 2, PageSize: 2})

	if page.Total != 3 {
		t.Errorf("Total = %d, want 3", page.Total)
	}
	if len(page.Products) != 1 {
		t.Fatalf("page 2 has %d products, want 1", len(page.Products))
	}
	if page.Products[0].ID != 1 {
		t.Errorf("page 2 product = %d, want 1", page.Products[0].ID)
	}

	empty := svc.Query(context.Background(), ProductQuery{Page: 5, PageSize: 10})
	if len(empty.Products) != 0 {
		t.Errorf("out-of-range page has %d products, want 0", len(empty.Products))
	}
}

func TestCatalogService_Diagnostics(t *testing.T) {
	src := &mockSource{name: "apps-script", products: testProducts()}
	svc := newTestService(src)
	ctx := context.Background()

	before := svc.Diagnostics(ctx)
	if before.CacheFresh {
		t.Error("CacheFresh = true before any load")
	}
	if !before.Sources["apps-script"] {
		t.Error("source not reported as configured")
	}

	svc.Load(ctx)

	after := svc.Diagnostics(ctx)
	if !after.CacheFresh {
		t.Error("CacheFresh = false after a successful load")
	}
	if after.LastSource != "apps-script" || after.LastUpdate == nil {
		t.Errorf("unexpected diagnostics %+v", after)
	}
}

func ptr(f float64) *float64 { return &f }
