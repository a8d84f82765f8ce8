package transport

import (
	"net/http"
	"strconv"

	"sanjuan-construye/internal/domain"
	"sanjuan-construye/internal/middleware"
	"sanjuan-construye/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ProductListResponse is one page of catalog results.
type ProductListResponse struct {
	Products []domain.Product `json:"products"`
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
	Source   string           `json:"source"`
}

// ProductHandler handles HTTP requests for the product catalog
type ProductHandler struct {
	catalogService service.CatalogService
	logger         *zap.Logger
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(catalogService service.CatalogService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// RegisterRoutes registers all catalog routes
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/refresh", h.Refresh)
	})
	r.Get("/api/diagnostics", h.GetDiagnostics)
}

// List serves the catalog with the storefront's filters applied. The catalog
// is always served: when every source fails the response carries the
// fallback list with source set accordingly.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := service.ProductQuery{
		Category: r.URL.Query().Get("category"),
		Search:   r.URL.Query().Get("q"),
		OnSale:   r.URL.Query().Get("on_sale") == "true",
		InStock:  r.URL.Query().Get("in_stock") == "true",
		SortBy:   r.URL.Query().Get("sort_by"),
	}

	if v, err := strconv.ParseFloat(r.URL.Query().Get("min_price"), 64); err == nil {
		q.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(r.URL.Query().Get("max_price"), 64); err == nil {
		q.MaxPrice = &v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		q.Page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("page_size")); err == nil {
		q.PageSize = v
	}
	if r.URL.Query().Get("sort_order") == "desc" {
		q.SortOrder = service.SortOrderDesc
	} else {
		q.SortOrder = service.SortOrderAsc
	}

	page := h.catalogService.Query(r.Context(), q)

	middleware.RespondWithJSON(w, http.StatusOK, ProductListResponse{
		Products: page.Products,
		Total:    page.Total,
		Page:     page.Page,
		PageSize: page.PageSize,
		Source:   page.Source,
	})
}

// Refresh drops the snapshot and re-ingests the catalog from its sources.
func (h *ProductHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	products, source := h.catalogService.Refresh(r.Context())

	h.logger.Info("Catalog refreshed",
		zap.String("source", source),
		zap.Int("products", len(products)),
	)

	middleware.RespondWithJSON(w, http.StatusOK, ProductListResponse{
		Products: products,
		Total:    len(products),
		Page:     1,
		PageSize: len(products),
		Source:   source,
	})
}

// GetDiagnostics reports source configuration and cache state.
func (h *ProductHandler) GetDiagnostics(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, h.catalogService.Diagnostics(r.Context()))
}
