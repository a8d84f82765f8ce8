package server

import (
	"fmt"
	"net/http"
	"time"

	"sanjuan-construye/internal/config"
	custommiddleware "sanjuan-construye/internal/middleware"
	"sanjuan-construye/internal/repository"
	"sanjuan-construye/internal/service"
	"sanjuan-construye/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	redis  *redis.Client
}

// NewServer wires the catalog pipeline and HTTP surface. redisClient may be
// nil, in which case the snapshot lives in process memory and rate limiting
// is disabled.
func NewServer(cfg *config.Config, logger *zap.Logger, redisClient *redis.Client) *Server {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(custommiddleware.CORSMiddleware(nil, cfg.Server.Env != "production"))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Catalog data sources, tried in order
	sources := []repository.Source{
		repository.NewAppsScriptSource(cfg.Catalog.AppScriptURL, nil, logger),
		repository.NewSheetExportSource(cfg.Catalog.SheetsURL, cfg.Catalog.APIKey, nil, logger),
	}

	var store repository.SnapshotStore
	if redisClient != nil {
		store = repository.NewRedisSnapshotStore(redisClient, cfg.Catalog.CacheTTL, logger)
	} else {
		store = repository.NewMemorySnapshotStore(cfg.Catalog.CacheTTL)
	}

	// Initialize services
	catalogService := service.NewCatalogService(sources, store, logger)
	orderService := service.NewOrderService(cfg.WhatsApp.PhoneNumber, cfg.WhatsApp.BusinessName)

	// Initialize handlers
	productHandler := transport.NewProductHandler(catalogService, logger)
	orderHandler := transport.NewOrderHandler(orderService, logger)

	// Register routes, rate limited when Redis is available
	router.Group(func(r chi.Router) {
		if redisClient != nil {
			r.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
				RequestsPerWindow: 120,
				Window:            time.Minute,
				KeyPrefix:         "sanjuan:ratelimit",
			}, logger))
		}

		productHandler.RegisterRoutes(r)
		orderHandler.RegisterRoutes(r)
	})

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		redis:  redisClient,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
