// Package main is the entrypoint for the affiliate funnel API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/funnelbase/funnelbase/internal/cache"
	"github.com/funnelbase/funnelbase/internal/config"
	"github.com/funnelbase/funnelbase/internal/handler"
	"github.com/funnelbase/funnelbase/internal/metrics"
	"github.com/funnelbase/funnelbase/internal/middleware"
	"github.com/funnelbase/funnelbase/internal/server"
	"github.com/funnelbase/funnelbase/internal/service"
	"github.com/funnelbase/funnelbase/internal/store"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg)

	// Initialize the document store. A missing DATABASE_URL is tolerated:
	// the API still serves, persistence operations fail per-request, and
	// /test reports the gap. An unreachable database is also tolerated;
	// the documents table is provisioned on first successful use.
	var st *store.Store
	if cfg.DatabaseURL != "" {
		st, err = store.New(ctx, cfg.DatabaseURL, cfg.DatabaseName)
		if err != nil {
			logger.Error(
				"failed to initialize document store",
				slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
				slog.String("database_url", redactURL(cfg.DatabaseURL)),
			)
			os.Exit(1)
		}

		if err := st.Ping(ctx); err != nil {
			logger.Warn("database not reachable yet",
				slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			)
		} else {
			logger.Info("connected to database")
		}
	} else {
		logger.Warn("DATABASE_URL not set; persistence disabled")
	}

	// Initialize cache (optional)
	var cacheClient *cache.Cache
	if cfg.RedisURL != "" {
		cacheClient, err = cache.New(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error(
				"failed to connect to Redis",
				slog.String("error", sanitizeError(err, cfg.RedisURL)),
				slog.String("redis_url", redactURL(cfg.RedisURL)),
			)
			os.Exit(1)
		}
		logger.Info("connected to Redis")
	}

	// Initialize services
	recorder := metrics.NewPrometheus()

	var storage service.Storage
	if st != nil {
		storage = st
	}
	svc := service.NewFunnelService(storage, cacheClient, recorder, cfg.OfferCacheTTL)

	// Initialize handlers
	h := handler.New()
	leadHandler := handler.NewLeadHandler(svc, logger)
	offerHandler := handler.NewOfferHandler(svc, logger)
	redirectHandler := handler.NewRedirectHandler(svc, recorder, logger)
	adminHandler := handler.NewAdminHandler(svc, logger)

	var lister handler.CollectionLister
	if st != nil {
		lister = st
	}
	_, dbURLSet := os.LookupEnv("DATABASE_URL")
	_, dbNameSet := os.LookupEnv("DATABASE_NAME")
	diagHandler := handler.NewDiagnosticsHandler(lister, dbURLSet, dbNameSet)

	var dbCheck, cacheCheck handler.HealthChecker
	if st != nil {
		dbCheck = st
	}
	if cacheClient != nil {
		cacheCheck = cacheClient
	}
	healthHandler := handler.NewHealthHandler(dbCheck, cacheCheck)

	// Setup router
	r := setupRouter(h, leadHandler, offerHandler, redirectHandler, adminHandler, diagHandler, healthHandler, cacheClient, cfg, logger)

	// Create and run server
	srv := server.New(
		r,
		cfg.Port,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	if st != nil {
		srv.OnShutdown("document store", func(ctx context.Context) error {
			st.Close()
			return nil
		})
	}
	if cacheClient != nil {
		srv.OnShutdown("redis cache", func(ctx context.Context) error {
			return cacheClient.Close()
		})
	}

	logger.Info("starting server",
		"port", cfg.Port,
		"env", cfg.AppEnv,
		"admin_auth", cfg.AdminAuthEnabled(),
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(
	h *handler.Handler,
	leadHandler *handler.LeadHandler,
	offerHandler *handler.OfferHandler,
	redirectHandler *handler.RedirectHandler,
	adminHandler *handler.AdminHandler,
	diagHandler *handler.DiagnosticsHandler,
	healthHandler *handler.HealthHandler,
	cacheClient *cache.Cache,
	cfg *config.Config,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.CORS())
	r.Use(middleware.Metrics())
	r.Use(chimiddleware.RequestSize(cfg.MaxRequestBodySize))

	// Health and diagnostics endpoints
	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/readyz", healthHandler.Readyz)
	r.Get("/test", diagHandler.Diagnostics)
	r.Handle("/metrics", promhttp.Handler())

	// Root info endpoint
	r.Get("/", h.Hello)

	rateLimitCfg := middleware.RateLimitConfig{
		Logger:  logger,
		Cache:   cacheClient,
		Enabled: cfg.RateLimitRedirectEnabled,
		RPS:     cfg.RateLimitRedirectRPS,
		Burst:   cfg.RateLimitRedirectBurst,
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/leads", leadHandler.Create)
		r.Get("/offers", offerHandler.List)
		r.With(middleware.RateLimitIP(rateLimitCfg)).Get("/redirect/{slug}", redirectHandler.Redirect)

		// Admin surface. Open unless ADMIN_KEY_HASH is configured.
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.AdminAuth(middleware.AdminAuthConfig{
				Logger:  logger,
				KeyHash: cfg.AdminKeyHash,
			}))
			r.Post("/offers", adminHandler.CreateOffer)
		})
	})

	// 404 and 405 handlers
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
