// Package main is the entrypoint for the userapi server.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/userapi/userapi/internal/config"
	"github.com/userapi/userapi/internal/events"
	"github.com/userapi/userapi/internal/handler"
	"github.com/userapi/userapi/internal/metrics"
	"github.com/userapi/userapi/internal/middleware"
	"github.com/userapi/userapi/internal/repository"
	"github.com/userapi/userapi/internal/server"
	"github.com/userapi/userapi/internal/service"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	recorder := metrics.NewInMemory()
	repo := repository.New()

	checks := map[string]handler.HealthChecker{}
	var shutdownHooks []namedShutdown
	var publisher service.EventPublisher = events.NoopPublisher{}

	if cfg.EventsEnabled() {
		client, err := events.Connect(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error("failed to connect to Redis",
				slog.String("error", err.Error()),
				slog.String("redis_url", redactURL(cfg.RedisURL)),
			)
			os.Exit(1)
		}
		logger.Info("connected to Redis, user events enabled", "stream", events.StreamKey)

		streamPublisher := events.NewPublisher(client, logger, recorder)
		publisher = streamPublisher
		checks["redis"] = events.NewRedisChecker(client)

		// Registered first so the client closes after pending events drain.
		shutdownHooks = append(shutdownHooks,
			namedShutdown{"redis", func(context.Context) error { return client.Close() }},
			namedShutdown{"event publisher", streamPublisher.Close},
		)
	}

	userService := service.NewUserService(repo, publisher, recorder)

	r := setupRouter(routerDeps{
		root:    handler.New(),
		health:  handler.NewHealthHandler(checks),
		users:   handler.NewUserHandler(userService, logger),
		metrics: handler.NewMetricsHandler(recorder, userService.Count),
		cfg:     cfg,
		logger:  logger,
	})

	srv := server.New(r, server.Options{
		Port:            cfg.Port,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}, logger)
	for _, hook := range shutdownHooks {
		srv.OnShutdown(hook.name, hook.fn)
	}

	logger.Info("starting server",
		"port", cfg.Port,
		"env", cfg.AppEnv,
	)
	logRoutes(r, logger)

	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

type namedShutdown struct {
	name string
	fn   server.ShutdownFunc
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

type routerDeps struct {
	root    *handler.Handler
	health  *handler.HealthHandler
	users   *handler.UserHandler
	metrics *handler.MetricsHandler
	cfg     *config.Config
	logger  *slog.Logger
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(d routerDeps) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(d.logger))
	r.Use(middleware.Recoverer(d.logger))
	r.Use(middleware.Security(middleware.SecurityConfig{
		IsDevelopment: d.cfg.IsDevelopment(),
	}))

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = d.cfg.GetCORSAllowedOrigins()
	r.Use(middleware.CORS(corsCfg))
	r.Use(middleware.MaxBodySize(d.cfg.MaxRequestBodySize))

	// Health and ops endpoints
	r.Get("/health", d.health.Health)
	r.Get("/healthz", d.health.Healthz)
	r.Get("/readyz", d.health.Readyz)
	r.Get("/metrics", d.metrics.Metrics)

	r.Get("/", d.root.Info)

	r.Route("/users", d.users.Routes)

	r.NotFound(d.root.NotFound)
	r.MethodNotAllowed(d.root.MethodNotAllowed)

	return r
}

// logRoutes logs every registered method and path at startup.
func logRoutes(r chi.Routes, logger *slog.Logger) {
	_ = chi.Walk(r, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		logger.Info("route registered", "method", method, "path", route)
		return nil
	})
}

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
