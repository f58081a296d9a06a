// Package app assembles the clubhouse modules into one HTTP application.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Black-And-White-Club/clubhouse/app/eventbus"
	"github.com/Black-And-White-Club/clubhouse/app/metrics"
	"github.com/Black-And-White-Club/clubhouse/app/modules/auth"
	"github.com/Black-And-White-Club/clubhouse/app/modules/club"
	"github.com/Black-And-White-Club/clubhouse/app/modules/competition"
	"github.com/Black-And-White-Club/clubhouse/app/modules/post"
	"github.com/Black-And-White-Club/clubhouse/app/modules/user"
	"github.com/Black-And-White-Club/clubhouse/config"
	"github.com/Black-And-White-Club/clubhouse/db/bundb"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
)

const serviceName = "clubhouse"

// Modules holds every initialized module.
type Modules struct {
	Auth        *auth.Module
	User        *user.Module
	Club        *club.Module
	Competition *competition.Module
	Post        *post.Module
}

// App owns the shared infrastructure and the modules built on it.
type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	DB       *bun.DB
	Events   *eventbus.Bus
	Modules  Modules
	registry *prometheus.Registry
}

// NewApp connects to Postgres and the event bus and initializes the modules.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := bundb.Open(ctx, cfg.Postgres)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	publisher, err := eventbus.NewPublisher(cfg.NATS.URL, logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize event bus: %w", err)
	}

	app, err := newApp(ctx, cfg, logger, db, eventbus.New(publisher, logger))
	if err != nil {
		publisher.Close()
		db.Close()
		return nil, err
	}
	return app, nil
}

// newApp wires the modules over already opened infrastructure.
func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *bun.DB, events *eventbus.Bus) (*App, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	opMetrics, err := metrics.NewPrometheus(registry, serviceName)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}
	tracer := otel.Tracer(serviceName)

	userModule := user.NewUserModule(ctx, cfg, logger, opMetrics, tracer, db, events)
	modules := Modules{
		Auth:        auth.NewModule(cfg, logger),
		User:        userModule,
		Club:        club.NewClubModule(ctx, logger, opMetrics, tracer, db, events, userModule.UserService),
		Competition: competition.NewCompetitionModule(ctx, logger, opMetrics, tracer, db, events),
		Post:        post.NewPostModule(ctx, logger, opMetrics, tracer, db, userModule.UserService),
	}

	return &App{
		Config:   cfg,
		Logger:   logger,
		DB:       db,
		Events:   events,
		Modules:  modules,
		registry: registry,
	}, nil
}

// Router builds the HTTP handler: probes and metrics at the root, the
// modules under /api.
func (a *App) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", a.healthz)
	r.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}))

	requireCaller := a.Modules.Auth.RequireCaller(a.Modules.User.UserService)
	optionalCaller := a.Modules.Auth.OptionalCaller(a.Modules.User.UserService)

	r.Route("/api", func(r chi.Router) {
		a.Modules.Auth.Mount(r)
		a.Modules.User.Mount(r, requireCaller, optionalCaller)
		a.Modules.Club.Mount(r, requireCaller, optionalCaller)
		a.Modules.Competition.Mount(r, requireCaller, optionalCaller)
		a.Modules.Post.Mount(r, requireCaller, optionalCaller)
	})
	return r
}

func (a *App) healthz(w http.ResponseWriter, r *http.Request) {
	if a.DB != nil {
		if err := a.DB.PingContext(r.Context()); err != nil {
			a.Logger.WarnContext(r.Context(), "Health check failed", slog.Any("error", err))
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Close releases the event bus and the database.
func (a *App) Close() error {
	var errs []error
	if a.Events != nil {
		if err := a.Events.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close event bus: %w", err))
		}
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}
	return errors.Join(errs...)
}
