package user

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Black-And-White-Club/clubhouse/app/eventbus"
	"github.com/Black-And-White-Club/clubhouse/app/metrics"
	userservice "github.com/Black-And-White-Club/clubhouse/app/modules/user/application"
	userhandlers "github.com/Black-And-White-Club/clubhouse/app/modules/user/infrastructure/handlers"
	userdb "github.com/Black-And-White-Club/clubhouse/app/modules/user/infrastructure/repositories"
	userrouter "github.com/Black-And-White-Club/clubhouse/app/modules/user/infrastructure/router"
	"github.com/Black-And-White-Club/clubhouse/config"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

// Module represents the user module.
type Module struct {
	UserService userservice.Service
	Handlers    userhandlers.Handlers
	logger      *slog.Logger
}

// NewUserModule initializes the user module.
func NewUserModule(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	metrics metrics.OperationMetrics,
	tracer trace.Tracer,
	db *bun.DB,
	events eventbus.Emitter,
) *Module {
	logger.InfoContext(ctx, "user.NewUserModule initializing")

	// 1. Initialize Repository
	repo := userdb.NewRepository(db)

	// 2. Initialize Service
	service := userservice.NewUserService(repo, events, cfg.Staff.ElevationKey, logger, metrics, tracer, db)

	// 3. Initialize Handlers
	handlers := userhandlers.NewUserHandlers(service, logger)

	return &Module{
		UserService: service,
		Handlers:    handlers,
		logger:      logger,
	}
}

// Mount registers the module's routes on the /api router.
func (m *Module) Mount(r chi.Router, requireCaller, optionalCaller func(http.Handler) http.Handler) {
	userrouter.NewUserRouter(m.logger, requireCaller, optionalCaller).Configure(r, m.Handlers)
}
