package club

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Black-And-White-Club/clubhouse/app/eventbus"
	"github.com/Black-And-White-Club/clubhouse/app/metrics"
	clubservice "github.com/Black-And-White-Club/clubhouse/app/modules/club/application"
	clubhandlers "github.com/Black-And-White-Club/clubhouse/app/modules/club/infrastructure/handlers"
	clubdb "github.com/Black-And-White-Club/clubhouse/app/modules/club/infrastructure/repositories"
	clubrouter "github.com/Black-And-White-Club/clubhouse/app/modules/club/infrastructure/router"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

// Module represents the club module.
type Module struct {
	ClubService clubservice.Service
	Handlers    clubhandlers.Handlers
	logger      *slog.Logger
}

// NewClubModule creates and initializes a new club module. profiles resolves
// the author profile of new clubs and is served by the user module.
func NewClubModule(
	ctx context.Context,
	logger *slog.Logger,
	metrics metrics.OperationMetrics,
	tracer trace.Tracer,
	db *bun.DB,
	events eventbus.Emitter,
	profiles clubservice.ProfileLookup,
) *Module {
	logger.InfoContext(ctx, "club.NewClubModule initializing")

	repo := clubdb.NewRepository(db)
	service := clubservice.NewClubService(repo, profiles, events, logger, metrics, tracer, db)
	handlers := clubhandlers.NewClubHandlers(service, logger)

	return &Module{
		ClubService: service,
		Handlers:    handlers,
		logger:      logger,
	}
}

// Mount registers the module's routes on the /api router.
func (m *Module) Mount(r chi.Router, requireCaller, optionalCaller func(http.Handler) http.Handler) {
	clubrouter.NewClubRouter(m.logger, requireCaller, optionalCaller).Configure(r, m.Handlers)
}
