package competition

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Black-And-White-Club/clubhouse/app/eventbus"
	"github.com/Black-And-White-Club/clubhouse/app/metrics"
	competitionservice "github.com/Black-And-White-Club/clubhouse/app/modules/competition/application"
	competitionhandlers "github.com/Black-And-White-Club/clubhouse/app/modules/competition/infrastructure/handlers"
	competitiondb "github.com/Black-And-White-Club/clubhouse/app/modules/competition/infrastructure/repositories"
	competitionrouter "github.com/Black-And-White-Club/clubhouse/app/modules/competition/infrastructure/router"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

// Module represents the competition module.
type Module struct {
	CompetitionService competitionservice.Service
	Handlers           competitionhandlers.Handlers
	logger             *slog.Logger
}

// NewCompetitionModule creates and initializes a new competition module.
func NewCompetitionModule(
	ctx context.Context,
	logger *slog.Logger,
	metrics metrics.OperationMetrics,
	tracer trace.Tracer,
	db *bun.DB,
	events eventbus.Emitter,
) *Module {
	logger.InfoContext(ctx, "competition.NewCompetitionModule initializing")

	repo := competitiondb.NewRepository(db)
	service := competitionservice.NewCompetitionService(repo, events, logger, metrics, tracer, db)
	handlers := competitionhandlers.NewCompetitionHandlers(service, logger)

	return &Module{
		CompetitionService: service,
		Handlers:           handlers,
		logger:             logger,
	}
}

// Mount registers the module's routes on the /api router.
func (m *Module) Mount(r chi.Router, requireCaller, optionalCaller func(http.Handler) http.Handler) {
	competitionrouter.NewCompetitionRouter(m.logger, requireCaller, optionalCaller).Configure(r, m.Handlers)
}
