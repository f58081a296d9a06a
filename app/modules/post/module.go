package post

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Black-And-White-Club/clubhouse/app/metrics"
	postservice "github.com/Black-And-White-Club/clubhouse/app/modules/post/application"
	posthandlers "github.com/Black-And-White-Club/clubhouse/app/modules/post/infrastructure/handlers"
	postdb "github.com/Black-And-White-Club/clubhouse/app/modules/post/infrastructure/repositories"
	postrouter "github.com/Black-And-White-Club/clubhouse/app/modules/post/infrastructure/router"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace"
)

// Module represents the post module.
type Module struct {
	PostService postservice.Service
	Handlers    posthandlers.Handlers
	logger      *slog.Logger
}

// NewPostModule creates and initializes a new post module.
func NewPostModule(
	ctx context.Context,
	logger *slog.Logger,
	metrics metrics.OperationMetrics,
	tracer trace.Tracer,
	db *bun.DB,
	profiles postservice.ProfileLookup,
) *Module {
	logger.InfoContext(ctx, "post.NewPostModule initializing")

	service := postservice.NewPostService(postdb.NewRepository(db), profiles, logger, metrics, tracer, db)
	return &Module{
		PostService: service,
		Handlers:    posthandlers.NewPostHandlers(service, logger),
		logger:      logger,
	}
}

// Mount registers the module's routes on the /api router. Posts have no
// anonymous reads.
func (m *Module) Mount(r chi.Router, requireCaller, _ func(http.Handler) http.Handler) {
	postrouter.NewPostRouter(m.logger, requireCaller).Configure(r, m.Handlers)
}
