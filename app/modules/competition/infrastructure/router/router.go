package competitionrouter

import (
	"log/slog"
	"net/http"

	competitionhandlers "github.com/Black-And-White-Club/clubhouse/app/modules/competition/infrastructure/handlers"
	"github.com/go-chi/chi/v5"
)

// CompetitionRouter registers the competition module's HTTP routes.
type CompetitionRouter struct {
	logger         *slog.Logger
	requireCaller  func(http.Handler) http.Handler
	optionalCaller func(http.Handler) http.Handler
}

// NewCompetitionRouter creates a new CompetitionRouter.
func NewCompetitionRouter(
	logger *slog.Logger,
	requireCaller func(http.Handler) http.Handler,
	optionalCaller func(http.Handler) http.Handler,
) *CompetitionRouter {
	return &CompetitionRouter{
		logger:         logger,
		requireCaller:  requireCaller,
		optionalCaller: optionalCaller,
	}
}

// Configure mounts the handlers under /competitions and /registrations.
func (c *CompetitionRouter) Configure(r chi.Router, handlers competitionhandlers.Handlers) {
	r.Route("/competitions", func(r chi.Router) {
		r.Get("/", handlers.ListCompetitions)
		r.With(c.optionalCaller).Get("/slug/{slug}", handlers.GetCompetitionBySlug)
		r.With(c.optionalCaller).Get("/{competitionID}", handlers.GetCompetition)

		r.Group(func(r chi.Router) {
			r.Use(c.requireCaller)

			r.Post("/", handlers.CreateCompetition)
			r.Post("/slug/{slug}/register", handlers.Register)
			r.Put("/{competitionID}", handlers.UpdateCompetition)
			r.Delete("/{competitionID}", handlers.DeleteCompetition)
			r.Post("/{competitionID}/interest", handlers.ExpressInterest)
			r.Get("/{competitionID}/interest", handlers.IsInterested)
			r.Get("/{competitionID}/registrations", handlers.ListRegistrations)
			r.Get("/{competitionID}/registrations.xlsx", handlers.ExportRegistrations)
		})
	})

	r.With(c.requireCaller).Delete("/registrations/{registrationID}", handlers.DeleteRegistration)

	c.logger.Info("Competition module routes registered")
}
