package clubrouter

import (
	"log/slog"
	"net/http"

	clubhandlers "github.com/Black-And-White-Club/clubhouse/app/modules/club/infrastructure/handlers"
	"github.com/go-chi/chi/v5"
)

// ClubRouter registers the club module's HTTP routes.
type ClubRouter struct {
	logger         *slog.Logger
	requireCaller  func(http.Handler) http.Handler
	optionalCaller func(http.Handler) http.Handler
}

// NewClubRouter creates a new ClubRouter.
func NewClubRouter(
	logger *slog.Logger,
	requireCaller func(http.Handler) http.Handler,
	optionalCaller func(http.Handler) http.Handler,
) *ClubRouter {
	return &ClubRouter{
		logger:         logger,
		requireCaller:  requireCaller,
		optionalCaller: optionalCaller,
	}
}

// Configure mounts the handlers under /clubs. Reads are public; detail pages
// use the caller, when present, to report membership.
func (c *ClubRouter) Configure(r chi.Router, handlers clubhandlers.Handlers) {
	r.Route("/clubs", func(r chi.Router) {
		r.Get("/", handlers.ListClubs)
		r.With(c.optionalCaller).Get("/slug/{slug}", handlers.GetClubBySlug)
		r.With(c.optionalCaller).Get("/{clubID}", handlers.GetClub)

		r.Group(func(r chi.Router) {
			r.Use(c.requireCaller)

			r.Post("/", handlers.CreateClub)
			r.Post("/leave", handlers.LeaveClub)
			r.Delete("/{clubID}", handlers.DeleteClub)
			r.Post("/{clubID}/join", handlers.JoinClub)
			r.Get("/{clubID}/members", handlers.ListMembers)
			r.Delete("/{clubID}/members/{userID}", handlers.RemoveMember)
		})
	})

	c.logger.Info("Club module routes registered")
}
