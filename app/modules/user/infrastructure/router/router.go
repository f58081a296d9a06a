package userrouter

import (
	"log/slog"
	"net/http"

	userhandlers "github.com/Black-And-White-Club/clubhouse/app/modules/user/infrastructure/handlers"
	"github.com/go-chi/chi/v5"
)

// UserRouter registers the user module's HTTP routes.
type UserRouter struct {
	logger         *slog.Logger
	requireCaller  func(http.Handler) http.Handler
	optionalCaller func(http.Handler) http.Handler
}

// NewUserRouter creates a new UserRouter. requireCaller and optionalCaller
// are the auth module's caller middlewares.
func NewUserRouter(
	logger *slog.Logger,
	requireCaller func(http.Handler) http.Handler,
	optionalCaller func(http.Handler) http.Handler,
) *UserRouter {
	return &UserRouter{
		logger:         logger,
		requireCaller:  requireCaller,
		optionalCaller: optionalCaller,
	}
}

// Configure mounts the handlers on r, which is expected to be the /api router.
func (u *UserRouter) Configure(r chi.Router, handlers userhandlers.Handlers) {
	r.With(u.optionalCaller).Post("/accounts", handlers.RegisterAccount)

	r.Group(func(r chi.Router) {
		r.Use(u.requireCaller)

		r.Get("/profile", handlers.GetProfile)
		r.Put("/profile", handlers.UpdateProfile)
		r.Post("/staff/elevate", handlers.BecomeStaff)

		r.Route("/admin/users/{userID}", func(r chi.Router) {
			r.Post("/promote", handlers.PromoteToSuperuser)
			r.Post("/revoke", handlers.RevokeStaff)
			r.Delete("/", handlers.DeleteUser)
		})
	})

	u.logger.Info("User module routes registered")
}
