package postrouter

import (
	"log/slog"
	"net/http"

	posthandlers "github.com/Black-And-White-Club/clubhouse/app/modules/post/infrastructure/handlers"
	"github.com/go-chi/chi/v5"
)

// PostRouter registers the post module's HTTP routes.
type PostRouter struct {
	logger        *slog.Logger
	requireCaller func(http.Handler) http.Handler
}

// NewPostRouter creates a new PostRouter.
func NewPostRouter(logger *slog.Logger, requireCaller func(http.Handler) http.Handler) *PostRouter {
	return &PostRouter{logger: logger, requireCaller: requireCaller}
}

// Configure mounts the handlers under /posts. Every route needs a caller.
func (p *PostRouter) Configure(r chi.Router, handlers posthandlers.Handlers) {
	r.Route("/posts", func(r chi.Router) {
		r.Use(p.requireCaller)

		r.Get("/", handlers.ListPosts)
		r.Post("/", handlers.CreatePost)
		r.Get("/slug/{slug}", handlers.GetPostBySlug)
		r.Delete("/{postID}", handlers.DeletePost)
	})

	p.logger.Info("Post module routes registered")
}
