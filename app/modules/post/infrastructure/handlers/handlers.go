package posthandlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	authhandlers "github.com/Black-And-White-Club/clubhouse/app/modules/auth/infrastructure/handlers"
	postservice "github.com/Black-And-White-Club/clubhouse/app/modules/post/application"
	"github.com/Black-And-White-Club/clubhouse/app/shared/outcome"
	"github.com/go-chi/chi/v5"
)

// Handlers defines the HTTP surface of the post module.
type Handlers interface {
	ListPosts(w http.ResponseWriter, r *http.Request)
	CreatePost(w http.ResponseWriter, r *http.Request)
	GetPostBySlug(w http.ResponseWriter, r *http.Request)
	DeletePost(w http.ResponseWriter, r *http.Request)
}

// PostHandlers implements the Handlers interface.
type PostHandlers struct {
	service postservice.Service
	logger  *slog.Logger
}

// NewPostHandlers creates a new PostHandlers instance.
func NewPostHandlers(service postservice.Service, logger *slog.Logger) Handlers {
	return &PostHandlers{
		service: service,
		logger:  logger,
	}
}

func (h *PostHandlers) ListPosts(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.ListPosts(r.Context(), authhandlers.CallerFromContext(r.Context()))
	if err != nil {
		outcome.WriteFatal(w, r, h.logger, err)
		return
	}
	outcome.Write(w, res.Outcome, res.Value)
}

func (h *PostHandlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req postservice.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		outcome.WriteBadRequest(w, "Failed to decode request body")
		return
	}

	res, err := h.service.CreatePost(r.Context(), authhandlers.CallerFromContext(r.Context()), req)
	if err != nil {
		outcome.WriteFatal(w, r, h.logger, err)
		return
	}
	outcome.Write(w, res.Outcome, res.Value)
}

func (h *PostHandlers) GetPostBySlug(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.GetPostBySlug(r.Context(), authhandlers.CallerFromContext(r.Context()), chi.URLParam(r, "slug"))
	if err != nil {
		outcome.WriteFatal(w, r, h.logger, err)
		return
	}
	outcome.Write(w, res.Outcome, res.Value)
}

func (h *PostHandlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.ParseInt(chi.URLParam(r, "postID"), 10, 64)
	if err != nil || postID <= 0 {
		outcome.WriteBadRequest(w, "Invalid postID")
		return
	}
	o, err := h.service.DeletePost(r.Context(), authhandlers.CallerFromContext(r.Context()), postID)
	if err != nil {
		outcome.WriteFatal(w, r, h.logger, err)
		return
	}
	outcome.Write(w, o, nil)
}
