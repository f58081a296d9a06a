package clubhandlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	authhandlers "github.com/Black-And-White-Club/clubhouse/app/modules/auth/infrastructure/handlers"
	clubservice "github.com/Black-And-White-Club/clubhouse/app/modules/club/application"
	"github.com/Black-And-White-Club/clubhouse/app/shared/outcome"
	"github.com/go-chi/chi/v5"
)

// Handlers defines the HTTP surface of the club module.
type Handlers interface {
	ListClubs(w http.ResponseWriter, r *http.Request)
	CreateClub(w http.ResponseWriter, r *http.Request)
	GetClub(w http.ResponseWriter, r *http.Request)
	GetClubBySlug(w http.ResponseWriter, r *http.Request)
	DeleteClub(w http.ResponseWriter, r *http.Request)
	JoinClub(w http.ResponseWriter, r *http.Request)
	LeaveClub(w http.ResponseWriter, r *http.Request)
	ListMembers(w http.ResponseWriter, r *http.Request)
	RemoveMember(w http.ResponseWriter, r *http.Request)
}

// ClubHandlers implements the Handlers interface.
type ClubHandlers struct {
	service clubservice.Service
	logger  *slog.Logger
}

// NewClubHandlers creates a new ClubHandlers instance.
func NewClubHandlers(service clubservice.Service, logger *slog.Logger) Handlers {
	return &ClubHandlers{
		service: service,
		logger:  logger,
	}
}

// ListClubs handles GET /api/clubs.
func (h *ClubHandlers) ListClubs(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.ListClubs(r.Context())
	if err != nil {
		outcome.WriteFatal(w, r, h.logger, err)
		return
	}
	outcome.Write(w, res.Outcome, res.Value)
}

// CreateClub handles POST /api/clubs.
func (h *ClubHandlers) CreateClub(w http.ResponseWriter, r *http.Request) {
	var req clubservice.CreateClubRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		outcome.WriteBadRequest(w, "Failed to decode request body")
		return
	}

	res, err := h.service.CreateClub(r.Context(), authhandlers.CallerFromContext(r.Context()), req)
	if err != nil {
		outcome.WriteFatal(w, r, h.logger, err)
		return
	}
	outcome.Write(w, res.Outcome, res.Value)
}

// GetClub handles GET /api/clubs/{clubID}.
func (h *ClubHandlers) GetClub(w http.ResponseWriter, r *http.Request) {
	clubID, ok := idParam(w, r, "clubID")
	if !ok {
		return
	}
	res, err := h.service.GetClub(r.Context(), authhandlers.CallerFromContext(r.Context()), clubID)
	if err != nil {
		outcome.WriteFatal(w, r, h.logger, err)
		return
	}
	outcome.Write(w, res.Outcome, res.Value)
}

// GetClubBySlug handles GET /api/clubs/slug/{slug}.
func (h *ClubHandlers) GetClubBySlug(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.GetClubBySlug(r.Context(), authhandlers.CallerFromContext(r.Context()), chi.URLParam(r, "slug"))
	if err != nil {
		outcome.WriteFatal(w, r, h.logger, err)
		return
	}
	outcome.Write(w, res.Outcome, res.Value)
}

// DeleteClub handles DELETE /api/clubs/{clubID}.
func (h *ClubHandlers) DeleteClub(w http.ResponseWriter, r *http.Request) {
	clubID, ok := idParam(w, r, "clubID")
	if !ok {
		return
	}
	o, err := h.service.DeleteClub(r.Context(), authhandlers.CallerFromContext(r.Context()), clubID)
	if err != nil {
		outcome.WriteFatal(w, r, h.logger, err)
		return
	}
	outcome.Write(w, o, nil)
}

// JoinClub handles POST /api/clubs/{clubID}/join.
func (h *ClubHandlers) JoinClub(w http.ResponseWriter, r *http.Request) {
	clubID, ok := idParam(w, r, "clubID")
	if !ok {
		return
	}
	o, err := h.service.JoinClub(r.Context(), authhandlers.CallerFromContext(r.Context()), clubID)
	if err != nil {
		outcome.WriteFatal(w, r, h.logger, err)
		return
	}
	outcome.Write(w, o, nil)
}

// LeaveClub handles POST /api/clubs/leave.
func (h *ClubHandlers) LeaveClub(w http.ResponseWriter, r *http.Request) {
	o, err := h.service.LeaveClub(r.Context(), authhandlers.CallerFromContext(r.Context()))
	if err != nil {
		outcome.WriteFatal(w, r, h.logger, err)
		return
	}
	outcome.Write(w, o, nil)
}

// ListMembers handles GET /api/clubs/{clubID}/members.
func (h *ClubHandlers) ListMembers(w http.ResponseWriter, r *http.Request) {
	clubID, ok := idParam(w, r, "clubID")
	if !ok {
		return
	}
	res, err := h.service.ListMembers(r.Context(), authhandlers.CallerFromContext(r.Context()), clubID)
	if err != nil {
		outcome.WriteFatal(w, r, h.logger, err)
		return
	}
	outcome.Write(w, res.Outcome, res.Value)
}

// RemoveMember handles DELETE /api/clubs/{clubID}/members/{userID}.
func (h *ClubHandlers) RemoveMember(w http.ResponseWriter, r *http.Request) {
	clubID, ok := idParam(w, r, "clubID")
	if !ok {
		return
	}
	userID, ok := idParam(w, r, "userID")
	if !ok {
		return
	}
	o, err := h.service.RemoveMember(r.Context(), authhandlers.CallerFromContext(r.Context()), clubID, userID)
	if err != nil {
		outcome.WriteFatal(w, r, h.logger, err)
		return
	}
	outcome.Write(w, o, nil)
}

func idParam(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		outcome.WriteBadRequest(w, "Invalid "+name)
		return 0, false
	}
	return id, true
}
