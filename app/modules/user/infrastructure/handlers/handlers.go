package userhandlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	authhandlers "github.com/Black-And-White-Club/clubhouse/app/modules/auth/infrastructure/handlers"
	userservice "github.com/Black-And-White-Club/clubhouse/app/modules/user/application"
	"github.com/Black-And-White-Club/clubhouse/app/shared/outcome"
	"github.com/go-chi/chi/v5"
)

// Handlers defines the HTTP surface of the user module.
type Handlers interface {
	RegisterAccount(w http.ResponseWriter, r *http.Request)
	GetProfile(w http.ResponseWriter, r *http.Request)
	UpdateProfile(w http.ResponseWriter, r *http.Request)
	BecomeStaff(w http.ResponseWriter, r *http.Request)
	PromoteToSuperuser(w http.ResponseWriter, r *http.Request)
	RevokeStaff(w http.ResponseWriter, r *http.Request)
	DeleteUser(w http.ResponseWriter, r *http.Request)
}

// UserHandlers implements the Handlers interface.
type UserHandlers struct {
	service userservice.Service
	logger  *slog.Logger
}

// NewUserHandlers creates a new UserHandlers instance.
func NewUserHandlers(service userservice.Service, logger *slog.Logger) Handlers {
	return &UserHandlers{
		service: service,
		logger:  logger,
	}
}

type staffKeyRequest struct {
	Key string `json:"key"`
}

// RegisterAccount handles POST /api/accounts.
func (h *UserHandlers) RegisterAccount(w http.ResponseWriter, r *http.Request) {
	var req userservice.RegisterAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		outcome.WriteBadRequest(w, "Failed to decode request body")
		return
	}

	res, err := h.service.RegisterAccount(r.Context(), authhandlers.CallerFromContext(r.Context()), req)
	if err != nil {
		outcome.WriteFatal(w, r, h.logger, err)
		return
	}
	outcome.Write(w, res.Outcome, res.Value)
}

// GetProfile handles GET /api/profile.
func (h *UserHandlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.GetProfile(r.Context(), authhandlers.CallerFromContext(r.Context()))
	if err != nil {
		outcome.WriteFatal(w, r, h.logger, err)
		return
	}
	outcome.Write(w, res.Outcome, res.Value)
}

// UpdateProfile handles PUT /api/profile.
func (h *UserHandlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req userservice.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		outcome.WriteBadRequest(w, "Failed to decode request body")
		return
	}

	res, err := h.service.UpdateProfile(r.Context(), authhandlers.CallerFromContext(r.Context()), req)
	if err != nil {
		outcome.WriteFatal(w, r, h.logger, err)
		return
	}
	outcome.Write(w, res.Outcome, res.Value)
}

// BecomeStaff handles POST /api/staff/elevate.
func (h *UserHandlers) BecomeStaff(w http.ResponseWriter, r *http.Request) {
	var req staffKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		outcome.WriteBadRequest(w, "Failed to decode request body")
		return
	}

	o, err := h.service.BecomeStaff(r.Context(), authhandlers.CallerFromContext(r.Context()), req.Key)
	if err != nil {
		outcome.WriteFatal(w, r, h.logger, err)
		return
	}
	outcome.Write(w, o, nil)
}

// PromoteToSuperuser handles POST /api/admin/users/{userID}/promote.
func (h *UserHandlers) PromoteToSuperuser(w http.ResponseWriter, r *http.Request) {
	targetID, ok := userIDParam(w, r)
	if !ok {
		return
	}
	o, err := h.service.PromoteToSuperuser(r.Context(), authhandlers.CallerFromContext(r.Context()), targetID)
	if err != nil {
		outcome.WriteFatal(w, r, h.logger, err)
		return
	}
	outcome.Write(w, o, nil)
}

// RevokeStaff handles POST /api/admin/users/{userID}/revoke.
func (h *UserHandlers) RevokeStaff(w http.ResponseWriter, r *http.Request) {
	targetID, ok := userIDParam(w, r)
	if !ok {
		return
	}
	o, err := h.service.RevokeStaff(r.Context(), authhandlers.CallerFromContext(r.Context()), targetID)
	if err != nil {
		outcome.WriteFatal(w, r, h.logger, err)
		return
	}
	outcome.Write(w, o, nil)
}

// DeleteUser handles DELETE /api/admin/users/{userID}.
func (h *UserHandlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	targetID, ok := userIDParam(w, r)
	if !ok {
		return
	}
	o, err := h.service.DeleteUser(r.Context(), authhandlers.CallerFromContext(r.Context()), targetID)
	if err != nil {
		outcome.WriteFatal(w, r, h.logger, err)
		return
	}
	outcome.Write(w, o, nil)
}

func userIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil || id <= 0 {
		outcome.WriteBadRequest(w, "Invalid user ID")
		return 0, false
	}
	return id, true
}
