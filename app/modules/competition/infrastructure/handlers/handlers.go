package competitionhandlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	authhandlers "github.com/Black-And-White-Club/clubhouse/app/modules/auth/infrastructure/handlers"
	competitionservice "github.com/Black-And-White-Club/clubhouse/app/modules/competition/application"
	"github.com/Black-And-White-Club/clubhouse/app/shared/outcome"
	"github.com/go-chi/chi/v5"
)

// Handlers defines the HTTP surface of the competition module.
type Handlers interface {
	ListCompetitions(w http.ResponseWriter, r *http.Request)
	CreateCompetition(w http.ResponseWriter, r *http.Request)
	GetCompetition(w http.ResponseWriter, r *http.Request)
	GetCompetitionBySlug(w http.ResponseWriter, r *http.Request)
	UpdateCompetition(w http.ResponseWriter, r *http.Request)
	DeleteCompetition(w http.ResponseWriter, r *http.Request)
	ExpressInterest(w http.ResponseWriter, r *http.Request)
	IsInterested(w http.ResponseWriter, r *http.Request)
	Register(w http.ResponseWriter, r *http.Request)
	ListRegistrations(w http.ResponseWriter, r *http.Request)
	ExportRegistrations(w http.ResponseWriter, r *http.Request)
	DeleteRegistration(w http.ResponseWriter, r *http.Request)
}

// CompetitionHandlers implements the Handlers interface.
type CompetitionHandlers struct {
	service competitionservice.Service
	logger  *slog.Logger
}

// NewCompetitionHandlers creates a new CompetitionHandlers instance.
func NewCompetitionHandlers(service competitionservice.Service, logger *slog.Logger) Handlers {
	return &CompetitionHandlers{
		service: service,
		logger:  logger,
	}
}

// ListCompetitions handles GET /api/competitions, optionally filtered by
// ?club_id=.
func (h *CompetitionHandlers) ListCompetitions(w http.ResponseWriter, r *http.Request) {
	var clubID *int64
	if raw := r.URL.Query().Get("club_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			outcome.WriteBadRequest(w, "Invalid club_id")
			return
		}
		clubID = &id
	}

	res, err := h.service.ListCompetitions(r.Context(), clubID)
	if err != nil {
		outcome.WriteFatal(w, r, h.logger, err)
		return
	}
	outcome.Write(w, res.Outcome, res.Value)
}

// CreateCompetition handles POST /api/competitions.
func (h *CompetitionHandlers) CreateCompetition(w http.ResponseWriter, r *http.Request) {
	var req competitionservice.CompetitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		outcome.WriteBadRequest(w, "Failed to decode request body")
		return
	}

	res, err := h.service.CreateCompetition(r.Context(), authhandlers.CallerFromContext(r.Context()), req)
	if err != nil {
		outcome.WriteFatal(w, r, h.logger, err)
		return
	}
	outcome.Write(w, res.Outcome, res.Value)
}

// GetCompetition handles GET /api/competitions/{competitionID}.
func (h *CompetitionHandlers) GetCompetition(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "competitionID")
	if !ok {
		return
	}
	res, err := h.service.GetCompetition(r.Context(), authhandlers.CallerFromContext(r.Context()), id)
	if err != nil {
		outcome.WriteFatal(w, r, h.logger, err)
		return
	}
	outcome.Write(w, res.Outcome, res.Value)
}

// GetCompetitionBySlug handles GET /api/competitions/slug/{slug}.
func (h *CompetitionHandlers) GetCompetitionBySlug(w http.ResponseWriter, r *http.Request) {
	res, err := h.service.GetCompetitionBySlug(r.Context(), authhandlers.CallerFromContext(r.Context()), chi.URLParam(r, "slug"))
	if err != nil {
		outcome.WriteFatal(w, r, h.logger, err)
		return
	}
	outcome.Write(w, res.Outcome, res.Value)
}

// UpdateCompetition handles PUT /api/competitions/{competitionID}.
func (h *CompetitionHandlers) UpdateCompetition(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "competitionID")
	if !ok {
		return
	}
	var req competitionservice.CompetitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		outcome.WriteBadRequest(w, "Failed to decode request body")
		return
	}

	res, err := h.service.UpdateCompetition(r.Context(), authhandlers.CallerFromContext(r.Context()), id, req)
	if err != nil {
		outcome.WriteFatal(w, r, h.logger, err)
		return
	}
	outcome.Write(w, res.Outcome, res.Value)
}

// DeleteCompetition handles DELETE /api/competitions/{competitionID}.
func (h *CompetitionHandlers) DeleteCompetition(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "competitionID")
	if !ok {
		return
	}
	o, err := h.service.DeleteCompetition(r.Context(), authhandlers.CallerFromContext(r.Context()), id)
	if err != nil {
		outcome.WriteFatal(w, r, h.logger, err)
		return
	}
	outcome.Write(w, o, nil)
}

// ExpressInterest handles POST /api/competitions/{competitionID}/interest.
func (h *CompetitionHandlers) ExpressInterest(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "competitionID")
	if !ok {
		return
	}
	o, err := h.service.ExpressInterest(r.Context(), authhandlers.CallerFromContext(r.Context()), id)
	if err != nil {
		outcome.WriteFatal(w, r, h.logger, err)
		return
	}
	outcome.Write(w, o, nil)
}

// IsInterested handles GET /api/competitions/{competitionID}/interest.
func (h *CompetitionHandlers) IsInterested(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "competitionID")
	if !ok {
		return
	}
	res, err := h.service.IsInterested(r.Context(), authhandlers.CallerFromContext(r.Context()), id)
	if err != nil {
		outcome.WriteFatal(w, r, h.logger, err)
		return
	}
	outcome.Write(w, res.Outcome, map[string]bool{"interested": res.Value})
}

// Register handles POST /api/competitions/slug/{slug}/register.
func (h *CompetitionHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req competitionservice.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		outcome.WriteBadRequest(w, "Failed to decode request body")
		return
	}

	res, err := h.service.Register(r.Context(), authhandlers.CallerFromContext(r.Context()), chi.URLParam(r, "slug"), req)
	if err != nil {
		outcome.WriteFatal(w, r, h.logger, err)
		return
	}
	outcome.Write(w, res.Outcome, res.Value)
}

// ListRegistrations handles GET /api/competitions/{competitionID}/registrations.
func (h *CompetitionHandlers) ListRegistrations(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "competitionID")
	if !ok {
		return
	}
	res, err := h.service.ListRegistrations(r.Context(), authhandlers.CallerFromContext(r.Context()), id)
	if err != nil {
		outcome.WriteFatal(w, r, h.logger, err)
		return
	}
	outcome.Write(w, res.Outcome, res.Value)
}

// ExportRegistrations handles GET /api/competitions/{competitionID}/registrations.xlsx.
// Failures are rendered as the usual JSON envelope.
func (h *CompetitionHandlers) ExportRegistrations(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "competitionID")
	if !ok {
		return
	}
	res, err := h.service.ExportRegistrations(r.Context(), authhandlers.CallerFromContext(r.Context()), id)
	if err != nil {
		outcome.WriteFatal(w, r, h.logger, err)
		return
	}
	if res.IsFailure() || res.Value == nil {
		outcome.Write(w, res.Outcome, nil)
		return
	}

	w.Header().Set("Content-Type", res.Value.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+res.Value.Filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Value.Data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(res.Value.Data); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to write export", slog.Any("error", err))
	}
}

// DeleteRegistration handles DELETE /api/registrations/{registrationID}.
func (h *CompetitionHandlers) DeleteRegistration(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "registrationID")
	if !ok {
		return
	}
	o, err := h.service.DeleteRegistration(r.Context(), authhandlers.CallerFromContext(r.Context()), id)
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
