package outcome

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Response is the JSON envelope written for every API call.
type Response struct {
	Outcome
	Data any `json:"data,omitempty"`
}

// Write renders o, and data when the outcome is not a failure.
func Write(w http.ResponseWriter, o Outcome, data any) {
	resp := Response{Outcome: o}
	if !o.IsFailure() {
		resp.Data = data
	}
	WriteJSON(w, o.HTTPStatus(), resp)
}

// WriteJSON encodes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteFatal logs err and renders an opaque 500.
func WriteFatal(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	logger.ErrorContext(r.Context(), "Request failed",
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
	)
	WriteJSON(w, http.StatusInternalServerError, Response{Outcome: Outcome{
		Kind:    KindError,
		Message: http.StatusText(http.StatusInternalServerError),
	}})
}

// WriteBadRequest renders a malformed-input failure.
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteJSON(w, http.StatusBadRequest, Response{Outcome: Error(message, "")})
}
