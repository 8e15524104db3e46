package portal

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/set-night/o2ledger/internal/domain"
	"github.com/set-night/o2ledger/internal/service"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}

// fail maps a service error to its HTTP response.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	var (
		insufficient *domain.InsufficientBalanceError
		invalid      *domain.ValidationError
	)
	switch {
	case errors.As(err, &invalid):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":  "validation failed",
			"fields": invalid.Fields,
		})
	case errors.As(err, &insufficient):
		writeJSON(w, http.StatusConflict, map[string]any{
			"error":     domain.ErrInsufficientBalance.Error(),
			"required":  insufficient.Required,
			"available": insufficient.Available,
		})
	case errors.Is(err, domain.ErrRecordNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrForbidden), errors.Is(err, domain.ErrUnknownPrincipal):
		writeError(w, http.StatusForbidden, domain.ErrForbidden.Error())
	case errors.Is(err, domain.ErrActivityUnavailable),
		errors.Is(err, domain.ErrNotAParticipant),
		errors.Is(err, service.ErrTelegramLinked):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrInvalidAmount):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		slog.Error("portal request failed", "error", err, "method", r.Method, "path", r.URL.Path)
		if s.opts.Errors != nil {
			s.opts.Errors.LogError(err, r.Method+" "+r.URL.Path)
		}
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
