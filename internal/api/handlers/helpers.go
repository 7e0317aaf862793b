package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"sleigh-route-service/internal/adapters/csvfile"
	"sleigh-route-service/internal/domain"
	"sleigh-route-service/internal/platform/obs"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("encode failed")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// writeDomainError maps planning and input errors to client statuses and logs
// everything else as an internal error.
func writeDomainError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var (
		wErr *domain.WindowExceededError
		pErr *csvfile.ParseError
	)

	switch {
	case errors.Is(err, domain.ErrPlanNotFound):
		writeError(w, r, http.StatusNotFound, "plan not found")
	case errors.As(err, &wErr):
		writeJSON(w, r, http.StatusUnprocessableEntity, map[string]any{
			"error":              wErr.Error(),
			"elapsed_minutes":    wErr.Elapsed.Minutes(),
			"window_minutes":     wErr.Window.Minutes(),
			"required_speed_kmh": wErr.RequiredSpeedKmh,
		})
	case errors.As(err, &pErr),
		errors.Is(err, domain.ErrArticleTooLarge),
		errors.Is(err, domain.ErrUnknownArticle),
		errors.Is(err, domain.ErrInvalidArticle),
		errors.Is(err, domain.ErrInvalidChild),
		errors.Is(err, domain.ErrDuplicateChild),
		errors.Is(err, domain.ErrInvalidSpecification):
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
	default:
		log.Error().Err(err).Str("req_id", obs.RequestID(r.Context())).Str("op", op).Msg("request failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}
