package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/mohmad-Awadallah/e-bank/internal/domain"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("failed to encode JSON response")
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondDomainError maps the error taxonomy to HTTP status codes.
// Unknown and fatal errors hide their details from the client.
func respondDomainError(w http.ResponseWriter, err error) {
	switch domain.Kind(err) {
	case domain.KindValidation:
		respondError(w, http.StatusBadRequest, err.Error())
	case domain.KindNotFound:
		respondError(w, http.StatusNotFound, err.Error())
	case domain.KindConflict:
		respondError(w, http.StatusConflict, err.Error())
	case domain.KindBusinessRule:
		respondError(w, http.StatusUnprocessableEntity, err.Error())
	case domain.KindFatal:
		log.Error().Err(err).Msg("reconciliation-grade failure")
		respondError(w, http.StatusInternalServerError, "internal server error")
	default:
		log.Error().Err(err).Msg("unexpected error")
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
