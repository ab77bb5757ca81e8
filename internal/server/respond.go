package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"prepdeck/internal/interview"
)

type errorBody struct {
	Error string `json:"error"`
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Warn("encode response", zap.Error(err))
	}
}

func (h *Handlers) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, errorBody{Error: msg})
}

// writeDomainError maps interview errors to HTTP statuses.
func (h *Handlers) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, interview.ErrSessionNotFound):
		h.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, interview.ErrNoQuestions),
		errors.Is(err, interview.ErrNotInProgress),
		errors.Is(err, interview.ErrNotComplete),
		errors.Is(err, interview.ErrSubmissionInFlight),
		errors.Is(err, interview.ErrSubmissionStale):
		h.writeError(w, http.StatusConflict, err.Error())
	default:
		h.logger.Error("handler error", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// decodeBody parses a JSON request body into dst.
func decodeBody(r *http.Request, dst any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	return dec.Decode(dst)
}
