package server

import (
	"net/http"

	"prepdeck/internal/salary"
)

func (h *Handlers) calculateSalary(w http.ResponseWriter, r *http.Request) {
	var p salary.Profile
	if err := decodeBody(r, &p); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.writeJSON(w, http.StatusOK, h.estimator.Estimate(p))
}
