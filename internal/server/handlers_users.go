package server

import (
	"net/http"
)

// hexagonInsights serves the user's six-axis skill vector, shaped for the
// radar chart.
func (h *Handlers) hexagonInsights(w http.ResponseWriter, r *http.Request) {
	if h.profiles == nil {
		h.writeError(w, http.StatusServiceUnavailable, "profile store not configured")
		return
	}
	username := r.PathValue("username")

	p, err := h.profiles.GetOrCreate(r.Context(), username)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"username": username,
		"insights": p.Skills,
		"axes":     p.Skills.Sorted(),
	})
}

// userStats serves cumulative profile statistics plus recent history.
func (h *Handlers) userStats(w http.ResponseWriter, r *http.Request) {
	if h.profiles == nil {
		h.writeError(w, http.StatusServiceUnavailable, "profile store not configured")
		return
	}
	username := r.PathValue("username")
	ctx := r.Context()

	p, err := h.profiles.GetOrCreate(ctx, username)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	stats, err := h.profiles.CategoryStats(ctx, username)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	history, err := h.profiles.History(ctx, username, 10)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{
		"profile":        p,
		"category_stats": stats,
		"history":        history,
	})
}
