package server

import (
	"net/http"

	"go.uber.org/zap"

	"prepdeck/internal/interview"
	"prepdeck/internal/llm"
	"prepdeck/internal/profile"
	"prepdeck/internal/salary"
)

// Handlers holds the API's collaborators.
type Handlers struct {
	interviews *interview.Manager
	estimator  *salary.Estimator
	profiles   profile.Repo
	chat       llm.Provider
	logger     *zap.Logger
}

// NewHandlers wires the handler set. profiles and chat may be nil; the
// endpoints that need them degrade gracefully.
func NewHandlers(interviews *interview.Manager, estimator *salary.Estimator, profiles profile.Repo, chat llm.Provider, logger *zap.Logger) *Handlers {
	return &Handlers{
		interviews: interviews,
		estimator:  estimator,
		profiles:   profiles,
		chat:       chat,
		logger:     logger,
	}
}

// Routes builds the full API handler with middleware applied.
func (h *Handlers) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/interviews", h.startInterview)
	mux.HandleFunc("GET /api/v1/interviews/{id}", h.getInterview)
	mux.HandleFunc("POST /api/v1/interviews/{id}/answers", h.submitAnswer)
	mux.HandleFunc("POST /api/v1/interviews/{id}/skip", h.skipQuestion)
	mux.HandleFunc("POST /api/v1/interviews/{id}/end", h.endInterview)
	mux.HandleFunc("POST /api/v1/interviews/{id}/summary", h.summarizeInterview)

	mux.HandleFunc("POST /api/v1/salary/calculate", h.calculateSalary)

	mux.HandleFunc("POST /api/v1/real_time_feedback", h.realTimeFeedback)
	mux.HandleFunc("POST /api/v1/chat", h.chatMessage)

	mux.HandleFunc("POST /api/v1/users/{username}/insights/hexagon", h.hexagonInsights)
	mux.HandleFunc("GET /api/v1/users/{username}/stats", h.userStats)

	mux.HandleFunc("GET /healthz", h.healthz)

	return CORS(RequestLogger(h.logger)(mux))
}

func (h *Handlers) healthz(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
