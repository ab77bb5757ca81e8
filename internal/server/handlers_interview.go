package server

import (
	"net/http"
	"strings"

	"prepdeck/internal/interview"
)

type startInterviewRequest struct {
	Username           string `json:"username"`
	Domain             string `json:"domain"`
	Company            string `json:"company"`
	Role               string `json:"role"`
	Count              int    `json:"count"`
	SecondsPerQuestion int    `json:"seconds_per_question"`
}

func (h *Handlers) startInterview(w http.ResponseWriter, r *http.Request) {
	var req startInterviewRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Domain) == "" {
		req.Domain = "general"
	}

	snap, err := h.interviews.Start(r.Context(), interview.StartParams{
		Username:           req.Username,
		Domain:             req.Domain,
		Company:            req.Company,
		Role:               req.Role,
		Count:              req.Count,
		PerQuestionSeconds: req.SecondsPerQuestion,
	})
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, snap)
}

func (h *Handlers) getInterview(w http.ResponseWriter, r *http.Request) {
	snap, err := h.interviews.Get(r.PathValue("id"))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, snap)
}

type submitAnswerRequest struct {
	Answer string `json:"answer"`
}

func (h *Handlers) submitAnswer(w http.ResponseWriter, r *http.Request) {
	var req submitAnswerRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.interviews.Submit(r.Context(), r.PathValue("id"), req.Answer)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, res)
}

func (h *Handlers) skipQuestion(w http.ResponseWriter, r *http.Request) {
	res, err := h.interviews.Skip(r.PathValue("id"))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, res)
}

func (h *Handlers) endInterview(w http.ResponseWriter, r *http.Request) {
	snap, err := h.interviews.End(r.PathValue("id"))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, snap)
}

func (h *Handlers) summarizeInterview(w http.ResponseWriter, r *http.Request) {
	summary, err := h.interviews.Finalize(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, summary)
}
