package server

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"prepdeck/internal/llm"
)

type realTimeFeedbackRequest struct {
	Answer string `json:"answer"`
}

// realTimeFeedback gives coarse while-you-type encouragement from answer
// length alone. No model call; this fires on every keystroke pause.
func (h *Handlers) realTimeFeedback(w http.ResponseWriter, r *http.Request) {
	var req realTimeFeedbackRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var feedback string
	switch n := len(req.Answer); {
	case n < 10:
		feedback = "Keep going! Try to elaborate on your point."
	case n < 50:
		feedback = "Good start! Think about adding a specific example to support your answer."
	default:
		feedback = "That's a very comprehensive answer. You are on the right track!"
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"feedback": feedback})
}

type chatRequest struct {
	Message string `json:"message"`
	Context string `json:"context,omitempty"`
}

type chatResponse struct {
	Response           string   `json:"response"`
	SuggestedQuestions []string `json:"suggested_questions,omitempty"`
}

const chatSystemPrompt = `You are a friendly interview coach inside an interview practice app. Answer briefly and practically. When the user asks about interview preparation, give concrete advice they can apply in their next practice session.`

const chatFallbackResponse = "The coach is unavailable right now. Try starting a practice interview; detailed feedback works offline."

var chatSuggestions = []string{
	"How should I structure answers to behavioral questions?",
	"What do interviewers look for in a system design answer?",
}

// chatMessage proxies a free-text exchange to the model. Without a
// provider, or on any model failure, a canned response keeps the endpoint
// functional.
func (h *Handlers) chatMessage(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		h.writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	if h.chat == nil {
		h.writeJSON(w, http.StatusOK, chatResponse{
			Response:           chatFallbackResponse,
			SuggestedQuestions: chatSuggestions,
		})
		return
	}

	ctx := llm.WithPurpose(r.Context(), "chat")
	messages := []llm.Message{}
	if req.Context != "" {
		messages = append(messages, llm.Message{Role: llm.RoleUser, Content: "Context: " + req.Context})
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: req.Message})

	resp, err := h.chat.Generate(ctx, llm.Request{
		System:      chatSystemPrompt,
		Messages:    messages,
		MaxTokens:   512,
		Temperature: 0.6,
	})
	if err != nil {
		h.logger.Warn("chat model failed", zap.Error(err))
		h.writeJSON(w, http.StatusOK, chatResponse{
			Response:           chatFallbackResponse,
			SuggestedQuestions: chatSuggestions,
		})
		return
	}

	h.writeJSON(w, http.StatusOK, chatResponse{Response: string(resp.Content)})
}
