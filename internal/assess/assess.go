// Package assess scores interview answers. The primary path asks an LLM to
// grade the answer against the question; when the model is unreachable a
// local similarity fallback grades against the question's expected points
// so an interview never stalls on a provider outage.
package assess

import (
	"context"

	"prepdeck/internal/question"
)

// Assessment is the graded result for one answer.
type Assessment struct {
	// Score is the overall answer quality, 0-100.
	Score int `json:"score"`

	// Feedback is a short paragraph addressed to the candidate.
	Feedback string `json:"feedback"`

	// Strengths lists what the answer did well.
	Strengths []string `json:"strengths,omitempty"`

	// Improvements lists what to work on.
	Improvements []string `json:"improvements,omitempty"`

	// SkillUpdates maps skill axes to deltas in the 0-10 range.
	SkillUpdates map[string]float64 `json:"skill_updates,omitempty"`

	// Fallback marks assessments produced by the local evaluator rather
	// than the model.
	Fallback bool `json:"fallback,omitempty"`
}

// Oracle grades one answer to one question.
type Oracle interface {
	Assess(ctx context.Context, q question.Question, answer string) (*Assessment, error)
}

// shortAnswerRunes is the length under which an answer is treated as a
// non-answer: score capped and skill updates halved.
const shortAnswerRunes = 10

// shortAnswerMaxScore caps the score of a too-short answer.
const shortAnswerMaxScore = 30

// applyShortAnswerCap penalizes answers too short to grade meaningfully.
func applyShortAnswerCap(a *Assessment, answer string) {
	if len([]rune(answer)) >= shortAnswerRunes {
		return
	}
	if a.Score > shortAnswerMaxScore {
		a.Score = shortAnswerMaxScore
	}
	for axis, delta := range a.SkillUpdates {
		a.SkillUpdates[axis] = delta / 2
	}
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
