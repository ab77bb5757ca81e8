package assess

import (
	"context"
	"math"
	"strings"
	"unicode"

	"prepdeck/internal/question"
)

// SimilarityOracle is the local evaluator used when the model is down. It
// scores an answer by lexical overlap with the question's expected points.
// Crude, but it keeps interviews moving and still rewards on-topic answers
// over noise.
type SimilarityOracle struct{}

// NewSimilarityOracle returns the local evaluator.
func NewSimilarityOracle() *SimilarityOracle {
	return &SimilarityOracle{}
}

// Assess grades by overlap ratio: score is ratio scaled to 0-100, and the
// question's own skill weights are scaled by the score to form updates.
func (s *SimilarityOracle) Assess(_ context.Context, q question.Question, answer string) (*Assessment, error) {
	reference := q.ExpectedPoints
	if reference == "" {
		reference = q.Prompt
	}

	ratio := overlapRatio(answer, reference)
	score := clampScore(int(math.Round(ratio * 100)))

	a := &Assessment{
		Score:        score,
		Feedback:     fallbackFeedback(score),
		SkillUpdates: scaleImpact(q.SkillImpact, score),
		Fallback:     true,
	}
	applyShortAnswerCap(a, answer)
	return a, nil
}

func fallbackFeedback(score int) string {
	switch {
	case score >= 70:
		return "Your answer covers most of what an interviewer looks for here. Detailed feedback is unavailable right now, but the key points are present."
	case score >= 40:
		return "Your answer touches some of the expected ground but misses several key points. Compare it against what a complete answer to this question would cover."
	default:
		return "Your answer covers little of what this question is probing for. Revisit the question and think about what the interviewer actually wants to learn."
	}
}

// scaleImpact turns a question's skill weights into updates proportional to
// the score, each clamped to [1, 10] so an impacted axis always registers.
func scaleImpact(impact map[string]int, score int) map[string]float64 {
	if len(impact) == 0 {
		return nil
	}
	out := make(map[string]float64, len(impact))
	for axis, weight := range impact {
		delta := float64(weight) * float64(score) / 100
		if delta < 1 {
			delta = 1
		}
		if delta > 10 {
			delta = 10
		}
		out[axis] = delta
	}
	return out
}

// overlapRatio is the Dice coefficient over lowercased word sets: 1.0 for
// identical vocabulary, 0.0 for disjoint.
func overlapRatio(a, b string) float64 {
	wa := wordSet(a)
	wb := wordSet(b)
	if len(wa) == 0 || len(wb) == 0 {
		return 0
	}

	common := 0
	for w := range wa {
		if _, ok := wb[w]; ok {
			common++
		}
	}
	return 2 * float64(common) / float64(len(wa)+len(wb))
}

func wordSet(s string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, w := range strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	}) {
		out[w] = struct{}{}
	}
	return out
}
