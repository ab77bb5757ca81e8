package assess

import (
	"fmt"
	"strings"

	"prepdeck/internal/question"
	"prepdeck/internal/skills"
)

var oracleSystemPrompt = `You are an experienced interviewer grading a candidate's answer in a mock interview.

Grade what the candidate actually said, not what they might have meant. Be fair but honest: a vague answer scores low even when it is polite, and a strong answer scores high even when it is blunt.

Scoring guide:
- 0-30: off-topic, empty, or a non-answer
- 31-55: touches the topic but shallow or mostly incorrect
- 56-75: solid answer with gaps
- 76-90: strong, well-structured answer
- 91-100: exceptional; complete, specific, and insightful

skill_updates assigns each relevant skill axis a delta from 0 (no evidence) to 10 (outstanding evidence). Only use these axes: ` + axisList + `.

Feedback is addressed to the candidate in second person, two or three sentences, concrete.`

var axisList = strings.Join(skills.Axes, ", ")

// buildOracleMessage renders one question/answer pair for grading.
func buildOracleMessage(q question.Question, answer string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Question (%s, %s): %s\n", q.Category, q.Difficulty, q.Prompt)
	if q.ExpectedPoints != "" {
		fmt.Fprintf(&b, "A strong answer covers: %s\n", q.ExpectedPoints)
	}
	fmt.Fprintf(&b, "\nCandidate's answer:\n%s", answer)
	return b.String()
}
