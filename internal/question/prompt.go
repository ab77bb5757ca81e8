package question

import (
	"fmt"
	"strings"
)

const generatorSystemPrompt = `You are an experienced technical interviewer preparing practice questions.

Rules:
- Generate interview questions for the requested domain, mixing behavioral and technical styles.
- Each question must be self-contained and answerable in 2-3 minutes of speaking.
- expected_points lists the concrete things a strong answer covers, as a short outline.
- skill_impact assigns integer weights 1-10 to the skills the question exercises, chosen from: communication, problem_solving, technical_expertise, adaptability, critical_thinking, confidence. Include only relevant skills.
- Vary difficulty across the batch: some easy, some medium, some hard.
- Do not number the questions or address the candidate by name.`

// buildGeneratorMessage constructs the user message for a generation call.
func buildGeneratorMessage(domain string, batchSize int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Domain: %s\n", domain)
	fmt.Fprintf(&b, "Number of questions: %d\n", batchSize)
	return b.String()
}
