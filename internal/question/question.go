package question

// Question is one interview prompt. Questions are immutable once fetched; a
// session owns its selected copies for its lifetime.
type Question struct {
	// ID identifies the question within its bank or generation batch.
	ID string `json:"id"`

	// Prompt is the text shown to the candidate.
	Prompt string `json:"prompt"`

	// Category is a free-form label ("behavioral", "system_design", ...).
	Category string `json:"category"`

	// Difficulty is a free-form label ("easy", "medium", "hard").
	Difficulty string `json:"difficulty"`

	// ExpectedPoints outlines what a strong answer covers. The fallback
	// evaluator compares answers against it when the LLM is unreachable.
	ExpectedPoints string `json:"expected_points,omitempty"`

	// Company marks company affinity. Empty means the question fits any
	// company.
	Company string `json:"company,omitempty"`

	// SkillImpact maps skill axis names to integer weights (1-10) used to
	// turn answer scores into skill vector deltas.
	SkillImpact map[string]int `json:"skill_impact,omitempty"`
}
