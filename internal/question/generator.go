package question

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"prepdeck/internal/llm"
)

// Generator is a Source that asks the LLM to produce fresh questions for a
// domain, falling back to another Source on any failure. Generation failing
// is never fatal: the interview still starts from the fallback bank.
type Generator struct {
	provider llm.Provider
	fallback Source
	logger   *zap.Logger
	config   GeneratorConfig

	mu     sync.Mutex
	served map[string]struct{}
}

// GeneratorConfig bounds a generation call.
type GeneratorConfig struct {
	// BatchSize is how many questions to request per call.
	BatchSize int

	// MaxTokens bounds the LLM response.
	MaxTokens int

	// Temperature for generation; question variety wants some randomness.
	Temperature float64
}

// DefaultGeneratorConfig returns the generation defaults.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		BatchSize:   8,
		MaxTokens:   4096,
		Temperature: 0.7,
	}
}

// NewGenerator creates a generating Source. fallback must not be nil.
func NewGenerator(provider llm.Provider, fallback Source, cfg GeneratorConfig, logger *zap.Logger) *Generator {
	return &Generator{
		provider: provider,
		fallback: fallback,
		logger:   logger,
		config:   cfg,
		served:   make(map[string]struct{}),
	}
}

// questionBatchOutput is the raw LLM response before mapping.
type questionBatchOutput struct {
	Questions []struct {
		Prompt         string         `json:"prompt"`
		Category       string         `json:"category"`
		Difficulty     string         `json:"difficulty"`
		ExpectedPoints string         `json:"expected_points"`
		SkillImpact    map[string]int `json:"skill_impact"`
	} `json:"questions"`
}

// Fetch generates a batch of questions for the domain. On any generation or
// parsing failure it logs and serves the fallback source instead.
func (g *Generator) Fetch(ctx context.Context, domain string) ([]Question, error) {
	ctx = llm.WithPurpose(ctx, "question-gen")

	req := llm.Request{
		System: generatorSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildGeneratorMessage(domain, g.config.BatchSize)},
		},
		Schema:      BatchSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		g.logger.Warn("question generation failed, serving bank",
			zap.String("domain", domain), zap.Error(err))
		return g.fallback.Fetch(ctx, domain)
	}

	var raw questionBatchOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		g.logger.Warn("question generation returned unparseable batch, serving bank",
			zap.String("domain", domain), zap.Error(err))
		return g.fallback.Fetch(ctx, domain)
	}

	if len(raw.Questions) == 0 {
		return g.fallback.Fetch(ctx, domain)
	}

	out := make([]Question, 0, len(raw.Questions))
	g.mu.Lock()
	for _, q := range raw.Questions {
		// Models repeat themselves across batches; a prompt already served
		// in this process is dropped.
		key := normalizePrompt(q.Prompt)
		if key == "" {
			continue
		}
		if _, seen := g.served[key]; seen {
			continue
		}
		g.served[key] = struct{}{}

		out = append(out, Question{
			ID:             fmt.Sprintf("gen-%s", uuid.NewString()[:8]),
			Prompt:         q.Prompt,
			Category:       q.Category,
			Difficulty:     q.Difficulty,
			ExpectedPoints: q.ExpectedPoints,
			SkillImpact:    clampImpact(q.SkillImpact),
		})
	}
	g.mu.Unlock()

	if len(out) == 0 {
		return g.fallback.Fetch(ctx, domain)
	}
	return out, nil
}

// normalizePrompt folds case and whitespace so trivially restated prompts
// dedup together.
func normalizePrompt(prompt string) string {
	return strings.Join(strings.Fields(strings.ToLower(prompt)), " ")
}

// clampImpact bounds generated weights to the 1-10 range the aggregator
// expects; zero or negative weights are dropped.
func clampImpact(impact map[string]int) map[string]int {
	if len(impact) == 0 {
		return nil
	}
	out := make(map[string]int, len(impact))
	for skill, w := range impact {
		if w <= 0 {
			continue
		}
		if w > 10 {
			w = 10
		}
		out[skill] = w
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
