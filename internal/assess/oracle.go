package assess

import (
	"context"

	"go.uber.org/zap"

	"prepdeck/internal/llm"
	"prepdeck/internal/question"
)

// LLMOracle grades answers with a model, falling over to a local evaluator
// when the model fails. It never returns an error from a model outage; only
// a broken fallback can fail an assessment.
type LLMOracle struct {
	provider llm.Provider
	fallback Oracle
	logger   *zap.Logger
	config   OracleConfig
}

// OracleConfig bounds a grading call.
type OracleConfig struct {
	MaxTokens   int
	Temperature float64
}

// DefaultOracleConfig returns the grading defaults. Temperature stays low:
// grading wants consistency, not creativity.
func DefaultOracleConfig() OracleConfig {
	return OracleConfig{
		MaxTokens:   1024,
		Temperature: 0.2,
	}
}

// NewLLMOracle creates the model-backed oracle. fallback must not be nil.
func NewLLMOracle(provider llm.Provider, fallback Oracle, cfg OracleConfig, logger *zap.Logger) *LLMOracle {
	return &LLMOracle{
		provider: provider,
		fallback: fallback,
		logger:   logger,
		config:   cfg,
	}
}

// Assess grades the answer. Empty answers short-circuit to a zero score
// without spending a model call.
func (o *LLMOracle) Assess(ctx context.Context, q question.Question, answer string) (*Assessment, error) {
	if answer == "" {
		return &Assessment{
			Score:    0,
			Feedback: "No answer was given. Even a partial attempt shows more than silence.",
		}, nil
	}

	ctx = llm.WithPurpose(ctx, "assessment")

	req := llm.Request{
		System: oracleSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildOracleMessage(q, answer)},
		},
		Schema:      Schema,
		MaxTokens:   o.config.MaxTokens,
		Temperature: o.config.Temperature,
	}

	resp, err := o.provider.Generate(ctx, req)
	if err != nil {
		o.logger.Warn("assessment oracle failed, using local evaluator",
			zap.String("question_id", q.ID), zap.Error(err))
		return o.fallback.Assess(ctx, q, answer)
	}

	a, err := decodeAssessment(resp.Content)
	if err != nil {
		o.logger.Warn("assessment response undecodable, using local evaluator",
			zap.String("question_id", q.ID), zap.Error(err))
		return o.fallback.Assess(ctx, q, answer)
	}

	applyShortAnswerCap(a, answer)
	return a, nil
}
