package llm

import (
	"context"
	"encoding/json"
)

// Provider is the single abstraction the rest of the service uses to talk to
// a language model. Callers describe what they want in a Request; when a
// Schema is attached the provider returns JSON validated against it.
type Provider interface {
	// Generate sends the request and returns the model's output. With a
	// Schema set, Content holds schema-conforming JSON; without one it is
	// the raw text.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID reports the configured model identifier.
	ModelID() string
}

// Request describes a single generation call.
type Request struct {
	// System establishes the model's role (interviewer, assessor, career
	// coach) and its output constraints.
	System string

	// Messages is the conversation. Most calls here are single-turn; the
	// chat endpoint passes full history.
	Messages []Message

	// Schema, when set, activates the provider's structured output mode
	// and post-validates the response against the definition.
	Schema *Schema

	// MaxTokens bounds the response length.
	MaxTokens int

	// Temperature in [0,1]; zero means deterministic.
	Temperature float64
}

// Message is one turn of conversation.
type Message struct {
	Role    Role
	Content string
}

// Role identifies the message sender.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema names a JSON Schema the response must satisfy.
type Schema struct {
	// Name is kebab-case and doubles as the schema/tool name sent to the
	// provider, e.g. "answer-assessment".
	Name string

	// Description tells the model what the structure represents.
	Description string

	// Definition is the JSON Schema as a plain map.
	Definition map[string]any
}

// Response is the model's output plus accounting.
type Response struct {
	// Content is validated JSON when the request carried a Schema,
	// otherwise the raw text.
	Content json.RawMessage

	// Usage reports token consumption.
	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end", "max_tokens" or "error".
	StopReason string
}

// Usage tracks tokens for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
