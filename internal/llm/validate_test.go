package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func assessmentSchema() *Schema {
	return &Schema{
		Name:        "test-assessment",
		Description: "A scored answer assessment",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"score":    map[string]any{"type": "integer", "minimum": 0, "maximum": 100},
				"feedback": map[string]any{"type": "string"},
				"verdict":  map[string]any{"type": "string", "enum": []any{"strong", "adequate", "weak"}},
			},
			"required": []any{"score", "feedback"},
		},
	}
}

func TestValidateResponse_Valid(t *testing.T) {
	raw := json.RawMessage(`{"score":85,"feedback":"Clear and specific.","verdict":"strong"}`)
	if err := validateResponse(assessmentSchema(), raw); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidateResponse_ValidWithoutOptional(t *testing.T) {
	raw := json.RawMessage(`{"score":40,"feedback":"Needs an example."}`)
	if err := validateResponse(assessmentSchema(), raw); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestValidateResponse_MissingRequired(t *testing.T) {
	raw := json.RawMessage(`{"feedback":"no score field"}`)
	err := validateResponse(assessmentSchema(), raw)
	if err == nil {
		t.Fatal("expected error for missing required field")
	}
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestValidateResponse_WrongType(t *testing.T) {
	raw := json.RawMessage(`{"score":"eighty","feedback":"x"}`)
	if err := validateResponse(assessmentSchema(), raw); err == nil {
		t.Fatal("expected error for wrong type")
	}
}

func TestValidateResponse_OutOfRange(t *testing.T) {
	raw := json.RawMessage(`{"score":150,"feedback":"x"}`)
	if err := validateResponse(assessmentSchema(), raw); err == nil {
		t.Fatal("expected error for score above maximum")
	}
}

func TestValidateResponse_MalformedJSON(t *testing.T) {
	raw := json.RawMessage(`{"score":`)
	err := validateResponse(assessmentSchema(), raw)
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}

func TestValidateResponse_NilSchema(t *testing.T) {
	raw := json.RawMessage(`not even json`)
	if err := validateResponse(nil, raw); err != nil {
		t.Fatalf("nil schema must not validate, got: %v", err)
	}
}

func TestCheckStructured_TruncatedReply(t *testing.T) {
	raw := json.RawMessage(`{"score":85,"fee`)
	err := checkStructured(assessmentSchema(), raw, "max_tokens")
	var maxTok *ErrMaxTokensExceeded
	if !errors.As(err, &maxTok) {
		t.Fatalf("expected ErrMaxTokensExceeded, got: %T", err)
	}
	if string(maxTok.Content) != string(raw) {
		t.Fatalf("expected truncated content preserved, got: %s", maxTok.Content)
	}
}

func TestCheckStructured_CompleteReply(t *testing.T) {
	good := json.RawMessage(`{"score":70,"feedback":"ok"}`)
	if err := checkStructured(assessmentSchema(), good, "end"); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}

	bad := json.RawMessage(`{"feedback":"ok"}`)
	err := checkStructured(assessmentSchema(), bad, "end")
	var invErr *ErrInvalidResponse
	if !errors.As(err, &invErr) {
		t.Fatalf("expected ErrInvalidResponse, got: %T", err)
	}
}
