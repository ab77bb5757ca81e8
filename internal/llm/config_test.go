package llm

import "testing"

var llmEnvVars = []string{
	"PREPDECK_LLM_PROVIDER",
	"PREPDECK_OPENAI_API_KEY",
	"PREPDECK_OPENAI_MODEL",
	"PREPDECK_OPENAI_BASE_URL",
	"PREPDECK_ANTHROPIC_API_KEY",
	"PREPDECK_ANTHROPIC_MODEL",
	"PREPDECK_GEMINI_API_KEY",
	"PREPDECK_GEMINI_MODEL",
	"OPENAI_API_KEY",
	"ANTHROPIC_API_KEY",
	"GEMINI_API_KEY",
}

func clearLLMEnv(t *testing.T) {
	t.Helper()
	for _, v := range llmEnvVars {
		t.Setenv(v, "")
	}
}

func TestResolveConfig_ExplicitProviderWins(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("PREPDECK_LLM_PROVIDER", "anthropic")
	t.Setenv("PREPDECK_ANTHROPIC_API_KEY", "sk-ant-test")
	t.Setenv("PREPDECK_ANTHROPIC_MODEL", "claude-sonnet")
	t.Setenv("GEMINI_API_KEY", "should-be-ignored")

	cfg, found, err := ResolveConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatal("expected config to be found")
	}
	if cfg.Provider != "anthropic" {
		t.Fatalf("expected anthropic provider, got %q", cfg.Provider)
	}
	if cfg.Anthropic.APIKey != "sk-ant-test" {
		t.Fatalf("unexpected API key: %q", cfg.Anthropic.APIKey)
	}
	if cfg.Anthropic.Model != "claude-sonnet" {
		t.Fatalf("unexpected model: %q", cfg.Anthropic.Model)
	}
}

func TestResolveConfig_ExplicitProviderMissingKey(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("PREPDECK_LLM_PROVIDER", "openai")

	_, _, err := ResolveConfig()
	if err == nil {
		t.Fatal("expected a validation error for the missing key")
	}
}

func TestResolveConfig_PrefixedKeySelectsProvider(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("PREPDECK_OPENAI_API_KEY", "sk-test")

	cfg, found, err := ResolveConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatal("expected config to be found")
	}
	if cfg.Provider != "openai" {
		t.Fatalf("expected openai provider, got %q", cfg.Provider)
	}
	if cfg.OpenAI.Model != "gpt-4o-mini" {
		t.Fatalf("expected default model, got %q", cfg.OpenAI.Model)
	}
}

func TestResolveConfig_VendorFallbackKeepsModelOverride(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("GEMINI_API_KEY", "gm-test")
	t.Setenv("PREPDECK_GEMINI_MODEL", "gemini-pro")

	cfg, found, err := ResolveConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatal("expected config to be found")
	}
	if cfg.Provider != "gemini" {
		t.Fatalf("expected gemini provider, got %q", cfg.Provider)
	}
	if cfg.Gemini.APIKey != "gm-test" {
		t.Fatalf("unexpected API key: %q", cfg.Gemini.APIKey)
	}
	if cfg.Gemini.Model != "gemini-pro" {
		t.Fatalf("expected model override to survive, got %q", cfg.Gemini.Model)
	}
}

func TestResolveConfig_NothingConfigured(t *testing.T) {
	clearLLMEnv(t)

	_, found, err := ResolveConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Fatal("expected no config without credentials")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"openai with key", Config{Provider: "openai", OpenAI: OpenAIConfig{APIKey: "k"}}, false},
		{"openai without key", Config{Provider: "openai"}, true},
		{"anthropic without key", Config{Provider: "anthropic"}, true},
		{"gemini without key", Config{Provider: "gemini"}, true},
		{"mock needs no key", Config{Provider: "mock"}, false},
		{"unknown provider", Config{Provider: "bard"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr && err == nil {
				t.Fatal("expected an error")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
