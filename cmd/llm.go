package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"prepdeck/internal/llm"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the LLM provider configuration",
}

var llmCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the configured provider answers a trivial request",
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := newLogger()
		if err != nil {
			return err
		}
		defer log.Sync()

		cfg, found, err := llm.ResolveConfig()
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("no LLM credentials found in the environment")
		}

		provider, err := llm.NewProvider(cmd.Context(), cfg, log)
		if err != nil {
			return fmt.Errorf("create provider: %w", err)
		}

		resp, err := provider.Generate(cmd.Context(), llm.Request{
			Messages:  []llm.Message{{Role: llm.RoleUser, Content: "Reply with the single word: ok"}},
			MaxTokens: 16,
		})
		if err != nil {
			return fmt.Errorf("provider check failed: %w", err)
		}

		fmt.Printf("provider: %s\nmodel:    %s\nreply:    %s\ntokens:   %d in / %d out\n",
			cfg.Provider, resp.Model, string(resp.Content),
			resp.Usage.InputTokens, resp.Usage.OutputTokens)
		return nil
	},
}

var llmConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the resolved provider configuration (keys redacted)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, found, err := llm.ResolveConfig()
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("no LLM credentials found in the environment")
		}

		redacted := cfg
		redacted.OpenAI.APIKey = redact(cfg.OpenAI.APIKey)
		redacted.Anthropic.APIKey = redact(cfg.Anthropic.APIKey)
		redacted.Gemini.APIKey = redact(cfg.Gemini.APIKey)

		out, err := json.MarshalIndent(redacted, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func redact(key string) string {
	if len(key) <= 8 {
		if key == "" {
			return ""
		}
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

func init() {
	llmCmd.AddCommand(llmCheckCmd)
	llmCmd.AddCommand(llmConfigCmd)
}
