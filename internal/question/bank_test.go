package question

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestBank_ParsesEmbeddedBank(t *testing.T) {
	bank, err := NewBank()
	if err != nil {
		t.Fatalf("NewBank: %v", err)
	}

	qs, err := bank.Fetch(context.Background(), "general")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(qs) == 0 {
		t.Fatal("embedded bank has no general questions")
	}
	for _, q := range qs {
		if q.ID == "" || q.Prompt == "" {
			t.Errorf("question missing id or prompt: %+v", q)
		}
	}
}

func TestBank_UnknownDomainFallsBackToGeneral(t *testing.T) {
	bank, err := NewBank()
	if err != nil {
		t.Fatalf("NewBank: %v", err)
	}

	general, _ := bank.Fetch(context.Background(), "general")
	unknown, err := bank.Fetch(context.Background(), "underwater-basket-weaving")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(unknown) != len(general) {
		t.Fatalf("expected fallback to general (%d questions), got %d", len(general), len(unknown))
	}
}

func TestBank_FetchReturnsCopies(t *testing.T) {
	bank, err := NewBank()
	if err != nil {
		t.Fatalf("NewBank: %v", err)
	}

	first, _ := bank.Fetch(context.Background(), "general")
	first[0].Prompt = "mutated"

	second, _ := bank.Fetch(context.Background(), "general")
	if second[0].Prompt == "mutated" {
		t.Fatal("Fetch leaked internal slice: mutation visible across calls")
	}
}

func TestBank_ParsesBareList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.json")
	raw := `[
		{"id": "q1", "prompt": "first", "category": "behavioral", "difficulty": "easy"},
		{"id": "q2", "prompt": "second", "category": "technical", "difficulty": "hard"}
	]`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	bank, err := NewBankFromFile(path)
	if err != nil {
		t.Fatalf("NewBankFromFile: %v", err)
	}

	qs, err := bank.Fetch(context.Background(), DefaultDomain)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("expected 2 questions under %q, got %d", DefaultDomain, len(qs))
	}
}

func TestBank_DomainNamesNormalized(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.json")
	raw := `{"  Software_Engineering  ": [{"id": "q1", "prompt": "p", "category": "c", "difficulty": "easy"}]}`
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	bank, err := NewBankFromFile(path)
	if err != nil {
		t.Fatalf("NewBankFromFile: %v", err)
	}

	qs, err := bank.Fetch(context.Background(), "SOFTWARE_ENGINEERING")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(qs) != 1 {
		t.Fatalf("expected 1 question after normalization, got %d", len(qs))
	}
}

func TestBank_RejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.json")
	if err := os.WriteFile(path, []byte(`"just a string"`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := NewBankFromFile(path); err == nil {
		t.Fatal("expected error for malformed bank file")
	}
}
