package question

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"prepdeck/data"
)

// Bank is a Source backed by a JSON question file. The file holds either a
// map of domain name to question list, or a bare list treated as the
// "general" domain (both shapes exist in the wild).
type Bank struct {
	byDomain map[string][]Question
}

// DefaultDomain is where a bare question list lands.
const DefaultDomain = "general"

// NewBank parses the embedded default question bank.
func NewBank() (*Bank, error) {
	return parseBank(data.Questions)
}

// NewBankFromFile parses a question bank from disk, for deployments that
// override the embedded set.
func NewBankFromFile(path string) (*Bank, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read question bank %q: %w", path, err)
	}
	return parseBank(raw)
}

func parseBank(raw []byte) (*Bank, error) {
	byDomain := make(map[string][]Question)

	var asMap map[string][]Question
	if err := json.Unmarshal(raw, &asMap); err == nil {
		for domain, qs := range asMap {
			byDomain[normalizeDomain(domain)] = qs
		}
		return &Bank{byDomain: byDomain}, nil
	}

	var asList []Question
	if err := json.Unmarshal(raw, &asList); err != nil {
		return nil, fmt.Errorf("question bank is neither a domain map nor a list: %w", err)
	}
	byDomain[DefaultDomain] = asList

	return &Bank{byDomain: byDomain}, nil
}

// Fetch returns the questions for a domain, falling back to the general set
// when the domain is unknown. Returns a copy so callers cannot mutate the
// bank.
func (b *Bank) Fetch(_ context.Context, domain string) ([]Question, error) {
	qs, ok := b.byDomain[normalizeDomain(domain)]
	if !ok {
		qs = b.byDomain[DefaultDomain]
	}

	out := make([]Question, len(qs))
	copy(out, qs)
	return out, nil
}

// Domains lists the domains present in the bank.
func (b *Bank) Domains() []string {
	out := make([]string, 0, len(b.byDomain))
	for d := range b.byDomain {
		out = append(out, d)
	}
	return out
}

func normalizeDomain(domain string) string {
	domain = strings.ToLower(strings.TrimSpace(domain))
	if domain == "" {
		return DefaultDomain
	}
	return domain
}
