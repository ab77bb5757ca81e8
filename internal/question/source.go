package question

import "context"

// Source supplies candidate questions for a domain. An empty result is a
// normal outcome, not an error; the caller decides whether it can proceed.
type Source interface {
	Fetch(ctx context.Context, domain string) ([]Question, error)
}
