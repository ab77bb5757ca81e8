package question

import (
	"math/rand"
	"strings"
)

// Select filters the pool by company affinity and samples up to count
// questions without replacement. When fewer questions survive the filter
// than requested, all of them are returned — over-asking is never an error.
// The rand source is injected so tests can fix the ordering.
func Select(pool []Question, company string, count int, rng *rand.Rand) []Question {
	filtered := filterByCompany(pool, company)
	if count <= 0 || len(filtered) == 0 {
		return nil
	}

	if count >= len(filtered) {
		shuffle(filtered, rng)
		return filtered
	}

	shuffle(filtered, rng)
	return filtered[:count]
}

// filterByCompany keeps questions with no affinity plus those matching the
// requested company. With no company requested, company-specific questions
// are excluded.
func filterByCompany(pool []Question, company string) []Question {
	company = strings.ToLower(strings.TrimSpace(company))

	var out []Question
	for _, q := range pool {
		affinity := strings.ToLower(strings.TrimSpace(q.Company))
		if affinity == "" || affinity == company {
			out = append(out, q)
		}
	}
	return out
}

func shuffle(qs []Question, rng *rand.Rand) {
	if rng == nil {
		return
	}
	rng.Shuffle(len(qs), func(i, j int) {
		qs[i], qs[j] = qs[j], qs[i]
	})
}
