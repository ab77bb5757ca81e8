package interview

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"go.uber.org/zap"

	"prepdeck/internal/profile"
	"prepdeck/internal/skills"
)

// Summary is the final report of a completed session.
type Summary struct {
	SessionID string `json:"session_id"`
	Username  string `json:"username,omitempty"`
	Domain    string `json:"domain"`
	Company   string `json:"company,omitempty"`
	Role      string `json:"role,omitempty"`

	TotalQuestions int `json:"total_questions"`
	Answered       int `json:"answered"`
	Skipped        int `json:"skipped"`
	Unanswered     int `json:"unanswered"`

	TotalScore int `json:"total_score"`

	// AverageScore is computed over answered questions only; zero when
	// nothing was answered.
	AverageScore float64 `json:"average_score"`

	// SkillDeltas is this session's rounded contribution per axis.
	SkillDeltas map[string]int `json:"skill_deltas,omitempty"`

	// Skills is the profile vector after applying the deltas; present
	// only when a profile store is wired.
	Skills skills.Vector `json:"skills,omitempty"`

	DurationSeconds int            `json:"duration_seconds"`
	Records         []AnswerRecord `json:"records"`
}

// Finalize builds the session summary and, when a profile store is wired,
// applies the skill deltas and counters to the user's profile. Calling it
// again returns the same summary without re-applying anything.
func (m *Manager) Finalize(ctx context.Context, id string) (*Summary, error) {
	s, err := m.lookup(id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.state != StateComplete {
		s.mu.Unlock()
		return nil, ErrNotComplete
	}
	if s.finalized {
		summary := s.summary
		s.mu.Unlock()
		return summary, nil
	}

	summary := s.buildSummaryLocked(m.clock())
	s.finalized = true
	s.summary = summary
	s.mu.Unlock()

	if m.profiles != nil && s.username != "" {
		updated, err := m.applyToProfile(ctx, s, summary)
		if err != nil {
			// The summary stands even when the profile write fails;
			// interview results are never lost to a storage hiccup.
			m.logger.Error("profile update failed",
				zap.String("session_id", s.id),
				zap.String("username", s.username),
				zap.Error(err))
		} else {
			s.mu.Lock()
			summary.Skills = updated.Skills
			s.mu.Unlock()
		}
	}

	return summary, nil
}

// buildSummaryLocked computes the report; callers hold s.mu.
func (s *Session) buildSummaryLocked(now time.Time) *Summary {
	answered := s.answeredLocked()

	summary := &Summary{
		SessionID:      s.id,
		Username:       s.username,
		Domain:         s.domain,
		Company:        s.company,
		Role:           s.role,
		TotalQuestions: len(s.questions),
		Answered:       answered,
		Skipped:        len(s.records) - answered,
		Unanswered:     len(s.questions) - len(s.records),
		TotalScore:     s.score,
		SkillDeltas:    s.agg.Deltas(),
		Records:        s.records,
	}

	if answered > 0 {
		total := 0
		for _, r := range s.records {
			if r.Answer != "" {
				total += r.Score
			}
		}
		summary.AverageScore = math.Round(float64(total)/float64(answered)*100) / 100
	}

	if !s.startedAt.IsZero() {
		summary.DurationSeconds = int(now.Sub(s.startedAt).Seconds())
	}
	return summary
}

// applyToProfile writes this session's outcome to the user's profile.
func (m *Manager) applyToProfile(ctx context.Context, s *Session, summary *Summary) (*profile.Profile, error) {
	raw, err := json.Marshal(summary)
	if err != nil {
		return nil, err
	}

	categories := make(map[string]profile.CategoryResult)
	for _, r := range summary.Records {
		if r.Answer == "" {
			continue
		}
		c := categories[r.Category]
		c.Answered++
		c.Score += r.Score
		categories[r.Category] = c
	}

	return m.profiles.ApplyFinalize(ctx, s.username, profile.FinalizeUpdate{
		SessionID:       summary.SessionID,
		TotalScore:      summary.TotalScore,
		Answered:        summary.Answered,
		SkillDeltas:     summary.SkillDeltas,
		CategoryResults: categories,
		Summary:         raw,
	})
}
