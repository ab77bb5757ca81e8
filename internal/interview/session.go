// Package interview runs the interview session lifecycle: question
// selection, answer scoring, per-question countdowns, and the final
// summary that feeds the user's profile.
package interview

import (
	"sync"
	"time"

	"prepdeck/internal/question"
	"prepdeck/internal/skills"
)

// State is a session's lifecycle phase.
type State string

const (
	StateNotStarted State = "not_started"
	StateInProgress State = "in_progress"
	StateComplete   State = "complete"
)

// AnswerRecord is one graded (or skipped) question. Appended exactly once
// per question, in question order, and immutable afterwards.
type AnswerRecord struct {
	QuestionID   string        `json:"question_id"`
	Prompt       string        `json:"prompt"`
	Category     string        `json:"category"`
	Answer       string        `json:"answer"`
	Score        int           `json:"score"`
	Feedback     string        `json:"feedback"`
	Strengths    []string      `json:"strengths,omitempty"`
	Improvements []string      `json:"improvements,omitempty"`
	Skipped      bool          `json:"skipped"`
	Elapsed      time.Duration `json:"elapsed"`
}

// Session is one interview run. All fields are guarded by mu; the Manager
// is the only writer.
type Session struct {
	mu sync.Mutex

	id       string
	username string
	domain   string
	company  string
	role     string

	questions          []question.Question
	perQuestionSeconds int
	remaining          int

	index   int
	state   State
	score   int
	records []AnswerRecord

	agg *skills.Aggregator

	// submitting serializes answer submissions; a second submit while one
	// is pending is rejected, not queued.
	submitting bool

	// generation bumps on every advance and on end. An oracle reply or
	// timer fire carrying an older generation is stale and discarded.
	generation uint64

	timer *questionTimer

	finalized bool
	summary   *Summary

	startedAt         time.Time
	questionStartedAt time.Time
	lastActivity      time.Time
}

// QuestionView is the client-facing shape of the current question. The
// expected-points hint stays server-side; leaking it would let candidates
// game the grading.
type QuestionView struct {
	ID         string `json:"id"`
	Prompt     string `json:"prompt"`
	Category   string `json:"category"`
	Difficulty string `json:"difficulty"`
}

// Snapshot is a point-in-time view of a session, safe to hand out.
type Snapshot struct {
	ID               string        `json:"id"`
	State            State         `json:"state"`
	Username         string        `json:"username,omitempty"`
	Domain           string        `json:"domain"`
	Company          string        `json:"company,omitempty"`
	Role             string        `json:"role,omitempty"`
	QuestionCount    int           `json:"question_count"`
	Index            int           `json:"index"`
	Score            int           `json:"score"`
	AnsweredCount    int           `json:"answered_count"`
	RemainingSeconds int           `json:"remaining_seconds"`
	CurrentQuestion  *QuestionView `json:"current_question,omitempty"`
}

// snapshotLocked builds a Snapshot; callers hold s.mu.
func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		ID:               s.id,
		State:            s.state,
		Username:         s.username,
		Domain:           s.domain,
		Company:          s.company,
		Role:             s.role,
		QuestionCount:    len(s.questions),
		Index:            s.index,
		Score:            s.score,
		AnsweredCount:    s.answeredLocked(),
		RemainingSeconds: s.remaining,
	}
	if s.state == StateInProgress && s.index < len(s.questions) {
		q := s.questions[s.index]
		snap.CurrentQuestion = &QuestionView{
			ID:         q.ID,
			Prompt:     q.Prompt,
			Category:   q.Category,
			Difficulty: q.Difficulty,
		}
	}
	return snap
}

// answeredLocked counts records with a non-empty answer.
func (s *Session) answeredLocked() int {
	n := 0
	for _, r := range s.records {
		if r.Answer != "" {
			n++
		}
	}
	return n
}

// currentQuestionLocked returns the question at the index; callers must
// have verified the session is in progress.
func (s *Session) currentQuestionLocked() question.Question {
	return s.questions[s.index]
}
