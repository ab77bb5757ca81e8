package interview

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"prepdeck/internal/assess"
	"prepdeck/internal/profile"
	"prepdeck/internal/question"
	"prepdeck/internal/skills"
)

// Config bounds session creation and the countdown.
type Config struct {
	// DefaultCount and DefaultSeconds apply when a start request leaves
	// them zero.
	DefaultCount   int
	DefaultSeconds int

	// MaxCount caps how many questions one session may request.
	MaxCount int

	// OracleTimeout bounds each scoring call.
	OracleTimeout time.Duration

	// TickInterval is the countdown granularity. One second in
	// production; tests shrink it.
	TickInterval time.Duration
}

// DefaultConfig returns the production settings.
func DefaultConfig() Config {
	return Config{
		DefaultCount:   5,
		DefaultSeconds: 120,
		MaxCount:       20,
		OracleTimeout:  30 * time.Second,
		TickInterval:   time.Second,
	}
}

// Manager owns every live session. All session mutation funnels through it:
// one mutex per session serializes state changes, the manager map has its
// own lock, and oracle calls happen outside both.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	source   question.Source
	oracle   assess.Oracle
	profiles profile.Repo
	logger   *zap.Logger
	config   Config

	rngMu sync.Mutex
	rng   *rand.Rand

	tickInterval time.Duration
	clock        func() time.Time
}

// NewManager wires the session manager. profiles may be nil for a
// profile-less deployment; rng may be nil for nondeterministic sampling.
func NewManager(source question.Source, oracle assess.Oracle, profiles profile.Repo, cfg Config, rng *rand.Rand, logger *zap.Logger) *Manager {
	if cfg.DefaultCount <= 0 {
		cfg.DefaultCount = 5
	}
	if cfg.DefaultSeconds <= 0 {
		cfg.DefaultSeconds = 120
	}
	if cfg.MaxCount <= 0 {
		cfg.MaxCount = 20
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = time.Second
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Manager{
		sessions:     make(map[string]*Session),
		source:       source,
		oracle:       oracle,
		profiles:     profiles,
		logger:       logger,
		config:       cfg,
		rng:          rng,
		tickInterval: cfg.TickInterval,
		clock:        time.Now,
	}
}

// StartParams describes one start request.
type StartParams struct {
	Username           string
	Domain             string
	Company            string
	Role               string
	Count              int
	PerQuestionSeconds int
}

// Start fetches and samples questions, registers a fresh session, and
// starts its first countdown. Fails with ErrNoQuestions when the filtered
// pool is empty, registering nothing.
func (m *Manager) Start(ctx context.Context, p StartParams) (Snapshot, error) {
	count := p.Count
	if count <= 0 {
		count = m.config.DefaultCount
	}
	if count > m.config.MaxCount {
		count = m.config.MaxCount
	}
	seconds := p.PerQuestionSeconds
	if seconds <= 0 {
		seconds = m.config.DefaultSeconds
	}

	pool, err := m.source.Fetch(ctx, p.Domain)
	if err != nil {
		m.logger.Warn("question fetch failed", zap.String("domain", p.Domain), zap.Error(err))
		return Snapshot{}, ErrNoQuestions
	}

	m.rngMu.Lock()
	selected := question.Select(pool, p.Company, count, m.rng)
	m.rngMu.Unlock()
	if len(selected) == 0 {
		return Snapshot{}, ErrNoQuestions
	}

	now := m.clock()
	s := &Session{
		id:                 uuid.NewString(),
		username:           p.Username,
		domain:             p.Domain,
		company:            p.Company,
		role:               p.Role,
		questions:          selected,
		perQuestionSeconds: seconds,
		remaining:          seconds,
		state:              StateInProgress,
		agg:                skills.NewAggregator(),
		startedAt:          now,
		questionStartedAt:  now,
		lastActivity:       now,
	}

	s.mu.Lock()
	m.startTimerLocked(s)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	m.mu.Lock()
	m.sessions[s.id] = s
	m.mu.Unlock()

	m.logger.Info("interview started",
		zap.String("session_id", s.id),
		zap.String("domain", p.Domain),
		zap.Int("questions", len(selected)))
	return snap, nil
}

// Get returns a snapshot of the session.
func (m *Manager) Get(id string) (Snapshot, error) {
	s, err := m.lookup(id)
	if err != nil {
		return Snapshot{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked(), nil
}

// SubmitResult pairs the graded record with the session state after it.
type SubmitResult struct {
	Record  AnswerRecord `json:"record"`
	Session Snapshot     `json:"session"`
}

// Submit grades the current question's answer and advances. The oracle call
// runs outside the session lock; a session that ended meanwhile discards
// the late result. A second submit while one is pending is rejected.
func (m *Manager) Submit(ctx context.Context, id, answer string) (SubmitResult, error) {
	s, err := m.lookup(id)
	if err != nil {
		return SubmitResult{}, err
	}

	s.mu.Lock()
	if s.state != StateInProgress {
		s.mu.Unlock()
		return SubmitResult{}, ErrNotInProgress
	}
	if s.submitting {
		s.mu.Unlock()
		return SubmitResult{}, ErrSubmissionInFlight
	}
	s.submitting = true
	// Stop the countdown before the oracle goes out so a timeout cannot
	// race this submission for the same index.
	s.stopTimerLocked()
	q := s.currentQuestionLocked()
	generation := s.generation
	s.mu.Unlock()

	octx, cancel := context.WithTimeout(ctx, m.config.OracleTimeout)
	a, aerr := m.oracle.Assess(octx, q, answer)
	cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false

	if s.generation != generation || s.state != StateInProgress {
		return SubmitResult{}, ErrSubmissionStale
	}

	if aerr != nil {
		// Scoring failure degrades to a zero-score skip; the interview
		// keeps moving.
		m.logger.Warn("scoring failed, recording skip",
			zap.String("session_id", s.id), zap.Error(aerr))
		a = nil
	}
	record := s.applyAnswerLocked(q, answer, a, scoringUnavailableFeedback)
	m.advanceLocked(s)

	return SubmitResult{Record: record, Session: s.snapshotLocked()}, nil
}

// Skip records a zero-score skip for the current question and advances. No
// oracle call is made.
func (m *Manager) Skip(id string) (SubmitResult, error) {
	s, err := m.lookup(id)
	if err != nil {
		return SubmitResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateInProgress {
		return SubmitResult{}, ErrNotInProgress
	}
	if s.submitting {
		return SubmitResult{}, ErrSubmissionInFlight
	}

	s.stopTimerLocked()
	record := s.applyAnswerLocked(s.currentQuestionLocked(), "", nil, skippedFeedback)
	m.advanceLocked(s)

	return SubmitResult{Record: record, Session: s.snapshotLocked()}, nil
}

// End completes the session now. Remaining questions stay unanswered; they
// count toward the total but not toward averages.
func (m *Manager) End(id string) (Snapshot, error) {
	s, err := m.lookup(id)
	if err != nil {
		return Snapshot{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateInProgress {
		s.stopTimerLocked()
		s.state = StateComplete
		s.generation++
		s.lastActivity = m.clock()
	}
	return s.snapshotLocked(), nil
}

const (
	skippedFeedback            = "Question skipped."
	scoringUnavailableFeedback = "Your answer could not be scored. It was recorded without a score."
)

// applyAnswerLocked appends the answer record and accumulates score and
// skill deltas. A nil assessment is the zero-score path: skips, timeouts,
// and scoring failures all land here with their own feedback line. Callers
// hold s.mu.
func (s *Session) applyAnswerLocked(q question.Question, answer string, a *assess.Assessment, fallbackFeedback string) AnswerRecord {
	record := AnswerRecord{
		QuestionID: q.ID,
		Prompt:     q.Prompt,
		Category:   q.Category,
		Answer:     answer,
		Skipped:    a == nil,
		Feedback:   fallbackFeedback,
	}
	if !s.questionStartedAt.IsZero() {
		record.Elapsed = time.Since(s.questionStartedAt)
	}

	if a != nil {
		record.Score = clampScore(a.Score)
		if a.Feedback != "" {
			record.Feedback = a.Feedback
		}
		record.Strengths = a.Strengths
		record.Improvements = a.Improvements

		s.score += record.Score
		if len(a.SkillUpdates) > 0 {
			s.agg.RecordUpdates(a.SkillUpdates)
		} else {
			s.agg.Record(q.SkillImpact, record.Score)
		}
	}

	s.records = append(s.records, record)
	return record
}

// advanceLocked moves to the next question or completes the session.
// Callers hold s.mu.
func (m *Manager) advanceLocked(s *Session) {
	s.index++
	s.generation++
	s.lastActivity = m.clock()

	if s.index >= len(s.questions) {
		s.state = StateComplete
		s.stopTimerLocked()
		m.logger.Info("interview complete",
			zap.String("session_id", s.id),
			zap.Int("score", s.score))
		return
	}

	s.remaining = s.perQuestionSeconds
	s.questionStartedAt = m.clock()
	m.startTimerLocked(s)
}

// PruneIdle drops sessions idle longer than maxIdle, stopping their timers.
// Returns how many were removed.
func (m *Manager) PruneIdle(maxIdle time.Duration) int {
	cutoff := m.clock().Add(-maxIdle)

	m.mu.Lock()
	defer m.mu.Unlock()

	pruned := 0
	for id, s := range m.sessions {
		s.mu.Lock()
		idle := s.lastActivity.Before(cutoff)
		if idle {
			s.stopTimerLocked()
			s.state = StateComplete
			s.generation++
		}
		s.mu.Unlock()

		if idle {
			delete(m.sessions, id)
			pruned++
		}
	}
	return pruned
}

// RunJanitor prunes idle sessions until ctx is cancelled.
func (m *Manager) RunJanitor(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.PruneIdle(maxIdle); n > 0 {
				m.logger.Debug("pruned idle sessions", zap.Int("count", n))
			}
		}
	}
}

// Shutdown stops every active timer.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.sessions {
		s.mu.Lock()
		s.stopTimerLocked()
		s.mu.Unlock()
	}
}

func (m *Manager) lookup(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
