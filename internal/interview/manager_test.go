package interview

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"prepdeck/internal/assess"
	"prepdeck/internal/question"
	"prepdeck/internal/skills"
)

// stubSource serves a fixed pool.
type stubSource struct {
	questions []question.Question
	err       error
}

func (s *stubSource) Fetch(_ context.Context, _ string) ([]question.Question, error) {
	return s.questions, s.err
}

// stubOracle serves scripted assessments and can block to simulate slow
// scoring calls.
type stubOracle struct {
	mu      sync.Mutex
	next    *assess.Assessment
	err     error
	calls   int
	release chan struct{}
}

func (o *stubOracle) Assess(ctx context.Context, _ question.Question, _ string) (*assess.Assessment, error) {
	o.mu.Lock()
	o.calls++
	release := o.release
	a, err := o.next, o.err
	o.mu.Unlock()

	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	if a == nil {
		a = &assess.Assessment{Score: 70, Feedback: "solid"}
	}
	copied := *a
	return &copied, nil
}

func (o *stubOracle) callCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.calls
}

func testPool(n int) []question.Question {
	pool := make([]question.Question, 0, n)
	for i := range n {
		pool = append(pool, question.Question{
			ID:          string(rune('a' + i)),
			Prompt:      "question",
			Category:    "behavioral",
			SkillImpact: map[string]int{skills.Communication: 4},
		})
	}
	return pool
}

func testManager(t *testing.T, source question.Source, oracle assess.Oracle) *Manager {
	t.Helper()
	cfg := DefaultConfig()
	cfg.TickInterval = 10 * time.Millisecond
	m := NewManager(source, oracle, nil, cfg, rand.New(rand.NewSource(1)), zap.NewNop())
	t.Cleanup(m.Shutdown)
	return m
}

func startSession(t *testing.T, m *Manager, p StartParams) Snapshot {
	t.Helper()
	snap, err := m.Start(context.Background(), p)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	return snap
}

func TestStart_InitializesSession(t *testing.T) {
	m := testManager(t, &stubSource{questions: testPool(5)}, &stubOracle{})

	snap := startSession(t, m, StartParams{Domain: "general", Count: 3, PerQuestionSeconds: 120})

	if snap.State != StateInProgress {
		t.Errorf("state = %q, want in_progress", snap.State)
	}
	if snap.QuestionCount != 3 {
		t.Errorf("question count = %d, want 3", snap.QuestionCount)
	}
	if snap.Index != 0 || snap.Score != 0 {
		t.Errorf("fresh session has index %d score %d", snap.Index, snap.Score)
	}
	if snap.RemainingSeconds != 120 {
		t.Errorf("remaining = %d, want 120", snap.RemainingSeconds)
	}
	if snap.CurrentQuestion == nil {
		t.Fatal("no current question on a live session")
	}
}

func TestStart_OverAskingUsesAllAvailable(t *testing.T) {
	m := testManager(t, &stubSource{questions: testPool(2)}, &stubOracle{})

	snap := startSession(t, m, StartParams{Domain: "general", Count: 10})

	if snap.QuestionCount != 2 {
		t.Fatalf("question count = %d, want all 2 available", snap.QuestionCount)
	}
}

func TestStart_CompanyFilterShrinksPool(t *testing.T) {
	pool := testPool(2)
	pool = append(pool, question.Question{ID: "g1", Prompt: "q", Company: "google"})
	m := testManager(t, &stubSource{questions: pool}, &stubOracle{})

	snap := startSession(t, m, StartParams{Domain: "general", Count: 3})

	// No company requested: the google question is excluded.
	if snap.QuestionCount != 2 {
		t.Fatalf("question count = %d, want 2 after filtering", snap.QuestionCount)
	}
}

func TestStart_EmptyPoolFails(t *testing.T) {
	m := testManager(t, &stubSource{}, &stubOracle{})

	_, err := m.Start(context.Background(), StartParams{Domain: "general", Count: 3})
	if !errors.Is(err, ErrNoQuestions) {
		t.Fatalf("err = %v, want ErrNoQuestions", err)
	}
}

func TestStart_SourceErrorFails(t *testing.T) {
	m := testManager(t, &stubSource{err: errors.New("down")}, &stubOracle{})

	_, err := m.Start(context.Background(), StartParams{Domain: "general"})
	if !errors.Is(err, ErrNoQuestions) {
		t.Fatalf("err = %v, want ErrNoQuestions", err)
	}
}

func TestSubmit_AdvancesAndAccumulates(t *testing.T) {
	oracle := &stubOracle{next: &assess.Assessment{Score: 80, Feedback: "nice"}}
	m := testManager(t, &stubSource{questions: testPool(3)}, oracle)
	snap := startSession(t, m, StartParams{Domain: "general", Count: 3})

	res, err := m.Submit(context.Background(), snap.ID, "a considered answer")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if res.Record.Score != 80 || res.Record.Feedback != "nice" {
		t.Errorf("record = %+v", res.Record)
	}
	if res.Session.Index != 1 {
		t.Errorf("index = %d, want 1", res.Session.Index)
	}
	if res.Session.Score != 80 {
		t.Errorf("score = %d, want 80", res.Session.Score)
	}
	if res.Session.AnsweredCount != 1 {
		t.Errorf("answered = %d, want 1", res.Session.AnsweredCount)
	}
}

func TestSubmit_CompletesOnLastQuestion(t *testing.T) {
	m := testManager(t, &stubSource{questions: testPool(2)}, &stubOracle{})
	snap := startSession(t, m, StartParams{Domain: "general", Count: 2})
	ctx := context.Background()

	for i := range 2 {
		res, err := m.Submit(ctx, snap.ID, "answer")
		if err != nil {
			t.Fatalf("Submit %d: %v", i, err)
		}
		if res.Session.Index != i+1 {
			t.Fatalf("index after submit %d = %d", i, res.Session.Index)
		}
	}

	got, _ := m.Get(snap.ID)
	if got.State != StateComplete {
		t.Fatalf("state = %q, want complete", got.State)
	}
	if got.Index != got.QuestionCount {
		t.Fatalf("complete session has index %d of %d", got.Index, got.QuestionCount)
	}

	if _, err := m.Submit(ctx, snap.ID, "extra"); !errors.Is(err, ErrNotInProgress) {
		t.Fatalf("submit after complete: %v, want ErrNotInProgress", err)
	}
}

func TestSubmit_OracleFailureBecomesZeroScoreSkip(t *testing.T) {
	oracle := &stubOracle{err: errors.New("scoring backend down")}
	m := testManager(t, &stubSource{questions: testPool(2)}, oracle)
	snap := startSession(t, m, StartParams{Domain: "general", Count: 2})

	res, err := m.Submit(context.Background(), snap.ID, "my answer")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	if res.Record.Score != 0 {
		t.Errorf("score = %d, want 0", res.Record.Score)
	}
	if !res.Record.Skipped {
		t.Error("record not marked skipped")
	}
	if res.Record.Feedback == "" {
		t.Error("no fallback feedback set")
	}
	if res.Session.Index != 1 {
		t.Errorf("index = %d, want 1 (failure still advances)", res.Session.Index)
	}
}

func TestSkip_NoOracleCall(t *testing.T) {
	oracle := &stubOracle{}
	m := testManager(t, &stubSource{questions: testPool(2)}, oracle)
	snap := startSession(t, m, StartParams{Domain: "general", Count: 2})

	res, err := m.Skip(snap.ID)
	if err != nil {
		t.Fatalf("Skip: %v", err)
	}

	if res.Record.Score != 0 || !res.Record.Skipped {
		t.Errorf("record = %+v", res.Record)
	}
	if res.Session.Index != 1 {
		t.Errorf("index = %d, want 1", res.Session.Index)
	}
	if oracle.callCount() != 0 {
		t.Errorf("skip made %d oracle calls", oracle.callCount())
	}
}

func TestSubmit_RejectsConcurrentSubmission(t *testing.T) {
	oracle := &stubOracle{release: make(chan struct{})}
	m := testManager(t, &stubSource{questions: testPool(2)}, oracle)
	snap := startSession(t, m, StartParams{Domain: "general", Count: 2})
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := m.Submit(ctx, snap.ID, "slow answer")
		done <- err
	}()

	// Wait for the first submit to reach the oracle.
	waitFor(t, func() bool { return oracle.callCount() == 1 })

	if _, err := m.Submit(ctx, snap.ID, "second answer"); !errors.Is(err, ErrSubmissionInFlight) {
		t.Fatalf("second submit: %v, want ErrSubmissionInFlight", err)
	}

	close(oracle.release)
	if err := <-done; err != nil {
		t.Fatalf("first submit: %v", err)
	}
}

func TestSubmit_LateResultAfterEndIsDiscarded(t *testing.T) {
	oracle := &stubOracle{release: make(chan struct{})}
	m := testManager(t, &stubSource{questions: testPool(2)}, oracle)
	snap := startSession(t, m, StartParams{Domain: "general", Count: 2})
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := m.Submit(ctx, snap.ID, "slow answer")
		done <- err
	}()
	waitFor(t, func() bool { return oracle.callCount() == 1 })

	if _, err := m.End(snap.ID); err != nil {
		t.Fatalf("End: %v", err)
	}
	close(oracle.release)

	if err := <-done; !errors.Is(err, ErrSubmissionStale) {
		t.Fatalf("late submit: %v, want ErrSubmissionStale", err)
	}

	// The late result must not have left a record behind.
	summary, err := m.Finalize(ctx, snap.ID)
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if len(summary.Records) != 0 {
		t.Fatalf("discarded submission left %d records", len(summary.Records))
	}
}

func TestEnd_EarlyCompletion(t *testing.T) {
	m := testManager(t, &stubSource{questions: testPool(5)}, &stubOracle{next: &assess.Assessment{Score: 60, Feedback: "ok"}})
	snap := startSession(t, m, StartParams{Domain: "general", Count: 5})
	ctx := context.Background()

	for range 2 {
		if _, err := m.Submit(ctx, snap.ID, "answer"); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}

	got, err := m.End(snap.ID)
	if err != nil {
		t.Fatalf("End: %v", err)
	}
	if got.State != StateComplete {
		t.Fatalf("state = %q, want complete", got.State)
	}

	summary, err := m.Finalize(ctx, snap.ID)
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if summary.Answered != 2 || summary.TotalQuestions != 5 {
		t.Errorf("answered %d of %d, want 2 of 5", summary.Answered, summary.TotalQuestions)
	}
	if summary.AverageScore != 60 {
		t.Errorf("average = %v, want 60 over the 2 answered", summary.AverageScore)
	}
	if summary.Unanswered != 3 {
		t.Errorf("unanswered = %d, want 3", summary.Unanswered)
	}
}

func TestGet_UnknownSession(t *testing.T) {
	m := testManager(t, &stubSource{questions: testPool(1)}, &stubOracle{})

	if _, err := m.Get("nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestPruneIdle(t *testing.T) {
	m := testManager(t, &stubSource{questions: testPool(1)}, &stubOracle{})
	snap := startSession(t, m, StartParams{Domain: "general", Count: 1})

	if n := m.PruneIdle(time.Hour); n != 0 {
		t.Fatalf("fresh session pruned: %d", n)
	}
	if n := m.PruneIdle(0); n != 1 {
		t.Fatalf("pruned %d, want 1", n)
	}
	if _, err := m.Get(snap.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("pruned session still reachable: %v", err)
	}
}

// waitFor polls until cond holds or the deadline passes.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}
