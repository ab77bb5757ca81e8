package interview

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"testing"
	"time"

	"go.uber.org/zap"

	"prepdeck/internal/assess"
	"prepdeck/internal/profile"
	"prepdeck/internal/question"
	"prepdeck/internal/skills"
)

// fakeRepo records profile writes.
type fakeRepo struct {
	profiles map[string]*profile.Profile
	applied  []profile.FinalizeUpdate
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{profiles: make(map[string]*profile.Profile)}
}

func (f *fakeRepo) GetOrCreate(_ context.Context, username string) (*profile.Profile, error) {
	p, ok := f.profiles[username]
	if !ok {
		p = &profile.Profile{Username: username, Skills: skills.NewVector(rand.New(rand.NewSource(1)))}
		f.profiles[username] = p
	}
	return p, nil
}

func (f *fakeRepo) ApplyFinalize(ctx context.Context, username string, update profile.FinalizeUpdate) (*profile.Profile, error) {
	p, _ := f.GetOrCreate(ctx, username)
	for axis, delta := range update.SkillDeltas {
		p.Skills.Apply(axis, delta)
	}
	p.TotalPoints += update.TotalScore
	p.QuestionsAnswered += update.Answered
	p.InterviewsTaken++
	f.applied = append(f.applied, update)
	return p, nil
}

func (f *fakeRepo) CategoryStats(context.Context, string) ([]profile.CategoryStat, error) {
	return nil, nil
}

func (f *fakeRepo) History(context.Context, string, int) ([]profile.HistoryEntry, error) {
	return nil, nil
}

func managerWithProfiles(t *testing.T, oracle assess.Oracle, repo profile.Repo) *Manager {
	t.Helper()
	cfg := DefaultConfig()
	cfg.TickInterval = 10 * time.Millisecond
	m := NewManager(&stubSource{questions: testPool(3)}, oracle, repo, cfg, rand.New(rand.NewSource(1)), zap.NewNop())
	t.Cleanup(m.Shutdown)
	return m
}

func TestFinalize_RequiresComplete(t *testing.T) {
	m := testManager(t, &stubSource{questions: testPool(2)}, &stubOracle{})
	snap := startSession(t, m, StartParams{Domain: "general", Count: 2})

	if _, err := m.Finalize(context.Background(), snap.ID); !errors.Is(err, ErrNotComplete) {
		t.Fatalf("err = %v, want ErrNotComplete", err)
	}
}

func TestFinalize_ZeroAnsweredNoDivideByZero(t *testing.T) {
	m := testManager(t, &stubSource{questions: testPool(3)}, &stubOracle{})
	snap := startSession(t, m, StartParams{Domain: "general", Count: 3})
	ctx := context.Background()

	if _, err := m.End(snap.ID); err != nil {
		t.Fatalf("End: %v", err)
	}
	summary, err := m.Finalize(ctx, snap.ID)
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	if summary.AverageScore != 0 {
		t.Errorf("average = %v, want 0", summary.AverageScore)
	}
	if summary.TotalQuestions != 3 {
		t.Errorf("total questions = %d, want 3", summary.TotalQuestions)
	}
	if summary.Answered != 0 {
		t.Errorf("answered = %d, want 0", summary.Answered)
	}
}

func TestFinalize_SkillDeltasFromQuestionImpact(t *testing.T) {
	// Oracle returns no skill updates, so the question's own impact map
	// drives the deltas: weight 4 at score 80 contributes 3.2 per answer.
	oracle := &stubOracle{next: &assess.Assessment{Score: 80, Feedback: "fine"}}
	repo := newFakeRepo()
	m := managerWithProfiles(t, oracle, repo)
	ctx := context.Background()

	snap := startSession(t, m, StartParams{Username: "alice", Domain: "general", Count: 3})
	for range 3 {
		if _, err := m.Submit(ctx, snap.ID, "a fine answer"); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}

	summary, err := m.Finalize(ctx, snap.ID)
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	// 3 answers x 3.2 = 9.6, rounds to 10.
	if summary.SkillDeltas[skills.Communication] != 10 {
		t.Fatalf("communication delta = %d, want 10", summary.SkillDeltas[skills.Communication])
	}
	if summary.Skills == nil {
		t.Fatal("summary missing updated skills from the profile")
	}
}

func TestFinalize_OracleSkillUpdatesPreferred(t *testing.T) {
	oracle := &stubOracle{next: &assess.Assessment{
		Score:        90,
		Feedback:     "strong",
		SkillUpdates: map[string]float64{skills.CriticalThinking: 3},
	}}
	m := testManager(t, &stubSource{questions: testPool(2)}, oracle)
	ctx := context.Background()

	snap := startSession(t, m, StartParams{Domain: "general", Count: 2})
	for range 2 {
		if _, err := m.Submit(ctx, snap.ID, "a strong answer"); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}

	summary, err := m.Finalize(ctx, snap.ID)
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if summary.SkillDeltas[skills.CriticalThinking] != 6 {
		t.Errorf("critical_thinking delta = %d, want 6", summary.SkillDeltas[skills.CriticalThinking])
	}
	// Oracle updates replace the question-impact rule, not add to it.
	if _, ok := summary.SkillDeltas[skills.Communication]; ok {
		t.Errorf("question impact applied alongside oracle updates: %v", summary.SkillDeltas)
	}
}

func TestFinalize_WritesProfileOnce(t *testing.T) {
	oracle := &stubOracle{next: &assess.Assessment{Score: 70, Feedback: "ok"}}
	repo := newFakeRepo()
	m := managerWithProfiles(t, oracle, repo)
	ctx := context.Background()

	snap := startSession(t, m, StartParams{Username: "bob", Domain: "general", Count: 3})
	for range 3 {
		if _, err := m.Submit(ctx, snap.ID, "answer"); err != nil {
			t.Fatalf("Submit: %v", err)
		}
	}

	first, err := m.Finalize(ctx, snap.ID)
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	second, err := m.Finalize(ctx, snap.ID)
	if err != nil {
		t.Fatalf("second Finalize: %v", err)
	}

	if len(repo.applied) != 1 {
		t.Fatalf("profile written %d times, want once", len(repo.applied))
	}
	if first.SessionID != second.SessionID || second.TotalScore != first.TotalScore {
		t.Errorf("repeated finalize diverged: %+v vs %+v", first, second)
	}

	update := repo.applied[0]
	if update.TotalScore != 210 || update.Answered != 3 {
		t.Errorf("update = %+v", update)
	}
	if update.CategoryResults["behavioral"].Answered != 3 {
		t.Errorf("category results = %+v", update.CategoryResults)
	}
	var decoded map[string]any
	if err := json.Unmarshal(update.Summary, &decoded); err != nil {
		t.Errorf("history summary not valid JSON: %v", err)
	}
}

func TestFinalize_NoProfileStillSummarizes(t *testing.T) {
	oracle := &stubOracle{next: &assess.Assessment{Score: 40, Feedback: "thin"}}
	m := testManager(t, &stubSource{questions: testPool(1)}, oracle)
	ctx := context.Background()

	snap := startSession(t, m, StartParams{Domain: "general", Count: 1})
	if _, err := m.Submit(ctx, snap.ID, "short but real answer"); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	summary, err := m.Finalize(ctx, snap.ID)
	if err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if summary.TotalScore != 40 || summary.Answered != 1 {
		t.Errorf("summary = %+v", summary)
	}
	if summary.Skills != nil {
		t.Error("profile-less summary carries a skills vector")
	}
}

var _ profile.Repo = (*fakeRepo)(nil)

var _ question.Source = (*stubSource)(nil)
