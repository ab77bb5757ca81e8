package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"prepdeck/internal/skills"
)

// Profile is one user's persisted record.
type Profile struct {
	Username          string        `json:"username"`
	TotalPoints       int           `json:"total_points"`
	QuestionsAnswered int           `json:"questions_answered"`
	InterviewsTaken   int           `json:"interviews_taken"`
	Skills            skills.Vector `json:"skills"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

// CategoryStat aggregates a user's answers within one question category.
type CategoryStat struct {
	Category   string `json:"category"`
	Answered   int    `json:"answered"`
	TotalScore int    `json:"total_score"`
}

// HistoryEntry is one finished interview in a user's history.
type HistoryEntry struct {
	SessionID string          `json:"session_id"`
	Summary   json.RawMessage `json:"summary"`
	CreatedAt time.Time       `json:"created_at"`
}

// FinalizeUpdate carries everything one finished interview writes back.
type FinalizeUpdate struct {
	SessionID   string
	TotalScore  int
	Answered    int
	SkillDeltas map[string]int

	// CategoryResults maps category label to (answered, score sum) for
	// this interview.
	CategoryResults map[string]CategoryResult

	// Summary is the serialized session summary appended to history.
	Summary json.RawMessage
}

// CategoryResult is one interview's contribution to a category.
type CategoryResult struct {
	Answered int
	Score    int
}

// Repo is the profile persistence interface the rest of the service
// depends on.
type Repo interface {
	// GetOrCreate returns the user's profile, seeding a fresh one with
	// random skill levels for unknown users.
	GetOrCreate(ctx context.Context, username string) (*Profile, error)

	// ApplyFinalize applies one finished interview atomically: skill
	// deltas (clamped), cumulative counters, category stats, and a
	// history append.
	ApplyFinalize(ctx context.Context, username string, update FinalizeUpdate) (*Profile, error)

	// CategoryStats returns the user's per-category aggregates.
	CategoryStats(ctx context.Context, username string) ([]CategoryStat, error)

	// History returns the user's most recent interviews, newest first.
	History(ctx context.Context, username string, limit int) ([]HistoryEntry, error)
}

// SQLRepo is the SQLite-backed Repo.
type SQLRepo struct {
	db  *sql.DB
	rng *rand.Rand
	now func() time.Time
}

// NewRepo creates a Repo over the store. rng seeds fresh profiles; nil uses
// the global source.
func NewRepo(store *Store, rng *rand.Rand) *SQLRepo {
	return &SQLRepo{
		db:  store.DB(),
		rng: rng,
		now: time.Now,
	}
}

func (r *SQLRepo) GetOrCreate(ctx context.Context, username string) (*Profile, error) {
	p, err := r.get(ctx, username)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	fresh := &Profile{
		Username:  username,
		Skills:    skills.NewVector(r.rng),
		CreatedAt: r.now().UTC(),
		UpdatedAt: r.now().UTC(),
	}
	rawSkills, err := json.Marshal(fresh.Skills)
	if err != nil {
		return nil, fmt.Errorf("marshal skills: %w", err)
	}

	// Another request may have created the profile between the read and
	// this insert; the re-read after conflict keeps both callers
	// consistent.
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO profiles (username, skills, created_at, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (username) DO NOTHING`,
		username, string(rawSkills), fresh.CreatedAt, fresh.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert profile: %w", err)
	}

	return r.get(ctx, username)
}

func (r *SQLRepo) get(ctx context.Context, username string) (*Profile, error) {
	var (
		p         Profile
		rawSkills string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT username, total_points, questions_answered, interviews_taken,
		        skills, created_at, updated_at
		 FROM profiles WHERE username = ?`, username).
		Scan(&p.Username, &p.TotalPoints, &p.QuestionsAnswered, &p.InterviewsTaken,
			&rawSkills, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(rawSkills), &p.Skills); err != nil {
		return nil, fmt.Errorf("unmarshal skills for %q: %w", username, err)
	}
	return &p, nil
}

func (r *SQLRepo) ApplyFinalize(ctx context.Context, username string, update FinalizeUpdate) (*Profile, error) {
	p, err := r.GetOrCreate(ctx, username)
	if err != nil {
		return nil, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for axis, delta := range update.SkillDeltas {
		p.Skills.Apply(axis, delta)
	}
	rawSkills, err := json.Marshal(p.Skills)
	if err != nil {
		return nil, fmt.Errorf("marshal skills: %w", err)
	}

	now := r.now().UTC()
	_, err = tx.ExecContext(ctx,
		`UPDATE profiles
		 SET total_points = total_points + ?,
		     questions_answered = questions_answered + ?,
		     interviews_taken = interviews_taken + 1,
		     skills = ?,
		     updated_at = ?
		 WHERE username = ?`,
		update.TotalScore, update.Answered, string(rawSkills), now, username)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	for category, res := range update.CategoryResults {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO category_stats (username, category, answered, total_score)
			 VALUES (?, ?, ?, ?)
			 ON CONFLICT (username, category) DO UPDATE SET
			     answered = answered + excluded.answered,
			     total_score = total_score + excluded.total_score`,
			username, category, res.Answered, res.Score)
		if err != nil {
			return nil, fmt.Errorf("upsert category %q: %w", category, err)
		}
	}

	summary := update.Summary
	if summary == nil {
		summary = json.RawMessage(`{}`)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT INTO interview_history (username, session_id, summary, created_at)
		 VALUES (?, ?, ?, ?)`,
		username, update.SessionID, string(summary), now)
	if err != nil {
		return nil, fmt.Errorf("append history: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	return r.get(ctx, username)
}

func (r *SQLRepo) CategoryStats(ctx context.Context, username string) ([]CategoryStat, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT category, answered, total_score
		 FROM category_stats WHERE username = ? ORDER BY category`, username)
	if err != nil {
		return nil, fmt.Errorf("query category stats: %w", err)
	}
	defer rows.Close()

	var out []CategoryStat
	for rows.Next() {
		var s CategoryStat
		if err := rows.Scan(&s.Category, &s.Answered, &s.TotalScore); err != nil {
			return nil, fmt.Errorf("scan category stat: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SQLRepo) History(ctx context.Context, username string, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT session_id, summary, created_at
		 FROM interview_history WHERE username = ?
		 ORDER BY created_at DESC, id DESC LIMIT ?`, username, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []HistoryEntry
	for rows.Next() {
		var (
			e   HistoryEntry
			raw string
		)
		if err := rows.Scan(&e.SessionID, &raw, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan history entry: %w", err)
		}
		e.Summary = json.RawMessage(raw)
		out = append(out, e)
	}
	return out, rows.Err()
}
