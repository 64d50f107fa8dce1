package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/pawsitive/mathcat/internal/player"
)

type attemptRow struct {
	ID            string    `sql:"id"`
	UserID        string    `sql:"user_id"`
	StandardID    string    `sql:"standard_id"`
	Question      string    `sql:"question"`
	UserAnswer    string    `sql:"user_answer"`
	CorrectAnswer string    `sql:"correct_answer"`
	IsCorrect     bool      `sql:"is_correct"`
	CreatedAt     time.Time `sql:"created_at"`
}

func (s *Store) appendAttempt(ctx context.Context, tx *sql.Tx, a player.Attempt) error {
	seqNum, err := s.seq.Next(ctx, tx)
	if err != nil {
		return err
	}
	ins := s.builder().Insert(tableAttempts).
		Set("id", a.ID).
		Set("sequence", seqNum).
		Set("user_id", a.UserID).
		Set("standard_id", a.StandardID).
		Set("question", a.Question).
		Set("user_answer", a.UserAnswer).
		Set("correct_answer", a.CorrectAnswer).
		Set("is_correct", a.IsCorrect).
		Set("created_at", a.CreatedAt.UTC())
	return exec(ctx, tx, ins)
}

// RecentAttempts returns up to limit attempts, newest first. A limit of
// zero returns all of them.
func (s *Store) RecentAttempts(ctx context.Context, userID string, limit int) ([]player.Attempt, error) {
	b := s.builder()
	sel := b.Select("id", "user_id", "standard_id", "question", "user_answer", "correct_answer", "is_correct", "created_at").
		From(b.Table(tableAttempts)).
		Where(entsql.EQ("user_id", userID)).
		OrderBy(entsql.Desc("sequence"))
	if limit > 0 {
		sel.Limit(limit)
	}

	var rows []attemptRow
	if err := scanAll(ctx, s.db, sel, &rows); err != nil {
		return nil, fmt.Errorf("recent attempts: %w", err)
	}
	out := make([]player.Attempt, 0, len(rows))
	for _, r := range rows {
		out = append(out, player.Attempt(r))
	}
	return out, nil
}

// AttemptTotals counts a player's logged attempts.
func (s *Store) AttemptTotals(ctx context.Context, userID string) (player.Totals, error) {
	var t player.Totals
	var err error
	if t.Problems, err = s.countAttempts(ctx, entsql.EQ("user_id", userID)); err != nil {
		return player.Totals{}, err
	}
	if t.Correct, err = s.countAttempts(ctx, entsql.And(entsql.EQ("user_id", userID), entsql.EQ("is_correct", true))); err != nil {
		return player.Totals{}, err
	}
	return t, nil
}

func (s *Store) countAttempts(ctx context.Context, where *entsql.Predicate) (int, error) {
	b := s.builder()
	query, args := b.Select(entsql.Count("*")).
		From(b.Table(tableAttempts)).
		Where(where).
		Query()

	var n int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count attempts: %w", err)
	}
	return n, nil
}
