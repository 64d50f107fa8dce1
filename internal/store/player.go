package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/pawsitive/mathcat/internal/player"
	"github.com/pawsitive/mathcat/internal/rewards"
	"github.com/pawsitive/mathcat/internal/standards"
)

var _ player.Store = (*Store)(nil)

// playerRow mirrors the players table. List-valued fields are stored as
// JSON text.
type playerRow struct {
	UserID             string    `sql:"user_id"`
	XP                 int       `sql:"xp"`
	Level              int       `sql:"level"`
	CurrentStreak      int       `sql:"current_streak"`
	BestStreak         int       `sql:"best_streak"`
	Badges             string    `sql:"badges"`
	LastProblemDate    string    `sql:"last_problem_date"`
	LastCorrectDate    string    `sql:"last_correct_date"`
	SessionCorrect     int       `sql:"session_correct"`
	SessionWrong       int       `sql:"session_wrong"`
	ComebackCount      int       `sql:"comeback_count"`
	DomainsAttempted   string    `sql:"domains_attempted"`
	TotalProblems      int       `sql:"total_problems"`
	TotalCorrect       int       `sql:"total_correct"`
	TotalStudyMinutes  int       `sql:"total_study_minutes"`
	WeeklyStudyMinutes int       `sql:"weekly_study_minutes"`
	LastWeekReset      time.Time `sql:"last_week_reset"`
	CreatedAt          time.Time `sql:"created_at"`
	UpdatedAt          time.Time `sql:"updated_at"`
}

var playerColumns = []string{
	"user_id", "xp", "level", "current_streak", "best_streak", "badges",
	"last_problem_date", "last_correct_date", "session_correct",
	"session_wrong", "comeback_count", "domains_attempted",
	"total_problems", "total_correct",
	"total_study_minutes", "weekly_study_minutes", "last_week_reset",
	"created_at", "updated_at",
}

// record converts a row to a player record. Malformed JSON columns decode
// to empty lists; player.Hydrate repairs the rest.
func (r playerRow) record() *player.Record {
	var badges []string
	_ = json.Unmarshal([]byte(r.Badges), &badges)
	var domains []standards.DomainCode
	_ = json.Unmarshal([]byte(r.DomainsAttempted), &domains)

	return &player.Record{
		UserID: r.UserID,
		State: rewards.State{
			XP:               r.XP,
			Level:            r.Level,
			CurrentStreak:    r.CurrentStreak,
			BestStreak:       r.BestStreak,
			Badges:           badges,
			LastProblemDate:  r.LastProblemDate,
			LastCorrectDate:  r.LastCorrectDate,
			SessionCorrect:   r.SessionCorrect,
			SessionWrong:     r.SessionWrong,
			ComebackCount:    r.ComebackCount,
			DomainsAttempted: domains,
			TotalProblems:    r.TotalProblems,
			TotalCorrect:     r.TotalCorrect,
		},
		TotalStudyMinutes:  r.TotalStudyMinutes,
		WeeklyStudyMinutes: r.WeeklyStudyMinutes,
		LastWeekReset:      r.LastWeekReset,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

func encodeList[T any](v []T) string {
	if v == nil {
		v = []T{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func decodeList(s string) []string {
	var out []string
	if err := json.Unmarshal([]byte(s), &out); err != nil || out == nil {
		return []string{}
	}
	return out
}

// LoadPlayer returns the stored record, or nil if the player is new.
func (s *Store) LoadPlayer(ctx context.Context, userID string) (*player.Record, error) {
	return s.loadPlayer(ctx, s.db, userID)
}

func (s *Store) loadPlayer(ctx context.Context, q querier, userID string) (*player.Record, error) {
	b := s.builder()
	sel := b.Select(playerColumns...).
		From(b.Table(tablePlayers)).
		Where(entsql.EQ("user_id", userID))

	var rows []playerRow
	if err := scanAll(ctx, q, sel, &rows); err != nil {
		return nil, fmt.Errorf("load player: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0].record(), nil
}

// SavePlayer writes the full record, inserting or replacing it.
func (s *Store) SavePlayer(ctx context.Context, r player.Record) error {
	if err := s.savePlayer(ctx, s.db, r); err != nil {
		return fmt.Errorf("save player: %w", err)
	}
	return nil
}

func (s *Store) savePlayer(ctx context.Context, q querier, r player.Record) error {
	now := time.Now().UTC()
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	if r.LastWeekReset.IsZero() {
		r.LastWeekReset = now
	}

	ins := s.builder().Insert(tablePlayers).
		Set("user_id", r.UserID).
		Set("xp", r.XP).
		Set("level", r.Level).
		Set("current_streak", r.CurrentStreak).
		Set("best_streak", r.BestStreak).
		Set("badges", encodeList(r.Badges)).
		Set("last_problem_date", r.LastProblemDate).
		Set("last_correct_date", r.LastCorrectDate).
		Set("session_correct", r.SessionCorrect).
		Set("session_wrong", r.SessionWrong).
		Set("comeback_count", r.ComebackCount).
		Set("domains_attempted", encodeList(r.DomainsAttempted)).
		Set("total_problems", r.TotalProblems).
		Set("total_correct", r.TotalCorrect).
		Set("total_study_minutes", r.TotalStudyMinutes).
		Set("weekly_study_minutes", r.WeeklyStudyMinutes).
		Set("last_week_reset", r.LastWeekReset.UTC()).
		Set("created_at", r.CreatedAt.UTC()).
		Set("updated_at", now).
		OnConflict(
			entsql.ConflictColumns("user_id"),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				for _, c := range playerColumns {
					if c != "user_id" && c != "created_at" {
						u.SetExcluded(c)
					}
				}
			}),
		)
	return exec(ctx, q, ins)
}

type progressRow struct {
	StandardID    string    `sql:"standard_id"`
	Attempted     int       `sql:"problems_attempted"`
	Correct       int       `sql:"problems_correct"`
	Mastery       int       `sql:"mastery_level"`
	LastPracticed time.Time `sql:"last_practiced"`
}

// catalogIndex orders standards as the catalog lists them; unknown ids
// sort last.
func catalogIndex(id string) int {
	for i, st := range standards.All() {
		if st.ID == id {
			return i
		}
	}
	return math.MaxInt16
}

// ListProgress returns per-standard progress in catalog order.
func (s *Store) ListProgress(ctx context.Context, userID string) ([]player.StandardProgress, error) {
	b := s.builder()
	sel := b.Select("standard_id", "problems_attempted", "problems_correct", "mastery_level", "last_practiced").
		From(b.Table(tableProgress)).
		Where(entsql.EQ("user_id", userID)).
		OrderBy("standard_id")

	var rows []progressRow
	if err := scanAll(ctx, s.db, sel, &rows); err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}

	out := make([]player.StandardProgress, 0, len(rows))
	for _, r := range rows {
		out = append(out, player.StandardProgress{
			StandardID:    r.StandardID,
			Attempted:     r.Attempted,
			Correct:       r.Correct,
			Mastery:       r.Mastery,
			LastPracticed: r.LastPracticed,
		})
	}
	slices.SortStableFunc(out, func(a, b player.StandardProgress) int {
		return catalogIndex(a.StandardID) - catalogIndex(b.StandardID)
	})
	return out, nil
}

func (s *Store) upsertProgress(ctx context.Context, q querier, userID string, p player.StandardProgress) error {
	ins := s.builder().Insert(tableProgress).
		Set("user_id", userID).
		Set("standard_id", p.StandardID).
		Set("problems_attempted", p.Attempted).
		Set("problems_correct", p.Correct).
		Set("mastery_level", p.Mastery).
		Set("last_practiced", p.LastPracticed.UTC()).
		OnConflict(
			entsql.ConflictColumns("user_id", "standard_id"),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				u.SetExcluded("problems_attempted")
				u.SetExcluded("problems_correct")
				u.SetExcluded("mastery_level")
				u.SetExcluded("last_practiced")
			}),
		)
	return exec(ctx, q, ins)
}

// CommitAttempt writes the player record, the standard's progress, the
// attempt log entry and any badge unlocks in one transaction.
func (s *Store) CommitAttempt(ctx context.Context, c player.Commit) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		if err := s.savePlayer(ctx, tx, c.Record); err != nil {
			return fmt.Errorf("save player: %w", err)
		}
		if err := s.upsertProgress(ctx, tx, c.Record.UserID, c.Progress); err != nil {
			return fmt.Errorf("save progress: %w", err)
		}
		if err := s.appendAttempt(ctx, tx, c.Attempt); err != nil {
			return fmt.Errorf("append attempt: %w", err)
		}
		for _, u := range c.Unlocks {
			if err := s.appendBadgeUnlock(ctx, tx, u); err != nil {
				return fmt.Errorf("append badge unlock: %w", err)
			}
		}
		return nil
	})
}

func (s *Store) appendBadgeUnlock(ctx context.Context, tx *sql.Tx, u player.BadgeUnlock) error {
	seqNum, err := s.seq.Next(ctx, tx)
	if err != nil {
		return err
	}
	ins := s.builder().Insert(tableBadges).
		Set("sequence", seqNum).
		Set("user_id", u.UserID).
		Set("badge_id", u.BadgeID).
		Set("unlocked_at", u.UnlockedAt.UTC()).
		OnConflict(entsql.ConflictColumns("user_id", "badge_id"), entsql.DoNothing())
	return exec(ctx, tx, ins)
}

// ListBadgeUnlocks returns a player's badge unlocks in unlock order.
func (s *Store) ListBadgeUnlocks(ctx context.Context, userID string) ([]player.BadgeUnlock, error) {
	b := s.builder()
	sel := b.Select("user_id", "badge_id", "unlocked_at").
		From(b.Table(tableBadges)).
		Where(entsql.EQ("user_id", userID)).
		OrderBy("sequence")

	var rows []struct {
		UserID     string    `sql:"user_id"`
		BadgeID    string    `sql:"badge_id"`
		UnlockedAt time.Time `sql:"unlocked_at"`
	}
	if err := scanAll(ctx, s.db, sel, &rows); err != nil {
		return nil, fmt.Errorf("list badge unlocks: %w", err)
	}
	out := make([]player.BadgeUnlock, 0, len(rows))
	for _, r := range rows {
		out = append(out, player.BadgeUnlock{UserID: r.UserID, BadgeID: r.BadgeID, UnlockedAt: r.UnlockedAt})
	}
	return out, nil
}

// DeletePlayer removes every row belonging to the player.
func (s *Store) DeletePlayer(ctx context.Context, userID string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		for _, table := range []string{tablePlayers, tableProgress, tableAttempts, tableBadges, tableSessions, tableChat} {
			del := s.builder().Delete(table).Where(entsql.EQ("user_id", userID))
			if err := exec(ctx, tx, del); err != nil {
				return fmt.Errorf("delete from %s: %w", table, err)
			}
		}
		return nil
	})
}
