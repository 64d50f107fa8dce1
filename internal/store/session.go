package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/pawsitive/mathcat/internal/player"
)

var _ player.SessionStore = (*Store)(nil)

type sessionRow struct {
	ID                string     `sql:"id"`
	UserID            string     `sql:"user_id"`
	StartTime         time.Time  `sql:"start_time"`
	EndTime           *time.Time `sql:"end_time"`
	DurationMinutes   int        `sql:"duration_minutes"`
	StandardsWorkedOn string     `sql:"standards_worked_on"`
}

// StartSession inserts a new open study session.
func (s *Store) StartSession(ctx context.Context, sess player.StudySession) error {
	ins := s.builder().Insert(tableSessions).
		Set("id", sess.ID).
		Set("user_id", sess.UserID).
		Set("start_time", sess.StartedAt.UTC()).
		Set("duration_minutes", 0).
		Set("standards_worked_on", encodeList(sess.StandardsWorkedOn))
	if err := exec(ctx, s.db, ins); err != nil {
		return fmt.Errorf("start session: %w", err)
	}
	return nil
}

// GetSession returns a study session, or nil if it does not exist.
func (s *Store) GetSession(ctx context.Context, id string) (*player.StudySession, error) {
	b := s.builder()
	sel := b.Select("id", "user_id", "start_time", "end_time", "duration_minutes", "standards_worked_on").
		From(b.Table(tableSessions)).
		Where(entsql.EQ("id", id))

	var rows []sessionRow
	if err := scanAll(ctx, s.db, sel, &rows); err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	r := rows[0]
	return &player.StudySession{
		ID:                r.ID,
		UserID:            r.UserID,
		StartedAt:         r.StartTime,
		EndedAt:           r.EndTime,
		DurationMinutes:   r.DurationMinutes,
		StandardsWorkedOn: decodeList(r.StandardsWorkedOn),
	}, nil
}

// EndSession closes the session and saves the updated player record in
// one transaction.
func (s *Store) EndSession(ctx context.Context, sess player.StudySession, r player.Record) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		upd := s.builder().Update(tableSessions).
			Set("end_time", sess.EndedAt.UTC()).
			Set("duration_minutes", sess.DurationMinutes).
			Set("standards_worked_on", encodeList(sess.StandardsWorkedOn)).
			Where(entsql.EQ("id", sess.ID))
		if err := exec(ctx, tx, upd); err != nil {
			return fmt.Errorf("end session: %w", err)
		}
		if err := s.savePlayer(ctx, tx, r); err != nil {
			return fmt.Errorf("save player: %w", err)
		}
		return nil
	})
}
