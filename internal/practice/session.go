package practice

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/pawsitive/mathcat/internal/player"
)

// Study session errors.
var (
	ErrSessionNotFound = errors.New("study session not found")
	ErrSessionEnded    = errors.New("study session already ended")
)

// StartSession opens a study session for the player.
func (s *Service) StartSession(ctx context.Context, userID string) (*player.StudySession, error) {
	sess := player.StudySession{
		ID:                s.newID(),
		UserID:            userID,
		StartedAt:         s.clock.Now(),
		StandardsWorkedOn: []string{},
	}
	if err := s.store.StartSession(ctx, sess); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreWrite, err)
	}
	s.log.Debug("study session started", "user_id", userID, "session_id", sess.ID)
	return &sess, nil
}

// EndSession closes a study session, credits its rounded duration to the
// player's total and weekly study time, and returns the closed session
// with the updated record.
func (s *Service) EndSession(ctx context.Context, sessionID string, worked []string) (*player.StudySession, *player.Record, error) {
	sess, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrStoreRead, err)
	}
	if sess == nil {
		return nil, nil, ErrSessionNotFound
	}
	if !sess.Open() {
		return nil, nil, ErrSessionEnded
	}

	now := s.clock.Now()
	raw, err := s.store.LoadPlayer(ctx, sess.UserID)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrStoreRead, err)
	}
	rec := player.Hydrate(sess.UserID, raw, now)

	sess.EndedAt = &now
	sess.DurationMinutes = player.SessionMinutes(sess.StartedAt, now)
	for _, id := range worked {
		if !slices.Contains(sess.StandardsWorkedOn, id) {
			sess.StandardsWorkedOn = append(sess.StandardsWorkedOn, id)
		}
	}
	rec = rec.AddStudyMinutes(sess.DurationMinutes, now)

	if err := s.store.EndSession(ctx, *sess, rec); err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrStoreWrite, err)
	}
	s.log.Info("study session ended",
		"user_id", sess.UserID,
		"session_id", sess.ID,
		"minutes", sess.DurationMinutes)
	return sess, &rec, nil
}
