// Package practice runs the answer flow: read the player, check the
// answer, apply the rewards engine and write everything back as one unit.
package practice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pawsitive/mathcat/internal/logger"
	"github.com/pawsitive/mathcat/internal/player"
	"github.com/pawsitive/mathcat/internal/problemgen"
	"github.com/pawsitive/mathcat/internal/rewards"
	"github.com/pawsitive/mathcat/internal/standards"
)

// Store failures are reported wrapped in one of these so callers can tell
// a failed read (nothing happened) from a failed write (nothing was
// committed).
var (
	ErrStoreRead  = errors.New("store read failed")
	ErrStoreWrite = errors.New("store write failed")
)

// ErrNoProblem is returned when a submission carries no problem.
var ErrNoProblem = errors.New("no problem to answer")

// Store is the persistence the service needs.
type Store interface {
	player.Store
	player.SessionStore
}

// Service coordinates problem selection, answer recording and study
// sessions for players.
type Service struct {
	store  Store
	gen    *problemgen.Generator
	engine *rewards.Engine
	clock  rewards.Clock
	log    *logger.Logger
	newID  func() string
}

// Option configures a Service.
type Option func(*Service)

// WithClock sets the time source for the engine and timestamps.
func WithClock(c rewards.Clock) Option {
	return func(s *Service) { s.clock = c }
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithIDFunc overrides attempt and session ID generation.
func WithIDFunc(fn func() string) Option {
	return func(s *Service) { s.newID = fn }
}

// NewService creates a Service.
func NewService(store Store, gen *problemgen.Generator, opts ...Option) *Service {
	s := &Service{
		store: store,
		gen:   gen,
		clock: rewards.SystemClock,
		log:   logger.Nop(),
		newID: uuid.NewString,
	}
	for _, o := range opts {
		o(s)
	}
	s.engine = rewards.NewEngine(s.clock)
	return s
}

// Generator returns the problem generator.
func (s *Service) Generator() *problemgen.Generator { return s.gen }

// Now returns the service clock's current time.
func (s *Service) Now() time.Time { return s.clock.Now() }

// Submission is one answer to record.
type Submission struct {
	UserID  string
	Problem *problemgen.Problem
	Answer  string
}

// Outcome is the result of a recorded answer.
type Outcome struct {
	Correct  bool                    `json:"isCorrect"`
	Attempt  player.Attempt          `json:"attempt"`
	Result   rewards.Result          `json:"result"`
	Record   player.Record           `json:"player"`
	Progress player.StandardProgress `json:"progress"`
	// Message is a cat celebration or encouragement line.
	Message string `json:"message"`
}

// Submit checks and records one answer. The player record, the standard's
// progress, the attempt log entry and badge unlocks are committed in one
// transaction; on failure nothing is written and the returned error wraps
// ErrStoreRead or ErrStoreWrite.
func (s *Service) Submit(ctx context.Context, sub Submission) (*Outcome, error) {
	if sub.Problem == nil {
		return nil, ErrNoProblem
	}
	log := s.log.With("user_id", sub.UserID, "standard_id", sub.Problem.StandardID)
	now := s.clock.Now()

	raw, err := s.store.LoadPlayer(ctx, sub.UserID)
	if err != nil {
		log.Error("load player failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrStoreRead, err)
	}
	progress, err := s.store.ListProgress(ctx, sub.UserID)
	if err != nil {
		log.Error("load progress failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrStoreRead, err)
	}
	rec := player.Hydrate(sub.UserID, raw, now)

	correct := problemgen.CheckAnswer(sub.Problem, sub.Answer)

	sp := player.FindProgress(progress, sub.Problem.StandardID).Record(correct, now)

	next, res := s.engine.Apply(rec.State, rewards.Outcome{
		Correct:    correct,
		StandardID: sub.Problem.StandardID,
		Mastery:    player.MasteryMap(progress),
	})
	rec.State = next
	rec.UpdatedAt = now

	attempt := player.Attempt{
		ID:            s.newID(),
		UserID:        sub.UserID,
		StandardID:    sub.Problem.StandardID,
		Question:      sub.Problem.Question,
		UserAnswer:    sub.Answer,
		CorrectAnswer: sub.Problem.CorrectAnswer,
		IsCorrect:     correct,
		CreatedAt:     now,
	}
	var unlocks []player.BadgeUnlock
	for _, b := range res.NewBadges {
		unlocks = append(unlocks, player.BadgeUnlock{UserID: sub.UserID, BadgeID: b.ID, UnlockedAt: now})
	}

	err = s.store.CommitAttempt(ctx, player.Commit{
		Record:   rec,
		Progress: sp,
		Attempt:  attempt,
		Unlocks:  unlocks,
	})
	if err != nil {
		log.Error("commit attempt failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrStoreWrite, err)
	}

	out := &Outcome{
		Correct:  correct,
		Attempt:  attempt,
		Result:   res,
		Record:   rec,
		Progress: sp,
	}
	if correct {
		out.Message = rewards.Celebration(s.gen.Rand(), res.CurrentStreak)
	} else {
		out.Message = rewards.Encouragement(s.gen.Rand())
	}

	log.Info("attempt recorded",
		"correct", correct,
		"xp_earned", res.XPEarned,
		"streak", res.CurrentStreak,
		"new_badges", len(res.NewBadges),
		"leveled_up", res.NewLevel)
	return out, nil
}

// NextProblem picks the next problem for a player. With weak set, the
// player's progress steers the choice; otherwise standardID is used,
// falling back to a random standard when it is empty or unknown.
func (s *Service) NextProblem(ctx context.Context, userID, standardID string, weak bool) (*problemgen.Problem, error) {
	if weak {
		progress, err := s.store.ListProgress(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrStoreRead, err)
		}
		return s.gen.ForWeakArea(masteryLevels(progress))
	}
	if standardID != "" && !standards.Exists(standardID) {
		s.log.Debug("unknown standard, using random", "standard_id", standardID)
	}
	return s.gen.GenerateContext(ctx, standardID, s.priorQuestions(ctx, userID, standardID))
}

// masteryLevels adapts practiced progress for weak-area selection.
func masteryLevels(progress []player.StandardProgress) []problemgen.MasteryLevel {
	out := make([]problemgen.MasteryLevel, 0, len(progress))
	for _, p := range progress {
		if p.Attempted > 0 {
			out = append(out, problemgen.MasteryLevel{StandardID: p.StandardID, Mastery: p.Mastery})
		}
	}
	return out
}

// priorQuestions lists recent questions for a standard so generated
// problems avoid repeats. Errors are ignored; dedup is best effort.
func (s *Service) priorQuestions(ctx context.Context, userID, standardID string) []string {
	if standardID == "" || s.gen.Has(standardID) {
		return nil
	}
	attempts, err := s.store.RecentAttempts(ctx, userID, 50)
	if err != nil {
		return nil
	}
	var out []string
	for _, a := range attempts {
		if a.StandardID == standardID {
			out = append(out, a.Question)
		}
	}
	return out
}
