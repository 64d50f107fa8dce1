package practice

import (
	"context"
	"fmt"

	"github.com/pawsitive/mathcat/internal/player"
	"github.com/pawsitive/mathcat/internal/rewards"
)

// Profile is everything the stats views show about a player.
type Profile struct {
	Player    player.Record             `json:"player"`
	Level     rewards.Level             `json:"level"`
	XP        rewards.XPProgress        `json:"xpProgress"`
	Goals     []rewards.DailyGoal       `json:"dailyGoals"`
	Standards []player.StandardProgress `json:"standards"`
	Domains   []player.DomainSummary    `json:"domains"`
	Stats     player.Aggregate          `json:"stats"`
	Badges    []player.BadgeUnlock      `json:"badges"`
}

// Profile loads and summarizes a player. A player with no history gets a
// default profile.
func (s *Service) Profile(ctx context.Context, userID string) (*Profile, error) {
	raw, err := s.store.LoadPlayer(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreRead, err)
	}
	progress, err := s.store.ListProgress(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreRead, err)
	}
	totals, err := s.store.AttemptTotals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreRead, err)
	}
	unlocks, err := s.store.ListBadgeUnlocks(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreRead, err)
	}

	rec := player.Hydrate(userID, raw, s.clock.Now())
	return &Profile{
		Player:    rec,
		Level:     rewards.LevelFor(rec.XP),
		XP:        rewards.Progress(rec.XP),
		Goals:     rewards.DailyGoals(rec.State, s.engine.Today()),
		Standards: progress,
		Domains:   player.SummarizeDomains(progress),
		Stats:     player.Summarize(totals.Problems, totals.Correct, progress),
		Badges:    unlocks,
	}, nil
}

// RecentAttempts returns the player's latest attempts, newest first.
func (s *Service) RecentAttempts(ctx context.Context, userID string, limit int) ([]player.Attempt, error) {
	attempts, err := s.store.RecentAttempts(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreRead, err)
	}
	return attempts, nil
}

// Reset deletes all of a player's data.
func (s *Service) Reset(ctx context.Context, userID string) error {
	if err := s.store.DeletePlayer(ctx, userID); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreWrite, err)
	}
	s.log.Info("player reset", "user_id", userID)
	return nil
}
