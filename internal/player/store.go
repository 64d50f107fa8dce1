package player

import "context"

// Commit is everything one recorded answer writes. Implementations must
// apply it in a single transaction.
type Commit struct {
	Record   Record
	Progress StandardProgress
	Attempt  Attempt
	Unlocks  []BadgeUnlock
}

// Totals are the attempt-log counts for a player.
type Totals struct {
	Problems int
	Correct  int
}

// Store is the persistence contract for player data. Loads of a missing
// player return (nil, nil); callers pass the result through Hydrate.
type Store interface {
	LoadPlayer(ctx context.Context, userID string) (*Record, error)
	SavePlayer(ctx context.Context, r Record) error
	ListProgress(ctx context.Context, userID string) ([]StandardProgress, error)
	CommitAttempt(ctx context.Context, c Commit) error
	RecentAttempts(ctx context.Context, userID string, limit int) ([]Attempt, error)
	AttemptTotals(ctx context.Context, userID string) (Totals, error)
	ListBadgeUnlocks(ctx context.Context, userID string) ([]BadgeUnlock, error)
	DeletePlayer(ctx context.Context, userID string) error
}

// SessionStore persists study sessions.
type SessionStore interface {
	StartSession(ctx context.Context, s StudySession) error
	GetSession(ctx context.Context, id string) (*StudySession, error)
	// EndSession stores the finished session and the updated record together.
	EndSession(ctx context.Context, s StudySession, r Record) error
}

// ChatStore persists tutor chat history.
type ChatStore interface {
	AppendChat(ctx context.Context, msgs ...ChatMessage) error
	ChatHistory(ctx context.Context, userID string, limit int) ([]ChatMessage, error)
	ClearChat(ctx context.Context, userID string) error
}
