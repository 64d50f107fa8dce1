package player

import "time"

// Attempt is one entry in the append-only attempt log.
type Attempt struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	StandardID    string    `json:"standardId"`
	Question      string    `json:"question"`
	UserAnswer    string    `json:"userAnswer"`
	CorrectAnswer string    `json:"correctAnswer"`
	IsCorrect     bool      `json:"isCorrect"`
	CreatedAt     time.Time `json:"createdAt"`
}

// StudySession is a timed practice session.
type StudySession struct {
	ID                string     `json:"id"`
	UserID            string     `json:"userId"`
	StartedAt         time.Time  `json:"startTime"`
	EndedAt           *time.Time `json:"endTime,omitempty"`
	DurationMinutes   int        `json:"durationMinutes"`
	StandardsWorkedOn []string   `json:"standardsWorkedOn"`
}

// Open reports whether the session has not been ended yet.
func (s StudySession) Open() bool { return s.EndedAt == nil }

// SessionMinutes is the elapsed time between start and end rounded to
// whole minutes.
func SessionMinutes(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Round(time.Minute) / time.Minute)
}

// Chat roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one line of tutor chat history.
type ChatMessage struct {
	ID               string    `json:"id"`
	UserID           string    `json:"userId"`
	Role             string    `json:"role"`
	Content          string    `json:"content"`
	RelatedStandards []string  `json:"relatedStandards,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

// BadgeUnlock records when a badge was earned.
type BadgeUnlock struct {
	UserID     string    `json:"userId"`
	BadgeID    string    `json:"badgeId"`
	UnlockedAt time.Time `json:"unlockedAt"`
}
