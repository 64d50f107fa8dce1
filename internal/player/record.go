package player

import (
	"time"

	"github.com/pawsitive/mathcat/internal/rewards"
)

// DefaultUserID is used when no user is given on the command line.
const DefaultUserID = "local"

// weekLength is the span after which the weekly study counter restarts.
const weekLength = 7 * 24 * time.Hour

// Record is everything persisted for one player apart from per-standard
// progress and the append-only logs. It is read and written as a unit.
type Record struct {
	UserID string `json:"userId"`
	rewards.State

	TotalStudyMinutes  int       `json:"totalStudyMinutes"`
	WeeklyStudyMinutes int       `json:"weeklyStudyMinutes"`
	LastWeekReset      time.Time `json:"lastWeekReset"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// New returns the record of a player with no history.
func New(userID string, now time.Time) Record {
	return Record{
		UserID:        userID,
		State:         rewards.NewState(),
		LastWeekReset: now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Hydrate turns whatever the store returned into a usable record. A nil
// record yields the default state; a malformed one is repaired rather
// than rejected.
func Hydrate(userID string, raw *Record, now time.Time) Record {
	if raw == nil {
		return New(userID, now)
	}

	r := *raw
	if r.UserID == "" {
		r.UserID = userID
	}
	r.State = raw.State.Normalize()
	r.TotalStudyMinutes = max(r.TotalStudyMinutes, 0)
	r.WeeklyStudyMinutes = min(max(r.WeeklyStudyMinutes, 0), r.TotalStudyMinutes)
	if r.LastWeekReset.IsZero() {
		r.LastWeekReset = now
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = now
	}
	return r
}

// Clone returns a deep copy of r.
func (r Record) Clone() Record {
	c := r
	c.State = r.State.Clone()
	return c
}

// AddStudyMinutes credits a finished study session. The weekly counter
// restarts with this session once a week has passed since the last reset.
func (r Record) AddStudyMinutes(minutes int, now time.Time) Record {
	next := r.Clone()
	minutes = max(minutes, 0)
	next.TotalStudyMinutes += minutes
	if now.Sub(r.LastWeekReset) >= weekLength {
		next.WeeklyStudyMinutes = minutes
		next.LastWeekReset = now
	} else {
		next.WeeklyStudyMinutes += minutes
	}
	next.UpdatedAt = now
	return next
}
