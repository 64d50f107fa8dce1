package practice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawsitive/mathcat/internal/player"
	"github.com/pawsitive/mathcat/internal/problemgen"
	"github.com/pawsitive/mathcat/internal/rewards"
	"github.com/pawsitive/mathcat/internal/store"
)

// wednesday10am avoids the time-of-day and weekend badges.
var wednesday10am = time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func openStore(t *testing.T) *store.Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := store.Open(fmt.Sprintf("file:practice_%s?mode=memory&cache=shared", name))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestService(t *testing.T, st Store, clock *fakeClock) *Service {
	t.Helper()
	n := 0
	return NewService(st,
		problemgen.New(nil, problemgen.NewRand(1)),
		WithClock(clock),
		WithIDFunc(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
	)
}

func unitRateProblem() *problemgen.Problem {
	return &problemgen.Problem{
		ID:                "p1",
		StandardID:        "7-rp-1",
		Question:          "Sam ran 6 miles in 3 hours. How many miles per hour?",
		CorrectAnswer:     "2",
		AcceptableAnswers: []string{"2", "2 mph"},
		Hint:              "Divide miles by hours.",
		Explanation:       "6 / 3 = 2",
		Difficulty:        problemgen.DifficultyEasy,
	}
}

func TestSubmit_FirstCorrectAnswer(t *testing.T) {
	st := openStore(t)
	svc := newTestService(t, st, &fakeClock{now: wednesday10am})
	ctx := context.Background()

	out, err := svc.Submit(ctx, Submission{UserID: "u1", Problem: unitRateProblem(), Answer: "2"})
	require.NoError(t, err)

	assert.True(t, out.Correct)
	assert.Equal(t, 35, out.Result.XPEarned, "base 10 + first today 15 + problems_1 10")
	assert.Equal(t, 1, out.Result.CurrentStreak)
	require.Len(t, out.Result.NewBadges, 1)
	assert.Equal(t, "problems_1", out.Result.NewBadges[0].ID)
	assert.NotEmpty(t, out.Message)

	rec, err := st.LoadPlayer(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, 35, rec.XP)
	assert.Equal(t, []string{"problems_1"}, rec.Badges)
	assert.Equal(t, "2026-10-14", rec.LastProblemDate)

	progress, err := st.ListProgress(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, progress, 1)
	assert.Equal(t, 100, progress[0].Mastery)

	attempts, err := st.RecentAttempts(ctx, "u1", 0)
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.Equal(t, "2", attempts[0].UserAnswer)
	assert.True(t, attempts[0].IsCorrect)

	unlocks, err := st.ListBadgeUnlocks(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, unlocks, 1)
}

func TestSubmit_NumericFallbackAccepted(t *testing.T) {
	st := openStore(t)
	svc := newTestService(t, st, &fakeClock{now: wednesday10am})

	out, err := svc.Submit(context.Background(), Submission{UserID: "u1", Problem: unitRateProblem(), Answer: "2.0"})
	require.NoError(t, err)
	assert.True(t, out.Correct)
}

func TestSubmit_StreakAndIncorrect(t *testing.T) {
	st := openStore(t)
	clock := &fakeClock{now: wednesday10am}
	svc := newTestService(t, st, clock)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := svc.Submit(ctx, Submission{UserID: "u1", Problem: unitRateProblem(), Answer: "2"})
		require.NoError(t, err)
	}

	out, err := svc.Submit(ctx, Submission{UserID: "u1", Problem: unitRateProblem(), Answer: "2"})
	require.NoError(t, err)
	assert.Equal(t, 3, out.Result.CurrentStreak)
	assert.Equal(t, 35, out.Result.XPEarned, "base 10 + streak 5 + streak_3 20")

	out, err = svc.Submit(ctx, Submission{UserID: "u1", Problem: unitRateProblem(), Answer: "7"})
	require.NoError(t, err)
	assert.False(t, out.Correct)
	assert.Zero(t, out.Result.XPEarned)
	assert.Empty(t, out.Result.XPBreakdown)
	assert.Empty(t, out.Result.NewBadges)
	assert.Zero(t, out.Record.CurrentStreak)
	assert.Equal(t, 3, out.Record.BestStreak)
	assert.Equal(t, 75, out.Progress.Mastery)
}

func TestSubmit_NextDayResetsSession(t *testing.T) {
	st := openStore(t)
	clock := &fakeClock{now: wednesday10am}
	svc := newTestService(t, st, clock)
	ctx := context.Background()

	_, err := svc.Submit(ctx, Submission{UserID: "u1", Problem: unitRateProblem(), Answer: "9"})
	require.NoError(t, err)

	clock.now = wednesday10am.Add(24 * time.Hour)
	out, err := svc.Submit(ctx, Submission{UserID: "u1", Problem: unitRateProblem(), Answer: "2"})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Record.SessionCorrect)
	assert.Equal(t, 0, out.Record.SessionWrong)
	assert.Contains(t, out.Result.XPBreakdown, "+15 First problem today!")
}

func TestSubmit_FirstCorrectBonusAfterWrongAnswer(t *testing.T) {
	st := openStore(t)
	clock := &fakeClock{now: wednesday10am}
	svc := newTestService(t, st, clock)
	ctx := context.Background()

	_, err := svc.Submit(ctx, Submission{UserID: "u1", Problem: unitRateProblem(), Answer: "2"})
	require.NoError(t, err)

	clock.now = wednesday10am.Add(24 * time.Hour)
	_, err = svc.Submit(ctx, Submission{UserID: "u1", Problem: unitRateProblem(), Answer: "4"})
	require.NoError(t, err)

	out, err := svc.Submit(ctx, Submission{UserID: "u1", Problem: unitRateProblem(), Answer: "2"})
	require.NoError(t, err)
	assert.Equal(t, 25, out.Result.XPEarned)
	assert.Equal(t, []string{"+10 Correct answer", "+15 First problem today!"}, out.Result.XPBreakdown)
	assert.Equal(t, "2026-10-15", out.Record.LastCorrectDate)
}

func TestSubmit_DomainMasteryCountsEarlierAttempts(t *testing.T) {
	st := openStore(t)
	svc := newTestService(t, st, &fakeClock{now: wednesday10am})
	ctx := context.Background()

	out, err := svc.Submit(ctx, Submission{UserID: "u1", Problem: unitRateProblem(), Answer: "2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"problems_1"}, badgeIDs(out.Result.NewBadges))

	out, err = svc.Submit(ctx, Submission{UserID: "u1", Problem: unitRateProblem(), Answer: "2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"master_rp"}, badgeIDs(out.Result.NewBadges))
	assert.Equal(t, 85, out.Result.XPEarned, "base 10 + Ratio Ruler 75")
}

func badgeIDs(badges []rewards.Badge) []string {
	out := make([]string, 0, len(badges))
	for _, b := range badges {
		out = append(out, b.ID)
	}
	return out
}

func TestMasteryLevelsSkipsUnpracticed(t *testing.T) {
	got := masteryLevels([]player.StandardProgress{
		{StandardID: "7-rp-1", Attempted: 3, Mastery: 33},
		{StandardID: "7-ns-1"},
	})
	assert.Equal(t, []problemgen.MasteryLevel{{StandardID: "7-rp-1", Mastery: 33}}, got)
}

func TestSubmit_NoProblem(t *testing.T) {
	svc := newTestService(t, openStore(t), &fakeClock{now: wednesday10am})
	_, err := svc.Submit(context.Background(), Submission{UserID: "u1"})
	assert.ErrorIs(t, err, ErrNoProblem)
}

// failingStore wraps a real store and fails selected calls.
type failingStore struct {
	Store
	loadErr   error
	commitErr error
}

func (f *failingStore) LoadPlayer(ctx context.Context, userID string) (*player.Record, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.Store.LoadPlayer(ctx, userID)
}

func (f *failingStore) CommitAttempt(ctx context.Context, c player.Commit) error {
	if f.commitErr != nil {
		return f.commitErr
	}
	return f.Store.CommitAttempt(ctx, c)
}

func TestSubmit_StoreReadError(t *testing.T) {
	boom := errors.New("disk gone")
	st := &failingStore{Store: openStore(t), loadErr: boom}
	svc := newTestService(t, st, &fakeClock{now: wednesday10am})

	_, err := svc.Submit(context.Background(), Submission{UserID: "u1", Problem: unitRateProblem(), Answer: "2"})
	assert.ErrorIs(t, err, ErrStoreRead)
	assert.ErrorIs(t, err, boom)
}

func TestSubmit_StoreWriteErrorCommitsNothing(t *testing.T) {
	base := openStore(t)
	st := &failingStore{Store: base, commitErr: errors.New("locked")}
	svc := newTestService(t, st, &fakeClock{now: wednesday10am})
	ctx := context.Background()

	_, err := svc.Submit(ctx, Submission{UserID: "u1", Problem: unitRateProblem(), Answer: "2"})
	assert.ErrorIs(t, err, ErrStoreWrite)

	rec, err := base.LoadPlayer(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestNextProblem(t *testing.T) {
	st := openStore(t)
	svc := newTestService(t, st, &fakeClock{now: wednesday10am})
	ctx := context.Background()

	p, err := svc.NextProblem(ctx, "u1", "7-g-4", false)
	require.NoError(t, err)
	assert.Equal(t, "7-g-4", p.StandardID)
	assert.True(t, problemgen.CheckAnswer(p, p.CorrectAnswer))

	p, err = svc.NextProblem(ctx, "u1", "not-a-standard", false)
	require.NoError(t, err)
	assert.NotEmpty(t, p.StandardID)

	// A weak standard is chosen first.
	_, err = svc.Submit(ctx, Submission{UserID: "u1", Problem: unitRateProblem(), Answer: "0"})
	require.NoError(t, err)
	p, err = svc.NextProblem(ctx, "u1", "", true)
	require.NoError(t, err)
	assert.Equal(t, "7-rp-1", p.StandardID)
}

func TestProfile(t *testing.T) {
	st := openStore(t)
	svc := newTestService(t, st, &fakeClock{now: wednesday10am})
	ctx := context.Background()

	empty, err := svc.Profile(ctx, "new-kid")
	require.NoError(t, err)
	assert.Equal(t, 1, empty.Level.Level)
	assert.Zero(t, empty.Stats.TotalProblems)
	assert.Len(t, empty.Domains, 5)
	assert.Len(t, empty.Goals, 3)

	_, err = svc.Submit(ctx, Submission{UserID: "u1", Problem: unitRateProblem(), Answer: "2"})
	require.NoError(t, err)
	_, err = svc.Submit(ctx, Submission{UserID: "u1", Problem: unitRateProblem(), Answer: "5"})
	require.NoError(t, err)

	prof, err := svc.Profile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, player.Aggregate{TotalProblems: 2, TotalCorrect: 1, Accuracy: 50}, prof.Stats)
	assert.Equal(t, 2, prof.Goals[0].Current)
	assert.Equal(t, rewards.LevelFor(prof.Player.XP), prof.Level)
	assert.Len(t, prof.Badges, 1)
}

func TestReset(t *testing.T) {
	st := openStore(t)
	svc := newTestService(t, st, &fakeClock{now: wednesday10am})
	ctx := context.Background()

	_, err := svc.Submit(ctx, Submission{UserID: "u1", Problem: unitRateProblem(), Answer: "2"})
	require.NoError(t, err)
	require.NoError(t, svc.Reset(ctx, "u1"))

	prof, err := svc.Profile(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, prof.Player.XP)
}
