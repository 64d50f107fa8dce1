package store

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawsitive/mathcat/internal/player"
	"github.com/pawsitive/mathcat/internal/rewards"
	"github.com/pawsitive/mathcat/internal/standards"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

var testNow = time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC)

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil database handle")
	}
	if err := s.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func TestOpenDriverRejectsUnknown(t *testing.T) {
	_, err := OpenDriver(context.Background(), "mysql", "whatever")
	if err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	for _, table := range []string{tablePlayers, tableProgress, tableAttempts, tableBadges, tableSessions, tableChat, tableLLMRequests, tableSequence} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx, s.DB())
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestLoadPlayer_Missing(t *testing.T) {
	s := openTestStore(t)
	r, err := s.LoadPlayer(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, r)
}

func TestSavePlayer_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	rec := player.New("u1", testNow)
	rec.XP = 135
	rec.Level = 2
	rec.CurrentStreak = 4
	rec.BestStreak = 6
	rec.Badges = []string{"problems_1", "streak_3"}
	rec.LastProblemDate = "2026-10-14"
	rec.LastCorrectDate = "2026-10-13"
	rec.DomainsAttempted = []standards.DomainCode{standards.DomainRP, standards.DomainG}
	rec.TotalStudyMinutes = 42

	require.NoError(t, s.SavePlayer(ctx, rec))

	got, err := s.LoadPlayer(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 135, got.XP)
	assert.Equal(t, 6, got.BestStreak)
	assert.Equal(t, []string{"problems_1", "streak_3"}, got.Badges)
	assert.Equal(t, []standards.DomainCode{"RP", "G"}, got.DomainsAttempted)
	assert.Equal(t, "2026-10-14", got.LastProblemDate)
	assert.Equal(t, "2026-10-13", got.LastCorrectDate)
	assert.Equal(t, 42, got.TotalStudyMinutes)
	assert.True(t, got.LastWeekReset.Equal(testNow))

	// Saving again replaces the record.
	rec.XP = 200
	require.NoError(t, s.SavePlayer(ctx, rec))
	got, err = s.LoadPlayer(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 200, got.XP)
}

func TestLoadPlayer_MalformedListsHydrate(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SavePlayer(ctx, player.New("u1", testNow)))
	_, err := s.DB().Exec(`UPDATE players SET badges = 'not json', xp = -5 WHERE user_id = 'u1'`)
	require.NoError(t, err)

	raw, err := s.LoadPlayer(ctx, "u1")
	require.NoError(t, err)
	rec := player.Hydrate("u1", raw, testNow)
	assert.Equal(t, 0, rec.XP)
	assert.Empty(t, rec.Badges)
	assert.Equal(t, 1, rec.Level)
}

func commitFor(userID string, n int, correct bool) player.Commit {
	rec := player.New(userID, testNow)
	rec.State = rewards.State{XP: 10 * n, Level: 1, TotalProblems: n, Badges: []string{}}
	return player.Commit{
		Record: rec,
		Progress: player.StandardProgress{
			StandardID:    "7-rp-1",
			Attempted:     n,
			Correct:       n,
			Mastery:       100,
			LastPracticed: testNow,
		},
		Attempt: player.Attempt{
			ID:            fmt.Sprintf("a-%s-%d", userID, n),
			UserID:        userID,
			StandardID:    "7-rp-1",
			Question:      "q",
			UserAnswer:    "2",
			CorrectAnswer: "2",
			IsCorrect:     correct,
			CreatedAt:     testNow.Add(time.Duration(n) * time.Minute),
		},
	}
}

func TestCommitAttempt(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	c := commitFor("u1", 1, true)
	c.Unlocks = []player.BadgeUnlock{{UserID: "u1", BadgeID: "problems_1", UnlockedAt: testNow}}
	require.NoError(t, s.CommitAttempt(ctx, c))
	require.NoError(t, s.CommitAttempt(ctx, commitFor("u1", 2, false)))

	rec, err := s.LoadPlayer(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 20, rec.XP)

	progress, err := s.ListProgress(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, progress, 1)
	assert.Equal(t, 2, progress[0].Attempted)

	attempts, err := s.RecentAttempts(ctx, "u1", 10)
	require.NoError(t, err)
	require.Len(t, attempts, 2)
	assert.Equal(t, "a-u1-2", attempts[0].ID, "newest first")
	assert.False(t, attempts[0].IsCorrect)
	assert.True(t, attempts[1].IsCorrect)

	totals, err := s.AttemptTotals(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, player.Totals{Problems: 2, Correct: 1}, totals)

	unlocks, err := s.ListBadgeUnlocks(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, unlocks, 1)
	assert.Equal(t, "problems_1", unlocks[0].BadgeID)
}

func TestCommitAttempt_RollsBackOnFailure(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CommitAttempt(ctx, commitFor("u1", 1, true)))

	// Reusing an attempt ID violates the primary key after the player row
	// has been written; nothing from the second commit may persist.
	dup := commitFor("u1", 1, true)
	dup.Record.XP = 999
	require.Error(t, s.CommitAttempt(ctx, dup))

	rec, err := s.LoadPlayer(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 10, rec.XP)
}

func TestListProgress_CatalogOrder(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i, id := range []string{"7-sp-5", "7-rp-1", "7-g-4"} {
		c := commitFor("u1", i+1, true)
		c.Progress.StandardID = id
		require.NoError(t, s.CommitAttempt(ctx, c))
	}

	progress, err := s.ListProgress(ctx, "u1")
	require.NoError(t, err)
	var ids []string
	for _, p := range progress {
		ids = append(ids, p.StandardID)
	}
	assert.Equal(t, []string{"7-rp-1", "7-g-4", "7-sp-5"}, ids)
}

func TestDeletePlayer(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CommitAttempt(ctx, commitFor("u1", 1, true)))
	require.NoError(t, s.CommitAttempt(ctx, commitFor("u2", 1, true)))
	require.NoError(t, s.DeletePlayer(ctx, "u1"))

	rec, err := s.LoadPlayer(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, rec)

	totals, err := s.AttemptTotals(ctx, "u1")
	require.NoError(t, err)
	assert.Zero(t, totals.Problems)

	other, err := s.LoadPlayer(ctx, "u2")
	require.NoError(t, err)
	assert.NotNil(t, other)
}

func TestStudySessions(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sess := player.StudySession{ID: "s1", UserID: "u1", StartedAt: testNow}
	require.NoError(t, s.StartSession(ctx, sess))

	got, err := s.GetSession(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Open())

	end := testNow.Add(25 * time.Minute)
	sess.EndedAt = &end
	sess.DurationMinutes = 25
	sess.StandardsWorkedOn = []string{"7-rp-1"}
	rec := player.New("u1", testNow).AddStudyMinutes(25, end)
	require.NoError(t, s.EndSession(ctx, sess, rec))

	got, err = s.GetSession(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, got.Open())
	assert.Equal(t, 25, got.DurationMinutes)
	assert.Equal(t, []string{"7-rp-1"}, got.StandardsWorkedOn)

	stored, err := s.LoadPlayer(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 25, stored.TotalStudyMinutes)
	assert.Equal(t, 25, stored.WeeklyStudyMinutes)

	missing, err := s.GetSession(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestChatHistory(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		role := player.RoleUser
		if i%2 == 1 {
			role = player.RoleAssistant
		}
		require.NoError(t, s.AppendChat(ctx, player.ChatMessage{
			ID:        fmt.Sprintf("m%d", i),
			UserID:    "u1",
			Role:      role,
			Content:   fmt.Sprintf("message %d", i),
			CreatedAt: testNow.Add(time.Duration(i) * time.Second),
		}))
	}
	require.NoError(t, s.AppendChat(ctx, player.ChatMessage{
		ID: "x", UserID: "u2", Role: player.RoleUser, Content: "other", CreatedAt: testNow,
		RelatedStandards: []string{"7-g-4"},
	}))

	last, err := s.ChatHistory(ctx, "u1", 3)
	require.NoError(t, err)
	require.Len(t, last, 3)
	assert.Equal(t, "message 1", last[0].Content, "oldest of the window first")
	assert.Equal(t, "message 3", last[2].Content)

	other, err := s.ChatHistory(ctx, "u2", 0)
	require.NoError(t, err)
	require.Len(t, other, 1)
	assert.Equal(t, []string{"7-g-4"}, other[0].RelatedStandards)

	require.NoError(t, s.ClearChat(ctx, "u1"))
	cleared, err := s.ChatHistory(ctx, "u1", 0)
	require.NoError(t, err)
	assert.Empty(t, cleared)
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "anthropic", Model: "claude-sonnet-4-20250514", Purpose: "homework", InputTokens: 100, OutputTokens: 50, LatencyMs: 400, Success: true, RequestBody: "req", ResponseBody: "resp"},
		{Provider: "anthropic", Model: "claude-sonnet-4-20250514", Purpose: "homework", InputTokens: 200, OutputTokens: 70, LatencyMs: 600, Success: true},
		{Provider: "openai", Model: "gpt-4o", Purpose: "problem-gen", InputTokens: 10, OutputTokens: 5, LatencyMs: 100, Success: false, ErrorMessage: "boom"},
	}
	for _, e := range events {
		require.NoError(t, repo.AppendLLMRequest(ctx, e))
	}

	list, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 2})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "problem-gen", list[0].Purpose, "newest first")
	assert.False(t, list[0].Success)
	assert.Equal(t, "boom", list[0].ErrorMessage)

	homework, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "homework"})
	require.NoError(t, err)
	assert.Len(t, homework, 2)

	first, err := repo.GetLLMEvent(ctx, list[1].ID)
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, 200, first.InputTokens)

	missing, err := repo.GetLLMEvent(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, byPurpose, 2)
	assert.Equal(t, "homework", byPurpose[0].Purpose)
	assert.Equal(t, 2, byPurpose[0].Calls)
	assert.Equal(t, 300, byPurpose[0].InputTokens)
	assert.Equal(t, int64(500), byPurpose[0].AvgLatencyMs)

	byModel, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	require.Len(t, byModel, 2)
	assert.Equal(t, "claude-sonnet-4-20250514", byModel[0].Model)
	assert.Equal(t, 120, byModel[0].OutputTokens)
}
