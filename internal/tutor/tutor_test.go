package tutor

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pawsitive/mathcat/internal/player"
	"github.com/pawsitive/mathcat/internal/problemgen"
	"github.com/pawsitive/mathcat/internal/standards"
)

func newTestTutor() *Tutor {
	return New(problemgen.New(nil, problemgen.NewRand(7)))
}

func TestReply_Rules(t *testing.T) {
	tests := []struct {
		name        string
		message     string
		wantPrefix  string
		wantRelated []string
	}{
		{"greeting", "Hello there!", "Hi there! I'm your 7th grade math tutor.", []string{}},
		{"greeting is anchored", "well hi", "I'm your math tutor! You can:", []string{}},
		{"help without topic", "help", "I'm here to help! What specific topic", []string{}},
		{"help with topic", "I'm stuck on circle area", "I'd be happy to help with ", []string{"7-g-4", "7-g-1"}},
		{"percent topic", "what is a discount", "Percent problems are very useful", []string{"7-rp-3"}},
		{"circle topic", "area of a circle?", "Circles are fun!", []string{"7-g-4"}},
		{"negative topic", "how do negative numbers work", "Working with negative numbers", []string{"7-ns-1", "7-ns-2"}},
		{"probability topic", "what are the odds", "Probability tells us", []string{"7-sp-5", "7-sp-8"}},
		{"fallback", "meow", "I'm your math tutor! You can:", []string{}},
	}
	tu := newTestTutor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tu.Reply(tt.message)
			assert.True(t, strings.HasPrefix(r.Text, tt.wantPrefix), "got %q", r.Text)
			assert.Equal(t, tt.wantRelated, r.RelatedStandards)
			assert.Nil(t, r.Problem)
		})
	}
}

func TestReply_HelpIncludesTip(t *testing.T) {
	r := newTestTutor().Reply("can you explain circle area")
	assert.Contains(t, r.Text, "Here's a tip: "+standards.ConceptTip("7-g-4"))
}

func TestReply_PracticeForDetectedStandard(t *testing.T) {
	r := newTestTutor().Reply("quiz me on probability")
	require.NotNil(t, r.Problem)
	assert.Equal(t, "7-sp-5", r.Problem.StandardID)
	assert.Equal(t, []string{"7-sp-5"}, r.RelatedStandards)
	assert.Contains(t, r.Text, "**"+r.Problem.Question+"**")
}

func TestReply_PracticeStarterStandard(t *testing.T) {
	r := newTestTutor().Reply("give me a problem")
	require.NotNil(t, r.Problem)
	assert.Contains(t, starterStandards, r.Problem.StandardID)
	assert.Equal(t, []string{r.Problem.StandardID}, r.RelatedStandards)
}

func TestReply_PracticeWithoutGeneratorFallsThrough(t *testing.T) {
	std, err := standards.Get("7-g-2")
	require.NoError(t, err)

	r := newTestTutor().Reply("practice angles")
	assert.Nil(t, r.Problem)
	assert.True(t, strings.HasPrefix(r.Text, "That relates to "+std.Code+": "+std.Title+"!"), r.Text)
	assert.Equal(t, []string{"7-g-2", "7-g-5"}, r.RelatedStandards)
}

type memChat struct {
	mu   sync.Mutex
	msgs []player.ChatMessage
	err  error
}

func (m *memChat) AppendChat(_ context.Context, msgs ...player.ChatMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.msgs = append(m.msgs, msgs...)
	return nil
}

func (m *memChat) ChatHistory(_ context.Context, userID string, limit int) ([]player.ChatMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []player.ChatMessage
	for _, msg := range m.msgs {
		if msg.UserID == userID {
			out = append(out, msg)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (m *memChat) ClearChat(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.msgs[:0]
	for _, msg := range m.msgs {
		if msg.UserID != userID {
			kept = append(kept, msg)
		}
	}
	m.msgs = kept
	return nil
}

func newTestChat(store player.ChatStore) *Chat {
	n := 0
	now := time.Date(2026, 5, 1, 16, 0, 0, 0, time.UTC)
	return NewChat(store, problemgen.New(nil, problemgen.NewRand(3)),
		WithClock(func() time.Time { return now }),
		WithIDFunc(func() string { n++; return fmt.Sprintf("msg-%d", n) }),
	)
}

func TestChat_Conversation(t *testing.T) {
	store := &memChat{}
	chat := newTestChat(store)
	ctx := context.Background()

	hist, err := chat.History(ctx, "ana")
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Equal(t, Welcome, hist[0].Content)
	assert.Equal(t, player.RoleAssistant, hist[0].Role)

	// Seeding happens once.
	hist, err = chat.History(ctx, "ana")
	require.NoError(t, err)
	assert.Len(t, hist, 1)

	ex, err := chat.Send(ctx, "ana", "  what is a discount  ")
	require.NoError(t, err)
	assert.Equal(t, "what is a discount", ex.Student.Content)
	assert.Equal(t, player.RoleUser, ex.Student.Role)
	assert.Equal(t, []string{"7-rp-3"}, ex.Tutor.RelatedStandards)

	hist, err = chat.History(ctx, "ana")
	require.NoError(t, err)
	require.Len(t, hist, 3)
	assert.Equal(t, []string{"msg-1", "msg-2", "msg-3"}, []string{hist[0].ID, hist[1].ID, hist[2].ID})

	require.NoError(t, chat.Clear(ctx, "ana"))
	hist, err = chat.History(ctx, "ana")
	require.NoError(t, err)
	assert.Len(t, hist, 1, "cleared chat starts over with the welcome")
}

func TestChat_SendErrors(t *testing.T) {
	chat := newTestChat(&memChat{})
	_, err := chat.Send(context.Background(), "ana", "   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)

	failing := newTestChat(&memChat{err: assert.AnError})
	_, err = failing.Send(context.Background(), "ana", "hi")
	assert.ErrorIs(t, err, assert.AnError)
}
