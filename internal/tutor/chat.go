package tutor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pawsitive/mathcat/internal/logger"
	"github.com/pawsitive/mathcat/internal/player"
	"github.com/pawsitive/mathcat/internal/problemgen"
)

// ErrEmptyMessage is returned by Send for blank input.
var ErrEmptyMessage = errors.New("tutor: empty message")

// DefaultHistoryLimit is how many chat lines History returns.
const DefaultHistoryLimit = 100

// Chat is a per-player tutor conversation backed by a ChatStore.
type Chat struct {
	tutor *Tutor
	store player.ChatStore
	log   *logger.Logger
	now   func() time.Time
	newID func() string
	limit int
}

// ChatOption configures a Chat.
type ChatOption func(*Chat)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) ChatOption {
	return func(c *Chat) { c.now = now }
}

// WithIDFunc overrides message ID assignment.
func WithIDFunc(fn func() string) ChatOption {
	return func(c *Chat) { c.newID = fn }
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) ChatOption {
	return func(c *Chat) { c.log = l }
}

// NewChat wires a Tutor to persistent history.
func NewChat(store player.ChatStore, gen *problemgen.Generator, opts ...ChatOption) *Chat {
	c := &Chat{
		tutor: New(gen),
		store: store,
		log:   logger.Nop(),
		now:   time.Now,
		newID: uuid.NewString,
		limit: DefaultHistoryLimit,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// History returns the conversation, oldest first. An empty conversation
// is seeded with the welcome line.
func (c *Chat) History(ctx context.Context, userID string) ([]player.ChatMessage, error) {
	msgs, err := c.store.ChatHistory(ctx, userID, c.limit)
	if err != nil {
		return nil, fmt.Errorf("load chat history: %w", err)
	}
	if len(msgs) > 0 {
		return msgs, nil
	}

	welcome := c.message(userID, player.RoleAssistant, Welcome, nil)
	if err := c.store.AppendChat(ctx, welcome); err != nil {
		return nil, fmt.Errorf("save welcome: %w", err)
	}
	return []player.ChatMessage{welcome}, nil
}

// Exchange is one student message and the tutor's answer.
type Exchange struct {
	Student player.ChatMessage  `json:"student"`
	Tutor   player.ChatMessage  `json:"tutor"`
	Problem *problemgen.Problem `json:"problem,omitempty"`
}

// Send answers text and stores both sides of the exchange.
func (c *Chat) Send(ctx context.Context, userID, text string) (*Exchange, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	reply := c.tutor.Reply(text)
	ex := &Exchange{
		Student: c.message(userID, player.RoleUser, text, nil),
		Problem: reply.Problem,
	}
	ex.Tutor = c.message(userID, player.RoleAssistant, reply.Text, reply.RelatedStandards)

	if err := c.store.AppendChat(ctx, ex.Student, ex.Tutor); err != nil {
		return nil, fmt.Errorf("save chat: %w", err)
	}
	c.log.Debug("tutor reply", "user_id", userID, "related", reply.RelatedStandards, "problem", reply.Problem != nil)
	return ex, nil
}

// Clear deletes the conversation.
func (c *Chat) Clear(ctx context.Context, userID string) error {
	if err := c.store.ClearChat(ctx, userID); err != nil {
		return fmt.Errorf("clear chat: %w", err)
	}
	return nil
}

func (c *Chat) message(userID, role, content string, related []string) player.ChatMessage {
	return player.ChatMessage{
		ID:               c.newID(),
		UserID:           userID,
		Role:             role,
		Content:          content,
		RelatedStandards: related,
		CreatedAt:        c.now(),
	}
}
