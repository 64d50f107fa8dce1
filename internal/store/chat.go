package store

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/pawsitive/mathcat/internal/player"
)

var _ player.ChatStore = (*Store)(nil)

type chatRow struct {
	ID               string    `sql:"id"`
	UserID           string    `sql:"user_id"`
	Role             string    `sql:"role"`
	Content          string    `sql:"content"`
	RelatedStandards string    `sql:"related_standards"`
	CreatedAt        time.Time `sql:"created_at"`
}

// AppendChat appends messages to a player's chat history in order.
func (s *Store) AppendChat(ctx context.Context, msgs ...player.ChatMessage) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		for _, m := range msgs {
			seqNum, err := s.seq.Next(ctx, tx)
			if err != nil {
				return err
			}
			ins := s.builder().Insert(tableChat).
				Set("id", m.ID).
				Set("sequence", seqNum).
				Set("user_id", m.UserID).
				Set("role", m.Role).
				Set("content", m.Content).
				Set("related_standards", encodeList(m.RelatedStandards)).
				Set("created_at", m.CreatedAt.UTC())
			if err := exec(ctx, tx, ins); err != nil {
				return fmt.Errorf("append chat: %w", err)
			}
		}
		return nil
	})
}

// ChatHistory returns the last limit messages, oldest first. A limit of
// zero returns the whole history.
func (s *Store) ChatHistory(ctx context.Context, userID string, limit int) ([]player.ChatMessage, error) {
	b := s.builder()
	sel := b.Select("id", "user_id", "role", "content", "related_standards", "created_at").
		From(b.Table(tableChat)).
		Where(entsql.EQ("user_id", userID)).
		OrderBy(entsql.Desc("sequence"))
	if limit > 0 {
		sel.Limit(limit)
	}

	var rows []chatRow
	if err := scanAll(ctx, s.db, sel, &rows); err != nil {
		return nil, fmt.Errorf("chat history: %w", err)
	}
	slices.Reverse(rows)

	out := make([]player.ChatMessage, 0, len(rows))
	for _, r := range rows {
		m := player.ChatMessage{
			ID:        r.ID,
			UserID:    r.UserID,
			Role:      r.Role,
			Content:   r.Content,
			CreatedAt: r.CreatedAt,
		}
		if related := decodeList(r.RelatedStandards); len(related) > 0 {
			m.RelatedStandards = related
		}
		out = append(out, m)
	}
	return out, nil
}

// ClearChat deletes a player's chat history.
func (s *Store) ClearChat(ctx context.Context, userID string) error {
	del := s.builder().Delete(tableChat).Where(entsql.EQ("user_id", userID))
	if err := exec(ctx, s.db, del); err != nil {
		return fmt.Errorf("clear chat: %w", err)
	}
	return nil
}
