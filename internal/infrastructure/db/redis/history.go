package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/traveltracker/travel-log-api/internal/core/ports"
)

const (
	historyTTL = 24 * time.Hour
	// historyMax bounds the per-user transcript length.
	historyMax = 50
)

// ConversationStore keeps per-user assistant transcripts in a Redis list.
// Key format: chat:<user_id>; newest turn at the tail.
type ConversationStore struct {
	client *redis.Client
}

func NewConversationStore(client *redis.Client) *ConversationStore {
	return &ConversationStore{client: client}
}

// Append pushes one turn to the user's transcript, trims to historyMax, and
// refreshes the TTL.
func (s *ConversationStore) Append(ctx context.Context, turn ports.ChatTurn) error {
	data, err := json.Marshal(turn)
	if err != nil {
		return fmt.Errorf("marshal chat turn: %w", err)
	}

	key := s.key(turn.UserID)
	pipe := s.client.TxPipeline()
	pipe.RPush(ctx, key, data)
	pipe.LTrim(ctx, key, -historyMax, -1)
	pipe.Expire(ctx, key, historyTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("append chat turn: %w", err)
	}
	return nil
}

// Recent returns up to limit most recent turns, oldest first.
func (s *ConversationStore) Recent(ctx context.Context, userID string, limit int) ([]ports.ChatTurn, error) {
	if limit <= 0 {
		limit = historyMax
	}

	raw, err := s.client.LRange(ctx, s.key(userID), int64(-limit), -1).Result()
	if err != nil {
		return nil, fmt.Errorf("load chat history: %w", err)
	}

	turns := make([]ports.ChatTurn, 0, len(raw))
	for _, item := range raw {
		var turn ports.ChatTurn
		if err := json.Unmarshal([]byte(item), &turn); err != nil {
			// Skip turns written by an older build rather than failing the chat.
			continue
		}
		turns = append(turns, turn)
	}
	return turns, nil
}

func (s *ConversationStore) key(userID string) string {
	return "chat:" + userID
}
