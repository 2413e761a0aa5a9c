package ports

import (
	"context"
	"time"
)

// ChatTurn is one exchange in a user's assistant conversation.
type ChatTurn struct {
	UserID    string    `json:"userId"`
	Role      string    `json:"role"` // "user" or "assistant"
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ConversationStore persists assistant conversation history per user.
// History is an explicit collaborator, never state retained on a service.
type ConversationStore interface {
	Append(ctx context.Context, turn ChatTurn) error
	Recent(ctx context.Context, userID string, limit int) ([]ChatTurn, error)
}

// ChatProvider is the narrow port to the hosted chat-completions API.
type ChatProvider interface {
	Reply(ctx context.Context, system string, history []ChatTurn, message string) (string, error)
}

// AssistantService answers free-form questions about a user's travel log.
type AssistantService interface {
	Ask(ctx context.Context, userID, message string) (string, error)
}
