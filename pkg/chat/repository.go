package chat

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Common errors used by repository/use cases
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("conversation belongs to another user")
	ErrEmptyMessage = errors.New("message content is empty")
)

// Repository is the persistence port for conversations, messages and feedback.
type Repository interface {
	CreateConversation(ctx context.Context, c Conversation) error
	GetConversation(ctx context.Context, id uuid.UUID) (Conversation, error)
	ListConversations(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Conversation, error)

	CreateMessage(ctx context.Context, m Message) error
	ListMessages(ctx context.Context, conversationID uuid.UUID) ([]Message, error)
	GetMessage(ctx context.Context, id uuid.UUID) (Message, error)

	CreateFeedback(ctx context.Context, f Feedback) error
}
