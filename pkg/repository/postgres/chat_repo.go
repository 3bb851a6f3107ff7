package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Akshita-sr/pepper-AI-Ollama/pkg/chat"
)

// ChatRepository stores conversations, their messages and message feedback.
type ChatRepository struct {
	pool *pgxpool.Pool
}

func NewChatRepository(pool *pgxpool.Pool) (*ChatRepository, error) {
	r := &ChatRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *ChatRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS conversations (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL,
	title TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS messages (
	id UUID PRIMARY KEY,
	conversation_id UUID NOT NULL REFERENCES conversations(id) ON DELETE CASCADE,
	role TEXT NOT NULL,
	content TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_messages_conversation ON messages(conversation_id, created_at);
CREATE TABLE IF NOT EXISTS feedback (
	id UUID PRIMARY KEY,
	message_id UUID NOT NULL REFERENCES messages(id) ON DELETE CASCADE,
	rating INT NOT NULL,
	comment TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL
);
`)
	return err
}

func (r *ChatRepository) CreateConversation(ctx context.Context, c chat.Conversation) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO conversations (id, user_id, title, created_at)
VALUES ($1, $2, $3, $4)
`, c.ID, c.UserID, c.Title, c.CreatedAt)
	return err
}

func (r *ChatRepository) GetConversation(ctx context.Context, id uuid.UUID) (chat.Conversation, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, user_id, title, created_at FROM conversations WHERE id = $1
`, id)
	var c chat.Conversation
	var created time.Time
	if err := row.Scan(&c.ID, &c.UserID, &c.Title, &created); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return chat.Conversation{}, chat.ErrNotFound
		}
		return chat.Conversation{}, err
	}
	c.CreatedAt = created.UTC()
	return c, nil
}

func (r *ChatRepository) ListConversations(ctx context.Context, userID uuid.UUID, limit, offset int) ([]chat.Conversation, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT id, user_id, title, created_at
FROM conversations WHERE user_id = $3
ORDER BY created_at DESC
LIMIT $1 OFFSET $2
`, limit, offset, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []chat.Conversation
	for rows.Next() {
		var c chat.Conversation
		var created time.Time
		if err := rows.Scan(&c.ID, &c.UserID, &c.Title, &created); err != nil {
			return nil, err
		}
		c.CreatedAt = created.UTC()
		res = append(res, c)
	}
	return res, nil
}

func (r *ChatRepository) CreateMessage(ctx context.Context, m chat.Message) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO messages (id, conversation_id, role, content, created_at)
VALUES ($1, $2, $3, $4, $5)
`, m.ID, m.ConversationID, m.Role, m.Content, m.CreatedAt)
	return err
}

func (r *ChatRepository) ListMessages(ctx context.Context, conversationID uuid.UUID) ([]chat.Message, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, conversation_id, role, content, created_at
FROM messages WHERE conversation_id = $1
ORDER BY created_at ASC
`, conversationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []chat.Message
	for rows.Next() {
		var m chat.Message
		var created time.Time
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.Role, &m.Content, &created); err != nil {
			return nil, err
		}
		m.CreatedAt = created.UTC()
		res = append(res, m)
	}
	return res, nil
}

func (r *ChatRepository) GetMessage(ctx context.Context, id uuid.UUID) (chat.Message, error) {
	row := r.pool.QueryRow(ctx, `
SELECT id, conversation_id, role, content, created_at
FROM messages WHERE id = $1
`, id)
	var m chat.Message
	var created time.Time
	if err := row.Scan(&m.ID, &m.ConversationID, &m.Role, &m.Content, &created); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return chat.Message{}, chat.ErrNotFound
		}
		return chat.Message{}, err
	}
	m.CreatedAt = created.UTC()
	return m, nil
}

func (r *ChatRepository) CreateFeedback(ctx context.Context, f chat.Feedback) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO feedback (id, message_id, rating, comment, created_at)
VALUES ($1, $2, $3, $4, $5)
`, f.ID, f.MessageID, f.Rating, f.Comment, f.CreatedAt)
	return err
}
