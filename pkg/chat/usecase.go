package chat

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Akshita-sr/pepper-AI-Ollama/pkg/llm"
)

// Speaker voices assistant replies on the robot. Implemented by the bridge client.
type Speaker interface {
	Speak(ctx context.Context, text string) error
}

// SendOptions tunes a single exchange.
type SendOptions struct {
	Model       string
	Temperature float64
	MaxTokens   int
	Speak       bool
}

// UseCase is the application service for chat sessions.
type UseCase interface {
	StartConversation(ctx context.Context, userID uuid.UUID) (Conversation, error)
	ListConversations(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Conversation, error)
	History(ctx context.Context, userID, conversationID uuid.UUID) ([]Message, error)
	Send(ctx context.Context, userID, conversationID uuid.UUID, content string, opts SendOptions) (Message, error)
	LeaveFeedback(ctx context.Context, userID, messageID uuid.UUID, rating int, comment string) (Feedback, error)
}

type service struct {
	repo        Repository
	model       llm.ChatModel
	speaker     Speaker
	temperature float64
	maxTokens   int
	log         *slog.Logger
}

// NewService wires the chat use case. speaker may be nil when no bridge is configured.
func NewService(repo Repository, model llm.ChatModel, speaker Speaker, temperature float64, maxTokens int, log *slog.Logger) UseCase {
	if log == nil {
		log = slog.Default()
	}
	return &service{
		repo:        repo,
		model:       model,
		speaker:     speaker,
		temperature: temperature,
		maxTokens:   maxTokens,
		log:         log,
	}
}

func (s *service) StartConversation(ctx context.Context, userID uuid.UUID) (Conversation, error) {
	now := time.Now().UTC()
	conv := Conversation{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     "Chat " + now.Format("2006-01-02 15:04"),
		CreatedAt: now,
	}
	if err := s.repo.CreateConversation(ctx, conv); err != nil {
		return Conversation{}, err
	}
	return conv, nil
}

func (s *service) ListConversations(ctx context.Context, userID uuid.UUID, limit, offset int) ([]Conversation, error) {
	return s.repo.ListConversations(ctx, userID, limit, offset)
}

func (s *service) History(ctx context.Context, userID, conversationID uuid.UUID) ([]Message, error) {
	if _, err := s.ownedConversation(ctx, userID, conversationID); err != nil {
		return nil, err
	}
	return s.repo.ListMessages(ctx, conversationID)
}

// Send stores the user turn, generates the assistant reply from the full
// conversation history and stores it too. A generation failure is recorded as
// the assistant turn rather than losing the exchange.
func (s *service) Send(ctx context.Context, userID, conversationID uuid.UUID, content string, opts SendOptions) (Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return Message{}, ErrEmptyMessage
	}
	if _, err := s.ownedConversation(ctx, userID, conversationID); err != nil {
		return Message{}, err
	}

	history, err := s.repo.ListMessages(ctx, conversationID)
	if err != nil {
		return Message{}, err
	}

	userMsg := Message{
		ID:             uuid.New(),
		ConversationID: conversationID,
		Role:           RoleUser,
		Content:        content,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.repo.CreateMessage(ctx, userMsg); err != nil {
		return Message{}, err
	}

	genOpts := llm.GenerateOptions{
		Model:       opts.Model,
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	}
	if genOpts.Temperature == 0 {
		genOpts.Temperature = s.temperature
	}
	if genOpts.MaxTokens == 0 {
		genOpts.MaxTokens = s.maxTokens
	}

	reply, genErr := s.model.Generate(ctx, BuildPrompt(history, content), genOpts)
	if genErr != nil {
		s.log.Error("generation failed", "conversation", conversationID, "error", genErr)
		reply = "Error generating response: " + genErr.Error()
	}
	reply = strings.TrimSpace(reply)

	assistantMsg := Message{
		ID:             uuid.New(),
		ConversationID: conversationID,
		Role:           RoleAssistant,
		Content:        reply,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.repo.CreateMessage(ctx, assistantMsg); err != nil {
		return Message{}, err
	}

	// Voicing is best-effort: a dead bridge must not fail the exchange.
	if opts.Speak && genErr == nil && s.speaker != nil {
		if err := s.speaker.Speak(ctx, reply); err != nil {
			s.log.Warn("bridge speak failed", "error", err)
		}
	}
	return assistantMsg, nil
}

// LeaveFeedback rates a message; only the conversation's owner may rate it.
func (s *service) LeaveFeedback(ctx context.Context, userID, messageID uuid.UUID, rating int, comment string) (Feedback, error) {
	msg, err := s.repo.GetMessage(ctx, messageID)
	if err != nil {
		return Feedback{}, err
	}
	if _, err := s.ownedConversation(ctx, userID, msg.ConversationID); err != nil {
		return Feedback{}, err
	}
	f := Feedback{
		ID:        uuid.New(),
		MessageID: messageID,
		Rating:    rating,
		Comment:   strings.TrimSpace(comment),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.CreateFeedback(ctx, f); err != nil {
		return Feedback{}, err
	}
	return f, nil
}

func (s *service) ownedConversation(ctx context.Context, userID, conversationID uuid.UUID) (Conversation, error) {
	conv, err := s.repo.GetConversation(ctx, conversationID)
	if err != nil {
		return Conversation{}, err
	}
	if conv.UserID != userID {
		return Conversation{}, ErrForbidden
	}
	return conv, nil
}

// BuildPrompt renders prior turns plus the new user message as alternating
// "User:"/"Assistant:" lines, ending with an open assistant turn.
func BuildPrompt(history []Message, userMessage string) string {
	var b strings.Builder
	for _, msg := range history {
		if msg.Role == RoleUser {
			b.WriteString("User: ")
		} else {
			b.WriteString("Assistant: ")
		}
		b.WriteString(msg.Content)
		b.WriteString("\n")
	}
	b.WriteString("User: ")
	b.WriteString(userMessage)
	b.WriteString("\nAssistant:")
	return b.String()
}
