package chat

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Akshita-sr/pepper-AI-Ollama/pkg/llm"
)

type mockRepo struct {
	conversations map[uuid.UUID]Conversation
	messages      map[uuid.UUID][]Message
	feedback      []Feedback
	createErr     error
}

func newMockRepo() *mockRepo {
	return &mockRepo{
		conversations: map[uuid.UUID]Conversation{},
		messages:      map[uuid.UUID][]Message{},
	}
}

func (m *mockRepo) CreateConversation(_ context.Context, c Conversation) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.conversations[c.ID] = c
	return nil
}

func (m *mockRepo) GetConversation(_ context.Context, id uuid.UUID) (Conversation, error) {
	c, ok := m.conversations[id]
	if !ok {
		return Conversation{}, ErrNotFound
	}
	return c, nil
}

func (m *mockRepo) ListConversations(_ context.Context, userID uuid.UUID, _, _ int) ([]Conversation, error) {
	var out []Conversation
	for _, c := range m.conversations {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockRepo) CreateMessage(_ context.Context, msg Message) error {
	m.messages[msg.ConversationID] = append(m.messages[msg.ConversationID], msg)
	return nil
}

func (m *mockRepo) ListMessages(_ context.Context, conversationID uuid.UUID) ([]Message, error) {
	return m.messages[conversationID], nil
}

func (m *mockRepo) GetMessage(_ context.Context, id uuid.UUID) (Message, error) {
	for _, msgs := range m.messages {
		for _, msg := range msgs {
			if msg.ID == id {
				return msg, nil
			}
		}
	}
	return Message{}, ErrNotFound
}

func (m *mockRepo) CreateFeedback(_ context.Context, f Feedback) error {
	m.feedback = append(m.feedback, f)
	return nil
}

type mockModel struct {
	reply   string
	err     error
	prompts []string
	opts    []llm.GenerateOptions
}

func (m *mockModel) Generate(_ context.Context, prompt string, opts llm.GenerateOptions) (string, error) {
	m.prompts = append(m.prompts, prompt)
	m.opts = append(m.opts, opts)
	return m.reply, m.err
}

type mockSpeaker struct {
	spoken []string
	err    error
}

func (m *mockSpeaker) Speak(_ context.Context, text string) error {
	m.spoken = append(m.spoken, text)
	return m.err
}

func TestSend_SavesBothTurns(t *testing.T) {
	repo := newMockRepo()
	model := &mockModel{reply: "Hi! I am Pepper."}
	svc := NewService(repo, model, nil, 0.3, 1000, nil)

	userID := uuid.New()
	conv, err := svc.StartConversation(context.Background(), userID)
	require.NoError(t, err)

	reply, err := svc.Send(context.Background(), userID, conv.ID, "hello", SendOptions{})
	require.NoError(t, err)
	require.Equal(t, RoleAssistant, reply.Role)
	require.Equal(t, "Hi! I am Pepper.", reply.Content)

	msgs, err := svc.History(context.Background(), userID, conv.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	require.Equal(t, RoleUser, msgs[0].Role)
	require.Equal(t, "hello", msgs[0].Content)
}

func TestSend_PromptIncludesHistory(t *testing.T) {
	repo := newMockRepo()
	model := &mockModel{reply: "second answer"}
	svc := NewService(repo, model, nil, 0.3, 1000, nil)

	userID := uuid.New()
	conv, err := svc.StartConversation(context.Background(), userID)
	require.NoError(t, err)

	model.reply = "first answer"
	_, err = svc.Send(context.Background(), userID, conv.ID, "first question", SendOptions{})
	require.NoError(t, err)

	model.reply = "second answer"
	_, err = svc.Send(context.Background(), userID, conv.ID, "second question", SendOptions{})
	require.NoError(t, err)

	require.Len(t, model.prompts, 2)
	last := model.prompts[1]
	require.Contains(t, last, "User: first question\n")
	require.Contains(t, last, "Assistant: first answer\n")
	require.Contains(t, last, "User: second question\nAssistant:")
}

func TestSend_DefaultsApplied(t *testing.T) {
	repo := newMockRepo()
	model := &mockModel{reply: "ok"}
	svc := NewService(repo, model, nil, 0.3, 1000, nil)

	userID := uuid.New()
	conv, _ := svc.StartConversation(context.Background(), userID)
	_, err := svc.Send(context.Background(), userID, conv.ID, "hi", SendOptions{})
	require.NoError(t, err)
	require.Equal(t, 0.3, model.opts[0].Temperature)
	require.Equal(t, 1000, model.opts[0].MaxTokens)

	_, err = svc.Send(context.Background(), userID, conv.ID, "hi", SendOptions{Temperature: 0.9, MaxTokens: 50})
	require.NoError(t, err)
	require.Equal(t, 0.9, model.opts[1].Temperature)
	require.Equal(t, 50, model.opts[1].MaxTokens)
}

func TestSend_GenerationErrorStored(t *testing.T) {
	repo := newMockRepo()
	model := &mockModel{err: errors.New("ollama down")}
	svc := NewService(repo, model, nil, 0.3, 1000, nil)

	userID := uuid.New()
	conv, _ := svc.StartConversation(context.Background(), userID)
	reply, err := svc.Send(context.Background(), userID, conv.ID, "hi", SendOptions{})
	require.NoError(t, err)
	require.Contains(t, reply.Content, "Error generating response")

	msgs, _ := svc.History(context.Background(), userID, conv.ID)
	require.Len(t, msgs, 2)
}

func TestSend_OtherUsersConversationForbidden(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, &mockModel{reply: "ok"}, nil, 0.3, 1000, nil)

	owner := uuid.New()
	conv, _ := svc.StartConversation(context.Background(), owner)

	_, err := svc.Send(context.Background(), uuid.New(), conv.ID, "hi", SendOptions{})
	require.ErrorIs(t, err, ErrForbidden)

	_, err = svc.History(context.Background(), uuid.New(), conv.ID)
	require.ErrorIs(t, err, ErrForbidden)
}

func TestSend_SpeakIsBestEffort(t *testing.T) {
	repo := newMockRepo()
	speaker := &mockSpeaker{err: errors.New("bridge down")}
	svc := NewService(repo, &mockModel{reply: "spoken text"}, speaker, 0.3, 1000, nil)

	userID := uuid.New()
	conv, _ := svc.StartConversation(context.Background(), userID)
	reply, err := svc.Send(context.Background(), userID, conv.ID, "hi", SendOptions{Speak: true})
	require.NoError(t, err)
	require.Equal(t, "spoken text", reply.Content)
	require.Equal(t, []string{"spoken text"}, speaker.spoken)
}

func TestLeaveFeedback(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, &mockModel{reply: "answer"}, nil, 0.3, 1000, nil)

	userID := uuid.New()
	conv, _ := svc.StartConversation(context.Background(), userID)
	reply, _ := svc.Send(context.Background(), userID, conv.ID, "hi", SendOptions{})

	f, err := svc.LeaveFeedback(context.Background(), userID, reply.ID, 1, "helpful")
	require.NoError(t, err)
	require.Equal(t, reply.ID, f.MessageID)
	require.Len(t, repo.feedback, 1)

	_, err = svc.LeaveFeedback(context.Background(), userID, uuid.New(), 1, "")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLeaveFeedback_OtherUsersMessageForbidden(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, &mockModel{reply: "answer"}, nil, 0.3, 1000, nil)

	owner := uuid.New()
	conv, _ := svc.StartConversation(context.Background(), owner)
	reply, _ := svc.Send(context.Background(), owner, conv.ID, "hi", SendOptions{})

	_, err := svc.LeaveFeedback(context.Background(), uuid.New(), reply.ID, 5, "")
	require.ErrorIs(t, err, ErrForbidden)
	require.Empty(t, repo.feedback)
}

func TestStartConversation_Title(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, &mockModel{}, nil, 0.3, 1000, nil)

	conv, err := svc.StartConversation(context.Background(), uuid.New())
	require.NoError(t, err)
	require.Regexp(t, `^Chat \d{4}-\d{2}-\d{2} \d{2}:\d{2}$`, conv.Title)
}
