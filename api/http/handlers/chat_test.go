package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Akshita-sr/pepper-AI-Ollama/pkg/chat"
)

type stubChatUseCase struct {
	conv         chat.Conversation
	msg          chat.Message
	sentOpts     chat.SendOptions
	feedbackUser uuid.UUID
	err          error
}

func (s *stubChatUseCase) StartConversation(_ context.Context, userID uuid.UUID) (chat.Conversation, error) {
	return s.conv, s.err
}

func (s *stubChatUseCase) ListConversations(_ context.Context, userID uuid.UUID, limit, offset int) ([]chat.Conversation, error) {
	return []chat.Conversation{s.conv}, s.err
}

func (s *stubChatUseCase) History(_ context.Context, userID, conversationID uuid.UUID) ([]chat.Message, error) {
	return []chat.Message{s.msg}, s.err
}

func (s *stubChatUseCase) Send(_ context.Context, userID, conversationID uuid.UUID, content string, opts chat.SendOptions) (chat.Message, error) {
	s.sentOpts = opts
	return s.msg, s.err
}

func (s *stubChatUseCase) LeaveFeedback(_ context.Context, userID, messageID uuid.UUID, rating int, comment string) (chat.Feedback, error) {
	s.feedbackUser = userID
	return chat.Feedback{ID: uuid.New(), MessageID: messageID, Rating: rating, Comment: comment}, s.err
}

// withUser mimics the JWT middleware by injecting the user id local.
func withUser(userID uuid.UUID) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("userId", userID.String())
		return c.Next()
	}
}

func chatApp(uc chat.UseCase, userID uuid.UUID) *fiber.App {
	app := fiber.New()
	h := NewChatHandler(uc)
	app.Use(withUser(userID))
	app.Post("/conversations", h.CreateConversation)
	app.Get("/conversations/:id/messages", h.History)
	app.Post("/conversations/:id/messages", h.SendMessage)
	app.Post("/feedback", h.LeaveFeedback)
	return app
}

func TestCreateConversation(t *testing.T) {
	userID := uuid.New()
	conv := chat.Conversation{ID: uuid.New(), UserID: userID, Title: "Chat 2026-01-01 10:00"}
	app := chatApp(&stubChatUseCase{conv: conv}, userID)

	resp := postJSON(t, app, "/conversations", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var got chat.Conversation
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Equal(t, conv.ID, got.ID)
}

func TestSendMessage_PassesOptions(t *testing.T) {
	userID := uuid.New()
	uc := &stubChatUseCase{msg: chat.Message{ID: uuid.New(), Role: chat.RoleAssistant, Content: "hi"}}
	app := chatApp(uc, userID)

	resp := postJSON(t, app, "/conversations/"+uuid.NewString()+"/messages", fiber.Map{
		"content":     "hello",
		"model":       "mistral",
		"temperature": 0.9,
		"speak":       true,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, "mistral", uc.sentOpts.Model)
	require.InDelta(t, 0.9, uc.sentOpts.Temperature, 1e-9)
	require.True(t, uc.sentOpts.Speak)
}

func TestSendMessage_EmptyContent(t *testing.T) {
	userID := uuid.New()
	app := chatApp(&stubChatUseCase{err: chat.ErrEmptyMessage}, userID)

	resp := postJSON(t, app, "/conversations/"+uuid.NewString()+"/messages", fiber.Map{"content": ""})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSendMessage_ForeignConversation(t *testing.T) {
	userID := uuid.New()
	app := chatApp(&stubChatUseCase{err: chat.ErrForbidden}, userID)

	resp := postJSON(t, app, "/conversations/"+uuid.NewString()+"/messages", fiber.Map{"content": "hi"})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestHistory_BadID(t *testing.T) {
	app := chatApp(&stubChatUseCase{}, uuid.New())

	req := httptest.NewRequest(http.MethodGet, "/conversations/not-a-uuid/messages", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLeaveFeedback_RatingRange(t *testing.T) {
	app := chatApp(&stubChatUseCase{}, uuid.New())

	resp := postJSON(t, app, "/feedback", fiber.Map{"messageId": uuid.NewString(), "rating": 6})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = postJSON(t, app, "/feedback", fiber.Map{"messageId": uuid.NewString(), "rating": 5})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestLeaveFeedback_PassesCaller(t *testing.T) {
	userID := uuid.New()
	uc := &stubChatUseCase{}
	app := chatApp(uc, userID)

	resp := postJSON(t, app, "/feedback", fiber.Map{"messageId": uuid.NewString(), "rating": 4})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Equal(t, userID, uc.feedbackUser)
}

func TestLeaveFeedback_ForeignMessage(t *testing.T) {
	app := chatApp(&stubChatUseCase{err: chat.ErrForbidden}, uuid.New())

	resp := postJSON(t, app, "/feedback", fiber.Map{"messageId": uuid.NewString(), "rating": 3})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}
