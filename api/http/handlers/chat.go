package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Akshita-sr/pepper-AI-Ollama/api/http/presenter"
	"github.com/Akshita-sr/pepper-AI-Ollama/pkg/chat"
)

type ChatHandler struct {
	useCase chat.UseCase
}

func NewChatHandler(useCase chat.UseCase) *ChatHandler {
	return &ChatHandler{useCase: useCase}
}

func currentUserID(c *fiber.Ctx) (uuid.UUID, bool) {
	idStr, _ := c.Locals("userId").(string)
	id, err := uuid.Parse(idStr)
	return id, err == nil
}

// CreateConversation starts a new chat session.
// @Summary Start a conversation
// @Tags    chat
// @Produce json
// @Security BearerAuth
// @Success 201 {object} chat.Conversation
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /conversations [post]
func (h *ChatHandler) CreateConversation(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "invalid token")
	}
	conv, err := h.useCase.StartConversation(c.Context(), userID)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to create conversation")
	}
	return presenter.JSON(c, http.StatusCreated, conv)
}

// ListConversations returns the caller's conversations, newest first.
// @Summary List conversations
// @Tags    chat
// @Produce json
// @Security BearerAuth
// @Param   limit query int false "page size"
// @Param   offset query int false "page offset"
// @Success 200 {array} chat.Conversation
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /conversations [get]
func (h *ChatHandler) ListConversations(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "invalid token")
	}
	limit, offset := parseLimitOffset(c, 50)
	items, err := h.useCase.ListConversations(c.Context(), userID, limit, offset)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to list conversations")
	}
	if items == nil {
		items = []chat.Conversation{}
	}
	return presenter.JSON(c, http.StatusOK, items)
}

// History returns all messages of one conversation in order.
// @Summary Conversation history
// @Tags    chat
// @Produce json
// @Param   id path string true "conversation ID (UUID)"
// @Security BearerAuth
// @Success 200 {array} chat.Message
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /conversations/{id}/messages [get]
func (h *ChatHandler) History(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "invalid token")
	}
	convID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid conversation id")
	}
	msgs, err := h.useCase.History(c.Context(), userID, convID)
	if err != nil {
		return chatError(c, err)
	}
	if msgs == nil {
		msgs = []chat.Message{}
	}
	return presenter.JSON(c, http.StatusOK, msgs)
}

type sendMessageRequest struct {
	Content     string  `json:"content"`
	Model       string  `json:"model,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
	MaxTokens   int     `json:"maxTokens,omitempty"`
	Speak       bool    `json:"speak,omitempty"`
}

// SendMessage stores the user turn and returns the generated assistant turn.
// @Summary Send a message
// @Tags    chat
// @Accept  json
// @Produce json
// @Param   id path string true "conversation ID (UUID)"
// @Param   input body sendMessageRequest true "message payload"
// @Security BearerAuth
// @Success 201 {object} chat.Message
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /conversations/{id}/messages [post]
func (h *ChatHandler) SendMessage(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "invalid token")
	}
	convID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid conversation id")
	}
	var req sendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	msg, err := h.useCase.Send(c.Context(), userID, convID, req.Content, chat.SendOptions{
		Model:       req.Model,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		Speak:       req.Speak,
	})
	if err != nil {
		return chatError(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, msg)
}

type feedbackRequest struct {
	MessageID string `json:"messageId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
}

// LeaveFeedback rates one assistant message.
// @Summary Rate a message
// @Tags    chat
// @Accept  json
// @Produce json
// @Param   input body feedbackRequest true "feedback payload"
// @Security BearerAuth
// @Success 201 {object} chat.Feedback
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /feedback [post]
func (h *ChatHandler) LeaveFeedback(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "invalid token")
	}
	var req feedbackRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	msgID, err := uuid.Parse(req.MessageID)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid message id")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return presenter.Error(c, http.StatusBadRequest, "rating must be between 1 and 5")
	}
	f, err := h.useCase.LeaveFeedback(c.Context(), userID, msgID, req.Rating, req.Comment)
	if err != nil {
		return chatError(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, f)
}

func chatError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, chat.ErrNotFound):
		return presenter.Error(c, http.StatusNotFound, "not found")
	case errors.Is(err, chat.ErrForbidden):
		return presenter.Error(c, http.StatusForbidden, "conversation belongs to another user")
	case errors.Is(err, chat.ErrEmptyMessage):
		return presenter.Error(c, http.StatusBadRequest, "message content is empty")
	default:
		return presenter.Error(c, http.StatusInternalServerError, "internal error")
	}
}
