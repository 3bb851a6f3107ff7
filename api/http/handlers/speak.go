package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Akshita-sr/pepper-AI-Ollama/api/http/presenter"
	"github.com/Akshita-sr/pepper-AI-Ollama/pkg/bridge"
)

// SpeakHandler relays text-to-speech requests to the Pepper bridge.
type SpeakHandler struct {
	bridge *bridge.Client
}

func NewSpeakHandler(client *bridge.Client) *SpeakHandler {
	return &SpeakHandler{bridge: client}
}

type speakRequest struct {
	Text string `json:"text"`
}

// Speak forwards text to the bridge, which cleans and voices it.
// @Summary Make Pepper speak
// @Tags    pepper
// @Accept  json
// @Produce json
// @Param   input body speakRequest true "text payload"
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 502 {object} presenter.ErrorResponse
// @Router  /pepper/speak [post]
func (h *SpeakHandler) Speak(c *fiber.Ctx) error {
	var req speakRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if strings.TrimSpace(req.Text) == "" {
		return presenter.Error(c, http.StatusBadRequest, "text is required")
	}
	if err := h.bridge.Speak(c.Context(), req.Text); err != nil {
		return presenter.Error(c, http.StatusBadGateway, "bridge is not reachable")
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"status": "ok", "spoken": true})
}

// Status reports whether the bridge and the robot are reachable.
// @Summary Bridge status
// @Tags    pepper
// @Produce json
// @Security BearerAuth
// @Success 200 {object} bridge.Status
// @Failure 502 {object} presenter.ErrorResponse
// @Router  /pepper/status [get]
func (h *SpeakHandler) Status(c *fiber.Ctx) error {
	st, err := h.bridge.GetStatus(c.Context())
	if err != nil {
		return presenter.Error(c, http.StatusBadGateway, "bridge is not reachable")
	}
	return presenter.JSON(c, http.StatusOK, st)
}
