package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Akshita-sr/pepper-AI-Ollama/api/http/presenter"
	"github.com/Akshita-sr/pepper-AI-Ollama/pkg/cache"
	"github.com/Akshita-sr/pepper-AI-Ollama/pkg/llm/ollama"
)

const (
	tagsCacheKey  = "models:tags"
	tagsCacheTTL  = 30 * time.Second
	pullKeyPrefix = "models:pull:"
)

// ModelsHandler manages the local Ollama model library.
type ModelsHandler struct {
	client *ollama.Client
	cache  cache.Store
	log    *slog.Logger
}

func NewModelsHandler(client *ollama.Client, store cache.Store, log *slog.Logger) *ModelsHandler {
	if log == nil {
		log = slog.Default()
	}
	return &ModelsHandler{client: client, cache: store, log: log}
}

// List returns installed models, cached briefly to spare Ollama.
// @Summary List installed models
// @Tags    models
// @Produce json
// @Security BearerAuth
// @Success 200 {array} ollama.ModelInfo
// @Failure 502 {object} presenter.ErrorResponse
// @Router  /models [get]
func (h *ModelsHandler) List(c *fiber.Ctx) error {
	if raw, ok := h.cache.Get(c.Context(), tagsCacheKey); ok {
		var models []ollama.ModelInfo
		if err := json.Unmarshal([]byte(raw), &models); err == nil {
			return presenter.JSON(c, http.StatusOK, models)
		}
	}
	models, err := h.client.Tags(c.Context())
	if err != nil {
		return presenter.Error(c, http.StatusBadGateway, "ollama is not reachable")
	}
	if models == nil {
		models = []ollama.ModelInfo{}
	}
	if raw, err := json.Marshal(models); err == nil {
		if err := h.cache.Set(c.Context(), tagsCacheKey, string(raw), tagsCacheTTL); err != nil {
			h.log.Warn("caching model tags failed", "error", err)
		}
	}
	return presenter.JSON(c, http.StatusOK, models)
}

type pullRequest struct {
	Name string `json:"name"`
}

// pullState is what the progress endpoint reports while a pull runs.
type pullState struct {
	Name      string  `json:"name"`
	Status    string  `json:"status"`
	Fraction  float64 `json:"fraction"`
	Completed int64   `json:"completed"`
	Total     int64   `json:"total"`
	Done      bool    `json:"done"`
	Error     string  `json:"error,omitempty"`
}

// Pull starts downloading a model in the background.
// @Summary Pull a model
// @Tags    models
// @Accept  json
// @Produce json
// @Param   input body pullRequest true "model name"
// @Security BearerAuth
// @Success 202 {object} map[string]string
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /models/pull [post]
func (h *ModelsHandler) Pull(c *fiber.Ctx) error {
	var req pullRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return presenter.Error(c, http.StatusBadRequest, "model name is required")
	}

	h.setPullState(context.Background(), pullState{Name: name, Status: "starting"})
	go h.runPull(name)

	return presenter.JSON(c, http.StatusAccepted, fiber.Map{
		"name":   name,
		"status": "pulling",
	})
}

// runPull drives the download and mirrors progress into the cache so the
// progress endpoint can poll it.
func (h *ModelsHandler) runPull(name string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	last := 0.0
	err := h.client.Pull(ctx, name, func(p ollama.PullProgress) {
		f := p.Fraction()
		if f < last {
			f = last // progress never goes backwards
		}
		last = f
		h.setPullState(ctx, pullState{
			Name:      name,
			Status:    p.Status,
			Fraction:  f,
			Completed: p.Completed,
			Total:     p.Total,
		})
	})
	final := pullState{Name: name, Status: "success", Fraction: 1, Done: true}
	if err != nil {
		h.log.Error("model pull failed", "model", name, "error", err)
		final = pullState{Name: name, Status: "error", Fraction: last, Done: true, Error: err.Error()}
	}
	h.setPullState(context.Background(), final)
	// The library changed; drop the cached tags listing.
	_ = h.cache.Del(context.Background(), tagsCacheKey)
}

func (h *ModelsHandler) setPullState(ctx context.Context, st pullState) {
	raw, err := json.Marshal(st)
	if err != nil {
		return
	}
	if err := h.cache.Set(ctx, pullKeyPrefix+st.Name, string(raw), time.Hour); err != nil {
		h.log.Warn("storing pull progress failed", "error", err)
	}
}

// PullProgress reports the state of a background pull.
// @Summary Pull progress
// @Tags    models
// @Produce json
// @Param   name path string true "model name"
// @Security BearerAuth
// @Success 200 {object} pullState
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /models/pull/{name} [get]
func (h *ModelsHandler) PullProgress(c *fiber.Ctx) error {
	name := c.Params("name")
	raw, ok := h.cache.Get(c.Context(), pullKeyPrefix+name)
	if !ok {
		return presenter.Error(c, http.StatusNotFound, "no pull in progress for this model")
	}
	var st pullState
	if err := json.Unmarshal([]byte(raw), &st); err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "corrupt pull state")
	}
	return presenter.JSON(c, http.StatusOK, st)
}

// Delete removes an installed model.
// @Summary Delete a model
// @Tags    models
// @Param   name path string true "model name"
// @Security BearerAuth
// @Success 204 {object} nil
// @Failure 502 {object} presenter.ErrorResponse
// @Router  /models/{name} [delete]
func (h *ModelsHandler) Delete(c *fiber.Ctx) error {
	name := c.Params("name")
	if err := h.client.Delete(c.Context(), name); err != nil {
		return presenter.Error(c, http.StatusBadGateway, "failed to delete model")
	}
	_ = h.cache.Del(c.Context(), tagsCacheKey)
	return c.SendStatus(http.StatusNoContent)
}
