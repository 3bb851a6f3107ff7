package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Akshita-sr/pepper-AI-Ollama/api/http/presenter"
	"github.com/Akshita-sr/pepper-AI-Ollama/pkg/document"
	"github.com/Akshita-sr/pepper-AI-Ollama/pkg/llm"
	"github.com/Akshita-sr/pepper-AI-Ollama/pkg/rag"
	"github.com/Akshita-sr/pepper-AI-Ollama/pkg/storage/object"
)

// DocumentsHandler stores knowledge files and answers questions over them.
type DocumentsHandler struct {
	repo     document.Repository
	objects  object.Store
	rag      *rag.Service
	maxBytes int64
	log      *slog.Logger
}

func NewDocumentsHandler(repo document.Repository, objects object.Store, ragSvc *rag.Service, maxBytes int64, log *slog.Logger) *DocumentsHandler {
	if maxBytes <= 0 {
		maxBytes = 15 << 20 // 15MB
	}
	if log == nil {
		log = slog.Default()
	}
	return &DocumentsHandler{repo: repo, objects: objects, rag: ragSvc, maxBytes: maxBytes, log: log}
}

// Upload stores a knowledge file, extracts its text and indexes it.
// @Summary Upload a document
// @Description Accepts PDF/TXT/CSV/MD, stores the file and indexes its text for Q&A.
// @Tags        documents
// @Accept      multipart/form-data
// @Produce     json
// @Param       file formData file true "knowledge file"
// @Security    BearerAuth
// @Success     201 {object} document.Document
// @Failure     400 {object} presenter.ErrorResponse
// @Failure     401 {object} presenter.ErrorResponse
// @Failure     500 {object} presenter.ErrorResponse
// @Router      /documents [post]
func (h *DocumentsHandler) Upload(c *fiber.Ctx) error {
	ownerID, ok := currentUserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "invalid token")
	}
	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		return presenter.Error(c, http.StatusBadRequest, "file is required (pdf, txt, csv or md)")
	}
	if !document.Supported(fh.Filename) {
		return presenter.Error(c, http.StatusBadRequest, document.ErrUnsupportedFormat.Error())
	}
	file, err := fh.Open()
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "failed to open uploaded file")
	}
	defer file.Close()
	data, err := readAtMost(file, h.maxBytes)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, err.Error())
	}

	text, err := document.ExtractText(fh.Filename, data)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, fmt.Sprintf("failed to parse document: %v", err))
	}
	if strings.TrimSpace(text) == "" {
		return presenter.Error(c, http.StatusBadRequest, document.ErrEmptyDocument.Error())
	}

	id := uuid.New()
	key := id.String() + strings.ToLower(filepath.Ext(fh.Filename))
	if err := h.objects.Put(c.Context(), key, bytes.NewReader(data), int64(len(data)), fh.Header.Get("Content-Type")); err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to store file")
	}

	chunks, err := h.rag.Ingest(c.Context(), ownerID.String(), id.String(), fh.Filename, text)
	if err != nil {
		h.log.Error("indexing failed", "document", id, "error", err)
		return presenter.Error(c, http.StatusInternalServerError, "failed to index document")
	}

	meta := document.Document{
		ID:         id,
		OwnerID:    ownerID,
		Filename:   fh.Filename,
		MimeType:   fh.Header.Get("Content-Type"),
		Size:       int64(len(data)),
		StorageKey: key,
		Chunks:     chunks,
		CreatedAt:  time.Now().UTC(),
	}
	if err := h.repo.Create(c.Context(), meta); err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to save metadata")
	}
	if err := h.repo.SaveParsed(c.Context(), document.Parsed{DocumentID: id, OwnerID: ownerID, Text: text}); err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to save parsed text")
	}
	return presenter.JSON(c, http.StatusCreated, meta)
}

// List returns the caller's documents.
// @Summary List documents
// @Tags    documents
// @Produce json
// @Security BearerAuth
// @Param   limit query int false "page size"
// @Param   offset query int false "page offset"
// @Success 200 {array} document.Document
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /documents [get]
func (h *DocumentsHandler) List(c *fiber.Ctx) error {
	ownerID, ok := currentUserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "invalid token")
	}
	limit, offset := parseLimitOffset(c, 50)
	items, err := h.repo.ListByOwner(c.Context(), ownerID, limit, offset)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, "failed to list documents")
	}
	if items == nil {
		items = []document.Document{}
	}
	return presenter.JSON(c, http.StatusOK, items)
}

// Get returns a single document's metadata.
// @Summary Get a document
// @Tags    documents
// @Produce json
// @Param   id path string true "document ID (UUID)"
// @Security BearerAuth
// @Success 200 {object} document.Document
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /documents/{id} [get]
func (h *DocumentsHandler) Get(c *fiber.Ctx) error {
	ownerID, ok := currentUserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "invalid token")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid id")
	}
	meta, err := h.repo.GetForOwner(c.Context(), ownerID, id)
	if err != nil {
		return presenter.Error(c, http.StatusNotFound, "document not found")
	}
	return presenter.JSON(c, http.StatusOK, meta)
}

// Download streams the original uploaded file back to its owner.
// @Summary Download a document
// @Tags    documents
// @Produce octet-stream
// @Param   id path string true "document ID (UUID)"
// @Security BearerAuth
// @Success 200 {file} file
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /documents/{id}/file [get]
func (h *DocumentsHandler) Download(c *fiber.Ctx) error {
	ownerID, ok := currentUserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "invalid token")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid id")
	}
	meta, err := h.repo.GetForOwner(c.Context(), ownerID, id)
	if err != nil {
		return presenter.Error(c, http.StatusNotFound, "document not found")
	}
	rc, err := h.objects.Get(c.Context(), meta.StorageKey)
	if err != nil {
		h.log.Error("reading stored file failed", "key", meta.StorageKey, "error", err)
		return presenter.Error(c, http.StatusInternalServerError, "failed to read stored file")
	}
	mime := meta.MimeType
	if mime == "" {
		mime = fiber.MIMEOctetStream
	}
	c.Set(fiber.HeaderContentType, mime)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", meta.Filename))
	return c.SendStream(rc, int(meta.Size))
}

// Delete removes a document, its stored file and its index entries.
// @Summary Delete a document
// @Tags    documents
// @Param   id path string true "document ID (UUID)"
// @Security BearerAuth
// @Success 204 {object} nil
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /documents/{id} [delete]
func (h *DocumentsHandler) Delete(c *fiber.Ctx) error {
	ownerID, ok := currentUserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "invalid token")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid id")
	}
	meta, err := h.repo.DeleteForOwner(c.Context(), ownerID, id)
	if err != nil {
		if errors.Is(err, document.ErrNotFound) {
			return presenter.Error(c, http.StatusNotFound, "document not found")
		}
		return presenter.Error(c, http.StatusInternalServerError, "failed to delete document")
	}
	if err := h.objects.Remove(c.Context(), meta.StorageKey); err != nil {
		h.log.Warn("removing stored file failed", "key", meta.StorageKey, "error", err)
	}
	if err := h.rag.Forget(c.Context(), id.String()); err != nil {
		h.log.Warn("dropping index entries failed", "document", id, "error", err)
	}
	return c.SendStatus(http.StatusNoContent)
}

type askRequest struct {
	Question    string  `json:"question"`
	Model       string  `json:"model,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
	MaxTokens   int     `json:"maxTokens,omitempty"`
}

type askResponse struct {
	Answer  string   `json:"answer"`
	Sources []string `json:"sources"`
}

// Ask answers a question from the indexed documents.
// @Summary Ask the documents
// @Tags    documents
// @Accept  json
// @Produce json
// @Param   input body askRequest true "question payload"
// @Security BearerAuth
// @Success 200 {object} askResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 502 {object} presenter.ErrorResponse
// @Router  /documents/ask [post]
func (h *DocumentsHandler) Ask(c *fiber.Ctx) error {
	ownerID, ok := currentUserID(c)
	if !ok {
		return presenter.Error(c, http.StatusUnauthorized, "invalid token")
	}
	var req askRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, "invalid JSON payload")
	}
	if strings.TrimSpace(req.Question) == "" {
		return presenter.Error(c, http.StatusBadRequest, "question is required")
	}
	answer, err := h.rag.Ask(c.Context(), ownerID.String(), req.Question, llm.GenerateOptions{
		Model:       req.Model,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		h.log.Error("document Q&A failed", "error", err)
		return presenter.Error(c, http.StatusBadGateway, "failed to answer question")
	}
	seen := map[string]bool{}
	var sources []string
	for _, r := range answer.Sources {
		if !seen[r.Chunk.Source] {
			seen[r.Chunk.Source] = true
			sources = append(sources, r.Chunk.Source)
		}
	}
	if sources == nil {
		sources = []string{}
	}
	return presenter.JSON(c, http.StatusOK, askResponse{Answer: answer.Text, Sources: sources})
}

func readAtMost(f multipart.File, max int64) ([]byte, error) {
	limited := io.LimitReader(f, max+1)
	b, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if int64(len(b)) > max {
		return nil, fmt.Errorf("file too large: limit is %d bytes", max)
	}
	return b, nil
}
