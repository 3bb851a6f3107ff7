// Package rag implements retrieval-augmented document Q&A on top of Ollama
// embeddings and an in-memory vector index.
package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/Akshita-sr/pepper-AI-Ollama/pkg/llm"
)

const qaPromptTemplate = `Context: %s
Question: %s
Answer concisely based on the context provided:`

// Answer is the model's reply plus the chunks it was grounded on.
type Answer struct {
	Text    string   `json:"answer"`
	Sources []Result `json:"-"`
}

// Service chunks, embeds and queries documents.
type Service struct {
	embedder     llm.Embedder
	model        llm.ChatModel
	store        *Store
	chunkSize    int
	chunkOverlap int
	topK         int
}

func NewService(embedder llm.Embedder, model llm.ChatModel, store *Store) *Service {
	return &Service{
		embedder:     embedder,
		model:        model,
		store:        store,
		chunkSize:    1000,
		chunkOverlap: 200,
		topK:         4,
	}
}

// Ingest splits the text, embeds every chunk and indexes it under owner; an
// empty owner makes the document visible to everyone. Returns the number of
// chunks stored.
func (s *Service) Ingest(ctx context.Context, owner, documentID, source, text string) (int, error) {
	pieces := SplitText(text, s.chunkSize, s.chunkOverlap)
	if len(pieces) == 0 {
		return 0, nil
	}
	embeddings, err := s.embedder.EmbedBatch(ctx, pieces)
	if err != nil {
		return 0, fmt.Errorf("embedding document %s: %w", source, err)
	}
	chunks := make([]Chunk, len(pieces))
	for i, content := range pieces {
		chunks[i] = Chunk{
			ID:         fmt.Sprintf("%s:%d", documentID, i),
			DocumentID: documentID,
			Owner:      owner,
			Source:     source,
			Content:    content,
			Index:      i,
			Embedding:  embeddings[i],
		}
	}
	if err := s.store.Add(ctx, chunks); err != nil {
		return 0, err
	}
	return len(chunks), nil
}

// Ask embeds the question, retrieves the most similar chunks the owner may
// see and lets the model answer from that context only.
func (s *Service) Ask(ctx context.Context, owner, question string, opts llm.GenerateOptions) (Answer, error) {
	embedding, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return Answer{}, fmt.Errorf("embedding question: %w", err)
	}
	results, err := s.store.Search(ctx, embedding, s.topK, owner)
	if err != nil {
		return Answer{}, err
	}

	contexts := make([]string, len(results))
	for i, r := range results {
		contexts[i] = r.Chunk.Content
	}
	prompt := fmt.Sprintf(qaPromptTemplate, strings.Join(contexts, "\n\n"), question)

	text, err := s.model.Generate(ctx, prompt, opts)
	if err != nil {
		return Answer{}, err
	}
	return Answer{Text: strings.TrimSpace(text), Sources: results}, nil
}

// Forget drops a document from the index.
func (s *Service) Forget(ctx context.Context, documentID string) error {
	return s.store.Delete(ctx, documentID)
}

// SplitText cuts text into chunks of roughly size characters with the given
// overlap, preferring word boundaries.
func SplitText(text string, size, overlap int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if size <= 0 {
		size = 1000
	}
	if overlap < 0 || overlap >= size {
		overlap = 0
	}

	var chunks []string
	start := 0
	for start < len(text) {
		end := start + size
		if end > len(text) {
			end = len(text)
		}
		// Try to break at word boundary
		if end < len(text) {
			if lastSpace := strings.LastIndex(text[start:end], " "); lastSpace > 0 {
				end = start + lastSpace
			}
		}
		if chunk := strings.TrimSpace(text[start:end]); chunk != "" {
			chunks = append(chunks, chunk)
		}
		if end == len(text) {
			break
		}
		next := end - overlap
		if next <= start {
			next = start + 1
		}
		start = next
	}
	return chunks
}
