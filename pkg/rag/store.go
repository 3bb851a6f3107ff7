package rag

import (
	"context"
	"math"
	"sort"
	"sync"
)

// Chunk is one embedded slice of a document. Owner is the uploading user's
// id; an empty Owner marks shared knowledge visible to everyone.
type Chunk struct {
	ID         string
	DocumentID string
	Owner      string
	Source     string // original filename, for citation
	Content    string
	Index      int
	Embedding  []float32
}

// Result is a search hit with its similarity score.
type Result struct {
	Chunk Chunk
	Score float64
}

// Store is an in-memory vector store over cosine similarity. The authoritative
// copy of parsed text lives in Postgres; this index is rebuilt on boot.
type Store struct {
	mu     sync.RWMutex
	chunks map[string]Chunk
	docs   map[string][]string // docID -> chunk IDs
}

func NewStore() *Store {
	return &Store{
		chunks: make(map[string]Chunk),
		docs:   make(map[string][]string),
	}
}

// Add saves chunks with their embeddings.
func (s *Store) Add(ctx context.Context, chunks []Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, chunk := range chunks {
		s.chunks[chunk.ID] = chunk
		s.docs[chunk.DocumentID] = append(s.docs[chunk.DocumentID], chunk.ID)
	}
	return nil
}

// Search returns the topK most similar chunks visible to owner: the owner's
// own chunks plus shared ones with an empty Owner.
func (s *Store) Search(ctx context.Context, embedding []float32, topK int, owner string) ([]Result, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]Result, 0, len(s.chunks))
	for _, chunk := range s.chunks {
		if chunk.Owner != "" && chunk.Owner != owner {
			continue
		}
		results = append(results, Result{
			Chunk: chunk,
			Score: cosineSimilarity(embedding, chunk.Embedding),
		})
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// Delete removes all chunks of a document.
func (s *Store) Delete(ctx context.Context, documentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.docs[documentID] {
		delete(s.chunks, id)
	}
	delete(s.docs, documentID)
	return nil
}

// Len reports the number of stored chunks.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks)
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
