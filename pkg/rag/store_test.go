package rag

import (
	"context"
	"testing"
)

func TestStore_SearchRanksBySimilarity(t *testing.T) {
	store := NewStore()
	err := store.Add(context.Background(), []Chunk{
		{ID: "a", DocumentID: "d1", Content: "about cats", Embedding: []float32{1, 0, 0}},
		{ID: "b", DocumentID: "d1", Content: "about dogs", Embedding: []float32{0, 1, 0}},
		{ID: "c", DocumentID: "d2", Content: "mostly cats", Embedding: []float32{0.9, 0.1, 0}},
	})
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}

	results, err := store.Search(context.Background(), []float32{1, 0, 0}, 2, "")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Chunk.ID != "a" {
		t.Errorf("expected chunk a first, got %s", results[0].Chunk.ID)
	}
	if results[0].Score < results[1].Score {
		t.Errorf("results not sorted by score: %v", results)
	}
}

func TestStore_SearchTopKLargerThanStore(t *testing.T) {
	store := NewStore()
	store.Add(context.Background(), []Chunk{
		{ID: "a", DocumentID: "d1", Embedding: []float32{1, 0}},
	})
	results, err := store.Search(context.Background(), []float32{1, 0}, 10, "")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("expected 1 result, got %d", len(results))
	}
}

func TestStore_SearchScopedToOwner(t *testing.T) {
	store := NewStore()
	store.Add(context.Background(), []Chunk{
		{ID: "a", DocumentID: "d1", Owner: "alice", Content: "alice notes", Embedding: []float32{1, 0}},
		{ID: "b", DocumentID: "d2", Owner: "bob", Content: "bob notes", Embedding: []float32{1, 0}},
		{ID: "c", DocumentID: "kb", Content: "shared knowledge", Embedding: []float32{1, 0}},
	})

	results, err := store.Search(context.Background(), []float32{1, 0}, 10, "alice")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, r := range results {
		if r.Chunk.Owner == "bob" {
			t.Errorf("retrieved another owner's chunk: %+v", r.Chunk)
		}
	}
}

func TestStore_Delete(t *testing.T) {
	store := NewStore()
	store.Add(context.Background(), []Chunk{
		{ID: "a", DocumentID: "d1", Embedding: []float32{1, 0}},
		{ID: "b", DocumentID: "d2", Embedding: []float32{0, 1}},
	})
	if err := store.Delete(context.Background(), "d1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if store.Len() != 1 {
		t.Errorf("expected 1 chunk left, got %d", store.Len())
	}
}

func TestCosineSimilarity(t *testing.T) {
	if got := cosineSimilarity([]float32{1, 0}, []float32{1, 0}); got < 0.999 {
		t.Errorf("identical vectors should score ~1, got %f", got)
	}
	if got := cosineSimilarity([]float32{1, 0}, []float32{0, 1}); got != 0 {
		t.Errorf("orthogonal vectors should score 0, got %f", got)
	}
	if got := cosineSimilarity([]float32{1, 0}, []float32{1}); got != 0 {
		t.Errorf("mismatched lengths should score 0, got %f", got)
	}
	if got := cosineSimilarity(nil, nil); got != 0 {
		t.Errorf("empty vectors should score 0, got %f", got)
	}
}
