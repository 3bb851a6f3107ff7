package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Akshita-sr/pepper-AI-Ollama/pkg/llm"
)

func TestGenerate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var req map[string]any
		json.NewDecoder(r.Body).Decode(&req)
		if req["model"] != "test-model" {
			t.Errorf("unexpected model: %v", req["model"])
		}
		if req["stream"] != false {
			t.Errorf("expected stream=false")
		}
		json.NewEncoder(w).Encode(map[string]any{"response": "Hello there!", "done": true})
	}))
	defer server.Close()

	client := New(server.URL, "test-model", "")
	resp, err := client.Generate(context.Background(), "Hi", llm.GenerateOptions{Temperature: 0.7, MaxTokens: 500})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if resp != "Hello there!" {
		t.Errorf("unexpected response: %s", resp)
	}
}

func TestGenerate_ModelOverride(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]any
		json.NewDecoder(r.Body).Decode(&req)
		if req["model"] != "mistral" {
			t.Errorf("expected override model, got %v", req["model"])
		}
		json.NewEncoder(w).Encode(map[string]any{"response": "ok", "done": true})
	}))
	defer server.Close()

	client := New(server.URL, "llama2", "")
	if _, err := client.Generate(context.Background(), "Hi", llm.GenerateOptions{Model: "mistral"}); err != nil {
		t.Fatalf("generate failed: %v", err)
	}
}

func TestGenerate_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := New(server.URL, "test", "")
	if _, err := client.Generate(context.Background(), "Hi", llm.GenerateOptions{}); err == nil {
		t.Fatal("expected error on 500")
	}
}

func TestEmbed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/embeddings" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{"embedding": []float32{0.1, 0.2, 0.3}})
	}))
	defer server.Close()

	client := New(server.URL, "", "embed-model")
	emb, err := client.Embed(context.Background(), "some text")
	if err != nil {
		t.Fatalf("embed failed: %v", err)
	}
	if len(emb) != 3 {
		t.Errorf("expected 3 dimensions, got %d", len(emb))
	}
}

func TestTagsAndCheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"models": []map[string]any{{"name": "llama2:latest"}, {"name": "mistral:7b"}},
		})
	}))
	defer server.Close()

	client := New(server.URL, "", "")
	models, err := client.Check(context.Background())
	if err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if len(models) != 2 || models[0].Name != "llama2:latest" {
		t.Errorf("unexpected models: %+v", models)
	}
}

func TestCheck_NoModels(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"models": []any{}})
	}))
	defer server.Close()

	client := New(server.URL, "", "")
	if _, err := client.Check(context.Background()); err != ErrNoModels {
		t.Errorf("expected ErrNoModels, got %v", err)
	}
}

func TestPull_Progress(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"downloading","completed":50,"total":100}` + "\n"))
		w.Write([]byte(`{"status":"downloading","completed":100,"total":100}` + "\n"))
		w.Write([]byte(`{"status":"success"}` + "\n"))
	}))
	defer server.Close()

	client := New(server.URL, "", "")
	var fractions []float64
	err := client.Pull(context.Background(), "llama2", func(p PullProgress) {
		fractions = append(fractions, p.Fraction())
	})
	if err != nil {
		t.Fatalf("pull failed: %v", err)
	}
	if len(fractions) != 3 {
		t.Fatalf("expected 3 progress updates, got %d", len(fractions))
	}
	if fractions[0] != 0.5 || fractions[1] != 1.0 {
		t.Errorf("unexpected fractions: %v", fractions)
	}
}

func TestPull_Error(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":"pull model manifest: file does not exist"}` + "\n"))
	}))
	defer server.Close()

	client := New(server.URL, "", "")
	if err := client.Pull(context.Background(), "nope", nil); err == nil {
		t.Fatal("expected error from stream")
	}
}

func TestDelete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/api/delete" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := New(server.URL, "", "")
	if err := client.Delete(context.Background(), "llama2"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
}
