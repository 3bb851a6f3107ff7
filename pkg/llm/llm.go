package llm

import "context"

// GenerateOptions tunes a single completion request.
// Zero values fall back to the client's defaults.
type GenerateOptions struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

// ChatModel is a minimal abstraction for text-generation models used by the domain.
// It intentionally hides concrete providers to preserve dependency direction.
type ChatModel interface {
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
}

// Embedder produces vector embeddings for text.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}
