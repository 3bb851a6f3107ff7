package checkers

import (
	"context"
	"time"

	"github.com/Akshita-sr/pepper-AI-Ollama/pkg/llm/ollama"
)

type OllamaChecker struct {
	client *ollama.Client
}

func NewOllamaChecker(client *ollama.Client) *OllamaChecker {
	return &OllamaChecker{client: client}
}

func (c *OllamaChecker) Name() string { return "ollama" }

func (c *OllamaChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	_, err := c.client.Tags(ctx)
	return err
}
