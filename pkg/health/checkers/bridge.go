package checkers

import (
	"context"
	"time"

	"github.com/Akshita-sr/pepper-AI-Ollama/pkg/bridge"
)

type BridgeChecker struct {
	client *bridge.Client
}

func NewBridgeChecker(client *bridge.Client) *BridgeChecker {
	return &BridgeChecker{client: client}
}

func (c *BridgeChecker) Name() string { return "bridge" }

func (c *BridgeChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	_, err := c.client.GetStatus(ctx)
	return err
}
