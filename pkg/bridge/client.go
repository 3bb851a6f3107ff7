package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Client calls the bridge from the connector and the web backend.
type Client struct {
	baseURL string
	httpDo  *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:5000"
	}
	return &Client{
		baseURL: baseURL,
		httpDo: &http.Client{
			Timeout: 30 * time.Second, // the robot speaks synchronously
		},
	}
}

// Status is the bridge's /status payload.
type Status struct {
	Status     string `json:"status"`
	Connected  bool   `json:"connected"`
	PepperIP   string `json:"pepper_ip"`
	PepperPort int    `json:"pepper_port"`
}

// GetStatus fetches the bridge status.
func (c *Client) GetStatus(ctx context.Context) (Status, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/status", nil)
	if err != nil {
		return Status{}, err
	}
	resp, err := c.httpDo.Do(req)
	if err != nil {
		return Status{}, fmt.Errorf("calling bridge: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Status{}, fmt.Errorf("bridge returned status %d", resp.StatusCode)
	}
	var st Status
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		return Status{}, fmt.Errorf("decoding response: %w", err)
	}
	return st, nil
}

// Available reports whether the bridge answers within a short timeout.
func (c *Client) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	_, err := c.GetStatus(ctx)
	return err == nil
}

// Speak sends text to the bridge's /speak endpoint.
func (c *Client) Speak(ctx context.Context, text string) error {
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/speak", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpDo.Do(req)
	if err != nil {
		return fmt.Errorf("calling bridge: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bridge returned status %d", resp.StatusCode)
	}
	return nil
}
