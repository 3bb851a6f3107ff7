// Package qisidecar relays speech to the Python 2.7 helper that owns the
// NAOqi qi.Session (run with Choregraphe's interpreter). The helper exposes
// /status, /speak and /reconnect; this client can also spawn it.
package qisidecar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"sync/atomic"
	"time"
)

type Client struct {
	baseURL   string
	httpDo    *http.Client
	helperCmd *exec.Cmd
	connected atomic.Bool
}

func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = "http://127.0.0.1:5001"
	}
	return &Client{
		baseURL: baseURL,
		httpDo: &http.Client{
			Timeout: 30 * time.Second, // speech is synchronous on the robot
		},
	}
}

type statusResponse struct {
	Status    string `json:"status"`
	Connected bool   `json:"connected"`
}

// Connect asks the helper to (re)open its qi.Session and records the result.
func (c *Client) Connect(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/reconnect", bytes.NewReader([]byte("{}")))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpDo.Do(req)
	if err != nil {
		c.connected.Store(false)
		return fmt.Errorf("calling qi helper: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		c.connected.Store(false)
		return fmt.Errorf("qi helper returned status %d", resp.StatusCode)
	}
	c.connected.Store(true)
	return nil
}

// Say forwards the text to the helper's /speak endpoint.
func (c *Client) Say(ctx context.Context, text string) error {
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
		c.connected.Store(false)
		return fmt.Errorf("calling qi helper: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("qi helper returned status %d", resp.StatusCode)
	}
	return nil
}

// Connected reports the last known session state, refreshed from /status when
// it was never established.
func (c *Client) Connected() bool {
	if c.connected.Load() {
		return true
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/status", nil)
	if err != nil {
		return false
	}
	resp, err := c.httpDo.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	var st statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		return false
	}
	c.connected.Store(st.Connected)
	return st.Connected
}

// StartHelper launches the Python 2.7 helper as a subprocess. pythonPath is
// the Choregraphe interpreter; script the helper file. Returns a stop func.
func (c *Client) StartHelper(pythonPath, script string) (func(), error) {
	if _, err := os.Stat(script); os.IsNotExist(err) {
		return nil, fmt.Errorf("qi helper script not found at %s", script)
	}
	c.helperCmd = exec.Command(pythonPath, script)
	c.helperCmd.Stdout = os.Stdout
	c.helperCmd.Stderr = os.Stderr
	if err := c.helperCmd.Start(); err != nil {
		return nil, fmt.Errorf("starting qi helper: %w", err)
	}
	// Give the helper a moment to bind its port.
	time.Sleep(1 * time.Second)

	stop := func() {
		if c.helperCmd != nil && c.helperCmd.Process != nil {
			c.helperCmd.Process.Kill()
		}
	}
	return stop, nil
}
