package qisidecar

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestConnectAndSay(t *testing.T) {
	var spoken string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/reconnect":
			json.NewEncoder(w).Encode(map[string]any{"status": "ok", "connected": true})
		case "/speak":
			var body map[string]string
			json.NewDecoder(r.Body).Decode(&body)
			spoken = body["text"]
			json.NewEncoder(w).Encode(map[string]any{"status": "ok", "spoken": true})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := New(server.URL)
	if err := client.Connect(context.Background()); err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	if !client.Connected() {
		t.Error("expected connected after Connect")
	}
	if err := client.Say(context.Background(), "Hello"); err != nil {
		t.Fatalf("say failed: %v", err)
	}
	if spoken != "Hello" {
		t.Errorf("helper got %q", spoken)
	}
}

func TestConnect_HelperDown(t *testing.T) {
	client := New("http://127.0.0.1:1") // nothing listens here
	if err := client.Connect(context.Background()); err == nil {
		t.Fatal("expected error when helper is unreachable")
	}
	// Connected falls back to a /status probe, which also fails.
	if client.Connected() {
		t.Error("expected not connected")
	}
}

func TestConnected_RefreshesFromStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/status" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{"status": "ok", "connected": true})
	}))
	defer server.Close()

	client := New(server.URL)
	if !client.Connected() {
		t.Error("expected connected from status probe")
	}
}

func TestStartHelper_MissingScript(t *testing.T) {
	client := New("")
	if _, err := client.StartHelper("python2", filepath.Join(t.TempDir(), "nope.py")); err == nil {
		t.Fatal("expected error for missing script")
	}
}

func TestStartHelper_SpawnAndStop(t *testing.T) {
	script := filepath.Join(t.TempDir(), "helper.sh")
	if err := os.WriteFile(script, []byte("#!/bin/sh\nsleep 30\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	client := New("")
	stop, err := client.StartHelper("/bin/sh", script)
	if err != nil {
		t.Fatalf("start helper failed: %v", err)
	}
	stop()
	if err := client.helperCmd.Wait(); err == nil {
		t.Error("expected helper process to be killed")
	}
}

func TestSay_HelperError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := New(server.URL)
	if err := client.Say(context.Background(), "Hello"); err == nil {
		t.Fatal("expected error on helper failure")
	}
}
