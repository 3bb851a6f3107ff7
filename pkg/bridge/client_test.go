package bridge

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClient_GetStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/status" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(Status{Status: "ok", Connected: true, PepperIP: "10.0.0.2", PepperPort: 9559})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	st, err := client.GetStatus(context.Background())
	if err != nil {
		t.Fatalf("GetStatus: %v", err)
	}
	if !st.Connected || st.PepperIP != "10.0.0.2" {
		t.Errorf("status = %+v", st)
	}
	if !client.Available(context.Background()) {
		t.Error("expected Available")
	}
}

func TestClient_Speak(t *testing.T) {
	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		got = body["text"]
		json.NewEncoder(w).Encode(map[string]any{"status": "ok"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	if err := client.Speak(context.Background(), "Hello there"); err != nil {
		t.Fatalf("Speak: %v", err)
	}
	if got != "Hello there" {
		t.Errorf("bridge got %q", got)
	}
}

func TestClient_BridgeDown(t *testing.T) {
	client := NewClient("http://127.0.0.1:1")
	if client.Available(context.Background()) {
		t.Error("expected unavailable")
	}
	if err := client.Speak(context.Background(), "hi"); err == nil {
		t.Error("expected error")
	}
}
