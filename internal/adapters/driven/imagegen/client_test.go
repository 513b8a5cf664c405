package imagegen

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prince-yn/study-space-backend/internal/core/domain"
)

func TestClient_Generate(t *testing.T) {
	var gotPrompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		json.NewDecoder(r.Body).Decode(&req)
		gotPrompt = req.Prompt
		w.Write([]byte("png-bytes"))
	}))
	defer server.Close()

	c, err := NewClient(server.URL, "test-key", "test-model")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := c.Generate(context.Background(), "a labeled neuron")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Errorf("unexpected body: %q", data)
	}
	if gotPrompt != "a labeled neuron" {
		t.Errorf("prompt not forwarded: %q", gotPrompt)
	}
}

func TestClient_Generate_BadGateway(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	c, _ := NewClient(server.URL, "", "")
	_, err := c.Generate(context.Background(), "anything")
	if !errors.Is(err, domain.ErrUpstreamOverloaded) {
		t.Errorf("expected ErrUpstreamOverloaded on 502, got %v", err)
	}
}

func TestClient_Generate_OtherStatusNotRetryable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("maintenance window"))
	}))
	defer server.Close()

	c, _ := NewClient(server.URL, "", "")
	_, err := c.Generate(context.Background(), "anything")
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, domain.ErrUpstreamOverloaded) {
		t.Errorf("503 must not be marked retryable: %v", err)
	}
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	if _, err := NewClient("", "key", "model"); err == nil {
		t.Error("expected error for empty base URL")
	}
}
