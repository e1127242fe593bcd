package service

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const testFallback = "Sorry, I could not process your request right now."

func TestCompleteReturnsReply(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Unexpected authorization header: %s", got)
		}

		var req chatCompletionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		if len(req.Messages) != 1 || req.Messages[0].Content != "What is Go?" {
			t.Errorf("Unexpected messages: %+v", req.Messages)
		}

		resp := chatCompletionResponse{}
		resp.Choices = append(resp.Choices, struct {
			Message chatMessage `json:"message"`
		}{Message: chatMessage{Role: "assistant", Content: "A programming language. "}})
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Fatalf("Failed to encode response: %v", err)
		}
	}))
	defer server.Close()

	svc := NewChatService(server.URL, "test-key", "gpt-3.5-turbo", testFallback, 5*time.Second)

	reply, err := svc.Complete("What is Go?")
	if err != nil {
		t.Fatalf("Failed to complete: %v", err)
	}

	if reply != "A programming language." {
		t.Errorf("Expected trimmed reply, got %q", reply)
	}
}

func TestCompleteErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	svc := NewChatService(server.URL, "test-key", "gpt-3.5-turbo", testFallback, 5*time.Second)

	reply, err := svc.Complete("What is Go?")
	if !errors.Is(err, ErrDownstreamUnavailable) {
		t.Errorf("Expected ErrDownstreamUnavailable, got %v", err)
	}

	if reply != testFallback {
		t.Errorf("Expected fallback reply, got %q", reply)
	}
}

func TestCompleteUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	svc := NewChatService(server.URL, "test-key", "gpt-3.5-turbo", testFallback, 1*time.Second)

	reply, err := svc.Complete("What is Go?")
	if !errors.Is(err, ErrDownstreamUnavailable) {
		t.Errorf("Expected ErrDownstreamUnavailable, got %v", err)
	}

	if reply != testFallback {
		t.Errorf("Expected fallback reply, got %q", reply)
	}
}

func TestCompleteEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write([]byte(`{"choices":[]}`)); err != nil {
			t.Fatalf("Failed to write response: %v", err)
		}
	}))
	defer server.Close()

	svc := NewChatService(server.URL, "test-key", "gpt-3.5-turbo", testFallback, 5*time.Second)

	reply, err := svc.Complete("What is Go?")
	if !errors.Is(err, ErrDownstreamUnavailable) {
		t.Errorf("Expected ErrDownstreamUnavailable, got %v", err)
	}

	if reply != testFallback {
		t.Errorf("Expected fallback reply, got %q", reply)
	}
}
