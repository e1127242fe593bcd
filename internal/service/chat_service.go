package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

var ErrDownstreamUnavailable = errors.New("chat service unavailable")

// ChatService forwards questions to the downstream chat completion API
type ChatService struct {
	baseURL       string
	apiKey        string
	model         string
	fallbackReply string
	client        *http.Client
}

// NewChatService creates a new chat service
func NewChatService(baseURL, apiKey, model, fallbackReply string, timeout time.Duration) *ChatService {
	if baseURL == "" {
		baseURL = "https://api.openai.com"
	}
	if model == "" {
		model = "gpt-3.5-turbo"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ChatService{
		baseURL:       baseURL,
		apiKey:        apiKey,
		model:         model,
		fallbackReply: fallbackReply,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// FallbackReply returns the reply used when the downstream service
// cannot answer
func (s *ChatService) FallbackReply() string {
	return s.fallbackReply
}

// Complete sends a question to the downstream service and returns its
// reply. When the service is unreachable or answers with an error, the
// fallback reply is returned together with ErrDownstreamUnavailable so
// callers can still show something to the requester without recording
// the exchange.
func (s *ChatService) Complete(question string) (string, error) {
	reqBody := chatCompletionRequest{
		Model: s.model,
		Messages: []chatMessage{
			{Role: "user", Content: question},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return s.fallbackReply, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, fmt.Sprintf("%s/v1/chat/completions", s.baseURL), bytes.NewBuffer(jsonData))
	if err != nil {
		return s.fallbackReply, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		slog.Error("Chat service unreachable", "error", err)
		return s.fallbackReply, ErrDownstreamUnavailable
	}
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			slog.Error("Failed to close response body", "error", err)
		}
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		slog.Error("Chat service returned non-200 status", "status", resp.StatusCode, "body", string(bodyBytes))
		return s.fallbackReply, ErrDownstreamUnavailable
	}

	var completion chatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		slog.Error("Failed to decode chat response", "error", err)
		return s.fallbackReply, ErrDownstreamUnavailable
	}

	if len(completion.Choices) == 0 {
		slog.Error("Chat service returned no choices")
		return s.fallbackReply, ErrDownstreamUnavailable
	}

	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}
