package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prince-yn/study-space-backend/internal/core/ports/driven"
)

// Ensure OpenAILLM implements LLMService
var _ driven.LLMService = (*OpenAILLM)(nil)

// notesSystemPrompt steers the model toward structured study notes. The
// placeholder tags it mentions are resolved by the content pipeline after
// generation.
const notesSystemPrompt = `You are a study assistant. Turn the provided material into well-structured Markdown study notes with headings, bullet points and short explanations.

Where a visual would help understanding, emit exactly one of:
- {{IMAGE: <short description>}} to request a real photo or figure,
- {{GENERATE: <short description>}} to request a generated illustration,
- a fenced code block in mermaid or graphviz syntax for a diagram.

Do not emit any other placeholder syntax.`

// chatSystemPrompt grounds answers in the supplied notes
const chatSystemPrompt = `You are a study assistant. Answer the student's question using only the provided notes. If the notes do not contain the answer, say so instead of guessing.`

// OpenAILLM implements LLMService using an OpenAI-compatible chat
// completions API
type OpenAILLM struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewOpenAILLM creates a new OpenAI-compatible LLM service
func NewOpenAILLM(apiKey, model, baseURL string) (driven.LLMService, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	if model == "" {
		model = "gpt-4o-mini"
	}

	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	return &OpenAILLM{
		apiKey:  apiKey,
		model:   model,
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}, nil
}

// chatMessage is one message in a chat completion request. Content is either
// a string or a []contentPart for multimodal requests.
type chatMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

// contentPart is one element of a multimodal message
type contentPart struct {
	Type     string `json:"type"`
	Text     string `json:"text,omitempty"`
	ImageURL *struct {
		URL string `json:"url"`
	} `json:"image_url,omitempty"`
}

// chatRequest is the request body for the chat completions API
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

// chatResponse is the response from the chat completions API
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error,omitempty"`
}

// GenerateNotes produces structured Markdown study notes for a material
func (l *OpenAILLM) GenerateNotes(ctx context.Context, req driven.NoteRequest) (string, error) {
	userText := req.Text
	if req.Title != "" {
		userText = fmt.Sprintf("Title: %s\n\n%s", req.Title, userText)
	}

	user := chatMessage{Role: "user", Content: userText}
	if req.ImageURL != "" {
		parts := []contentPart{{Type: "text", Text: userText}}
		img := contentPart{Type: "image_url"}
		img.ImageURL = &struct {
			URL string `json:"url"`
		}{URL: req.ImageURL}
		parts = append(parts, img)
		user.Content = parts
	}

	return l.complete(ctx, []chatMessage{
		{Role: "system", Content: notesSystemPrompt},
		user,
	})
}

// Chat answers a question grounded in the provided context text
func (l *OpenAILLM) Chat(ctx context.Context, contextText, question string) (string, error) {
	return l.complete(ctx, []chatMessage{
		{Role: "system", Content: chatSystemPrompt},
		{Role: "user", Content: fmt.Sprintf("Notes:\n%s\n\nQuestion: %s", contextText, question)},
	})
}

// Model returns the model name being used
func (l *OpenAILLM) Model() string {
	return l.model
}

// Ping verifies the LLM service is available
func (l *OpenAILLM) Ping(ctx context.Context) error {
	_, err := l.complete(ctx, []chatMessage{
		{Role: "user", Content: "ping"},
	})
	return err
}

// Close releases resources held by the LLM service
func (l *OpenAILLM) Close() error {
	l.client.CloseIdleConnections()
	return nil
}

// complete makes a chat completion request and returns the first choice
func (l *OpenAILLM) complete(ctx context.Context, messages []chatMessage) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model:       l.model,
		Messages:    messages,
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", l.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+l.apiKey)

	resp, err := l.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if chatResp.Error != nil {
		return "", fmt.Errorf("LLM API error: %s (type: %s, code: %s)",
			chatResp.Error.Message, chatResp.Error.Type, chatResp.Error.Code)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("LLM API returned status %d", resp.StatusCode)
	}

	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no completion returned")
	}

	return chatResp.Choices[0].Message.Content, nil
}
