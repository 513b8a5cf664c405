package imagegen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/prince-yn/study-space-backend/internal/core/domain"
	"github.com/prince-yn/study-space-backend/internal/core/ports/driven"
)

// Ensure Client implements ImageGenerationService
var _ driven.ImageGenerationService = (*Client)(nil)

// maxErrorBody caps how much of an upstream error response is carried in the
// returned error
const maxErrorBody = 512

// Client implements ImageGenerationService against a text-to-image HTTP
// service that accepts a JSON prompt and responds with raw PNG bytes.
type Client struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

// NewClient creates an image generation client
func NewClient(baseURL, apiKey, model string) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("image generation base URL is required")
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		client: &http.Client{
			// Generation latency is measured in tens of seconds
			Timeout: 90 * time.Second,
		},
	}, nil
}

// generateRequest is the request body for the generation endpoint
type generateRequest struct {
	Prompt string `json:"prompt"`
	Model  string `json:"model,omitempty"`
	Format string `json:"format"`
}

// Generate submits a prompt and returns the generated PNG bytes. An HTTP 502
// response is reported as domain.ErrUpstreamOverloaded so the caller can
// retry; every other non-200 status is terminal.
func (c *Client) Generate(ctx context.Context, prompt string) ([]byte, error) {
	body, err := json.Marshal(generateRequest{
		Prompt: prompt,
		Model:  c.model,
		Format: "png",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/v1/images/generate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("generation request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return data, nil
	case http.StatusBadGateway:
		return nil, fmt.Errorf("%w: generation service returned status %d", domain.ErrUpstreamOverloaded, resp.StatusCode)
	default:
		return nil, fmt.Errorf("generation service returned status %d: %s", resp.StatusCode, errorBody(data))
	}
}

func errorBody(body []byte) string {
	msg := strings.TrimSpace(string(body))
	if len(msg) > maxErrorBody {
		msg = msg[:maxErrorBody] + "..."
	}
	if msg == "" {
		msg = "no response body"
	}
	return msg
}
