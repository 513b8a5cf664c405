package kroki

import (
	"bytes"
	"compress/flate"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/prince-yn/study-space-backend/internal/core/domain"
	"github.com/prince-yn/study-space-backend/internal/core/ports/driven"
)

// Ensure Client implements DiagramRenderService
var _ driven.DiagramRenderService = (*Client)(nil)

// DefaultBaseURL is the public Kroki instance
const DefaultBaseURL = "https://kroki.io"

// maxErrorBody caps how much of a renderer error response is kept in the
// returned error
const maxErrorBody = 512

// Client renders diagrams through a Kroki server.
//
// Kroki exposes two rendering paths: POST the raw source to
// /<engine>/<format>, or GET /<engine>/<format>/<encoded> where the source is
// deflate-compressed and base64url-encoded into the URL.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a Kroki render client
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Render submits diagram source via POST and returns the rendered image.
// 4xx responses wrap domain.ErrDiagramSyntax; 502 wraps
// domain.ErrUpstreamOverloaded.
func (c *Client) Render(ctx context.Context, engine, source string, format driven.DiagramFormat) ([]byte, error) {
	url := fmt.Sprintf("%s/%s/%s", c.baseURL, engine, format)

	req, err := http.NewRequestWithContext(ctx, "POST", url, strings.NewReader(source))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("render request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, nil
	case resp.StatusCode == http.StatusBadGateway:
		return nil, fmt.Errorf("%w: renderer returned status %d", domain.ErrUpstreamOverloaded, resp.StatusCode)
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return nil, fmt.Errorf("%w: %s", domain.ErrDiagramSyntax, errorBody(body))
	default:
		return nil, fmt.Errorf("renderer returned status %d: %s", resp.StatusCode, errorBody(body))
	}
}

// RenderURL builds the encoded GET URL for a diagram. The source is
// deflate-compressed and base64url-encoded (unpadded) into the URL path.
func (c *Client) RenderURL(engine, source string, format driven.DiagramFormat) (string, error) {
	encoded, err := EncodeSource(source)
	if err != nil {
		return "", fmt.Errorf("failed to encode diagram source: %w", err)
	}
	return fmt.Sprintf("%s/%s/%s/%s", c.baseURL, engine, format, encoded), nil
}

// CheckURL verifies a render URL resolves by issuing a HEAD request
func (c *Client) CheckURL(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, "HEAD", url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("check request failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return fmt.Errorf("%w: renderer rejected encoded source (status %d)", domain.ErrDiagramSyntax, resp.StatusCode)
		}
		return fmt.Errorf("renderer returned status %d", resp.StatusCode)
	}
	return nil
}

// EncodeSource compresses diagram source with raw deflate at best compression
// and encodes it with the base64url alphabet, padding stripped.
func EncodeSource(source string) (string, error) {
	var buf bytes.Buffer
	w, err := flate.NewWriter(&buf, flate.BestCompression)
	if err != nil {
		return "", err
	}
	if _, err := w.Write([]byte(source)); err != nil {
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodeSource reverses EncodeSource
func DecodeSource(encoded string) (string, error) {
	compressed, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("invalid base64url: %w", err)
	}

	r := flate.NewReader(bytes.NewReader(compressed))
	defer r.Close()
	decompressed, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("invalid deflate stream: %w", err)
	}
	return string(decompressed), nil
}

func errorBody(body []byte) string {
	msg := strings.TrimSpace(string(body))
	if len(msg) > maxErrorBody {
		msg = msg[:maxErrorBody] + "..."
	}
	if msg == "" {
		msg = "renderer rejected diagram source"
	}
	return msg
}
