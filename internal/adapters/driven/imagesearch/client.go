package imagesearch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/prince-yn/study-space-backend/internal/core/domain"
	"github.com/prince-yn/study-space-backend/internal/core/ports/driven"
)

// Ensure Client implements ImageSearchService
var _ driven.ImageSearchService = (*Client)(nil)

// Client implements ImageSearchService against the Google Custom Search
// JSON API restricted to image results.
type Client struct {
	apiKey   string
	engineID string
	baseURL  string
	client   *http.Client
}

// NewClient creates an image search client
func NewClient(apiKey, engineID, baseURL string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("image search API key is required")
	}
	if engineID == "" {
		return nil, fmt.Errorf("image search engine ID is required")
	}
	if baseURL == "" {
		baseURL = "https://www.googleapis.com/customsearch/v1"
	}

	return &Client{
		apiKey:   apiKey,
		engineID: engineID,
		baseURL:  baseURL,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}, nil
}

// searchResponse is the subset of the Custom Search response we consume
type searchResponse struct {
	Items []struct {
		Title string `json:"title"`
		Link  string `json:"link"`
		Image struct {
			ThumbnailLink string `json:"thumbnailLink"`
		} `json:"image"`
	} `json:"items"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Search returns up to limit safe-search image results for the query
func (c *Client) Search(ctx context.Context, query string, limit int) ([]domain.ImageResult, error) {
	if limit < 1 {
		limit = 1
	}

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("cx", c.engineID)
	params.Set("q", query)
	params.Set("searchType", "image")
	params.Set("safe", "active")
	params.Set("num", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var searchResp searchResponse
	if err := json.Unmarshal(body, &searchResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if searchResp.Error != nil {
		return nil, fmt.Errorf("search API error %d: %s", searchResp.Error.Code, searchResp.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search API returned status %d", resp.StatusCode)
	}

	results := make([]domain.ImageResult, 0, len(searchResp.Items))
	for _, item := range searchResp.Items {
		results = append(results, domain.ImageResult{
			URL:          item.Link,
			Title:        item.Title,
			ThumbnailURL: item.Image.ThumbnailLink,
		})
	}
	return results, nil
}
