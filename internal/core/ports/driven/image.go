package driven

import (
	"context"

	"github.com/prince-yn/study-space-backend/internal/core/domain"
)

// ImageSearchService finds existing images for a free-text query
type ImageSearchService interface {
	// Search returns up to limit safe-search results for the query
	Search(ctx context.Context, query string, limit int) ([]domain.ImageResult, error)
}

// ImageGenerationService produces an image from a text prompt.
//
// Generate must report HTTP 502 responses as an error wrapping
// domain.ErrUpstreamOverloaded; that is the only error class callers retry.
type ImageGenerationService interface {
	// Generate returns the generated image bytes (PNG)
	Generate(ctx context.Context, prompt string) ([]byte, error)
}
