package postprocessors

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/prince-yn/study-space-backend/internal/core/domain"
	"github.com/prince-yn/study-space-backend/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.ContentPipeline = (*Pipeline)(nil)

// Config tunes the content pipeline
type Config struct {
	// DiagramFormat is the output format requested from the renderer
	DiagramFormat driven.DiagramFormat

	// InlineURLLimit is the maximum diagram source size (bytes) for the
	// encoded GET render path; larger sources are POSTed
	InlineURLLimit int

	// CheckTimeout bounds the existence check on encoded render URLs
	CheckTimeout time.Duration

	// SearchLimit is how many image search results to request
	SearchLimit int

	// MaxRetries is the attempt budget for image generation
	MaxRetries int

	// RetryDelay is the fixed wait between generation attempts
	RetryDelay time.Duration

	// EnhancePrompts appends the educational-figure style suffix to
	// generation prompts
	EnhancePrompts bool
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		DiagramFormat:  driven.DiagramFormatSVG,
		InlineURLLimit: 1024,
		CheckTimeout:   5 * time.Second,
		SearchLimit:    1,
		MaxRetries:     3,
		RetryDelay:     2 * time.Second,
		EnhancePrompts: true,
	}
}

// Pipeline finalizes generated Markdown: it extracts image and diagram
// directives, resolves each to a concrete URL through the external services,
// and rewrites the text with the results.
type Pipeline struct {
	extractor *Extractor
	render    driven.DiagramRenderService
	search    driven.ImageSearchService
	imageGen  driven.ImageGenerationService
	storage   driven.ObjectStorage
	urlCache  driven.URLCache
	logger    *slog.Logger
	cfg       Config
}

// PipelineConfig holds dependencies for the pipeline. Any of the external
// services may be nil; directives needing a missing service fail gracefully.
type PipelineConfig struct {
	Render   driven.DiagramRenderService
	Search   driven.ImageSearchService
	ImageGen driven.ImageGenerationService
	Storage  driven.ObjectStorage
	// URLCache short-circuits repeated diagram renders (optional)
	URLCache driven.URLCache
	Logger   *slog.Logger
	Config   Config
}

// NewPipeline creates a content pipeline
func NewPipeline(cfg PipelineConfig) *Pipeline {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	conf := cfg.Config
	if conf == (Config{}) {
		conf = DefaultConfig()
	}

	return &Pipeline{
		extractor: NewExtractor(),
		render:    cfg.Render,
		search:    cfg.Search,
		imageGen:  cfg.ImageGen,
		storage:   cfg.Storage,
		urlCache:  cfg.URLCache,
		logger:    logger,
		cfg:       conf,
	}
}

// Finalize resolves every directive in the Markdown and returns the rewritten
// content plus the manifest of embedded media.
//
// A single directive's failure never fails the call: it degrades to an inline
// annotation. Only structural problems (empty input, cancelled context)
// propagate as errors.
func (p *Pipeline) Finalize(ctx context.Context, markdown string) (*domain.FinalizedContent, error) {
	if strings.TrimSpace(markdown) == "" {
		return nil, domain.ErrInvalidInput
	}

	directives := p.extractor.Extract(markdown)
	if len(directives) == 0 {
		return &domain.FinalizedContent{Content: markdown, EmbeddedMedia: []domain.EmbeddedMedia{}}, nil
	}

	// Directives resolve independently; they are processed one at a time to
	// stay friendly to third-party rate limits.
	pairs := make([]Resolved, 0, len(directives))
	for _, d := range directives {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		res := p.resolve(ctx, d)
		if !res.Resolved() {
			p.logger.Warn("directive resolution failed",
				"kind", string(d.Kind),
				"position", d.Position,
				"reason", res.Failure,
			)
		}
		pairs = append(pairs, Resolved{Directive: d, Resolution: res})
	}

	content, manifest := Rewrite(markdown, pairs)
	if manifest == nil {
		manifest = []domain.EmbeddedMedia{}
	}

	return &domain.FinalizedContent{Content: content, EmbeddedMedia: manifest}, nil
}

func (p *Pipeline) resolve(ctx context.Context, d Directive) Resolution {
	switch d.Kind {
	case DirectiveImageSearch:
		return p.resolveImageSearch(ctx, d)
	case DirectiveImageGenerate:
		return p.resolveImageGenerate(ctx, d)
	default:
		return p.resolveDiagram(ctx, d)
	}
}
