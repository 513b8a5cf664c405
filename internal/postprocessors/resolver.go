package postprocessors

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/prince-yn/study-space-backend/internal/core/domain"
	"github.com/prince-yn/study-space-backend/internal/core/ports/driven"
)

// promptEnhancement is appended to user descriptions before image generation
// so output looks like a textbook figure rather than free-form art.
const promptEnhancement = ", educational diagram style, clean white background, clearly labeled parts, scientific illustration"

// maxServerMessage caps how much of a renderer error body leaks into the
// in-document annotation.
const maxServerMessage = 200

// resolveDiagram turns a diagram directive into a rendered-image URL.
//
// Small sources take the encoded GET path: deflate+base64url the source into
// the URL and verify it with a HEAD check. Everything else is POSTed to the
// renderer; rendered bytes go to object storage keyed by a hash of the
// sanitized source, or straight into a data URL for SVG when storage is not
// configured.
func (p *Pipeline) resolveDiagram(ctx context.Context, d Directive) Resolution {
	if p.render == nil {
		return Resolution{Failure: "diagram rendering not configured"}
	}

	engine := CanonicalEngine(d.Engine)
	source := d.Source
	if engine == engineMermaid {
		source = SanitizeMermaid(source)
	}

	contentID := diagramContentID(engine, source)
	if p.urlCache != nil {
		if url, err := p.urlCache.Get(ctx, contentID); err == nil && url != "" {
			return Resolution{URL: url}
		}
	}

	if len(source) > 0 && len(source) <= p.cfg.InlineURLLimit {
		if url, err := p.render.RenderURL(engine, source, p.cfg.DiagramFormat); err == nil {
			checkCtx, cancel := context.WithTimeout(ctx, p.cfg.CheckTimeout)
			err = p.render.CheckURL(checkCtx, url)
			cancel()
			if err == nil {
				p.cacheURL(ctx, contentID, url)
				return Resolution{URL: url}
			}
		}
	}

	data, err := p.render.Render(ctx, engine, source, p.cfg.DiagramFormat)
	if err != nil {
		if errors.Is(err, domain.ErrDiagramSyntax) {
			return Resolution{Failure: "Diagram syntax error: " + truncate(err.Error(), maxServerMessage)}
		}
		return Resolution{Failure: err.Error()}
	}

	if p.storage != nil {
		url, putErr := p.storage.Put(ctx, data, "diagrams", contentID, formatContentType(p.cfg.DiagramFormat))
		if putErr == nil {
			p.cacheURL(ctx, contentID, url)
			return Resolution{URL: url}
		}
		p.logger.Warn("diagram upload failed, falling back to data URL", "error", putErr)
	}

	if p.cfg.DiagramFormat == driven.DiagramFormatSVG {
		return Resolution{URL: dataURL("image/svg+xml", data)}
	}
	return Resolution{Failure: domain.ErrStorageNotConfigured.Error()}
}

// resolveImageSearch satisfies an image-search placeholder with the first hit
// from the external search service. Empty results and errors both fail the
// directive; search is supplementary content, so there is no retry.
func (p *Pipeline) resolveImageSearch(ctx context.Context, d Directive) Resolution {
	if p.search == nil {
		return Resolution{Failure: "image search not configured"}
	}

	results, err := p.search.Search(ctx, d.Description, p.cfg.SearchLimit)
	if err != nil {
		return Resolution{Failure: err.Error()}
	}
	if len(results) == 0 {
		return Resolution{Failure: fmt.Sprintf("no images found for %q", d.Description)}
	}
	return Resolution{URL: results[0].URL}
}

// resolveImageGenerate satisfies a generation placeholder via the
// text-to-image service. Only HTTP 502 (upstream overload) is retried, with
// a fixed delay, up to MaxRetries attempts.
func (p *Pipeline) resolveImageGenerate(ctx context.Context, d Directive) Resolution {
	if p.imageGen == nil {
		return Resolution{Failure: "image generation not configured"}
	}

	prompt := d.Description
	if p.cfg.EnhancePrompts {
		prompt += promptEnhancement
	}

	var data []byte
	var err error
	for attempt := 1; attempt <= p.cfg.MaxRetries; attempt++ {
		data, err = p.imageGen.Generate(ctx, prompt)
		if err == nil {
			break
		}
		if !errors.Is(err, domain.ErrUpstreamOverloaded) || attempt == p.cfg.MaxRetries {
			return Resolution{Failure: err.Error()}
		}

		select {
		case <-time.After(p.cfg.RetryDelay):
		case <-ctx.Done():
			return Resolution{Failure: ctx.Err().Error()}
		}
	}

	if p.storage != nil {
		url, putErr := p.storage.Put(ctx, data, "generated", bytesContentID(data), "image/png")
		if putErr == nil {
			return Resolution{URL: url}
		}
		p.logger.Warn("generated image upload failed, falling back to data URL", "error", putErr)
	}

	// Data URLs bloat the stored document; acceptable for low-volume use
	// when no durable storage is configured.
	return Resolution{URL: dataURL("image/png", data)}
}

// urlCacheTTL bounds how long resolved diagram URLs stay cached. Stored
// objects are content-addressed, so a stale entry can only cost a re-render.
const urlCacheTTL = 7 * 24 * time.Hour

// cacheURL records a resolved URL; cache failures are logged, never surfaced.
func (p *Pipeline) cacheURL(ctx context.Context, contentID, url string) {
	if p.urlCache == nil {
		return
	}
	if err := p.urlCache.Set(ctx, contentID, url, urlCacheTTL); err != nil {
		p.logger.Warn("failed to cache diagram url", "error", err)
	}
}

// diagramContentID derives a content-addressed storage key so identical
// diagram source reuses the same stored object.
func diagramContentID(engine, source string) string {
	sum := sha256.Sum256([]byte(engine + "\x00" + source))
	return hex.EncodeToString(sum[:])
}

func bytesContentID(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func dataURL(contentType string, data []byte) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func formatContentType(format driven.DiagramFormat) string {
	if format == driven.DiagramFormatSVG {
		return "image/svg+xml"
	}
	return "image/png"
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
