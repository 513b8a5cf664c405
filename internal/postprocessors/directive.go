package postprocessors

import "github.com/prince-yn/study-space-backend/internal/core/domain"

// DirectiveKind identifies the grammar a directive was matched by
type DirectiveKind string

const (
	DirectiveImageSearch   DirectiveKind = "image_search"
	DirectiveImageGenerate DirectiveKind = "image_generate"
	DirectiveDiagram       DirectiveKind = "diagram"
)

// MediaKind maps the directive kind to the manifest media kind
func (k DirectiveKind) MediaKind() domain.MediaKind {
	switch k {
	case DirectiveImageSearch:
		return domain.MediaKindImageSearch
	case DirectiveImageGenerate:
		return domain.MediaKindImageGenerate
	default:
		return domain.MediaKindDiagram
	}
}

// Directive is a detected placeholder or diagram block inside a Markdown
// document. Directives are created once per extraction pass from an immutable
// input string and consumed exactly once by the rewriter.
type Directive struct {
	Kind DirectiveKind

	// RawSpan is the exact original substring matched
	RawSpan string

	// Position is the byte offset of the match start in the original text.
	// Together with len(RawSpan) it fully addresses the span, so duplicates
	// of the same text are distinct directives.
	Position int

	// Description is the free-text payload for image search/generation
	Description string

	// Engine and Source carry the payload for diagram directives
	Engine string
	Source string
}

// Resolution is the outcome of attempting to satisfy one directive
type Resolution struct {
	// URL is the resolved image location: an HTTP(S) URL or a data URL
	URL string

	// Failure holds the human-readable reason when resolution failed
	Failure string
}

// Resolved reports whether the directive produced a usable URL
func (r Resolution) Resolved() bool {
	return r.Failure == ""
}
