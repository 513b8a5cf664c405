package driven

import (
	"context"

	"github.com/prince-yn/study-space-backend/internal/core/domain"
)

// ContentPipeline finalizes AI-generated Markdown before persistence:
// image and diagram directives are resolved to concrete URLs and rewritten
// into standard Markdown image tags.
//
// Finalize never fails because of a single directive; per-directive failures
// degrade to inline annotations. It returns an error only for structural
// problems (empty input) or context cancellation.
type ContentPipeline interface {
	Finalize(ctx context.Context, markdown string) (*domain.FinalizedContent, error)
}

// Normaliser turns raw material content into LLM-ready input.
type Normaliser interface {
	// Normalise transforms a material into a note-generation request.
	Normalise(material *domain.Material) NoteRequest

	// SupportedKinds returns material kinds this normaliser handles.
	SupportedKinds() []domain.MaterialKind

	// Priority breaks ties when several normalisers claim a kind
	// (higher wins).
	Priority() int
}

// NormaliserRegistry manages material normalisers.
type NormaliserRegistry interface {
	// Get retrieves the best-matching normaliser for a material kind.
	// Returns nil if nothing is registered for the kind.
	Get(kind domain.MaterialKind) Normaliser

	// Register registers a normaliser.
	Register(n Normaliser)

	// List returns all registered material kinds.
	List() []domain.MaterialKind
}
