package driven

import (
	"context"
)

// NoteRequest describes the material a note should be generated from
type NoteRequest struct {
	// Title is the material title, used to steer the note heading
	Title string

	// Text is the normalised textual content (prompt text, extracted text)
	Text string

	// ImageURL points at an uploaded image/PDF for multimodal models
	ImageURL string

	// MimeType of the source material
	MimeType string
}

// LLMService generates structured Markdown notes and answers questions.
// The generated Markdown may contain image/diagram directives which are
// resolved by the content pipeline before persistence.
type LLMService interface {
	// GenerateNotes produces structured Markdown study notes for a material
	GenerateNotes(ctx context.Context, req NoteRequest) (string, error)

	// Chat answers a question grounded in the provided context text
	Chat(ctx context.Context, contextText, question string) (string, error)

	// Model returns the model name being used
	Model() string

	// Ping verifies the LLM service is available
	Ping(ctx context.Context) error

	// Close releases resources held by the LLM service
	Close() error
}
