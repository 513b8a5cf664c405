package driving

import (
	"context"

	"github.com/prince-yn/study-space-backend/internal/core/domain"
)

// MaterialService handles study material operations.
// Creating a material enqueues a note-generation task; the material's Status
// tracks its progress.
type MaterialService interface {
	// Create adds material to a subject and enqueues note generation
	Create(ctx context.Context, userID, subjectID string, req domain.CreateMaterialRequest) (*domain.Material, error)

	// Get retrieves a material (with current processing status)
	Get(ctx context.Context, userID, materialID string) (*domain.Material, error)

	// ListBySubject retrieves all materials for a subject
	ListBySubject(ctx context.Context, userID, subjectID string) ([]*domain.Material, error)

	// Regenerate re-enqueues note generation for an existing material
	Regenerate(ctx context.Context, userID, materialID string) (*domain.Material, error)

	// Delete removes a material and its note
	Delete(ctx context.Context, userID, materialID string) error
}

// NoteService exposes generated notes
type NoteService interface {
	// Get retrieves a note by ID
	Get(ctx context.Context, userID, noteID string) (*domain.Note, error)

	// ListBySubject retrieves all notes for a subject
	ListBySubject(ctx context.Context, userID, subjectID string) ([]*domain.Note, error)
}

// ChatService answers questions over a subject's notes
type ChatService interface {
	// Ask answers a question using the subject's notes as context
	Ask(ctx context.Context, userID, subjectID string, req domain.ChatRequest) (*domain.ChatResponse, error)
}
