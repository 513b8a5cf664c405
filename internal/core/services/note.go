package services

import (
	"context"

	"github.com/prince-yn/study-space-backend/internal/core/domain"
	"github.com/prince-yn/study-space-backend/internal/core/ports/driven"
	"github.com/prince-yn/study-space-backend/internal/core/ports/driving"
)

// Ensure noteService implements NoteService
var _ driving.NoteService = (*noteService)(nil)

// noteService exposes generated notes (read side)
type noteService struct {
	noteStore    driven.NoteStore
	subjectStore driven.SubjectStore
	spaceStore   driven.SpaceStore
}

// NewNoteService creates a new NoteService
func NewNoteService(
	noteStore driven.NoteStore,
	subjectStore driven.SubjectStore,
	spaceStore driven.SpaceStore,
) driving.NoteService {
	return &noteService{
		noteStore:    noteStore,
		subjectStore: subjectStore,
		spaceStore:   spaceStore,
	}
}

// Get retrieves a note by ID
func (s *noteService) Get(ctx context.Context, userID, noteID string) (*domain.Note, error) {
	note, err := s.noteStore.Get(ctx, noteID)
	if err != nil {
		return nil, err
	}

	if err := s.checkAccess(ctx, userID, note.SubjectID); err != nil {
		return nil, err
	}

	return note, nil
}

// ListBySubject retrieves all notes for a subject
func (s *noteService) ListBySubject(ctx context.Context, userID, subjectID string) ([]*domain.Note, error) {
	if err := s.checkAccess(ctx, userID, subjectID); err != nil {
		return nil, err
	}
	return s.noteStore.ListBySubject(ctx, subjectID)
}

// checkAccess verifies the user can access the subject's space
func (s *noteService) checkAccess(ctx context.Context, userID, subjectID string) error {
	subject, err := s.subjectStore.Get(ctx, subjectID)
	if err != nil {
		return err
	}
	space, err := s.spaceStore.Get(ctx, subject.SpaceID)
	if err != nil {
		return err
	}
	if !space.HasMember(userID) {
		return domain.ErrForbidden
	}
	return nil
}
