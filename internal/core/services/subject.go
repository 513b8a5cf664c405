package services

import (
	"context"
	"strings"
	"time"

	"github.com/prince-yn/study-space-backend/internal/core/domain"
	"github.com/prince-yn/study-space-backend/internal/core/ports/driven"
	"github.com/prince-yn/study-space-backend/internal/core/ports/driving"
)

// Ensure subjectService implements SubjectService
var _ driving.SubjectService = (*subjectService)(nil)

// subjectService implements the SubjectService interface
type subjectService struct {
	subjectStore driven.SubjectStore
	spaceStore   driven.SpaceStore
}

// NewSubjectService creates a new SubjectService
func NewSubjectService(
	subjectStore driven.SubjectStore,
	spaceStore driven.SpaceStore,
) driving.SubjectService {
	return &subjectService{
		subjectStore: subjectStore,
		spaceStore:   spaceStore,
	}
}

// Create creates a subject in a space the user can access
func (s *subjectService) Create(ctx context.Context, userID, spaceID string, req domain.CreateSubjectRequest) (*domain.Subject, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}

	if err := s.checkAccess(ctx, userID, spaceID); err != nil {
		return nil, err
	}

	now := time.Now()
	subject := &domain.Subject{
		ID:        domain.GenerateID(),
		SpaceID:   spaceID,
		Name:      name,
		Color:     strings.TrimSpace(req.Color),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.subjectStore.Save(ctx, subject); err != nil {
		return nil, err
	}

	return subject, nil
}

// Get retrieves a subject the user can access
func (s *subjectService) Get(ctx context.Context, userID, subjectID string) (*domain.Subject, error) {
	subject, err := s.subjectStore.Get(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	if err := s.checkAccess(ctx, userID, subject.SpaceID); err != nil {
		return nil, err
	}

	return subject, nil
}

// ListBySpace retrieves subjects for a space the user can access
func (s *subjectService) ListBySpace(ctx context.Context, userID, spaceID string) ([]*domain.Subject, error) {
	if err := s.checkAccess(ctx, userID, spaceID); err != nil {
		return nil, err
	}
	return s.subjectStore.ListBySpace(ctx, spaceID)
}

// Delete removes a subject from a space the user can access
func (s *subjectService) Delete(ctx context.Context, userID, subjectID string) error {
	if _, err := s.Get(ctx, userID, subjectID); err != nil {
		return err
	}
	return s.subjectStore.Delete(ctx, subjectID)
}

// checkAccess verifies the user is a member of the subject's space
func (s *subjectService) checkAccess(ctx context.Context, userID, spaceID string) error {
	space, err := s.spaceStore.Get(ctx, spaceID)
	if err != nil {
		return err
	}
	if !space.HasMember(userID) {
		return domain.ErrForbidden
	}
	return nil
}
