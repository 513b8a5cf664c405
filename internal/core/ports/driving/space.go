package driving

import (
	"context"

	"github.com/prince-yn/study-space-backend/internal/core/domain"
)

// SpaceService handles study space operations.
// All operations check membership; Delete is owner-only.
type SpaceService interface {
	// Create creates a space owned by userID
	Create(ctx context.Context, userID string, req domain.CreateSpaceRequest) (*domain.Space, error)

	// Get retrieves a space the user can access
	Get(ctx context.Context, userID, spaceID string) (*domain.Space, error)

	// List retrieves spaces the user owns or is a member of
	List(ctx context.Context, userID string) ([]*domain.Space, error)

	// Update modifies a space the user can access
	Update(ctx context.Context, userID, spaceID string, req domain.UpdateSpaceRequest) (*domain.Space, error)

	// AddMember adds a member to a space the user owns
	AddMember(ctx context.Context, userID, spaceID, memberID string) error

	// RemoveMember removes a member from a space the user owns
	RemoveMember(ctx context.Context, userID, spaceID, memberID string) error

	// Delete removes a space the user owns
	Delete(ctx context.Context, userID, spaceID string) error
}

// SubjectService handles subject operations within a space
type SubjectService interface {
	// Create creates a subject in a space the user can access
	Create(ctx context.Context, userID, spaceID string, req domain.CreateSubjectRequest) (*domain.Subject, error)

	// Get retrieves a subject the user can access
	Get(ctx context.Context, userID, subjectID string) (*domain.Subject, error)

	// ListBySpace retrieves subjects for a space the user can access
	ListBySpace(ctx context.Context, userID, spaceID string) ([]*domain.Subject, error)

	// Delete removes a subject from a space the user can access
	Delete(ctx context.Context, userID, subjectID string) error
}
