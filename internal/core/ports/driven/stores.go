package driven

import (
	"context"

	"github.com/prince-yn/study-space-backend/internal/core/domain"
)

// UserStore handles user persistence
type UserStore interface {
	// Save creates or updates a user
	Save(ctx context.Context, user *domain.User) error

	// Get retrieves a user by ID
	Get(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// List retrieves all users
	List(ctx context.Context) ([]*domain.User, error)

	// Delete deletes a user
	Delete(ctx context.Context, id string) error

	// UpdateLastLogin records a successful login
	UpdateLastLogin(ctx context.Context, id string) error
}

// SessionStore handles session persistence (Redis or PostgreSQL)
type SessionStore interface {
	// Save stores a session
	Save(ctx context.Context, session *domain.Session) error

	// Get retrieves a session by ID
	Get(ctx context.Context, id string) (*domain.Session, error)

	// GetByRefreshToken retrieves a session by refresh token
	GetByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error)

	// Delete deletes a session
	Delete(ctx context.Context, id string) error

	// DeleteByUser deletes all sessions for a user
	DeleteByUser(ctx context.Context, userID string) error
}

// SpaceStore handles study space persistence
type SpaceStore interface {
	// Save creates or updates a space
	Save(ctx context.Context, space *domain.Space) error

	// Get retrieves a space by ID
	Get(ctx context.Context, id string) (*domain.Space, error)

	// ListByUser retrieves spaces the user owns or is a member of
	ListByUser(ctx context.Context, userID string) ([]*domain.Space, error)

	// Delete deletes a space
	Delete(ctx context.Context, id string) error
}

// SubjectStore handles subject persistence
type SubjectStore interface {
	// Save creates or updates a subject
	Save(ctx context.Context, subject *domain.Subject) error

	// Get retrieves a subject by ID
	Get(ctx context.Context, id string) (*domain.Subject, error)

	// ListBySpace retrieves all subjects for a space
	ListBySpace(ctx context.Context, spaceID string) ([]*domain.Subject, error)

	// Delete deletes a subject and cascades to its materials and notes
	Delete(ctx context.Context, id string) error
}

// MaterialStore handles material persistence
type MaterialStore interface {
	// Save creates or updates a material
	Save(ctx context.Context, material *domain.Material) error

	// Get retrieves a material by ID
	Get(ctx context.Context, id string) (*domain.Material, error)

	// ListBySubject retrieves all materials for a subject
	ListBySubject(ctx context.Context, subjectID string) ([]*domain.Material, error)

	// Delete deletes a material
	Delete(ctx context.Context, id string) error

	// SetStatus updates the processing status and error for a material
	SetStatus(ctx context.Context, id string, status domain.MaterialStatus, reason string) error
}

// NoteStore handles generated note persistence
type NoteStore interface {
	// Save creates or updates a note
	Save(ctx context.Context, note *domain.Note) error

	// Get retrieves a note by ID
	Get(ctx context.Context, id string) (*domain.Note, error)

	// GetByMaterial retrieves the note generated for a material
	GetByMaterial(ctx context.Context, materialID string) (*domain.Note, error)

	// ListBySubject retrieves all notes for a subject
	ListBySubject(ctx context.Context, subjectID string) ([]*domain.Note, error)

	// Delete deletes a note
	Delete(ctx context.Context, id string) error
}
