package driving

import (
	"context"

	"github.com/prince-yn/study-space-backend/internal/core/domain"
)

// AuthService handles authentication operations
type AuthService interface {
	// Register creates a new account and returns a session
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.LoginResponse, error)

	// Authenticate validates credentials and creates a session
	Authenticate(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)

	// ValidateToken validates a bearer token and returns the auth context
	ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error)

	// RefreshToken exchanges a refresh token for a new session
	RefreshToken(ctx context.Context, req domain.RefreshRequest) (*domain.LoginResponse, error)

	// Logout invalidates the session
	Logout(ctx context.Context, sessionID string) error
}

// UserService handles user management
type UserService interface {
	// Get retrieves a user by ID
	Get(ctx context.Context, id string) (*domain.UserSummary, error)

	// List retrieves all users (admin only)
	List(ctx context.Context) ([]*domain.UserSummary, error)

	// Delete removes a user and their sessions (admin only)
	Delete(ctx context.Context, id string) error
}
