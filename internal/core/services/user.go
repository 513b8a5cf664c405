package services

import (
	"context"

	"github.com/prince-yn/study-space-backend/internal/core/domain"
	"github.com/prince-yn/study-space-backend/internal/core/ports/driven"
	"github.com/prince-yn/study-space-backend/internal/core/ports/driving"
)

// Ensure userService implements UserService
var _ driving.UserService = (*userService)(nil)

// userService implements the UserService interface
type userService struct {
	userStore    driven.UserStore
	sessionStore driven.SessionStore
}

// NewUserService creates a new UserService
func NewUserService(
	userStore driven.UserStore,
	sessionStore driven.SessionStore,
) driving.UserService {
	return &userService{
		userStore:    userStore,
		sessionStore: sessionStore,
	}
}

// Get retrieves a user by ID
func (s *userService) Get(ctx context.Context, id string) (*domain.UserSummary, error) {
	user, err := s.userStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.ToSummary(), nil
}

// List retrieves all users
func (s *userService) List(ctx context.Context) ([]*domain.UserSummary, error) {
	users, err := s.userStore.List(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]*domain.UserSummary, 0, len(users))
	for _, user := range users {
		summaries = append(summaries, user.ToSummary())
	}
	return summaries, nil
}

// Delete removes a user and their sessions
func (s *userService) Delete(ctx context.Context, id string) error {
	if _, err := s.userStore.Get(ctx, id); err != nil {
		return err
	}

	// Invalidate all sessions first
	_ = s.sessionStore.DeleteByUser(ctx, id)

	return s.userStore.Delete(ctx, id)
}
