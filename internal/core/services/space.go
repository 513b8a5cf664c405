package services

import (
	"context"
	"strings"
	"time"

	"github.com/prince-yn/study-space-backend/internal/core/domain"
	"github.com/prince-yn/study-space-backend/internal/core/ports/driven"
	"github.com/prince-yn/study-space-backend/internal/core/ports/driving"
)

// Ensure spaceService implements SpaceService
var _ driving.SpaceService = (*spaceService)(nil)

// spaceService implements the SpaceService interface
type spaceService struct {
	spaceStore driven.SpaceStore
	userStore  driven.UserStore
}

// NewSpaceService creates a new SpaceService
func NewSpaceService(
	spaceStore driven.SpaceStore,
	userStore driven.UserStore,
) driving.SpaceService {
	return &spaceService{
		spaceStore: spaceStore,
		userStore:  userStore,
	}
}

// Create creates a space owned by userID
func (s *spaceService) Create(ctx context.Context, userID string, req domain.CreateSpaceRequest) (*domain.Space, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	space := &domain.Space{
		ID:          domain.GenerateID(),
		OwnerID:     userID,
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		MemberIDs:   []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.spaceStore.Save(ctx, space); err != nil {
		return nil, err
	}

	return space, nil
}

// Get retrieves a space the user can access
func (s *spaceService) Get(ctx context.Context, userID, spaceID string) (*domain.Space, error) {
	space, err := s.spaceStore.Get(ctx, spaceID)
	if err != nil {
		return nil, err
	}

	if !space.HasMember(userID) {
		return nil, domain.ErrForbidden
	}

	return space, nil
}

// List retrieves spaces the user owns or is a member of
func (s *spaceService) List(ctx context.Context, userID string) ([]*domain.Space, error) {
	return s.spaceStore.ListByUser(ctx, userID)
}

// Update modifies a space the user can access
func (s *spaceService) Update(ctx context.Context, userID, spaceID string, req domain.UpdateSpaceRequest) (*domain.Space, error) {
	space, err := s.Get(ctx, userID, spaceID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		space.Name = name
	}
	if req.Description != nil {
		space.Description = strings.TrimSpace(*req.Description)
	}
	space.UpdatedAt = time.Now()

	if err := s.spaceStore.Save(ctx, space); err != nil {
		return nil, err
	}

	return space, nil
}

// AddMember adds a member to a space the user owns
func (s *spaceService) AddMember(ctx context.Context, userID, spaceID, memberID string) error {
	space, err := s.ownedSpace(ctx, userID, spaceID)
	if err != nil {
		return err
	}

	// Member must be a real user
	if _, err := s.userStore.Get(ctx, memberID); err != nil {
		return err
	}

	if space.HasMember(memberID) {
		return domain.ErrAlreadyExists
	}

	space.MemberIDs = append(space.MemberIDs, memberID)
	space.UpdatedAt = time.Now()

	return s.spaceStore.Save(ctx, space)
}

// RemoveMember removes a member from a space the user owns
func (s *spaceService) RemoveMember(ctx context.Context, userID, spaceID, memberID string) error {
	space, err := s.ownedSpace(ctx, userID, spaceID)
	if err != nil {
		return err
	}

	found := false
	members := make([]string, 0, len(space.MemberIDs))
	for _, id := range space.MemberIDs {
		if id == memberID {
			found = true
			continue
		}
		members = append(members, id)
	}
	if !found {
		return domain.ErrNotFound
	}

	space.MemberIDs = members
	space.UpdatedAt = time.Now()

	return s.spaceStore.Save(ctx, space)
}

// Delete removes a space the user owns
func (s *spaceService) Delete(ctx context.Context, userID, spaceID string) error {
	if _, err := s.ownedSpace(ctx, userID, spaceID); err != nil {
		return err
	}
	return s.spaceStore.Delete(ctx, spaceID)
}

// ownedSpace fetches a space and verifies ownership
func (s *spaceService) ownedSpace(ctx context.Context, userID, spaceID string) (*domain.Space, error) {
	space, err := s.spaceStore.Get(ctx, spaceID)
	if err != nil {
		return nil, err
	}
	if space.OwnerID != userID {
		return nil, domain.ErrForbidden
	}
	return space, nil
}
