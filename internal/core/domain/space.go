package domain

import "time"

// Space is a collaborative study space owned by a user.
// Members can add subjects and materials; only the owner can delete the space.
type Space struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	MemberIDs   []string  `json:"member_ids"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// HasMember checks whether a user can access the space
func (s *Space) HasMember(userID string) bool {
	if s.OwnerID == userID {
		return true
	}
	for _, id := range s.MemberIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// CreateSpaceRequest is the payload for creating a space
type CreateSpaceRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// UpdateSpaceRequest is the payload for updating a space
type UpdateSpaceRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}
