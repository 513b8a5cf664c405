package domain

import "time"

// Subject groups materials and notes within a space
type Subject struct {
	ID        string    `json:"id"`
	SpaceID   string    `json:"space_id"`
	Name      string    `json:"name"`
	Color     string    `json:"color,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateSubjectRequest is the payload for creating a subject
type CreateSubjectRequest struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}
