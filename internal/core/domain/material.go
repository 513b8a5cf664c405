package domain

import "time"

// MaterialKind identifies what kind of raw study material was uploaded
type MaterialKind string

const (
	MaterialKindImage  MaterialKind = "image"  // uploaded photo/scan, stored externally
	MaterialKindPDF    MaterialKind = "pdf"    // uploaded PDF, stored externally
	MaterialKindPrompt MaterialKind = "prompt" // free-text prompt typed by the user
)

// MaterialStatus tracks the note-generation lifecycle of a material
type MaterialStatus string

const (
	MaterialStatusPending    MaterialStatus = "pending"
	MaterialStatusProcessing MaterialStatus = "processing"
	MaterialStatusReady      MaterialStatus = "ready"
	MaterialStatusFailed     MaterialStatus = "failed"
)

// Material is a piece of raw study material attached to a subject.
// Creating a material enqueues a background note-generation task; Status
// reflects where that task is.
type Material struct {
	ID        string         `json:"id"`
	SubjectID string         `json:"subject_id"`
	UserID    string         `json:"user_id"`
	Kind      MaterialKind   `json:"kind"`
	Title     string         `json:"title"`
	// Content holds the prompt text for prompt materials, empty otherwise
	Content string `json:"content,omitempty"`
	// FileURL points at the uploaded file for image/pdf materials
	FileURL  string `json:"file_url,omitempty"`
	MimeType string `json:"mime_type,omitempty"`

	Status MaterialStatus `json:"status"`
	// Error holds the failure reason when Status is failed
	Error string `json:"error,omitempty"`

	NoteID    string    `json:"note_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateMaterialRequest is the payload for adding material to a subject
type CreateMaterialRequest struct {
	Kind     MaterialKind `json:"kind"`
	Title    string       `json:"title"`
	Content  string       `json:"content,omitempty"`
	FileURL  string       `json:"file_url,omitempty"`
	MimeType string       `json:"mime_type,omitempty"`
}
