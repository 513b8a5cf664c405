package domain

import "time"

// MediaKind identifies how an embedded image was produced
type MediaKind string

const (
	MediaKindImageSearch   MediaKind = "image_search"
	MediaKindImageGenerate MediaKind = "image_generate"
	MediaKindDiagram       MediaKind = "diagram"
)

// EmbeddedMedia is one entry in a note's media manifest: an image or diagram
// that was resolved and embedded during content finalization.
type EmbeddedMedia struct {
	Description string    `json:"description"`
	URL         string    `json:"url"`
	Kind        MediaKind `json:"kind"`
}

// FinalizedContent is the result of running generated Markdown through the
// content pipeline: directives replaced with image tags plus the manifest of
// everything that was embedded.
type FinalizedContent struct {
	Content       string          `json:"content"`
	EmbeddedMedia []EmbeddedMedia `json:"embedded_media"`
}

// Note is a generated Markdown study note for a material
type Note struct {
	ID            string          `json:"id"`
	SubjectID     string          `json:"subject_id"`
	MaterialID    string          `json:"material_id"`
	Title         string          `json:"title"`
	Content       string          `json:"content"`
	EmbeddedMedia []EmbeddedMedia `json:"embedded_media"`
	Model         string          `json:"model,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
