package domain

import "time"

// ChatRequest is a question asked over a subject's notes
type ChatRequest struct {
	Question string `json:"question"`
}

// ChatResponse is the model's answer plus which notes supplied context
type ChatResponse struct {
	Answer    string    `json:"answer"`
	NoteIDs   []string  `json:"note_ids"`
	Model     string    `json:"model,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ImageResult is one hit from an external image search
type ImageResult struct {
	URL          string `json:"url"`
	Title        string `json:"title,omitempty"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}
