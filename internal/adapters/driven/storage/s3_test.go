package storage

import "testing"

func TestExtensionFor(t *testing.T) {
	tests := []struct {
		contentType string
		want        string
	}{
		{"image/svg+xml", ".svg"},
		{"image/png", ".png"},
		{"image/jpeg", ".jpg"},
		{"application/pdf", ".pdf"},
		{"application/octet-stream", ""},
	}

	for _, tt := range tests {
		if got := extensionFor(tt.contentType); got != tt.want {
			t.Errorf("extensionFor(%q) = %q, want %q", tt.contentType, got, tt.want)
		}
	}
}

func TestObjectURL(t *testing.T) {
	s := &S3Storage{bucket: "media", publicURL: "https://cdn.example.com"}

	got := s.objectURL("diagrams/abc.svg")
	want := "https://cdn.example.com/diagrams/abc.svg"
	if got != want {
		t.Errorf("objectURL = %q, want %q", got, want)
	}
}
