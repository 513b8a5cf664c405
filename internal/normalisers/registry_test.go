package normalisers

import (
	"testing"

	"github.com/prince-yn/study-space-backend/internal/core/domain"
	"github.com/prince-yn/study-space-backend/internal/core/ports/driven"
)

// Mock normaliser for testing
type mockNormaliser struct {
	name     string
	kinds    []domain.MaterialKind
	priority int
}

func (m *mockNormaliser) Normalise(material *domain.Material) driven.NoteRequest {
	return driven.NoteRequest{Title: material.Title, Text: material.Content + "-" + m.name}
}

func (m *mockNormaliser) SupportedKinds() []domain.MaterialKind {
	return m.kinds
}

func (m *mockNormaliser) Priority() int {
	return m.priority
}

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("expected non-nil registry")
	}
}

func TestRegistry_Register(t *testing.T) {
	r := NewRegistry()
	mock := &mockNormaliser{name: "test", kinds: []domain.MaterialKind{domain.MaterialKindPrompt}, priority: 50}

	r.Register(mock)

	kinds := r.List()
	if len(kinds) != 1 {
		t.Errorf("expected 1 kind, got %d", len(kinds))
	}
	if kinds[0] != domain.MaterialKindPrompt {
		t.Errorf("expected prompt, got %s", kinds[0])
	}
}

func TestRegistry_Get(t *testing.T) {
	r := NewRegistry()
	mock := &mockNormaliser{name: "test", kinds: []domain.MaterialKind{domain.MaterialKindPrompt}, priority: 50}
	r.Register(mock)

	// Should find registered kind
	n := r.Get(domain.MaterialKindPrompt)
	if n == nil {
		t.Fatal("expected to find normaliser")
	}

	// Should not find unregistered kind
	n = r.Get(domain.MaterialKindPDF)
	if n != nil {
		t.Error("expected nil for unregistered kind")
	}
}

func TestRegistry_Get_PrioritySelection(t *testing.T) {
	r := NewRegistry()

	prompt := []domain.MaterialKind{domain.MaterialKindPrompt}
	lowPriority := &mockNormaliser{name: "low", kinds: prompt, priority: 10}
	highPriority := &mockNormaliser{name: "high", kinds: prompt, priority: 90}
	mediumPriority := &mockNormaliser{name: "medium", kinds: prompt, priority: 50}

	// Register in random order
	r.Register(lowPriority)
	r.Register(highPriority)
	r.Register(mediumPriority)

	// Should return highest priority
	n := r.Get(domain.MaterialKindPrompt)
	if n == nil {
		t.Fatal("expected to find normaliser")
	}

	result := n.Normalise(&domain.Material{Content: "test"})
	if result.Text != "test-high" {
		t.Errorf("expected high priority normaliser, got %s", result.Text)
	}
}

func TestRegistry_GetAll(t *testing.T) {
	r := NewRegistry()

	prompt := []domain.MaterialKind{domain.MaterialKindPrompt}
	n1 := &mockNormaliser{name: "n1", kinds: prompt, priority: 10}
	n2 := &mockNormaliser{name: "n2", kinds: prompt, priority: 90}
	n3 := &mockNormaliser{name: "n3", kinds: []domain.MaterialKind{domain.MaterialKindImage}, priority: 50}

	r.Register(n1)
	r.Register(n2)
	r.Register(n3)

	// Should return 2 normalisers for prompt, sorted by priority
	all := r.GetAll(domain.MaterialKindPrompt)
	if len(all) != 2 {
		t.Fatalf("expected 2 normalisers, got %d", len(all))
	}

	// First should be highest priority
	if all[0].Priority() != 90 {
		t.Errorf("expected first priority 90, got %d", all[0].Priority())
	}
	if all[1].Priority() != 10 {
		t.Errorf("expected second priority 10, got %d", all[1].Priority())
	}

	// Should return 1 for image
	all = r.GetAll(domain.MaterialKindImage)
	if len(all) != 1 {
		t.Errorf("expected 1 normaliser for image, got %d", len(all))
	}
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()

	for _, kind := range []domain.MaterialKind{
		domain.MaterialKindPrompt,
		domain.MaterialKindImage,
		domain.MaterialKindPDF,
	} {
		if r.Get(kind) == nil {
			t.Errorf("expected a default normaliser for kind %q", kind)
		}
	}
}

func TestPromptNormaliser(t *testing.T) {
	n := &PromptNormaliser{}

	material := &domain.Material{
		Kind:    domain.MaterialKindPrompt,
		Title:   "Cell Biology",
		Content: "Explain mitosis.\r\n\r\n\r\n\r\nInclude diagrams.  ",
	}

	req := n.Normalise(material)

	if req.Title != "Cell Biology" {
		t.Errorf("expected title carried over, got %q", req.Title)
	}
	if req.Text != "Explain mitosis.\n\nInclude diagrams." {
		t.Errorf("unexpected normalised text: %q", req.Text)
	}
}

func TestFileNormaliser(t *testing.T) {
	n := &FileNormaliser{}

	material := &domain.Material{
		Kind:     domain.MaterialKindImage,
		Title:    "Lecture slide",
		FileURL:  "https://media.example/uploads/slide.png",
		MimeType: "image/png",
	}

	req := n.Normalise(material)

	if req.ImageURL != material.FileURL {
		t.Errorf("expected file URL carried over, got %q", req.ImageURL)
	}
	if req.MimeType != "image/png" {
		t.Errorf("expected mime type carried over, got %q", req.MimeType)
	}
}
