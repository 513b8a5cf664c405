package normalisers

import (
	"sort"
	"strings"
	"sync"

	"github.com/prince-yn/study-space-backend/internal/core/domain"
	"github.com/prince-yn/study-space-backend/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.NormaliserRegistry = (*Registry)(nil)

// Registry implements NormaliserRegistry with priority-based selection.
// When multiple normalisers claim a material kind, the highest priority one
// is used.
type Registry struct {
	mu          sync.RWMutex
	normalisers []driven.Normaliser
}

// NewRegistry creates a new normaliser registry.
func NewRegistry() *Registry {
	return &Registry{
		normalisers: make([]driven.Normaliser, 0),
	}
}

// Register registers a normaliser.
// Normalisers are stored and later selected by priority.
func (r *Registry) Register(normaliser driven.Normaliser) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.normalisers = append(r.normalisers, normaliser)
}

// Get retrieves the best-matching normaliser for a material kind.
// Returns nil if nothing is registered for the kind.
// When multiple match, the highest priority normaliser is returned.
func (r *Registry) Get(kind domain.MaterialKind) driven.Normaliser {
	matches := r.GetAll(kind)
	if len(matches) == 0 {
		return nil
	}
	return matches[0] // Already sorted by priority (highest first)
}

// GetAll retrieves all normalisers that handle a kind, sorted by priority
// (highest first).
func (r *Registry) GetAll(kind domain.MaterialKind) []driven.Normaliser {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []driven.Normaliser

	for _, n := range r.normalisers {
		if handlesKind(n.SupportedKinds(), kind) {
			matches = append(matches, n)
		}
	}

	// Sort by priority (highest first)
	sort.Slice(matches, func(i, j int) bool {
		return matches[i].Priority() > matches[j].Priority()
	})

	return matches
}

// List returns all registered material kinds.
func (r *Registry) List() []domain.MaterialKind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kindSet := make(map[domain.MaterialKind]struct{})
	for _, n := range r.normalisers {
		for _, k := range n.SupportedKinds() {
			kindSet[k] = struct{}{}
		}
	}

	kinds := make([]domain.MaterialKind, 0, len(kindSet))
	for k := range kindSet {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}

func handlesKind(supported []domain.MaterialKind, kind domain.MaterialKind) bool {
	for _, k := range supported {
		if k == kind {
			return true
		}
	}
	return false
}

// DefaultRegistry creates a registry with the built-in normalisers registered.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.Register(&PromptNormaliser{})
	r.Register(&FileNormaliser{})

	return r
}

// PromptNormaliser handles free-text prompt materials.
type PromptNormaliser struct{}

// Normalise cleans up the prompt text for the LLM.
func (n *PromptNormaliser) Normalise(material *domain.Material) driven.NoteRequest {
	content := material.Content

	// Normalize line endings
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	// Remove excessive blank lines (more than 2 consecutive)
	for strings.Contains(content, "\n\n\n") {
		content = strings.ReplaceAll(content, "\n\n\n", "\n\n")
	}

	return driven.NoteRequest{
		Title: material.Title,
		Text:  strings.TrimSpace(content),
	}
}

func (n *PromptNormaliser) SupportedKinds() []domain.MaterialKind {
	return []domain.MaterialKind{domain.MaterialKindPrompt}
}

func (n *PromptNormaliser) Priority() int {
	return 50
}

// FileNormaliser handles uploaded image and PDF materials by passing the
// file URL through for multimodal models.
type FileNormaliser struct{}

func (n *FileNormaliser) Normalise(material *domain.Material) driven.NoteRequest {
	return driven.NoteRequest{
		Title:    material.Title,
		Text:     strings.TrimSpace(material.Content),
		ImageURL: material.FileURL,
		MimeType: material.MimeType,
	}
}

func (n *FileNormaliser) SupportedKinds() []domain.MaterialKind {
	return []domain.MaterialKind{domain.MaterialKindImage, domain.MaterialKindPDF}
}

func (n *FileNormaliser) Priority() int {
	return 50
}
