package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prince-yn/study-space-backend/internal/core/domain"
	"github.com/prince-yn/study-space-backend/internal/core/ports/driven"
	"github.com/prince-yn/study-space-backend/internal/core/ports/driven/mocks"
	"github.com/prince-yn/study-space-backend/internal/normalisers"
	"github.com/prince-yn/study-space-backend/internal/runtime"
)

// stubPipeline is a pass-through ContentPipeline for orchestrator tests
type stubPipeline struct {
	media []domain.EmbeddedMedia
	err   error
}

func (p *stubPipeline) Finalize(ctx context.Context, markdown string) (*domain.FinalizedContent, error) {
	if p.err != nil {
		return nil, p.err
	}
	return &domain.FinalizedContent{Content: markdown, EmbeddedMedia: p.media}, nil
}

// slowLLM blocks until the context is cancelled
type slowLLM struct{}

func (s *slowLLM) GenerateNotes(ctx context.Context, req driven.NoteRequest) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func (s *slowLLM) Chat(ctx context.Context, contextText, question string) (string, error) {
	return "", nil
}

func (s *slowLLM) Model() string              { return "slow-llm" }
func (s *slowLLM) Ping(ctx context.Context) error { return nil }
func (s *slowLLM) Close() error               { return nil }

type orchestratorFixture struct {
	orchestrator  *NoteOrchestrator
	materialStore *mocks.MockMaterialStore
	noteStore     *mocks.MockNoteStore
	llm           *mocks.MockLLMService
	services      *runtime.Services
}

func setupOrchestrator(t *testing.T) *orchestratorFixture {
	t.Helper()

	materialStore := mocks.NewMockMaterialStore()
	noteStore := mocks.NewMockNoteStore()

	services := runtime.NewServices(domain.NewRuntimeConfig("postgres"))
	llm := mocks.NewMockLLMService()
	services.SetLLMService(llm)

	orchestrator := NewNoteOrchestrator(NoteOrchestratorConfig{
		MaterialStore: materialStore,
		NoteStore:     noteStore,
		NormaliserReg: normalisers.DefaultRegistry(),
		Pipeline:      &stubPipeline{media: []domain.EmbeddedMedia{{Description: "cell", URL: "https://x/cell.png", Kind: domain.MediaKindImageSearch}}},
		Services:      services,
	})

	return &orchestratorFixture{
		orchestrator:  orchestrator,
		materialStore: materialStore,
		noteStore:     noteStore,
		llm:           llm,
		services:      services,
	}
}

func seedMaterial(t *testing.T, store *mocks.MockMaterialStore) *domain.Material {
	t.Helper()
	now := time.Now()
	material := &domain.Material{
		ID:        "mat-1",
		SubjectID: "subj-1",
		UserID:    "owner-1",
		Kind:      domain.MaterialKindPrompt,
		Title:     "Cell Division",
		Content:   "Explain mitosis.",
		Status:    domain.MaterialStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := store.Save(context.Background(), material); err != nil {
		t.Fatalf("failed to seed material: %v", err)
	}
	return material
}

func TestProcessMaterial(t *testing.T) {
	f := setupOrchestrator(t)
	ctx := context.Background()
	material := seedMaterial(t, f.materialStore)

	f.llm.NotesResult = "# Mitosis\n\nCells divide."

	if err := f.orchestrator.ProcessMaterial(ctx, material.ID); err != nil {
		t.Fatalf("process failed: %v", err)
	}

	updated, _ := f.materialStore.Get(ctx, material.ID)
	if updated.Status != domain.MaterialStatusReady {
		t.Errorf("expected ready status, got %s (%s)", updated.Status, updated.Error)
	}
	if updated.NoteID == "" {
		t.Fatal("expected note ID on material")
	}

	note, err := f.noteStore.Get(ctx, updated.NoteID)
	if err != nil {
		t.Fatalf("note not persisted: %v", err)
	}
	if note.Title != "Mitosis" {
		t.Errorf("expected title from first heading, got %q", note.Title)
	}
	if note.MaterialID != material.ID || note.SubjectID != material.SubjectID {
		t.Errorf("note not linked to material: %+v", note)
	}
	if len(note.EmbeddedMedia) != 1 {
		t.Errorf("expected media manifest carried onto note, got %d entries", len(note.EmbeddedMedia))
	}
	if note.Model != "mock-llm" {
		t.Errorf("expected model recorded, got %q", note.Model)
	}

	if len(f.llm.GenerateCalls) != 1 {
		t.Fatalf("expected 1 LLM call, got %d", len(f.llm.GenerateCalls))
	}
	if f.llm.GenerateCalls[0].Text != "Explain mitosis." {
		t.Errorf("expected normalised prompt text, got %q", f.llm.GenerateCalls[0].Text)
	}
}

func TestProcessMaterial_TitleFallback(t *testing.T) {
	f := setupOrchestrator(t)
	ctx := context.Background()
	material := seedMaterial(t, f.materialStore)

	f.llm.NotesResult = "No headings here, just prose."

	if err := f.orchestrator.ProcessMaterial(ctx, material.ID); err != nil {
		t.Fatalf("process failed: %v", err)
	}

	updated, _ := f.materialStore.Get(ctx, material.ID)
	note, _ := f.noteStore.Get(ctx, updated.NoteID)
	if note.Title != "Cell Division" {
		t.Errorf("expected material title fallback, got %q", note.Title)
	}
}

func TestProcessMaterial_RegenerationKeepsNoteID(t *testing.T) {
	f := setupOrchestrator(t)
	ctx := context.Background()
	material := seedMaterial(t, f.materialStore)

	if err := f.orchestrator.ProcessMaterial(ctx, material.ID); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	first, _ := f.materialStore.Get(ctx, material.ID)

	f.llm.NotesResult = "# Mitosis, revised\n\nBetter content."
	if err := f.orchestrator.ProcessMaterial(ctx, material.ID); err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	second, _ := f.materialStore.Get(ctx, material.ID)

	if first.NoteID != second.NoteID {
		t.Errorf("expected regeneration to reuse note ID: %s vs %s", first.NoteID, second.NoteID)
	}

	note, _ := f.noteStore.Get(ctx, second.NoteID)
	if note.Title != "Mitosis, revised" {
		t.Errorf("expected updated content, got title %q", note.Title)
	}
}

func TestProcessMaterial_NoLLM(t *testing.T) {
	f := setupOrchestrator(t)
	ctx := context.Background()
	material := seedMaterial(t, f.materialStore)

	f.services.SetLLMService(nil)

	err := f.orchestrator.ProcessMaterial(ctx, material.ID)
	if !errors.Is(err, domain.ErrServiceUnavailable) {
		t.Fatalf("expected ErrServiceUnavailable, got %v", err)
	}

	updated, _ := f.materialStore.Get(ctx, material.ID)
	if updated.Status != domain.MaterialStatusFailed {
		t.Errorf("expected failed status, got %s", updated.Status)
	}
	if updated.Error == "" {
		t.Error("expected failure reason on material")
	}
}

func TestProcessMaterial_LLMError(t *testing.T) {
	f := setupOrchestrator(t)
	ctx := context.Background()
	material := seedMaterial(t, f.materialStore)

	f.llm.Err = errors.New("model exploded")

	if err := f.orchestrator.ProcessMaterial(ctx, material.ID); err == nil {
		t.Fatal("expected error")
	}

	updated, _ := f.materialStore.Get(ctx, material.ID)
	if updated.Status != domain.MaterialStatusFailed {
		t.Errorf("expected failed status, got %s", updated.Status)
	}
}

func TestProcessMaterial_Timeout(t *testing.T) {
	f := setupOrchestrator(t)
	ctx := context.Background()
	material := seedMaterial(t, f.materialStore)

	f.services.SetLLMService(&slowLLM{})
	f.orchestrator.budget = 10 * time.Millisecond

	err := f.orchestrator.ProcessMaterial(ctx, material.ID)
	if !errors.Is(err, domain.ErrProcessingTimeout) {
		t.Fatalf("expected ErrProcessingTimeout, got %v", err)
	}

	updated, _ := f.materialStore.Get(ctx, material.ID)
	if updated.Status != domain.MaterialStatusFailed {
		t.Errorf("expected failed status, got %s", updated.Status)
	}
	if updated.Error != "processing timed out" {
		t.Errorf("expected timeout reason, got %q", updated.Error)
	}
}

func TestProcessMaterial_UnknownMaterial(t *testing.T) {
	f := setupOrchestrator(t)

	err := f.orchestrator.ProcessMaterial(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
