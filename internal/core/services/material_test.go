package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prince-yn/study-space-backend/internal/core/domain"
	"github.com/prince-yn/study-space-backend/internal/core/ports/driven/mocks"
	"github.com/prince-yn/study-space-backend/internal/core/ports/driving"
)

type materialFixture struct {
	svc           driving.MaterialService
	materialStore *mocks.MockMaterialStore
	noteStore     *mocks.MockNoteStore
	queue         *mocks.MockTaskQueue
	subjectID     string
}

func setupMaterialService(t *testing.T) *materialFixture {
	t.Helper()
	ctx := context.Background()

	spaceStore := mocks.NewMockSpaceStore()
	subjectStore := mocks.NewMockSubjectStore()
	materialStore := mocks.NewMockMaterialStore()
	noteStore := mocks.NewMockNoteStore()
	queue := mocks.NewMockTaskQueue()

	now := time.Now()
	space := &domain.Space{ID: "space-1", OwnerID: "owner-1", Name: "Space", CreatedAt: now, UpdatedAt: now}
	if err := spaceStore.Save(ctx, space); err != nil {
		t.Fatalf("failed to seed space: %v", err)
	}
	subject := &domain.Subject{ID: "subj-1", SpaceID: "space-1", Name: "Subject", CreatedAt: now, UpdatedAt: now}
	if err := subjectStore.Save(ctx, subject); err != nil {
		t.Fatalf("failed to seed subject: %v", err)
	}

	svc := NewMaterialService(materialStore, noteStore, subjectStore, spaceStore, queue, nil)
	return &materialFixture{svc: svc, materialStore: materialStore, noteStore: noteStore, queue: queue, subjectID: "subj-1"}
}

func TestMaterialCreate_EnqueuesGeneration(t *testing.T) {
	f := setupMaterialService(t)
	ctx := context.Background()

	material, err := f.svc.Create(ctx, "owner-1", f.subjectID, domain.CreateMaterialRequest{
		Kind:    domain.MaterialKindPrompt,
		Title:   "Mitosis",
		Content: "Explain mitosis with diagrams.",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if material.Status != domain.MaterialStatusPending {
		t.Errorf("expected pending status, got %s", material.Status)
	}

	if f.queue.PendingCount() != 1 {
		t.Fatalf("expected 1 queued task, got %d", f.queue.PendingCount())
	}
	task, err := f.queue.DequeueWithTimeout(ctx, 0)
	if err != nil || task == nil {
		t.Fatalf("dequeue failed: %v", err)
	}
	if task.Type != domain.TaskTypeGenerateNotes {
		t.Errorf("expected generate_notes task, got %s", task.Type)
	}
	if task.MaterialID() != material.ID {
		t.Errorf("expected task for material %s, got %s", material.ID, task.MaterialID())
	}
}

func TestMaterialCreate_Validation(t *testing.T) {
	f := setupMaterialService(t)
	ctx := context.Background()

	cases := []struct {
		name string
		req  domain.CreateMaterialRequest
	}{
		{"missing title", domain.CreateMaterialRequest{Kind: domain.MaterialKindPrompt, Content: "x"}},
		{"prompt without content", domain.CreateMaterialRequest{Kind: domain.MaterialKindPrompt, Title: "T"}},
		{"image without file", domain.CreateMaterialRequest{Kind: domain.MaterialKindImage, Title: "T"}},
		{"unknown kind", domain.CreateMaterialRequest{Kind: "video", Title: "T", Content: "x"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Create(ctx, "owner-1", f.subjectID, tc.req)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}

	if f.queue.PendingCount() != 0 {
		t.Errorf("expected no tasks for rejected materials, got %d", f.queue.PendingCount())
	}
}

func TestMaterialCreate_NonMemberForbidden(t *testing.T) {
	f := setupMaterialService(t)

	_, err := f.svc.Create(context.Background(), "stranger", f.subjectID, domain.CreateMaterialRequest{
		Kind: domain.MaterialKindPrompt, Title: "T", Content: "x",
	})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestMaterialRegenerate(t *testing.T) {
	f := setupMaterialService(t)
	ctx := context.Background()

	material, _ := f.svc.Create(ctx, "owner-1", f.subjectID, domain.CreateMaterialRequest{
		Kind: domain.MaterialKindPrompt, Title: "T", Content: "x",
	})
	_, _ = f.queue.DequeueWithTimeout(ctx, 0)

	// Simulate a completed first run
	_ = f.materialStore.SetStatus(ctx, material.ID, domain.MaterialStatusReady, "")

	regenerated, err := f.svc.Regenerate(ctx, "owner-1", material.ID)
	if err != nil {
		t.Fatalf("regenerate failed: %v", err)
	}
	if regenerated.Status != domain.MaterialStatusPending {
		t.Errorf("expected pending status, got %s", regenerated.Status)
	}

	task, _ := f.queue.DequeueWithTimeout(ctx, 0)
	if task == nil || task.Type != domain.TaskTypeRegenerateNotes {
		t.Fatalf("expected regenerate_notes task, got %+v", task)
	}
}

func TestMaterialRegenerate_WhileProcessing(t *testing.T) {
	f := setupMaterialService(t)
	ctx := context.Background()

	material, _ := f.svc.Create(ctx, "owner-1", f.subjectID, domain.CreateMaterialRequest{
		Kind: domain.MaterialKindPrompt, Title: "T", Content: "x",
	})
	_ = f.materialStore.SetStatus(ctx, material.ID, domain.MaterialStatusProcessing, "")

	_, err := f.svc.Regenerate(ctx, "owner-1", material.ID)
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists while processing, got %v", err)
	}
}

func TestMaterialDelete_RemovesNote(t *testing.T) {
	f := setupMaterialService(t)
	ctx := context.Background()

	material, _ := f.svc.Create(ctx, "owner-1", f.subjectID, domain.CreateMaterialRequest{
		Kind: domain.MaterialKindPrompt, Title: "T", Content: "x",
	})

	note := &domain.Note{ID: "note-1", SubjectID: f.subjectID, MaterialID: material.ID, Title: "T", Content: "# T"}
	if err := f.noteStore.Save(ctx, note); err != nil {
		t.Fatalf("failed to seed note: %v", err)
	}

	if err := f.svc.Delete(ctx, "owner-1", material.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := f.materialStore.Get(ctx, material.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected material gone, got %v", err)
	}
	if _, err := f.noteStore.Get(ctx, "note-1"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected note gone, got %v", err)
	}
}
