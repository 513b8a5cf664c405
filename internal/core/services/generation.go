package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/prince-yn/study-space-backend/internal/core/domain"
	"github.com/prince-yn/study-space-backend/internal/core/ports/driven"
	"github.com/prince-yn/study-space-backend/internal/markdown"
	"github.com/prince-yn/study-space-backend/internal/runtime"
)

// defaultGenerationBudget bounds the wall-clock time of one note generation,
// LLM call and media finalization included.
const defaultGenerationBudget = 5 * time.Minute

// NoteOrchestrator coordinates the note-generation pipeline.
// It implements the generation flow:
//  1. Load material, mark it processing
//  2. Normalise material content into an LLM request
//  3. Generate structured Markdown notes
//  4. Finalize the Markdown (resolve image/diagram directives)
//  5. Persist the note and mark the material ready
//
// The whole flow runs under a wall-clock budget; exceeding it fails the
// material with domain.ErrProcessingTimeout.
type NoteOrchestrator struct {
	materialStore driven.MaterialStore
	noteStore     driven.NoteStore
	normaliserReg driven.NormaliserRegistry
	pipeline      driven.ContentPipeline
	services      *runtime.Services
	logger        *slog.Logger
	budget        time.Duration
}

// NoteOrchestratorConfig holds dependencies for NoteOrchestrator.
type NoteOrchestratorConfig struct {
	MaterialStore driven.MaterialStore
	NoteStore     driven.NoteStore
	NormaliserReg driven.NormaliserRegistry
	Pipeline      driven.ContentPipeline
	Services      *runtime.Services
	Logger        *slog.Logger
	// Budget caps the wall-clock time of one generation (default 5m)
	Budget time.Duration
}

// NewNoteOrchestrator creates a new note orchestrator.
func NewNoteOrchestrator(cfg NoteOrchestratorConfig) *NoteOrchestrator {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	budget := cfg.Budget
	if budget <= 0 {
		budget = defaultGenerationBudget
	}

	return &NoteOrchestrator{
		materialStore: cfg.MaterialStore,
		noteStore:     cfg.NoteStore,
		normaliserReg: cfg.NormaliserReg,
		pipeline:      cfg.Pipeline,
		services:      cfg.Services,
		logger:        logger,
		budget:        budget,
	}
}

// ProcessMaterial generates (or regenerates) the note for a material.
// This is the main entry point, called by the worker for each task.
func (o *NoteOrchestrator) ProcessMaterial(ctx context.Context, materialID string) error {
	startTime := time.Now()

	material, err := o.materialStore.Get(ctx, materialID)
	if err != nil {
		return fmt.Errorf("failed to get material: %w", err)
	}

	o.logger.Info("starting note generation",
		"material_id", materialID,
		"kind", material.Kind)

	if err := o.materialStore.SetStatus(ctx, materialID, domain.MaterialStatusProcessing, ""); err != nil {
		o.logger.Warn("failed to mark material processing", "material_id", materialID, "error", err)
	}

	ctx, cancel := context.WithTimeout(ctx, o.budget)
	defer cancel()

	note, err := o.generate(ctx, material)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("%w: exceeded %s", domain.ErrProcessingTimeout, o.budget)
		}
		return o.failMaterial(materialID, startTime, err)
	}

	if err := o.noteStore.Save(ctx, note); err != nil {
		return o.failMaterial(materialID, startTime, fmt.Errorf("failed to save note: %w", err))
	}

	material.NoteID = note.ID
	material.Status = domain.MaterialStatusReady
	material.Error = ""
	material.UpdatedAt = time.Now()
	if err := o.materialStore.Save(ctx, material); err != nil {
		return fmt.Errorf("failed to update material: %w", err)
	}

	o.logger.Info("note generation complete",
		"material_id", materialID,
		"note_id", note.ID,
		"embedded_media", len(note.EmbeddedMedia),
		"duration", time.Since(startTime))

	return nil
}

// generate runs the normalise → LLM → finalize steps and builds the note.
func (o *NoteOrchestrator) generate(ctx context.Context, material *domain.Material) (*domain.Note, error) {
	llm := o.services.LLMService()
	if llm == nil {
		return nil, fmt.Errorf("%w: no LLM configured", domain.ErrServiceUnavailable)
	}

	normaliser := o.normaliserReg.Get(material.Kind)
	if normaliser == nil {
		return nil, fmt.Errorf("%w: no normaliser for kind %q", domain.ErrInvalidInput, material.Kind)
	}
	req := normaliser.Normalise(material)

	raw, err := llm.GenerateNotes(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("note generation failed: %w", err)
	}

	finalized, err := o.pipeline.Finalize(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("content finalization failed: %w", err)
	}

	now := time.Now()
	note := &domain.Note{
		ID:            domain.GenerateID(),
		SubjectID:     material.SubjectID,
		MaterialID:    material.ID,
		Title:         noteTitle(finalized.Content, material.Title),
		Content:       finalized.Content,
		EmbeddedMedia: finalized.EmbeddedMedia,
		Model:         llm.Model(),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	// Regeneration replaces the existing note in place
	if existing, err := o.noteStore.GetByMaterial(ctx, material.ID); err == nil {
		note.ID = existing.ID
		note.CreatedAt = existing.CreatedAt
	}

	return note, nil
}

// failMaterial records the failure on the material status and returns err.
func (o *NoteOrchestrator) failMaterial(materialID string, startTime time.Time, err error) error {
	o.logger.Error("note generation failed",
		"material_id", materialID,
		"duration", time.Since(startTime),
		"error", err)

	// Status write uses a fresh context: the task context may be the reason
	// we are here.
	statusCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	reason := err.Error()
	if errors.Is(err, domain.ErrProcessingTimeout) {
		reason = "processing timed out"
	}
	if serr := o.materialStore.SetStatus(statusCtx, materialID, domain.MaterialStatusFailed, reason); serr != nil {
		o.logger.Warn("failed to mark material failed", "material_id", materialID, "error", serr)
	}

	return err
}

// noteTitle prefers the first heading of the generated note, falling back to
// the material title.
func noteTitle(content, fallback string) string {
	if headings := markdown.Outline(content); len(headings) > 0 {
		if t := strings.TrimSpace(headings[0].Text); t != "" {
			return t
		}
	}
	return fallback
}
