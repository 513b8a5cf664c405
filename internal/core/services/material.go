package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/prince-yn/study-space-backend/internal/core/domain"
	"github.com/prince-yn/study-space-backend/internal/core/ports/driven"
	"github.com/prince-yn/study-space-backend/internal/core/ports/driving"
)

// Ensure materialService implements MaterialService
var _ driving.MaterialService = (*materialService)(nil)

// materialService implements the MaterialService interface.
// Creating or regenerating a material enqueues a background
// note-generation task; the material status tracks its progress.
type materialService struct {
	materialStore driven.MaterialStore
	noteStore     driven.NoteStore
	subjectStore  driven.SubjectStore
	spaceStore    driven.SpaceStore
	taskQueue     driven.TaskQueue
	logger        *slog.Logger
}

// NewMaterialService creates a new MaterialService
func NewMaterialService(
	materialStore driven.MaterialStore,
	noteStore driven.NoteStore,
	subjectStore driven.SubjectStore,
	spaceStore driven.SpaceStore,
	taskQueue driven.TaskQueue,
	logger *slog.Logger,
) driving.MaterialService {
	if logger == nil {
		logger = slog.Default()
	}
	return &materialService{
		materialStore: materialStore,
		noteStore:     noteStore,
		subjectStore:  subjectStore,
		spaceStore:    spaceStore,
		taskQueue:     taskQueue,
		logger:        logger,
	}
}

// Create adds material to a subject and enqueues note generation
func (s *materialService) Create(ctx context.Context, userID, subjectID string, req domain.CreateMaterialRequest) (*domain.Material, error) {
	if err := validateMaterialRequest(req); err != nil {
		return nil, err
	}

	if err := s.checkSubjectAccess(ctx, userID, subjectID); err != nil {
		return nil, err
	}

	now := time.Now()
	material := &domain.Material{
		ID:        domain.GenerateID(),
		SubjectID: subjectID,
		UserID:    userID,
		Kind:      req.Kind,
		Title:     strings.TrimSpace(req.Title),
		Content:   req.Content,
		FileURL:   req.FileURL,
		MimeType:  req.MimeType,
		Status:    domain.MaterialStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.materialStore.Save(ctx, material); err != nil {
		return nil, err
	}

	task := domain.NewGenerateNotesTask(material.ID)
	if err := s.taskQueue.Enqueue(ctx, task); err != nil {
		// Material exists but generation won't run; surface that on status
		_ = s.materialStore.SetStatus(ctx, material.ID, domain.MaterialStatusFailed, "failed to enqueue note generation")
		return nil, err
	}

	s.logger.Info("material created",
		"material_id", material.ID,
		"subject_id", subjectID,
		"kind", material.Kind,
		"task_id", task.ID)

	return material, nil
}

// Get retrieves a material (with current processing status)
func (s *materialService) Get(ctx context.Context, userID, materialID string) (*domain.Material, error) {
	material, err := s.materialStore.Get(ctx, materialID)
	if err != nil {
		return nil, err
	}

	if err := s.checkSubjectAccess(ctx, userID, material.SubjectID); err != nil {
		return nil, err
	}

	return material, nil
}

// ListBySubject retrieves all materials for a subject
func (s *materialService) ListBySubject(ctx context.Context, userID, subjectID string) ([]*domain.Material, error) {
	if err := s.checkSubjectAccess(ctx, userID, subjectID); err != nil {
		return nil, err
	}
	return s.materialStore.ListBySubject(ctx, subjectID)
}

// Regenerate re-enqueues note generation for an existing material
func (s *materialService) Regenerate(ctx context.Context, userID, materialID string) (*domain.Material, error) {
	material, err := s.Get(ctx, userID, materialID)
	if err != nil {
		return nil, err
	}

	if material.Status == domain.MaterialStatusProcessing {
		return nil, domain.ErrAlreadyExists
	}

	if err := s.materialStore.SetStatus(ctx, materialID, domain.MaterialStatusPending, ""); err != nil {
		return nil, err
	}

	task := domain.NewRegenerateNotesTask(materialID)
	if err := s.taskQueue.Enqueue(ctx, task); err != nil {
		_ = s.materialStore.SetStatus(ctx, materialID, material.Status, material.Error)
		return nil, err
	}

	s.logger.Info("material regeneration enqueued",
		"material_id", materialID,
		"task_id", task.ID)

	material.Status = domain.MaterialStatusPending
	material.Error = ""
	return material, nil
}

// Delete removes a material and its note
func (s *materialService) Delete(ctx context.Context, userID, materialID string) error {
	material, err := s.Get(ctx, userID, materialID)
	if err != nil {
		return err
	}

	if note, err := s.noteStore.GetByMaterial(ctx, materialID); err == nil {
		_ = s.noteStore.Delete(ctx, note.ID)
	}

	return s.materialStore.Delete(ctx, material.ID)
}

// checkSubjectAccess verifies the user can access the subject's space
func (s *materialService) checkSubjectAccess(ctx context.Context, userID, subjectID string) error {
	subject, err := s.subjectStore.Get(ctx, subjectID)
	if err != nil {
		return err
	}
	space, err := s.spaceStore.Get(ctx, subject.SpaceID)
	if err != nil {
		return err
	}
	if !space.HasMember(userID) {
		return domain.ErrForbidden
	}
	return nil
}

func validateMaterialRequest(req domain.CreateMaterialRequest) error {
	if strings.TrimSpace(req.Title) == "" {
		return domain.ErrInvalidInput
	}
	switch req.Kind {
	case domain.MaterialKindPrompt:
		if strings.TrimSpace(req.Content) == "" {
			return domain.ErrInvalidInput
		}
	case domain.MaterialKindImage, domain.MaterialKindPDF:
		if req.FileURL == "" {
			return domain.ErrInvalidInput
		}
	default:
		return domain.ErrInvalidInput
	}
	return nil
}
