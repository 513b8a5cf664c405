package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/prince-yn/study-space-backend/internal/core/domain"
	"github.com/prince-yn/study-space-backend/internal/core/ports/driven"
	"github.com/prince-yn/study-space-backend/internal/core/ports/driving"
	"github.com/prince-yn/study-space-backend/internal/markdown"
	"github.com/prince-yn/study-space-backend/internal/runtime"
)

// Ensure chatService implements ChatService
var _ driving.ChatService = (*chatService)(nil)

const (
	// maxNoteContext limits how much of a single note goes into the prompt
	maxNoteContext = 6000
	// maxTotalContext limits the assembled context across all notes
	maxTotalContext = 24000
)

// chatService answers questions over a subject's notes.
// The LLM is accessed dynamically via runtime.Services; when none is
// configured, Ask fails with domain.ErrServiceUnavailable.
type chatService struct {
	noteStore    driven.NoteStore
	subjectStore driven.SubjectStore
	spaceStore   driven.SpaceStore
	services     *runtime.Services
	logger       *slog.Logger
}

// NewChatService creates a new ChatService
func NewChatService(
	noteStore driven.NoteStore,
	subjectStore driven.SubjectStore,
	spaceStore driven.SpaceStore,
	services *runtime.Services,
	logger *slog.Logger,
) driving.ChatService {
	if logger == nil {
		logger = slog.Default()
	}
	return &chatService{
		noteStore:    noteStore,
		subjectStore: subjectStore,
		spaceStore:   spaceStore,
		services:     services,
		logger:       logger,
	}
}

// Ask answers a question using the subject's notes as context
func (s *chatService) Ask(ctx context.Context, userID, subjectID string, req domain.ChatRequest) (*domain.ChatResponse, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, domain.ErrInvalidInput
	}

	if err := s.checkAccess(ctx, userID, subjectID); err != nil {
		return nil, err
	}

	llm := s.services.LLMService()
	if llm == nil {
		return nil, domain.ErrServiceUnavailable
	}

	notes, err := s.noteStore.ListBySubject(ctx, subjectID)
	if err != nil {
		return nil, err
	}

	contextText, noteIDs := buildChatContext(notes)

	answer, err := llm.Chat(ctx, contextText, question)
	if err != nil {
		s.logger.Error("chat request failed",
			"subject_id", subjectID,
			"error", err)
		return nil, err
	}

	return &domain.ChatResponse{
		Answer:    answer,
		NoteIDs:   noteIDs,
		Model:     llm.Model(),
		Timestamp: time.Now(),
	}, nil
}

// buildChatContext assembles a bounded prompt context from the subject's
// notes: each note contributes its title, heading outline, and plain text.
func buildChatContext(notes []*domain.Note) (string, []string) {
	var sb strings.Builder
	var noteIDs []string

	for _, note := range notes {
		if sb.Len() >= maxTotalContext {
			break
		}

		body := markdown.PlainText(note.Content)
		if body == "" {
			continue
		}

		sb.WriteString("## ")
		sb.WriteString(note.Title)
		sb.WriteString("\n")
		if outline := markdown.OutlineText(note.Content); outline != "" {
			sb.WriteString(outline)
			sb.WriteString("\n")
		}
		sb.WriteString(markdown.Truncate(body, maxNoteContext))
		sb.WriteString("\n\n")

		noteIDs = append(noteIDs, note.ID)
	}

	return strings.TrimRight(sb.String(), "\n"), noteIDs
}

// checkAccess verifies the user can access the subject's space
func (s *chatService) checkAccess(ctx context.Context, userID, subjectID string) error {
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
