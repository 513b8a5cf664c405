package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/prince-yn/study-space-backend/internal/core/domain"
	"github.com/prince-yn/study-space-backend/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.NoteStore = (*NoteStore)(nil)

// NoteStore implements driven.NoteStore using PostgreSQL.
// The embedded-media manifest is stored as JSONB alongside the content.
type NoteStore struct {
	db *DB
}

// NewNoteStore creates a new NoteStore
func NewNoteStore(db *DB) *NoteStore {
	return &NoteStore{db: db}
}

// Save creates or updates a note
func (s *NoteStore) Save(ctx context.Context, note *domain.Note) error {
	media, err := json.Marshal(note.EmbeddedMedia)
	if err != nil {
		return fmt.Errorf("failed to marshal embedded media: %w", err)
	}

	query := `
		INSERT INTO notes (id, subject_id, material_id, title, content, embedded_media, model, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			content = EXCLUDED.content,
			embedded_media = EXCLUDED.embedded_media,
			model = EXCLUDED.model,
			updated_at = EXCLUDED.updated_at
	`

	_, err = s.db.ExecContext(ctx, query,
		note.ID,
		note.SubjectID,
		note.MaterialID,
		note.Title,
		note.Content,
		media,
		note.Model,
		note.CreatedAt,
		note.UpdatedAt,
	)
	return err
}

// Get retrieves a note by ID
func (s *NoteStore) Get(ctx context.Context, id string) (*domain.Note, error) {
	query := `
		SELECT id, subject_id, material_id, title, content, embedded_media, model, created_at, updated_at
		FROM notes
		WHERE id = $1
	`
	return s.scanNote(s.db.QueryRowContext(ctx, query, id))
}

// GetByMaterial retrieves the note generated for a material
func (s *NoteStore) GetByMaterial(ctx context.Context, materialID string) (*domain.Note, error) {
	query := `
		SELECT id, subject_id, material_id, title, content, embedded_media, model, created_at, updated_at
		FROM notes
		WHERE material_id = $1
	`
	return s.scanNote(s.db.QueryRowContext(ctx, query, materialID))
}

// ListBySubject retrieves all notes for a subject
func (s *NoteStore) ListBySubject(ctx context.Context, subjectID string) ([]*domain.Note, error) {
	query := `
		SELECT id, subject_id, material_id, title, content, embedded_media, model, created_at, updated_at
		FROM notes
		WHERE subject_id = $1
		ORDER BY created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, subjectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []*domain.Note
	for rows.Next() {
		var note domain.Note
		var media []byte

		err := rows.Scan(
			&note.ID,
			&note.SubjectID,
			&note.MaterialID,
			&note.Title,
			&note.Content,
			&media,
			&note.Model,
			&note.CreatedAt,
			&note.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(media, &note.EmbeddedMedia); err != nil {
			return nil, fmt.Errorf("failed to unmarshal embedded media: %w", err)
		}
		notes = append(notes, &note)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return notes, nil
}

// Delete deletes a note
func (s *NoteStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrNotFound
	}

	return nil
}

func (s *NoteStore) scanNote(row *sql.Row) (*domain.Note, error) {
	var note domain.Note
	var media []byte

	err := row.Scan(
		&note.ID,
		&note.SubjectID,
		&note.MaterialID,
		&note.Title,
		&note.Content,
		&media,
		&note.Model,
		&note.CreatedAt,
		&note.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(media, &note.EmbeddedMedia); err != nil {
		return nil, fmt.Errorf("failed to unmarshal embedded media: %w", err)
	}
	return &note, nil
}
