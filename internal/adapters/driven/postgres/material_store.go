package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/prince-yn/study-space-backend/internal/core/domain"
	"github.com/prince-yn/study-space-backend/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.MaterialStore = (*MaterialStore)(nil)

// MaterialStore implements driven.MaterialStore using PostgreSQL
type MaterialStore struct {
	db *DB
}

// NewMaterialStore creates a new MaterialStore
func NewMaterialStore(db *DB) *MaterialStore {
	return &MaterialStore{db: db}
}

// Save creates or updates a material
func (s *MaterialStore) Save(ctx context.Context, material *domain.Material) error {
	query := `
		INSERT INTO materials (id, subject_id, user_id, kind, title, content, file_url, mime_type, status, error, note_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			content = EXCLUDED.content,
			file_url = EXCLUDED.file_url,
			mime_type = EXCLUDED.mime_type,
			status = EXCLUDED.status,
			error = EXCLUDED.error,
			note_id = EXCLUDED.note_id,
			updated_at = EXCLUDED.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		material.ID,
		material.SubjectID,
		material.UserID,
		string(material.Kind),
		material.Title,
		material.Content,
		material.FileURL,
		material.MimeType,
		string(material.Status),
		material.Error,
		material.NoteID,
		material.CreatedAt,
		material.UpdatedAt,
	)
	return err
}

// Get retrieves a material by ID
func (s *MaterialStore) Get(ctx context.Context, id string) (*domain.Material, error) {
	query := `
		SELECT id, subject_id, user_id, kind, title, content, file_url, mime_type, status, error, note_id, created_at, updated_at
		FROM materials
		WHERE id = $1
	`

	var material domain.Material
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&material.ID,
		&material.SubjectID,
		&material.UserID,
		&material.Kind,
		&material.Title,
		&material.Content,
		&material.FileURL,
		&material.MimeType,
		&material.Status,
		&material.Error,
		&material.NoteID,
		&material.CreatedAt,
		&material.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &material, nil
}

// ListBySubject retrieves all materials for a subject
func (s *MaterialStore) ListBySubject(ctx context.Context, subjectID string) ([]*domain.Material, error) {
	query := `
		SELECT id, subject_id, user_id, kind, title, content, file_url, mime_type, status, error, note_id, created_at, updated_at
		FROM materials
		WHERE subject_id = $1
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, subjectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var materials []*domain.Material
	for rows.Next() {
		var material domain.Material
		err := rows.Scan(
			&material.ID,
			&material.SubjectID,
			&material.UserID,
			&material.Kind,
			&material.Title,
			&material.Content,
			&material.FileURL,
			&material.MimeType,
			&material.Status,
			&material.Error,
			&material.NoteID,
			&material.CreatedAt,
			&material.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		materials = append(materials, &material)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return materials, nil
}

// Delete deletes a material
func (s *MaterialStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM materials WHERE id = $1`, id)
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

// SetStatus updates the processing status and error for a material
func (s *MaterialStore) SetStatus(ctx context.Context, id string, status domain.MaterialStatus, reason string) error {
	query := `UPDATE materials SET status = $1, error = $2, updated_at = $3 WHERE id = $4`
	result, err := s.db.ExecContext(ctx, query, string(status), reason, time.Now(), id)
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
