package postgres

import (
	"context"
	"database/sql"

	"github.com/prince-yn/study-space-backend/internal/core/domain"
	"github.com/prince-yn/study-space-backend/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.SubjectStore = (*SubjectStore)(nil)

// SubjectStore implements driven.SubjectStore using PostgreSQL
type SubjectStore struct {
	db *DB
}

// NewSubjectStore creates a new SubjectStore
func NewSubjectStore(db *DB) *SubjectStore {
	return &SubjectStore{db: db}
}

// Save creates or updates a subject
func (s *SubjectStore) Save(ctx context.Context, subject *domain.Subject) error {
	query := `
		INSERT INTO subjects (id, space_id, name, color, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			color = EXCLUDED.color,
			updated_at = EXCLUDED.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		subject.ID,
		subject.SpaceID,
		subject.Name,
		subject.Color,
		subject.CreatedAt,
		subject.UpdatedAt,
	)
	return err
}

// Get retrieves a subject by ID
func (s *SubjectStore) Get(ctx context.Context, id string) (*domain.Subject, error) {
	query := `
		SELECT id, space_id, name, color, created_at, updated_at
		FROM subjects
		WHERE id = $1
	`

	var subject domain.Subject
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&subject.ID,
		&subject.SpaceID,
		&subject.Name,
		&subject.Color,
		&subject.CreatedAt,
		&subject.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &subject, nil
}

// ListBySpace retrieves all subjects for a space
func (s *SubjectStore) ListBySpace(ctx context.Context, spaceID string) ([]*domain.Subject, error) {
	query := `
		SELECT id, space_id, name, color, created_at, updated_at
		FROM subjects
		WHERE space_id = $1
		ORDER BY created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, spaceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subjects []*domain.Subject
	for rows.Next() {
		var subject domain.Subject
		err := rows.Scan(
			&subject.ID,
			&subject.SpaceID,
			&subject.Name,
			&subject.Color,
			&subject.CreatedAt,
			&subject.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		subjects = append(subjects, &subject)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return subjects, nil
}

// Delete deletes a subject; materials and notes cascade at the schema level
func (s *SubjectStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM subjects WHERE id = $1`, id)
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
