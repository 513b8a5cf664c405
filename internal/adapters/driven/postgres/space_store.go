package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"github.com/prince-yn/study-space-backend/internal/core/domain"
	"github.com/prince-yn/study-space-backend/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.SpaceStore = (*SpaceStore)(nil)

// SpaceStore implements driven.SpaceStore using PostgreSQL
type SpaceStore struct {
	db *DB
}

// NewSpaceStore creates a new SpaceStore
func NewSpaceStore(db *DB) *SpaceStore {
	return &SpaceStore{db: db}
}

// Save creates or updates a space
func (s *SpaceStore) Save(ctx context.Context, space *domain.Space) error {
	query := `
		INSERT INTO spaces (id, owner_id, name, description, member_ids, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			member_ids = EXCLUDED.member_ids,
			updated_at = EXCLUDED.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		space.ID,
		space.OwnerID,
		space.Name,
		space.Description,
		pq.Array(space.MemberIDs),
		space.CreatedAt,
		space.UpdatedAt,
	)
	return err
}

// Get retrieves a space by ID
func (s *SpaceStore) Get(ctx context.Context, id string) (*domain.Space, error) {
	query := `
		SELECT id, owner_id, name, description, member_ids, created_at, updated_at
		FROM spaces
		WHERE id = $1
	`

	var space domain.Space
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&space.ID,
		&space.OwnerID,
		&space.Name,
		&space.Description,
		pq.Array(&space.MemberIDs),
		&space.CreatedAt,
		&space.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &space, nil
}

// ListByUser retrieves spaces the user owns or is a member of
func (s *SpaceStore) ListByUser(ctx context.Context, userID string) ([]*domain.Space, error) {
	query := `
		SELECT id, owner_id, name, description, member_ids, created_at, updated_at
		FROM spaces
		WHERE owner_id = $1 OR $1 = ANY(member_ids)
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var spaces []*domain.Space
	for rows.Next() {
		var space domain.Space
		err := rows.Scan(
			&space.ID,
			&space.OwnerID,
			&space.Name,
			&space.Description,
			pq.Array(&space.MemberIDs),
			&space.CreatedAt,
			&space.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		spaces = append(spaces, &space)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return spaces, nil
}

// Delete deletes a space
func (s *SpaceStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM spaces WHERE id = $1`, id)
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
