package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/scripture-text-api/internal/repository"
)

// AccessRepository implements repository.AccessRepository for PostgreSQL
type AccessRepository struct {
	db *sqlx.DB
}

// NewAccessRepository creates a new PostgreSQL access repository
func NewAccessRepository(db *sqlx.DB) repository.AccessRepository {
	return &AccessRepository{db: db}
}

// ComputeGrantSet resolves the key -> access group -> fileset relation to the
// distinct hash ids the key may read. An unknown key yields an empty set, not
// an error.
func (r *AccessRepository) ComputeGrantSet(ctx context.Context, apiKey string) ([]string, error) {
	var hashes []string
	err := r.db.SelectContext(ctx, &hashes, `
		SELECT DISTINCT agf.hash_id
		FROM user_keys uk
		JOIN access_group_api_keys agak ON agak.key_id = uk.id
		JOIN access_group_filesets agf ON agf.access_group_id = agak.access_group_id
		WHERE uk.key = $1`, apiKey)
	if err != nil {
		return nil, fmt.Errorf("compute grant set: %w", err)
	}
	return hashes, nil
}
