package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/scripture-text-api/internal/apperr"
	"github.com/scripture-text-api/internal/models"
	"github.com/scripture-text-api/internal/repository"
)

// FilesetRepository implements repository.FilesetRepository for PostgreSQL
type FilesetRepository struct {
	db *sqlx.DB
}

// NewFilesetRepository creates a new PostgreSQL fileset repository
func NewFilesetRepository(db *sqlx.DB) repository.FilesetRepository {
	return &FilesetRepository{db: db}
}

// Resolve matches the identifier as a single OR group — exact id, id with the
// last 4 characters dropped (legacy truncated ids), or the last 2 characters
// wildcarded (variation suffixes) — then narrows by asset and set type. When
// several candidates remain, the tie-break is deterministic: exact match
// beats truncated beats wildcard, then lowest hash_id.
func (r *FilesetRepository) Resolve(ctx context.Context, params repository.ResolveParams) (*models.Fileset, error) {
	clauses, args := resolveFilters(params)

	query := `
		SELECT bf.id, bf.hash_id, bf.asset_id, bf.set_type_code, bf.set_size_code,
		       c.bible_id, COALESCE(b.script, '') AS script_id, COALESCE(b.iso, '') AS iso
		FROM bible_filesets bf
		JOIN bible_fileset_connections c ON c.hash_id = bf.hash_id
		JOIN bibles b ON b.id = c.bible_id
		WHERE ` + strings.Join(clauses, " AND ") + `
		` + resolveOrder + `
		LIMIT 1`

	var fileset models.Fileset
	if err := r.db.GetContext(ctx, &fileset, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("no fileset found for the provided params: %w", apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("resolve fileset: %w", err)
	}
	return &fileset, nil
}

// resolveOrder is the deterministic tie-break when several candidates match:
// exact id beats truncated beats wildcard, then lowest hash_id. $1 and $2 are
// the exact and truncated forms bound by resolveFilters.
const resolveOrder = `ORDER BY CASE WHEN bf.id = $1 THEN 0 WHEN bf.id = $2 THEN 1 ELSE 2 END,
		         bf.hash_id`

// resolveFilters builds the resolver's predicates as a data-driven list: the
// identifier OR group always leads with $1-$3, then the optional asset and
// set-type narrowing. An ambiguous type hint relaxes the type filter to a
// prefix match.
func resolveFilters(params repository.ResolveParams) ([]string, []interface{}) {
	exact, truncated, prefix := identifierVariants(params.ID)

	clauses := []string{"(bf.id = $1 OR bf.id = $2 OR bf.id LIKE $3)"}
	args := []interface{}{exact, truncated, prefix}

	if params.AssetID != "" {
		args = append(args, params.AssetID)
		clauses = append(clauses, fmt.Sprintf("bf.asset_id = $%d", len(args)))
	}
	if params.SetTypeCode != "" {
		if params.AmbiguousType {
			args = append(args, params.SetTypeCode+"%")
			clauses = append(clauses, fmt.Sprintf("bf.set_type_code LIKE $%d", len(args)))
		} else {
			args = append(args, params.SetTypeCode)
			clauses = append(clauses, fmt.Sprintf("bf.set_type_code = $%d", len(args)))
		}
	}
	return clauses, args
}

// identifierVariants derives the three match forms for an identifier. The
// truncated form is empty (matches nothing) for ids of 4 characters or fewer;
// ids of 2 characters or fewer keep their exact form as the LIKE pattern so a
// short id can never wildcard the whole table.
func identifierVariants(id string) (exact, truncated, prefixPattern string) {
	exact = id
	if len(id) > 4 {
		truncated = id[:len(id)-4]
	}
	if len(id) > 2 {
		prefixPattern = escapeLike(id[:len(id)-2]) + "%"
	} else {
		prefixPattern = escapeLike(id)
	}
	return exact, truncated, prefixPattern
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
