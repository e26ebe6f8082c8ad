package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/scripture-text-api/internal/models"
	"github.com/scripture-text-api/internal/repository"
)

// NumeralRepository implements repository.NumeralRepository for PostgreSQL
type NumeralRepository struct {
	db *sqlx.DB
}

// NewNumeralRepository creates a new PostgreSQL numeral repository
func NewNumeralRepository(db *sqlx.DB) repository.NumeralRepository {
	return &NumeralRepository{db: db}
}

// GlyphMap loads the digit-to-glyph mapping for one (script, iso) pair,
// keyed by digit character. Scripts may cover only some digits; rows outside
// 0-9 are skipped.
func (r *NumeralRepository) GlyphMap(ctx context.Context, scriptID, iso string) (map[rune]string, error) {
	rows, err := r.db.QueryxContext(ctx, `
		SELECT numeral, numeral_vernacular
		FROM alphabet_numerals
		WHERE script_id = $1 AND iso = $2`, scriptID, iso)
	if err != nil {
		return nil, fmt.Errorf("load glyph map: %w", err)
	}
	defer rows.Close()

	glyphs := make(map[rune]string)
	for rows.Next() {
		var numeral int
		var vernacular string
		if err := rows.Scan(&numeral, &vernacular); err != nil {
			return nil, fmt.Errorf("scan glyph: %w", err)
		}
		if numeral < 0 || numeral > 9 {
			continue
		}
		glyphs[rune('0'+numeral)] = vernacular
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate glyphs: %w", err)
	}
	return glyphs, nil
}

// GlyphSet lists every glyph of one script, ordered by numeral value.
func (r *NumeralRepository) GlyphSet(ctx context.Context, scriptID string) ([]models.NumeralGlyph, error) {
	var glyphs []models.NumeralGlyph
	err := r.db.SelectContext(ctx, &glyphs, `
		SELECT script_id, iso, numeral, numeral_vernacular,
		       COALESCE(numeral_written, '') AS numeral_written
		FROM alphabet_numerals
		WHERE script_id = $1
		ORDER BY numeral`, scriptID)
	if err != nil {
		return nil, fmt.Errorf("load glyph set: %w", err)
	}
	return glyphs, nil
}
