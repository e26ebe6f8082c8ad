package repository

import (
	"context"

	"github.com/scripture-text-api/internal/models"
)

// ResolveParams narrows a loosely-specified fileset identifier to one record.
// ID is matched fuzzily (exact, truncated, or wildcard-suffix); AssetID and
// SetTypeCode, when non-empty, narrow the candidate set. AmbiguousType
// relaxes the type filter to a prefix match ("text" matching any text_*).
type ResolveParams struct {
	ID            string
	AssetID       string
	SetTypeCode   string
	AmbiguousType bool
}

// VerseQuery carries the optional filters of a verse-range request. Nil
// pointers mean "no filter"; the service fills VerseStart with 1 when the
// caller omits it.
type VerseQuery struct {
	BookID     string
	Chapter    *int
	VerseStart *int
	VerseEnd   *int
}

// SearchQuery carries a full-text search over one fileset's verse text.
type SearchQuery struct {
	QueryText string
	BookID    string
	Limit     int
}

// FilesetRepository resolves fileset identifiers against the store.
type FilesetRepository interface {
	// Resolve returns the single best-fitting fileset for the params, or an
	// error wrapping apperr.ErrNotFound when nothing satisfies them.
	Resolve(ctx context.Context, params ResolveParams) (*models.Fileset, error)
}

// VerseRepository reads verse text for a resolved fileset.
type VerseRepository interface {
	GetVerses(ctx context.Context, fileset *models.Fileset, q VerseQuery) ([]models.Verse, error)
	Search(ctx context.Context, fileset *models.Fileset, q SearchQuery) ([]models.Verse, error)
	SearchGroup(ctx context.Context, fileset *models.Fileset, queryText string) ([]models.BookResult, error)
}

// NumeralRepository loads vernacular numeral glyphs.
type NumeralRepository interface {
	// GlyphMap returns the digit-to-glyph mapping for (script, iso), keyed by
	// the digit character. An empty map (no error) means no glyphs exist.
	GlyphMap(ctx context.Context, scriptID, iso string) (map[rune]string, error)

	// GlyphSet lists all glyphs of one script ordered by numeral value.
	GlyphSet(ctx context.Context, scriptID string) ([]models.NumeralGlyph, error)
}

// AccessRepository computes grant sets from the authorization relations.
type AccessRepository interface {
	// ComputeGrantSet returns the hash ids the API key may read.
	ComputeGrantSet(ctx context.Context, apiKey string) ([]string, error)
}
