package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/scripture-text-api/internal/models"
	"github.com/scripture-text-api/internal/repository"
)

// VerseRepository implements repository.VerseRepository for PostgreSQL
type VerseRepository struct {
	db *sqlx.DB
}

// NewVerseRepository creates a new PostgreSQL verse repository
func NewVerseRepository(db *sqlx.DB) repository.VerseRepository {
	return &VerseRepository{db: db}
}

const verseColumns = `
	bv.book_id,
	b.name AS book_name,
	COALESCE(bb.name, '') AS book_vernacular_name,
	bv.chapter, bv.verse_start, bv.verse_end, bv.verse_text`

const verseJoins = `
	FROM bible_verses bv
	JOIN books b ON b.id = bv.book_id
	LEFT JOIN bible_books bb ON bb.bible_id = $1 AND bb.book_id = bv.book_id`

// GetVerses returns the verse rows of one book matching the optional
// chapter/verse filters, ordered by chapter then verse.
func (r *VerseRepository) GetVerses(ctx context.Context, fileset *models.Fileset, q repository.VerseQuery) ([]models.Verse, error) {
	query := `SELECT` + verseColumns + verseJoins + `
	WHERE bv.hash_id = $2 AND bv.book_id = $3`
	args := []interface{}{fileset.BibleID, fileset.HashID, q.BookID}

	clauses, filterArgs := verseFilters(q, len(args)+1)
	if len(clauses) > 0 {
		query += " AND " + strings.Join(clauses, " AND ")
		args = append(args, filterArgs...)
	}
	query += `
	ORDER BY bv.chapter, bv.verse_start`

	return r.queryVerses(ctx, query, args)
}

// Search runs a natural-language full-text match over the fileset's verse
// text, ranked by relevance and truncated to the limit. Caller text is always
// bound as a parameter, never interpolated.
func (r *VerseRepository) Search(ctx context.Context, fileset *models.Fileset, q repository.SearchQuery) ([]models.Verse, error) {
	query := `SELECT` + verseColumns + verseJoins + `
	WHERE bv.hash_id = $2`
	args := []interface{}{fileset.BibleID, fileset.HashID}

	if q.BookID != "" {
		args = append(args, q.BookID)
		query += fmt.Sprintf(" AND bv.book_id = $%d", len(args))
	}

	args = append(args, q.QueryText)
	textArg := len(args)
	args = append(args, q.Limit)
	query += fmt.Sprintf(`
	  AND to_tsvector('simple', bv.verse_text) @@ plainto_tsquery('simple', $%d)
	ORDER BY ts_rank(to_tsvector('simple', bv.verse_text), plainto_tsquery('simple', $%d)) DESC
	LIMIT $%d`, textArg, textArg, len(args))

	return r.queryVerses(ctx, query, args)
}

// SearchGroup aggregates the same full-text match per book: one
// representative verse, the match count, and the book's canonical order key.
func (r *VerseRepository) SearchGroup(ctx context.Context, fileset *models.Fileset, queryText string) ([]models.BookResult, error) {
	query := `
		SELECT b.id_usfx AS book_id,
		       MIN(b.name) AS book_name,
		       MIN(bv.chapter) AS chapter,
		       MIN(bv.verse_start) AS verse_start,
		       MIN(bv.verse_text) AS verse_text,
		       COUNT(*) AS results,
		       b.protestant_order AS book_order
		FROM bible_verses bv
		JOIN books b ON b.id = bv.book_id
		WHERE bv.hash_id = $1
		  AND to_tsvector('simple', bv.verse_text) @@ plainto_tsquery('simple', $2)
		GROUP BY b.id_usfx, b.protestant_order
		ORDER BY b.protestant_order`

	rows, err := r.db.QueryxContext(ctx, query, fileset.HashID, queryText)
	if err != nil {
		return nil, fmt.Errorf("search group: %w", err)
	}
	defer rows.Close()

	var results []models.BookResult
	for rows.Next() {
		var br models.BookResult
		if err := rows.StructScan(&br); err != nil {
			return nil, fmt.Errorf("scan book result: %w", err)
		}
		results = append(results, br)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate book results: %w", err)
	}

	if results == nil {
		results = []models.BookResult{}
	}
	return results, nil
}

// verseFilters builds the conjunctive optional predicates of a verse query as
// a data-driven list, numbered from startIdx. The verse-start filter is an
// inclusive-overlap match: a merged range that starts before but ends at or
// after the requested verse is still included.
func verseFilters(q repository.VerseQuery, startIdx int) ([]string, []interface{}) {
	var clauses []string
	var args []interface{}
	next := func() int { return startIdx + len(args) }

	if q.VerseStart != nil {
		clauses = append(clauses, fmt.Sprintf("bv.verse_end >= $%d", next()))
		args = append(args, *q.VerseStart)
	}
	if q.Chapter != nil {
		clauses = append(clauses, fmt.Sprintf("bv.chapter = $%d", next()))
		args = append(args, *q.Chapter)
	}
	if q.VerseEnd != nil {
		clauses = append(clauses, fmt.Sprintf("bv.verse_end <= $%d", next()))
		args = append(args, *q.VerseEnd)
	}
	return clauses, args
}

func (r *VerseRepository) queryVerses(ctx context.Context, query string, args []interface{}) ([]models.Verse, error) {
	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query verses: %w", err)
	}
	defer rows.Close()

	var verses []models.Verse
	for rows.Next() {
		var v models.Verse
		if err := rows.StructScan(&v); err != nil {
			return nil, fmt.Errorf("scan verse: %w", err)
		}
		verses = append(verses, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate verses: %w", err)
	}

	if verses == nil {
		verses = []models.Verse{}
	}
	return verses, nil
}
