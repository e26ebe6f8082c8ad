package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/scripture-text-api/internal/apperr"
	"github.com/scripture-text-api/internal/models"
	"github.com/scripture-text-api/internal/repository"
)

// DefaultSearchLimit is applied when a search request omits the limit.
const DefaultSearchLimit = 15

// plainTextType is the set_type_code family served by the text routes.
const plainTextType = "text_plain"

// TextService orchestrates fileset resolution, access gating, and verse
// retrieval for the text endpoints.
type TextService struct {
	filesets       repository.FilesetRepository
	verses         repository.VerseRepository
	numerals       repository.NumeralRepository
	access         *AccessService
	defaultAssetID string
}

// NewTextService creates a new text retrieval service
func NewTextService(
	filesets repository.FilesetRepository,
	verses repository.VerseRepository,
	numerals repository.NumeralRepository,
	access *AccessService,
	defaultAssetID string,
) *TextService {
	return &TextService{
		filesets:       filesets,
		verses:         verses,
		numerals:       numerals,
		access:         access,
		defaultAssetID: defaultAssetID,
	}
}

// VerseParams are the caller-facing parameters of a verse-range request.
// Nil optional fields mean "no filter".
type VerseParams struct {
	FilesetID  string
	BookID     string
	Chapter    *int
	VerseStart *int
	VerseEnd   *int
	AssetID    string
}

// GetVerses resolves the fileset, checks the caller's grant set, and returns
// the matching verse rows annotated with vernacular numerals. An omitted
// verse start means "from the beginning of the chapter" (verse 1).
func (s *TextService) GetVerses(ctx context.Context, apiKey string, p VerseParams) ([]models.Verse, error) {
	fileset, err := s.resolve(ctx, p.FilesetID, p.AssetID)
	if err != nil {
		return nil, err
	}

	if !s.access.IsAuthorized(ctx, apiKey, fileset.HashID) {
		return nil, fmt.Errorf("api key does not have access to fileset %s: %w", fileset.ID, apperr.ErrForbidden)
	}

	verseStart := p.VerseStart
	if verseStart == nil {
		one := 1
		verseStart = &one
	}

	verses, err := s.verses.GetVerses(ctx, fileset, repository.VerseQuery{
		BookID:     p.BookID,
		Chapter:    p.Chapter,
		VerseStart: verseStart,
		VerseEnd:   p.VerseEnd,
	})
	if err != nil {
		return nil, err
	}
	return s.annotate(ctx, fileset, verses)
}

// SearchParams are the caller-facing parameters of a full-text search.
type SearchParams struct {
	FilesetID string
	QueryText string
	BookID    string
	Limit     int
	AssetID   string
}

// Search resolves the fileset and runs a relevance-ranked full-text search
// over its verse text. An unmatched or empty query returns an empty sequence.
func (s *TextService) Search(ctx context.Context, p SearchParams) ([]models.Verse, error) {
	fileset, err := s.resolve(ctx, p.FilesetID, p.AssetID)
	if err != nil {
		return nil, err
	}

	limit := p.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	verses, err := s.verses.Search(ctx, fileset, repository.SearchQuery{
		QueryText: p.QueryText,
		BookID:    p.BookID,
		Limit:     limit,
	})
	if err != nil {
		return nil, err
	}
	return s.annotate(ctx, fileset, verses)
}

// SearchGroup resolves the fileset and aggregates the full-text match per
// book, ordered by the canonical book order, with the summed total.
func (s *TextService) SearchGroup(ctx context.Context, filesetID, queryText, assetID string) (*models.SearchGroupResult, error) {
	fileset, err := s.resolve(ctx, filesetID, assetID)
	if err != nil {
		return nil, err
	}

	books, err := s.verses.SearchGroup(ctx, fileset, queryText)
	if err != nil {
		return nil, err
	}

	total := 0
	for _, b := range books {
		total += b.Results
	}
	return &models.SearchGroupResult{TotalResults: total, Books: books}, nil
}

func (s *TextService) resolve(ctx context.Context, filesetID, assetID string) (*models.Fileset, error) {
	if assetID == "" {
		assetID = s.defaultAssetID
	}
	return s.filesets.Resolve(ctx, repository.ResolveParams{
		ID:          filesetID,
		AssetID:     assetID,
		SetTypeCode: plainTextType,
	})
}

// annotate fills the vernacular chapter/verse fields from the Bible's glyph
// set. The mapping is loaded once per batch; with no glyphs the vernacular
// equals the plain numeral.
func (s *TextService) annotate(ctx context.Context, fileset *models.Fileset, verses []models.Verse) ([]models.Verse, error) {
	if len(verses) == 0 {
		return verses, nil
	}

	glyphs, err := s.numerals.GlyphMap(ctx, fileset.ScriptID, fileset.ISO)
	if err != nil {
		return nil, fmt.Errorf("load vernacular glyphs: %w", err)
	}

	for i := range verses {
		verses[i].ChapterVernacular = Transliterate(glyphs, strconv.Itoa(verses[i].Chapter))
		verses[i].VerseStartVernacular = Transliterate(glyphs, strconv.Itoa(verses[i].VerseStart))
		verses[i].VerseEndVernacular = Transliterate(glyphs, strconv.Itoa(verses[i].VerseEnd))
	}
	return verses, nil
}
