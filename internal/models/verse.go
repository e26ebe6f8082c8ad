package models

// Verse is one row of scripture text with its display metadata.
// VerseEnd >= VerseStart always; a row spanning several verses (a merged
// range) carries the full range in a single record.
type Verse struct {
	BookID             string `json:"book_id" db:"book_id"`
	BookName           string `json:"book_name" db:"book_name"`
	BookVernacularName string `json:"book_name_alt" db:"book_vernacular_name"`
	Chapter            int    `json:"chapter" db:"chapter"`
	VerseStart         int    `json:"verse_start" db:"verse_start"`
	VerseEnd           int    `json:"verse_end" db:"verse_end"`
	VerseText          string `json:"verse_text" db:"verse_text"`

	// Vernacular renderings of the chapter and verse numbers, filled in
	// by the text service from the Bible's numeral glyph set.
	ChapterVernacular    string `json:"chapter_alt,omitempty" db:"-"`
	VerseStartVernacular string `json:"verse_start_alt,omitempty" db:"-"`
	VerseEndVernacular   string `json:"verse_end_alt,omitempty" db:"-"`
}

// BookResult is one per-book row of a grouped search: a result-density
// summary rather than a verse listing.
type BookResult struct {
	BookID     string `json:"book_id" db:"book_id"`
	BookName   string `json:"book_name" db:"book_name"`
	Chapter    int    `json:"chapter" db:"chapter"`
	VerseStart int    `json:"verse_start" db:"verse_start"`
	VerseText  string `json:"verse_text" db:"verse_text"`
	Results    int    `json:"results" db:"results"`
	BookOrder  int    `json:"book_order" db:"book_order"`
}

// SearchGroupResult aggregates a full-text search per book.
type SearchGroupResult struct {
	TotalResults int          `json:"total_results"`
	Books        []BookResult `json:"data"`
}
