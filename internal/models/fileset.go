package models

// Fileset identifies one encoded partition of scriptural content.
// HashID is derived from (asset_id, set_type_code, id) at ingestion time and
// is the join key for all content tables; the short ID alone is not unique.
type Fileset struct {
	ID          string `json:"id" db:"id"`
	HashID      string `json:"-" db:"hash_id"`
	AssetID     string `json:"asset_id" db:"asset_id"`
	SetTypeCode string `json:"set_type_code" db:"set_type_code"`
	SetSizeCode string `json:"set_size_code" db:"set_size_code"`

	// Joined from the fileset's Bible connection; used for vernacular
	// book names and numeral glyph lookups.
	BibleID  string `json:"bible_id" db:"bible_id"`
	ScriptID string `json:"-" db:"script_id"`
	ISO      string `json:"-" db:"iso"`
}
