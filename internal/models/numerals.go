package models

// NumeralGlyph maps a single Arabic digit value to its vernacular glyph for
// one (script, iso) pair. Not every digit need be present for every script;
// absent digits pass through unchanged during transliteration.
type NumeralGlyph struct {
	ScriptID   string `json:"script_id" db:"script_id"`
	ISO        string `json:"iso" db:"iso"`
	Numeral    int    `json:"numeral" db:"numeral"`
	Vernacular string `json:"numeral_vernacular" db:"numeral_vernacular"`
	Written    string `json:"numeral_written,omitempty" db:"numeral_written"`
}

// NumeralPair is one entry of a vernacular number range.
type NumeralPair struct {
	Numeral    int    `json:"numeral"`
	Vernacular string `json:"numeral_vernacular"`
}
