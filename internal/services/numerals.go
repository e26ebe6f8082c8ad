package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/scripture-text-api/internal/apperr"
	"github.com/scripture-text-api/internal/models"
	"github.com/scripture-text-api/internal/repository"
)

// MaxRangeSpan caps the number of entries a single numeral range request may
// produce. Larger spans fail rather than silently truncate.
const MaxRangeSpan = 2000

// NumeralService resolves vernacular numeral glyphs
type NumeralService struct {
	repo repository.NumeralRepository
}

// NewNumeralService creates a new numeral service
func NewNumeralService(repo repository.NumeralRepository) *NumeralService {
	return &NumeralService{repo: repo}
}

// Transliterate maps each digit of the sequence through the glyph mapping.
// Unmapped digits pass through unchanged, so the function is total: an empty
// mapping returns the input as-is.
func Transliterate(glyphs map[rune]string, digits string) string {
	if len(glyphs) == 0 {
		return digits
	}
	var out strings.Builder
	for _, d := range digits {
		if glyph, ok := glyphs[d]; ok {
			out.WriteString(glyph)
		} else {
			out.WriteRune(d)
		}
	}
	return out.String()
}

// Transliterate renders a digit sequence in the vernacular of (script, iso),
// loading the glyph mapping once per call.
func (s *NumeralService) Transliterate(ctx context.Context, scriptID, iso, digits string) (string, error) {
	glyphs, err := s.repo.GlyphMap(ctx, scriptID, iso)
	if err != nil {
		return "", fmt.Errorf("load numeral glyphs: %w", err)
	}
	return Transliterate(glyphs, digits), nil
}

// RangeSeq lazily yields (numeral, vernacular) pairs in ascending order. The
// glyph mapping is loaded once for the whole sequence.
type RangeSeq struct {
	current int
	end     int
	glyphs  map[rune]string
}

// Next returns the next pair, or false when the range is exhausted.
func (s *RangeSeq) Next() (models.NumeralPair, bool) {
	if s.current > s.end {
		return models.NumeralPair{}, false
	}
	n := s.current
	s.current++
	return models.NumeralPair{
		Numeral:    n,
		Vernacular: Transliterate(s.glyphs, strconv.Itoa(n)),
	}, true
}

// Range returns a bounded lazy sequence over [start, end]. Spans beyond
// MaxRangeSpan fail with RangeTooLargeError; a start beyond end yields an
// empty sequence. The span is compared as unsigned so extreme bounds cannot
// overflow the guard.
func (s *NumeralService) Range(ctx context.Context, scriptID, iso string, start, end int) (*RangeSeq, error) {
	if end >= start && uint64(end)-uint64(start) >= MaxRangeSpan {
		return nil, &apperr.RangeTooLargeError{Start: start, End: end, MaxSpan: MaxRangeSpan}
	}
	glyphs, err := s.repo.GlyphMap(ctx, scriptID, iso)
	if err != nil {
		return nil, fmt.Errorf("load numeral glyphs: %w", err)
	}
	return &RangeSeq{current: start, end: end, glyphs: glyphs}, nil
}

// GlyphSet lists the glyphs of one script. A script with no glyph rows is
// reported as not found rather than as an empty set.
func (s *NumeralService) GlyphSet(ctx context.Context, scriptID string) ([]models.NumeralGlyph, error) {
	glyphs, err := s.repo.GlyphSet(ctx, scriptID)
	if err != nil {
		return nil, fmt.Errorf("load glyph set: %w", err)
	}
	if len(glyphs) == 0 {
		return nil, fmt.Errorf("no numeral system found for script %q: %w", scriptID, apperr.ErrNotFound)
	}
	return glyphs, nil
}
