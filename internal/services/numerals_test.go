package services_test

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/scripture-text-api/internal/apperr"
	"github.com/scripture-text-api/internal/models"
	"github.com/scripture-text-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNumeralRepo struct {
	glyphs map[rune]string
	set    []models.NumeralGlyph
	err    error
}

func (f *fakeNumeralRepo) GlyphMap(_ context.Context, _, _ string) (map[rune]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.glyphs == nil {
		return map[rune]string{}, nil
	}
	return f.glyphs, nil
}

func (f *fakeNumeralRepo) GlyphSet(_ context.Context, _ string) ([]models.NumeralGlyph, error) {
	return f.set, f.err
}

var arabicGlyphs = map[rune]string{
	'0': "٠", '1': "١", '2': "٢", '3': "٣", '4': "٤",
	'5': "٥", '6': "٦", '7': "٧", '8': "٨", '9': "٩",
}

func TestTransliterate(t *testing.T) {
	tests := []struct {
		name   string
		glyphs map[rune]string
		digits string
		want   string
	}{
		{"full arabic mapping", arabicGlyphs, "102", "١٠٢"},
		{"empty mapping passes through", map[rune]string{}, "42", "42"},
		{"nil mapping passes through", nil, "42", "42"},
		{"unmapped digit passes through", map[rune]string{'1': "١"}, "12", "١2"},
		{"non-digit characters pass through", arabicGlyphs, "1-2", "١-٢"},
		{"empty input", arabicGlyphs, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, services.Transliterate(tt.glyphs, tt.digits))
		})
	}
}

func TestNumeralService_Transliterate(t *testing.T) {
	svc := services.NewNumeralService(&fakeNumeralRepo{glyphs: arabicGlyphs})

	out, err := svc.Transliterate(context.Background(), "Arab", "ar", "102")
	require.NoError(t, err)
	assert.Equal(t, "١٠٢", out)
}

func TestNumeralService_Range(t *testing.T) {
	svc := services.NewNumeralService(&fakeNumeralRepo{glyphs: arabicGlyphs})
	ctx := context.Background()

	t.Run("maximum span succeeds with exactly 2000 entries", func(t *testing.T) {
		seq, err := svc.Range(ctx, "Arab", "ar", 1, 2000)
		require.NoError(t, err)

		var pairs []models.NumeralPair
		for {
			pair, ok := seq.Next()
			if !ok {
				break
			}
			pairs = append(pairs, pair)
		}
		require.Len(t, pairs, 2000)
		assert.Equal(t, 1, pairs[0].Numeral)
		assert.Equal(t, "١", pairs[0].Vernacular)
		assert.Equal(t, 2000, pairs[1999].Numeral)
		assert.Equal(t, "٢٠٠٠", pairs[1999].Vernacular)
		for i := 1; i < len(pairs); i++ {
			assert.Equal(t, pairs[i-1].Numeral+1, pairs[i].Numeral)
		}
	})

	t.Run("span beyond the maximum fails", func(t *testing.T) {
		_, err := svc.Range(ctx, "Arab", "ar", 1, 2001)
		var rangeErr *apperr.RangeTooLargeError
		require.ErrorAs(t, err, &rangeErr)
		assert.Equal(t, 2001, rangeErr.End)
		assert.Contains(t, err.Error(), "2001")
	})

	t.Run("extreme bounds cannot overflow the span guard", func(t *testing.T) {
		tests := []struct {
			name       string
			start, end int
		}{
			{"full integer range", math.MinInt, math.MaxInt},
			{"overflowing positive span", math.MinInt, 0},
			{"span ending at max int", math.MaxInt - 5000, math.MaxInt},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := svc.Range(ctx, "Arab", "ar", tt.start, tt.end)
				var rangeErr *apperr.RangeTooLargeError
				require.ErrorAs(t, err, &rangeErr)
				assert.Equal(t, tt.end, rangeErr.End)
			})
		}
	})

	t.Run("start beyond end yields an empty sequence", func(t *testing.T) {
		seq, err := svc.Range(ctx, "Arab", "ar", 10, 5)
		require.NoError(t, err)
		_, ok := seq.Next()
		assert.False(t, ok)
	})

	t.Run("empty mapping falls back to plain numerals", func(t *testing.T) {
		plain := services.NewNumeralService(&fakeNumeralRepo{})
		seq, err := plain.Range(ctx, "Zzzz", "und", 41, 42)
		require.NoError(t, err)

		pair, ok := seq.Next()
		require.True(t, ok)
		assert.Equal(t, "41", pair.Vernacular)
	})
}

func TestNumeralService_GlyphSet(t *testing.T) {
	t.Run("missing script is not found", func(t *testing.T) {
		svc := services.NewNumeralService(&fakeNumeralRepo{})
		_, err := svc.GlyphSet(context.Background(), "Zzzz")
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("glyphs are returned as stored", func(t *testing.T) {
		set := []models.NumeralGlyph{
			{ScriptID: "Arab", ISO: "ar", Numeral: 0, Vernacular: "٠"},
			{ScriptID: "Arab", ISO: "ar", Numeral: 1, Vernacular: "١"},
		}
		svc := services.NewNumeralService(&fakeNumeralRepo{set: set})
		got, err := svc.GlyphSet(context.Background(), "Arab")
		require.NoError(t, err)
		assert.Equal(t, set, got)
	})

	t.Run("repository errors propagate", func(t *testing.T) {
		svc := services.NewNumeralService(&fakeNumeralRepo{err: errors.New("boom")})
		_, err := svc.GlyphSet(context.Background(), "Arab")
		assert.Error(t, err)
	})
}
