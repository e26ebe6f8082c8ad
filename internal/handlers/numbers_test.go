package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/scripture-text-api/internal/handlers"
	"github.com/scripture-text-api/internal/models"
	"github.com/scripture-text-api/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNumeralRepo struct {
	glyphs map[rune]string
	set    []models.NumeralGlyph
}

func (f *fakeNumeralRepo) GlyphMap(_ context.Context, _, _ string) (map[rune]string, error) {
	if f.glyphs == nil {
		return map[rune]string{}, nil
	}
	return f.glyphs, nil
}

func (f *fakeNumeralRepo) GlyphSet(_ context.Context, _ string) ([]models.NumeralGlyph, error) {
	return f.set, nil
}

func newRangeRequest(target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestNumbersHandler_Range(t *testing.T) {
	repo := &fakeNumeralRepo{glyphs: map[rune]string{
		'1': "١", '2': "٢", '3': "٣",
	}}
	h := handlers.NewNumbersHandler(services.NewNumeralService(repo))

	t.Run("returns the vernacular range", func(t *testing.T) {
		c, rec := newRangeRequest("/numbers/range?script=Arab&iso=ar&start=1&end=3")
		require.NoError(t, h.Range(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp handlers.NumbersRangeResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Data, 3)
		assert.Equal(t, 1, resp.Data[0].Numeral)
		assert.Equal(t, "١", resp.Data[0].Vernacular)
		assert.Equal(t, 3, resp.Data[2].Numeral)
		assert.Equal(t, "٣", resp.Data[2].Vernacular)
	})

	t.Run("too large a span is a bad request", func(t *testing.T) {
		c, _ := newRangeRequest("/numbers/range?script=Arab&iso=ar&start=1&end=2001")
		err := h.Range(c)

		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusBadRequest, httpErr.Code)
	})

	t.Run("missing params are unprocessable", func(t *testing.T) {
		c, _ := newRangeRequest("/numbers/range?script=Arab")
		err := h.Range(c)

		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusUnprocessableEntity, httpErr.Code)
	})

	t.Run("non-integer bounds are unprocessable", func(t *testing.T) {
		c, _ := newRangeRequest("/numbers/range?script=Arab&iso=ar&start=one&end=3")
		err := h.Range(c)

		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusUnprocessableEntity, httpErr.Code)
	})
}

func TestNumbersHandler_Show(t *testing.T) {
	t.Run("unknown script is not found", func(t *testing.T) {
		h := handlers.NewNumbersHandler(services.NewNumeralService(&fakeNumeralRepo{}))

		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		c := e.NewContext(req, httptest.NewRecorder())
		c.SetPath("/numbers/:script")
		c.SetParamNames("script")
		c.SetParamValues("Zzzz")

		err := h.Show(c)
		var httpErr *echo.HTTPError
		require.ErrorAs(t, err, &httpErr)
		assert.Equal(t, http.StatusNotFound, httpErr.Code)
	})

	t.Run("lists the glyph set", func(t *testing.T) {
		repo := &fakeNumeralRepo{set: []models.NumeralGlyph{
			{ScriptID: "Arab", ISO: "ar", Numeral: 0, Vernacular: "٠"},
		}}
		h := handlers.NewNumbersHandler(services.NewNumeralService(repo))

		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath("/numbers/:script")
		c.SetParamNames("script")
		c.SetParamValues("Arab")

		require.NoError(t, h.Show(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp handlers.GlyphSetResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.Len(t, resp.Data, 1)
		assert.Equal(t, "٠", resp.Data[0].Vernacular)
	})
}
