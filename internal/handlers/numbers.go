package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/scripture-text-api/internal/models"
	"github.com/scripture-text-api/internal/services"
)

// NumbersHandler handles vernacular numeral endpoints
type NumbersHandler struct {
	numerals *services.NumeralService
}

// NewNumbersHandler creates a new numbers handler
func NewNumbersHandler(numerals *services.NumeralService) *NumbersHandler {
	return &NumbersHandler{numerals: numerals}
}

// NumbersRangeResponse wraps a numeral range listing
type NumbersRangeResponse struct {
	Data []models.NumeralPair `json:"data"`
}

// GlyphSetResponse wraps one script's glyph set
type GlyphSetResponse struct {
	Data []models.NumeralGlyph `json:"data"`
}

// Range handles GET /numbers/range - vernacular numerals for [start, end]
func (h *NumbersHandler) Range(c echo.Context) error {
	ctx := c.Request().Context()

	scriptID, err := requireParam(c, "script")
	if err != nil {
		return err
	}
	iso, err := requireParam(c, "iso")
	if err != nil {
		return err
	}
	start, err := requiredIntParam(c, "start")
	if err != nil {
		return err
	}
	end, err := requiredIntParam(c, "end")
	if err != nil {
		return err
	}

	seq, err := h.numerals.Range(ctx, scriptID, iso, start, end)
	if err != nil {
		return httpError(err)
	}

	pairs := []models.NumeralPair{}
	for {
		pair, ok := seq.Next()
		if !ok {
			break
		}
		pairs = append(pairs, pair)
	}

	return c.JSON(http.StatusOK, NumbersRangeResponse{Data: pairs})
}

// Show handles GET /numbers/:script - one script's numeral glyph set
func (h *NumbersHandler) Show(c echo.Context) error {
	glyphs, err := h.numerals.GlyphSet(c.Request().Context(), c.Param("script"))
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, GlyphSetResponse{Data: glyphs})
}

// RegisterRoutes registers numeral routes
func (h *NumbersHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/numbers/range", h.Range)
	g.GET("/numbers/:script", h.Show)
}

func requiredIntParam(c echo.Context, name string) (int, error) {
	raw, err := requireParam(c, name)
	if err != nil {
		return 0, err
	}
	value, convErr := strconv.Atoi(raw)
	if convErr != nil {
		return 0, echo.NewHTTPError(http.StatusUnprocessableEntity, "The "+name+" param must be an integer")
	}
	return value, nil
}
