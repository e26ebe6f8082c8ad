package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/scripture-text-api/internal/middleware"
	"github.com/scripture-text-api/internal/models"
	"github.com/scripture-text-api/internal/services"
)

// TextHandler handles verse retrieval endpoints
type TextHandler struct {
	text *services.TextService
}

// NewTextHandler creates a new text handler
func NewTextHandler(text *services.TextService) *TextHandler {
	return &TextHandler{text: text}
}

// VersesResponse wraps a verse listing
type VersesResponse struct {
	Data []models.Verse `json:"data"`
}

// Verses handles GET /bibles/:fileset/:book/:chapter and GET /text/verse.
// The path form carries the identifiers in the URL; the query form accepts
// the older parameter aliases.
func (h *TextHandler) Verses(c echo.Context) error {
	ctx := c.Request().Context()

	filesetID := c.Param("fileset")
	if filesetID == "" {
		var err error
		if filesetID, err = requireParam(c, "fileset_id", "dam_id"); err != nil {
			return err
		}
	}

	bookID := c.Param("book")
	if bookID == "" {
		var err error
		if bookID, err = requireParam(c, "book_id", "book"); err != nil {
			return err
		}
	}

	chapterRaw := c.Param("chapter")
	if chapterRaw == "" {
		var err error
		if chapterRaw, err = requireParam(c, "chapter_id", "chapter"); err != nil {
			return err
		}
	}
	chapter, err := strconv.Atoi(chapterRaw)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "The chapter param must be an integer")
	}

	verseStart, err := optionalIntParam(c, "verse_start")
	if err != nil {
		return err
	}
	verseEnd, err := optionalIntParam(c, "verse_end")
	if err != nil {
		return err
	}

	verses, err := h.text.GetVerses(ctx, middleware.APIKeyFromContext(c), services.VerseParams{
		FilesetID:  filesetID,
		BookID:     bookID,
		Chapter:    &chapter,
		VerseStart: verseStart,
		VerseEnd:   verseEnd,
		AssetID:    optionalParam(c, "asset_id", "bucket", "bucket_id"),
	})
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, VersesResponse{Data: verses})
}

// RegisterRoutes registers verse retrieval routes
func (h *TextHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/bibles/:fileset/:book/:chapter", h.Verses)
	g.GET("/text/verse", h.Verses)
}

func optionalIntParam(c echo.Context, name string) (*int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnprocessableEntity, "The "+name+" param must be an integer")
	}
	return &value, nil
}
