package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/scripture-text-api/internal/services"
)

// SearchHandler handles full-text search endpoints
type SearchHandler struct {
	text *services.TextService
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(text *services.TextService) *SearchHandler {
	return &SearchHandler{text: text}
}

// Search handles GET /search - relevance-ranked verse search within a fileset
func (h *SearchHandler) Search(c echo.Context) error {
	ctx := c.Request().Context()

	queryText, err := requireParam(c, "query")
	if err != nil {
		return err
	}
	filesetID, err := requireParam(c, "fileset_id", "dam_id")
	if err != nil {
		return err
	}

	limit := services.DefaultSearchLimit
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "The limit param must be a positive integer")
		}
		limit = parsed
	}

	verses, err := h.text.Search(ctx, services.SearchParams{
		FilesetID: filesetID,
		QueryText: queryText,
		BookID:    optionalParam(c, "book_id", "book"),
		Limit:     limit,
		AssetID:   c.QueryParam("asset_id"),
	})
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, VersesResponse{Data: verses})
}

// SearchGroup handles GET /text/searchgroup - per-book result density summary
func (h *SearchHandler) SearchGroup(c echo.Context) error {
	ctx := c.Request().Context()

	queryText, err := requireParam(c, "query")
	if err != nil {
		return err
	}
	filesetID, err := requireParam(c, "dam_id", "fileset_id")
	if err != nil {
		return err
	}

	result, err := h.text.SearchGroup(ctx, filesetID, queryText, c.QueryParam("asset_id"))
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, result)
}

// RegisterRoutes registers search routes
func (h *SearchHandler) RegisterRoutes(g *echo.Group) {
	g.GET("/search", h.Search)
	g.GET("/text/searchgroup", h.SearchGroup)
}
