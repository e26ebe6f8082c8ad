package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/scripture-text-api/internal/apperr"
)

// httpError maps the service error taxonomy to HTTP statuses. NotFound and
// Forbidden stay distinguishable at the boundary; a too-large numeral range
// is a client error distinct from not-found.
func httpError(err error) error {
	var rangeErr *apperr.RangeTooLargeError
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, apperr.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.As(err, &rangeErr):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}

// requireParam reads a query parameter under any of its accepted aliases,
// failing with 422 when absent. Older API generations used different names
// for the same parameter, so aliases are tried in order.
func requireParam(c echo.Context, names ...string) (string, error) {
	if value := optionalParam(c, names...); value != "" {
		return value, nil
	}
	return "", echo.NewHTTPError(http.StatusUnprocessableEntity, "The "+names[0]+" param is required")
}

func optionalParam(c echo.Context, names ...string) string {
	for _, name := range names {
		if value := c.QueryParam(name); value != "" {
			return value
		}
	}
	return ""
}
