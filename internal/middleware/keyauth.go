package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// apiKeyContextKey is where the extracted key is stashed on the echo context.
const apiKeyContextKey = "apiKey"

// APIKey extracts the caller's API key from the `key` query parameter or the
// Authorization header. Keys are validated upstream; this layer only requires
// presence so the access-control check always has a key to work with.
func APIKey() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.QueryParam("key")
			if key == "" {
				key = strings.TrimPrefix(c.Request().Header.Get("Authorization"), "Bearer ")
			}
			if key == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "An API key is required")
			}
			c.Set(apiKeyContextKey, key)
			return next(c)
		}
	}
}

// APIKeyFromContext returns the key extracted by the APIKey middleware.
func APIKeyFromContext(c echo.Context) string {
	key, _ := c.Get(apiKeyContextKey).(string)
	return key
}
