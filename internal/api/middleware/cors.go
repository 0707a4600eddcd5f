// Package middleware holds the echo middleware shared by all routes.
package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

var (
	corsAllowMethods = []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS}
	corsAllowHeaders = []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization}
)

// CORSConfig returns CORS middleware. The API is consumed by browser
// extensions and local tooling, so all origins are allowed. Preflight requests
// are answered directly with 200 and no body; echo's CORS middleware would
// answer 204.
func CORSConfig() echo.MiddlewareFunc {
	cors := middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     corsAllowMethods,
		AllowHeaders:     corsAllowHeaders,
		AllowCredentials: false,
		MaxAge:           86400,
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		withCORS := cors(next)
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodOptions {
				return withCORS(c)
			}

			h := c.Response().Header()
			h.Set(echo.HeaderAccessControlAllowOrigin, "*")
			h.Set(echo.HeaderAccessControlAllowMethods, strings.Join(corsAllowMethods, ","))
			h.Set(echo.HeaderAccessControlAllowHeaders, strings.Join(corsAllowHeaders, ","))
			h.Set(echo.HeaderAccessControlMaxAge, "86400")
			return c.NoContent(http.StatusOK)
		}
	}
}
