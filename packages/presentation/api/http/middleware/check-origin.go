package middleware

import (
	"net/http"
	"slices"

	"converter/packages/presentation/api/http/request"

	"github.com/labstack/echo/v4"
)

// Used to prevent request forgery attacks.
// Requests with unsafe methods and Origin not from allowedOrigins are rejected.
func CheckOrigin(allowedOrigins []string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			req := ctx.Request()

			if req.Method == http.MethodGet || req.Method == http.MethodHead || req.Method == http.MethodOptions {
				return next(ctx)
			}

			origin := req.Header.Get("Origin")

			if origin != "" && !slices.Contains(allowedOrigins, origin) {
				log.Error("Invalid request origin", "Origin "+origin+" isn't allowed", request.GetMetadata(ctx))
				return echo.NewHTTPError(
					http.StatusForbidden,
					"Invalid origin",
				)
			}

			return next(ctx)
		}
	}
}
