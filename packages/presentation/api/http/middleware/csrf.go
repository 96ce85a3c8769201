package middleware

import (
	"crypto/subtle"
	"net/http"

	"converter/packages/presentation/api/http/cookie"
	"converter/packages/presentation/api/http/request"

	"github.com/labstack/echo/v4"
)

const CSRFHeader = "X-CSRF-Token"

// Constant-time comparison to prevent timing attacks
func secureCompare(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// Requires two same CSRF tokens, one must be set in HTTP-Only cookie and
// another one must be provided in X-CSRF-Token header.
// If tokens doesn't match this middleware won't pass this request further.
func DoubleSubmitCSRF(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		if ctx.Request().Method == http.MethodGet || ctx.Request().Method == http.MethodHead {
			return next(ctx)
		}

		reqMeta := request.GetMetadata(ctx)

		headerToken := ctx.Request().Header.Get(CSRFHeader)
		if headerToken == "" {
			log.Warning("CSRF token is missing in the request header", reqMeta)
			return echo.NewHTTPError(
				http.StatusBadRequest,
				"CSRF token is missing in the request header",
			)
		}

		cookieToken, ok := cookie.Read(ctx.Request(), cookie.CSRFTokenCookieKey)
		if !ok {
			log.Warning("CSRF cookie is missing", reqMeta)
			return echo.NewHTTPError(
				http.StatusBadRequest,
				"CSRF cookie is missing",
			)
		}

		if !secureCompare(headerToken, cookieToken) {
			log.Warning("CSRF tokens mismatch", reqMeta)
			return echo.NewHTTPError(
				http.StatusForbidden,
				"CSRF tokens mismatch",
			)
		}

		return next(ctx)
	}
}
