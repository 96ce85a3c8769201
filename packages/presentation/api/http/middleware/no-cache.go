package middleware

import "github.com/labstack/echo/v4"

var noCacheHeaders = map[string]string{
	"Cache-Control": "no-store, max-age=0",
	"Pragma":        "no-cache",
	"Expires":       "0",
}

// Keeps credential related responses out of browser and proxy caches.
func NoCache(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		header := ctx.Response().Header()

		for k, v := range noCacheHeaders {
			header.Set(k, v)
		}

		// Responses depend on credential cookies.
		// Added, since CORS middleware may already set Vary: Origin.
		header.Add(echo.HeaderVary, echo.HeaderCookie)

		return next(ctx)
	}
}
