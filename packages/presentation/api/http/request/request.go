package request

import (
	"fmt"
	"net/http"

	"converter/packages/common/logger"

	"github.com/labstack/echo/v4"
	"github.com/mileusna/useragent"
)

var log = logger.NewSource("REQUEST", logger.Default)

const metaKey = "req_meta"

func newMeta(req *http.Request, requestID string) logger.Meta {
	ua := useragent.Parse(req.UserAgent())

	return logger.Meta{
		"addr":       req.RemoteAddr,
		"method":     req.Method,
		"path":       req.URL.Path,
		"user_agent": req.UserAgent(),
		"browser":    ua.Name,
		"os":         ua.OS,
		"request_id": requestID,
	}
}

// Request ID is taken from the response header,
// so this middleware must be applied after echo's RequestID middleware.
func requestID(ctx echo.Context) string {
	if id := ctx.Response().Header().Get(echo.HeaderXRequestID); id != "" {
		return id
	}
	return ctx.Request().Header.Get(echo.HeaderXRequestID)
}

// This middleware must be applied to the router
// for the all functions in this package to work correctly.
func Middleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		ctx.Set(metaKey, newMeta(ctx.Request(), requestID(ctx)))

		return next(ctx)
	}
}

// Retrieves metadata from the context.
// Will panic if request.Middleware wasn't applied to the router.
func GetMetadata(ctx echo.Context) logger.Meta {
	switch m := ctx.Get(metaKey).(type) {
	case logger.Meta:
		return m
	case nil:
		log.Panic(
			"Failed to get metadata from context",
			"Request meta wasn't set (check if middleware applied correctly)",
			newMeta(ctx.Request(), requestID(ctx)),
		)
		return nil
	default:
		log.Panic(
			"Failed to get metadata from context",
			fmt.Sprintf("Request meta has invalid type. Expected logger.Meta, but got %T", m),
			newMeta(ctx.Request(), requestID(ctx)),
		)
		return nil
	}
}
