package middleware

import (
	"errors"

	"converter/packages/common/logger"
	"converter/packages/presentation/api/http/request"

	"github.com/labstack/echo/v4"
)

// Defines how loud events of the endpoint (e.g. blocked requests) are logged.
type EndpointSensitivity int

const (
	InsignificantEndpoint EndpointSensitivity = iota
	DefaultEndpoint
	SensitiveEndpoint
)

func (s EndpointSensitivity) Validate() error {
	if s < InsignificantEndpoint || s > SensitiveEndpoint {
		return errors.New("unknown endpoint sensitivity")
	}
	return nil
}

// Returns log function matching sensitivity.
func (s EndpointSensitivity) logger() func(msg string, meta logger.Meta) {
	switch s {
	case InsignificantEndpoint:
		return log.Trace
	case SensitiveEndpoint:
		return log.Warning
	default:
		return log.Info
	}
}

const sensitivityKey = "endpoint_sensitivity"

func Sensitivity(s EndpointSensitivity) echo.MiddlewareFunc {
	if err := s.Validate(); err != nil {
		log.Panic("Failed to set endpoint sensitivity", err.Error(), nil)
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			ctx.Set(sensitivityKey, s)
			return next(ctx)
		}
	}
}

// Panics if Sensitivity middleware wasn't applied to the route.
func GetSensitivity(ctx echo.Context) EndpointSensitivity {
	s, ok := ctx.Get(sensitivityKey).(EndpointSensitivity)
	if !ok {
		log.Panic(
			"Failed to get endpoint sensitivity",
			"sensitivity isn't set in request context",
			request.GetMetadata(ctx),
		)
	}
	return s
}
