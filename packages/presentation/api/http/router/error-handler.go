package router

import (
	"errors"
	"fmt"
	"net/http"

	Error "converter/packages/common/errors"
	controller "converter/packages/presentation/api/http/controllers"
	"converter/packages/presentation/api/http/request"
	ResponseBody "converter/packages/presentation/data/response"

	"github.com/getsentry/sentry-go"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
)

// Converts any handler error into *Error.Status.
func toStatusError(err error) *Error.Status {
	// Returned by echo router for unknown routes
	if errors.Is(err, echo.ErrNotFound) {
		return Error.StatusNotFound
	}

	if is, statusErr := Error.IsStatusError(err); is {
		return statusErr
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) && httpErr.Code >= 400 && httpErr.Code < 600 {
		message, ok := httpErr.Message.(string)
		if !ok {
			message = fmt.Sprint(httpErr.Message)
		}
		return Error.NewStatusError(message, httpErr.Code)
	}

	return Error.StatusInternalError
}

func handleHTTPError(err error, ctx echo.Context) {
	if ctx.Response().Committed {
		return
	}

	statusErr := toStatusError(err)
	code := statusErr.Status()
	status := Error.StatusText(code)

	reqMeta := request.GetMetadata(ctx)

	// 501 is expected for endpoints which aren't available yet
	if statusErr.Side() == Error.ServerSide && code != http.StatusNotImplemented {
		controller.Log.Error(statusErr.Error(), err.Error(), reqMeta)

		if hub := sentryecho.GetHubFromContext(ctx); hub != nil {
			hub.WithScope(func(scope *sentry.Scope) {
				scope.SetTag("status", status)
				hub.CaptureException(err)
			})
		}
	} else {
		controller.Log.Info(statusErr.Error(), reqMeta)
	}

	var e error
	if ctx.Request().Method == http.MethodHead {
		e = ctx.NoContent(code)
	} else {
		e = ctx.JSON(code, ResponseBody.Error{
			Error:   status,
			Message: statusErr.Error(),
		})
	}
	if e != nil {
		controller.Log.Error("Failed to send error response", e.Error(), reqMeta)
	}
}
