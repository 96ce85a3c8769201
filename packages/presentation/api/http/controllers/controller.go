package controller

import (
	"net/http"

	Error "converter/packages/common/errors"
	"converter/packages/common/logger"
	"converter/packages/presentation/api/http/request"
	RequestBody "converter/packages/presentation/data/request"

	"github.com/labstack/echo/v4"
)

var Log = logger.NewSource("CONTROLLER", logger.Default)

func BindAndValidate[T RequestBody.Validator](ctx echo.Context, dest T) error {
	reqMeta := request.GetMetadata(ctx)

	Log.Trace("Binding and validating request...", reqMeta)

	if err := ctx.Bind(dest); err != nil {
		Log.Error("Failed to bind request", err.Error(), reqMeta)
		return err
	}

	if err := dest.Validate(); err != nil {
		Log.Error("Request validation failed", err.Error(), reqMeta)
		return ConvertErrorStatusToHTTP(err)
	}

	Log.Trace("Binding and validating request: OK", reqMeta)

	return nil
}

func ConvertErrorStatusToHTTP(err *Error.Status) *echo.HTTPError {
	return echo.NewHTTPError(err.Status(), err.Error())
}

var FailedToReadRequestBody = echo.NewHTTPError(
	http.StatusBadRequest,
	"Failed to read request body",
)

var FailedToDecodeRequestBody = echo.NewHTTPError(
	http.StatusBadRequest,
	"Failed to decode request body",
)
