package analysiscontroller

import (
	Error "converter/packages/common/errors"
	controller "converter/packages/presentation/api/http/controllers"
	"converter/packages/presentation/api/http/request"
	RequestBody "converter/packages/presentation/data/request"

	"github.com/labstack/echo/v4"
)

// Endpoints of the PHP project analysis/transformation service.
// Requests are validated, but conversion engine isn't available yet.

func Analyze(ctx echo.Context) error {
	return notImplemented(ctx, "analyze")
}

func Transform(ctx echo.Context) error {
	return notImplemented(ctx, "transform")
}

func notImplemented(ctx echo.Context, operation string) error {
	var body RequestBody.Project
	if err := controller.BindAndValidate(ctx, &body); err != nil {
		return err
	}

	controller.Log.Warning(
		"Requested "+operation+" of project "+body.ProjectID+", but it's not implemented",
		request.GetMetadata(ctx),
	)

	return controller.ConvertErrorStatusToHTTP(Error.StatusNotImplemented)
}
