package healthcontroller

import (
	"net/http"

	"converter/packages/presentation/api/http/cookie"
	ResponseBody "converter/packages/presentation/data/response"

	"github.com/labstack/echo/v4"
)

func New(env cookie.Environment) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		return ctx.JSON(http.StatusOK, ResponseBody.Health{
			Status:      "ok",
			Environment: env.String(),
		})
	}
}
