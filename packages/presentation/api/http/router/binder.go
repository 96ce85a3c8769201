package router

import (
	"io"

	controller "converter/packages/presentation/api/http/controllers"

	"github.com/labstack/echo/v4"
)

type binder struct{}

func (b *binder) Bind(i interface{}, ctx echo.Context) error {
	body, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return controller.FailedToReadRequestBody
	}

	if err := json.Unmarshal(body, i); err != nil {
		return controller.FailedToDecodeRequestBody
	}

	return nil
}
