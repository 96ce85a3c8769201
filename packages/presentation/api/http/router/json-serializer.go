package router

import (
	controller "converter/packages/presentation/api/http/controllers"

	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
)

type serializer struct{}

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func (serializer) Serialize(ctx echo.Context, v interface{}, indent string) error {
	var body []byte
	var err error

	if indent == "" {
		body, err = json.Marshal(v)
	} else {
		body, err = json.MarshalIndent(v, "", indent)
	}
	if err != nil {
		return err
	}

	// Same as encoding/json Encoder output
	body = append(body, '\n')

	_, err = ctx.Response().Write(body)

	return err
}

func (serializer) Deserialize(ctx echo.Context, v interface{}) error {
	if err := json.NewDecoder(ctx.Request().Body).Decode(v); err != nil {
		return controller.FailedToDecodeRequestBody
	}
	return nil
}
