package router

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	Error "converter/packages/common/errors"
	"converter/packages/presentation/api/http/request"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestToStatusError(t *testing.T) {
	t.Run("route not found", func(t *testing.T) {
		assert.Same(t, Error.StatusNotFound, toStatusError(echo.ErrNotFound))
	})

	t.Run("status error is kept, even wrapped", func(t *testing.T) {
		assert.Same(t, Error.StatusTooManyRequests, toStatusError(Error.StatusTooManyRequests))
		assert.Same(t, Error.StatusNotImplemented, toStatusError(fmt.Errorf("analyze: %w", Error.StatusNotImplemented)))
	})

	t.Run("echo HTTP error", func(t *testing.T) {
		statusErr := toStatusError(echo.NewHTTPError(http.StatusForbidden, "CSRF tokens mismatch"))
		assert.Equal(t, http.StatusForbidden, statusErr.Status())
		assert.Equal(t, "CSRF tokens mismatch", statusErr.Error())
		assert.Equal(t, Error.ClientSide, statusErr.Side())
	})

	t.Run("unknown error is internal", func(t *testing.T) {
		statusErr := toStatusError(errors.New("connection reset"))
		assert.Same(t, Error.StatusInternalError, statusErr)
		assert.Equal(t, Error.ServerSide, statusErr.Side())
	})
}

func TestHandleHTTPError(t *testing.T) {
	serveError := func(method string, err error) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		e := echo.New()
		e.JSONSerializer = serializer{}
		ctx := e.NewContext(httptest.NewRequest(method, "/", nil), rec)

		_ = request.Middleware(func(ctx echo.Context) error {
			handleHTTPError(err, ctx)
			return nil
		})(ctx)

		return rec
	}

	rec := serveError(http.MethodGet, errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error","message":"Internal Server Error"}`, rec.Body.String())

	rec = serveError(http.MethodHead, Error.StatusNotImplemented)
	assert.Equal(t, http.StatusNotImplemented, rec.Code)
	assert.Empty(t, rec.Body.String())
}
