package authcontroller

import (
	"crypto/rand"
	"encoding/base64"
	"net/http"

	Error "converter/packages/common/errors"
	controller "converter/packages/presentation/api/http/controllers"
	"converter/packages/presentation/api/http/cookie"
	"converter/packages/presentation/api/http/request"
	RequestBody "converter/packages/presentation/data/request"
	ResponseBody "converter/packages/presentation/data/response"

	"github.com/labstack/echo/v4"
)

// Stores credentials issued by the authentication subsystem in cookies
// and removes them on logout. Tokens are never inspected here.
type Controller struct {
	cookies *cookie.Manager
}

func New(cookies *cookie.Manager) *Controller {
	return &Controller{cookies: cookies}
}

// Refresh token cookie isn't sent to this endpoint (see cookie.RefreshTokenPath),
// so only access token presence can be reported.
func (c *Controller) GetSession(ctx echo.Context) error {
	token, ok := cookie.Read(ctx.Request(), cookie.AuthTokenCookieKey)

	return ctx.JSON(
		http.StatusOK,
		ResponseBody.Session{
			Authenticated: ok && token != "",
		},
	)
}

func (c *Controller) PutSession(ctx echo.Context) error {
	var body RequestBody.Session
	if err := controller.BindAndValidate(ctx, &body); err != nil {
		return err
	}

	reqMeta := request.GetMetadata(ctx)

	controller.Log.Info("Storing session cookies...", reqMeta)

	var authOverrides []cookie.Override
	if ttl := body.AccessTTL(); ttl > 0 {
		authOverrides = append(authOverrides, cookie.WithMaxAge(ttl))
	}

	c.cookies.SetAuthCookie(ctx.Response(), body.AccessToken, authOverrides...)

	if body.RefreshToken != "" {
		var refreshOverrides []cookie.Override
		if ttl := body.RefreshTTL(); ttl > 0 {
			refreshOverrides = append(refreshOverrides, cookie.WithMaxAge(ttl))
		}

		c.cookies.SetRefreshTokenCookie(ctx.Response(), body.RefreshToken, refreshOverrides...)
	}

	controller.Log.Info("Storing session cookies: OK", reqMeta)

	return ctx.NoContent(http.StatusNoContent)
}

// Logout
func (c *Controller) DeleteSession(ctx echo.Context) error {
	reqMeta := request.GetMetadata(ctx)

	controller.Log.Info("Clearing session cookies...", reqMeta)

	c.cookies.ClearAllAuthCookies(ctx.Response())

	controller.Log.Info("Clearing session cookies: OK", reqMeta)

	return ctx.NoContent(http.StatusNoContent)
}

// Invalidates refresh token only, access token is kept till it expires.
func (c *Controller) DeleteRefreshToken(ctx echo.Context) error {
	reqMeta := request.GetMetadata(ctx)

	controller.Log.Info("Clearing refresh token cookie...", reqMeta)

	c.cookies.ClearRefreshTokenCookie(ctx.Response())

	controller.Log.Info("Clearing refresh token cookie: OK", reqMeta)

	return ctx.NoContent(http.StatusNoContent)
}

func newCSRFToken() (string, *Error.Status) {
	token := make([]byte, 32)
	if _, err := rand.Read(token); err != nil {
		return "", Error.StatusInternalError
	}
	return base64.RawURLEncoding.EncodeToString(token), nil
}

func (c *Controller) GetCSRFToken(ctx echo.Context) error {
	reqMeta := request.GetMetadata(ctx)

	controller.Log.Trace("Generating CSRF token...", reqMeta)

	token, err := newCSRFToken()
	if err != nil {
		controller.Log.Error("Failed to generate CSRF token", err.Error(), reqMeta)
		return controller.ConvertErrorStatusToHTTP(err)
	}

	c.cookies.SetCSRFCookie(ctx.Response(), token)

	controller.Log.Trace("Generating CSRF token: OK", reqMeta)

	return ctx.JSON(http.StatusOK, ResponseBody.CSRFToken{Token: token})
}
