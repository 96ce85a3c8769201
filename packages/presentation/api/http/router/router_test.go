package router

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	Error "converter/packages/common/errors"
	"converter/packages/presentation/api/http/cookie"
	Middleware "converter/packages/presentation/api/http/middleware"

	jsoniter "github.com/json-iterator/go"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const csrfToken = "csrf-token"

func newTestRouter(env cookie.Environment, limits RateLimits) *echo.Echo {
	return New(Options{
		Cookies:        cookie.NewManager(env, ""),
		RateLimiter:    Middleware.NewMemoryRateLimiter(),
		RateLimits:     limits,
		AllowedOrigins: []string{"http://localhost:3000"},
		BodyLimit:      "1M",
	})
}

var defaultLimits = RateLimits{
	Window:           time.Minute,
	APIRequests:      100,
	AuthRequests:     100,
	AnalysisRequests: 100,
}

func serve(router *echo.Echo, method string, path string, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	if method != http.MethodGet {
		req.Header.Set(Middleware.CSRFHeader, csrfToken)
		req.AddCookie(&http.Cookie{Name: cookie.CSRFTokenCookieKey, Value: csrfToken})
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func cookiesByName(rec *httptest.ResponseRecorder) map[string]*http.Cookie {
	cookies := map[string]*http.Cookie{}
	for _, c := range rec.Result().Cookies() {
		cookies[c.Name] = c
	}
	return cookies
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, jsoniter.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealth(t *testing.T) {
	rec := serve(newTestRouter(cookie.Production, defaultLimits), http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode(t, rec)["status"])
	assert.Equal(t, "production", decode(t, rec)["environment"])
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestCSRFToken(t *testing.T) {
	rec := serve(newTestRouter(cookie.Development, defaultLimits), http.MethodGet, "/api/auth/csrf-token", "")

	assert.Equal(t, http.StatusOK, rec.Code)

	token := decode(t, rec)["token"]
	c := cookiesByName(rec)[cookie.CSRFTokenCookieKey]
	require.NotNil(t, c)
	assert.Equal(t, token, c.Value)
	assert.Equal(t, cookie.CSRFTokenPath, c.Path)
	assert.Equal(t, "no-store, max-age=0", rec.Header().Get("Cache-Control"))
}

func TestPutSession(t *testing.T) {
	t.Run("stores both tokens", func(t *testing.T) {
		router := newTestRouter(cookie.Development, defaultLimits)

		rec := serve(router, http.MethodPut, "/api/auth/session",
			`{"accessToken":"access","refreshToken":"refresh","accessTokenTTL":"15m"}`)

		require.Equal(t, http.StatusNoContent, rec.Code)

		cookies := cookiesByName(rec)

		access := cookies[cookie.AuthTokenCookieKey]
		require.NotNil(t, access)
		assert.Equal(t, "access", access.Value)
		assert.Equal(t, 900, access.MaxAge)
		assert.Equal(t, "/", access.Path)
		assert.False(t, access.Secure)
		assert.Equal(t, http.SameSiteLaxMode, access.SameSite)

		refresh := cookies[cookie.RefreshTokenCookieKey]
		require.NotNil(t, refresh)
		assert.Equal(t, "refresh", refresh.Value)
		assert.Equal(t, 2592000, refresh.MaxAge)
		assert.Equal(t, "/api/auth/refresh", refresh.Path)
	})

	t.Run("refresh token is optional", func(t *testing.T) {
		rec := serve(newTestRouter(cookie.Production, defaultLimits), http.MethodPut, "/api/auth/session",
			`{"accessToken":"access"}`)

		require.Equal(t, http.StatusNoContent, rec.Code)

		cookies := cookiesByName(rec)
		assert.Nil(t, cookies[cookie.RefreshTokenCookieKey])

		access := cookies[cookie.AuthTokenCookieKey]
		require.NotNil(t, access)
		assert.True(t, access.Secure)
		assert.Equal(t, http.SameSiteNoneMode, access.SameSite)
		assert.Equal(t, 604800, access.MaxAge)
	})

	t.Run("token is stored as is", func(t *testing.T) {
		router := newTestRouter(cookie.Development, defaultLimits)
		token := `tok;en "pässwört" a\b`

		body, err := jsoniter.MarshalToString(map[string]string{"accessToken": token, "refreshToken": token})
		require.NoError(t, err)

		rec := serve(router, http.MethodPut, "/api/auth/session", body)
		require.Equal(t, http.StatusNoContent, rec.Code)

		cookies := cookiesByName(rec)
		for _, name := range []string{cookie.AuthTokenCookieKey, cookie.RefreshTokenCookieKey} {
			require.NotNil(t, cookies[name])
			assert.Equal(t, token, cookie.DecodeValue(cookies[name].Value))
		}

		rec = serve(router, http.MethodGet, "/api/auth/session", "", cookies[cookie.AuthTokenCookieKey])
		assert.Equal(t, true, decode(t, rec)["authenticated"])
	})

	t.Run("rejects invalid body", func(t *testing.T) {
		router := newTestRouter(cookie.Development, defaultLimits)

		rec := serve(router, http.MethodPut, "/api/auth/session", `{"refreshToken":"refresh"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decode(t, rec)["message"], "'accessToken' has no value")

		rec = serve(router, http.MethodPut, "/api/auth/session", `{"accessToken":"a","accessTokenTTL":"soon"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decode(t, rec)["message"], "'accessTokenTTL' has invalid value")

		rec = serve(router, http.MethodPut, "/api/auth/session", `{"accessToken":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		assert.Empty(t, rec.Result().Cookies())
	})

	t.Run("requires CSRF token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPut, "/api/auth/session", strings.NewReader(`{"accessToken":"a"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()

		newTestRouter(cookie.Development, defaultLimits).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Empty(t, rec.Result().Cookies())
	})

	t.Run("rate limited", func(t *testing.T) {
		limits := defaultLimits
		limits.AuthRequests = 1
		router := newTestRouter(cookie.Development, limits)

		rec := serve(router, http.MethodPut, "/api/auth/session", `{"accessToken":"a"}`)
		assert.Equal(t, http.StatusNoContent, rec.Code)

		rec = serve(router, http.MethodPut, "/api/auth/session", `{"accessToken":"a"}`)
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	})
}

func TestGetSession(t *testing.T) {
	router := newTestRouter(cookie.Development, defaultLimits)

	rec := serve(router, http.MethodGet, "/api/auth/session", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decode(t, rec)["authenticated"])

	rec = serve(router, http.MethodGet, "/api/auth/session", "",
		&http.Cookie{Name: cookie.AuthTokenCookieKey, Value: "access"})
	assert.Equal(t, true, decode(t, rec)["authenticated"])
}

func TestDeleteSession(t *testing.T) {
	rec := serve(newTestRouter(cookie.Production, defaultLimits), http.MethodDelete, "/api/auth/session", "")

	require.Equal(t, http.StatusNoContent, rec.Code)

	cookies := cookiesByName(rec)
	require.Len(t, cookies, 2)

	access := cookies[cookie.AuthTokenCookieKey]
	refresh := cookies[cookie.RefreshTokenCookieKey]
	require.NotNil(t, access)
	require.NotNil(t, refresh)

	assert.Equal(t, -1, access.MaxAge)
	assert.Equal(t, "/", access.Path)
	assert.True(t, access.Secure)
	assert.Equal(t, http.SameSiteNoneMode, access.SameSite)

	assert.Equal(t, -1, refresh.MaxAge)
	assert.Equal(t, "/api/auth/refresh", refresh.Path)
}

func TestDeleteRefreshToken(t *testing.T) {
	rec := serve(newTestRouter(cookie.Development, defaultLimits), http.MethodDelete, "/api/auth/refresh", "")

	require.Equal(t, http.StatusNoContent, rec.Code)

	cookies := cookiesByName(rec)
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[cookie.RefreshTokenCookieKey].MaxAge)
}

func TestAnalysisEndpoints(t *testing.T) {
	router := newTestRouter(cookie.Development, defaultLimits)
	project := `{"projectId":"legacy-shop","files":[{"path":"index.php","content":"<?php echo 1;"}]}`

	for _, path := range []string{"/api/analyze", "/api/transform"} {
		t.Run(path, func(t *testing.T) {
			rec := serve(router, http.MethodPost, path, project)
			assert.Equal(t, http.StatusNotImplemented, rec.Code)
			assert.Equal(t, "Not Implemented", decode(t, rec)["error"])

			rec = serve(router, http.MethodPost, path, `{"projectId":"legacy-shop","files":[]}`)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, decode(t, rec)["message"], "'files' has invalid value")

			rec = serve(router, http.MethodPost, path, `{"files":[{"path":"index.php"}]}`)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, decode(t, rec)["message"], "'projectId' has no value")
		})
	}
}

func TestUnknownRoute(t *testing.T) {
	rec := serve(newTestRouter(cookie.Development, defaultLimits), http.MethodGet, "/api/unknown", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Not Found", decode(t, rec)["error"])
	assert.Equal(t, Error.StatusNotFound.Error(), decode(t, rec)["message"])
}

func TestAuthRateLimitCoversCookieWrites(t *testing.T) {
	limits := defaultLimits
	limits.AuthRequests = 2
	router := newTestRouter(cookie.Development, limits)

	rec := serve(router, http.MethodPut, "/api/auth/session", `{"accessToken":"a"}`)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = serve(router, http.MethodDelete, "/api/auth/refresh", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = serve(router, http.MethodDelete, "/api/auth/session", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, Error.StatusTooManyRequests.Error(), decode(t, rec)["message"])
	assert.Empty(t, rec.Result().Cookies())

	// reading session isn't a cookie write
	rec = serve(router, http.MethodGet, "/api/auth/session", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
