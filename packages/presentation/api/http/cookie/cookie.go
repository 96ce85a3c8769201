package cookie

import (
	"net/http"
	"strings"
	"time"

	"converter/packages/common/logger"
	"converter/packages/common/util"
)

var log = logger.NewSource("COOKIE", logger.Default)

const (
	AuthTokenCookieKey    string = "authToken"
	RefreshTokenCookieKey string = "refreshToken"
)

const (
	AuthTokenPath = "/"
	// Refresh token must be sent only to the refresh endpoint
	RefreshTokenPath = "/api/auth/refresh"
)

const (
	AuthTokenMaxAge    = time.Hour * 24 * 7
	RefreshTokenMaxAge = time.Hour * 24 * 30
)

// Sets and clears credential cookies.
// Holds no state between calls, so it's safe for concurrent use.
type Manager struct {
	env    Environment
	domain string
}

// domain may be empty, in this case cookies will be host-only.
func NewManager(env Environment, domain string) *Manager {
	return &Manager{
		env:    env,
		domain: domain,
	}
}

func (m *Manager) Environment() Environment {
	return m.env
}

func (m *Manager) defaults(path string, maxAge time.Duration) Attributes {
	production := m.env == Production

	return Attributes{
		Path:     path,
		Domain:   m.domain,
		MaxAge:   maxAge,
		HTTPOnly: true,
		// Browsers reject SameSite=None without Secure
		Secure:   production,
		SameSite: util.Ternary(production, http.SameSiteNoneMode, http.SameSiteLaxMode),
	}
}

func (m *Manager) AuthAttributes(overrides ...Override) Attributes {
	return m.defaults(AuthTokenPath, AuthTokenMaxAge).merge(overrides)
}

func (m *Manager) RefreshAttributes(overrides ...Override) Attributes {
	return m.defaults(RefreshTokenPath, RefreshTokenMaxAge).merge(overrides)
}

func (m *Manager) SetAuthCookie(w http.ResponseWriter, token string, overrides ...Override) {
	log.Trace("Setting auth cookie...", nil)

	write(w, m.AuthAttributes(overrides...).build(AuthTokenCookieKey, token))

	log.Trace("Setting auth cookie: OK", nil)
}

// Attributes must be the same as in SetAuthCookie, otherwise browser won't delete the cookie.
func (m *Manager) ClearAuthCookie(w http.ResponseWriter) {
	log.Trace("Clearing auth cookie...", nil)

	write(w, m.AuthAttributes().buildExpired(AuthTokenCookieKey))

	log.Trace("Clearing auth cookie: OK", nil)
}

func (m *Manager) SetRefreshTokenCookie(w http.ResponseWriter, token string, overrides ...Override) {
	log.Trace("Setting refresh token cookie...", nil)

	write(w, m.RefreshAttributes(overrides...).build(RefreshTokenCookieKey, token))

	log.Trace("Setting refresh token cookie: OK", nil)
}

// Attributes must be the same as in SetRefreshTokenCookie, otherwise browser won't delete the cookie.
func (m *Manager) ClearRefreshTokenCookie(w http.ResponseWriter) {
	log.Trace("Clearing refresh token cookie...", nil)

	write(w, m.RefreshAttributes().buildExpired(RefreshTokenCookieKey))

	log.Trace("Clearing refresh token cookie: OK", nil)
}

func (m *Manager) ClearAllAuthCookies(w http.ResponseWriter) {
	m.ClearAuthCookie(w)
	m.ClearRefreshTokenCookie(w)
}

// Adds Set-Cookie header for c, dropping previously added Set-Cookie
// for the same cookie (name, path and domain), so only the last instruction reaches client.
func write(w http.ResponseWriter, c *http.Cookie) {
	header := w.Header()

	existing := header.Values("Set-Cookie")
	if len(existing) != 0 {
		kept := make([]string, 0, len(existing))
		for _, line := range existing {
			if !isSameCookie(line, c) {
				kept = append(kept, line)
			}
		}

		header.Del("Set-Cookie")
		for _, line := range kept {
			header.Add("Set-Cookie", line)
		}
	}

	http.SetCookie(w, c)
}

func isSameCookie(setCookieLine string, c *http.Cookie) bool {
	parsed, err := http.ParseSetCookie(setCookieLine)
	if err != nil {
		return false
	}

	return parsed.Name == c.Name &&
		parsed.Path == c.Path &&
		strings.EqualFold(strings.TrimPrefix(parsed.Domain, "."), strings.TrimPrefix(c.Domain, "."))
}
