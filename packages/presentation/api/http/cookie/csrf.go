package cookie

import (
	"net/http"
	"time"
)

const CSRFTokenCookieKey string = "_csrf"

const (
	// CSRF protection is required only for auth endpoints
	CSRFTokenPath   = "/api/auth"
	CSRFTokenMaxAge = time.Hour * 24
)

// CSRF cookie follows the same environment policy as credential cookies.
func (m *Manager) CSRFAttributes(overrides ...Override) Attributes {
	return m.defaults(CSRFTokenPath, CSRFTokenMaxAge).merge(overrides)
}

func (m *Manager) SetCSRFCookie(w http.ResponseWriter, token string) {
	write(w, m.CSRFAttributes().build(CSRFTokenCookieKey, token))
}

func (m *Manager) ClearCSRFCookie(w http.ResponseWriter) {
	write(w, m.CSRFAttributes().buildExpired(CSRFTokenCookieKey))
}
