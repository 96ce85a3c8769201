package cookie

import (
	"net/http"
	"time"
)

// Attributes of a credential cookie, everything except its name and value.
type Attributes struct {
	Path     string
	Domain   string
	MaxAge   time.Duration
	HTTPOnly bool
	Secure   bool
	SameSite http.SameSite
}

// Replaces a single field of Attributes.
// Overrides are applied in order, so the last one wins.
type Override func(a *Attributes)

// Non-positive duration makes a session cookie (no Max-Age).
func WithMaxAge(d time.Duration) Override {
	return func(a *Attributes) { a.MaxAge = d }
}

func WithPath(path string) Override {
	return func(a *Attributes) { a.Path = path }
}

func WithDomain(domain string) Override {
	return func(a *Attributes) { a.Domain = domain }
}

func WithHTTPOnly(httpOnly bool) Override {
	return func(a *Attributes) { a.HTTPOnly = httpOnly }
}

func WithSecure(secure bool) Override {
	return func(a *Attributes) { a.Secure = secure }
}

func WithSameSite(mode http.SameSite) Override {
	return func(a *Attributes) { a.SameSite = mode }
}

func (a Attributes) merge(overrides []Override) Attributes {
	for _, override := range overrides {
		if override != nil {
			override(&a)
		}
	}
	return a
}

// Max-Age is measured in seconds.
// Positive durations shorter than a second are rounded up,
// otherwise cookie would silently become a session one.
func maxAgeSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	if secs := int(d / time.Second); secs > 0 {
		return secs
	}
	return 1
}

func (a Attributes) build(name string, value string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    encodeValue(value),
		Path:     a.Path,
		Domain:   a.Domain,
		MaxAge:   maxAgeSeconds(a.MaxAge),
		HttpOnly: a.HTTPOnly,
		Secure:   a.Secure,
		SameSite: a.SameSite,
	}
}

// Same cookie as build() would create, but with empty value and already expired.
func (a Attributes) buildExpired(name string) *http.Cookie {
	c := a.build(name, "")
	c.MaxAge = -1 // Max-Age=0
	c.Expires = time.Unix(0, 0)
	return c
}
