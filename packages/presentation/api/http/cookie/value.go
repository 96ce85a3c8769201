package cookie

import (
	"net/http"
	"net/url"
)

// Cookie values are percent-encoded (same as encodeURIComponent), otherwise
// bytes which aren't valid cookie octets (";", `"`, "\", spaces, non-ASCII)
// would be dropped by net/http and the client would get a different token.
func encodeValue(value string) string {
	return url.PathEscape(value)
}

// Malformed encoding is returned as is.
func DecodeValue(raw string) string {
	value, err := url.PathUnescape(raw)
	if err != nil {
		return raw
	}
	return value
}

// Returns decoded value of the named cookie sent with req.
func Read(req *http.Request, name string) (string, bool) {
	c, err := req.Cookie(name)
	if err != nil {
		return "", false
	}
	return DecodeValue(c.Value), true
}
