package cookie

import "strings"

// Deployment environment. Decides both Secure and SameSite of credential cookies.
type Environment uint8

const (
	Development Environment = iota
	Production
)

// Only "production" (case-insensitive, surrounding spaces ignored) is Production.
func ParseEnvironment(raw string) Environment {
	if strings.EqualFold(strings.TrimSpace(raw), "production") {
		return Production
	}
	return Development
}

func (e Environment) String() string {
	if e == Production {
		return "production"
	}
	return "development"
}
