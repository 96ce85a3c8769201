package api

import (
	"converter/packages/common/config"
	"converter/packages/common/util"
)

// Returns auto generated base URL of this service (based on config)
//
// Example: http://localhost:1234
func GetBaseURL() string {
	transport := util.Ternary(config.HTTP.Secured, "https", "http")

	return transport + "://" + config.HTTP.Domain + ":" + config.HTTP.Port
}
