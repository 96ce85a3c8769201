package requestbody

import (
	"reflect"
	"strings"
)

// Makes validation errors refer to JSON field names instead of Go ones.
func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}
