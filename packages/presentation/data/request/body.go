package requestbody

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	Error "converter/packages/common/errors"

	"github.com/go-playground/validator/v10"
)

/*
   IMPORTANT
   All kind of validation done in methods inside of this module is
   related to transport layer, which means it only checks that values
   persist and have expected shape. Tokens are opaque here: their structure,
   signature and expiry are validated by the authentication subsystem.
*/

type Validator interface {
	Validate() *Error.Status
}

var validate = validator.New()

func missingFieldValue(field string) *Error.Status {
	return Error.NewStatusError(
		fmt.Sprintf("Invalid request body: field '%s' has no value", field),
		http.StatusBadRequest,
	)
}

func invalidFieldValue(field string) *Error.Status {
	return Error.NewStatusError(
		fmt.Sprintf("Invalid request body: field '%s' has invalid value", field),
		http.StatusBadRequest,
	)
}

// Converts validator errors into *Error.Status for the first failed field.
func toStatus(err error) *Error.Status {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return Error.StatusInternalError
	}

	fieldErr := fieldErrs[0]
	if fieldErr.Tag() == "required" {
		return missingFieldValue(fieldErr.Field())
	}
	return invalidFieldValue(fieldErr.Field())
}

func validateStruct(body any) *Error.Status {
	if err := validate.Struct(body); err != nil {
		return toStatus(err)
	}
	return nil
}

type Session struct {
	AccessToken  string `json:"accessToken" validate:"required"`
	RefreshToken string `json:"refreshToken,omitempty"`
	// Go duration, e.g. "15m". Defaults to the cookie's default max age.
	AccessTokenTTL  string `json:"accessTokenTTL,omitempty" validate:"omitempty,duration"`
	RefreshTokenTTL string `json:"refreshTokenTTL,omitempty" validate:"omitempty,duration"`
}

func (b *Session) Validate() *Error.Status {
	return validateStruct(b)
}

// Zero if TTL wasn't specified.
func (b *Session) AccessTTL() time.Duration {
	return parseTTL(b.AccessTokenTTL)
}

// Zero if TTL wasn't specified.
func (b *Session) RefreshTTL() time.Duration {
	return parseTTL(b.RefreshTokenTTL)
}

func parseTTL(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	d, _ := time.ParseDuration(raw)
	return d
}

type ProjectFile struct {
	Path    string `json:"path" validate:"required"`
	Content string `json:"content"`
}

type Project struct {
	ProjectID string        `json:"projectId" validate:"required"`
	Files     []ProjectFile `json:"files" validate:"required,min=1,dive"`
}

func (b *Project) Validate() *Error.Status {
	return validateStruct(b)
}

func init() {
	validate.RegisterTagNameFunc(jsonFieldName)
	validate.RegisterValidation("duration", func(fl validator.FieldLevel) bool {
		d, err := time.ParseDuration(fl.Field().String())
		return err == nil && d > 0
	})
}
