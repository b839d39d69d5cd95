// Package validation builds the shared validator and turns its failures into
// field-level messages.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	appErrors "github.com/noah-isme/course-api/pkg/errors"
)

var trans ut.Translator

func init() {
	locale := en.New()
	trans, _ = ut.New(locale, locale).GetTranslator("en")
}

// New returns a validator that reports fields by their JSON or query name and
// carries English messages.
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})
	_ = en_translations.RegisterDefaultTranslations(v, trans)
	return v
}

// Fields maps each failing field to a readable message. It returns nil when
// err is not a validation failure.
func Fields(err error) map[string]string {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}
	fields := make(map[string]string, len(ve))
	for _, fe := range ve {
		fields[fe.Field()] = fe.Translate(trans)
	}
	return fields
}

// Error wraps a validation failure, attaching per-field details.
func Error(err error, message string) *appErrors.Error {
	appErr := appErrors.Validation(err, message)
	appErr.Details = Fields(err)
	return appErr
}
