// Package validate runs the three checks every site configuration must go
// through before it is rendered or stored: schema conformance (hard gate),
// content quality (advisory) and sensitive-content scanning (hard gate).
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"sitegen_server/internal/types"
)

// FieldError is one schema violation.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e FieldError) String() string {
	return e.Field + ": " + e.Message
}

var phonePattern = regexp.MustCompile(`^\+?[0-9()\-.\s]{7,}$`)

// structValidator is safe for concurrent use once built.
var structValidator = newStructValidator()

func newStructValidator() *validator.Validate {
	v := validator.New()
	// Report json field names so paths match the wire format.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("register phone validation: %v", err))
	}
	return v
}

// Schema checks cfg against the structural rules and field bounds. It returns
// one FieldError per offending field, or nil when the configuration conforms.
func Schema(cfg *types.SiteConfiguration) []FieldError {
	if cfg == nil {
		return []FieldError{{Field: "config", Code: "REQUIRED", Message: "is required"}}
	}

	err := structValidator.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Field: "config", Code: "INVALID", Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		code, msg := describe(fe)
		out = append(out, FieldError{Field: fieldPath(fe.Namespace()), Code: code, Message: msg})
	}
	return out
}

// fieldPath drops the root type name, "SiteConfiguration.pages.home" -> "pages.home".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func describe(fe validator.FieldError) (string, string) {
	isList := fe.Kind() == reflect.Slice || fe.Kind() == reflect.Array
	switch fe.Tag() {
	case "required":
		return "REQUIRED", "is required"
	case "min":
		if isList {
			return "TOO_FEW", fmt.Sprintf("must contain at least %s item(s)", fe.Param())
		}
		return "TOO_SHORT", fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		if isList {
			return "TOO_MANY", fmt.Sprintf("must contain at most %s items (got %d)", fe.Param(), reflect.ValueOf(fe.Value()).Len())
		}
		s, _ := fe.Value().(string)
		return "TOO_LONG", fmt.Sprintf("must be at most %s characters (got %d)", fe.Param(), utf8.RuneCountInString(s))
	case "url":
		return "INVALID_URL", "must be a valid URL"
	case "phone":
		return "INVALID_PHONE", "must be a valid phone number"
	default:
		return "INVALID", fmt.Sprintf("failed the %q rule", fe.Tag())
	}
}
