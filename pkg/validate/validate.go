package validate

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var ErrInvalid = errors.New("validation failed")

// Error carries human readable messages for every rejected field.
type Error struct {
	Messages []string
}

func (e *Error) Error() string {
	return strings.Join(e.Messages, ", ")
}

func (e *Error) Unwrap() error {
	return ErrInvalid
}

// Failed builds a validation error for checks that cannot be expressed as
// struct tags, e.g. references to rows that must exist.
func Failed(messages ...string) error {
	return &Error{Messages: messages}
}

var (
	instance   = newValidator()
	rgbHexExpr = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return strings.ToLower(field.Name)
		}
		return name
	})

	_ = v.RegisterValidation("rgbhex", func(fl validator.FieldLevel) bool {
		return rgbHexExpr.MatchString(fl.Field().String())
	})

	return v
}

// Struct validates s against its `validate` tags and converts failures into *Error.
func Struct(s any) error {
	err := instance.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		messages = append(messages, message(fieldErr))
	}
	return &Error{Messages: messages}
}

func message(err validator.FieldError) string {
	field := strings.ReplaceAll(err.Field(), "_", " ")
	param := err.Param()

	switch err.Tag() {
	case "required":
		return field + " is required"
	case "max":
		if err.Kind() == reflect.String {
			return field + " must be at most " + param + " characters"
		}
		return field + " must be at most " + param
	case "min":
		if err.Kind() == reflect.String {
			return field + " must be at least " + param + " characters"
		}
		return field + " must be at least " + param
	case "oneof":
		return field + " must be one of: " + strings.ReplaceAll(param, " ", ", ")
	case "datetime":
		return field + " must be a date in YYYY-MM-DD format"
	case "number":
		return field + " must be a whole number"
	case "rgbhex":
		return field + " must be a color like #1E90FF"
	default:
		return field + " is invalid"
	}
}
