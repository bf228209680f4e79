package http

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// FieldError is one entry of an error envelope's details.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var rePhone = regexp.MustCompile(`^\+?[0-9][0-9\- ]{5,22}$`)

type CustomValidator struct{ v *validator.Validate }

func NewValidator() *CustomValidator {
	v := validator.New()

	// report json names so details line up with the request body
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	// decimals reach the rules below as their exact string form; zero is ""
	// so required rejects it
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			if d.IsZero() {
				return ""
			}
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	// digits with optional leading + and dash/space separators
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return rePhone.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("blank", func(fl validator.FieldLevel) bool {
		return fl.Field().String() == ""
	})
	// a present "" clears an optional email on update
	v.RegisterAlias("email_or_blank", "blank|email")

	_ = v.RegisterValidation("dec2", decimalRule(func(d, _ decimal.Decimal) bool { return d.Equal(d.Round(2)) }))
	_ = v.RegisterValidation("dgt", decimalRule(func(d, p decimal.Decimal) bool { return d.GreaterThan(p) }))
	_ = v.RegisterValidation("dlte", decimalRule(func(d, p decimal.Decimal) bool { return d.LessThanOrEqual(p) }))

	return &CustomValidator{v: v}
}

func (cv *CustomValidator) Validate(i any) error { return cv.v.Struct(i) }

// decimalRule compares a decimal field with the tag parameter. An empty
// field is zero; an unparsable parameter fails the field.
func decimalRule(cmp func(d, param decimal.Decimal) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		d := decimal.Zero
		if s := fl.Field().String(); s != "" {
			var err error
			if d, err = decimal.NewFromString(s); err != nil {
				return false
			}
		}
		p := decimal.Zero
		if raw := fl.Param(); raw != "" {
			var err error
			if p, err = decimal.NewFromString(raw); err != nil {
				return false
			}
		}
		return cmp(d, p)
	}
}

// fieldMessages renders one message per validator tag.
var fieldMessages = map[string]func(e validator.FieldError) string{
	"required":       func(validator.FieldError) string { return "is required" },
	"phone":          func(validator.FieldError) string { return "must be a phone number" },
	"email":          func(validator.FieldError) string { return "must be a valid email address" },
	"email_or_blank": func(validator.FieldError) string { return "must be a valid email address or empty" },
	"url":            func(validator.FieldError) string { return "must be a valid URL" },
	"dec2":           func(validator.FieldError) string { return "must have at most 2 decimal places" },
	"numeric":        func(validator.FieldError) string { return "must contain digits only" },
	"len":            func(e validator.FieldError) string { return "must be exactly " + e.Param() + " characters" },
	"min": func(e validator.FieldError) string {
		if e.Kind() == reflect.String {
			return "must be at least " + e.Param() + " character(s)"
		}
		return "must have at least " + e.Param() + " item(s)"
	},
	"max":  func(e validator.FieldError) string { return "must be at most " + e.Param() + " characters" },
	"gt":   func(e validator.FieldError) string { return "must be greater than " + e.Param() },
	"dgt":  func(e validator.FieldError) string { return "must be greater than " + e.Param() },
	"gte":  func(e validator.FieldError) string { return "must be greater than or equal to " + e.Param() },
	"lte":  func(e validator.FieldError) string { return "must be less than or equal to " + e.Param() },
	"dlte": func(e validator.FieldError) string { return "must be less than or equal to " + e.Param() },
}

// ToFieldErrors turns validator errors into per-field details keyed by the
// json field name. Any other error becomes a single "_" entry.
func ToFieldErrors(err error) []FieldError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return []FieldError{{Field: "_", Message: err.Error()}}
	}
	out := make([]FieldError, 0, len(ve))
	for _, e := range ve {
		msg := e.Tag() + " validation failed"
		if render, ok := fieldMessages[e.Tag()]; ok {
			msg = render(e)
		}
		out = append(out, FieldError{Field: e.Field(), Message: msg})
	}
	return out
}
