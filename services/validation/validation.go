package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

const (
	MinPasswordLength = 8
	passwordSpecials  = "@#$%^&+="

	PasswordMessage = "Password must be at least 8 characters long and contain a digit, a lowercase letter, an uppercase letter and one of @#$%^&+= with no spaces."
	MismatchMessage = "Passwords do not match"
)

var (
	once     sync.Once
	validate *validator.Validate

	phonePattern = regexp.MustCompile(`^[0-9]{10}$`)
)

// FieldErrors maps a JSON field path to a user-facing message.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+f[k])
	}
	return strings.Join(parts, "; ")
}

// First returns the message of the alphabetically first field.
func (f FieldErrors) First() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)
	return f[keys[0]]
}

// Add records msg for field unless the field already has a message.
func (f FieldErrors) Add(field, msg string) {
	if _, exists := f[field]; !exists {
		f[field] = msg
	}
}

// OrNil returns nil for an empty set so callers can return it as error.
func (f FieldErrors) OrNil() error {
	if len(f) == 0 {
		return nil
	}
	return f
}

// Validator returns the shared validator with the custom tags registered.
func Validator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
		_ = validate.RegisterValidation("password", func(fl validator.FieldLevel) bool {
			return IsStrongPassword(fl.Field().String())
		})
		_ = validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return IsPhone(fl.Field().String())
		})
		_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	})
	return validate
}

// Struct validates s and returns its field errors, or an empty set.
func Struct(s interface{}) FieldErrors {
	out := FieldErrors{}
	err := Validator().Struct(s)
	if err == nil {
		return out
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["_"] = err.Error()
		return out
	}
	for _, fe := range verrs {
		out.Add(fieldPath(fe), message(fe))
	}
	return out
}

// IsStrongPassword reports whether p has a digit, a lowercase and an
// uppercase letter, one of @#$%^&+=, no whitespace and at least eight
// characters.
func IsStrongPassword(p string) bool {
	if utf8.RuneCountInString(p) < MinPasswordLength {
		return false
	}
	var digit, lower, upper, special bool
	for _, r := range p {
		switch {
		case unicode.IsSpace(r):
			return false
		case r >= '0' && r <= '9':
			digit = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}
	return digit && lower && upper && special
}

// IsPhone reports whether s is a ten digit contact number.
func IsPhone(s string) bool {
	return phonePattern.MatchString(s)
}

// Humanize turns a JSON field name such as issueDescription into
// "Issue Description".
func Humanize(field string) string {
	var b strings.Builder
	for i, r := range field {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		if i == 0 {
			r = unicode.ToUpper(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}

func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		ns = ns[i+1:]
	}
	return ns
}

func message(fe validator.FieldError) string {
	label := Humanize(fe.Field())
	if i := strings.IndexByte(label, '['); i >= 0 {
		label = Humanize(fe.Field()[:i])
	}

	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("%s is required.", label)
	case "email":
		return fmt.Sprintf("%s must be a valid email address.", label)
	case "password":
		return PasswordMessage
	case "phone":
		return fmt.Sprintf("%s must be a 10 digit number.", label)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s.", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "min", "gte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at least %s characters.", label, fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("%s must have at least %s entries.", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s.", label, fe.Param())
	case "max", "lte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("%s must be at most %s characters.", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s.", label, fe.Param())
	case "eqfield":
		return MismatchMessage
	case "datetime":
		return fmt.Sprintf("%s must be a date in %s format.", label, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid.", label)
	}
}
