// Package validate holds the process-wide validator instance and the custom
// tags used by request bodies, calendar drafts and the medical intake form.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	instance *validator.Validate
	once     sync.Once

	phonePattern = regexp.MustCompile(`^[6-9][0-9]{9}$`)
)

// Validator returns the shared validator with the custom tags registered.
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonFieldName)
		_ = v.RegisterValidation("clock", isClock)
		_ = v.RegisterValidation("datekey", isDateKey)
		_ = v.RegisterValidation("phone", isPhone)
		instance = v
	})
	return instance
}

// Struct validates s and converts validator failures into *FieldErrors.
func Struct(s interface{}) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fe := &FieldErrors{}
	for _, e := range verrs {
		fe.Add(fieldPath(e), message(e))
	}
	return fe
}

// IsClock reports whether s is a zero-padded 24-hour HH:MM wall-clock time.
func IsClock(s string) bool {
	if len(s) != 5 {
		return false
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}

// IsPhone applies the mobile number rule after removing whitespace.
func IsPhone(s string) bool {
	return phonePattern.MatchString(strings.Join(strings.Fields(s), ""))
}

// FieldErrors maps a field name to a user-facing message.
type FieldErrors struct {
	Fields map[string]string
}

// Add records msg for field, keeping the first message per field.
func (f *FieldErrors) Add(field, msg string) {
	if f.Fields == nil {
		f.Fields = make(map[string]string)
	}
	if _, ok := f.Fields[field]; !ok {
		f.Fields[field] = msg
	}
}

// Empty reports whether no field failed.
func (f *FieldErrors) Empty() bool {
	return f == nil || len(f.Fields) == 0
}

// OrNil returns f as an error only when it holds at least one field.
func (f *FieldErrors) OrNil() error {
	if f.Empty() {
		return nil
	}
	return f
}

func (f *FieldErrors) Error() string {
	keys := make([]string, 0, len(f.Fields))
	for k := range f.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, f.Fields[k])
	}
	return strings.Join(parts, ", ")
}

func isClock(fl validator.FieldLevel) bool {
	return IsClock(fl.Field().String())
}

func isDateKey(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	t, err := time.Parse("2006-01-02", s)
	return err == nil && t.Format("2006-01-02") == s
}

func isPhone(fl validator.FieldLevel) bool {
	return IsPhone(fl.Field().String())
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// fieldPath drops the top-level struct name from the namespace so nested
// fields read as "personalInfo.fullName".
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return e.Field()
}

func message(e validator.FieldError) string {
	name := e.Field()
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", name)
	case "email":
		return fmt.Sprintf("%s is invalid", name)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", name, e.Param())
	case "max":
		return fmt.Sprintf("%s must have at most %s entries", name, e.Param())
	case "eqfield":
		return fmt.Sprintf("%s does not match %s", name, e.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", name, e.Param())
	case "clock":
		return fmt.Sprintf("%s must be a time in HH:MM format", name)
	case "datekey":
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD format", name)
	case "phone":
		return fmt.Sprintf("%s must be a valid 10-digit phone number", name)
	default:
		return fmt.Sprintf("%s failed %s validation", name, e.Tag())
	}
}
