// Package inputval validates decoded request payloads using struct tags.
//
// Payload structs declare rules with the `validate` tag and a human label
// with the `label` tag:
//
//	type createPeriodeInput struct {
//	    Kode string `json:"kode" validate:"required,max=50,kode" label:"Kode"`
//	}
//
// Errors are keyed by the field's json name so handlers can return them
// as per-field 422 responses.
package inputval

import (
	"fmt"
	"net/url"
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/dalemusser/mutuhub/internal/domain/models"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FieldError is one failed rule on one field.
type FieldError struct {
	Field   string // json field name
	Tag     string // failed rule, e.g. "required"
	Message string // human-readable message
}

// Result collects validation errors in field declaration order.
type Result struct {
	Errors []FieldError
}

// HasErrors reports whether any rule failed.
func (r *Result) HasErrors() bool { return r != nil && len(r.Errors) > 0 }

// First returns the first message, or "" when there are none.
func (r *Result) First() string {
	if !r.HasErrors() {
		return ""
	}
	return r.Errors[0].Message
}

// All joins every message with "; ".
func (r *Result) All() string {
	if !r.HasErrors() {
		return ""
	}
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, e.Message)
	}
	return strings.Join(msgs, "; ")
}

// Add appends a custom error (cross-field or database-backed checks).
func (r *Result) Add(field, msg string) {
	r.Errors = append(r.Errors, FieldError{Field: field, Tag: "custom", Message: msg})
}

// Fields returns the first message per field.
func (r *Result) Fields() map[string]string {
	out := make(map[string]string, len(r.Errors))
	for _, e := range r.Errors {
		if _, ok := out[e.Field]; !ok {
			out[e.Field] = e.Message
		}
	}
	return out
}

var (
	once     sync.Once
	validate *validator.Validate
)

var kodeRE = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._/\-]*$`)

func instance() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		_ = v.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
			return IsValidObjectID(fl.Field().String())
		})
		_ = v.RegisterValidation("httpurl", func(fl validator.FieldLevel) bool {
			return IsValidHTTPURL(fl.Field().String())
		})
		_ = v.RegisterValidation("kode", func(fl validator.FieldLevel) bool {
			return kodeRE.MatchString(fl.Field().String())
		})
		_ = v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
			_, ok := ParseDate(fl.Field().String())
			return ok
		})
		_ = v.RegisterValidation("tipeunit", func(fl validator.FieldLevel) bool {
			return oneOf(fl.Field().String(), models.UnitTipes)
		})
		_ = v.RegisterValidation("questiontype", func(fl validator.FieldLevel) bool {
			return oneOf(fl.Field().String(), models.QuestionTypes)
		})
		_ = v.RegisterValidation("kategori", func(fl validator.FieldLevel) bool {
			return oneOf(fl.Field().String(), models.DocumentKategori)
		})
		validate = v
	})
	return validate
}

// Validate runs the struct-tag rules on v (a struct or pointer to struct).
// It never returns nil.
func Validate(v any) *Result {
	res := &Result{}
	err := instance().Struct(v)
	if err == nil {
		return res
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		res.Add("", "Invalid input.")
		return res
	}
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	for _, fe := range verrs {
		res.Errors = append(res.Errors, FieldError{
			Field:   fe.Field(),
			Tag:     fe.Tag(),
			Message: message(fe, labelFor(t, fe.StructField())),
		})
	}
	return res
}

func labelFor(t reflect.Type, goName string) string {
	if t.Kind() == reflect.Struct {
		if f, ok := t.FieldByName(goName); ok {
			if l := f.Tag.Get("label"); l != "" {
				return l
			}
		}
	}
	return goName
}

func message(fe validator.FieldError, label string) string {
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return label + " is required."
	case "max":
		if isString {
			return fmt.Sprintf("%s must be at most %s characters.", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s.", label, fe.Param())
	case "min":
		if isString {
			return fmt.Sprintf("%s must be at least %s characters.", label, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s.", label, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be %s or more.", label, fe.Param())
	case "email":
		return "A valid email address is required."
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s.", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "objectid":
		return label + " must be a valid ID."
	case "httpurl":
		return label + " must be a valid http(s) URL."
	case "kode":
		return label + " may contain only letters, digits, '.', '-', '_' and '/'."
	case "date":
		return label + " must be a date (YYYY-MM-DD)."
	case "tipeunit":
		return label + " must be one of: " + strings.Join(models.UnitTipes, ", ") + "."
	case "questiontype":
		return label + " must be one of: " + strings.Join(models.QuestionTypes, ", ") + "."
	case "kategori":
		return label + " must be one of: " + strings.Join(models.DocumentKategori, ", ") + "."
	case "dive":
		return label + " is invalid."
	}
	return label + " is invalid."
}

func oneOf(s string, allowed []string) bool {
	for _, a := range allowed {
		if s == a {
			return true
		}
	}
	return false
}

// IsValidObjectID reports whether s (trimmed) is a 24-char hex ObjectID.
func IsValidObjectID(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) != 24 {
		return false
	}
	_, err := primitive.ObjectIDFromHex(s)
	return err == nil
}

// IsValidHTTPURL reports whether s (trimmed) is an absolute http or https URL.
func IsValidHTTPURL(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// ParseDate accepts YYYY-MM-DD or RFC 3339 and returns the time in UTC.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), true
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), true
	}
	return time.Time{}, false
}

// OptionalObjectID parses a possibly empty hex id. An empty string yields
// (nil, true); a malformed one yields (nil, false).
func OptionalObjectID(s string) (*primitive.ObjectID, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	oid, err := primitive.ObjectIDFromHex(s)
	if err != nil {
		return nil, false
	}
	return &oid, true
}
