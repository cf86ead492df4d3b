package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/users-generator-api/internal/models"
)

var validate = newStructValidator()

// newStructValidator reports fields by their JSON name so messages line up
// with the request payload.
func newStructValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(sf reflect.StructField) string {
		return jsonNameFromStructField(sf)
	})
	return v
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string      `json:"field"`
	Rule    string      `json:"rule"`
	Message string      `json:"message"`
	Value   interface{} `json:"value,omitempty"`
}

// Validator checks candidate profiles for one import call. It remembers the
// usernames and emails claimed so far so later records in the same batch
// cannot reuse them.
type Validator struct {
	usernameCache map[string]bool
	emailCache    map[string]bool
}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{
		usernameCache: make(map[string]bool),
		emailCache:    make(map[string]bool),
	}
}

// AddUsername adds a username to the uniqueness cache
func (v *Validator) AddUsername(username string) {
	v.usernameCache[username] = true
}

// AddUserEmail adds an email to the uniqueness cache
func (v *Validator) AddUserEmail(email string) {
	v.emailCache[strings.ToLower(email)] = true
}

// ValidateProfile validates a candidate record against the user schema and
// the batch uniqueness caches. Store uniqueness is checked by the caller.
func (v *Validator) ValidateProfile(rec *models.CandidateRecord) []ValidationError {
	errs := fromStructError(validate.Struct(rec))

	if rec.Username != "" && v.usernameCache[rec.Username] {
		errs = append(errs, ValidationError{
			Field:   "username",
			Rule:    "unique",
			Message: "has already been taken",
			Value:   rec.Username,
		})
	}
	if rec.Email != "" && v.emailCache[strings.ToLower(rec.Email)] {
		errs = append(errs, ValidationError{
			Field:   "email",
			Rule:    "unique",
			Message: "has already been taken",
			Value:   rec.Email,
		})
	}

	return errs
}

// IsEmail reports whether s is syntactically an email address
func IsEmail(s string) bool {
	return validate.Var(s, "required,email") == nil
}

// ToFieldMap groups errors into the field -> messages form used in responses
func ToFieldMap(errs []ValidationError) map[string][]string {
	out := make(map[string][]string, len(errs))
	for _, e := range errs {
		out[e.Field] = append(out[e.Field], e.Message)
	}
	return out
}

// FromBindError converts a gin binding error for out into a field level
// models.ValidationError.
func FromBindError(err error, out interface{}) *models.ValidationError {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		rootType := baseStructType(out)
		result := &models.ValidationError{}
		for _, fe := range validationErrs {
			result.Add(fieldName(rootType, fe), validationMessage(fe.Tag(), fe.Param()))
		}
		return result
	}

	return models.NewValidationError("body", "must be a valid JSON object")
}

func fromStructError(err error) []ValidationError {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return []ValidationError{{Field: "record", Rule: "struct", Message: err.Error()}}
	}

	errs := make([]ValidationError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		errs = append(errs, ValidationError{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: validationMessage(fe.Tag(), fe.Param()),
			Value:   fe.Value(),
		})
	}
	return errs
}

func fieldName(rootType reflect.Type, fe validator.FieldError) string {
	if rootType != nil {
		if sf, ok := rootType.FieldByName(fe.StructField()); ok {
			if name := jsonNameFromStructField(sf); name != "" {
				return name
			}
		}
	}
	return fe.Field()
}

func baseStructType(v interface{}) reflect.Type {
	t := reflect.TypeOf(v)

	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t != nil && t.Kind() == reflect.Struct {
		return t
	}

	return nil
}

func jsonNameFromStructField(sf reflect.StructField) string {
	for _, key := range []string{"json", "form"} {
		name, _, _ := strings.Cut(sf.Tag.Get(key), ",")
		if name != "" && name != "-" {
			return name
		}
	}
	return sf.Name
}

func validationMessage(rule, param string) string {
	switch rule {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "datetime":
		return "must be a valid date (" + param + ")"
	case "min":
		return "must be at least " + param + " characters"
	case "max":
		return "must be at most " + param + " characters"
	case "len":
		return "must be exactly " + param + " characters"
	case "oneof":
		return "must be one of " + strings.ReplaceAll(param, " ", ", ")
	default:
		if param != "" {
			return fmt.Sprintf("failed %s validation (%s)", rule, param)
		}
		return "failed " + rule + " validation"
	}
}
