package validation

import (
	"regexp"
	"unicode/utf8"

	errors "github.com/frahmantamala/absence-request/internal"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidatorFunc reports a message and false when value breaks the rule.
type ValidatorFunc func(value interface{}) (string, bool)

type rule struct {
	check ValidatorFunc
	// bail stops the remaining rules of the field when this one fails.
	bail bool
}

type FieldValidator struct {
	FieldName string
	Value     interface{}
	rules     []rule
}

type ValidationBuilder struct {
	fields     []*FieldValidator
	errors     []errors.ValidationError
	mismatches map[string]errors.ValidationError
}

// Decoded is embedded by request DTOs. It holds the fields whose JSON value
// had the wrong type, so Validate can report them next to the other rules.
type Decoded struct {
	mismatches []errors.ValidationError
}

func (d *Decoded) RecordMismatches(m []errors.ValidationError) {
	d.mismatches = append(d.mismatches, m...)
}

func (d Decoded) Mismatches() []errors.ValidationError {
	return d.mismatches
}

func NewValidator() *ValidationBuilder {
	return &ValidationBuilder{
		fields: make([]*FieldValidator, 0),
		errors: make([]errors.ValidationError, 0),
	}
}

func (v *ValidationBuilder) Field(name string, value interface{}) *FieldValidator {
	fv := &FieldValidator{FieldName: name, Value: value}
	v.fields = append(v.fields, fv)
	return fv
}

// WithMismatches marks fields that failed to decode. A marked field reports its
// decode error in place of its rule chain; unregistered fields are ignored.
func (v *ValidationBuilder) WithMismatches(m []errors.ValidationError) *ValidationBuilder {
	if len(m) == 0 {
		return v
	}
	if v.mismatches == nil {
		v.mismatches = make(map[string]errors.ValidationError, len(m))
	}
	for _, e := range m {
		if _, seen := v.mismatches[e.Field]; !seen {
			v.mismatches[e.Field] = e
		}
	}
	return v
}

// Assert records a payload-level rule that does not belong to a single field chain.
func (v *ValidationBuilder) Assert(field string, ok bool, message string) *ValidationBuilder {
	if !ok {
		v.errors = append(v.errors, errors.ValidationError{Field: field, Message: message})
	}
	return v
}

func (fv *FieldValidator) add(check ValidatorFunc, bail bool) *FieldValidator {
	fv.rules = append(fv.rules, rule{check: check, bail: bail})
	return fv
}

// Required fails on empty strings, nil pointers and zero-length values.
func (fv *FieldValidator) Required(message string) *FieldValidator {
	return fv.add(func(value interface{}) (string, bool) {
		return message, !IsEmpty(value)
	}, true)
}

// Email checks well-formedness with validator/v10's email rule.
func (fv *FieldValidator) Email(message string) *FieldValidator {
	return fv.add(func(value interface{}) (string, bool) {
		s, ok := stringValue(value)
		if !ok {
			return message, false
		}
		return message, validate.Var(s, "email") == nil
	}, false)
}

func (fv *FieldValidator) Matches(re *regexp.Regexp, message string) *FieldValidator {
	return fv.add(func(value interface{}) (string, bool) {
		s, _ := stringValue(value)
		return message, re.MatchString(s)
	}, false)
}

func (fv *FieldValidator) NotMatches(re *regexp.Regexp, message string) *FieldValidator {
	return fv.add(func(value interface{}) (string, bool) {
		s, _ := stringValue(value)
		return message, !re.MatchString(s)
	}, false)
}

// Length bounds the character count (not bytes) of a string value.
func (fv *FieldValidator) Length(min, max int, message string) *FieldValidator {
	return fv.add(func(value interface{}) (string, bool) {
		s, _ := stringValue(value)
		n := utf8.RuneCountInString(s)
		return message, n >= min && n <= max
	}, false)
}

func (fv *FieldValidator) MaxLength(max int, message string) *FieldValidator {
	return fv.Length(0, max, message)
}

func (fv *FieldValidator) IntRange(min, max int64, message string) *FieldValidator {
	return fv.add(func(value interface{}) (string, bool) {
		n, ok := intValue(value)
		return message, ok && n >= min && n <= max
	}, false)
}

func (fv *FieldValidator) OneOf(allowed []string, message string) *FieldValidator {
	return fv.add(func(value interface{}) (string, bool) {
		s, _ := stringValue(value)
		for _, a := range allowed {
			if s == a {
				return message, true
			}
		}
		return message, false
	}, false)
}

func (fv *FieldValidator) Custom(check ValidatorFunc) *FieldValidator {
	return fv.add(check, false)
}

// Validate runs every field chain and returns all violations at once.
func (v *ValidationBuilder) Validate() *errors.AppError {
	var validationErrors []errors.ValidationError

	reported := make(map[string]bool)
	for _, field := range v.fields {
		if mismatch, ok := v.mismatches[field.FieldName]; ok {
			if !reported[field.FieldName] {
				validationErrors = append(validationErrors, mismatch)
				reported[field.FieldName] = true
			}
			continue
		}
		for _, r := range field.rules {
			message, ok := r.check(field.Value)
			if ok {
				continue
			}
			validationErrors = append(validationErrors, errors.ValidationError{
				Field:   field.FieldName,
				Message: message,
			})
			if r.bail {
				break
			}
		}
	}
	validationErrors = append(validationErrors, v.errors...)

	if len(validationErrors) > 0 {
		return errors.NewValidationFieldErrors(validationErrors)
	}

	return nil
}

func IsEmpty(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case *string:
		return v == nil || *v == ""
	case *int:
		return v == nil
	case *int64:
		return v == nil
	case []byte:
		return len(v) == 0
	}
	return false
}

func stringValue(value interface{}) (string, bool) {
	switch v := value.(type) {
	case string:
		return v, true
	case *string:
		if v == nil {
			return "", false
		}
		return *v, true
	}
	return "", false
}

func intValue(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	case *int:
		if v == nil {
			return 0, false
		}
		return int64(*v), true
	case *int64:
		if v == nil {
			return 0, false
		}
		return *v, true
	}
	return 0, false
}
