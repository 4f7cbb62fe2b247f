package validation

import (
	"fmt"
	"strings"
)

// FieldErrors maps a field name to the ordered list of messages produced for
// it. An empty map means the subject passed every rule.
type FieldErrors map[string][]string

func (fe FieldErrors) Valid() bool {
	return len(fe) == 0
}

func (fe FieldErrors) Add(field, message string) {
	fe[field] = append(fe[field], message)
}

type ValidatorFunc func(value interface{}) (message string, ok bool)

type FieldValidator struct {
	FieldName  string
	Value      interface{}
	Validators []ValidatorFunc
}

type ValidationBuilder struct {
	fields []FieldValidator
}

func NewValidator() *ValidationBuilder {
	return &ValidationBuilder{
		fields: make([]FieldValidator, 0),
	}
}

func (v *ValidationBuilder) Field(name string, value interface{}) *FieldValidator {
	fv := FieldValidator{
		FieldName:  name,
		Value:      value,
		Validators: make([]ValidatorFunc, 0),
	}
	v.fields = append(v.fields, fv)
	return &v.fields[len(v.fields)-1]
}

func (fv *FieldValidator) Required(message string) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) (string, bool) {
		switch v := value.(type) {
		case string:
			if strings.TrimSpace(v) == "" {
				return message, false
			}
		case *string:
			if v == nil || strings.TrimSpace(*v) == "" {
				return message, false
			}
		}
		return "", true
	})
	return fv
}

// LengthBetween checks the string length bounds. Empty values are skipped:
// presence is Required's concern, so an absent field reports one message.
func (fv *FieldValidator) LengthBetween(min, max int, message string) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) (string, bool) {
		if v, ok := value.(string); ok && v != "" {
			if len(v) < min || len(v) > max {
				return message, false
			}
		}
		return "", true
	})
	return fv
}

// DigitsOnly checks that every character is an ASCII digit. Empty values are
// skipped for the same reason as LengthBetween.
func (fv *FieldValidator) DigitsOnly(message string) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) (string, bool) {
		if v, ok := value.(string); ok && v != "" {
			for _, r := range v {
				if r < '0' || r > '9' {
					return message, false
				}
			}
		}
		return "", true
	})
	return fv
}

func (fv *FieldValidator) IntBetween(min, max int64, message string) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) (string, bool) {
		if v, ok := toInt64(value); ok {
			if v < min || v > max {
				return message, false
			}
		}
		return "", true
	})
	return fv
}

func (fv *FieldValidator) GreaterThan(min int64, message string) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) (string, bool) {
		if v, ok := toInt64(value); ok {
			if v <= min {
				return message, false
			}
		}
		return "", true
	})
	return fv
}

// OneOfFold checks case-insensitive membership. Empty values are skipped.
func (fv *FieldValidator) OneOfFold(allowed []string, message string) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) (string, bool) {
		v, ok := value.(string)
		if !ok || v == "" {
			return "", true
		}
		for _, a := range allowed {
			if strings.EqualFold(v, a) {
				return "", true
			}
		}
		return message, false
	})
	return fv
}

func (fv *FieldValidator) Custom(validator ValidatorFunc) *FieldValidator {
	fv.Validators = append(fv.Validators, validator)
	return fv
}

// Validate runs every rule of every field and collects all failures; rules
// on the same field never short-circuit each other.
func (v *ValidationBuilder) Validate() FieldErrors {
	errs := make(FieldErrors)

	for _, field := range v.fields {
		for _, validator := range field.Validators {
			if message, ok := validator(field.Value); !ok {
				errs.Add(field.FieldName, message)
			}
		}
	}

	return errs
}

func toInt64(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	}
	return 0, false
}

// RequiredMessage is a convenience formatter for the common presence message.
func RequiredMessage(label string) string {
	return fmt.Sprintf("%s is required", label)
}
