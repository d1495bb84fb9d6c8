package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once sync.Once
	v    *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		// Report JSON field names so messages match what callers serialize.
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
	})
	return v
}

// FieldError describes one failed constraint.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
	Param string `json:"param,omitempty"`
}

func (f FieldError) String() string {
	switch f.Rule {
	case "required":
		return fmt.Sprintf("field %q is required", f.Field)
	case "oneof":
		return fmt.Sprintf("field %q must be one of [%s]", f.Field, f.Param)
	case "min", "gte":
		return fmt.Sprintf("field %q must be at least %s", f.Field, f.Param)
	case "max", "lte":
		return fmt.Sprintf("field %q must be at most %s", f.Field, f.Param)
	case "gt":
		return fmt.Sprintf("field %q must be greater than %s", f.Field, f.Param)
	case "required_with":
		return fmt.Sprintf("field %q is required when %s is set", f.Field, f.Param)
	case "required_if":
		if name, val, ok := strings.Cut(f.Param, " "); ok {
			return fmt.Sprintf("field %q is required when %s is %s", f.Field, name, val)
		}
		return fmt.Sprintf("field %q is required", f.Field)
	default:
		return fmt.Sprintf("field %q failed %s validation", f.Field, f.Rule)
	}
}

// Error aggregates every failed constraint of a struct.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.String()
	}
	return "invalid parameters: " + strings.Join(parts, "; ")
}

// Struct validates s against its `validate` tags. It returns nil or *Error.
func Struct(s any) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate: %w", err)
	}
	out := &Error{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{Field: fe.Field(), Rule: fe.Tag(), Param: fe.Param()})
	}
	return out
}
