package schemas

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ValidationError is returned when a request payload is malformed or fails
// field rules. Field keys use the JSON names of the payload.
type ValidationError struct {
	fields map[string]string
	cause  error
}

func newValidationError(cause error) error {
	if cause == nil {
		return nil
	}

	fields := map[string]string{}
	var errs validation.Errors
	if errors.As(cause, &errs) {
		for name, err := range errs {
			if err != nil {
				fields[name] = err.Error()
			}
		}
		if len(fields) == 0 {
			return nil
		}
	} else {
		fields["body"] = cause.Error()
	}
	return &ValidationError{fields: fields, cause: cause}
}

// FromDecodeError converts a JSON decoding failure into a ValidationError.
func FromDecodeError(err error) *ValidationError {
	fields := map[string]string{}

	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &typeErr) && typeErr.Field != "":
		fields[typeErr.Field] = fmt.Sprintf("must be of type %s", jsonTypeName(typeErr.Type.String()))
	case errors.As(err, &typeErr):
		fields["body"] = "must be a JSON object"
	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		fields["body"] = "malformed JSON"
	case errors.Is(err, io.EOF):
		fields["body"] = "request body is required"
	default:
		fields["body"] = err.Error()
	}

	return &ValidationError{fields: fields, cause: err}
}

func jsonTypeName(goType string) string {
	goType = strings.TrimPrefix(goType, "*")
	switch {
	case strings.HasPrefix(goType, "int"), strings.HasPrefix(goType, "uint"):
		return "integer"
	case goType == "string":
		return "string"
	case strings.HasSuffix(goType, ".Date"):
		return "date (YYYY-MM-DD)"
	default:
		return goType
	}
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.fields))
	for name := range e.fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.fields[name])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return e.cause
}

// Fields returns a copy of the per-field messages.
func (e *ValidationError) Fields() map[string]string {
	out := make(map[string]string, len(e.fields))
	for k, v := range e.fields {
		out[k] = v
	}
	return out
}
