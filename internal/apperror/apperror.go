package apperror

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrValidation  = errors.New("validation error")
	ErrReference   = errors.New("invalid reference")
	ErrPersistence = errors.New("persistence error")
)

type AppError struct {
	Err     error  // sentinel kind
	Message string // Human-readable error message
	Field   string // Optional: field causing the error
	Cause   error  // Optional: underlying driver error
}

func (e *AppError) Error() string {
	return e.Message
}

// Unwrap exposes both the sentinel kind and the underlying cause, so
// errors.Is matches ErrPersistence as well as e.g. sql.ErrConnDone.
func (e *AppError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

// InvalidReference reports a write that points at a row which does not
// exist, such as a show naming an unknown artist.
func InvalidReference(resource, id string) *AppError {
	return &AppError{
		Err:     ErrReference,
		Message: fmt.Sprintf("%s with id %s does not exist", resource, id),
		Field:   resource + "_id",
	}
}

// Persistence wraps a failed write. The transaction has already been rolled
// back by the time callers see it.
func Persistence(op string, cause error) *AppError {
	return &AppError{
		Err:     ErrPersistence,
		Message: fmt.Sprintf("could not %s", op),
		Cause:   cause,
	}
}

// ValidationErrors collects one message per form field.
type ValidationErrors struct {
	Fields map[string]string
}

func (v *ValidationErrors) Add(field, message string) {
	if v.Fields == nil {
		v.Fields = make(map[string]string)
	}
	if _, ok := v.Fields[field]; !ok {
		v.Fields[field] = message
	}
}

// Error joins the messages in field order so output is stable.
func (v *ValidationErrors) Error() string {
	keys := make([]string, 0, len(v.Fields))
	for k := range v.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, v.Fields[k])
	}
	return strings.Join(msgs, "; ")
}

func (v *ValidationErrors) Is(target error) bool {
	return target == ErrValidation
}
