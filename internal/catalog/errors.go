package catalog

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrForbidden     = errors.New("admin privileges required")
	ErrBookNotFound  = errors.New("book not found")
	ErrDuplicateBook = errors.New("a book with this title, author and publisher already exists")
	ErrCoverStorage  = errors.New("could not store cover image")
)

// ValidationError lists the rejected input fields with a message for each.
type ValidationError struct {
	Fields map[string]string
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

func (e *ValidationError) Error() string {
	return "invalid input: " + strings.Join(e.Messages(), "; ")
}

// Messages returns the field messages in a stable order, for display.
func (e *ValidationError) Messages() []string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, e.Fields[k])
	}
	return out
}

// IsValidationError reports whether err is, or wraps, a *ValidationError.
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
