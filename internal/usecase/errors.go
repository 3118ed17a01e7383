package usecase

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"airline-api/internal/data/repository"
)

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrNotFound         = errors.New("not found")
	ErrAlreadyDeparted  = errors.New("flight already departed")
	ErrNoSeatsAvailable = errors.New("no seats available")

	// Storage-detected; nothing was written and the call can be retried.
	ErrConflict  = repository.ErrConflict
	ErrTransient = repository.ErrTransient
)

// ValidationError is returned before any write when a request is malformed.
// It matches ErrInvalidInput with errors.Is.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	msgs := make([]string, 0, len(keys))
	for _, k := range keys {
		msgs = append(msgs, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

func invalidField(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}
