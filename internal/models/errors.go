package models

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateSlug     = errors.New("slug already in use")
	ErrDuplicateUsername = errors.New("username already in use")
)

type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ReorderError reports a reorder loop that stopped partway through: Applied
// holds the ids whose order was already written when Err occurred. The caller
// decides whether to resubmit.
type ReorderError struct {
	Applied []string
	Err     error
}

func (e ReorderError) Error() string {
	return fmt.Sprintf("reorder failed after %d updates (%s): %v",
		len(e.Applied), strings.Join(e.Applied, ","), e.Err)
}

func (e ReorderError) Unwrap() error {
	return e.Err
}
