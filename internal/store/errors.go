package store

import "errors"

var (
	// ErrNotFound reports a by-id lookup with no matching row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate reports a write rejected by a uniqueness constraint.
	ErrDuplicate = errors.New("duplicate record")
	// ErrConstraintViolation reports a write referencing a nonexistent row.
	ErrConstraintViolation = errors.New("constraint violation")
)
