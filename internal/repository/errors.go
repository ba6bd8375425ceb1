// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios. For
// example, ErrRegistrationNotFound indicates that a cancel or change
// referenced a registration that no longer exists, while
// ErrAlreadyRegistered signals that the student already holds a live
// registration for the activity.
package repository

import (
	"errors"
	"strings"
)

// ErrRegistrationNotFound is returned by Cancel and Change when no
// activity_participants row exists for the given participant ID. The
// enclosing transaction has already been rolled back when this error
// is returned. Handlers should translate it into an HTTP 404.
var ErrRegistrationNotFound = errors.New("registration not found")

// ErrAlreadyRegistered is returned when inserting a registration
// violates the (activity_id, student_id) unique key, meaning the
// student already has a live registration for that activity.
// Handlers should translate this into an HTTP 409.
var ErrAlreadyRegistered = errors.New("already registered for this activity")

// ErrUserExists is returned when creating a login whose username is
// already taken. Handlers should translate this into an HTTP 409.
var ErrUserExists = errors.New("username already exists")

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own, such as cancelling another student's
// registration. Handlers should translate this into an HTTP 403.
var ErrForbidden = errors.New("forbidden")

// isDuplicateKey reports whether err is a MySQL duplicate-key failure
// (error 1062). The driver surfaces the numeric code in the error
// text, so a substring check is sufficient.
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}
