// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// inspecting driver-specific error strings themselves.
package repository

import (
	"errors"
	"strings"
)

// ErrNodeNotFound is returned when the referenced node row does not
// exist. Handlers translate this into an HTTP 404 response.
var ErrNodeNotFound = errors.New("node not found")

// ErrUserNotFound is returned when the referenced user row does not
// exist. Besides handlers, the token service relies on it for the
// subject-liveness check.
var ErrUserNotFound = errors.New("user not found")

// ErrAlreadyRecorded is returned when an attendance row already exists
// for the (user, node) pair. Uniqueness is enforced by the primary key
// on the attendance table, so concurrent duplicate submissions cannot
// both succeed. Handlers translate this into HTTP 409.
var ErrAlreadyRecorded = errors.New("attendance already recorded")

// isDuplicate reports whether err is a MySQL duplicate-key violation
// (error 1062).
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
