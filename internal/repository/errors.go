package repository

import "errors"

var (
	// ErrNotFound is returned when a point lookup matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicateEmail is returned when the unique email index rejects an
	// insert. Callers treat this as the already-exists path, which also
	// resolves the race of two concurrent first sign-ins.
	ErrDuplicateEmail = errors.New("record with this email already exists")
	// ErrDuplicateEnrollment is returned when a student is already enrolled
	// in the class.
	ErrDuplicateEnrollment = errors.New("student already enrolled in this class")
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint
// violations.
const pgUniqueViolation = "23505"
