package session

import "errors"

var (
	// ErrNotSignedIn indicates no caller identity is held.
	ErrNotSignedIn = errors.New("not signed in")
	// ErrInvalidInput indicates missing credentials or signup fields.
	ErrInvalidInput = errors.New("invalid session input")
	// ErrPasswordMismatch indicates the password confirmation differs.
	ErrPasswordMismatch = errors.New("passwords do not match")
)
