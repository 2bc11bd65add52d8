package user

import "errors"

var (
	// ErrUserNotFound indicates the user doesn't exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidRole indicates an unknown role.
	ErrInvalidRole = errors.New("invalid role")
	// ErrInvalidTeam indicates an unknown team.
	ErrInvalidTeam = errors.New("invalid team")
	// ErrInvalidInput indicates invalid input for user operations.
	ErrInvalidInput = errors.New("invalid user input")
	// ErrAccessDenied indicates the role/team combination may not use a view or action.
	ErrAccessDenied = errors.New("access denied")
)
