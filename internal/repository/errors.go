package repository

import "errors"

// ErrInvalidInput is returned when a record fails validation before it is stored
var ErrInvalidInput = errors.New("invalid input")
