package activity

import "errors"

// ErrInvalidInput indicates an empty or malformed activity entry.
var ErrInvalidInput = errors.New("invalid activity input")
