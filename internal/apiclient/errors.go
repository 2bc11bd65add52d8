package apiclient

import (
	"errors"
	"fmt"
)

// ErrNetwork matches every *NetworkError with errors.Is.
var ErrNetwork = errors.New("club api unavailable")

// NetworkError is a transport failure or a non-2xx response from the club API.
// Status is zero when no response was received.
type NetworkError struct {
	Method string
	Path   string
	Status int
	Detail string
	Err    error
}

func (e *NetworkError) Error() string {
	switch {
	case e.Status == 0 && e.Err != nil:
		return fmt.Sprintf("api %s %s: %v", e.Method, e.Path, e.Err)
	case e.Detail != "":
		return fmt.Sprintf("api %s %s: status %d: %s", e.Method, e.Path, e.Status, e.Detail)
	}
	return fmt.Sprintf("api %s %s: status %d", e.Method, e.Path, e.Status)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Is(target error) bool { return target == ErrNetwork }

// StatusOf returns the HTTP status carried by err, or zero.
func StatusOf(err error) int {
	var ne *NetworkError
	if errors.As(err, &ne) {
		return ne.Status
	}
	return 0
}
