package event

import (
	"errors"

	"github.com/rpggio/clubboard/internal/domain/user"
)

var (
	// ErrEventNotFound indicates the event isn't in the cached events list.
	ErrEventNotFound = errors.New("event not found")
	// ErrInvalidStage indicates a progress index outside [0,7].
	ErrInvalidStage = errors.New("progress index out of range")
	// ErrInvalidTransition indicates no table row allows the action from the current stage.
	ErrInvalidTransition = errors.New("invalid event transition")
	// ErrMissingField indicates a field required by the transition is empty.
	ErrMissingField = errors.New("required field missing")
	// ErrInvalidInput indicates invalid input for event operations.
	ErrInvalidInput = errors.New("invalid event input")
	// ErrNotEditable indicates links can no longer be edited.
	ErrNotEditable = errors.New("event no longer editable")
	// ErrAccessDenied indicates the caller's actor may not perform the action.
	ErrAccessDenied = user.ErrAccessDenied
)
