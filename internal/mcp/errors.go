package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/clubboard/internal/apiclient"
	"github.com/rpggio/clubboard/internal/domain/event"
	"github.com/rpggio/clubboard/internal/domain/query"
	"github.com/rpggio/clubboard/internal/domain/session"
	"github.com/rpggio/clubboard/internal/domain/stats"
	"github.com/rpggio/clubboard/internal/domain/user"
	"github.com/rpggio/clubboard/internal/store"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *APIError) CodeValue() string {
	return e.Code
}

func (e *APIError) MessageValue() string {
	return e.Message
}

func (e *APIError) DetailsValue() any {
	return e.Details
}

func (e *APIError) RecoveryHintValue() string {
	return e.RecoveryHint
}

// MapError maps domain errors to MCP error codes.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	switch {
	case errors.Is(err, user.ErrAccessDenied):
		return &APIError{Code: "ACCESS_DENIED", Message: err.Error(), RecoveryHint: "Sign in as a member whose role and team allow this"}
	case errors.Is(err, session.ErrNotSignedIn):
		return &APIError{Code: "NOT_SIGNED_IN", Message: "not signed in", RecoveryHint: "Log in first"}
	case errors.Is(err, event.ErrEventNotFound):
		return &APIError{Code: "EVENT_NOT_FOUND", Message: err.Error(), RecoveryHint: "Check the ID or call refresh"}
	case errors.Is(err, event.ErrInvalidTransition):
		return &APIError{Code: "INVALID_TRANSITION", Message: err.Error(), RecoveryHint: "Use one of the event's listed actions"}
	case errors.Is(err, event.ErrInvalidStage):
		return &APIError{Code: "INVALID_STAGE", Message: err.Error()}
	case errors.Is(err, event.ErrMissingField), errors.Is(err, stats.ErrMissingField):
		return &APIError{Code: "MISSING_FIELD", Message: err.Error(), RecoveryHint: "Supply every required field"}
	case errors.Is(err, event.ErrNotEditable):
		return &APIError{Code: "NOT_EDITABLE", Message: err.Error()}
	case errors.Is(err, stats.ErrDuplicatePeriod):
		return &APIError{Code: "DUPLICATE_PERIOD", Message: err.Error(), RecoveryHint: "This month is already recorded"}
	case errors.Is(err, query.ErrQueryNotFound):
		return &APIError{Code: "QUERY_NOT_FOUND", Message: err.Error()}
	case errors.Is(err, query.ErrAlreadyAddressed):
		return &APIError{Code: "ALREADY_ADDRESSED", Message: err.Error()}
	case errors.Is(err, store.ErrUnknownResource):
		return &APIError{Code: "UNKNOWN_RESOURCE", Message: err.Error(), Details: store.Resources}
	case errors.Is(err, user.ErrUserNotFound):
		return &APIError{Code: "USER_NOT_FOUND", Message: err.Error()}
	case errors.Is(err, event.ErrInvalidInput), errors.Is(err, stats.ErrInvalidInput),
		errors.Is(err, query.ErrInvalidInput), errors.Is(err, query.ErrInvalidCategory),
		errors.Is(err, user.ErrInvalidInput), errors.Is(err, user.ErrInvalidRole), errors.Is(err, user.ErrInvalidTeam):
		return &APIError{Code: "INVALID_INPUT", Message: err.Error()}
	case errors.Is(err, apiclient.ErrNetwork):
		return &APIError{
			Code:         "NETWORK_ERROR",
			Message:      err.Error(),
			Details:      map[string]int{"status": apiclient.StatusOf(err)},
			RecoveryHint: "Cached data is unchanged; retry later",
		}
	default:
		return nil
	}
}
