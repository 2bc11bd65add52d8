package query

import (
	"errors"

	"github.com/rpggio/clubboard/internal/domain/user"
)

var (
	// ErrQueryNotFound indicates the query doesn't exist.
	ErrQueryNotFound = errors.New("query not found")
	// ErrAlreadyAddressed indicates the query already has a solution.
	ErrAlreadyAddressed = errors.New("query already addressed")
	// ErrInvalidCategory indicates an unknown category.
	ErrInvalidCategory = errors.New("invalid query category")
	// ErrInvalidInput indicates a missing name, message or solution.
	ErrInvalidInput = errors.New("invalid query input")
	// ErrAccessDenied indicates the caller may not address queries.
	ErrAccessDenied = user.ErrAccessDenied
)
