package stats

import (
	"errors"

	"github.com/rpggio/clubboard/internal/domain/user"
)

var (
	// ErrDuplicatePeriod indicates an entry for the month already exists.
	ErrDuplicatePeriod = errors.New("stats entry already exists for this month")
	// ErrMissingField indicates a required metric is missing.
	ErrMissingField = errors.New("required metric missing")
	// ErrInvalidInput indicates a negative or otherwise invalid metric.
	ErrInvalidInput = errors.New("invalid stats input")
	// ErrAccessDenied indicates the caller's team may not submit these stats.
	ErrAccessDenied = user.ErrAccessDenied
)
