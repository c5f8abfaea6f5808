package match

import "github.com/cockroachdb/errors"

var (
	ErrInvalidMatch      = errors.New("invalid match")
	ErrInvalidScore      = errors.New("invalid score")
	ErrInvalidResult     = errors.New("invalid match result")
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrVersionConflict is returned by Update when the stored version moved.
	ErrVersionConflict   = errors.New("match version conflict")
)
