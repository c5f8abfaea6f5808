package team

import "github.com/cockroachdb/errors"

var (
	ErrInvalidTeam     = errors.New("invalid team")
	ErrInvalidPlayer   = errors.New("invalid player")
	ErrRosterFull      = errors.New("roster is full")
	ErrDuplicateJersey = errors.New("jersey number already taken")
	ErrPlayerNotFound  = errors.New("player not found")

	// ErrDuplicateTeam is returned by repositories when an active team already
	// holds the name or short name.
	ErrDuplicateTeam = errors.New("team name or short name already in use")
	// ErrVersionConflict is returned by Save when the stored version moved.
	ErrVersionConflict = errors.New("team version conflict")
)
