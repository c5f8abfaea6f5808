package team

import "context"

// Repository persists the Team aggregate as one unit, roster included.
type Repository interface {
	// ListActive returns active teams ordered by creation time.
	ListActive(ctx context.Context) ([]Team, error)
	// GetByID returns the team regardless of its active flag.
	GetByID(ctx context.Context, teamID string) (Team, bool, error)
	// FindActiveConflict finds another active team holding nameKey or shortName.
	FindActiveConflict(ctx context.Context, nameKey, shortName, excludeTeamID string) (Team, bool, error)
	Create(ctx context.Context, team Team) error
	// Save writes the whole aggregate when the stored version equals
	// expectedVersion, otherwise it returns ErrVersionConflict.
	Save(ctx context.Context, team Team, expectedVersion int64) error
}
