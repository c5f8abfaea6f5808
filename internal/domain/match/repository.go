package match

import "context"

// Filter narrows List. Zero values match everything.
type Filter struct {
	Status Status
	TeamID string
}

type Repository interface {
	List(ctx context.Context, filter Filter) ([]Match, error)
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	Create(ctx context.Context, m Match) error
	// Update writes m when the stored version equals expectedVersion,
	// otherwise it returns ErrVersionConflict.
	Update(ctx context.Context, m Match, expectedVersion int64) error
	Delete(ctx context.Context, matchID string) error
}
