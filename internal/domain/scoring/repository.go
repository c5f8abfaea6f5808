package scoring

import "context"

// Repository stores the ball-by-ball ledger of each match.
type Repository interface {
	// ListByMatch returns deliveries ordered by sequence.
	ListByMatch(ctx context.Context, matchID string) ([]Delivery, error)
	CountByMatch(ctx context.Context, matchID string) (int, error)
	// Append stores d, failing with ErrSequenceConflict when d.Sequence is taken.
	Append(ctx context.Context, d Delivery) error
	// DeleteLast removes the highest-sequence delivery of the match.
	DeleteLast(ctx context.Context, matchID string) (Delivery, bool, error)
}
