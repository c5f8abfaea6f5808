package scoring

import "github.com/cockroachdb/errors"

var (
	ErrInvalidDelivery = errors.New("invalid delivery")
	ErrInningsClosed   = errors.New("innings is closed")
	// ErrSequenceConflict is returned by Append when another writer already
	// used the sequence number.
	ErrSequenceConflict = errors.New("delivery sequence already recorded")
)
