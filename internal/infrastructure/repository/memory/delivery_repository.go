package memory

import (
	"context"
	"sync"

	"github.com/sportsdesk/teamhub/internal/domain/scoring"
)

type DeliveryRepository struct {
	mu      sync.RWMutex
	byMatch map[string][]scoring.Delivery
}

func NewDeliveryRepository() *DeliveryRepository {
	return &DeliveryRepository{byMatch: make(map[string][]scoring.Delivery)}
}

func (r *DeliveryRepository) ListByMatch(_ context.Context, matchID string) ([]scoring.Delivery, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := r.byMatch[matchID]
	out := make([]scoring.Delivery, 0, len(rows))
	out = append(out, rows...)

	return out, nil
}

func (r *DeliveryRepository) CountByMatch(_ context.Context, matchID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.byMatch[matchID]), nil
}

// Append keeps the ledger dense: d.Sequence must be exactly one past the last entry.
func (r *DeliveryRepository) Append(_ context.Context, d scoring.Delivery) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := r.byMatch[d.MatchID]
	if d.Sequence != len(rows)+1 {
		return scoring.ErrSequenceConflict
	}
	r.byMatch[d.MatchID] = append(rows, d)
	return nil
}

func (r *DeliveryRepository) DeleteLast(_ context.Context, matchID string) (scoring.Delivery, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := r.byMatch[matchID]
	if len(rows) == 0 {
		return scoring.Delivery{}, false, nil
	}
	last := rows[len(rows)-1]
	r.byMatch[matchID] = rows[:len(rows)-1:len(rows)-1]
	return last, true, nil
}
