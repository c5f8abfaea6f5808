package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/sportsdesk/teamhub/internal/domain/team"
)

type TeamRepository struct {
	mu    sync.RWMutex
	order []string
	items map[string]team.Team
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	r := &TeamRepository{items: make(map[string]team.Team, len(teams))}
	for _, item := range teams {
		if _, exists := r.items[item.ID]; !exists {
			r.order = append(r.order, item.ID)
		}
		r.items[item.ID] = item.Clone()
	}

	return r
}

func (r *TeamRepository) ListActive(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(r.order))
	for _, id := range r.order {
		item := r.items[id]
		if item.IsActive {
			out = append(out, item.Clone())
		}
	}

	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[teamID]
	if !ok {
		return team.Team{}, false, nil
	}

	return item.Clone(), true, nil
}

func (r *TeamRepository) FindActiveConflict(_ context.Context, nameKey, shortName, excludeTeamID string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.conflictLocked(nameKey, shortName, excludeTeamID)
	return item, ok, nil
}

func (r *TeamRepository) Create(_ context.Context, item team.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; exists {
		return fmt.Errorf("%w: team id %s already exists", team.ErrDuplicateTeam, item.ID)
	}
	if item.IsActive {
		if _, conflict := r.conflictLocked(item.NameKey(), item.ShortName, item.ID); conflict {
			return team.ErrDuplicateTeam
		}
	}

	r.order = append(r.order, item.ID)
	r.items[item.ID] = item.Clone()
	return nil
}

func (r *TeamRepository) Save(_ context.Context, item team.Team, expectedVersion int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.items[item.ID]
	if !ok || stored.Version != expectedVersion {
		return team.ErrVersionConflict
	}
	if item.IsActive {
		if _, conflict := r.conflictLocked(item.NameKey(), item.ShortName, item.ID); conflict {
			return team.ErrDuplicateTeam
		}
	}

	r.items[item.ID] = item.Clone()
	return nil
}

func (r *TeamRepository) conflictLocked(nameKey, shortName, excludeTeamID string) (team.Team, bool) {
	for _, id := range r.order {
		if id == excludeTeamID {
			continue
		}
		item := r.items[id]
		if !item.IsActive {
			continue
		}
		if item.NameKey() == nameKey || item.ShortName == shortName {
			return item.Clone(), true
		}
	}

	return team.Team{}, false
}
