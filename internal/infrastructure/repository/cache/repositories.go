package cache

import (
	"context"

	"github.com/sportsdesk/teamhub/internal/domain/match"
	"github.com/sportsdesk/teamhub/internal/domain/team"
	basecache "github.com/sportsdesk/teamhub/internal/platform/cache"
)

const (
	activeTeamsKey  = "team:active"
	matchListPrefix = "match:list:"
)

// TeamRepository caches the active team list. Single-team reads always hit
// the store so optimistic versions stay fresh.
type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) ListActive(ctx context.Context) ([]team.Team, error) {
	items, err := basecache.Load(ctx, r.cache, activeTeamsKey, func(ctx context.Context) ([]team.Team, error) {
		return r.next.ListActive(ctx)
	})
	if err != nil {
		return nil, err
	}
	return cloneTeams(items), nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	return r.next.GetByID(ctx, teamID)
}

func (r *TeamRepository) FindActiveConflict(ctx context.Context, nameKey, shortName, excludeTeamID string) (team.Team, bool, error) {
	return r.next.FindActiveConflict(ctx, nameKey, shortName, excludeTeamID)
}

func (r *TeamRepository) Create(ctx context.Context, item team.Team) error {
	if err := r.next.Create(ctx, item); err != nil {
		return err
	}
	r.cache.Delete(ctx, activeTeamsKey)
	return nil
}

func (r *TeamRepository) Save(ctx context.Context, item team.Team, expectedVersion int64) error {
	if err := r.next.Save(ctx, item, expectedVersion); err != nil {
		return err
	}
	r.cache.Delete(ctx, activeTeamsKey)
	return nil
}

func cloneTeams(items []team.Team) []team.Team {
	out := make([]team.Team, 0, len(items))
	for _, item := range items {
		out = append(out, item.Clone())
	}
	return out
}

// MatchRepository caches filtered match lists and drops them on any write.
type MatchRepository struct {
	next  match.Repository
	cache *basecache.Store
}

func NewMatchRepository(next match.Repository, cache *basecache.Store) *MatchRepository {
	return &MatchRepository{next: next, cache: cache}
}

func (r *MatchRepository) List(ctx context.Context, filter match.Filter) ([]match.Match, error) {
	key := matchListPrefix + string(filter.Status) + ":" + filter.TeamID
	items, err := basecache.Load(ctx, r.cache, key, func(ctx context.Context) ([]match.Match, error) {
		return r.next.List(ctx, filter)
	})
	if err != nil {
		return nil, err
	}
	return cloneMatches(items), nil
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	return r.next.GetByID(ctx, matchID)
}

func (r *MatchRepository) Create(ctx context.Context, m match.Match) error {
	if err := r.next.Create(ctx, m); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, matchListPrefix)
	return nil
}

func (r *MatchRepository) Update(ctx context.Context, m match.Match, expectedVersion int64) error {
	if err := r.next.Update(ctx, m, expectedVersion); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, matchListPrefix)
	return nil
}

func (r *MatchRepository) Delete(ctx context.Context, matchID string) error {
	if err := r.next.Delete(ctx, matchID); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, matchListPrefix)
	return nil
}

func cloneMatches(items []match.Match) []match.Match {
	out := make([]match.Match, 0, len(items))
	for _, item := range items {
		if item.Result != nil {
			result := *item.Result
			item.Result = &result
		}
		out = append(out, item)
	}
	return out
}
