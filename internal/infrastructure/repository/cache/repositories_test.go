package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/sportsdesk/teamhub/internal/domain/match"
	"github.com/sportsdesk/teamhub/internal/domain/team"
	"github.com/sportsdesk/teamhub/internal/infrastructure/repository/memory"
	basecache "github.com/sportsdesk/teamhub/internal/platform/cache"
)

var cacheNow = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

type countingTeamRepository struct {
	team.Repository
	listCalls int
}

func (r *countingTeamRepository) ListActive(ctx context.Context) ([]team.Team, error) {
	r.listCalls++
	return r.Repository.ListActive(ctx)
}

type countingMatchRepository struct {
	match.Repository
	listCalls int
}

func (r *countingMatchRepository) List(ctx context.Context, filter match.Filter) ([]match.Match, error) {
	r.listCalls++
	return r.Repository.List(ctx, filter)
}

func TestTeamRepositoryCachesActiveList(t *testing.T) {
	ctx := t.Context()
	base := &countingTeamRepository{Repository: memory.NewTeamRepository(memory.SeedTeams(cacheNow))}
	repo := NewTeamRepository(base, basecache.NewStore(time.Minute))

	first, err := repo.ListActive(ctx)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if _, err := repo.ListActive(ctx); err != nil {
		t.Fatalf("list active: %v", err)
	}
	if base.listCalls != 1 {
		t.Fatalf("expected one store call, got %d", base.listCalls)
	}

	// Callers get their own copy of the roster.
	first[0].Players[0].Name = "mutated"
	again, err := repo.ListActive(ctx)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if again[0].Players[0].Name == "mutated" {
		t.Fatalf("cached roster was mutated through a returned slice")
	}

	current, _, err := repo.GetByID(ctx, memory.TeamIDMumbaiStrikers)
	if err != nil {
		t.Fatalf("get team: %v", err)
	}
	next := current.Clone()
	next.IsActive = false
	next.Version = current.Version + 1
	if err := repo.Save(ctx, next, current.Version); err != nil {
		t.Fatalf("save team: %v", err)
	}

	afterSave, err := repo.ListActive(ctx)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if base.listCalls != 2 {
		t.Fatalf("expected save to invalidate the list, store calls=%d", base.listCalls)
	}
	if len(afterSave) != len(first)-1 {
		t.Fatalf("expected soft deleted team to disappear, got %d teams", len(afterSave))
	}
}

func TestTeamRepositoryKeepsCacheOnFailedSave(t *testing.T) {
	ctx := t.Context()
	base := &countingTeamRepository{Repository: memory.NewTeamRepository(memory.SeedTeams(cacheNow))}
	repo := NewTeamRepository(base, basecache.NewStore(time.Minute))

	if _, err := repo.ListActive(ctx); err != nil {
		t.Fatalf("list active: %v", err)
	}
	current, _, _ := repo.GetByID(ctx, memory.TeamIDMumbaiStrikers)
	if err := repo.Save(ctx, current, current.Version+5); err == nil {
		t.Fatalf("expected version conflict")
	}
	if _, err := repo.ListActive(ctx); err != nil {
		t.Fatalf("list active: %v", err)
	}
	if base.listCalls != 1 {
		t.Fatalf("failed save should not invalidate, store calls=%d", base.listCalls)
	}
}

func TestMatchRepositoryInvalidatesAllFilters(t *testing.T) {
	ctx := t.Context()
	base := &countingMatchRepository{Repository: memory.NewMatchRepository(nil)}
	repo := NewMatchRepository(base, basecache.NewStore(time.Minute))

	byTeam := match.Filter{TeamID: memory.TeamIDMumbaiStrikers}
	for _, filter := range []match.Filter{{}, byTeam, {}, byTeam} {
		if _, err := repo.List(ctx, filter); err != nil {
			t.Fatalf("list matches: %v", err)
		}
	}
	if base.listCalls != 2 {
		t.Fatalf("expected one store call per filter, got %d", base.listCalls)
	}

	m := match.Match{
		ID:        "65f000000000000000000c01",
		TeamA:     memory.TeamIDMumbaiStrikers,
		TeamB:     memory.TeamIDChennaiKings,
		Date:      cacheNow,
		Overs:     20,
		Status:    match.StatusScheduled,
		Score:     match.ZeroScore(),
		Version:   1,
		CreatedAt: cacheNow,
	}
	if err := repo.Create(ctx, m); err != nil {
		t.Fatalf("create match: %v", err)
	}

	items, err := repo.List(ctx, byTeam)
	if err != nil {
		t.Fatalf("list matches: %v", err)
	}
	if len(items) != 1 || base.listCalls != 3 {
		t.Fatalf("expected fresh list after create, items=%d calls=%d", len(items), base.listCalls)
	}
	if _, err := repo.List(ctx, match.Filter{}); err != nil {
		t.Fatalf("list matches: %v", err)
	}
	if base.listCalls != 4 {
		t.Fatalf("expected every filter to be invalidated, calls=%d", base.listCalls)
	}
}

type gatedTeamRepository struct {
	team.Repository
	loaded  chan struct{}
	release chan struct{}
	once    sync.Once
}

// ListActive reads the store, then parks the first call until release closes.
func (r *gatedTeamRepository) ListActive(ctx context.Context) ([]team.Team, error) {
	items, err := r.Repository.ListActive(ctx)
	first := false
	r.once.Do(func() { first = true })
	if first {
		close(r.loaded)
		<-r.release
	}
	return items, err
}

func TestTeamRepositoryDropsListReadBeforeConcurrentSave(t *testing.T) {
	ctx := t.Context()
	inner := memory.NewTeamRepository(memory.SeedTeams(cacheNow))
	base := &gatedTeamRepository{
		Repository: inner,
		loaded:     make(chan struct{}),
		release:    make(chan struct{}),
	}
	repo := NewTeamRepository(base, basecache.NewStore(time.Minute))

	done := make(chan error, 1)
	go func() {
		_, err := repo.ListActive(ctx)
		done <- err
	}()
	<-base.loaded

	current, _, err := repo.GetByID(ctx, memory.TeamIDMumbaiStrikers)
	if err != nil {
		t.Fatalf("get team: %v", err)
	}
	next := current.Clone()
	next.IsActive = false
	next.Version = current.Version + 1
	if err := repo.Save(ctx, next, current.Version); err != nil {
		t.Fatalf("save team: %v", err)
	}

	close(base.release)
	if err := <-done; err != nil {
		t.Fatalf("in-flight list: %v", err)
	}

	stored, err := inner.ListActive(ctx)
	if err != nil {
		t.Fatalf("store list: %v", err)
	}
	listed, err := repo.ListActive(ctx)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(listed) != len(stored) {
		t.Fatalf("cached list has %d teams, store has %d", len(listed), len(stored))
	}
	for _, item := range listed {
		if item.ID == memory.TeamIDMumbaiStrikers {
			t.Fatalf("soft deleted team %s still listed", item.ID)
		}
	}
}
