package guard

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/sportsdesk/teamhub/internal/domain/team"
	teammock "github.com/sportsdesk/teamhub/internal/mocks/domain/team"
	"github.com/sportsdesk/teamhub/internal/platform/resilience"
	"github.com/sportsdesk/teamhub/internal/usecase"
)

func testBreakerConfig() resilience.CircuitBreakerConfig {
	return resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	}
}

func TestTeamRepositoryOpensAfterStoreFailures(t *testing.T) {
	ctx := t.Context()
	storeErr := errors.New("connection refused")

	next := teammock.NewRepository(t)
	next.On("ListActive", mock.Anything).Return(nil, storeErr).Twice()

	breaker := NewBreaker("postgres", testBreakerConfig(), nil)
	repo := NewTeamRepository(next, breaker)

	for i := 0; i < 2; i++ {
		if _, err := repo.ListActive(ctx); !errors.Is(err, storeErr) {
			t.Fatalf("call %d: expected store error, got %v", i, err)
		}
	}
	if breaker.State() != resilience.CircuitStateOpen {
		t.Fatalf("expected open breaker, got %s", breaker.State())
	}

	_, err := repo.ListActive(ctx)
	if !errors.Is(err, usecase.ErrDependencyUnavailable) {
		t.Fatalf("expected dependency unavailable, got %v", err)
	}
	if !errors.Is(err, resilience.ErrCircuitOpen) {
		t.Fatalf("expected circuit open cause, got %v", err)
	}
}

func TestTeamRepositoryIgnoresDomainErrors(t *testing.T) {
	ctx := t.Context()
	item := team.Team{ID: "65f000000000000000000a01", Version: 2}

	next := teammock.NewRepository(t)
	next.On("Save", mock.Anything, item, int64(1)).Return(team.ErrVersionConflict).Times(3)
	next.On("Create", mock.Anything, item).Return(team.ErrDuplicateTeam).Times(3)

	breaker := NewBreaker("postgres", testBreakerConfig(), nil)
	repo := NewTeamRepository(next, breaker)

	for i := 0; i < 3; i++ {
		if err := repo.Save(ctx, item, 1); !errors.Is(err, team.ErrVersionConflict) {
			t.Fatalf("expected version conflict, got %v", err)
		}
		if err := repo.Create(ctx, item); !errors.Is(err, team.ErrDuplicateTeam) {
			t.Fatalf("expected duplicate team, got %v", err)
		}
	}
	if breaker.State() != resilience.CircuitStateClosed {
		t.Fatalf("domain errors must not trip the breaker, state=%s", breaker.State())
	}
}

func TestTeamRepositoryLookupKeepsExistsFlag(t *testing.T) {
	ctx := t.Context()
	item := team.Team{ID: "65f000000000000000000a01", Name: "Titans"}

	next := teammock.NewRepository(t)
	next.On("GetByID", mock.Anything, item.ID).Return(item, true, nil).Once()
	next.On("GetByID", mock.Anything, "65f000000000000000000a09").Return(team.Team{}, false, nil).Once()

	repo := NewTeamRepository(next, NewBreaker("mongo", testBreakerConfig(), nil))

	got, exists, err := repo.GetByID(ctx, item.ID)
	if err != nil || !exists || got.Name != "Titans" {
		t.Fatalf("unexpected lookup: team=%+v exists=%v err=%v", got, exists, err)
	}
	if _, exists, err := repo.GetByID(ctx, "65f000000000000000000a09"); err != nil || exists {
		t.Fatalf("expected missing team, exists=%v err=%v", exists, err)
	}
}

func TestDisabledBreakerPassesThrough(t *testing.T) {
	ctx := t.Context()
	storeErr := errors.New("timeout")

	next := teammock.NewRepository(t)
	next.On("ListActive", mock.Anything).Return(nil, storeErr).Times(5)

	cfg := testBreakerConfig()
	cfg.Enabled = false
	repo := NewTeamRepository(next, NewBreaker("postgres", cfg, nil))

	for i := 0; i < 5; i++ {
		if _, err := repo.ListActive(ctx); !errors.Is(err, storeErr) {
			t.Fatalf("expected raw store error, got %v", err)
		}
	}
}
