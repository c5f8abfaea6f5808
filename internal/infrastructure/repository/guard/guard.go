package guard

import (
	"context"
	"errors"
	"fmt"

	"github.com/sportsdesk/teamhub/internal/domain/admin"
	"github.com/sportsdesk/teamhub/internal/domain/match"
	"github.com/sportsdesk/teamhub/internal/domain/scoring"
	"github.com/sportsdesk/teamhub/internal/domain/team"
	"github.com/sportsdesk/teamhub/internal/platform/logging"
	"github.com/sportsdesk/teamhub/internal/platform/resilience"
	"github.com/sportsdesk/teamhub/internal/usecase"
)

// Breaker trips after repeated store failures so requests fail fast with
// usecase.ErrDependencyUnavailable instead of piling onto a dead database.
type Breaker struct {
	breaker *resilience.CircuitBreaker
	enabled bool
	store   string
	logger  *logging.Logger
}

func NewBreaker(store string, cfg resilience.CircuitBreakerConfig, logger *logging.Logger) *Breaker {
	if logger == nil {
		logger = logging.Default()
	}
	cfg = resilience.NormalizeCircuitBreakerConfig(cfg)

	return &Breaker{
		breaker: resilience.NewCircuitBreaker(cfg.FailureThreshold, cfg.OpenTimeout, cfg.HalfOpenMaxReq),
		enabled: cfg.Enabled,
		store:   store,
		logger:  logger,
	}
}

func (b *Breaker) State() resilience.CircuitState {
	return b.breaker.State()
}

// domainErrors are expected outcomes of a healthy store.
var domainErrors = []error{
	team.ErrDuplicateTeam,
	team.ErrDuplicateJersey,
	team.ErrVersionConflict,
	match.ErrVersionConflict,
	scoring.ErrSequenceConflict,
	admin.ErrDuplicateEmail,
	context.Canceled,
}

func isStoreFailure(err error) bool {
	for _, target := range domainErrors {
		if errors.Is(err, target) {
			return false
		}
	}
	return true
}

func run[T any](ctx context.Context, b *Breaker, op string, fn func() (T, error)) (T, error) {
	var out T
	if !b.enabled {
		return fn()
	}

	err := b.breaker.Execute(func() error {
		var callErr error
		out, callErr = fn()
		return callErr
	}, isStoreFailure)
	if errors.Is(err, resilience.ErrCircuitOpen) {
		b.logger.WarnContext(ctx, "store circuit open, rejecting call", "store", b.store, "operation", op)
		var zero T
		return zero, fmt.Errorf("%w: %s store: %w", usecase.ErrDependencyUnavailable, b.store, err)
	}
	return out, err
}

func exec(ctx context.Context, b *Breaker, op string, fn func() error) error {
	_, err := run(ctx, b, op, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}

// found carries the (value, exists) pair through run.
type found[T any] struct {
	value  T
	exists bool
}

func lookup[T any](ctx context.Context, b *Breaker, op string, fn func() (T, bool, error)) (T, bool, error) {
	res, err := run(ctx, b, op, func() (found[T], error) {
		value, exists, err := fn()
		return found[T]{value: value, exists: exists}, err
	})
	return res.value, res.exists, err
}
