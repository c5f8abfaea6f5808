package guard

import (
	"context"
	"time"

	"github.com/sportsdesk/teamhub/internal/domain/admin"
	"github.com/sportsdesk/teamhub/internal/domain/match"
	"github.com/sportsdesk/teamhub/internal/domain/scoring"
	"github.com/sportsdesk/teamhub/internal/domain/team"
)

type TeamRepository struct {
	next team.Repository
	b    *Breaker
}

func NewTeamRepository(next team.Repository, b *Breaker) *TeamRepository {
	return &TeamRepository{next: next, b: b}
}

func (r *TeamRepository) ListActive(ctx context.Context) ([]team.Team, error) {
	return run(ctx, r.b, "team.ListActive", func() ([]team.Team, error) {
		return r.next.ListActive(ctx)
	})
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	return lookup(ctx, r.b, "team.GetByID", func() (team.Team, bool, error) {
		return r.next.GetByID(ctx, teamID)
	})
}

func (r *TeamRepository) FindActiveConflict(ctx context.Context, nameKey, shortName, excludeTeamID string) (team.Team, bool, error) {
	return lookup(ctx, r.b, "team.FindActiveConflict", func() (team.Team, bool, error) {
		return r.next.FindActiveConflict(ctx, nameKey, shortName, excludeTeamID)
	})
}

func (r *TeamRepository) Create(ctx context.Context, item team.Team) error {
	return exec(ctx, r.b, "team.Create", func() error {
		return r.next.Create(ctx, item)
	})
}

func (r *TeamRepository) Save(ctx context.Context, item team.Team, expectedVersion int64) error {
	return exec(ctx, r.b, "team.Save", func() error {
		return r.next.Save(ctx, item, expectedVersion)
	})
}

type MatchRepository struct {
	next match.Repository
	b    *Breaker
}

func NewMatchRepository(next match.Repository, b *Breaker) *MatchRepository {
	return &MatchRepository{next: next, b: b}
}

func (r *MatchRepository) List(ctx context.Context, filter match.Filter) ([]match.Match, error) {
	return run(ctx, r.b, "match.List", func() ([]match.Match, error) {
		return r.next.List(ctx, filter)
	})
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	return lookup(ctx, r.b, "match.GetByID", func() (match.Match, bool, error) {
		return r.next.GetByID(ctx, matchID)
	})
}

func (r *MatchRepository) Create(ctx context.Context, m match.Match) error {
	return exec(ctx, r.b, "match.Create", func() error {
		return r.next.Create(ctx, m)
	})
}

func (r *MatchRepository) Update(ctx context.Context, m match.Match, expectedVersion int64) error {
	return exec(ctx, r.b, "match.Update", func() error {
		return r.next.Update(ctx, m, expectedVersion)
	})
}

func (r *MatchRepository) Delete(ctx context.Context, matchID string) error {
	return exec(ctx, r.b, "match.Delete", func() error {
		return r.next.Delete(ctx, matchID)
	})
}

type DeliveryRepository struct {
	next scoring.Repository
	b    *Breaker
}

func NewDeliveryRepository(next scoring.Repository, b *Breaker) *DeliveryRepository {
	return &DeliveryRepository{next: next, b: b}
}

func (r *DeliveryRepository) ListByMatch(ctx context.Context, matchID string) ([]scoring.Delivery, error) {
	return run(ctx, r.b, "delivery.ListByMatch", func() ([]scoring.Delivery, error) {
		return r.next.ListByMatch(ctx, matchID)
	})
}

func (r *DeliveryRepository) CountByMatch(ctx context.Context, matchID string) (int, error) {
	return run(ctx, r.b, "delivery.CountByMatch", func() (int, error) {
		return r.next.CountByMatch(ctx, matchID)
	})
}

func (r *DeliveryRepository) Append(ctx context.Context, d scoring.Delivery) error {
	return exec(ctx, r.b, "delivery.Append", func() error {
		return r.next.Append(ctx, d)
	})
}

func (r *DeliveryRepository) DeleteLast(ctx context.Context, matchID string) (scoring.Delivery, bool, error) {
	return lookup(ctx, r.b, "delivery.DeleteLast", func() (scoring.Delivery, bool, error) {
		return r.next.DeleteLast(ctx, matchID)
	})
}

type SuperAdminRepository struct {
	next admin.SuperAdminRepository
	b    *Breaker
}

func NewSuperAdminRepository(next admin.SuperAdminRepository, b *Breaker) *SuperAdminRepository {
	return &SuperAdminRepository{next: next, b: b}
}

func (r *SuperAdminRepository) GetByID(ctx context.Context, adminID string) (admin.SuperAdmin, bool, error) {
	return lookup(ctx, r.b, "superadmin.GetByID", func() (admin.SuperAdmin, bool, error) {
		return r.next.GetByID(ctx, adminID)
	})
}

func (r *SuperAdminRepository) GetByEmail(ctx context.Context, email string) (admin.SuperAdmin, bool, error) {
	return lookup(ctx, r.b, "superadmin.GetByEmail", func() (admin.SuperAdmin, bool, error) {
		return r.next.GetByEmail(ctx, email)
	})
}

func (r *SuperAdminRepository) Create(ctx context.Context, a admin.SuperAdmin) error {
	return exec(ctx, r.b, "superadmin.Create", func() error {
		return r.next.Create(ctx, a)
	})
}

func (r *SuperAdminRepository) TouchLogin(ctx context.Context, adminID string, at time.Time) error {
	return exec(ctx, r.b, "superadmin.TouchLogin", func() error {
		return r.next.TouchLogin(ctx, adminID, at)
	})
}

func (r *SuperAdminRepository) Count(ctx context.Context) (int, error) {
	return run(ctx, r.b, "superadmin.Count", func() (int, error) {
		return r.next.Count(ctx)
	})
}

type SubAdminRepository struct {
	next admin.SubAdminRepository
	b    *Breaker
}

func NewSubAdminRepository(next admin.SubAdminRepository, b *Breaker) *SubAdminRepository {
	return &SubAdminRepository{next: next, b: b}
}

func (r *SubAdminRepository) GetByID(ctx context.Context, adminID string) (admin.SubAdmin, bool, error) {
	return lookup(ctx, r.b, "subadmin.GetByID", func() (admin.SubAdmin, bool, error) {
		return r.next.GetByID(ctx, adminID)
	})
}

func (r *SubAdminRepository) GetByEmail(ctx context.Context, email string, sport admin.Sport) (admin.SubAdmin, bool, error) {
	return lookup(ctx, r.b, "subadmin.GetByEmail", func() (admin.SubAdmin, bool, error) {
		return r.next.GetByEmail(ctx, email, sport)
	})
}

func (r *SubAdminRepository) List(ctx context.Context, sport admin.Sport) ([]admin.SubAdmin, error) {
	return run(ctx, r.b, "subadmin.List", func() ([]admin.SubAdmin, error) {
		return r.next.List(ctx, sport)
	})
}

func (r *SubAdminRepository) Create(ctx context.Context, a admin.SubAdmin) error {
	return exec(ctx, r.b, "subadmin.Create", func() error {
		return r.next.Create(ctx, a)
	})
}

func (r *SubAdminRepository) Update(ctx context.Context, a admin.SubAdmin) error {
	return exec(ctx, r.b, "subadmin.Update", func() error {
		return r.next.Update(ctx, a)
	})
}

func (r *SubAdminRepository) TouchLogin(ctx context.Context, adminID string, at time.Time) error {
	return exec(ctx, r.b, "subadmin.TouchLogin", func() error {
		return r.next.TouchLogin(ctx, adminID, at)
	})
}
