package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/sportsdesk/teamhub/internal/domain/admin"
)

type SuperAdminRepository struct {
	mu    sync.RWMutex
	items map[string]admin.SuperAdmin
}

func NewSuperAdminRepository() *SuperAdminRepository {
	return &SuperAdminRepository{items: make(map[string]admin.SuperAdmin)}
}

func (r *SuperAdminRepository) GetByID(_ context.Context, adminID string) (admin.SuperAdmin, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[adminID]
	return item, ok, nil
}

func (r *SuperAdminRepository) GetByEmail(_ context.Context, email string) (admin.SuperAdmin, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.Email == email {
			return item, true, nil
		}
	}
	return admin.SuperAdmin{}, false, nil
}

func (r *SuperAdminRepository) Create(_ context.Context, a admin.SuperAdmin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range r.items {
		if item.Email == a.Email {
			return admin.ErrDuplicateEmail
		}
	}
	r.items[a.ID] = a
	return nil
}

func (r *SuperAdminRepository) TouchLogin(_ context.Context, adminID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[adminID]
	if !ok {
		return nil
	}
	item.LastLoginAt = &at
	r.items[adminID] = item
	return nil
}

func (r *SuperAdminRepository) Count(_ context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items), nil
}

type SubAdminRepository struct {
	mu    sync.RWMutex
	items map[string]admin.SubAdmin
}

func NewSubAdminRepository() *SubAdminRepository {
	return &SubAdminRepository{items: make(map[string]admin.SubAdmin)}
}

func (r *SubAdminRepository) GetByID(_ context.Context, adminID string) (admin.SubAdmin, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[adminID]
	return item, ok, nil
}

func (r *SubAdminRepository) GetByEmail(_ context.Context, email string, sport admin.Sport) (admin.SubAdmin, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items {
		if item.Email == email && item.Sport == sport {
			return item, true, nil
		}
	}
	return admin.SubAdmin{}, false, nil
}

func (r *SubAdminRepository) List(_ context.Context, sport admin.Sport) ([]admin.SubAdmin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]admin.SubAdmin, 0, len(r.items))
	for _, item := range r.items {
		if sport != "" && item.Sport != sport {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *SubAdminRepository) Create(_ context.Context, a admin.SubAdmin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range r.items {
		if item.Email == a.Email && item.Sport == a.Sport {
			return admin.ErrDuplicateEmail
		}
	}
	r.items[a.ID] = a
	return nil
}

func (r *SubAdminRepository) Update(_ context.Context, a admin.SubAdmin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[a.ID]; !ok {
		return nil
	}
	r.items[a.ID] = a
	return nil
}

func (r *SubAdminRepository) TouchLogin(_ context.Context, adminID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[adminID]
	if !ok {
		return nil
	}
	item.LastLoginAt = &at
	r.items[adminID] = item
	return nil
}
