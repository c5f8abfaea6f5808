package admin

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
)

// ErrDuplicateEmail is returned by repositories on a unique email violation.
var ErrDuplicateEmail = errors.New("email already registered")

type SuperAdminRepository interface {
	GetByID(ctx context.Context, adminID string) (SuperAdmin, bool, error)
	GetByEmail(ctx context.Context, email string) (SuperAdmin, bool, error)
	Create(ctx context.Context, a SuperAdmin) error
	TouchLogin(ctx context.Context, adminID string, at time.Time) error
	Count(ctx context.Context) (int, error)
}

type SubAdminRepository interface {
	GetByID(ctx context.Context, adminID string) (SubAdmin, bool, error)
	// GetByEmail looks up a sub-admin within one sport; emails are unique per sport.
	GetByEmail(ctx context.Context, email string, sport Sport) (SubAdmin, bool, error)
	// List returns sub-admins ordered by creation; an empty sport lists all.
	List(ctx context.Context, sport Sport) ([]SubAdmin, error)
	Create(ctx context.Context, a SubAdmin) error
	Update(ctx context.Context, a SubAdmin) error
	TouchLogin(ctx context.Context, adminID string, at time.Time) error
}
