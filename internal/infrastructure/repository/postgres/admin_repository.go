package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sportsdesk/teamhub/internal/domain/admin"
	qb "github.com/sportsdesk/teamhub/internal/platform/querybuilder"
)

type SuperAdminRepository struct {
	db *sqlx.DB
}

func NewSuperAdminRepository(db *sqlx.DB) *SuperAdminRepository {
	return &SuperAdminRepository{db: db}
}

func (r *SuperAdminRepository) GetByID(ctx context.Context, adminID string) (admin.SuperAdmin, bool, error) {
	return r.getOne(ctx, qb.Eq("public_id", adminID))
}

func (r *SuperAdminRepository) GetByEmail(ctx context.Context, email string) (admin.SuperAdmin, bool, error) {
	return r.getOne(ctx, qb.Eq("email", email))
}

func (r *SuperAdminRepository) getOne(ctx context.Context, cond qb.Condition) (admin.SuperAdmin, bool, error) {
	query, args, err := qb.Select(superAdminColumns).From("super_admins").
		Where(cond).
		Limit(1).
		ToSQL()
	if err != nil {
		return admin.SuperAdmin{}, false, fmt.Errorf("build select super admin query: %w", err)
	}

	var row superAdminTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return admin.SuperAdmin{}, false, nil
		}
		return admin.SuperAdmin{}, false, fmt.Errorf("get super admin: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *SuperAdminRepository) Create(ctx context.Context, a admin.SuperAdmin) error {
	query, args, err := qb.InsertModel("super_admins", superAdminRowFromDomain(a), "")
	if err != nil {
		return fmt.Errorf("build insert super admin query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert super admin: %w", mapWriteError(err))
	}
	return nil
}

func (r *SuperAdminRepository) TouchLogin(ctx context.Context, adminID string, at time.Time) error {
	return touchLogin(ctx, r.db, "super_admins", adminID, at)
}

func (r *SuperAdminRepository) Count(ctx context.Context) (int, error) {
	query, args, err := qb.Select("COUNT(1)").From("super_admins").ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count super admins query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count super admins: %w", err)
	}
	return count, nil
}

type SubAdminRepository struct {
	db *sqlx.DB
}

func NewSubAdminRepository(db *sqlx.DB) *SubAdminRepository {
	return &SubAdminRepository{db: db}
}

func (r *SubAdminRepository) GetByID(ctx context.Context, adminID string) (admin.SubAdmin, bool, error) {
	return r.getOne(ctx, qb.Eq("public_id", adminID))
}

func (r *SubAdminRepository) GetByEmail(ctx context.Context, email string, sport admin.Sport) (admin.SubAdmin, bool, error) {
	return r.getOne(ctx, qb.Eq("email", email), qb.Eq("sport", string(sport)))
}

func (r *SubAdminRepository) getOne(ctx context.Context, conditions ...qb.Condition) (admin.SubAdmin, bool, error) {
	query, args, err := qb.Select(subAdminColumns).From("sub_admins").
		Where(conditions...).
		Limit(1).
		ToSQL()
	if err != nil {
		return admin.SubAdmin{}, false, fmt.Errorf("build select sub admin query: %w", err)
	}

	var row subAdminTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return admin.SubAdmin{}, false, nil
		}
		return admin.SubAdmin{}, false, fmt.Errorf("get sub admin: %w", err)
	}

	out, err := row.toDomain()
	if err != nil {
		return admin.SubAdmin{}, false, fmt.Errorf("decode sub admin %s permissions: %w", row.PublicID, err)
	}
	return out, true, nil
}

func (r *SubAdminRepository) List(ctx context.Context, sport admin.Sport) ([]admin.SubAdmin, error) {
	var conditions []qb.Condition
	if sport != "" {
		conditions = append(conditions, qb.Eq("sport", string(sport)))
	}

	query, args, err := qb.Select(subAdminColumns).From("sub_admins").
		Where(conditions...).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select sub admins query: %w", err)
	}

	var rows []subAdminTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select sub admins: %w", err)
	}

	out := make([]admin.SubAdmin, 0, len(rows))
	for _, row := range rows {
		item, err := row.toDomain()
		if err != nil {
			return nil, fmt.Errorf("decode sub admin %s permissions: %w", row.PublicID, err)
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *SubAdminRepository) Create(ctx context.Context, a admin.SubAdmin) error {
	row, err := subAdminRowFromDomain(a)
	if err != nil {
		return fmt.Errorf("encode sub admin permissions: %w", err)
	}
	query, args, err := qb.InsertModel("sub_admins", row, "")
	if err != nil {
		return fmt.Errorf("build insert sub admin query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert sub admin: %w", mapWriteError(err))
	}
	return nil
}

func (r *SubAdminRepository) Update(ctx context.Context, a admin.SubAdmin) error {
	row, err := subAdminRowFromDomain(a)
	if err != nil {
		return fmt.Errorf("encode sub admin permissions: %w", err)
	}
	query, args, err := qb.Update("sub_admins").
		Set("name", row.Name).
		Set("password_hash", row.PasswordHash).
		Set("specialization", row.Specialization).
		SetExpr("permissions", "?::jsonb", row.Permissions).
		Set("is_active", row.IsActive).
		Set("updated_at", row.UpdatedAt).
		Where(qb.Eq("public_id", row.PublicID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update sub admin query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update sub admin: %w", mapWriteError(err))
	}
	return nil
}

func (r *SubAdminRepository) TouchLogin(ctx context.Context, adminID string, at time.Time) error {
	return touchLogin(ctx, r.db, "sub_admins", adminID, at)
}

func touchLogin(ctx context.Context, db *sqlx.DB, table, adminID string, at time.Time) error {
	query, args, err := qb.Update(table).
		Set("last_login_at", at).
		Where(qb.Eq("public_id", adminID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build touch login query: %w", err)
	}
	if _, err := db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("touch %s login: %w", table, err)
	}
	return nil
}
