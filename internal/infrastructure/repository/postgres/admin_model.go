package postgres

import (
	"database/sql"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/sportsdesk/teamhub/internal/domain/admin"
)

const superAdminColumns = `public_id, name, email, password_hash, last_login_at, created_at, updated_at`

const subAdminColumns = `public_id, name, email, password_hash, sport, specialization, permissions,
is_active, created_by, last_login_at, created_at, updated_at`

type superAdminTableModel struct {
	PublicID     string       `db:"public_id"`
	Name         string       `db:"name"`
	Email        string       `db:"email"`
	PasswordHash string       `db:"password_hash"`
	LastLoginAt  sql.NullTime `db:"last_login_at"`
	CreatedAt    time.Time    `db:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at"`
}

type subAdminTableModel struct {
	PublicID       string       `db:"public_id"`
	Name           string       `db:"name"`
	Email          string       `db:"email"`
	PasswordHash   string       `db:"password_hash"`
	Sport          string       `db:"sport"`
	Specialization string       `db:"specialization"`
	Permissions    string       `db:"permissions"`
	IsActive       bool         `db:"is_active"`
	CreatedBy      string       `db:"created_by"`
	LastLoginAt    sql.NullTime `db:"last_login_at"`
	CreatedAt      time.Time    `db:"created_at"`
	UpdatedAt      time.Time    `db:"updated_at"`
}

// permissionsDocument is the JSONB shape of sub_admins.permissions.
type permissionsDocument struct {
	ManageTeams   bool `json:"manageTeams"`
	ManagePlayers bool `json:"managePlayers"`
	ViewReports   bool `json:"viewReports"`
	ManageMatches bool `json:"manageMatches"`
}

func encodePermissions(p admin.Permissions) (string, error) {
	return jsoniter.MarshalToString(permissionsDocument{
		ManageTeams:   p.ManageTeams,
		ManagePlayers: p.ManagePlayers,
		ViewReports:   p.ViewReports,
		ManageMatches: p.ManageMatches,
	})
}

func decodePermissions(raw string) (admin.Permissions, error) {
	var doc permissionsDocument
	if raw != "" {
		if err := jsoniter.UnmarshalFromString(raw, &doc); err != nil {
			return admin.Permissions{}, err
		}
	}
	return admin.Permissions{
		ManageTeams:   doc.ManageTeams,
		ManagePlayers: doc.ManagePlayers,
		ViewReports:   doc.ViewReports,
		ManageMatches: doc.ManageMatches,
	}, nil
}

func nullTimePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time.UTC()
	return &t
}

func (m superAdminTableModel) toDomain() admin.SuperAdmin {
	return admin.SuperAdmin{
		ID:           m.PublicID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		LastLoginAt:  nullTimePtr(m.LastLoginAt),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func (m subAdminTableModel) toDomain() (admin.SubAdmin, error) {
	perms, err := decodePermissions(m.Permissions)
	if err != nil {
		return admin.SubAdmin{}, err
	}
	return admin.SubAdmin{
		ID:             m.PublicID,
		Name:           m.Name,
		Email:          m.Email,
		PasswordHash:   m.PasswordHash,
		Sport:          admin.Sport(m.Sport),
		Specialization: admin.Specialization(m.Specialization),
		Permissions:    perms,
		IsActive:       m.IsActive,
		CreatedBy:      m.CreatedBy,
		LastLoginAt:    nullTimePtr(m.LastLoginAt),
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}, nil
}

func subAdminRowFromDomain(a admin.SubAdmin) (subAdminTableModel, error) {
	perms, err := encodePermissions(a.Permissions)
	if err != nil {
		return subAdminTableModel{}, err
	}
	return subAdminTableModel{
		PublicID:       a.ID,
		Name:           a.Name,
		Email:          a.Email,
		PasswordHash:   a.PasswordHash,
		Sport:          string(a.Sport),
		Specialization: string(a.Specialization),
		Permissions:    perms,
		IsActive:       a.IsActive,
		CreatedBy:      a.CreatedBy,
		LastLoginAt:    timePtrToNull(a.LastLoginAt),
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}, nil
}

func superAdminRowFromDomain(a admin.SuperAdmin) superAdminTableModel {
	return superAdminTableModel{
		PublicID:     a.ID,
		Name:         a.Name,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		LastLoginAt:  timePtrToNull(a.LastLoginAt),
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}

func timePtrToNull(v *time.Time) sql.NullTime {
	if v == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *v, Valid: true}
}
