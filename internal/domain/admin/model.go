package admin

import (
	"strings"
	"time"
)

type Role string

const (
	RoleSuperAdmin Role = "superadmin"
	RoleSubAdmin   Role = "subadmin"
)

type Sport string

const (
	SportCricket     Sport = "cricket"
	SportFootball    Sport = "football"
	SportBasketball  Sport = "basketball"
	SportBadminton   Sport = "badminton"
	SportHockey      Sport = "hockey"
	SportVolleyball  Sport = "volleyball"
	SportTableTennis Sport = "table_tennis"
	SportTennis      Sport = "tennis"
)

var AllSports = map[Sport]struct{}{
	SportCricket:     {},
	SportFootball:    {},
	SportBasketball:  {},
	SportBadminton:   {},
	SportHockey:      {},
	SportVolleyball:  {},
	SportTableTennis: {},
	SportTennis:      {},
}

type Specialization string

const (
	SpecializationTeamManagement  Specialization = "team_management"
	SpecializationMatchOperations Specialization = "match_operations"
	SpecializationScoring         Specialization = "scoring"
	SpecializationAnalytics       Specialization = "analytics"
)

var AllSpecializations = map[Specialization]struct{}{
	SpecializationTeamManagement:  {},
	SpecializationMatchOperations: {},
	SpecializationScoring:         {},
	SpecializationAnalytics:       {},
}

// Capability is a single permission checked by protected routes.
type Capability string

const (
	CapManageTeams   Capability = "manageTeams"
	CapManagePlayers Capability = "managePlayers"
	CapViewReports   Capability = "viewReports"
	CapManageMatches Capability = "manageMatches"
)

type Permissions struct {
	ManageTeams   bool
	ManagePlayers bool
	ViewReports   bool
	ManageMatches bool
}

func AllPermissions() Permissions {
	return Permissions{ManageTeams: true, ManagePlayers: true, ViewReports: true, ManageMatches: true}
}

// DefaultPermissions is granted to new sub-admins unless the creator says otherwise.
func DefaultPermissions() Permissions {
	return Permissions{ManageTeams: true, ManagePlayers: true, ViewReports: true}
}

func (p Permissions) Allows(c Capability) bool {
	switch c {
	case CapManageTeams:
		return p.ManageTeams
	case CapManagePlayers:
		return p.ManagePlayers
	case CapViewReports:
		return p.ViewReports
	case CapManageMatches:
		return p.ManageMatches
	default:
		return false
	}
}

type SuperAdmin struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (a SuperAdmin) Principal() Principal {
	return Principal{
		ID:          a.ID,
		Name:        a.Name,
		Email:       a.Email,
		Role:        RoleSuperAdmin,
		Permissions: AllPermissions(),
	}
}

type SubAdmin struct {
	ID             string
	Name           string
	Email          string
	PasswordHash   string
	Sport          Sport
	Specialization Specialization
	Permissions    Permissions
	IsActive       bool
	CreatedBy      string
	LastLoginAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (a SubAdmin) Principal() Principal {
	return Principal{
		ID:          a.ID,
		Name:        a.Name,
		Email:       a.Email,
		Role:        RoleSubAdmin,
		Sport:       a.Sport,
		Permissions: a.Permissions,
	}
}

// Principal is the authenticated caller attached to a request.
type Principal struct {
	ID          string
	Name        string
	Email       string
	Role        Role
	Sport       Sport
	Permissions Permissions
}

func (p Principal) IsSuperAdmin() bool {
	return p.Role == RoleSuperAdmin
}

// Can reports whether the principal may use capability c on the given sport.
// Super admins can do everything; sub-admins are bound to their own sport.
func (p Principal) Can(c Capability, sport Sport) bool {
	switch p.Role {
	case RoleSuperAdmin:
		return true
	case RoleSubAdmin:
		return p.Sport == sport && p.Permissions.Allows(c)
	default:
		return false
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
