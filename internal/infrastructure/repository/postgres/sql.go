package postgres

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/sportsdesk/teamhub/internal/domain/admin"
	"github.com/sportsdesk/teamhub/internal/domain/scoring"
	"github.com/sportsdesk/teamhub/internal/domain/team"
)

const uniqueViolation = pq.ErrorCode("23505")

// Constraint and index names from db/migrations.
const (
	constraintTeamNameKey      = "uq_teams_active_name_key"
	constraintTeamShortName    = "uq_teams_active_short_name"
	constraintPlayerJersey     = "uq_team_players_jersey"
	constraintDeliverySequence = "uq_match_deliveries_sequence"
	constraintSuperAdminEmail  = "uq_super_admins_email"
	constraintSubAdminEmail    = "uq_sub_admins_email_sport"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func uniqueConstraint(err error) (string, bool) {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) || pqErr.Code != uniqueViolation {
		return "", false
	}
	return pqErr.Constraint, true
}

// mapWriteError turns unique violations into the matching domain error and
// passes everything else through.
func mapWriteError(err error) error {
	constraint, ok := uniqueConstraint(err)
	if !ok {
		return err
	}

	switch constraint {
	case constraintTeamNameKey, constraintTeamShortName:
		return team.ErrDuplicateTeam
	case constraintPlayerJersey:
		return team.ErrDuplicateJersey
	case constraintDeliverySequence:
		return scoring.ErrSequenceConflict
	case constraintSuperAdminEmail, constraintSubAdminEmail:
		return admin.ErrDuplicateEmail
	default:
		return err
	}
}
