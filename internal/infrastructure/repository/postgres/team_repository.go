package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/sportsdesk/teamhub/internal/domain/team"
	qb "github.com/sportsdesk/teamhub/internal/platform/querybuilder"
)

type TeamRepository struct {
	db *sqlx.DB
}

func NewTeamRepository(db *sqlx.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) ListActive(ctx context.Context) ([]team.Team, error) {
	query, args, err := qb.Select(teamColumns).From("teams").
		Where(qb.Eq("is_active", true)).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select active teams query: %w", err)
	}

	var rows []teamTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select active teams: %w", err)
	}
	if len(rows) == 0 {
		return []team.Team{}, nil
	}

	teamIDs := make([]any, 0, len(rows))
	for _, row := range rows {
		teamIDs = append(teamIDs, row.PublicID)
	}
	rosters, err := r.listPlayers(ctx, teamIDs)
	if err != nil {
		return nil, err
	}

	out := make([]team.Team, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain(rosters[row.PublicID]))
	}
	return out, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	query, args, err := qb.Select(teamColumns).From("teams").
		Where(qb.Eq("public_id", teamID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build select team query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team: %w", err)
	}

	rosters, err := r.listPlayers(ctx, []any{teamID})
	if err != nil {
		return team.Team{}, false, err
	}
	return row.toDomain(rosters[teamID]), true, nil
}

func (r *TeamRepository) FindActiveConflict(ctx context.Context, nameKey, shortName, excludeTeamID string) (team.Team, bool, error) {
	conditions := []qb.Condition{
		qb.Eq("is_active", true),
		qb.Or(qb.Eq("name_key", nameKey), qb.Eq("short_name", shortName)),
	}
	if excludeTeamID != "" {
		conditions = append(conditions, qb.Ne("public_id", excludeTeamID))
	}

	query, args, err := qb.Select(teamColumns).From("teams").
		Where(conditions...).
		OrderBy("id").
		Limit(1).
		ToSQL()
	if err != nil {
		return team.Team{}, false, fmt.Errorf("build select team conflict query: %w", err)
	}

	var row teamTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team conflict: %w", err)
	}
	// Conflicts are reported by name only, the roster is not needed.
	return row.toDomain(nil), true, nil
}

func (r *TeamRepository) Create(ctx context.Context, item team.Team) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create team tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := qb.InsertModel("teams", teamRowFromDomain(item), "")
	if err != nil {
		return fmt.Errorf("build insert team query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert team: %w", mapWriteError(err))
	}
	if err := insertPlayers(ctx, tx, item); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create team tx: %w", err)
	}
	return nil
}

const updateTeamQuery = `
UPDATE teams
SET name = :name,
    name_key = :name_key,
    short_name = :short_name,
    captain = :captain,
    coach = :coach,
    established = :established,
    home_ground = :home_ground,
    contact_email = :contact_email,
    contact_phone = :contact_phone,
    logo = :logo,
    total_matches = :total_matches,
    matches_won = :matches_won,
    matches_lost = :matches_lost,
    matches_drawn = :matches_drawn,
    is_active = :is_active,
    version = :version,
    updated_at = :updated_at
WHERE public_id = :public_id
  AND version = :expected_version`

type teamUpdateModel struct {
	teamTableModel
	ExpectedVersion int64 `db:"expected_version"`
}

// Save rewrites the team row and its roster in one transaction. The roster
// is replaced wholesale so positions always follow the aggregate order.
func (r *TeamRepository) Save(ctx context.Context, item team.Team, expectedVersion int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save team tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query, args, err := sqlx.Named(updateTeamQuery, teamUpdateModel{
		teamTableModel:  teamRowFromDomain(item),
		ExpectedVersion: expectedVersion,
	})
	if err != nil {
		return fmt.Errorf("build update team query: %w", err)
	}
	res, err := tx.ExecContext(ctx, tx.Rebind(query), args...)
	if err != nil {
		return fmt.Errorf("update team: %w", mapWriteError(err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update team rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: team=%s expected version=%d", team.ErrVersionConflict, item.ID, expectedVersion)
	}

	deleteQuery, deleteArgs, err := qb.DeleteFrom("team_players").
		Where(qb.Eq("team_public_id", item.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete team players query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deleteQuery, deleteArgs...); err != nil {
		return fmt.Errorf("delete team players: %w", err)
	}
	if err := insertPlayers(ctx, tx, item); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save team tx: %w", err)
	}
	return nil
}

func insertPlayers(ctx context.Context, tx *sqlx.Tx, item team.Team) error {
	rows := playerRowsFromTeam(item)
	if len(rows) == 0 {
		return nil
	}

	query, args, err := qb.InsertModels("team_players", rows, "")
	if err != nil {
		return fmt.Errorf("build insert team players query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert team players: %w", mapWriteError(err))
	}
	return nil
}

func (r *TeamRepository) listPlayers(ctx context.Context, teamIDs []any) (map[string][]team.Player, error) {
	query, args, err := qb.Select(playerColumns).From("team_players").
		Where(qb.In("team_public_id", teamIDs)).
		OrderBy("team_public_id", "position").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select team players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select team players: %w", err)
	}

	out := make(map[string][]team.Player, len(teamIDs))
	for _, row := range rows {
		out[row.TeamPublicID] = append(out[row.TeamPublicID], row.toDomain())
	}
	return out, nil
}
