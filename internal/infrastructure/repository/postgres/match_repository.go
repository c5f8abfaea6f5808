package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/sportsdesk/teamhub/internal/domain/match"
	qb "github.com/sportsdesk/teamhub/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) List(ctx context.Context, filter match.Filter) ([]match.Match, error) {
	var conditions []qb.Condition
	if filter.Status != "" {
		conditions = append(conditions, qb.Eq("status", string(filter.Status)))
	}
	if filter.TeamID != "" {
		conditions = append(conditions, qb.Or(
			qb.Eq("team_a_public_id", filter.TeamID),
			qb.Eq("team_b_public_id", filter.TeamID),
		))
	}

	query, args, err := qb.Select(matchColumns).From("matches").
		Where(conditions...).
		OrderBy("match_date DESC", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	query, args, err := qb.Select(matchColumns).From("matches").
		Where(qb.Eq("public_id", matchID)).
		Limit(1).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build select match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match: %w", err)
	}
	return row.toDomain(), true, nil
}

func (r *MatchRepository) Create(ctx context.Context, m match.Match) error {
	query, args, err := qb.InsertModel("matches", matchRowFromDomain(m), "")
	if err != nil {
		return fmt.Errorf("build insert match query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert match: %w", mapWriteError(err))
	}
	return nil
}

func (r *MatchRepository) Update(ctx context.Context, m match.Match, expectedVersion int64) error {
	row := matchRowFromDomain(m)
	query, args, err := qb.Update("matches").
		Set("match_date", row.MatchDate).
		Set("venue", row.Venue).
		Set("overs", row.Overs).
		Set("status", row.Status).
		Set("team_a_runs", row.TeamARuns).
		Set("team_a_wickets", row.TeamAWickets).
		Set("team_b_runs", row.TeamBRuns).
		Set("team_b_wickets", row.TeamBWickets).
		Set("score_overs", row.ScoreOvers).
		Set("ledger_sequence", row.LedgerSequence).
		Set("winner_team_public_id", row.WinnerTeamID).
		Set("is_draw", row.IsDraw).
		Set("has_result", row.HasResult).
		Set("version", row.Version).
		Set("updated_at", row.UpdatedAt).
		Where(
			qb.Eq("public_id", row.PublicID),
			qb.Eq("version", expectedVersion),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update match query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update match: %w", mapWriteError(err))
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update match rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: match=%s expected version=%d", match.ErrVersionConflict, m.ID, expectedVersion)
	}
	return nil
}

func (r *MatchRepository) Delete(ctx context.Context, matchID string) error {
	query, args, err := qb.DeleteFrom("matches").
		Where(qb.Eq("public_id", matchID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete match query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete match: %w", err)
	}
	return nil
}
