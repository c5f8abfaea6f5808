package postgres

import (
	"database/sql"
	"time"

	"github.com/sportsdesk/teamhub/internal/domain/match"
	"github.com/sportsdesk/teamhub/internal/domain/scoring"
)

const matchColumns = `public_id, team_a_public_id, team_b_public_id, match_date, venue, overs, status,
team_a_runs, team_a_wickets, team_b_runs, team_b_wickets, score_overs, ledger_sequence,
winner_team_public_id, is_draw, has_result, created_by, version, created_at, updated_at`

const deliveryColumns = `public_id, match_public_id, innings, sequence, batting_team_public_id, runs, extras,
extra_type, is_wicket, dismissal_type, batsman_id, bowler_id, commentary, created_at`

type matchTableModel struct {
	PublicID       string         `db:"public_id"`
	TeamAID        string         `db:"team_a_public_id"`
	TeamBID        string         `db:"team_b_public_id"`
	MatchDate      time.Time      `db:"match_date"`
	Venue          string         `db:"venue"`
	Overs          int            `db:"overs"`
	Status         string         `db:"status"`
	TeamARuns      int            `db:"team_a_runs"`
	TeamAWickets   int            `db:"team_a_wickets"`
	TeamBRuns      int            `db:"team_b_runs"`
	TeamBWickets   int            `db:"team_b_wickets"`
	ScoreOvers     string         `db:"score_overs"`
	LedgerSequence int            `db:"ledger_sequence"`
	WinnerTeamID   sql.NullString `db:"winner_team_public_id"`
	IsDraw         bool           `db:"is_draw"`
	HasResult      bool           `db:"has_result"`
	CreatedBy      string         `db:"created_by"`
	Version        int64          `db:"version"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

func matchRowFromDomain(m match.Match) matchTableModel {
	row := matchTableModel{
		PublicID:       m.ID,
		TeamAID:        m.TeamA,
		TeamBID:        m.TeamB,
		MatchDate:      m.Date,
		Venue:          m.Venue,
		Overs:          m.Overs,
		Status:         string(m.Status),
		TeamARuns:      m.Score.TeamA.Runs,
		TeamAWickets:   m.Score.TeamA.Wickets,
		TeamBRuns:      m.Score.TeamB.Runs,
		TeamBWickets:   m.Score.TeamB.Wickets,
		ScoreOvers:     m.Score.Overs,
		LedgerSequence: m.LedgerSequence,
		CreatedBy:      m.CreatedBy,
		Version:        m.Version,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	if m.Result != nil {
		row.HasResult = true
		row.IsDraw = m.Result.IsDraw
		row.WinnerTeamID = sql.NullString{String: m.Result.WinnerTeamID, Valid: m.Result.WinnerTeamID != ""}
	}
	return row
}

func (m matchTableModel) toDomain() match.Match {
	out := match.Match{
		ID:     m.PublicID,
		TeamA:  m.TeamAID,
		TeamB:  m.TeamBID,
		Date:   m.MatchDate.UTC(),
		Venue:  m.Venue,
		Overs:  m.Overs,
		Status: match.Status(m.Status),
		Score: match.Score{
			TeamA: match.SideScore{Runs: m.TeamARuns, Wickets: m.TeamAWickets},
			TeamB: match.SideScore{Runs: m.TeamBRuns, Wickets: m.TeamBWickets},
			Overs: m.ScoreOvers,
		},
		LedgerSequence: m.LedgerSequence,
		CreatedBy:      m.CreatedBy,
		Version:        m.Version,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	if m.HasResult {
		out.Result = &match.Result{WinnerTeamID: m.WinnerTeamID.String, IsDraw: m.IsDraw}
	}
	return out
}

type deliveryTableModel struct {
	PublicID      string    `db:"public_id"`
	MatchID       string    `db:"match_public_id"`
	Innings       int       `db:"innings"`
	Sequence      int       `db:"sequence"`
	BattingTeamID string    `db:"batting_team_public_id"`
	Runs          int       `db:"runs"`
	Extras        int       `db:"extras"`
	ExtraType     string    `db:"extra_type"`
	IsWicket      bool      `db:"is_wicket"`
	DismissalType string    `db:"dismissal_type"`
	BatsmanID     string    `db:"batsman_id"`
	BowlerID      string    `db:"bowler_id"`
	Commentary    string    `db:"commentary"`
	CreatedAt     time.Time `db:"created_at"`
}

func deliveryRowFromDomain(d scoring.Delivery) deliveryTableModel {
	return deliveryTableModel{
		PublicID:      d.ID,
		MatchID:       d.MatchID,
		Innings:       d.Innings,
		Sequence:      d.Sequence,
		BattingTeamID: d.BattingTeamID,
		Runs:          d.Runs,
		Extras:        d.Extras,
		ExtraType:     string(d.ExtraType),
		IsWicket:      d.IsWicket,
		DismissalType: d.DismissalType,
		BatsmanID:     d.BatsmanID,
		BowlerID:      d.BowlerID,
		Commentary:    d.Commentary,
		CreatedAt:     d.CreatedAt,
	}
}

func (m deliveryTableModel) toDomain() scoring.Delivery {
	return scoring.Delivery{
		ID:            m.PublicID,
		MatchID:       m.MatchID,
		Innings:       m.Innings,
		Sequence:      m.Sequence,
		BattingTeamID: m.BattingTeamID,
		Runs:          m.Runs,
		Extras:        m.Extras,
		ExtraType:     scoring.ExtraType(m.ExtraType),
		IsWicket:      m.IsWicket,
		DismissalType: m.DismissalType,
		BatsmanID:     m.BatsmanID,
		BowlerID:      m.BowlerID,
		Commentary:    m.Commentary,
		CreatedAt:     m.CreatedAt,
	}
}
