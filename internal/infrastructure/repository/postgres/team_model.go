package postgres

import (
	"time"

	"github.com/sportsdesk/teamhub/internal/domain/team"
)

const teamColumns = `public_id, name, name_key, short_name, captain, coach, established, home_ground,
contact_email, contact_phone, logo, total_matches, matches_won, matches_lost, matches_drawn,
is_active, created_by, version, created_at, updated_at`

const playerColumns = `public_id, team_public_id, position, jersey_number, name, role, age, experience, email, phone,
matches, runs, wickets, catches, stumps, average, strike_rate, economy, created_at, updated_at`

type teamTableModel struct {
	PublicID     string    `db:"public_id"`
	Name         string    `db:"name"`
	NameKey      string    `db:"name_key"`
	ShortName    string    `db:"short_name"`
	Captain      string    `db:"captain"`
	Coach        string    `db:"coach"`
	Established  string    `db:"established"`
	HomeGround   string    `db:"home_ground"`
	ContactEmail string    `db:"contact_email"`
	ContactPhone string    `db:"contact_phone"`
	Logo         string    `db:"logo"`
	TotalMatches int       `db:"total_matches"`
	MatchesWon   int       `db:"matches_won"`
	MatchesLost  int       `db:"matches_lost"`
	MatchesDrawn int       `db:"matches_drawn"`
	IsActive     bool      `db:"is_active"`
	CreatedBy    string    `db:"created_by"`
	Version      int64     `db:"version"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type playerTableModel struct {
	PublicID     string    `db:"public_id"`
	TeamPublicID string    `db:"team_public_id"`
	Position     int       `db:"position"`
	JerseyNumber int       `db:"jersey_number"`
	Name         string    `db:"name"`
	Role         string    `db:"role"`
	Age          int       `db:"age"`
	Experience   string    `db:"experience"`
	Email        string    `db:"email"`
	Phone        string    `db:"phone"`
	Matches      int       `db:"matches"`
	Runs         int       `db:"runs"`
	Wickets      int       `db:"wickets"`
	Catches      int       `db:"catches"`
	Stumps       int       `db:"stumps"`
	Average      float64   `db:"average"`
	StrikeRate   float64   `db:"strike_rate"`
	Economy      float64   `db:"economy"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func teamRowFromDomain(t team.Team) teamTableModel {
	return teamTableModel{
		PublicID:     t.ID,
		Name:         t.Name,
		NameKey:      t.NameKey(),
		ShortName:    t.ShortName,
		Captain:      t.Captain,
		Coach:        t.Coach,
		Established:  t.Established,
		HomeGround:   t.HomeGround,
		ContactEmail: t.ContactEmail,
		ContactPhone: t.ContactPhone,
		Logo:         t.Logo,
		TotalMatches: t.Record.TotalMatches,
		MatchesWon:   t.Record.MatchesWon,
		MatchesLost:  t.Record.MatchesLost,
		MatchesDrawn: t.Record.MatchesDrawn,
		IsActive:     t.IsActive,
		CreatedBy:    t.CreatedBy,
		Version:      t.Version,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

func (m teamTableModel) toDomain(players []team.Player) team.Team {
	if players == nil {
		players = []team.Player{}
	}
	return team.Team{
		ID:           m.PublicID,
		Name:         m.Name,
		ShortName:    m.ShortName,
		Captain:      m.Captain,
		Coach:        m.Coach,
		Established:  m.Established,
		HomeGround:   m.HomeGround,
		ContactEmail: m.ContactEmail,
		ContactPhone: m.ContactPhone,
		Logo:         m.Logo,
		Players:      players,
		Record: team.Record{
			TotalMatches: m.TotalMatches,
			MatchesWon:   m.MatchesWon,
			MatchesLost:  m.MatchesLost,
			MatchesDrawn: m.MatchesDrawn,
		},
		IsActive:  m.IsActive,
		CreatedBy: m.CreatedBy,
		Version:   m.Version,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func playerRowsFromTeam(t team.Team) []playerTableModel {
	rows := make([]playerTableModel, 0, len(t.Players))
	for idx, p := range t.Players {
		rows = append(rows, playerTableModel{
			PublicID:     p.ID,
			TeamPublicID: t.ID,
			Position:     idx,
			JerseyNumber: p.JerseyNumber,
			Name:         p.Name,
			Role:         string(p.Role),
			Age:          p.Age,
			Experience:   p.Experience,
			Email:        p.Email,
			Phone:        p.Phone,
			Matches:      p.Stats.Matches,
			Runs:         p.Stats.Runs,
			Wickets:      p.Stats.Wickets,
			Catches:      p.Stats.Catches,
			Stumps:       p.Stats.Stumps,
			Average:      p.Stats.Average,
			StrikeRate:   p.Stats.StrikeRate,
			Economy:      p.Stats.Economy,
			CreatedAt:    p.CreatedAt,
			UpdatedAt:    p.UpdatedAt,
		})
	}
	return rows
}

func (m playerTableModel) toDomain() team.Player {
	return team.Player{
		ID:           m.PublicID,
		JerseyNumber: m.JerseyNumber,
		Name:         m.Name,
		Role:         team.Role(m.Role),
		Age:          m.Age,
		Experience:   m.Experience,
		Email:        m.Email,
		Phone:        m.Phone,
		Stats: team.PlayerStats{
			Matches:    m.Matches,
			Runs:       m.Runs,
			Wickets:    m.Wickets,
			Catches:    m.Catches,
			Stumps:     m.Stumps,
			Average:    m.Average,
			StrikeRate: m.StrikeRate,
			Economy:    m.Economy,
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
