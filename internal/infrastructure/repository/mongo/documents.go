package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sportsdesk/teamhub/internal/domain/admin"
	"github.com/sportsdesk/teamhub/internal/domain/match"
	"github.com/sportsdesk/teamhub/internal/domain/scoring"
	"github.com/sportsdesk/teamhub/internal/domain/team"
)

type playerStatsDocument struct {
	Matches    int     `bson:"matches"`
	Runs       int     `bson:"runs"`
	Wickets    int     `bson:"wickets"`
	Catches    int     `bson:"catches"`
	Stumps     int     `bson:"stumps"`
	Average    float64 `bson:"average"`
	StrikeRate float64 `bson:"strikeRate"`
	Economy    float64 `bson:"economy"`
}

type playerDocument struct {
	ID           primitive.ObjectID  `bson:"_id"`
	JerseyNumber int                 `bson:"jerseyNumber"`
	Name         string              `bson:"name"`
	Role         string              `bson:"role"`
	Age          int                 `bson:"age"`
	Experience   string              `bson:"experience"`
	Email        string              `bson:"email,omitempty"`
	Phone        string              `bson:"phone,omitempty"`
	Stats        playerStatsDocument `bson:"stats"`
	CreatedAt    time.Time           `bson:"createdAt"`
	UpdatedAt    time.Time           `bson:"updatedAt"`
}

// teamDocument embeds the roster so a team is always written as one document.
type teamDocument struct {
	ID           primitive.ObjectID `bson:"_id"`
	Name         string             `bson:"name"`
	NameKey      string             `bson:"nameKey"`
	ShortName    string             `bson:"shortName"`
	Captain      string             `bson:"captain"`
	Coach        string             `bson:"coach"`
	Established  string             `bson:"established"`
	HomeGround   string             `bson:"homeGround"`
	ContactEmail string             `bson:"contactEmail"`
	ContactPhone string             `bson:"contactPhone"`
	Logo         string             `bson:"logo,omitempty"`
	Players      []playerDocument   `bson:"players"`
	TotalMatches int                `bson:"totalMatches"`
	MatchesWon   int                `bson:"matchesWon"`
	MatchesLost  int                `bson:"matchesLost"`
	MatchesDrawn int                `bson:"matchesDrawn"`
	IsActive     bool               `bson:"isActive"`
	CreatedBy    string             `bson:"createdBy"`
	Version      int64              `bson:"version"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

func teamDocumentFromDomain(t team.Team) (teamDocument, error) {
	teamID, err := requireID("team", t.ID)
	if err != nil {
		return teamDocument{}, err
	}

	players := make([]playerDocument, 0, len(t.Players))
	for _, p := range t.Players {
		playerID, err := requireID("player", p.ID)
		if err != nil {
			return teamDocument{}, err
		}
		players = append(players, playerDocument{
			ID:           playerID,
			JerseyNumber: p.JerseyNumber,
			Name:         p.Name,
			Role:         string(p.Role),
			Age:          p.Age,
			Experience:   p.Experience,
			Email:        p.Email,
			Phone:        p.Phone,
			Stats: playerStatsDocument{
				Matches:    p.Stats.Matches,
				Runs:       p.Stats.Runs,
				Wickets:    p.Stats.Wickets,
				Catches:    p.Stats.Catches,
				Stumps:     p.Stats.Stumps,
				Average:    p.Stats.Average,
				StrikeRate: p.Stats.StrikeRate,
				Economy:    p.Stats.Economy,
			},
			CreatedAt: p.CreatedAt,
			UpdatedAt: p.UpdatedAt,
		})
	}

	return teamDocument{
		ID:           teamID,
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
		Players:      players,
		TotalMatches: t.Record.TotalMatches,
		MatchesWon:   t.Record.MatchesWon,
		MatchesLost:  t.Record.MatchesLost,
		MatchesDrawn: t.Record.MatchesDrawn,
		IsActive:     t.IsActive,
		CreatedBy:    t.CreatedBy,
		Version:      t.Version,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}, nil
}

func (d teamDocument) toDomain() team.Team {
	players := make([]team.Player, 0, len(d.Players))
	for _, p := range d.Players {
		players = append(players, team.Player{
			ID:           p.ID.Hex(),
			JerseyNumber: p.JerseyNumber,
			Name:         p.Name,
			Role:         team.Role(p.Role),
			Age:          p.Age,
			Experience:   p.Experience,
			Email:        p.Email,
			Phone:        p.Phone,
			Stats: team.PlayerStats{
				Matches:    p.Stats.Matches,
				Runs:       p.Stats.Runs,
				Wickets:    p.Stats.Wickets,
				Catches:    p.Stats.Catches,
				Stumps:     p.Stats.Stumps,
				Average:    p.Stats.Average,
				StrikeRate: p.Stats.StrikeRate,
				Economy:    p.Stats.Economy,
			},
			CreatedAt: p.CreatedAt.UTC(),
			UpdatedAt: p.UpdatedAt.UTC(),
		})
	}

	return team.Team{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		ShortName:    d.ShortName,
		Captain:      d.Captain,
		Coach:        d.Coach,
		Established:  d.Established,
		HomeGround:   d.HomeGround,
		ContactEmail: d.ContactEmail,
		ContactPhone: d.ContactPhone,
		Logo:         d.Logo,
		Players:      players,
		Record: team.Record{
			TotalMatches: d.TotalMatches,
			MatchesWon:   d.MatchesWon,
			MatchesLost:  d.MatchesLost,
			MatchesDrawn: d.MatchesDrawn,
		},
		IsActive:  d.IsActive,
		CreatedBy: d.CreatedBy,
		Version:   d.Version,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

type sideScoreDocument struct {
	Runs    int `bson:"runs"`
	Wickets int `bson:"wickets"`
}

type scoreDocument struct {
	TeamA sideScoreDocument `bson:"teamA"`
	TeamB sideScoreDocument `bson:"teamB"`
	Overs string            `bson:"overs"`
}

type resultDocument struct {
	WinnerTeamID string `bson:"winnerTeamId,omitempty"`
	IsDraw       bool   `bson:"isDraw"`
}

type matchDocument struct {
	ID             primitive.ObjectID `bson:"_id"`
	TeamA          primitive.ObjectID `bson:"teamA"`
	TeamB          primitive.ObjectID `bson:"teamB"`
	Date           time.Time          `bson:"date"`
	Venue          string             `bson:"venue"`
	Overs          int                `bson:"overs"`
	Status         string             `bson:"status"`
	Score          scoreDocument      `bson:"score"`
	LedgerSequence int                `bson:"ledgerSequence"`
	Result         *resultDocument    `bson:"result,omitempty"`
	CreatedBy      string             `bson:"createdBy"`
	Version        int64              `bson:"version"`
	CreatedAt      time.Time          `bson:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt"`
}

func matchDocumentFromDomain(m match.Match) (matchDocument, error) {
	matchID, err := requireID("match", m.ID)
	if err != nil {
		return matchDocument{}, err
	}
	teamA, err := requireID("team", m.TeamA)
	if err != nil {
		return matchDocument{}, err
	}
	teamB, err := requireID("team", m.TeamB)
	if err != nil {
		return matchDocument{}, err
	}

	doc := matchDocument{
		ID:     matchID,
		TeamA:  teamA,
		TeamB:  teamB,
		Date:   m.Date,
		Venue:  m.Venue,
		Overs:  m.Overs,
		Status: string(m.Status),
		Score: scoreDocument{
			TeamA: sideScoreDocument{Runs: m.Score.TeamA.Runs, Wickets: m.Score.TeamA.Wickets},
			TeamB: sideScoreDocument{Runs: m.Score.TeamB.Runs, Wickets: m.Score.TeamB.Wickets},
			Overs: m.Score.Overs,
		},
		LedgerSequence: m.LedgerSequence,
		CreatedBy:      m.CreatedBy,
		Version:        m.Version,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	if m.Result != nil {
		doc.Result = &resultDocument{WinnerTeamID: m.Result.WinnerTeamID, IsDraw: m.Result.IsDraw}
	}
	return doc, nil
}

func (d matchDocument) toDomain() match.Match {
	out := match.Match{
		ID:     d.ID.Hex(),
		TeamA:  d.TeamA.Hex(),
		TeamB:  d.TeamB.Hex(),
		Date:   d.Date.UTC(),
		Venue:  d.Venue,
		Overs:  d.Overs,
		Status: match.Status(d.Status),
		Score: match.Score{
			TeamA: match.SideScore{Runs: d.Score.TeamA.Runs, Wickets: d.Score.TeamA.Wickets},
			TeamB: match.SideScore{Runs: d.Score.TeamB.Runs, Wickets: d.Score.TeamB.Wickets},
			Overs: d.Score.Overs,
		},
		LedgerSequence: d.LedgerSequence,
		CreatedBy:      d.CreatedBy,
		Version:        d.Version,
		CreatedAt:      d.CreatedAt.UTC(),
		UpdatedAt:      d.UpdatedAt.UTC(),
	}
	if d.Result != nil {
		out.Result = &match.Result{WinnerTeamID: d.Result.WinnerTeamID, IsDraw: d.Result.IsDraw}
	}
	return out
}

type deliveryDocument struct {
	ID            primitive.ObjectID `bson:"_id"`
	MatchID       primitive.ObjectID `bson:"matchId"`
	Innings       int                `bson:"innings"`
	Sequence      int                `bson:"sequence"`
	BattingTeamID string             `bson:"battingTeamId"`
	Runs          int                `bson:"runs"`
	Extras        int                `bson:"extras"`
	ExtraType     string             `bson:"extraType,omitempty"`
	IsWicket      bool               `bson:"isWicket"`
	DismissalType string             `bson:"dismissalType,omitempty"`
	BatsmanID     string             `bson:"batsmanId,omitempty"`
	BowlerID      string             `bson:"bowlerId,omitempty"`
	Commentary    string             `bson:"commentary,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt"`
}

func deliveryDocumentFromDomain(d scoring.Delivery) (deliveryDocument, error) {
	deliveryID, err := requireID("delivery", d.ID)
	if err != nil {
		return deliveryDocument{}, err
	}
	matchID, err := requireID("match", d.MatchID)
	if err != nil {
		return deliveryDocument{}, err
	}
	return deliveryDocument{
		ID:            deliveryID,
		MatchID:       matchID,
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
	}, nil
}

func (d deliveryDocument) toDomain() scoring.Delivery {
	return scoring.Delivery{
		ID:            d.ID.Hex(),
		MatchID:       d.MatchID.Hex(),
		Innings:       d.Innings,
		Sequence:      d.Sequence,
		BattingTeamID: d.BattingTeamID,
		Runs:          d.Runs,
		Extras:        d.Extras,
		ExtraType:     scoring.ExtraType(d.ExtraType),
		IsWicket:      d.IsWicket,
		DismissalType: d.DismissalType,
		BatsmanID:     d.BatsmanID,
		BowlerID:      d.BowlerID,
		Commentary:    d.Commentary,
		CreatedAt:     d.CreatedAt.UTC(),
	}
}

type superAdminDocument struct {
	ID           primitive.ObjectID `bson:"_id"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"passwordHash"`
	LastLoginAt  *time.Time         `bson:"lastLoginAt,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

type permissionsDocument struct {
	ManageTeams   bool `bson:"manageTeams"`
	ManagePlayers bool `bson:"managePlayers"`
	ViewReports   bool `bson:"viewReports"`
	ManageMatches bool `bson:"manageMatches"`
}

type subAdminDocument struct {
	ID             primitive.ObjectID  `bson:"_id"`
	Name           string              `bson:"name"`
	Email          string              `bson:"email"`
	PasswordHash   string              `bson:"passwordHash"`
	Sport          string              `bson:"sport"`
	Specialization string              `bson:"specialization"`
	Permissions    permissionsDocument `bson:"permissions"`
	IsActive       bool                `bson:"isActive"`
	CreatedBy      string              `bson:"createdBy"`
	LastLoginAt    *time.Time          `bson:"lastLoginAt,omitempty"`
	CreatedAt      time.Time           `bson:"createdAt"`
	UpdatedAt      time.Time           `bson:"updatedAt"`
}

func superAdminDocumentFromDomain(a admin.SuperAdmin) (superAdminDocument, error) {
	adminID, err := requireID("admin", a.ID)
	if err != nil {
		return superAdminDocument{}, err
	}
	return superAdminDocument{
		ID:           adminID,
		Name:         a.Name,
		Email:        a.Email,
		PasswordHash: a.PasswordHash,
		LastLoginAt:  a.LastLoginAt,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}, nil
}

func (d superAdminDocument) toDomain() admin.SuperAdmin {
	return admin.SuperAdmin{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		LastLoginAt:  utcPtr(d.LastLoginAt),
		CreatedAt:    d.CreatedAt.UTC(),
		UpdatedAt:    d.UpdatedAt.UTC(),
	}
}

func subAdminDocumentFromDomain(a admin.SubAdmin) (subAdminDocument, error) {
	adminID, err := requireID("admin", a.ID)
	if err != nil {
		return subAdminDocument{}, err
	}
	return subAdminDocument{
		ID:             adminID,
		Name:           a.Name,
		Email:          a.Email,
		PasswordHash:   a.PasswordHash,
		Sport:          string(a.Sport),
		Specialization: string(a.Specialization),
		Permissions: permissionsDocument{
			ManageTeams:   a.Permissions.ManageTeams,
			ManagePlayers: a.Permissions.ManagePlayers,
			ViewReports:   a.Permissions.ViewReports,
			ManageMatches: a.Permissions.ManageMatches,
		},
		IsActive:    a.IsActive,
		CreatedBy:   a.CreatedBy,
		LastLoginAt: a.LastLoginAt,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}, nil
}

func (d subAdminDocument) toDomain() admin.SubAdmin {
	return admin.SubAdmin{
		ID:             d.ID.Hex(),
		Name:           d.Name,
		Email:          d.Email,
		PasswordHash:   d.PasswordHash,
		Sport:          admin.Sport(d.Sport),
		Specialization: admin.Specialization(d.Specialization),
		Permissions: admin.Permissions{
			ManageTeams:   d.Permissions.ManageTeams,
			ManagePlayers: d.Permissions.ManagePlayers,
			ViewReports:   d.Permissions.ViewReports,
			ManageMatches: d.Permissions.ManageMatches,
		},
		IsActive:    d.IsActive,
		CreatedBy:   d.CreatedBy,
		LastLoginAt: utcPtr(d.LastLoginAt),
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

func utcPtr(v *time.Time) *time.Time {
	if v == nil {
		return nil
	}
	t := v.UTC()
	return &t
}
