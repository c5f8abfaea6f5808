package httpapi

import (
	"time"

	"github.com/sportsdesk/teamhub/internal/domain/admin"
	"github.com/sportsdesk/teamhub/internal/domain/match"
	"github.com/sportsdesk/teamhub/internal/domain/scoring"
	"github.com/sportsdesk/teamhub/internal/domain/team"
	"github.com/sportsdesk/teamhub/internal/usecase"
)

type playerStatsDTO struct {
	Matches    int     `json:"matches"`
	Runs       int     `json:"runs"`
	Wickets    int     `json:"wickets"`
	Catches    int     `json:"catches"`
	Stumps     int     `json:"stumps"`
	Average    float64 `json:"average"`
	StrikeRate float64 `json:"strikeRate"`
	Economy    float64 `json:"economy"`
}

type playerDTO struct {
	ID           string         `json:"id"`
	JerseyNumber int            `json:"jerseyNumber"`
	Name         string         `json:"name"`
	Role         string         `json:"role"`
	Age          int            `json:"age"`
	Experience   string         `json:"experience"`
	Email        string         `json:"email,omitempty"`
	Phone        string         `json:"phone,omitempty"`
	Stats        playerStatsDTO `json:"stats"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

type teamDTO struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	ShortName    string      `json:"shortName"`
	Captain      string      `json:"captain"`
	Coach        string      `json:"coach"`
	Established  string      `json:"established"`
	HomeGround   string      `json:"homeGround"`
	ContactEmail string      `json:"contactEmail"`
	ContactPhone string      `json:"contactPhone"`
	Logo         string      `json:"logo,omitempty"`
	Players      []playerDTO `json:"players"`
	TotalMatches int         `json:"totalMatches"`
	MatchesWon   int         `json:"matchesWon"`
	MatchesLost  int         `json:"matchesLost"`
	MatchesDrawn int         `json:"matchesDrawn"`
	IsActive     bool        `json:"isActive"`
	CreatedBy    string      `json:"createdBy"`
	Version      int64       `json:"version"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

type totalsDTO struct {
	Matches int `json:"matches"`
	Runs    int `json:"runs"`
	Wickets int `json:"wickets"`
	Catches int `json:"catches"`
	Stumps  int `json:"stumps"`
}

type teamStatsDTO struct {
	TeamID         string     `json:"teamId"`
	TeamName       string     `json:"teamName"`
	ShortName      string     `json:"shortName"`
	PlayerCount    int        `json:"playerCount"`
	TotalMatches   int        `json:"totalMatches"`
	MatchesWon     int        `json:"matchesWon"`
	MatchesLost    int        `json:"matchesLost"`
	MatchesDrawn   int        `json:"matchesDrawn"`
	Totals         totalsDTO  `json:"totals"`
	TopScorer      *playerDTO `json:"topScorer"`
	TopWicketTaker *playerDTO `json:"topWicketTaker"`
	BestAverage    *playerDTO `json:"bestAverage"`
}

type overviewDTO struct {
	TotalTeams   int            `json:"totalTeams"`
	TotalPlayers int            `json:"totalPlayers"`
	Totals       totalsDTO      `json:"totals"`
	Teams        []teamStatsDTO `json:"teams"`
}

type playerUpdateDTO struct {
	Player playerDTO `json:"player"`
	Team   teamDTO   `json:"team"`
}

type sideScoreDTO struct {
	Runs    int `json:"runs"`
	Wickets int `json:"wickets"`
}

type scoreDTO struct {
	TeamA sideScoreDTO `json:"teamA"`
	TeamB sideScoreDTO `json:"teamB"`
	Overs string       `json:"overs"`
}

type resultDTO struct {
	WinnerTeamID string `json:"winner,omitempty"`
	IsDraw       bool   `json:"isDraw"`
}

type matchDTO struct {
	ID        string     `json:"id"`
	TeamA     string     `json:"teamA"`
	TeamB     string     `json:"teamB"`
	Date      time.Time  `json:"date"`
	Venue     string     `json:"venue,omitempty"`
	Overs     int        `json:"overs"`
	Status    string     `json:"status"`
	Score     scoreDTO   `json:"score"`
	Result    *resultDTO `json:"result,omitempty"`
	CreatedBy string     `json:"createdBy"`
	Version   int64      `json:"version"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

type deliveryDTO struct {
	ID            string    `json:"id"`
	MatchID       string    `json:"matchId"`
	Innings       int       `json:"innings"`
	Sequence      int       `json:"sequence"`
	BattingTeamID string    `json:"battingTeamId"`
	Runs          int       `json:"runs"`
	Extras        int       `json:"extras"`
	ExtraType     string    `json:"extraType,omitempty"`
	IsWicket      bool      `json:"isWicket"`
	DismissalType string    `json:"dismissalType,omitempty"`
	BatsmanID     string    `json:"batsmanId,omitempty"`
	BowlerID      string    `json:"bowlerId,omitempty"`
	Commentary    string    `json:"commentary,omitempty"`
	Label         string    `json:"label"`
	CreatedAt     time.Time `json:"createdAt"`
}

type inningsDTO struct {
	Innings       int      `json:"innings"`
	BattingTeamID string   `json:"battingTeamId"`
	Runs          int      `json:"runs"`
	Wickets       int      `json:"wickets"`
	Extras        int      `json:"extras"`
	LegalBalls    int      `json:"legalBalls"`
	Deliveries    int      `json:"deliveries"`
	Overs         string   `json:"overs"`
	RunRate       float64  `json:"runRate"`
	CurrentOver   []string `json:"currentOver"`
	Closed        bool     `json:"closed"`
}

type matchSummaryDTO struct {
	Match      matchDTO     `json:"match"`
	Innings    []inningsDTO `json:"innings"`
	Deliveries int          `json:"deliveries"`
}

type deliveryResultDTO struct {
	Delivery deliveryDTO     `json:"delivery"`
	Summary  matchSummaryDTO `json:"summary"`
}

type permissionsDTO struct {
	ManageTeams   bool `json:"manageTeams"`
	ManagePlayers bool `json:"managePlayers"`
	ViewReports   bool `json:"viewReports"`
	ManageMatches bool `json:"manageMatches"`
}

type principalDTO struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Email       string         `json:"email"`
	Role        string         `json:"role"`
	Sport       string         `json:"sport,omitempty"`
	Permissions permissionsDTO `json:"permissions"`
}

type sessionDTO struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	Admin     principalDTO `json:"admin"`
}

type superAdminDTO struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

type subAdminDTO struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	Email          string         `json:"email"`
	Role           string         `json:"role"`
	Sport          string         `json:"sport"`
	Specialization string         `json:"specialization"`
	Permissions    permissionsDTO `json:"permissions"`
	IsActive       bool           `json:"isActive"`
	CreatedBy      string         `json:"createdBy"`
	LastLoginAt    *time.Time     `json:"lastLoginAt,omitempty"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

type profileDTO struct {
	principalDTO
	Specialization string     `json:"specialization,omitempty"`
	IsActive       bool       `json:"isActive"`
	LastLoginAt    *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

func toPlayerDTO(p team.Player) playerDTO {
	return playerDTO{
		ID:           p.ID,
		JerseyNumber: p.JerseyNumber,
		Name:         p.Name,
		Role:         string(p.Role),
		Age:          p.Age,
		Experience:   p.Experience,
		Email:        p.Email,
		Phone:        p.Phone,
		Stats: playerStatsDTO{
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
	}
}

func toPlayerDTOPtr(p *team.Player) *playerDTO {
	if p == nil {
		return nil
	}
	out := toPlayerDTO(*p)
	return &out
}

func toTeamDTO(t team.Team) teamDTO {
	players := make([]playerDTO, 0, len(t.Players))
	for _, p := range t.Players {
		players = append(players, toPlayerDTO(p))
	}

	return teamDTO{
		ID:           t.ID,
		Name:         t.Name,
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
	}
}

func toTeamDTOs(items []team.Team) []teamDTO {
	out := make([]teamDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toTeamDTO(item))
	}
	return out
}

func toTotalsDTO(t team.Totals) totalsDTO {
	return totalsDTO{
		Matches: t.Matches,
		Runs:    t.Runs,
		Wickets: t.Wickets,
		Catches: t.Catches,
		Stumps:  t.Stumps,
	}
}

func toTeamStatsDTO(s team.Stats) teamStatsDTO {
	return teamStatsDTO{
		TeamID:         s.TeamID,
		TeamName:       s.TeamName,
		ShortName:      s.ShortName,
		PlayerCount:    s.PlayerCount,
		TotalMatches:   s.Record.TotalMatches,
		MatchesWon:     s.Record.MatchesWon,
		MatchesLost:    s.Record.MatchesLost,
		MatchesDrawn:   s.Record.MatchesDrawn,
		Totals:         toTotalsDTO(s.Totals),
		TopScorer:      toPlayerDTOPtr(s.TopScorer),
		TopWicketTaker: toPlayerDTOPtr(s.TopWicketTaker),
		BestAverage:    toPlayerDTOPtr(s.BestAverage),
	}
}

func toOverviewDTO(o team.Overview) overviewDTO {
	teams := make([]teamStatsDTO, 0, len(o.Teams))
	for _, s := range o.Teams {
		teams = append(teams, toTeamStatsDTO(s))
	}
	return overviewDTO{
		TotalTeams:   o.TotalTeams,
		TotalPlayers: o.TotalPlayers,
		Totals:       toTotalsDTO(o.Totals),
		Teams:        teams,
	}
}

func toMatchDTO(m match.Match) matchDTO {
	out := matchDTO{
		ID:     m.ID,
		TeamA:  m.TeamA,
		TeamB:  m.TeamB,
		Date:   m.Date,
		Venue:  m.Venue,
		Overs:  m.Overs,
		Status: string(m.Status),
		Score: scoreDTO{
			TeamA: sideScoreDTO{Runs: m.Score.TeamA.Runs, Wickets: m.Score.TeamA.Wickets},
			TeamB: sideScoreDTO{Runs: m.Score.TeamB.Runs, Wickets: m.Score.TeamB.Wickets},
			Overs: m.Score.Overs,
		},
		CreatedBy: m.CreatedBy,
		Version:   m.Version,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.Result != nil {
		out.Result = &resultDTO{WinnerTeamID: m.Result.WinnerTeamID, IsDraw: m.Result.IsDraw}
	}
	return out
}

func toMatchDTOs(items []match.Match) []matchDTO {
	out := make([]matchDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toMatchDTO(item))
	}
	return out
}

func toDeliveryDTO(d scoring.Delivery) deliveryDTO {
	return deliveryDTO{
		ID:            d.ID,
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
		Label:         d.Label(),
		CreatedAt:     d.CreatedAt,
	}
}

func toDeliveryDTOs(items []scoring.Delivery) []deliveryDTO {
	out := make([]deliveryDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toDeliveryDTO(item))
	}
	return out
}

func toMatchSummaryDTO(s usecase.MatchSummary) matchSummaryDTO {
	innings := make([]inningsDTO, 0, len(s.Innings))
	for _, in := range s.Innings {
		currentOver := in.CurrentOver
		if currentOver == nil {
			currentOver = []string{}
		}
		innings = append(innings, inningsDTO{
			Innings:       in.Innings,
			BattingTeamID: in.BattingTeamID,
			Runs:          in.Runs,
			Wickets:       in.Wickets,
			Extras:        in.Extras,
			LegalBalls:    in.LegalBalls,
			Deliveries:    in.Deliveries,
			Overs:         in.Overs,
			RunRate:       in.RunRate,
			CurrentOver:   currentOver,
			Closed:        in.Closed,
		})
	}
	return matchSummaryDTO{
		Match:      toMatchDTO(s.Match),
		Innings:    innings,
		Deliveries: s.Deliveries,
	}
}

func toDeliveryResultDTO(r usecase.DeliveryResult) deliveryResultDTO {
	return deliveryResultDTO{
		Delivery: toDeliveryDTO(r.Delivery),
		Summary:  toMatchSummaryDTO(r.Summary),
	}
}

func toPermissionsDTO(p admin.Permissions) permissionsDTO {
	return permissionsDTO{
		ManageTeams:   p.ManageTeams,
		ManagePlayers: p.ManagePlayers,
		ViewReports:   p.ViewReports,
		ManageMatches: p.ManageMatches,
	}
}

func (p permissionsDTO) toDomain() admin.Permissions {
	return admin.Permissions{
		ManageTeams:   p.ManageTeams,
		ManagePlayers: p.ManagePlayers,
		ViewReports:   p.ViewReports,
		ManageMatches: p.ManageMatches,
	}
}

func toPrincipalDTO(p admin.Principal) principalDTO {
	return principalDTO{
		ID:          p.ID,
		Name:        p.Name,
		Email:       p.Email,
		Role:        string(p.Role),
		Sport:       string(p.Sport),
		Permissions: toPermissionsDTO(p.Permissions),
	}
}

func toSessionDTO(s usecase.Session) sessionDTO {
	return sessionDTO{
		Token:     s.Token.Value,
		ExpiresAt: s.Token.ExpiresAt,
		Admin:     toPrincipalDTO(s.Principal),
	}
}

func toSuperAdminDTO(a admin.SuperAdmin) superAdminDTO {
	return superAdminDTO{
		ID:          a.ID,
		Name:        a.Name,
		Email:       a.Email,
		Role:        string(admin.RoleSuperAdmin),
		LastLoginAt: a.LastLoginAt,
		CreatedAt:   a.CreatedAt,
	}
}

func toSubAdminDTO(a admin.SubAdmin) subAdminDTO {
	return subAdminDTO{
		ID:             a.ID,
		Name:           a.Name,
		Email:          a.Email,
		Role:           string(admin.RoleSubAdmin),
		Sport:          string(a.Sport),
		Specialization: string(a.Specialization),
		Permissions:    toPermissionsDTO(a.Permissions),
		IsActive:       a.IsActive,
		CreatedBy:      a.CreatedBy,
		LastLoginAt:    a.LastLoginAt,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func toSubAdminDTOs(items []admin.SubAdmin) []subAdminDTO {
	out := make([]subAdminDTO, 0, len(items))
	for _, item := range items {
		out = append(out, toSubAdminDTO(item))
	}
	return out
}

func toProfileDTO(p usecase.Profile) profileDTO {
	return profileDTO{
		principalDTO:   toPrincipalDTO(p.Principal),
		Specialization: string(p.Specialization),
		IsActive:       p.IsActive,
		LastLoginAt:    p.LastLoginAt,
		CreatedAt:      p.CreatedAt,
	}
}
