package livefeed

import (
	"time"

	"github.com/sportsdesk/teamhub/internal/domain/match"
)

type snapshotMessage struct {
	Type   string    `json:"type"`
	Match  matchView `json:"match"`
	SentAt time.Time `json:"sentAt"`
}

type sideView struct {
	Runs    int `json:"runs"`
	Wickets int `json:"wickets"`
}

type scoreView struct {
	TeamA sideView `json:"teamA"`
	TeamB sideView `json:"teamB"`
	Overs string   `json:"overs"`
}

type resultView struct {
	WinnerTeamID string `json:"winner,omitempty"`
	IsDraw       bool   `json:"isDraw"`
}

type matchView struct {
	ID      string      `json:"id"`
	TeamA   string      `json:"teamA"`
	TeamB   string      `json:"teamB"`
	Status  string      `json:"status"`
	Overs   int         `json:"overs"`
	Score   scoreView   `json:"score"`
	Result  *resultView `json:"result,omitempty"`
	Version int64       `json:"version"`
}

func toMatchView(m match.Match) matchView {
	out := matchView{
		ID:     m.ID,
		TeamA:  m.TeamA,
		TeamB:  m.TeamB,
		Status: string(m.Status),
		Overs:  m.Overs,
		Score: scoreView{
			TeamA: sideView{Runs: m.Score.TeamA.Runs, Wickets: m.Score.TeamA.Wickets},
			TeamB: sideView{Runs: m.Score.TeamB.Runs, Wickets: m.Score.TeamB.Wickets},
			Overs: m.Score.Overs,
		},
		Version: m.Version,
	}
	if m.Result != nil {
		out.Result = &resultView{WinnerTeamID: m.Result.WinnerTeamID, IsDraw: m.Result.IsDraw}
	}
	return out
}
