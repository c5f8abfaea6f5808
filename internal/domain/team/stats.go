package team

// Totals sums roster counters.
type Totals struct {
	Matches int
	Runs    int
	Wickets int
	Catches int
	Stumps  int
}

func (t *Totals) add(o Totals) {
	t.Matches += o.Matches
	t.Runs += o.Runs
	t.Wickets += o.Wickets
	t.Catches += o.Catches
	t.Stumps += o.Stumps
}

// Stats summarises one team's roster.
type Stats struct {
	TeamID         string
	TeamName       string
	ShortName      string
	PlayerCount    int
	Record         Record
	Totals         Totals
	TopScorer      *Player
	TopWicketTaker *Player
	BestAverage    *Player
}

// ComputeStats derives totals and leaders. Leaders use strict greater-than so
// the first player in roster order wins a tie; they are nil for an empty roster.
func ComputeStats(t Team) Stats {
	out := Stats{
		TeamID:      t.ID,
		TeamName:    t.Name,
		ShortName:   t.ShortName,
		PlayerCount: len(t.Players),
		Record:      t.Record,
	}
	if len(t.Players) == 0 {
		return out
	}

	topScorer, topWickets, bestAverage := 0, 0, 0
	for i, p := range t.Players {
		out.Totals.add(Totals{
			Matches: p.Stats.Matches,
			Runs:    p.Stats.Runs,
			Wickets: p.Stats.Wickets,
			Catches: p.Stats.Catches,
			Stumps:  p.Stats.Stumps,
		})
		if p.Stats.Runs > t.Players[topScorer].Stats.Runs {
			topScorer = i
		}
		if p.Stats.Wickets > t.Players[topWickets].Stats.Wickets {
			topWickets = i
		}
		if p.Stats.Average > t.Players[bestAverage].Stats.Average {
			bestAverage = i
		}
	}

	out.TopScorer = playerRef(t.Players[topScorer])
	out.TopWicketTaker = playerRef(t.Players[topWickets])
	out.BestAverage = playerRef(t.Players[bestAverage])
	return out
}

func playerRef(p Player) *Player {
	return &p
}

// Overview aggregates stats across teams.
type Overview struct {
	TotalTeams   int
	TotalPlayers int
	Totals       Totals
	Teams        []Stats
}

func (o *Overview) Merge(s Stats) {
	o.TotalTeams++
	o.TotalPlayers += s.PlayerCount
	o.Totals.add(s.Totals)
	o.Teams = append(o.Teams, s)
}
