package scoring

import (
	"fmt"
	"math"

	"github.com/sportsdesk/teamhub/internal/domain/match"
)

// InningsSummary is derived from the ledger, never stored.
type InningsSummary struct {
	Innings       int
	BattingTeamID string
	Runs          int
	Wickets       int
	Extras        int
	LegalBalls    int
	Deliveries    int
	Overs         string
	RunRate       float64
	CurrentOver   []string
	Closed        bool
}

// FormatOvers renders legal balls as "overs.balls".
func FormatOvers(legalBalls int) string {
	if legalBalls < 0 {
		legalBalls = 0
	}
	return fmt.Sprintf("%d.%d", legalBalls/BallsPerOver, legalBalls%BallsPerOver)
}

// Summarize folds a sequence-ordered ledger into per-innings summaries.
func Summarize(deliveries []Delivery, oversLimit int) []InningsSummary {
	var out []InningsSummary
	index := make(map[int]int, 2)
	overDone := make(map[int]bool, 2)

	for _, d := range deliveries {
		pos, ok := index[d.Innings]
		if !ok {
			out = append(out, InningsSummary{Innings: d.Innings, BattingTeamID: d.BattingTeamID})
			pos = len(out) - 1
			index[d.Innings] = pos
		}
		s := &out[pos]

		if overDone[d.Innings] {
			s.CurrentOver = nil
			overDone[d.Innings] = false
		}

		s.Deliveries++
		s.Runs += d.TotalRuns()
		s.Extras += d.Extras
		if d.IsWicket {
			s.Wickets++
		}
		s.CurrentOver = append(s.CurrentOver, d.Label())
		if d.Legal() {
			s.LegalBalls++
			if s.LegalBalls%BallsPerOver == 0 {
				overDone[d.Innings] = true
			}
		}
	}

	for i := range out {
		s := &out[i]
		s.Overs = FormatOvers(s.LegalBalls)
		if s.LegalBalls > 0 {
			rate := float64(s.Runs) * BallsPerOver / float64(s.LegalBalls)
			s.RunRate = math.Round(rate*100) / 100
		}
		s.Closed = inningsClosed(*s, oversLimit)
	}
	return out
}

func inningsClosed(s InningsSummary, oversLimit int) bool {
	if s.Wickets >= WicketsPerSide {
		return true
	}
	return oversLimit > 0 && s.LegalBalls >= oversLimit*BallsPerOver
}

func find(summaries []InningsSummary, innings int) (InningsSummary, bool) {
	for _, s := range summaries {
		if s.Innings == innings {
			return s, true
		}
	}
	return InningsSummary{}, false
}

// ValidateNext checks that next may be appended to the ledger of m.
func ValidateNext(m match.Match, existing []Delivery, next Delivery) error {
	if err := next.Validate(); err != nil {
		return err
	}
	if !m.Involves(next.BattingTeamID) {
		return fmt.Errorf("%w: batting team must be one of the match teams", ErrInvalidDelivery)
	}

	summaries := Summarize(existing, m.Overs)
	first, hasFirst := find(summaries, FirstInnings)
	second, hasSecond := find(summaries, SecondInnings)

	switch next.Innings {
	case FirstInnings:
		if hasSecond {
			return fmt.Errorf("%w: second innings already started", ErrInningsClosed)
		}
		if hasFirst {
			if first.BattingTeamID != next.BattingTeamID {
				return fmt.Errorf("%w: first innings is batted by %s", ErrInvalidDelivery, first.BattingTeamID)
			}
			if first.Closed {
				return fmt.Errorf("%w: first innings finished at %d/%d in %s overs", ErrInningsClosed, first.Runs, first.Wickets, first.Overs)
			}
		}
	case SecondInnings:
		if !hasFirst {
			return fmt.Errorf("%w: first innings has not started", ErrInvalidDelivery)
		}
		if first.BattingTeamID == next.BattingTeamID {
			return fmt.Errorf("%w: second innings must be batted by the other team", ErrInvalidDelivery)
		}
		if hasSecond && second.Closed {
			return fmt.Errorf("%w: second innings finished at %d/%d in %s overs", ErrInningsClosed, second.Runs, second.Wickets, second.Overs)
		}
	}
	return nil
}

// ScoreFor maps innings summaries onto the match score snapshot. Overs shows
// the innings in progress.
func ScoreFor(m match.Match, summaries []InningsSummary) match.Score {
	score := match.ZeroScore()
	for _, s := range summaries {
		side := match.SideScore{Runs: s.Runs, Wickets: s.Wickets}
		switch s.BattingTeamID {
		case m.TeamA:
			score.TeamA = side
		case m.TeamB:
			score.TeamB = side
		}
		score.Overs = s.Overs
	}
	return score
}
