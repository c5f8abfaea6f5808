package match

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const (
	DefaultOvers = 20
	MaxOvers     = 50
	MaxWickets   = 10
)

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusLive      Status = "live"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

var AllStatuses = map[Status]struct{}{
	StatusScheduled: {},
	StatusLive:      {},
	StatusCompleted: {},
	StatusCancelled: {},
}

func (s Status) Valid() bool {
	_, ok := AllStatuses[s]
	return ok
}

func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransition reports whether a match may move from one status to another.
// Re-sending the current status is always allowed.
func CanTransition(from, to Status) bool {
	if from == to {
		return true
	}
	switch to {
	case StatusLive:
		return from == StatusScheduled
	case StatusCompleted:
		return from == StatusLive
	case StatusCancelled:
		return !from.Terminal()
	default:
		return false
	}
}

type SideScore struct {
	Runs    int
	Wickets int
}

// Score is the snapshot shown to clients. Overs uses the "overs.balls" form.
type Score struct {
	TeamA SideScore
	TeamB SideScore
	Overs string
}

func ZeroScore() Score {
	return Score{Overs: "0.0"}
}

var oversPattern = regexp.MustCompile(`^\d{1,3}(\.[0-5])?$`)

func (s Score) Validate() error {
	for side, v := range map[string]SideScore{"teamA": s.TeamA, "teamB": s.TeamB} {
		if v.Runs < 0 {
			return fmt.Errorf("%w: %s runs cannot be negative", ErrInvalidScore, side)
		}
		if v.Wickets < 0 || v.Wickets > MaxWickets {
			return fmt.Errorf("%w: %s wickets must be between 0 and %d", ErrInvalidScore, side, MaxWickets)
		}
	}
	if !oversPattern.MatchString(s.Overs) {
		return fmt.Errorf("%w: overs must look like 12.3", ErrInvalidScore)
	}
	return nil
}

type Result struct {
	WinnerTeamID string
	IsDraw       bool
}

type Match struct {
	ID     string
	TeamA  string
	TeamB  string
	Date   time.Time
	Venue  string
	Overs  int
	Status Status
	Score  Score
	// LedgerSequence is the sequence of the last delivery folded into Score.
	LedgerSequence int
	Result         *Result
	CreatedBy      string
	Version        int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (m Match) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("%w: match id is required", ErrInvalidMatch)
	}
	if m.TeamA == "" || m.TeamB == "" {
		return fmt.Errorf("%w: both teams are required", ErrInvalidMatch)
	}
	if m.TeamA == m.TeamB {
		return fmt.Errorf("%w: a team cannot play itself", ErrInvalidMatch)
	}
	if m.Date.IsZero() {
		return fmt.Errorf("%w: match date is required", ErrInvalidMatch)
	}
	if m.Overs < 1 || m.Overs > MaxOvers {
		return fmt.Errorf("%w: overs must be between 1 and %d", ErrInvalidMatch, MaxOvers)
	}
	if !m.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidMatch, m.Status)
	}
	return m.Score.Validate()
}

func (m Match) Involves(teamID string) bool {
	return teamID != "" && (m.TeamA == teamID || m.TeamB == teamID)
}

// ValidateResult checks a completion result against the two sides.
func (m Match) ValidateResult(r Result) error {
	if r.IsDraw {
		if strings.TrimSpace(r.WinnerTeamID) != "" {
			return fmt.Errorf("%w: a drawn match cannot have a winner", ErrInvalidResult)
		}
		return nil
	}
	if !m.Involves(r.WinnerTeamID) {
		return fmt.Errorf("%w: winner must be one of the match teams", ErrInvalidResult)
	}
	return nil
}

// Deletable reports whether the match can be removed without losing history.
func (m Match) Deletable() bool {
	return m.Status == StatusScheduled || m.Status == StatusCancelled
}
