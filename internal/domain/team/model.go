package team

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MaxRosterSize      = 15
	MaxShortNameLength = 10
	MinJerseyNumber    = 1
	MaxJerseyNumber    = 99
	MinPlayerAge       = 16
	MaxPlayerAge       = 45
)

// Field caps, in characters. They match the column widths of the teams and
// team_players tables so every storage driver accepts the same input.
const (
	MaxNameLength        = 120
	MaxEstablishedLength = 16
	MaxHomeGroundLength  = 160
	MaxEmailLength       = 254
	MaxPhoneLength       = 32
	MaxExperienceLength  = 120

	// MaxCounter is the largest stored counter (a 32-bit column).
	MaxCounter = math.MaxInt32
	// MaxRate is the largest average, strike rate or economy: two decimals
	// with six integer digits.
	MaxRate = 999999.99
)

type fieldCap struct {
	field string
	value string
	max   int
}

func checkCaps(base error, caps []fieldCap) error {
	for _, c := range caps {
		if utf8.RuneCountInString(c.value) > c.max {
			return fmt.Errorf("%w: %s must be at most %d characters", base, c.field, c.max)
		}
	}
	return nil
}

// Role is the playing role of a cricketer within a squad.
type Role string

const (
	RoleBatsman             Role = "Batsman"
	RoleBowler              Role = "Bowler"
	RoleAllRounder          Role = "All-rounder"
	RoleWicketKeeper        Role = "Wicket-keeper"
	RoleWicketKeeperBatsman Role = "Wicket-keeper Batsman"
	RoleCaptain             Role = "Captain"
	RoleViceCaptain         Role = "Vice-Captain"
)

var AllRoles = map[Role]struct{}{
	RoleBatsman:             {},
	RoleBowler:              {},
	RoleAllRounder:          {},
	RoleWicketKeeper:        {},
	RoleWicketKeeperBatsman: {},
	RoleCaptain:             {},
	RoleViceCaptain:         {},
}

// PlayerStats are career counters supplied by administrators.
type PlayerStats struct {
	Matches    int
	Runs       int
	Wickets    int
	Catches    int
	Stumps     int
	Average    float64
	StrikeRate float64
	Economy    float64
}

// Player is a roster entry. It only exists inside its owning Team.
type Player struct {
	ID           string
	JerseyNumber int
	Name         string
	Role         Role
	Age          int
	Experience   string
	Email        string
	Phone        string
	Stats        PlayerStats
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Record counts finished matches. It is only advanced by match completion.
type Record struct {
	TotalMatches int
	MatchesWon   int
	MatchesLost  int
	MatchesDrawn int
}

// Outcome is a finished match seen from one side.
type Outcome string

const (
	OutcomeWon   Outcome = "won"
	OutcomeLost  Outcome = "lost"
	OutcomeDrawn Outcome = "drawn"
)

// Team is the aggregate root: descriptive fields plus the ordered roster.
type Team struct {
	ID           string
	Name         string
	ShortName    string
	Captain      string
	Coach        string
	Established  string
	HomeGround   string
	ContactEmail string
	ContactPhone string
	Logo         string
	Players      []Player
	Record       Record
	IsActive     bool
	CreatedBy    string
	Version      int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NameKey is the comparison form used for name uniqueness.
func NameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func NormalizeShortName(shortName string) string {
	return strings.ToUpper(strings.TrimSpace(shortName))
}

func (t Team) NameKey() string {
	return NameKey(t.Name)
}

func (t Team) Clone() Team {
	out := t
	if t.Players != nil {
		out.Players = append([]Player(nil), t.Players...)
	}
	return out
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("%w: team id is required", ErrInvalidTeam)
	}
	required := []struct {
		field string
		value string
	}{
		{"name", t.Name},
		{"shortName", t.ShortName},
		{"captain", t.Captain},
		{"coach", t.Coach},
		{"established", t.Established},
		{"homeGround", t.HomeGround},
		{"contactEmail", t.ContactEmail},
		{"contactPhone", t.ContactPhone},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidTeam, r.field)
		}
	}
	if err := checkCaps(ErrInvalidTeam, []fieldCap{
		{"name", t.Name, MaxNameLength},
		{"shortName", t.ShortName, MaxShortNameLength},
		{"captain", t.Captain, MaxNameLength},
		{"coach", t.Coach, MaxNameLength},
		{"established", t.Established, MaxEstablishedLength},
		{"homeGround", t.HomeGround, MaxHomeGroundLength},
		{"contactEmail", t.ContactEmail, MaxEmailLength},
		{"contactPhone", t.ContactPhone, MaxPhoneLength},
	}); err != nil {
		return err
	}

	return ValidateRoster(t.Players)
}

// RecordOutcome advances the match counters for a finished match.
func (t *Team) RecordOutcome(outcome Outcome) error {
	switch outcome {
	case OutcomeWon:
		t.Record.MatchesWon++
	case OutcomeLost:
		t.Record.MatchesLost++
	case OutcomeDrawn:
		t.Record.MatchesDrawn++
	default:
		return fmt.Errorf("%w: unknown outcome %q", ErrInvalidTeam, outcome)
	}
	t.Record.TotalMatches++
	return nil
}
