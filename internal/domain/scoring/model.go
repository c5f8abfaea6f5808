package scoring

import (
	"fmt"
	"strings"
	"time"
)

const (
	MaxRunsOffBat   = 6
	MaxExtras       = 7
	BallsPerOver    = 6
	WicketsPerSide  = 10
	FirstInnings    = 1
	SecondInnings   = 2
	maxCommentRunes = 280
)

type ExtraType string

const (
	ExtraNone   ExtraType = ""
	ExtraWide   ExtraType = "wide"
	ExtraNoBall ExtraType = "no_ball"
	ExtraBye    ExtraType = "bye"
	ExtraLegBye ExtraType = "leg_bye"
)

var AllExtraTypes = map[ExtraType]struct{}{
	ExtraNone:   {},
	ExtraWide:   {},
	ExtraNoBall: {},
	ExtraBye:    {},
	ExtraLegBye: {},
}

// Delivery is one ball in a match ledger. The ledger is append-only except
// for undoing the most recent entry.
type Delivery struct {
	ID            string
	MatchID       string
	Innings       int
	Sequence      int
	BattingTeamID string
	Runs          int
	Extras        int
	ExtraType     ExtraType
	IsWicket      bool
	DismissalType string
	BatsmanID     string
	BowlerID      string
	Commentary    string
	CreatedAt     time.Time
}

// Legal reports whether the ball counts toward the over.
func (d Delivery) Legal() bool {
	return d.ExtraType != ExtraWide && d.ExtraType != ExtraNoBall
}

func (d Delivery) TotalRuns() int {
	return d.Runs + d.Extras
}

func (d Delivery) Validate() error {
	if d.Innings != FirstInnings && d.Innings != SecondInnings {
		return fmt.Errorf("%w: innings must be 1 or 2", ErrInvalidDelivery)
	}
	if strings.TrimSpace(d.BattingTeamID) == "" {
		return fmt.Errorf("%w: batting team is required", ErrInvalidDelivery)
	}
	if d.Runs < 0 || d.Runs > MaxRunsOffBat {
		return fmt.Errorf("%w: runs must be between 0 and %d", ErrInvalidDelivery, MaxRunsOffBat)
	}
	if d.Extras < 0 || d.Extras > MaxExtras {
		return fmt.Errorf("%w: extras must be between 0 and %d", ErrInvalidDelivery, MaxExtras)
	}
	if _, ok := AllExtraTypes[d.ExtraType]; !ok {
		return fmt.Errorf("%w: unknown extra type %q", ErrInvalidDelivery, d.ExtraType)
	}

	switch d.ExtraType {
	case ExtraNone:
		if d.Extras != 0 {
			return fmt.Errorf("%w: extras require an extra type", ErrInvalidDelivery)
		}
	case ExtraWide, ExtraBye, ExtraLegBye:
		if d.Runs != 0 {
			return fmt.Errorf("%w: %s cannot carry runs off the bat", ErrInvalidDelivery, d.ExtraType)
		}
		if d.Extras < 1 {
			return fmt.Errorf("%w: %s must award at least one extra", ErrInvalidDelivery, d.ExtraType)
		}
	case ExtraNoBall:
		if d.Extras < 1 {
			return fmt.Errorf("%w: no ball must award at least one extra", ErrInvalidDelivery)
		}
	}

	if len([]rune(d.Commentary)) > maxCommentRunes {
		return fmt.Errorf("%w: commentary is limited to %d characters", ErrInvalidDelivery, maxCommentRunes)
	}
	return nil
}

// Label is the compact scorecard symbol for the ball.
func (d Delivery) Label() string {
	if d.IsWicket {
		return "W"
	}
	switch d.ExtraType {
	case ExtraWide:
		if d.Extras == 1 {
			return "wd"
		}
		return fmt.Sprintf("%dwd", d.Extras)
	case ExtraNoBall:
		if d.Runs > 0 {
			return fmt.Sprintf("nb+%d", d.Runs)
		}
		return "nb"
	case ExtraBye:
		return fmt.Sprintf("%db", d.Extras)
	case ExtraLegBye:
		return fmt.Sprintf("%dlb", d.Extras)
	}
	return fmt.Sprintf("%d", d.Runs)
}
