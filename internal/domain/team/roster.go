package team

import (
	"fmt"
	"math"
	"strings"
)

func (p Player) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidPlayer)
	}
	if _, ok := AllRoles[p.Role]; !ok {
		return fmt.Errorf("%w: unknown role %q", ErrInvalidPlayer, p.Role)
	}
	if p.Age < MinPlayerAge || p.Age > MaxPlayerAge {
		return fmt.Errorf("%w: age must be between %d and %d", ErrInvalidPlayer, MinPlayerAge, MaxPlayerAge)
	}
	if p.JerseyNumber < MinJerseyNumber || p.JerseyNumber > MaxJerseyNumber {
		return fmt.Errorf("%w: jersey number must be between %d and %d", ErrInvalidPlayer, MinJerseyNumber, MaxJerseyNumber)
	}
	if strings.TrimSpace(p.Experience) == "" {
		return fmt.Errorf("%w: experience is required", ErrInvalidPlayer)
	}
	if err := checkCaps(ErrInvalidPlayer, []fieldCap{
		{"name", p.Name, MaxNameLength},
		{"experience", p.Experience, MaxExperienceLength},
		{"email", p.Email, MaxEmailLength},
		{"phone", p.Phone, MaxPhoneLength},
	}); err != nil {
		return err
	}

	s := p.Stats
	if s.Matches < 0 || s.Runs < 0 || s.Wickets < 0 || s.Catches < 0 || s.Stumps < 0 {
		return fmt.Errorf("%w: counters cannot be negative", ErrInvalidPlayer)
	}
	if s.Matches > MaxCounter || s.Runs > MaxCounter || s.Wickets > MaxCounter || s.Catches > MaxCounter || s.Stumps > MaxCounter {
		return fmt.Errorf("%w: counters must be at most %d", ErrInvalidPlayer, MaxCounter)
	}
	for _, rate := range []float64{s.Average, s.StrikeRate, s.Economy} {
		if math.IsNaN(rate) || rate < 0 {
			return fmt.Errorf("%w: rates cannot be negative", ErrInvalidPlayer)
		}
		if rate > MaxRate {
			return fmt.Errorf("%w: rates must be at most %.2f", ErrInvalidPlayer, MaxRate)
		}
	}
	return nil
}

// ValidateRoster checks the size cap and jersey uniqueness of a full roster.
func ValidateRoster(players []Player) error {
	if len(players) > MaxRosterSize {
		return fmt.Errorf("%w: maximum %d players allowed", ErrRosterFull, MaxRosterSize)
	}

	jerseys := make(map[int]string, len(players))
	ids := make(map[string]struct{}, len(players))
	for _, p := range players {
		if p.ID == "" {
			return fmt.Errorf("%w: player id is required", ErrInvalidPlayer)
		}
		if _, dup := ids[p.ID]; dup {
			return fmt.Errorf("%w: duplicate player id %s", ErrInvalidPlayer, p.ID)
		}
		ids[p.ID] = struct{}{}

		if holder, taken := jerseys[p.JerseyNumber]; taken {
			return fmt.Errorf("%w: jersey number %d is held by %s", ErrDuplicateJersey, p.JerseyNumber, holder)
		}
		jerseys[p.JerseyNumber] = p.Name
	}
	return nil
}

func (t Team) PlayerIndex(playerID string) int {
	for i := range t.Players {
		if t.Players[i].ID == playerID {
			return i
		}
	}
	return -1
}

func (t Team) FindPlayer(playerID string) (Player, bool) {
	idx := t.PlayerIndex(playerID)
	if idx < 0 {
		return Player{}, false
	}
	return t.Players[idx], true
}

func (t Team) jerseyHolder(number int, exceptID string) (Player, bool) {
	for _, p := range t.Players {
		if p.JerseyNumber == number && p.ID != exceptID {
			return p, true
		}
	}
	return Player{}, false
}

// AddPlayer appends p after checking the cap, field ranges and jersey uniqueness.
func (t *Team) AddPlayer(p Player) error {
	if len(t.Players) >= MaxRosterSize {
		return fmt.Errorf("%w: maximum %d players allowed", ErrRosterFull, MaxRosterSize)
	}
	if err := p.Validate(); err != nil {
		return err
	}
	if holder, taken := t.jerseyHolder(p.JerseyNumber, ""); taken {
		return fmt.Errorf("%w: jersey number %d is already taken by %s", ErrDuplicateJersey, p.JerseyNumber, holder.Name)
	}

	t.Players = append(t.Players, p)
	return nil
}

// ReplacePlayer swaps in the updated player with the same ID. Keeping the
// player's own jersey number is not a conflict.
func (t *Team) ReplacePlayer(p Player) error {
	idx := t.PlayerIndex(p.ID)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrPlayerNotFound, p.ID)
	}
	if err := p.Validate(); err != nil {
		return err
	}
	if holder, taken := t.jerseyHolder(p.JerseyNumber, p.ID); taken {
		return fmt.Errorf("%w: jersey number %d is already taken by %s", ErrDuplicateJersey, p.JerseyNumber, holder.Name)
	}

	t.Players[idx] = p
	return nil
}

func (t *Team) RemovePlayer(playerID string) (Player, error) {
	idx := t.PlayerIndex(playerID)
	if idx < 0 {
		return Player{}, fmt.Errorf("%w: %s", ErrPlayerNotFound, playerID)
	}

	removed := t.Players[idx]
	t.Players = append(t.Players[:idx:idx], t.Players[idx+1:]...)
	return removed, nil
}
