package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sportsdesk/teamhub/internal/domain/admin"
	"github.com/sportsdesk/teamhub/internal/domain/match"
	"github.com/sportsdesk/teamhub/internal/domain/scoring"
	"github.com/sportsdesk/teamhub/internal/domain/team"
	idgen "github.com/sportsdesk/teamhub/internal/platform/id"
	"github.com/sportsdesk/teamhub/internal/platform/logging"
)

// MatchPublisher receives every persisted score change.
type MatchPublisher interface {
	Publish(ctx context.Context, m match.Match)
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, match.Match) {}

type teamDirectory interface {
	Get(ctx context.Context, teamID string) (team.Team, error)
	RecordMatchOutcome(ctx context.Context, teamID string, outcome team.Outcome) error
}

type CreateMatchInput struct {
	TeamA string
	TeamB string
	Date  time.Time
	Venue string
	Overs int
}

type ListMatchesInput struct {
	Status string
	TeamID string
}

// UpdateScoreInput overwrites the score and/or status wholesale.
type UpdateScoreInput struct {
	Score  *match.Score
	Status *string
	Result *match.Result
}

type MatchService struct {
	matchRepo  match.Repository
	ledgerRepo scoring.Repository
	teams      teamDirectory
	idGen      idgen.Generator
	publisher  MatchPublisher
	logger     *logging.Logger
	now        func() time.Time
}

func NewMatchService(
	matchRepo match.Repository,
	ledgerRepo scoring.Repository,
	teams teamDirectory,
	idGen idgen.Generator,
	publisher MatchPublisher,
	logger *logging.Logger,
) *MatchService {
	if logger == nil {
		logger = logging.Default()
	}
	if publisher == nil {
		publisher = noopPublisher{}
	}

	return &MatchService{
		matchRepo:  matchRepo,
		ledgerRepo: ledgerRepo,
		teams:      teams,
		idGen:      idGen,
		publisher:  publisher,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *MatchService) Create(ctx context.Context, input CreateMatchInput, principal admin.Principal) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Create")
	defer span.End()

	teamA, err := normalizeID("teamA", input.TeamA)
	if err != nil {
		return match.Match{}, err
	}
	teamB, err := normalizeID("teamB", input.TeamB)
	if err != nil {
		return match.Match{}, err
	}
	if teamA == teamB {
		return match.Match{}, fmt.Errorf("%w: teamA and teamB must differ", ErrInvalidInput)
	}
	for _, teamID := range []string{teamA, teamB} {
		if _, err := s.teams.Get(ctx, teamID); err != nil {
			if errors.Is(err, ErrNotFound) {
				return match.Match{}, fmt.Errorf("%w: team %s does not exist or is inactive", ErrInvalidInput, teamID)
			}
			return match.Match{}, err
		}
	}

	matchID, err := s.idGen.NewID()
	if err != nil {
		return match.Match{}, fmt.Errorf("generate match id: %w", err)
	}

	overs := input.Overs
	if overs == 0 {
		overs = match.DefaultOvers
	}

	now := s.now().UTC()
	item := match.Match{
		ID:        matchID,
		TeamA:     teamA,
		TeamB:     teamB,
		Date:      input.Date.UTC(),
		Venue:     strings.TrimSpace(input.Venue),
		Overs:     overs,
		Status:    match.StatusScheduled,
		Score:     match.ZeroScore(),
		CreatedBy: principal.ID,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := item.Validate(); err != nil {
		return match.Match{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if err := s.matchRepo.Create(ctx, item); err != nil {
		return match.Match{}, fmt.Errorf("create match: %w", err)
	}

	s.logger.InfoContext(ctx, "match scheduled", "match_id", item.ID, "team_a", teamA, "team_b", teamB)
	return item, nil
}

func (s *MatchService) List(ctx context.Context, input ListMatchesInput) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.List")
	defer span.End()

	filter := match.Filter{}
	if status := strings.TrimSpace(input.Status); status != "" {
		filter.Status = match.Status(strings.ToLower(status))
		if !filter.Status.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, status)
		}
	}
	if strings.TrimSpace(input.TeamID) != "" {
		teamID, err := normalizeID("team", input.TeamID)
		if err != nil {
			return nil, err
		}
		filter.TeamID = teamID
	}

	items, err := s.matchRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	return items, nil
}

func (s *MatchService) Get(ctx context.Context, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Get")
	defer span.End()

	matchID, err := normalizeID("match", matchID)
	if err != nil {
		return match.Match{}, err
	}
	return s.load(ctx, matchID)
}

func (s *MatchService) load(ctx context.Context, matchID string) (match.Match, error) {
	item, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	return item, nil
}

func (s *MatchService) UpdateScore(ctx context.Context, matchID string, input UpdateScoreInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.UpdateScore")
	defer span.End()

	matchID, err := normalizeID("match", matchID)
	if err != nil {
		return match.Match{}, err
	}
	if input.Score == nil && input.Status == nil {
		return match.Match{}, fmt.Errorf("%w: score or status is required", ErrInvalidInput)
	}

	current, err := s.load(ctx, matchID)
	if err != nil {
		return match.Match{}, err
	}
	next := current

	if input.Score != nil {
		deliveries, err := s.ledgerRepo.CountByMatch(ctx, matchID)
		if err != nil {
			return match.Match{}, fmt.Errorf("count deliveries: %w", err)
		}
		if deliveries > 0 {
			return match.Match{}, fmt.Errorf("%w: match %s is scored ball by ball, undo deliveries instead", ErrConflict, matchID)
		}
		if err := input.Score.Validate(); err != nil {
			return match.Match{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		next.Score = *input.Score
	}

	if input.Status != nil {
		target := match.Status(strings.ToLower(strings.TrimSpace(*input.Status)))
		if !target.Valid() {
			return match.Match{}, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *input.Status)
		}
		if !match.CanTransition(current.Status, target) {
			return match.Match{}, fmt.Errorf("%w: %w: %s -> %s", ErrConflict, match.ErrInvalidTransition, current.Status, target)
		}
		next.Status = target
	}

	completing := next.Status == match.StatusCompleted && current.Status != match.StatusCompleted
	if completing {
		if input.Result == nil {
			return match.Match{}, fmt.Errorf("%w: a result is required to complete a match", ErrInvalidInput)
		}
		result := match.Result{WinnerTeamID: strings.ToLower(strings.TrimSpace(input.Result.WinnerTeamID)), IsDraw: input.Result.IsDraw}
		if err := current.ValidateResult(result); err != nil {
			return match.Match{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		next.Result = &result
	}

	next.Version = current.Version + 1
	next.UpdatedAt = s.now().UTC()
	if err := s.matchRepo.Update(ctx, next, current.Version); err != nil {
		if errors.Is(err, match.ErrVersionConflict) {
			return match.Match{}, fmt.Errorf("%w: match %s changed while updating, reload and retry", ErrConflict, matchID)
		}
		return match.Match{}, fmt.Errorf("update match: %w", err)
	}

	if completing {
		if err := s.recordOutcomes(ctx, next); err != nil {
			return match.Match{}, err
		}
	}

	s.publisher.Publish(ctx, next)
	s.logger.InfoContext(ctx, "match updated", "match_id", matchID, "status", next.Status, "overs", next.Score.Overs)
	return next, nil
}

func (s *MatchService) recordOutcomes(ctx context.Context, m match.Match) error {
	outcomes := map[string]team.Outcome{}
	switch {
	case m.Result.IsDraw:
		outcomes[m.TeamA] = team.OutcomeDrawn
		outcomes[m.TeamB] = team.OutcomeDrawn
	case m.Result.WinnerTeamID == m.TeamA:
		outcomes[m.TeamA] = team.OutcomeWon
		outcomes[m.TeamB] = team.OutcomeLost
	default:
		outcomes[m.TeamA] = team.OutcomeLost
		outcomes[m.TeamB] = team.OutcomeWon
	}

	for _, teamID := range []string{m.TeamA, m.TeamB} {
		if err := s.teams.RecordMatchOutcome(ctx, teamID, outcomes[teamID]); err != nil {
			s.logger.ErrorContext(ctx, "record match outcome failed", "match_id", m.ID, "team_id", teamID, "error", err)
			return fmt.Errorf("record outcome for team %s: %w", teamID, err)
		}
	}
	return nil
}

func (s *MatchService) Delete(ctx context.Context, matchID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Delete")
	defer span.End()

	matchID, err := normalizeID("match", matchID)
	if err != nil {
		return err
	}

	current, err := s.load(ctx, matchID)
	if err != nil {
		return err
	}
	if !current.Deletable() {
		return fmt.Errorf("%w: %s matches cannot be deleted", ErrConflict, current.Status)
	}
	deliveries, err := s.ledgerRepo.CountByMatch(ctx, matchID)
	if err != nil {
		return fmt.Errorf("count deliveries: %w", err)
	}
	if deliveries > 0 {
		return fmt.Errorf("%w: match %s has recorded deliveries", ErrConflict, matchID)
	}

	if err := s.matchRepo.Delete(ctx, matchID); err != nil {
		return fmt.Errorf("delete match: %w", err)
	}

	s.logger.InfoContext(ctx, "match deleted", "match_id", matchID)
	return nil
}
