package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sportsdesk/teamhub/internal/domain/admin"
	"github.com/sportsdesk/teamhub/internal/domain/team"
	idgen "github.com/sportsdesk/teamhub/internal/platform/id"
	"github.com/sportsdesk/teamhub/internal/platform/logging"
	"github.com/sportsdesk/teamhub/internal/platform/workerpool"
)

const defaultMaxSaveAttempts = 3

type CreateTeamInput struct {
	Name         string
	ShortName    string
	Captain      string
	Coach        string
	Established  string
	HomeGround   string
	ContactEmail string
	ContactPhone string
	Logo         string
}

// UpdateTeamInput is a partial update. Nil fields are left untouched.
type UpdateTeamInput struct {
	Name         *string
	ShortName    *string
	Captain      *string
	Coach        *string
	Established  *string
	HomeGround   *string
	ContactEmail *string
	ContactPhone *string
	Logo         *string
}

type PlayerStatsInput struct {
	Matches    int
	Runs       int
	Wickets    int
	Catches    int
	Stumps     int
	Average    float64
	StrikeRate float64
	Economy    float64
}

type AddPlayerInput struct {
	Name         string
	Role         string
	Age          int
	JerseyNumber int
	Experience   string
	Email        string
	Phone        string
	Stats        PlayerStatsInput
}

// UpdatePlayerInput carries the allow-listed player fields; nil means unchanged.
type UpdatePlayerInput struct {
	Name         *string
	Role         *string
	Age          *int
	JerseyNumber *int
	Experience   *string
	Email        *string
	Phone        *string
	Matches      *int
	Runs         *int
	Wickets      *int
	Catches      *int
	Stumps       *int
	Average      *float64
	StrikeRate   *float64
	Economy      *float64
}

type PlayerUpdateResult struct {
	Player team.Player
	Team   team.Team
}

type TeamService struct {
	teamRepo        team.Repository
	idGen           idgen.Generator
	pool            *workerpool.Pool
	logger          *logging.Logger
	now             func() time.Time
	maxSaveAttempts int
}

func NewTeamService(teamRepo team.Repository, idGen idgen.Generator, pool *workerpool.Pool, logger *logging.Logger) *TeamService {
	if logger == nil {
		logger = logging.Default()
	}

	return &TeamService{
		teamRepo:        teamRepo,
		idGen:           idGen,
		pool:            pool,
		logger:          logger,
		now:             time.Now,
		maxSaveAttempts: defaultMaxSaveAttempts,
	}
}

func (s *TeamService) ListActive(ctx context.Context) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ListActive")
	defer span.End()

	teams, err := s.teamRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active teams: %w", err)
	}
	return teams, nil
}

func (s *TeamService) Get(ctx context.Context, teamID string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Get")
	defer span.End()

	teamID, err := normalizeID("team", teamID)
	if err != nil {
		return team.Team{}, err
	}
	return s.loadActive(ctx, teamID)
}

func (s *TeamService) loadActive(ctx context.Context, teamID string) (team.Team, error) {
	item, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team: %w", err)
	}
	if !exists || !item.IsActive {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}
	return item, nil
}

func (s *TeamService) Create(ctx context.Context, input CreateTeamInput, principal admin.Principal) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Create")
	defer span.End()

	if strings.TrimSpace(principal.ID) == "" {
		return team.Team{}, fmt.Errorf("%w: an authenticated admin is required", ErrUnauthorized)
	}

	teamID, err := s.idGen.NewID()
	if err != nil {
		return team.Team{}, fmt.Errorf("generate team id: %w", err)
	}

	now := s.now().UTC()
	item := team.Team{
		ID:           teamID,
		Name:         strings.TrimSpace(input.Name),
		ShortName:    team.NormalizeShortName(input.ShortName),
		Captain:      strings.TrimSpace(input.Captain),
		Coach:        strings.TrimSpace(input.Coach),
		Established:  strings.TrimSpace(input.Established),
		HomeGround:   strings.TrimSpace(input.HomeGround),
		ContactEmail: admin.NormalizeEmail(input.ContactEmail),
		ContactPhone: strings.TrimSpace(input.ContactPhone),
		Logo:         strings.TrimSpace(input.Logo),
		Players:      []team.Player{},
		IsActive:     true,
		CreatedBy:    principal.ID,
		Version:      1,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := item.Validate(); err != nil {
		return team.Team{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	if err := s.ensureUniqueIdentity(ctx, item.Name, item.ShortName, ""); err != nil {
		return team.Team{}, err
	}

	if err := s.teamRepo.Create(ctx, item); err != nil {
		if errors.Is(err, team.ErrDuplicateTeam) {
			return team.Team{}, fmt.Errorf("%w: %w", ErrConflict, err)
		}
		return team.Team{}, fmt.Errorf("create team: %w", err)
	}

	s.logger.InfoContext(ctx, "team created", "team_id", item.ID, "short_name", item.ShortName, "created_by", principal.ID)
	return item, nil
}

func (s *TeamService) ensureUniqueIdentity(ctx context.Context, name, shortName, excludeTeamID string) error {
	existing, found, err := s.teamRepo.FindActiveConflict(ctx, team.NameKey(name), shortName, excludeTeamID)
	if err != nil {
		return fmt.Errorf("check team uniqueness: %w", err)
	}
	if !found {
		return nil
	}
	if existing.NameKey() == team.NameKey(name) {
		return fmt.Errorf("%w: team name %q is already in use", ErrConflict, name)
	}
	return fmt.Errorf("%w: short name %q is already in use", ErrConflict, shortName)
}

func (s *TeamService) Update(ctx context.Context, teamID string, input UpdateTeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Update")
	defer span.End()

	teamID, err := normalizeID("team", teamID)
	if err != nil {
		return team.Team{}, err
	}

	return s.mutate(ctx, teamID, func(ctx context.Context, next *team.Team) error {
		identityChanged := false
		if v := trimPtr(input.Name); v != nil && *v != next.Name {
			identityChanged = identityChanged || team.NameKey(*v) != next.NameKey()
			next.Name = *v
		}
		if input.ShortName != nil {
			short := team.NormalizeShortName(*input.ShortName)
			identityChanged = identityChanged || short != next.ShortName
			next.ShortName = short
		}
		if v := trimPtr(input.Captain); v != nil {
			next.Captain = *v
		}
		if v := trimPtr(input.Coach); v != nil {
			next.Coach = *v
		}
		if v := trimPtr(input.Established); v != nil {
			next.Established = *v
		}
		if v := trimPtr(input.HomeGround); v != nil {
			next.HomeGround = *v
		}
		if input.ContactEmail != nil {
			next.ContactEmail = admin.NormalizeEmail(*input.ContactEmail)
		}
		if v := trimPtr(input.ContactPhone); v != nil {
			next.ContactPhone = *v
		}
		if v := trimPtr(input.Logo); v != nil {
			next.Logo = *v
		}

		if err := next.Validate(); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidInput, err)
		}
		if identityChanged {
			return s.ensureUniqueIdentity(ctx, next.Name, next.ShortName, next.ID)
		}
		return nil
	})
}

func (s *TeamService) SoftDelete(ctx context.Context, teamID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.SoftDelete")
	defer span.End()

	teamID, err := normalizeID("team", teamID)
	if err != nil {
		return err
	}

	_, err = s.mutate(ctx, teamID, func(_ context.Context, next *team.Team) error {
		next.IsActive = false
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "team deactivated", "team_id", teamID)
	return nil
}

func (s *TeamService) AddPlayer(ctx context.Context, teamID string, input AddPlayerInput) (team.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.AddPlayer")
	defer span.End()

	teamID, err := normalizeID("team", teamID)
	if err != nil {
		return team.Player{}, err
	}

	var added team.Player
	_, err = s.mutate(ctx, teamID, func(_ context.Context, next *team.Team) error {
		playerID, err := s.idGen.NewID()
		if err != nil {
			return fmt.Errorf("generate player id: %w", err)
		}

		now := s.now().UTC()
		candidate := team.Player{
			ID:           playerID,
			JerseyNumber: input.JerseyNumber,
			Name:         strings.TrimSpace(input.Name),
			Role:         team.Role(strings.TrimSpace(input.Role)),
			Age:          input.Age,
			Experience:   strings.TrimSpace(input.Experience),
			Email:        admin.NormalizeEmail(input.Email),
			Phone:        strings.TrimSpace(input.Phone),
			Stats: team.PlayerStats{
				Matches:    input.Stats.Matches,
				Runs:       input.Stats.Runs,
				Wickets:    input.Stats.Wickets,
				Catches:    input.Stats.Catches,
				Stumps:     input.Stats.Stumps,
				Average:    input.Stats.Average,
				StrikeRate: input.Stats.StrikeRate,
				Economy:    input.Stats.Economy,
			},
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := next.AddPlayer(candidate); err != nil {
			return err
		}
		added = candidate
		return nil
	})
	if err != nil {
		return team.Player{}, err
	}

	s.logger.InfoContext(ctx, "player added", "team_id", teamID, "player_id", added.ID, "jersey", added.JerseyNumber)
	return added, nil
}

func (s *TeamService) UpdatePlayer(ctx context.Context, teamID, playerID string, input UpdatePlayerInput) (PlayerUpdateResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.UpdatePlayer")
	defer span.End()

	teamID, err := normalizeID("team", teamID)
	if err != nil {
		return PlayerUpdateResult{}, err
	}
	playerID, err = normalizeID("player", playerID)
	if err != nil {
		return PlayerUpdateResult{}, err
	}

	var updated team.Player
	saved, err := s.mutate(ctx, teamID, func(_ context.Context, next *team.Team) error {
		current, ok := next.FindPlayer(playerID)
		if !ok {
			return fmt.Errorf("%w: %w: %s", ErrNotFound, team.ErrPlayerNotFound, playerID)
		}

		applyPlayerPatch(&current, input)
		current.UpdatedAt = s.now().UTC()
		if err := next.ReplacePlayer(current); err != nil {
			return err
		}
		updated = current
		return nil
	})
	if err != nil {
		return PlayerUpdateResult{}, err
	}

	return PlayerUpdateResult{Player: updated, Team: saved}, nil
}

func applyPlayerPatch(p *team.Player, in UpdatePlayerInput) {
	if v := trimPtr(in.Name); v != nil {
		p.Name = *v
	}
	if v := trimPtr(in.Role); v != nil {
		p.Role = team.Role(*v)
	}
	if in.Age != nil {
		p.Age = *in.Age
	}
	if in.JerseyNumber != nil {
		p.JerseyNumber = *in.JerseyNumber
	}
	if v := trimPtr(in.Experience); v != nil {
		p.Experience = *v
	}
	if in.Email != nil {
		p.Email = admin.NormalizeEmail(*in.Email)
	}
	if v := trimPtr(in.Phone); v != nil {
		p.Phone = *v
	}
	if in.Matches != nil {
		p.Stats.Matches = *in.Matches
	}
	if in.Runs != nil {
		p.Stats.Runs = *in.Runs
	}
	if in.Wickets != nil {
		p.Stats.Wickets = *in.Wickets
	}
	if in.Catches != nil {
		p.Stats.Catches = *in.Catches
	}
	if in.Stumps != nil {
		p.Stats.Stumps = *in.Stumps
	}
	if in.Average != nil {
		p.Stats.Average = *in.Average
	}
	if in.StrikeRate != nil {
		p.Stats.StrikeRate = *in.StrikeRate
	}
	if in.Economy != nil {
		p.Stats.Economy = *in.Economy
	}
}

func (s *TeamService) DeletePlayer(ctx context.Context, teamID, playerID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.DeletePlayer")
	defer span.End()

	teamID, err := normalizeID("team", teamID)
	if err != nil {
		return err
	}
	playerID, err = normalizeID("player", playerID)
	if err != nil {
		return err
	}

	_, err = s.mutate(ctx, teamID, func(_ context.Context, next *team.Team) error {
		if _, err := next.RemovePlayer(playerID); err != nil {
			return fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return nil
	})
	return err
}

func (s *TeamService) Stats(ctx context.Context, teamID string) (team.Stats, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Stats")
	defer span.End()

	item, err := s.Get(ctx, teamID)
	if err != nil {
		return team.Stats{}, err
	}
	return team.ComputeStats(item), nil
}

// Overview aggregates roster stats across active teams on the worker pool.
func (s *TeamService) Overview(ctx context.Context) (team.Overview, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Overview")
	defer span.End()

	teams, err := s.teamRepo.ListActive(ctx)
	if err != nil {
		return team.Overview{}, fmt.Errorf("list active teams: %w", err)
	}

	perTeam, err := workerpool.Map(ctx, s.pool, teams, func(_ context.Context, item team.Team) (team.Stats, error) {
		return team.ComputeStats(item), nil
	})
	if err != nil {
		return team.Overview{}, fmt.Errorf("compute team stats: %w", err)
	}

	overview := team.Overview{Teams: make([]team.Stats, 0, len(perTeam))}
	for _, stats := range perTeam {
		overview.Merge(stats)
	}
	return overview, nil
}

// RecordMatchOutcome advances a team's match counters. Inactive teams still
// get their record updated so history stays consistent.
func (s *TeamService) RecordMatchOutcome(ctx context.Context, teamID string, outcome team.Outcome) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.RecordMatchOutcome")
	defer span.End()

	_, err := s.mutateAny(ctx, teamID, false, func(_ context.Context, next *team.Team) error {
		return next.RecordOutcome(outcome)
	})
	return err
}

func (s *TeamService) mutate(ctx context.Context, teamID string, apply func(context.Context, *team.Team) error) (team.Team, error) {
	return s.mutateAny(ctx, teamID, true, apply)
}

// mutateAny is the single write path for the aggregate: load, apply on a copy,
// save with the loaded version, retry on a version conflict.
func (s *TeamService) mutateAny(ctx context.Context, teamID string, activeOnly bool, apply func(context.Context, *team.Team) error) (team.Team, error) {
	for attempt := 1; ; attempt++ {
		current, exists, err := s.teamRepo.GetByID(ctx, teamID)
		if err != nil {
			return team.Team{}, fmt.Errorf("get team: %w", err)
		}
		if !exists || (activeOnly && !current.IsActive) {
			return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
		}

		next := current.Clone()
		if err := apply(ctx, &next); err != nil {
			return team.Team{}, classifyTeamError(err)
		}
		next.Version = current.Version + 1
		next.UpdatedAt = s.now().UTC()

		err = s.teamRepo.Save(ctx, next, current.Version)
		if err == nil {
			return next, nil
		}
		if errors.Is(err, team.ErrVersionConflict) {
			if attempt < s.maxSaveAttempts {
				s.logger.DebugContext(ctx, "team version conflict, retrying", "team_id", teamID, "attempt", attempt)
				continue
			}
			s.logger.WarnContext(ctx, "team update abandoned after version conflicts", "team_id", teamID, "attempts", attempt)
			return team.Team{}, fmt.Errorf("%w: team %s was modified concurrently, retry the request", ErrConflict, teamID)
		}
		if errors.Is(err, team.ErrDuplicateTeam) || errors.Is(err, team.ErrDuplicateJersey) {
			return team.Team{}, fmt.Errorf("%w: %w", ErrConflict, err)
		}
		return team.Team{}, fmt.Errorf("save team: %w", err)
	}
}

// classifyTeamError attaches the usecase category to domain rule violations.
func classifyTeamError(err error) error {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrNotFound), errors.Is(err, ErrConflict):
		return err
	case errors.Is(err, team.ErrDuplicateJersey), errors.Is(err, team.ErrDuplicateTeam):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	case errors.Is(err, team.ErrRosterFull), errors.Is(err, team.ErrInvalidPlayer), errors.Is(err, team.ErrInvalidTeam):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	case errors.Is(err, team.ErrPlayerNotFound):
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	default:
		return err
	}
}
