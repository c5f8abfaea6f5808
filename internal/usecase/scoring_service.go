package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sportsdesk/teamhub/internal/domain/match"
	"github.com/sportsdesk/teamhub/internal/domain/scoring"
	idgen "github.com/sportsdesk/teamhub/internal/platform/id"
	"github.com/sportsdesk/teamhub/internal/platform/logging"
)

const defaultLedgerAttempts = 3

// errScoringClosed marks a snapshot refresh that found the match no longer live.
var errScoringClosed = errors.New("match left live play while scoring")

type RecordDeliveryInput struct {
	Innings       int
	BattingTeamID string
	Runs          int
	Extras        int
	ExtraType     string
	IsWicket      bool
	DismissalType string
	BatsmanID     string
	BowlerID      string
	Commentary    string
}

// MatchSummary is the ledger view of a match.
type MatchSummary struct {
	Match      match.Match
	Innings    []scoring.InningsSummary
	Deliveries int
}

type DeliveryResult struct {
	Delivery scoring.Delivery
	Summary  MatchSummary
}

type ScoringService struct {
	matchRepo   match.Repository
	ledgerRepo  scoring.Repository
	idGen       idgen.Generator
	publisher   MatchPublisher
	logger      *logging.Logger
	now         func() time.Time
	maxAttempts int
}

func NewScoringService(
	matchRepo match.Repository,
	ledgerRepo scoring.Repository,
	idGen idgen.Generator,
	publisher MatchPublisher,
	logger *logging.Logger,
) *ScoringService {
	if logger == nil {
		logger = logging.Default()
	}
	if publisher == nil {
		publisher = noopPublisher{}
	}

	return &ScoringService{
		matchRepo:   matchRepo,
		ledgerRepo:  ledgerRepo,
		idGen:       idGen,
		publisher:   publisher,
		logger:      logger,
		now:         time.Now,
		maxAttempts: defaultLedgerAttempts,
	}
}

func (s *ScoringService) RecordDelivery(ctx context.Context, matchID string, input RecordDeliveryInput) (DeliveryResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.RecordDelivery")
	defer span.End()

	matchID, err := normalizeID("match", matchID)
	if err != nil {
		return DeliveryResult{}, err
	}

	for attempt := 1; ; attempt++ {
		current, err := s.loadMatch(ctx, matchID)
		if err != nil {
			return DeliveryResult{}, err
		}
		if current.Status != match.StatusLive {
			return DeliveryResult{}, fmt.Errorf("%w: match %s is %s, deliveries need a live match", ErrConflict, matchID, current.Status)
		}

		existing, err := s.ledgerRepo.ListByMatch(ctx, matchID)
		if err != nil {
			return DeliveryResult{}, fmt.Errorf("list deliveries: %w", err)
		}

		deliveryID, err := s.idGen.NewID()
		if err != nil {
			return DeliveryResult{}, fmt.Errorf("generate delivery id: %w", err)
		}

		d := scoring.Delivery{
			ID:            deliveryID,
			MatchID:       matchID,
			Innings:       input.Innings,
			Sequence:      len(existing) + 1,
			BattingTeamID: strings.ToLower(strings.TrimSpace(input.BattingTeamID)),
			Runs:          input.Runs,
			Extras:        input.Extras,
			ExtraType:     scoring.ExtraType(strings.ToLower(strings.TrimSpace(input.ExtraType))),
			IsWicket:      input.IsWicket,
			DismissalType: strings.TrimSpace(input.DismissalType),
			BatsmanID:     strings.TrimSpace(input.BatsmanID),
			BowlerID:      strings.TrimSpace(input.BowlerID),
			Commentary:    strings.TrimSpace(input.Commentary),
			CreatedAt:     s.now().UTC(),
		}
		if err := scoring.ValidateNext(current, existing, d); err != nil {
			return DeliveryResult{}, classifyLedgerError(err)
		}

		if err := s.ledgerRepo.Append(ctx, d); err != nil {
			if errors.Is(err, scoring.ErrSequenceConflict) && attempt < s.maxAttempts {
				s.logger.DebugContext(ctx, "delivery sequence taken, retrying", "match_id", matchID, "sequence", d.Sequence)
				continue
			}
			if errors.Is(err, scoring.ErrSequenceConflict) {
				return DeliveryResult{}, fmt.Errorf("%w: another delivery was recorded concurrently", ErrConflict)
			}
			return DeliveryResult{}, fmt.Errorf("append delivery: %w", err)
		}

		summary, err := s.refreshSnapshot(ctx, matchID)
		if errors.Is(err, errScoringClosed) {
			if dropErr := s.dropUnscored(ctx, matchID, summary.Match.LedgerSequence); dropErr != nil {
				return DeliveryResult{}, dropErr
			}
			if d.Sequence > summary.Match.LedgerSequence {
				return DeliveryResult{}, err
			}
			summary, err = s.Summary(ctx, matchID)
		}
		if err != nil {
			return DeliveryResult{}, err
		}

		s.logger.InfoContext(ctx, "delivery recorded",
			"match_id", matchID,
			"sequence", d.Sequence,
			"innings", d.Innings,
			"label", d.Label(),
			"overs", summary.Match.Score.Overs,
		)
		return DeliveryResult{Delivery: d, Summary: summary}, nil
	}
}

func (s *ScoringService) UndoLastDelivery(ctx context.Context, matchID string) (DeliveryResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.UndoLastDelivery")
	defer span.End()

	matchID, err := normalizeID("match", matchID)
	if err != nil {
		return DeliveryResult{}, err
	}

	current, err := s.loadMatch(ctx, matchID)
	if err != nil {
		return DeliveryResult{}, err
	}
	if current.Status != match.StatusLive {
		return DeliveryResult{}, fmt.Errorf("%w: match %s is %s, only live matches can be corrected", ErrConflict, matchID, current.Status)
	}

	removed, found, err := s.ledgerRepo.DeleteLast(ctx, matchID)
	if err != nil {
		return DeliveryResult{}, fmt.Errorf("delete last delivery: %w", err)
	}
	if !found {
		return DeliveryResult{}, fmt.Errorf("%w: match %s has no deliveries", ErrNotFound, matchID)
	}

	summary, err := s.refreshSnapshot(ctx, matchID)
	if errors.Is(err, errScoringClosed) && removed.Sequence <= summary.Match.LedgerSequence {
		if restoreErr := s.ledgerRepo.Append(ctx, removed); restoreErr != nil {
			return DeliveryResult{}, fmt.Errorf("restore delivery %d: %w", removed.Sequence, restoreErr)
		}
	}
	if err != nil {
		return DeliveryResult{}, err
	}

	s.logger.InfoContext(ctx, "delivery undone", "match_id", matchID, "sequence", removed.Sequence)
	return DeliveryResult{Delivery: removed, Summary: summary}, nil
}

func (s *ScoringService) ListDeliveries(ctx context.Context, matchID string) ([]scoring.Delivery, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.ListDeliveries")
	defer span.End()

	matchID, err := normalizeID("match", matchID)
	if err != nil {
		return nil, err
	}
	if _, err := s.loadMatch(ctx, matchID); err != nil {
		return nil, err
	}

	deliveries, err := s.ledgerRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	return deliveries, nil
}

func (s *ScoringService) Summary(ctx context.Context, matchID string) (MatchSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.Summary")
	defer span.End()

	matchID, err := normalizeID("match", matchID)
	if err != nil {
		return MatchSummary{}, err
	}
	current, err := s.loadMatch(ctx, matchID)
	if err != nil {
		return MatchSummary{}, err
	}

	deliveries, err := s.ledgerRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return MatchSummary{}, fmt.Errorf("list deliveries: %w", err)
	}
	return MatchSummary{
		Match:      current,
		Innings:    scoring.Summarize(deliveries, current.Overs),
		Deliveries: len(deliveries),
	}, nil
}

// refreshSnapshot recomputes the match score from the full ledger and stores
// it on the match. Concurrent status changes are retried on a fresh read.
// A match that is no longer live keeps its score and fails with
// errScoringClosed, returning the stored match in the summary.
func (s *ScoringService) refreshSnapshot(ctx context.Context, matchID string) (MatchSummary, error) {
	for attempt := 1; ; attempt++ {
		current, err := s.loadMatch(ctx, matchID)
		if err != nil {
			return MatchSummary{}, err
		}
		if current.Status != match.StatusLive {
			return MatchSummary{Match: current}, fmt.Errorf("%w: %w: match %s is %s", ErrConflict, errScoringClosed, matchID, current.Status)
		}
		deliveries, err := s.ledgerRepo.ListByMatch(ctx, matchID)
		if err != nil {
			return MatchSummary{}, fmt.Errorf("list deliveries: %w", err)
		}

		innings := scoring.Summarize(deliveries, current.Overs)
		next := current
		next.Score = scoring.ScoreFor(current, innings)
		next.LedgerSequence = 0
		if len(deliveries) > 0 {
			next.LedgerSequence = deliveries[len(deliveries)-1].Sequence
		}
		next.Version = current.Version + 1
		next.UpdatedAt = s.now().UTC()

		err = s.matchRepo.Update(ctx, next, current.Version)
		if err == nil {
			s.publisher.Publish(ctx, next)
			return MatchSummary{Match: next, Innings: innings, Deliveries: len(deliveries)}, nil
		}
		if errors.Is(err, match.ErrVersionConflict) && attempt < s.maxAttempts {
			continue
		}
		if errors.Is(err, match.ErrVersionConflict) {
			return MatchSummary{}, fmt.Errorf("%w: match %s changed while scoring, reload and retry", ErrConflict, matchID)
		}
		return MatchSummary{}, fmt.Errorf("update match score: %w", err)
	}
}

// dropUnscored removes deliveries appended after the last one folded into
// the stored score.
func (s *ScoringService) dropUnscored(ctx context.Context, matchID string, scoredThrough int) error {
	for {
		removed, found, err := s.ledgerRepo.DeleteLast(ctx, matchID)
		if err != nil {
			return fmt.Errorf("delete unscored delivery: %w", err)
		}
		if !found {
			return nil
		}
		if removed.Sequence <= scoredThrough {
			if err := s.ledgerRepo.Append(ctx, removed); err != nil {
				return fmt.Errorf("restore delivery %d: %w", removed.Sequence, err)
			}
			return nil
		}
		s.logger.WarnContext(ctx, "dropped delivery recorded after match left live play", "match_id", matchID, "sequence", removed.Sequence)
	}
}

func (s *ScoringService) loadMatch(ctx context.Context, matchID string) (match.Match, error) {
	item, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	return item, nil
}

func classifyLedgerError(err error) error {
	switch {
	case errors.Is(err, scoring.ErrInningsClosed):
		return fmt.Errorf("%w: %w", ErrConflict, err)
	case errors.Is(err, scoring.ErrInvalidDelivery):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	default:
		return err
	}
}
