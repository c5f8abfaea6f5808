package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/sportsdesk/teamhub/internal/domain/match"
	"github.com/sportsdesk/teamhub/internal/domain/scoring"
	"github.com/sportsdesk/teamhub/internal/platform/logging"
)

func TestScoringService_RequiresLiveMatch(t *testing.T) {
	env := newTestEnv(t)
	home, _, m := seedFixture(t, env)

	_, err := env.scoring.RecordDelivery(t.Context(), m.ID, RecordDeliveryInput{Innings: 1, BattingTeamID: home.ID, Runs: 1})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for scheduled match, got %v", err)
	}
}

func TestScoringService_LedgerDrivesScore(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()
	home, away, m := seedFixture(t, env)

	if _, err := env.matches.UpdateScore(ctx, m.ID, UpdateScoreInput{Status: statusPtr(match.StatusLive)}); err != nil {
		t.Fatalf("go live: %v", err)
	}

	balls := []RecordDeliveryInput{
		{Innings: 1, BattingTeamID: home.ID, Runs: 4},
		{Innings: 1, BattingTeamID: home.ID, ExtraType: "wide", Extras: 1},
		{Innings: 1, BattingTeamID: home.ID, Runs: 1},
		{Innings: 1, BattingTeamID: home.ID, IsWicket: true, DismissalType: "bowled"},
		{Innings: 1, BattingTeamID: home.ID, ExtraType: "no_ball", Extras: 1, Runs: 6},
		{Innings: 1, BattingTeamID: home.ID, Runs: 2},
		{Innings: 1, BattingTeamID: home.ID},
		{Innings: 1, BattingTeamID: home.ID, ExtraType: "leg_bye", Extras: 1},
	}
	var last DeliveryResult
	for i, in := range balls {
		res, err := env.scoring.RecordDelivery(ctx, m.ID, in)
		if err != nil {
			t.Fatalf("record ball %d: %v", i+1, err)
		}
		if res.Delivery.Sequence != i+1 {
			t.Fatalf("unexpected sequence: got=%d want=%d", res.Delivery.Sequence, i+1)
		}
		last = res
	}

	// 4 + 1wd + 1 + W + (6+1nb) + 2 + 0 + 1lb = 16/1 off 6 legal balls.
	score := last.Summary.Match.Score
	if score.TeamA != (match.SideScore{Runs: 16, Wickets: 1}) || score.Overs != "1.0" {
		t.Fatalf("unexpected snapshot: %+v", score)
	}
	if score.TeamB != (match.SideScore{}) {
		t.Fatalf("team B should not have batted: %+v", score.TeamB)
	}

	stored, err := env.matches.Get(ctx, m.ID)
	if err != nil {
		t.Fatalf("get match: %v", err)
	}
	if stored.Score != score {
		t.Fatalf("stored score differs from summary: %+v vs %+v", stored.Score, score)
	}

	manual := &match.Score{Overs: "0.0"}
	if _, err := env.matches.UpdateScore(ctx, m.ID, UpdateScoreInput{Score: manual}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected manual overwrite to conflict with ledger, got %v", err)
	}
	if err := env.matches.Delete(ctx, m.ID); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected delete with deliveries to conflict, got %v", err)
	}

	if _, err := env.scoring.RecordDelivery(ctx, m.ID, RecordDeliveryInput{Innings: 2, BattingTeamID: home.ID}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected same team second innings to be invalid, got %v", err)
	}
	second, err := env.scoring.RecordDelivery(ctx, m.ID, RecordDeliveryInput{Innings: 2, BattingTeamID: away.ID, Runs: 3})
	if err != nil {
		t.Fatalf("second innings: %v", err)
	}
	if second.Summary.Match.Score.TeamB.Runs != 3 || second.Summary.Match.Score.Overs != "0.1" {
		t.Fatalf("unexpected second innings score: %+v", second.Summary.Match.Score)
	}
	if _, err := env.scoring.RecordDelivery(ctx, m.ID, RecordDeliveryInput{Innings: 1, BattingTeamID: home.ID}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected first innings to be closed, got %v", err)
	}
}

func TestScoringService_InningsClosesAtOversLimit(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()
	home, _, m := seedFixture(t, env)

	if _, err := env.matches.UpdateScore(ctx, m.ID, UpdateScoreInput{Status: statusPtr(match.StatusLive)}); err != nil {
		t.Fatalf("go live: %v", err)
	}
	// seedFixture schedules two overs.
	for i := 0; i < 2*scoring.BallsPerOver; i++ {
		if _, err := env.scoring.RecordDelivery(ctx, m.ID, RecordDeliveryInput{Innings: 1, BattingTeamID: home.ID, Runs: 1}); err != nil {
			t.Fatalf("ball %d: %v", i+1, err)
		}
	}

	_, err := env.scoring.RecordDelivery(ctx, m.ID, RecordDeliveryInput{Innings: 1, BattingTeamID: home.ID, Runs: 1})
	if !errors.Is(err, ErrConflict) || !errors.Is(err, scoring.ErrInningsClosed) {
		t.Fatalf("expected innings closed, got %v", err)
	}

	summary, err := env.scoring.Summary(ctx, m.ID)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if len(summary.Innings) != 1 || !summary.Innings[0].Closed || summary.Innings[0].Overs != "2.0" || summary.Innings[0].RunRate != 6 {
		t.Fatalf("unexpected summary: %+v", summary.Innings)
	}
}

func TestScoringService_UndoLastDelivery(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()
	home, _, m := seedFixture(t, env)

	if _, err := env.matches.UpdateScore(ctx, m.ID, UpdateScoreInput{Status: statusPtr(match.StatusLive)}); err != nil {
		t.Fatalf("go live: %v", err)
	}
	if _, err := env.scoring.UndoLastDelivery(ctx, m.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on empty ledger, got %v", err)
	}

	for _, runs := range []int{1, 6} {
		if _, err := env.scoring.RecordDelivery(ctx, m.ID, RecordDeliveryInput{Innings: 1, BattingTeamID: home.ID, Runs: runs}); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	undone, err := env.scoring.UndoLastDelivery(ctx, m.ID)
	if err != nil {
		t.Fatalf("undo: %v", err)
	}
	if undone.Delivery.Runs != 6 || undone.Delivery.Sequence != 2 {
		t.Fatalf("unexpected undone delivery: %+v", undone.Delivery)
	}
	if undone.Summary.Match.Score.TeamA.Runs != 1 || undone.Summary.Match.Score.Overs != "0.1" {
		t.Fatalf("unexpected score after undo: %+v", undone.Summary.Match.Score)
	}

	deliveries, err := env.scoring.ListDeliveries(ctx, m.ID)
	if err != nil {
		t.Fatalf("list deliveries: %v", err)
	}
	if len(deliveries) != 1 {
		t.Fatalf("unexpected ledger length: %d", len(deliveries))
	}
}

func TestScoringService_RejectsInvalidDeliveries(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()
	home, _, m := seedFixture(t, env)

	if _, err := env.matches.UpdateScore(ctx, m.ID, UpdateScoreInput{Status: statusPtr(match.StatusLive)}); err != nil {
		t.Fatalf("go live: %v", err)
	}

	tests := []struct {
		name  string
		input RecordDeliveryInput
	}{
		{name: "seven off the bat", input: RecordDeliveryInput{Innings: 1, BattingTeamID: home.ID, Runs: 7}},
		{name: "third innings", input: RecordDeliveryInput{Innings: 3, BattingTeamID: home.ID}},
		{name: "foreign batting team", input: RecordDeliveryInput{Innings: 1, BattingTeamID: "65f0000000000000000000ee"}},
		{name: "unknown extra", input: RecordDeliveryInput{Innings: 1, BattingTeamID: home.ID, ExtraType: "penalty", Extras: 5}},
		{name: "second innings first", input: RecordDeliveryInput{Innings: 2, BattingTeamID: home.ID}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := env.scoring.RecordDelivery(ctx, m.ID, tc.input); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

// interleavedLedger runs afterWrite once, right after the first Append or
// DeleteLast reaches the wrapped ledger.
type interleavedLedger struct {
	scoring.Repository
	afterWrite func()
}

func (l *interleavedLedger) Append(ctx context.Context, d scoring.Delivery) error {
	if err := l.Repository.Append(ctx, d); err != nil {
		return err
	}
	l.fire()
	return nil
}

func (l *interleavedLedger) DeleteLast(ctx context.Context, matchID string) (scoring.Delivery, bool, error) {
	d, found, err := l.Repository.DeleteLast(ctx, matchID)
	if err == nil {
		l.fire()
	}
	return d, found, err
}

func (l *interleavedLedger) fire() {
	if hook := l.afterWrite; hook != nil {
		l.afterWrite = nil
		hook()
	}
}

func TestScoringService_CompletionBetweenWriteAndSnapshot(t *testing.T) {
	tests := []struct {
		name        string
		write       func(ctx context.Context, svc *ScoringService, matchID, battingID string) error
		wantLedger  int
		wantScoreTo int
	}{
		{
			name: "record is rolled back",
			write: func(ctx context.Context, svc *ScoringService, matchID, battingID string) error {
				_, err := svc.RecordDelivery(ctx, matchID, RecordDeliveryInput{Innings: 1, BattingTeamID: battingID, Runs: 4})
				return err
			},
			wantLedger:  2,
			wantScoreTo: 2,
		},
		{
			name: "undo is restored",
			write: func(ctx context.Context, svc *ScoringService, matchID, _ string) error {
				_, err := svc.UndoLastDelivery(ctx, matchID)
				return err
			},
			wantLedger:  2,
			wantScoreTo: 2,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			env := newTestEnv(t)
			ctx := t.Context()
			home, _, m := seedFixture(t, env)

			if _, err := env.matches.UpdateScore(ctx, m.ID, UpdateScoreInput{Status: statusPtr(match.StatusLive)}); err != nil {
				t.Fatalf("go live: %v", err)
			}
			for _, runs := range []int{1, 2} {
				if _, err := env.scoring.RecordDelivery(ctx, m.ID, RecordDeliveryInput{Innings: 1, BattingTeamID: home.ID, Runs: runs}); err != nil {
					t.Fatalf("record: %v", err)
				}
			}

			ledger := &interleavedLedger{Repository: env.deliveryRepo}
			ledger.afterWrite = func() {
				_, err := env.matches.UpdateScore(ctx, m.ID, UpdateScoreInput{Status: statusPtr(match.StatusCompleted), Result: &match.Result{WinnerTeamID: home.ID}})
				if err != nil {
					t.Fatalf("complete match: %v", err)
				}
			}
			svc := NewScoringService(env.matchRepo, ledger, env.ids, env.publisher, logging.NewNop())

			if err := tc.write(ctx, svc, m.ID, home.ID); !errors.Is(err, ErrConflict) {
				t.Fatalf("expected ErrConflict, got %v", err)
			}

			deliveries, err := env.deliveryRepo.ListByMatch(ctx, m.ID)
			if err != nil {
				t.Fatalf("list deliveries: %v", err)
			}
			if len(deliveries) != tc.wantLedger {
				t.Fatalf("unexpected ledger length: got=%d want=%d", len(deliveries), tc.wantLedger)
			}

			stored, _, err := env.matchRepo.GetByID(ctx, m.ID)
			if err != nil {
				t.Fatalf("get match: %v", err)
			}
			if stored.Status != match.StatusCompleted {
				t.Fatalf("unexpected status: %s", stored.Status)
			}
			if stored.LedgerSequence != tc.wantScoreTo || stored.Score.TeamA.Runs != 3 {
				t.Fatalf("completed score drifted from ledger: seq=%d score=%+v", stored.LedgerSequence, stored.Score)
			}
		})
	}
}
