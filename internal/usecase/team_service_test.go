package usecase

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/sportsdesk/teamhub/internal/domain/admin"
	"github.com/sportsdesk/teamhub/internal/domain/team"
	"github.com/sportsdesk/teamhub/internal/platform/workerpool"
)

func TestTeamService_TitansScenario(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	titans, err := env.teams.Create(ctx, teamInput("  Titans ", "ttn"), superAdminPrincipal())
	if err != nil {
		t.Fatalf("create titans: %v", err)
	}
	if titans.Name != "Titans" || titans.ShortName != "TTN" {
		t.Fatalf("unexpected normalisation: name=%q short=%q", titans.Name, titans.ShortName)
	}
	if titans.CreatedBy != testAdminID || !titans.IsActive || len(titans.Players) != 0 || titans.Version != 1 {
		t.Fatalf("unexpected new team: %+v", titans)
	}

	for _, tc := range []struct {
		name  string
		input CreateTeamInput
	}{
		{name: "same name other case", input: teamInput("TITANS", "XYZ")},
		{name: "same short name padded", input: teamInput("Other", " ttn ")},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := env.teams.Create(ctx, tc.input, superAdminPrincipal()); !errors.Is(err, ErrConflict) {
				t.Fatalf("expected ErrConflict, got %v", err)
			}
		})
	}

	for i := 1; i <= team.MaxRosterSize; i++ {
		if _, err := env.teams.AddPlayer(ctx, titans.ID, playerInput(fmt.Sprintf("Player %d", i), i)); err != nil {
			t.Fatalf("add player %d: %v", i, err)
		}
	}

	_, err = env.teams.AddPlayer(ctx, titans.ID, playerInput("Sixteenth", 16))
	if !errors.Is(err, ErrInvalidInput) || !errors.Is(err, team.ErrRosterFull) {
		t.Fatalf("expected roster full as invalid input, got %v", err)
	}

	got, err := env.teams.Get(ctx, titans.ID)
	if err != nil {
		t.Fatalf("get titans: %v", err)
	}
	if len(got.Players) != team.MaxRosterSize {
		t.Fatalf("unexpected roster size: got=%d want=%d", len(got.Players), team.MaxRosterSize)
	}
}

func TestTeamService_AddPlayer_DuplicateJerseyLeavesRosterUnchanged(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	created, err := env.teams.Create(ctx, teamInput("Falcons", "FAL"), superAdminPrincipal())
	if err != nil {
		t.Fatalf("create team: %v", err)
	}
	first, err := env.teams.AddPlayer(ctx, created.ID, playerInput("First", 7))
	if err != nil {
		t.Fatalf("add first: %v", err)
	}
	if first.ID == "" || first.JerseyNumber != 7 {
		t.Fatalf("unexpected added player: %+v", first)
	}

	_, err = env.teams.AddPlayer(ctx, created.ID, playerInput("Second", 7))
	if !errors.Is(err, ErrConflict) || !errors.Is(err, team.ErrDuplicateJersey) {
		t.Fatalf("expected duplicate jersey conflict, got %v", err)
	}

	got, _ := env.teams.Get(ctx, created.ID)
	if len(got.Players) != 1 || got.Players[0].ID != first.ID {
		t.Fatalf("roster changed after rejected add: %+v", got.Players)
	}
}

func TestTeamService_AddPlayer_ValidatesFields(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	created, err := env.teams.Create(ctx, teamInput("Hawks", "HWK"), superAdminPrincipal())
	if err != nil {
		t.Fatalf("create team: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*AddPlayerInput)
	}{
		{name: "too young", mutate: func(in *AddPlayerInput) { in.Age = 15 }},
		{name: "too old", mutate: func(in *AddPlayerInput) { in.Age = 46 }},
		{name: "jersey zero", mutate: func(in *AddPlayerInput) { in.JerseyNumber = 0 }},
		{name: "jersey hundred", mutate: func(in *AddPlayerInput) { in.JerseyNumber = 100 }},
		{name: "unknown role", mutate: func(in *AddPlayerInput) { in.Role = "Goalkeeper" }},
		{name: "missing experience", mutate: func(in *AddPlayerInput) { in.Experience = " " }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := playerInput("Candidate", 10)
			tc.mutate(&in)
			if _, err := env.teams.AddPlayer(ctx, created.ID, in); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestTeamService_UpdatePlayer_JerseyRules(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	created, err := env.teams.Create(ctx, teamInput("Royals", "RYL"), superAdminPrincipal())
	if err != nil {
		t.Fatalf("create team: %v", err)
	}
	alpha, _ := env.teams.AddPlayer(ctx, created.ID, playerInput("Alpha", 10))
	beta, _ := env.teams.AddPlayer(ctx, created.ID, playerInput("Beta", 11))

	taken := 10
	if _, err := env.teams.UpdatePlayer(ctx, created.ID, beta.ID, UpdatePlayerInput{JerseyNumber: &taken}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict for taken jersey, got %v", err)
	}

	own := 11
	runs := 120
	email := "  Beta@Example.COM "
	res, err := env.teams.UpdatePlayer(ctx, created.ID, beta.ID, UpdatePlayerInput{JerseyNumber: &own, Runs: &runs, Email: &email})
	if err != nil {
		t.Fatalf("update with own jersey: %v", err)
	}
	if res.Player.Stats.Runs != 120 || res.Player.Email != "beta@example.com" {
		t.Fatalf("unexpected updated player: %+v", res.Player)
	}
	if len(res.Team.Players) != 2 || res.Team.Players[0].ID != alpha.ID {
		t.Fatalf("unexpected team in result: %+v", res.Team.Players)
	}

	if _, err := env.teams.UpdatePlayer(ctx, created.ID, "65f0000000000000000000ff", UpdatePlayerInput{Runs: &runs}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown player, got %v", err)
	}
}

func TestTeamService_UpdateAndSoftDelete(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	first, _ := env.teams.Create(ctx, teamInput("Lions", "LIO"), superAdminPrincipal())
	second, _ := env.teams.Create(ctx, teamInput("Tigers", "TIG"), superAdminPrincipal())

	clash := "lions"
	if _, err := env.teams.Update(ctx, second.ID, UpdateTeamInput{Name: &clash}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected conflict on rename, got %v", err)
	}

	sameName := "LIONS"
	coach := " New Coach "
	updated, err := env.teams.Update(ctx, first.ID, UpdateTeamInput{Name: &sameName, Coach: &coach})
	if err != nil {
		t.Fatalf("rename own team: %v", err)
	}
	if updated.Name != "LIONS" || updated.Coach != "New Coach" || updated.Version != 2 {
		t.Fatalf("unexpected updated team: %+v", updated)
	}

	if err := env.teams.SoftDelete(ctx, first.ID); err != nil {
		t.Fatalf("soft delete: %v", err)
	}
	active, _ := env.teams.ListActive(ctx)
	if len(active) != 1 || active[0].ID != second.ID {
		t.Fatalf("soft deleted team still listed: %+v", active)
	}
	if _, err := env.teams.Get(ctx, first.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for inactive team, got %v", err)
	}
	stored, ok, _ := env.teamRepo.GetByID(ctx, first.ID)
	if !ok || stored.IsActive {
		t.Fatalf("expected stored inactive document, ok=%v active=%v", ok, stored.IsActive)
	}

	if _, err := env.teams.Create(ctx, teamInput("Lions", "LIO"), superAdminPrincipal()); err != nil {
		t.Fatalf("expected name to be reusable after soft delete, got %v", err)
	}
}

func TestTeamService_RejectsMalformedIDsAndAnonymousCreate(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	if _, err := env.teams.Get(ctx, "not-an-id"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := env.teams.Get(ctx, "65f0000000000000000000aa"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := env.teams.Create(ctx, teamInput("Ghosts", "GHO"), admin.Principal{}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestTeamService_ConcurrentAddsKeepRosterInvariants(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	created, err := env.teams.Create(ctx, teamInput("Storm", "STM"), superAdminPrincipal())
	if err != nil {
		t.Fatalf("create team: %v", err)
	}

	const writers = 30
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// Half the writers fight over the same jersey numbers.
			jersey := i%20 + 1
			_, err := env.teams.AddPlayer(ctx, created.ID, playerInput(fmt.Sprintf("P%d", i), jersey))
			if err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
				return
			}
			if !errors.Is(err, ErrConflict) && !errors.Is(err, ErrInvalidInput) {
				t.Errorf("unexpected add error: %v", err)
			}
		}(i)
	}
	wg.Wait()

	got, err := env.teams.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get team: %v", err)
	}
	if len(got.Players) > team.MaxRosterSize {
		t.Fatalf("roster exceeded cap: %d", len(got.Players))
	}
	if len(got.Players) != succeeded {
		t.Fatalf("roster size does not match successful adds: roster=%d ok=%d", len(got.Players), succeeded)
	}
	if err := team.ValidateRoster(got.Players); err != nil {
		t.Fatalf("roster invariant broken: %v", err)
	}
}

func TestTeamService_StatsAndOverview(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	pool, err := workerpool.New(2)
	if err != nil {
		t.Fatalf("new pool: %v", err)
	}
	t.Cleanup(pool.Release)
	env.teams.pool = pool

	a, _ := env.teams.Create(ctx, teamInput("Alpha", "ALP"), superAdminPrincipal())
	b, _ := env.teams.Create(ctx, teamInput("Bravo", "BRV"), superAdminPrincipal())
	gone, _ := env.teams.Create(ctx, teamInput("Gone", "GON"), superAdminPrincipal())

	add := func(teamID, name string, jersey, runs, wickets int) {
		in := playerInput(name, jersey)
		in.Stats = PlayerStatsInput{Matches: 10, Runs: runs, Wickets: wickets, Average: float64(runs) / 10}
		if _, err := env.teams.AddPlayer(ctx, teamID, in); err != nil {
			t.Fatalf("add %s: %v", name, err)
		}
	}
	add(a.ID, "A1", 1, 300, 2)
	add(a.ID, "A2", 2, 300, 9)
	add(b.ID, "B1", 1, 50, 1)
	add(gone.ID, "G1", 1, 999, 99)
	if err := env.teams.SoftDelete(ctx, gone.ID); err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	stats, err := env.teams.Stats(ctx, a.ID)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.Totals.Runs != 600 || stats.Totals.Wickets != 11 || stats.PlayerCount != 2 {
		t.Fatalf("unexpected totals: %+v", stats)
	}
	if stats.TopScorer == nil || stats.TopScorer.Name != "A1" {
		t.Fatalf("expected first max to win top scorer, got %+v", stats.TopScorer)
	}
	if stats.TopWicketTaker == nil || stats.TopWicketTaker.Name != "A2" {
		t.Fatalf("unexpected top wicket taker: %+v", stats.TopWicketTaker)
	}

	overview, err := env.teams.Overview(ctx)
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if overview.TotalTeams != 2 || overview.TotalPlayers != 3 || overview.Totals.Runs != 650 {
		t.Fatalf("unexpected overview: %+v", overview)
	}
}

func TestTeamService_RecordMatchOutcome(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()

	created, _ := env.teams.Create(ctx, teamInput("Comets", "CMT"), superAdminPrincipal())
	for _, outcome := range []team.Outcome{team.OutcomeWon, team.OutcomeLost, team.OutcomeDrawn, team.OutcomeWon} {
		if err := env.teams.RecordMatchOutcome(ctx, created.ID, outcome); err != nil {
			t.Fatalf("record %s: %v", outcome, err)
		}
	}

	got, _ := env.teams.Get(ctx, created.ID)
	want := team.Record{TotalMatches: 4, MatchesWon: 2, MatchesLost: 1, MatchesDrawn: 1}
	if got.Record != want {
		t.Fatalf("unexpected record: got=%+v want=%+v", got.Record, want)
	}
	if err := env.teams.RecordMatchOutcome(ctx, created.ID, team.Outcome("tied")); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown outcome, got %v", err)
	}
}
