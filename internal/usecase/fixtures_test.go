package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sportsdesk/teamhub/internal/domain/admin"
	"github.com/sportsdesk/teamhub/internal/domain/match"
	"github.com/sportsdesk/teamhub/internal/infrastructure/repository/memory"
	"github.com/sportsdesk/teamhub/internal/platform/logging"
)

const testAdminID = "65f00000000000000000ad01"

var testNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

type staticIDGenerator struct {
	id string
}

func (g staticIDGenerator) NewID() (string, error) {
	return g.id, nil
}

// sequenceIDGenerator hands out ObjectID-shaped ids: 000...001, 000...002, ...
type sequenceIDGenerator struct {
	next atomic.Uint64
}

func (g *sequenceIDGenerator) NewID() (string, error) {
	return fmt.Sprintf("%024x", g.next.Add(1)), nil
}

type recordingPublisher struct {
	mu       sync.Mutex
	received []match.Match
}

func (p *recordingPublisher) Publish(_ context.Context, m match.Match) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.received = append(p.received, m)
}

func (p *recordingPublisher) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.received)
}

func superAdminPrincipal() admin.Principal {
	return admin.Principal{ID: testAdminID, Name: "Root", Email: "root@example.com", Role: admin.RoleSuperAdmin, Permissions: admin.AllPermissions()}
}

type testEnv struct {
	teamRepo     *memory.TeamRepository
	matchRepo    *memory.MatchRepository
	deliveryRepo *memory.DeliveryRepository
	ids          *sequenceIDGenerator
	publisher    *recordingPublisher
	teams        *TeamService
	matches      *MatchService
	scoring      *ScoringService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		teamRepo:     memory.NewTeamRepository(nil),
		matchRepo:    memory.NewMatchRepository(nil),
		deliveryRepo: memory.NewDeliveryRepository(),
		ids:          &sequenceIDGenerator{},
		publisher:    &recordingPublisher{},
	}
	logger := logging.NewNop()
	env.teams = NewTeamService(env.teamRepo, env.ids, nil, logger)
	env.teams.now = func() time.Time { return testNow }
	env.matches = NewMatchService(env.matchRepo, env.deliveryRepo, env.teams, env.ids, env.publisher, logger)
	env.matches.now = func() time.Time { return testNow }
	env.scoring = NewScoringService(env.matchRepo, env.deliveryRepo, env.ids, env.publisher, logger)
	env.scoring.now = func() time.Time { return testNow }
	return env
}

func teamInput(name, short string) CreateTeamInput {
	return CreateTeamInput{
		Name:         name,
		ShortName:    short,
		Captain:      "Captain " + name,
		Coach:        "Coach " + name,
		Established:  "2010",
		HomeGround:   name + " Oval",
		ContactEmail: "ops@example.com",
		ContactPhone: "+1 555 0100",
	}
}

func playerInput(name string, jersey int) AddPlayerInput {
	return AddPlayerInput{
		Name:         name,
		Role:         "Batsman",
		Age:          24,
		JerseyNumber: jersey,
		Experience:   "3 seasons",
	}
}
