package mongo

import (
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sportsdesk/teamhub/internal/domain/admin"
	"github.com/sportsdesk/teamhub/internal/domain/match"
	"github.com/sportsdesk/teamhub/internal/domain/scoring"
	"github.com/sportsdesk/teamhub/internal/domain/team"
)

var docTime = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func TestTeamDocumentKeepsRosterOrder(t *testing.T) {
	item := team.Team{
		ID:        "65f000000000000000000a01",
		Name:      "Mumbai Strikers",
		ShortName: "MUM",
		Players: []team.Player{
			{ID: "65f000000000000000000b02", JerseyNumber: 7, Name: "Arjun", Role: team.RoleCaptain, Age: 30},
			{ID: "65f000000000000000000b01", JerseyNumber: 18, Name: "Vikram", Role: team.RoleBowler, Age: 24,
				Stats: team.PlayerStats{Wickets: 40, Economy: 6.5}},
		},
		Record:    team.Record{TotalMatches: 3, MatchesWon: 2, MatchesLost: 1},
		IsActive:  true,
		Version:   4,
		CreatedAt: docTime,
		UpdatedAt: docTime,
	}

	doc, err := teamDocumentFromDomain(item)
	if err != nil {
		t.Fatalf("encode team: %v", err)
	}
	if doc.NameKey != "mumbai strikers" {
		t.Fatalf("unexpected name key: %q", doc.NameKey)
	}

	raw, err := bson.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal team: %v", err)
	}
	var decoded teamDocument
	if err := bson.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal team: %v", err)
	}

	got := decoded.toDomain()
	if len(got.Players) != 2 || got.Players[0].ID != item.Players[0].ID || got.Players[1].Stats.Economy != 6.5 {
		t.Fatalf("roster did not survive encoding: %+v", got.Players)
	}
	if got.Version != 4 || got.Record.MatchesWon != 2 || !got.IsActive {
		t.Fatalf("unexpected team fields: %+v", got)
	}
}

func TestTeamDocumentRejectsMalformedIDs(t *testing.T) {
	if _, err := teamDocumentFromDomain(team.Team{ID: "not-an-id"}); err == nil {
		t.Fatalf("expected malformed team id to fail")
	}
	bad := team.Team{ID: "65f000000000000000000a01", Players: []team.Player{{ID: "p1"}}}
	if _, err := teamDocumentFromDomain(bad); err == nil {
		t.Fatalf("expected malformed player id to fail")
	}
}

func TestMatchDocumentResult(t *testing.T) {
	m := match.Match{
		ID:     "65f000000000000000000c01",
		TeamA:  "65f000000000000000000a01",
		TeamB:  "65f000000000000000000a02",
		Date:   docTime,
		Overs:  20,
		Status: match.StatusCompleted,
		Score:  match.Score{TeamA: match.SideScore{Runs: 180, Wickets: 6}, Overs: "20.0"},
		Result: &match.Result{WinnerTeamID: "65f000000000000000000a01"},

		LedgerSequence: 131,
	}

	doc, err := matchDocumentFromDomain(m)
	if err != nil {
		t.Fatalf("encode match: %v", err)
	}
	got := doc.toDomain()
	if got.Result == nil || got.Result.WinnerTeamID != m.TeamA || got.Score.TeamA.Runs != 180 || got.LedgerSequence != 131 {
		t.Fatalf("unexpected match: %+v", got)
	}

	m.Result = nil
	doc, err = matchDocumentFromDomain(m)
	if err != nil {
		t.Fatalf("encode match: %v", err)
	}
	if doc.toDomain().Result != nil {
		t.Fatalf("expected no result for unfinished match")
	}
}

func TestDeliveryAndAdminDocuments(t *testing.T) {
	d := scoring.Delivery{
		ID:        "65f000000000000000000d01",
		MatchID:   "65f000000000000000000c01",
		Innings:   1,
		Sequence:  3,
		ExtraType: scoring.ExtraWide,
		Extras:    1,
		CreatedAt: docTime,
	}
	doc, err := deliveryDocumentFromDomain(d)
	if err != nil {
		t.Fatalf("encode delivery: %v", err)
	}
	if got := doc.toDomain(); got != d {
		t.Fatalf("unexpected delivery: got=%+v want=%+v", got, d)
	}

	sub := admin.SubAdmin{
		ID:          "65f00000000000000000ad02",
		Email:       "ops@example.com",
		Sport:       admin.SportCricket,
		Permissions: admin.Permissions{ManageMatches: true},
		IsActive:    true,
		LastLoginAt: &docTime,
	}
	subDoc, err := subAdminDocumentFromDomain(sub)
	if err != nil {
		t.Fatalf("encode sub admin: %v", err)
	}
	got := subDoc.toDomain()
	if !got.Permissions.ManageMatches || got.Permissions.ManageTeams || got.LastLoginAt == nil {
		t.Fatalf("unexpected sub admin: %+v", got)
	}
}

func TestMapDuplicate(t *testing.T) {
	dup := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key"}}}
	if err := mapDuplicate(dup, team.ErrDuplicateTeam); !errors.Is(err, team.ErrDuplicateTeam) {
		t.Fatalf("expected duplicate team, got %v", err)
	}

	other := errors.New("network down")
	if err := mapDuplicate(other, team.ErrDuplicateTeam); err != other {
		t.Fatalf("expected passthrough, got %v", err)
	}
}

func TestParseID(t *testing.T) {
	if _, ok := parseID("65f000000000000000000a01"); !ok {
		t.Fatalf("expected valid object id")
	}
	for _, raw := range []string{"", "abc", "65f000000000000000000a0z"} {
		if _, ok := parseID(raw); ok {
			t.Fatalf("expected %q to be rejected", raw)
		}
	}
}
