package memory

import (
	"time"

	"github.com/sportsdesk/teamhub/internal/domain/team"
)

const (
	SeedOwnerID          = "000000000000000000000001"
	TeamIDMumbaiStrikers = "65f000000000000000000a01"
	TeamIDChennaiKings   = "65f000000000000000000a02"
)

// SeedTeams returns demo teams for local development on the memory store.
func SeedTeams(now time.Time) []team.Team {
	now = now.UTC()
	return []team.Team{
		{
			ID:           TeamIDMumbaiStrikers,
			Name:         "Mumbai Strikers",
			ShortName:    "MUS",
			Captain:      "Arjun Mehta",
			Coach:        "Rahul Desai",
			Established:  "2008",
			HomeGround:   "Wankhede Stadium",
			ContactEmail: "ops@mumbaistrikers.example",
			ContactPhone: "+91 22 5555 0101",
			Players: []team.Player{
				seedPlayer("65f000000000000000000b01", 18, "Arjun Mehta", team.RoleCaptain, 29, team.PlayerStats{Matches: 64, Runs: 2140, Wickets: 3, Catches: 31, Average: 38.2, StrikeRate: 136.4}, now),
				seedPlayer("65f000000000000000000b02", 7, "Kiran Rao", team.RoleWicketKeeperBatsman, 26, team.PlayerStats{Matches: 41, Runs: 1022, Catches: 44, Stumps: 12, Average: 29.1, StrikeRate: 128.9}, now),
				seedPlayer("65f000000000000000000b03", 93, "Vikram Singh", team.RoleBowler, 31, team.PlayerStats{Matches: 70, Runs: 140, Wickets: 88, Catches: 15, Average: 7.8, Economy: 7.2}, now),
			},
			IsActive:  true,
			CreatedBy: SeedOwnerID,
			Version:   1,
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:           TeamIDChennaiKings,
			Name:         "Chennai Kings",
			ShortName:    "CHK",
			Captain:      "Suresh Iyer",
			Coach:        "Dev Patel",
			Established:  "2008",
			HomeGround:   "Chepauk",
			ContactEmail: "ops@chennaikings.example",
			ContactPhone: "+91 44 5555 0202",
			Players: []team.Player{
				seedPlayer("65f000000000000000000b11", 3, "Suresh Iyer", team.RoleCaptain, 33, team.PlayerStats{Matches: 82, Runs: 2590, Wickets: 11, Catches: 40, Average: 34.5, StrikeRate: 131.0}, now),
				seedPlayer("65f000000000000000000b12", 47, "Anil Kumar", team.RoleAllRounder, 27, team.PlayerStats{Matches: 55, Runs: 870, Wickets: 52, Catches: 22, Average: 24.2, StrikeRate: 141.7, Economy: 7.9}, now),
			},
			IsActive:  true,
			CreatedBy: SeedOwnerID,
			Version:   1,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

func seedPlayer(id string, jersey int, name string, role team.Role, age int, stats team.PlayerStats, now time.Time) team.Player {
	return team.Player{
		ID:           id,
		JerseyNumber: jersey,
		Name:         name,
		Role:         role,
		Age:          age,
		Experience:   "Professional",
		Stats:        stats,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
