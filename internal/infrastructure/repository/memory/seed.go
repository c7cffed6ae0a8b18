package memory

import (
	"github.com/hooppool/hooppool/internal/domain/game"
	"github.com/hooppool/hooppool/internal/domain/pick"
	"github.com/hooppool/hooppool/internal/domain/team"
)

// SeedTeams covers the franchises referenced by the seed picks; ids follow
// the stats feed's numeric scheme.
func SeedTeams() []team.Team {
	return []team.Team{
		{ID: "1610612747", Nickname: "Lakers"},
		{ID: "1610612738", Nickname: "Celtics"},
		{ID: "1610612744", Nickname: "Warriors"},
		{ID: "1610612743", Nickname: "Nuggets"},
		{ID: "1610612749", Nickname: "Bucks"},
		{ID: "1610612760", Nickname: "Thunder"},
	}
}

// SeedFixtures is a plausible two-game slate for dev mode.
func SeedFixtures() []game.Fixture {
	return []game.Fixture{
		{GameID: "0022500101", HomeTeam: "Lakers", AwayTeam: "Celtics", Status: game.StatusScheduled},
		{GameID: "0022500102", HomeTeam: "Nuggets", AwayTeam: "Thunder", Status: game.StatusScheduled},
	}
}

// SeedPicks gives the leaderboard something to chew on out of the box.
func SeedPicks() []pick.Record {
	return []pick.Record{
		{Date: "2026-01-14", User: "Moises", Matchup: "Celtics vs Lakers", ChosenTeam: "Lakers", GameID: "0022500088"},
		{Date: "2026-01-14", User: "Frank", Matchup: "Celtics vs Lakers", ChosenTeam: "Celtics", GameID: "0022500088"},
		{Date: "2026-01-14", User: "Gordic", Matchup: "Thunder vs Warriors", ChosenTeam: "Thunder", GameID: "0022500089"},
		{Date: "2026-01-15", User: "Moises", Matchup: "Bucks vs Nuggets", ChosenTeam: "Nuggets", GameID: "0022500095"},
		{Date: "2026-01-15", User: "Kike", Matchup: "Bucks vs Nuggets", ChosenTeam: "Bucks", GameID: "0022500095"},
	}
}
