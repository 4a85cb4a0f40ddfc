package memory

import (
	"time"

	"github.com/matchdayhq/matchday/internal/domain/match"
	"github.com/matchdayhq/matchday/internal/domain/player"
	"github.com/matchdayhq/matchday/internal/domain/roster"
)

const TeamIDOldBoys = "old-boys-fc"

func SeedMembers() []roster.Member {
	return []roster.Member{
		{ID: 1, TeamID: TeamIDOldBoys, Name: "Tomas Vrany", Position: player.PositionGoalkeeper},
		{ID: 2, TeamID: TeamIDOldBoys, Name: "Marek Dolezal", Position: player.PositionDefender},
		{ID: 3, TeamID: TeamIDOldBoys, Name: "Jiri Capek", Position: player.PositionDefender},
		{ID: 4, TeamID: TeamIDOldBoys, Name: "Petr Hruska", Position: player.PositionDefender},
		{ID: 5, TeamID: TeamIDOldBoys, Name: "Ondrej Sykora", Position: player.PositionDefender},
		{ID: 6, TeamID: TeamIDOldBoys, Name: "Lukas Benes", Position: player.PositionMidfielder},
		{ID: 7, TeamID: TeamIDOldBoys, Name: "Filip Novotny", Position: player.PositionMidfielder},
		{ID: 8, TeamID: TeamIDOldBoys, Name: "David Kratochvil", Position: player.PositionMidfielder},
		{ID: 9, TeamID: TeamIDOldBoys, Name: "Martin Zeman", Position: player.PositionForward},
		{ID: 10, TeamID: TeamIDOldBoys, Name: "Jakub Prochazka", Position: player.PositionForward},
		{ID: 11, TeamID: TeamIDOldBoys, Name: "Adam Ruzicka", Position: player.PositionForward},
		{ID: 12, TeamID: TeamIDOldBoys, Name: "Vojtech Maly", Position: player.PositionGoalkeeper},
		{ID: 13, TeamID: TeamIDOldBoys, Name: "Stanislav Urban", Position: player.PositionDefender},
		{ID: 14, TeamID: TeamIDOldBoys, Name: "Radek Pospisil", Position: player.PositionMidfielder},
		{ID: 15, TeamID: TeamIDOldBoys, Name: "Michal Sedlak", Position: player.PositionForward, Injured: true},
	}
}

func SeedMatches() []match.Match {
	return []match.Match{
		{
			ID:              "m-2026-09-05-rovers",
			TeamID:          TeamIDOldBoys,
			Opponent:        "Riverside Rovers",
			KickoffAt:       time.Date(2026, 9, 5, 10, 30, 0, 0, time.UTC),
			Home:            true,
			FormationKey:    "11-433",
			SchemeMinutes:   []int{30, 60, 75},
			DurationMinutes: 90,
			Status:          match.StatusDraft,
		},
		{
			ID:              "m-2026-09-12-athletic",
			TeamID:          TeamIDOldBoys,
			Opponent:        "Northgate Athletic",
			KickoffAt:       time.Date(2026, 9, 12, 14, 0, 0, 0, time.UTC),
			Home:            false,
			FormationKey:    "8-331",
			DurationMinutes: 60,
			Status:          match.StatusDraft,
		},
	}
}
