package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/matchdayhq/matchday/internal/domain/player"
	"github.com/matchdayhq/matchday/internal/domain/substitution"
)

func TestCreateMatch_Defaults(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	m, err := env.matches.Create(ctx, CreateMatchInput{
		TeamID:    testTeamID,
		Opponent:  "Harbor United",
		KickoffAt: time.Date(2026, 9, 5, 10, 30, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}
	if m.FormationKey != "11-433" {
		t.Fatalf("default formation: got %s", m.FormationKey)
	}
	if m.DurationMinutes != 90 {
		t.Fatalf("default duration: got %d", m.DurationMinutes)
	}

	got, err := env.matches.Get(ctx, m.ID)
	if err != nil {
		t.Fatalf("get match: %v", err)
	}
	if got.ID != m.ID || got.Opponent != "Harbor United" {
		t.Fatalf("roundtrip mismatch: %+v", got)
	}
}

func TestCreateMatch_Invalid(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	tests := []struct {
		name  string
		input CreateMatchInput
	}{
		{"missing team", CreateMatchInput{Opponent: "Harbor United"}},
		{"missing opponent", CreateMatchInput{TeamID: testTeamID}},
		{"unknown formation", CreateMatchInput{TeamID: testTeamID, Opponent: "Harbor United", FormationKey: "9-999"}},
		{"scheme minute past duration", CreateMatchInput{TeamID: testTeamID, Opponent: "Harbor United", SchemeMinutes: []int{100}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := env.matches.Create(ctx, tt.input); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestSetScore(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	m := env.createMatch(t, "8-331", nil, 60)

	if _, err := env.matches.SetScore(ctx, m.ID, -1, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("negative score must be rejected, got %v", err)
	}

	if _, err := env.matches.SetScore(ctx, m.ID, 3, 1); err != nil {
		t.Fatalf("set score: %v", err)
	}
	got, err := env.matches.Get(ctx, m.ID)
	if err != nil {
		t.Fatalf("get match: %v", err)
	}
	if got.GoalsFor != 3 || got.GoalsAgainst != 1 {
		t.Fatalf("score not persisted: %d:%d", got.GoalsFor, got.GoalsAgainst)
	}
}

func TestFinalize_AccountsMinutesAndAppliesStats(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	m := env.createMatch(t, "8-331", []int{30}, 60)
	env.fillLineup(t, m.ID, 1, 2, 3, 4, 5, 6, 7, 8)

	pairs := []substitution.Pair{{Out: player.RosterRef(8), In: player.RosterRef(9)}}
	if err := env.subs.CommitRound(ctx, m.ID, 1, 0, pairs); err != nil {
		t.Fatalf("commit round: %v", err)
	}

	result, err := env.matches.Finalize(ctx, m.ID, true)
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if result.DurationMinutes != 60 || !result.StatsApplied {
		t.Fatalf("unexpected result header: %+v", result)
	}
	if len(result.Lines) != 9 {
		t.Fatalf("expected 9 participants, got %d", len(result.Lines))
	}

	byRef := make(map[player.Ref]FinalizeLine, len(result.Lines))
	for _, line := range result.Lines {
		byRef[line.Ref] = line
	}
	if line := byRef[player.RosterRef(1)]; line.Played != 60 || line.Bench != 0 || !line.Starter {
		t.Fatalf("full-time starter: %+v", line)
	}
	if line := byRef[player.RosterRef(8)]; line.Played != 30 || line.Bench != 30 {
		t.Fatalf("subbed-out starter: %+v", line)
	}
	if line := byRef[player.RosterRef(9)]; line.Played != 30 || line.Bench != 30 || line.Starter {
		t.Fatalf("entrant: %+v", line)
	}
	if line := byRef[player.RosterRef(9)]; line.Name == "" {
		t.Fatalf("lines carry resolved names")
	}

	members, err := env.roster.ListMembers(ctx, testTeamID)
	if err != nil {
		t.Fatalf("list members: %v", err)
	}
	for _, member := range members {
		switch member.ID {
		case 1:
			if member.Stats.Minutes != 60 || member.Stats.Appearances != 1 {
				t.Fatalf("member 1 stats: %+v", member.Stats)
			}
		case 9:
			if member.Stats.Minutes != 30 || member.Stats.BenchMinutes != 30 {
				t.Fatalf("member 9 stats: %+v", member.Stats)
			}
		case 10:
			if member.Stats.Appearances != 0 {
				t.Fatalf("non-participants take no appearance: %+v", member.Stats)
			}
		}
	}

	got, err := env.matches.Get(ctx, m.ID)
	if err != nil {
		t.Fatalf("get match: %v", err)
	}
	if !got.Finalized() || got.FinalizedAt == nil {
		t.Fatalf("match must be finalized with a timestamp: %+v", got)
	}
}

func TestFinalize_OnlyOnce(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	m := env.createMatch(t, "8-331", nil, 60)
	env.fillLineup(t, m.ID, 1, 2, 3, 4, 5, 6, 7, 8)

	if _, err := env.matches.Finalize(ctx, m.ID, false); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if _, err := env.matches.Finalize(ctx, m.ID, false); !errors.Is(err, ErrMatchFinalized) {
		t.Fatalf("expected ErrMatchFinalized, got %v", err)
	}

	// Score correction is the one mutation that survives finalization.
	if _, err := env.matches.SetScore(ctx, m.ID, 2, 2); err != nil {
		t.Fatalf("set score after finalize: %v", err)
	}
}

func TestFinalize_RequiresStarters(t *testing.T) {
	env := newTestEnv()
	m := env.createMatch(t, "8-331", nil, 60)

	if _, err := env.matches.Finalize(context.Background(), m.ID, false); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput without starters, got %v", err)
	}
}

func TestFinalize_SkipsStatsWhenNotRequested(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	m := env.createMatch(t, "8-331", nil, 60)
	env.fillLineup(t, m.ID, 1, 2, 3, 4, 5, 6, 7, 8)

	result, err := env.matches.Finalize(ctx, m.ID, false)
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if result.StatsApplied {
		t.Fatalf("stats must not be flagged as applied")
	}

	members, err := env.roster.ListMembers(ctx, testTeamID)
	if err != nil {
		t.Fatalf("list members: %v", err)
	}
	for _, member := range members {
		if member.Stats.Minutes != 0 || member.Stats.Appearances != 0 {
			t.Fatalf("stats leaked to member %d: %+v", member.ID, member.Stats)
		}
	}
}

func TestListByTeam_SortedByKickoff(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	later, err := env.matches.Create(ctx, CreateMatchInput{
		TeamID:    testTeamID,
		Opponent:  "Harbor United",
		KickoffAt: time.Date(2026, 9, 12, 14, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}
	earlier, err := env.matches.Create(ctx, CreateMatchInput{
		TeamID:    testTeamID,
		Opponent:  "Northgate Athletic",
		KickoffAt: time.Date(2026, 9, 5, 10, 30, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}

	matches, err := env.matches.ListByTeam(ctx, testTeamID)
	if err != nil {
		t.Fatalf("list matches: %v", err)
	}
	if len(matches) != 2 || matches[0].ID != earlier.ID || matches[1].ID != later.ID {
		t.Fatalf("matches must sort by kickoff: %+v", matches)
	}
}
