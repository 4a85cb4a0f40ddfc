package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/matchdayhq/matchday/internal/domain/player"
)

func TestListMembers(t *testing.T) {
	env := newTestEnv()

	members, err := env.roster.ListMembers(context.Background(), testTeamID)
	if err != nil {
		t.Fatalf("list members: %v", err)
	}
	if len(members) != 15 {
		t.Fatalf("expected the seeded squad, got %d", len(members))
	}
	if members[0].ID != 1 {
		t.Fatalf("members must sort by id: %+v", members[0])
	}
}

func TestSetInjured(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	member, err := env.roster.SetInjured(ctx, testTeamID, 3, true)
	if err != nil {
		t.Fatalf("set injured: %v", err)
	}
	if !member.Injured {
		t.Fatalf("flag not applied")
	}

	members, err := env.roster.ListMembers(ctx, testTeamID)
	if err != nil {
		t.Fatalf("list members: %v", err)
	}
	for _, m := range members {
		if m.ID == 3 && !m.Injured {
			t.Fatalf("flag not persisted")
		}
	}

	if _, err := env.roster.SetInjured(ctx, testTeamID, 99, true); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGuestLifecycle(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	m := env.createMatch(t, "8-331", nil, 60)

	g, err := env.roster.AddGuest(ctx, AddGuestInput{MatchID: m.ID, Name: "Sam Ortiz", Position: player.PositionForward})
	if err != nil {
		t.Fatalf("add guest: %v", err)
	}
	if g.ID == 0 || g.MatchID != m.ID {
		t.Fatalf("guest not assigned an id: %+v", g)
	}

	guests, err := env.roster.ListGuests(ctx, m.ID)
	if err != nil {
		t.Fatalf("list guests: %v", err)
	}
	if len(guests) != 1 || guests[0].Name != "Sam Ortiz" {
		t.Fatalf("guest not listed: %+v", guests)
	}

	if err := env.roster.RemoveGuest(ctx, m.ID, g.ID); err != nil {
		t.Fatalf("remove guest: %v", err)
	}
	guests, err = env.roster.ListGuests(ctx, m.ID)
	if err != nil {
		t.Fatalf("list guests: %v", err)
	}
	if len(guests) != 0 {
		t.Fatalf("guest not removed: %+v", guests)
	}
}

func TestAddGuest_Validation(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	m := env.createMatch(t, "8-331", nil, 60)

	tests := []struct {
		name  string
		input AddGuestInput
	}{
		{"missing name", AddGuestInput{MatchID: m.ID, Position: player.PositionForward}},
		{"invalid position", AddGuestInput{MatchID: m.ID, Name: "Sam Ortiz", Position: "ST"}},
		{"missing match", AddGuestInput{Name: "Sam Ortiz", Position: player.PositionForward}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := env.roster.AddGuest(ctx, tt.input); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
		})
	}

	if _, err := env.roster.AddGuest(ctx, AddGuestInput{MatchID: "missing", Name: "Sam Ortiz", Position: player.PositionForward}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGuests_LockedAfterFinalize(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	m := env.createMatch(t, "8-331", nil, 60)
	env.fillLineup(t, m.ID, 1, 2, 3, 4, 5, 6, 7, 8)

	g, err := env.roster.AddGuest(ctx, AddGuestInput{MatchID: m.ID, Name: "Sam Ortiz", Position: player.PositionForward})
	if err != nil {
		t.Fatalf("add guest: %v", err)
	}
	if _, err := env.matches.Finalize(ctx, m.ID, false); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	if _, err := env.roster.AddGuest(ctx, AddGuestInput{MatchID: m.ID, Name: "Lee Park", Position: player.PositionForward}); !errors.Is(err, ErrMatchFinalized) {
		t.Fatalf("expected ErrMatchFinalized on add, got %v", err)
	}
	if err := env.roster.RemoveGuest(ctx, m.ID, g.ID); !errors.Is(err, ErrMatchFinalized) {
		t.Fatalf("expected ErrMatchFinalized on remove, got %v", err)
	}
}

func TestResolvePlayers_MergesAndSuppresses(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	m := env.createMatch(t, "8-331", nil, 60)

	if _, err := env.roster.AddGuest(ctx, AddGuestInput{MatchID: m.ID, Name: "Sam Ortiz", Position: player.PositionForward}); err != nil {
		t.Fatalf("add guest: %v", err)
	}
	// Shares a display name with seeded member 1 and must be suppressed.
	shadow, err := env.roster.AddGuest(ctx, AddGuestInput{MatchID: m.ID, Name: "Tomas Vrany", Position: player.PositionGoalkeeper})
	if err != nil {
		t.Fatalf("add guest: %v", err)
	}

	pool, err := env.roster.ResolvePlayers(ctx, m.ID)
	if err != nil {
		t.Fatalf("resolve players: %v", err)
	}
	if len(pool) != 16 {
		t.Fatalf("expected 15 members plus 1 surviving guest, got %d", len(pool))
	}
	if containsRef(pool, player.GuestRef(shadow.ID)) {
		t.Fatalf("guest sharing a roster name must be suppressed")
	}
	if !containsRef(pool, player.GuestRef(1)) {
		t.Fatalf("distinct guest must appear in the pool")
	}
}
