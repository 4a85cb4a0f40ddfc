package substitution

import (
	"testing"

	"github.com/matchdayhq/matchday/internal/domain/player"
)

func TestAccountMinutes_SingleSwap(t *testing.T) {
	starters := refs(1, 2)
	events := []Event{
		{Round: 1, Minute: 60, Out: player.RosterRef(2), In: player.RosterRef(3)},
	}

	acct := AccountMinutes(starters, events, 90)

	if got := acct.Played[player.RosterRef(1)]; got != 90 {
		t.Fatalf("full-match starter minutes: got %d want 90", got)
	}
	if got := acct.Played[player.RosterRef(2)]; got != 60 {
		t.Fatalf("subbed-out starter minutes: got %d want 60", got)
	}
	if got := acct.Played[player.RosterRef(3)]; got != 30 {
		t.Fatalf("substitute minutes: got %d want 30", got)
	}
	if got := acct.Bench[player.RosterRef(3)]; got != 60 {
		t.Fatalf("substitute bench minutes: got %d want 60", got)
	}
}

func TestAccountMinutes_ReEntryAccumulatesIntervals(t *testing.T) {
	// Player 2 plays 0-60, sits 60-75, re-enters 75 to the end.
	starters := refs(1, 2)
	events := []Event{
		{Round: 1, Minute: 60, Out: player.RosterRef(2), In: player.RosterRef(3)},
		{Round: 2, Minute: 75, Out: player.RosterRef(3), In: player.RosterRef(2)},
	}

	acct := AccountMinutes(starters, events, 90)

	if got := acct.Played[player.RosterRef(2)]; got != 75 {
		t.Fatalf("re-entrant minutes: got %d want 75", got)
	}
	if got := acct.Played[player.RosterRef(3)]; got != 15 {
		t.Fatalf("middle-interval player minutes: got %d want 15", got)
	}
}

func TestAccountMinutes_ClampsOutOfRangeMinutes(t *testing.T) {
	starters := refs(1)
	events := []Event{
		{Round: 1, Minute: 120, Out: player.RosterRef(1), In: player.RosterRef(2)},
	}

	acct := AccountMinutes(starters, events, 90)
	if got := acct.Played[player.RosterRef(1)]; got != 90 {
		t.Fatalf("minute beyond duration must clamp: got %d want 90", got)
	}
	if got := acct.Played[player.RosterRef(2)]; got != 0 {
		t.Fatalf("entry at clamped final minute plays nothing: got %d", got)
	}
}

func TestAccountMinutes_ParticipantsOrder(t *testing.T) {
	starters := refs(1, 2)
	events := []Event{
		{Round: 1, Minute: 45, Out: player.RosterRef(1), In: player.RosterRef(9)},
	}

	acct := AccountMinutes(starters, events, 90)
	want := []player.Ref{player.RosterRef(1), player.RosterRef(2), player.RosterRef(9)}
	if len(acct.Participants) != len(want) {
		t.Fatalf("unexpected participants: %v", acct.Participants)
	}
	for i := range want {
		if acct.Participants[i] != want[i] {
			t.Fatalf("participants order at %d: got %v want %v", i, acct.Participants[i], want[i])
		}
	}
}

func TestParticipantSet_IncludesSubbedInOnly(t *testing.T) {
	starters := refs(1)
	events := []Event{
		{Round: 1, Minute: 50, Out: player.RosterRef(1), In: player.GuestRef(2)},
	}

	set := ParticipantSet(starters, events)
	if _, ok := set[player.RosterRef(1)]; !ok {
		t.Fatalf("starter missing from participant set")
	}
	if _, ok := set[player.GuestRef(2)]; !ok {
		t.Fatalf("substitute missing from participant set")
	}
	if len(set) != 2 {
		t.Fatalf("unexpected participant set size: %d", len(set))
	}
}
