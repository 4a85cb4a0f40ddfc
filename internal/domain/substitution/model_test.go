package substitution

import (
	"errors"
	"testing"

	"github.com/matchdayhq/matchday/internal/domain/player"
)

func TestValidatePairs(t *testing.T) {
	tests := []struct {
		name    string
		pairs   []Pair
		wantErr error
	}{
		{
			name: "valid pairs",
			pairs: []Pair{
				{Out: player.RosterRef(1), In: player.RosterRef(4)},
				{Out: player.RosterRef(2), In: player.GuestRef(1)},
			},
		},
		{
			name:    "incomplete pair",
			pairs:   []Pair{{Out: player.RosterRef(1)}},
			wantErr: ErrIncompletePair,
		},
		{
			name:    "self replace",
			pairs:   []Pair{{Out: player.RosterRef(1), In: player.RosterRef(1)}},
			wantErr: ErrSelfReplace,
		},
		{
			name: "duplicate outgoing",
			pairs: []Pair{
				{Out: player.RosterRef(1), In: player.RosterRef(4)},
				{Out: player.RosterRef(1), In: player.RosterRef(5)},
			},
			wantErr: ErrDuplicateOutgoing,
		},
		{
			name: "duplicate incoming",
			pairs: []Pair{
				{Out: player.RosterRef(1), In: player.RosterRef(4)},
				{Out: player.RosterRef(2), In: player.RosterRef(4)},
			},
			wantErr: ErrDuplicateIncoming,
		},
		{
			name: "same raw id across origins is not a self replace",
			pairs: []Pair{
				{Out: player.RosterRef(3), In: player.GuestRef(3)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePairs(tt.pairs)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestNextRound(t *testing.T) {
	events := []Event{
		{Round: 1, Minute: 30, Out: player.RosterRef(1), In: player.RosterRef(4)},
		{Round: 3, Minute: 20, Out: player.RosterRef(2), In: player.RosterRef(5)},
		{Round: 0, Minute: 88, Out: player.RosterRef(3), In: player.RosterRef(6), Extra: true},
	}

	if got := NextRound(events); got != 4 {
		t.Fatalf("next round: got %d want 4", got)
	}
	if got := NextRound(nil); got != 1 {
		t.Fatalf("next round with no events: got %d want 1", got)
	}
}

func TestSortForDisplay_OrdersByMinute(t *testing.T) {
	events := []Event{
		{Round: 2, Minute: 20, Out: player.RosterRef(2), In: player.RosterRef(5)},
		{Round: 1, Minute: 70, Out: player.RosterRef(1), In: player.RosterRef(4)},
	}

	got := SortForDisplay(events)
	if got[0].Minute != 20 || got[1].Minute != 70 {
		t.Fatalf("events must render in match-time order: %+v", got)
	}
	if events[0].Minute != 20 {
		t.Fatalf("input slice must not be reordered")
	}
}
