package lineup

import (
	"testing"

	"github.com/matchdayhq/matchday/internal/domain/player"
)

func TestSheetAssign(t *testing.T) {
	s := NewSheet(3)

	if !s.Assign(0, player.RosterRef(1)) {
		t.Fatalf("assigning a vacant slot must succeed")
	}
	if s.Assign(0, player.RosterRef(2)) {
		t.Fatalf("occupied slot must refuse a second occupant")
	}
	if s.Assign(1, player.RosterRef(1)) {
		t.Fatalf("a ref may occupy at most one slot")
	}
	if s.Assign(3, player.RosterRef(2)) {
		t.Fatalf("out-of-range slot must be refused")
	}
	if s.Assign(-1, player.RosterRef(2)) {
		t.Fatalf("negative slot must be refused")
	}
	if s.Assign(1, player.Ref{}) {
		t.Fatalf("zero ref must be refused")
	}

	if s.At(0) != player.RosterRef(1) {
		t.Fatalf("refused mutations must leave the sheet unchanged: %+v", s.Slots())
	}
	if s.Filled() != 1 {
		t.Fatalf("expected 1 filled slot, got %d", s.Filled())
	}
}

func TestSheetAssign_GuestAndRosterShareRawID(t *testing.T) {
	s := NewSheet(2)
	s.Assign(0, player.RosterRef(7))
	if !s.Assign(1, player.GuestRef(7)) {
		t.Fatalf("guest and roster refs with the same raw id are distinct occupants")
	}
}

func TestSheetUnassign(t *testing.T) {
	s := NewSheet(2)
	s.Assign(0, player.RosterRef(1))

	s.Unassign(0)
	if !s.At(0).IsZero() {
		t.Fatalf("slot must be vacant after unassign")
	}
	if !s.Assign(1, player.RosterRef(1)) {
		t.Fatalf("freed ref must be assignable again")
	}

	s.Unassign(5)
	s.Unassign(-1)
}

func TestSheetSlotOfAndStarters(t *testing.T) {
	s := NewSheet(4)
	s.Assign(1, player.RosterRef(1))
	s.Assign(3, player.GuestRef(2))

	if slot, ok := s.SlotOf(player.GuestRef(2)); !ok || slot != 3 {
		t.Fatalf("SlotOf = (%d, %v), want (3, true)", slot, ok)
	}
	if _, ok := s.SlotOf(player.RosterRef(9)); ok {
		t.Fatalf("unknown ref must not resolve a slot")
	}
	if _, ok := s.SlotOf(player.Ref{}); ok {
		t.Fatalf("zero ref never occupies a slot")
	}

	starters := s.Starters()
	if len(starters) != 2 || starters[0] != player.RosterRef(1) || starters[1] != player.GuestRef(2) {
		t.Fatalf("starters must list occupants in slot order: %+v", starters)
	}
}

func TestFromSlots_DropsDuplicates(t *testing.T) {
	s := FromSlots([]player.Ref{
		player.RosterRef(1),
		{},
		player.RosterRef(1),
		player.GuestRef(2),
	})

	if s.Size() != 4 {
		t.Fatalf("size must match the persisted array, got %d", s.Size())
	}
	if s.At(0) != player.RosterRef(1) {
		t.Fatalf("first occurrence keeps its slot")
	}
	if !s.At(2).IsZero() {
		t.Fatalf("duplicate occupant past its first slot must be dropped")
	}
	if s.At(3) != player.GuestRef(2) {
		t.Fatalf("unrelated occupants survive the rebuild")
	}
}

func TestNewSheet_NegativeSize(t *testing.T) {
	if got := NewSheet(-3).Size(); got != 0 {
		t.Fatalf("negative size clamps to zero, got %d", got)
	}
}
