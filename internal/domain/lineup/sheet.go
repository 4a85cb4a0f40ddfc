package lineup

import "github.com/matchdayhq/matchday/internal/domain/player"

// Sheet is the slot-indexed starting lineup of one match. Each slot holds
// at most one player ref and each ref occupies at most one slot. Refused
// mutations are silent no-ops: the UI pre-filters them, the sheet just has
// to stay consistent when it does not.
type Sheet struct {
	slots []player.Ref
}

func NewSheet(size int) *Sheet {
	if size < 0 {
		size = 0
	}
	return &Sheet{slots: make([]player.Ref, size)}
}

func (s *Sheet) Size() int {
	return len(s.slots)
}

// Assign places ref into slot. No-ops when the slot is out of range, the
// slot already holds someone (callers empty it first), or the ref already
// occupies another slot. Occupancy checks go through the composite ref, so
// a guest and a roster player sharing a raw id are distinct occupants.
func (s *Sheet) Assign(slot int, ref player.Ref) bool {
	if slot < 0 || slot >= len(s.slots) || ref.IsZero() {
		return false
	}
	if !s.slots[slot].IsZero() {
		return false
	}
	if s.IsOccupied(ref) {
		return false
	}
	s.slots[slot] = ref
	return true
}

// Unassign clears a slot. Out-of-range indexes are ignored.
func (s *Sheet) Unassign(slot int) {
	if slot < 0 || slot >= len(s.slots) {
		return
	}
	s.slots[slot] = player.Ref{}
}

// IsOccupied reports whether ref holds any slot.
func (s *Sheet) IsOccupied(ref player.Ref) bool {
	_, ok := s.SlotOf(ref)
	return ok
}

// SlotOf returns the slot currently held by ref.
func (s *Sheet) SlotOf(ref player.Ref) (int, bool) {
	for i, occupant := range s.slots {
		if occupant == ref && !occupant.IsZero() {
			return i, true
		}
	}
	return 0, false
}

// At returns the occupant of a slot, zero ref when vacant.
func (s *Sheet) At(slot int) player.Ref {
	if slot < 0 || slot >= len(s.slots) {
		return player.Ref{}
	}
	return s.slots[slot]
}

// Starters lists all occupants in slot order, skipping vacant slots.
func (s *Sheet) Starters() []player.Ref {
	out := make([]player.Ref, 0, len(s.slots))
	for _, ref := range s.slots {
		if !ref.IsZero() {
			out = append(out, ref)
		}
	}
	return out
}

// Filled counts occupied slots.
func (s *Sheet) Filled() int {
	return len(s.Starters())
}

// Slots returns a copy of the raw slot array, vacancies included.
func (s *Sheet) Slots() []player.Ref {
	return append([]player.Ref(nil), s.slots...)
}

// FromSlots rebuilds a sheet from a persisted slot array, dropping any
// duplicate occupants past their first slot.
func FromSlots(slots []player.Ref) *Sheet {
	sheet := NewSheet(len(slots))
	for i, ref := range slots {
		if ref.IsZero() {
			continue
		}
		sheet.Assign(i, ref)
	}
	return sheet
}
