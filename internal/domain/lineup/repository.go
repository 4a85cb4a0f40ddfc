package lineup

import (
	"context"

	"github.com/matchdayhq/matchday/internal/domain/player"
)

// Assignment is one persisted slot occupancy of a match lineup.
type Assignment struct {
	MatchID string
	Slot    int
	Ref     player.Ref
}

// Repository exposes lineup persistence operations.
type Repository interface {
	ListByMatch(ctx context.Context, matchID string) ([]Assignment, error)
	// ReplaceForMatch swaps the whole lineup of a match atomically.
	ReplaceForMatch(ctx context.Context, matchID string, assignments []Assignment) error
}

// SheetFromAssignments rebuilds the slot array for a formation of the given
// size from persisted assignments.
func SheetFromAssignments(size int, assignments []Assignment) *Sheet {
	sheet := NewSheet(size)
	for _, a := range assignments {
		sheet.Assign(a.Slot, a.Ref)
	}
	return sheet
}

// AssignmentsFromSheet flattens a sheet into persistable rows.
func AssignmentsFromSheet(matchID string, sheet *Sheet) []Assignment {
	out := make([]Assignment, 0, sheet.Filled())
	for slot, ref := range sheet.Slots() {
		if ref.IsZero() {
			continue
		}
		out = append(out, Assignment{MatchID: matchID, Slot: slot, Ref: ref})
	}
	return out
}
