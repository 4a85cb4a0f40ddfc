package attendance

import "context"

// Repository exposes per-match absence persistence.
type Repository interface {
	ListByMatch(ctx context.Context, matchID string) ([]Absence, error)
	// ReplaceForMatch swaps the whole absence list of a match atomically.
	ReplaceForMatch(ctx context.Context, matchID string, absences []Absence) error
}

// MemberSet flattens absences into the lookup shape player.Available takes.
func MemberSet(absences []Absence) map[int64]struct{} {
	out := make(map[int64]struct{}, len(absences))
	for _, a := range absences {
		out[a.MemberID] = struct{}{}
	}
	return out
}
