package roster

import "context"

// Repository describes roster persistence needs from use cases.
type Repository interface {
	ListByTeam(ctx context.Context, teamID string) ([]Member, error)
	GetByID(ctx context.Context, teamID string, memberID int64) (Member, bool, error)
	SetInjured(ctx context.Context, teamID string, memberID int64, injured bool) error
	// ApplyStatDeltas increments cumulative stats for the given members.
	// Implementations apply all deltas or none.
	ApplyStatDeltas(ctx context.Context, teamID string, deltas []StatDelta) error
}
