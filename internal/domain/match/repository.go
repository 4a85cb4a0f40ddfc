package match

import (
	"context"
	"time"
)

// Repository exposes match persistence operations.
type Repository interface {
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	ListByTeam(ctx context.Context, teamID string) ([]Match, error)
	Create(ctx context.Context, m Match) error
	SetScore(ctx context.Context, matchID string, goalsFor, goalsAgainst int) error
	// MarkFinalized flips the draft status exactly once. It returns false
	// without error when the match was already finalized.
	MarkFinalized(ctx context.Context, matchID string, at time.Time) (bool, error)
	// ClaimPayout sets the payout flag if and only if it is still unset.
	// The conditional write is the uniqueness guard that keeps racing
	// payout runs from paying twice.
	ClaimPayout(ctx context.Context, matchID string) (bool, error)
	// ListPayoutDue returns finalized matches whose payout flag is unset
	// and whose voting window closed before the given instant.
	ListPayoutDue(ctx context.Context, teamID string, closedBefore time.Time, windowDays int) ([]Match, error)
}
