package guest

import "context"

// Repository exposes match-scoped guest persistence.
type Repository interface {
	ListByMatch(ctx context.Context, matchID string) ([]Guest, error)
	Create(ctx context.Context, g Guest) (Guest, error)
	Delete(ctx context.Context, matchID string, guestID int64) error
}
