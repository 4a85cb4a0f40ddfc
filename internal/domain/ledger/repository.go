package ledger

import (
	"context"

	"github.com/matchdayhq/matchday/internal/domain/player"
)

// Repository exposes the append-only credit ledger.
type Repository interface {
	Append(ctx context.Context, entries []Entry) error
	ListByPlayer(ctx context.Context, teamID string, ref player.Ref) ([]Entry, error)
	SumByPlayer(ctx context.Context, teamID string, ref player.Ref) (int64, bool, error)
}
