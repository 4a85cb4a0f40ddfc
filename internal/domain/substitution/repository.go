package substitution

import "context"

// Repository exposes substitution event persistence.
type Repository interface {
	ListByMatch(ctx context.Context, matchID string) ([]Event, error)
	// ReplaceRound swaps all events of one scheduled round atomically:
	// either the previous pair set or the new one is visible, never a mix.
	ReplaceRound(ctx context.Context, matchID string, round, minute int, pairs []Pair) error
	// AppendExtra records an ad-hoc swap outside any scheduled round.
	AppendExtra(ctx context.Context, matchID string, minute int, pair Pair) error
}
