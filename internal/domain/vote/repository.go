package vote

import "context"

// Repository exposes ballot persistence. Ballots are append-only.
type Repository interface {
	ListByMatch(ctx context.Context, matchID string) ([]Ballot, error)
	HasVoted(ctx context.Context, matchID, voterKey string) (bool, error)
	// Create inserts a ballot. Implementations back the one-vote-per-voter
	// rule with a uniqueness constraint on (match, voter) where available.
	Create(ctx context.Context, b Ballot) error
}
