package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/matchdayhq/matchday/internal/domain/vote"
)

type VoteRepository struct {
	mu      sync.RWMutex
	byMatch map[string][]vote.Ballot
	voters  map[string]map[string]struct{}
}

func NewVoteRepository() *VoteRepository {
	return &VoteRepository{
		byMatch: make(map[string][]vote.Ballot),
		voters:  make(map[string]map[string]struct{}),
	}
}

func (r *VoteRepository) ListByMatch(_ context.Context, matchID string) ([]vote.Ballot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]vote.Ballot(nil), r.byMatch[matchID]...), nil
}

func (r *VoteRepository) HasVoted(_ context.Context, matchID, voterKey string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.voters[matchID][voterKey]
	return ok, nil
}

func (r *VoteRepository) Create(_ context.Context, b vote.Ballot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.voters[b.MatchID][b.VoterKey]; ok {
		return fmt.Errorf("ballot already cast: match=%s voter=%s", b.MatchID, b.VoterKey)
	}
	if _, ok := r.voters[b.MatchID]; !ok {
		r.voters[b.MatchID] = make(map[string]struct{})
	}
	r.voters[b.MatchID][b.VoterKey] = struct{}{}
	r.byMatch[b.MatchID] = append(r.byMatch[b.MatchID], b)

	return nil
}
