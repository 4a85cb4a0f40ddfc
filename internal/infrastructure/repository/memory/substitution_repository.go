package memory

import (
	"context"
	"sync"

	"github.com/matchdayhq/matchday/internal/domain/substitution"
)

type SubstitutionRepository struct {
	mu      sync.RWMutex
	byMatch map[string][]substitution.Event
}

func NewSubstitutionRepository() *SubstitutionRepository {
	return &SubstitutionRepository{byMatch: make(map[string][]substitution.Event)}
}

func (r *SubstitutionRepository) ListByMatch(_ context.Context, matchID string) ([]substitution.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]substitution.Event(nil), r.byMatch[matchID]...), nil
}

func (r *SubstitutionRepository) ReplaceRound(_ context.Context, matchID string, round, minute int, pairs []substitution.Pair) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := make([]substitution.Event, 0, len(r.byMatch[matchID])+len(pairs))
	for _, e := range r.byMatch[matchID] {
		if !e.Extra && e.Round == round {
			continue
		}
		kept = append(kept, e)
	}
	for _, p := range pairs {
		kept = append(kept, substitution.Event{
			MatchID: matchID,
			Round:   round,
			Minute:  minute,
			Out:     p.Out,
			In:      p.In,
		})
	}
	r.byMatch[matchID] = kept

	return nil
}

func (r *SubstitutionRepository) AppendExtra(_ context.Context, matchID string, minute int, pair substitution.Pair) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byMatch[matchID] = append(r.byMatch[matchID], substitution.Event{
		MatchID: matchID,
		Minute:  minute,
		Out:     pair.Out,
		In:      pair.In,
		Extra:   true,
	})

	return nil
}
