package memory

import (
	"context"
	"sync"

	"github.com/matchdayhq/matchday/internal/domain/ledger"
	"github.com/matchdayhq/matchday/internal/domain/player"
	"github.com/matchdayhq/matchday/internal/platform/id"
)

type LedgerRepository struct {
	mu       sync.RWMutex
	byPlayer map[string]map[player.Ref][]ledger.Entry
	ids      *id.Sequence
}

func NewLedgerRepository() *LedgerRepository {
	return &LedgerRepository{
		byPlayer: make(map[string]map[player.Ref][]ledger.Entry),
		ids:      id.NewSequence(1),
	}
}

func (r *LedgerRepository) Append(_ context.Context, entries []ledger.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range entries {
		e.ID = r.ids.Next()
		if _, ok := r.byPlayer[e.TeamID]; !ok {
			r.byPlayer[e.TeamID] = make(map[player.Ref][]ledger.Entry)
		}
		r.byPlayer[e.TeamID][e.Player] = append(r.byPlayer[e.TeamID][e.Player], e)
	}

	return nil
}

func (r *LedgerRepository) ListByPlayer(_ context.Context, teamID string, ref player.Ref) ([]ledger.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]ledger.Entry(nil), r.byPlayer[teamID][ref]...), nil
}

func (r *LedgerRepository) SumByPlayer(_ context.Context, teamID string, ref player.Ref) (int64, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries, ok := r.byPlayer[teamID][ref]
	if !ok || len(entries) == 0 {
		return 0, false, nil
	}

	var sum int64
	for _, e := range entries {
		sum += e.Delta
	}

	return sum, true, nil
}
