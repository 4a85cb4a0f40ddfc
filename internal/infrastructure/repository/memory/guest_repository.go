package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/matchdayhq/matchday/internal/domain/guest"
	"github.com/matchdayhq/matchday/internal/platform/id"
)

type GuestRepository struct {
	mu      sync.RWMutex
	byMatch map[string]map[int64]guest.Guest
	ids     *id.Sequence
}

func NewGuestRepository() *GuestRepository {
	return &GuestRepository{
		byMatch: make(map[string]map[int64]guest.Guest),
		ids:     id.NewSequence(1),
	}
}

func (r *GuestRepository) ListByMatch(_ context.Context, matchID string) ([]guest.Guest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	index := r.byMatch[matchID]
	out := make([]guest.Guest, 0, len(index))
	for _, g := range index {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r *GuestRepository) Create(_ context.Context, g guest.Guest) (guest.Guest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	g.ID = r.ids.Next()
	if _, ok := r.byMatch[g.MatchID]; !ok {
		r.byMatch[g.MatchID] = make(map[int64]guest.Guest)
	}
	r.byMatch[g.MatchID][g.ID] = g

	return g, nil
}

func (r *GuestRepository) Delete(_ context.Context, matchID string, guestID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byMatch[matchID], guestID)
	return nil
}
