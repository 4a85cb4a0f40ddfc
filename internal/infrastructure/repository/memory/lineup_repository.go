package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/matchdayhq/matchday/internal/domain/lineup"
)

type LineupRepository struct {
	mu      sync.RWMutex
	byMatch map[string][]lineup.Assignment
}

func NewLineupRepository() *LineupRepository {
	return &LineupRepository{byMatch: make(map[string][]lineup.Assignment)}
}

func (r *LineupRepository) ListByMatch(_ context.Context, matchID string) ([]lineup.Assignment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := append([]lineup.Assignment(nil), r.byMatch[matchID]...)
	sort.Slice(out, func(i, j int) bool { return out[i].Slot < out[j].Slot })

	return out, nil
}

func (r *LineupRepository) ReplaceForMatch(_ context.Context, matchID string, assignments []lineup.Assignment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byMatch[matchID] = append([]lineup.Assignment(nil), assignments...)
	return nil
}
