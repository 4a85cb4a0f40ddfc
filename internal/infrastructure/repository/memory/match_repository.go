package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/matchdayhq/matchday/internal/domain/match"
)

type MatchRepository struct {
	mu    sync.RWMutex
	items map[string]match.Match
}

func NewMatchRepository(matches []match.Match) *MatchRepository {
	items := make(map[string]match.Match, len(matches))
	for _, m := range matches {
		items[m.ID] = cloneMatch(m)
	}

	return &MatchRepository{items: items}
}

func (r *MatchRepository) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.items[matchID]
	if !ok {
		return match.Match{}, false, nil
	}

	return cloneMatch(m), true, nil
}

func (r *MatchRepository) ListByTeam(_ context.Context, teamID string) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0, len(r.items))
	for _, m := range r.items {
		if m.TeamID != teamID {
			continue
		}
		out = append(out, cloneMatch(m))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].KickoffAt.Before(out[j].KickoffAt) })

	return out, nil
}

func (r *MatchRepository) Create(_ context.Context, m match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[m.ID]; exists {
		return fmt.Errorf("match already exists: %s", m.ID)
	}
	r.items[m.ID] = cloneMatch(m)

	return nil
}

func (r *MatchRepository) SetScore(_ context.Context, matchID string, goalsFor, goalsAgainst int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.items[matchID]
	if !ok {
		return fmt.Errorf("unknown match: %s", matchID)
	}
	m.GoalsFor = goalsFor
	m.GoalsAgainst = goalsAgainst
	r.items[matchID] = m

	return nil
}

func (r *MatchRepository) MarkFinalized(_ context.Context, matchID string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.items[matchID]
	if !ok {
		return false, fmt.Errorf("unknown match: %s", matchID)
	}
	if m.Status == match.StatusFinalized {
		return false, nil
	}
	m.Status = match.StatusFinalized
	finalizedAt := at.UTC()
	m.FinalizedAt = &finalizedAt
	r.items[matchID] = m

	return true, nil
}

func (r *MatchRepository) ClaimPayout(_ context.Context, matchID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.items[matchID]
	if !ok {
		return false, fmt.Errorf("unknown match: %s", matchID)
	}
	if m.PayoutDone {
		return false, nil
	}
	m.PayoutDone = true
	r.items[matchID] = m

	return true, nil
}

func (r *MatchRepository) ListPayoutDue(_ context.Context, teamID string, closedBefore time.Time, windowDays int) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0)
	for _, m := range r.items {
		if m.TeamID != teamID || m.PayoutDone {
			continue
		}
		if !m.VotingClosed(closedBefore, windowDays) {
			continue
		}
		out = append(out, cloneMatch(m))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].KickoffAt.Before(out[j].KickoffAt) })

	return out, nil
}

func cloneMatch(m match.Match) match.Match {
	copied := m
	copied.SchemeMinutes = append([]int(nil), m.SchemeMinutes...)
	if m.FinalizedAt != nil {
		at := *m.FinalizedAt
		copied.FinalizedAt = &at
	}
	return copied
}
