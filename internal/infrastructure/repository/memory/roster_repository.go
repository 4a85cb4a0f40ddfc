package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/matchdayhq/matchday/internal/domain/roster"
)

type RosterRepository struct {
	mu          sync.RWMutex
	byTeam      map[string][]int64
	indexByTeam map[string]map[int64]roster.Member
}

func NewRosterRepository(members []roster.Member) *RosterRepository {
	byTeam := make(map[string][]int64)
	indexByTeam := make(map[string]map[int64]roster.Member)

	for _, m := range members {
		byTeam[m.TeamID] = append(byTeam[m.TeamID], m.ID)
		if _, ok := indexByTeam[m.TeamID]; !ok {
			indexByTeam[m.TeamID] = make(map[int64]roster.Member)
		}
		indexByTeam[m.TeamID][m.ID] = m
	}

	return &RosterRepository{
		byTeam:      byTeam,
		indexByTeam: indexByTeam,
	}
}

func (r *RosterRepository) ListByTeam(_ context.Context, teamID string) ([]roster.Member, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.byTeam[teamID]
	out := make([]roster.Member, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.indexByTeam[teamID][id])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out, nil
}

func (r *RosterRepository) GetByID(_ context.Context, teamID string, memberID int64) (roster.Member, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.indexByTeam[teamID][memberID]
	if !ok {
		return roster.Member{}, false, nil
	}

	return m, true, nil
}

func (r *RosterRepository) SetInjured(_ context.Context, teamID string, memberID int64, injured bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	index, ok := r.indexByTeam[teamID]
	if !ok {
		return fmt.Errorf("unknown team: %s", teamID)
	}
	m, ok := index[memberID]
	if !ok {
		return fmt.Errorf("unknown member: %d", memberID)
	}
	m.Injured = injured
	index[memberID] = m

	return nil
}

func (r *RosterRepository) ApplyStatDeltas(_ context.Context, teamID string, deltas []roster.StatDelta) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	index, ok := r.indexByTeam[teamID]
	if !ok {
		return fmt.Errorf("unknown team: %s", teamID)
	}
	// Verify every target exists before touching any record so the batch
	// applies all-or-nothing.
	for _, d := range deltas {
		if _, ok := index[d.MemberID]; !ok {
			return fmt.Errorf("unknown member in stat batch: %d", d.MemberID)
		}
	}
	for _, d := range deltas {
		m := index[d.MemberID]
		m.Stats.Minutes += d.Minutes
		m.Stats.BenchMinutes += d.BenchMinutes
		m.Stats.Appearances += d.Appearances
		index[d.MemberID] = m
	}

	return nil
}
