package cache

import (
	"context"
	"strconv"

	"github.com/matchdayhq/matchday/internal/domain/guest"
	"github.com/matchdayhq/matchday/internal/domain/roster"
	basecache "github.com/matchdayhq/matchday/internal/platform/cache"
)

// RosterRepository is a read-through decorator over roster persistence.
// The roster is read on every pool resolution but changes rarely; writes
// invalidate the whole team prefix rather than tracking individual keys.
type RosterRepository struct {
	next  roster.Repository
	cache *basecache.Store
}

func NewRosterRepository(next roster.Repository, cache *basecache.Store) *RosterRepository {
	return &RosterRepository{next: next, cache: cache}
}

func (r *RosterRepository) ListByTeam(ctx context.Context, teamID string) ([]roster.Member, error) {
	key := "roster:list:" + teamID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		members, err := r.next.ListByTeam(ctx, teamID)
		if err != nil {
			return nil, err
		}
		return append([]roster.Member(nil), members...), nil
	})
	if err != nil {
		return nil, err
	}

	members, _ := v.([]roster.Member)
	return append([]roster.Member(nil), members...), nil
}

func (r *RosterRepository) GetByID(ctx context.Context, teamID string, memberID int64) (roster.Member, bool, error) {
	key := "roster:member:" + teamID + ":" + strconv.FormatInt(memberID, 10)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		member, exists, err := r.next.GetByID(ctx, teamID, memberID)
		if err != nil {
			return nil, err
		}
		return cachedMember{value: member, exists: exists}, nil
	})
	if err != nil {
		return roster.Member{}, false, err
	}

	cached, _ := v.(cachedMember)
	return cached.value, cached.exists, nil
}

func (r *RosterRepository) SetInjured(ctx context.Context, teamID string, memberID int64, injured bool) error {
	if err := r.next.SetInjured(ctx, teamID, memberID, injured); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "roster:")
	return nil
}

func (r *RosterRepository) ApplyStatDeltas(ctx context.Context, teamID string, deltas []roster.StatDelta) error {
	if err := r.next.ApplyStatDeltas(ctx, teamID, deltas); err != nil {
		return err
	}
	r.cache.DeletePrefix(ctx, "roster:")
	return nil
}

type cachedMember struct {
	value  roster.Member
	exists bool
}

// GuestRepository caches the per-match guest list between registrations.
type GuestRepository struct {
	next  guest.Repository
	cache *basecache.Store
}

func NewGuestRepository(next guest.Repository, cache *basecache.Store) *GuestRepository {
	return &GuestRepository{next: next, cache: cache}
}

func (r *GuestRepository) ListByMatch(ctx context.Context, matchID string) ([]guest.Guest, error) {
	key := "guest:list:" + matchID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		guests, err := r.next.ListByMatch(ctx, matchID)
		if err != nil {
			return nil, err
		}
		return append([]guest.Guest(nil), guests...), nil
	})
	if err != nil {
		return nil, err
	}

	guests, _ := v.([]guest.Guest)
	return append([]guest.Guest(nil), guests...), nil
}

func (r *GuestRepository) Create(ctx context.Context, g guest.Guest) (guest.Guest, error) {
	created, err := r.next.Create(ctx, g)
	if err != nil {
		return guest.Guest{}, err
	}
	r.cache.Delete(ctx, "guest:list:"+created.MatchID)
	return created, nil
}

func (r *GuestRepository) Delete(ctx context.Context, matchID string, guestID int64) error {
	if err := r.next.Delete(ctx, matchID, guestID); err != nil {
		return err
	}
	r.cache.Delete(ctx, "guest:list:"+matchID)
	return nil
}
