package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/matchdayhq/matchday/internal/domain/player"
	"github.com/matchdayhq/matchday/internal/domain/substitution"
)

func TestCommitRound_FixedSchemeUsesTriggerMinute(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	m := env.createMatch(t, "8-331", []int{30, 60}, 90)
	env.fillLineup(t, m.ID, 1, 2, 3, 4, 5, 6, 7, 8)

	pairs := []substitution.Pair{{Out: player.RosterRef(2), In: player.RosterRef(9)}}
	// The client-supplied minute is ignored under a fixed scheme.
	if err := env.subs.CommitRound(ctx, m.ID, 2, 5, pairs); err != nil {
		t.Fatalf("commit round: %v", err)
	}

	events, err := env.subs.ListEvents(ctx, m.ID)
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Round != 2 || events[0].Minute != 60 {
		t.Fatalf("round 2 commits at its trigger minute: %+v", events[0])
	}
}

func TestCommitRound_RejectedDraftLeavesRoundUntouched(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	m := env.createMatch(t, "8-331", []int{30}, 90)
	env.fillLineup(t, m.ID, 1, 2, 3, 4, 5, 6, 7, 8)

	good := []substitution.Pair{{Out: player.RosterRef(1), In: player.RosterRef(9)}}
	if err := env.subs.CommitRound(ctx, m.ID, 1, 0, good); err != nil {
		t.Fatalf("commit round: %v", err)
	}

	bad := []substitution.Pair{{Out: player.RosterRef(2), In: player.RosterRef(2)}}
	if err := env.subs.CommitRound(ctx, m.ID, 1, 0, bad); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}

	events, err := env.subs.ListEvents(ctx, m.ID)
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(events) != 1 || events[0].Out != player.RosterRef(1) {
		t.Fatalf("rejected draft must not replace the committed pairs: %+v", events)
	}
}

func TestCommitRound_ReplacesRoundAtomically(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	m := env.createMatch(t, "8-331", []int{30}, 90)
	env.fillLineup(t, m.ID, 1, 2, 3, 4, 5, 6, 7, 8)

	first := []substitution.Pair{{Out: player.RosterRef(1), In: player.RosterRef(9)}}
	if err := env.subs.CommitRound(ctx, m.ID, 1, 0, first); err != nil {
		t.Fatalf("first commit: %v", err)
	}
	second := []substitution.Pair{{Out: player.RosterRef(2), In: player.RosterRef(10)}}
	if err := env.subs.CommitRound(ctx, m.ID, 1, 0, second); err != nil {
		t.Fatalf("second commit: %v", err)
	}

	events, err := env.subs.ListEvents(ctx, m.ID)
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(events) != 1 || events[0].Out != player.RosterRef(2) {
		t.Fatalf("recommit must fully replace the round: %+v", events)
	}
}

func TestCommitRound_RoundPastScheme(t *testing.T) {
	env := newTestEnv()
	m := env.createMatch(t, "8-331", []int{30, 60}, 90)
	env.fillLineup(t, m.ID, 1, 2, 3, 4, 5, 6, 7, 8)

	pairs := []substitution.Pair{{Out: player.RosterRef(1), In: player.RosterRef(9)}}
	if err := env.subs.CommitRound(context.Background(), m.ID, 3, 0, pairs); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for round past the scheme, got %v", err)
	}
}

func TestEligibility_ReEntryAfterLeaving(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	m := env.createMatch(t, "8-331", []int{30, 60}, 90)
	env.fillLineup(t, m.ID, 1, 2, 3, 4, 5, 6, 7, 8)

	pairs := []substitution.Pair{{Out: player.RosterRef(2), In: player.RosterRef(9)}}
	if err := env.subs.CommitRound(ctx, m.ID, 1, 0, pairs); err != nil {
		t.Fatalf("commit round: %v", err)
	}

	incoming, err := env.subs.EligibleIncoming(ctx, m.ID, 2, nil)
	if err != nil {
		t.Fatalf("eligible incoming: %v", err)
	}
	if !containsRef(incoming, player.RosterRef(2)) {
		t.Fatalf("a round-1 leaver may re-enter in round 2: %+v", refsOf(incoming))
	}
	if containsRef(incoming, player.RosterRef(9)) {
		t.Fatalf("a player on the field cannot come in again")
	}
	if containsRef(incoming, player.RosterRef(15)) {
		t.Fatalf("an injured player is never eligible to enter")
	}

	outgoing, err := env.subs.EligibleOutgoing(ctx, m.ID, 2, nil)
	if err != nil {
		t.Fatalf("eligible outgoing: %v", err)
	}
	if !containsRef(outgoing, player.RosterRef(9)) {
		t.Fatalf("the round-1 entrant is on the field and may leave: %+v", refsOf(outgoing))
	}
	if containsRef(outgoing, player.RosterRef(2)) {
		t.Fatalf("a player off the field cannot leave")
	}
}

func TestEligibility_ExcludesDraftPicks(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	m := env.createMatch(t, "8-331", []int{30}, 90)
	env.fillLineup(t, m.ID, 1, 2, 3, 4, 5, 6, 7, 8)

	outgoing, err := env.subs.EligibleOutgoing(ctx, m.ID, 1, []player.Ref{player.RosterRef(1)})
	if err != nil {
		t.Fatalf("eligible outgoing: %v", err)
	}
	if containsRef(outgoing, player.RosterRef(1)) {
		t.Fatalf("a draft pick is excluded from its own selector")
	}

	incoming, err := env.subs.EligibleIncoming(ctx, m.ID, 1, []player.Ref{player.RosterRef(9)})
	if err != nil {
		t.Fatalf("eligible incoming: %v", err)
	}
	if containsRef(incoming, player.RosterRef(9)) {
		t.Fatalf("a drafted entrant is excluded from its own selector")
	}
}

func TestNextRound_FreeFormOnly(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	freeForm := env.createMatch(t, "8-331", nil, 60)
	env.fillLineup(t, freeForm.ID, 1, 2, 3, 4, 5, 6, 7, 8)

	next, err := env.subs.NextRound(ctx, freeForm.ID)
	if err != nil {
		t.Fatalf("next round: %v", err)
	}
	if next != 1 {
		t.Fatalf("fresh match opens with round 1, got %d", next)
	}

	pairs := []substitution.Pair{{Out: player.RosterRef(1), In: player.RosterRef(9)}}
	if err := env.subs.CommitRound(ctx, freeForm.ID, 1, 20, pairs); err != nil {
		t.Fatalf("commit round: %v", err)
	}
	next, err = env.subs.NextRound(ctx, freeForm.ID)
	if err != nil {
		t.Fatalf("next round: %v", err)
	}
	if next != 2 {
		t.Fatalf("next round after round 1, got %d", next)
	}

	fixed := env.createMatch(t, "8-331", []int{30}, 90)
	if _, err := env.subs.NextRound(ctx, fixed.ID); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("fixed scheme has no next round, got %v", err)
	}
}

func TestOpenRound_LoadsCommittedPairs(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	m := env.createMatch(t, "8-331", []int{30, 60}, 90)
	env.fillLineup(t, m.ID, 1, 2, 3, 4, 5, 6, 7, 8)

	pairs := []substitution.Pair{{Out: player.RosterRef(3), In: player.RosterRef(10)}}
	if err := env.subs.CommitRound(ctx, m.ID, 1, 0, pairs); err != nil {
		t.Fatalf("commit round: %v", err)
	}

	draft, err := env.subs.OpenRound(ctx, m.ID, 1)
	if err != nil {
		t.Fatalf("open round: %v", err)
	}
	if draft.FreeForm {
		t.Fatalf("match uses a fixed scheme")
	}
	if draft.Minute != 30 {
		t.Fatalf("round 1 opens at its trigger minute, got %d", draft.Minute)
	}
	if len(draft.Pairs) != 1 || draft.Pairs[0].Out != player.RosterRef(3) {
		t.Fatalf("draft must carry the committed pairs: %+v", draft.Pairs)
	}

	empty, err := env.subs.OpenRound(ctx, m.ID, 2)
	if err != nil {
		t.Fatalf("open empty round: %v", err)
	}
	if len(empty.Pairs) != 0 || empty.Minute != 60 {
		t.Fatalf("untouched round opens empty at minute 60: %+v", empty)
	}
}

func TestAddExtra_OutsideRounds(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	m := env.createMatch(t, "8-331", nil, 60)
	env.fillLineup(t, m.ID, 1, 2, 3, 4, 5, 6, 7, 8)

	pair := substitution.Pair{Out: player.RosterRef(4), In: player.RosterRef(11)}
	if err := env.subs.AddExtra(ctx, m.ID, 55, pair); err != nil {
		t.Fatalf("add extra: %v", err)
	}
	if err := env.subs.AddExtra(ctx, m.ID, 70, pair); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("minute past full time must be rejected, got %v", err)
	}

	events, err := env.subs.ListEvents(ctx, m.ID)
	if err != nil {
		t.Fatalf("list events: %v", err)
	}
	if len(events) != 1 || !events[0].Extra {
		t.Fatalf("expected one extra event: %+v", events)
	}

	// Extras never bump the scheduled round counter.
	next, err := env.subs.NextRound(ctx, m.ID)
	if err != nil {
		t.Fatalf("next round: %v", err)
	}
	if next != 1 {
		t.Fatalf("extra events do not consume round numbers, got %d", next)
	}
}

func TestSubstitutions_LockedAfterFinalize(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	m := env.createMatch(t, "8-331", nil, 60)
	env.fillLineup(t, m.ID, 1, 2, 3, 4, 5, 6, 7, 8)

	if _, err := env.matches.Finalize(ctx, m.ID, false); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	pairs := []substitution.Pair{{Out: player.RosterRef(1), In: player.RosterRef(9)}}
	if err := env.subs.CommitRound(ctx, m.ID, 1, 20, pairs); !errors.Is(err, ErrMatchFinalized) {
		t.Fatalf("expected ErrMatchFinalized, got %v", err)
	}
}

func containsRef(pool []player.Player, ref player.Ref) bool {
	for _, p := range pool {
		if p.Ref == ref {
			return true
		}
	}
	return false
}

func refsOf(pool []player.Player) []string {
	out := make([]string, 0, len(pool))
	for _, p := range pool {
		out = append(out, p.Ref.Key())
	}
	return out
}
