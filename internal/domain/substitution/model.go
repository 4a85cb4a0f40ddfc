package substitution

import (
	"errors"
	"fmt"
	"sort"

	"github.com/matchdayhq/matchday/internal/domain/player"
)

var (
	ErrIncompletePair    = errors.New("substitution pair must name both players")
	ErrSelfReplace       = errors.New("incoming and outgoing player must differ")
	ErrDuplicateOutgoing = errors.New("outgoing player used twice in one round")
	ErrDuplicateIncoming = errors.New("incoming player used twice in one round")
)

// Event is one committed player swap. Scheduled events belong to a round;
// extra events happen outside any round and carry round zero.
type Event struct {
	MatchID string
	Round   int
	Minute  int
	Out     player.Ref
	In      player.Ref
	Extra   bool
}

// Pair is one outgoing/incoming selection inside a round draft.
type Pair struct {
	Out player.Ref
	In  player.Ref
}

// ValidatePairs checks a round draft before commit: every pair complete,
// no player used as outgoing twice, no player used as incoming twice.
// Membership is checked on composite refs, never raw ids.
func ValidatePairs(pairs []Pair) error {
	outSeen := make(map[player.Ref]struct{}, len(pairs))
	inSeen := make(map[player.Ref]struct{}, len(pairs))

	for i, pair := range pairs {
		if pair.Out.IsZero() || pair.In.IsZero() {
			return fmt.Errorf("%w: pair %d", ErrIncompletePair, i+1)
		}
		if pair.Out == pair.In {
			return fmt.Errorf("%w: %s", ErrSelfReplace, pair.Out.Key())
		}
		if _, dup := outSeen[pair.Out]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateOutgoing, pair.Out.Key())
		}
		if _, dup := inSeen[pair.In]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateIncoming, pair.In.Key())
		}
		outSeen[pair.Out] = struct{}{}
		inSeen[pair.In] = struct{}{}
	}

	return nil
}

// NextRound computes the number for a newly created free-form round.
// Rounds are numbered by creation order (max existing + 1) even though they
// display sorted by minute; out-of-order creation keeps the observed
// numbering from the original scheme.
func NextRound(events []Event) int {
	next := 1
	for _, e := range events {
		if e.Extra {
			continue
		}
		if e.Round >= next {
			next = e.Round + 1
		}
	}
	return next
}

// SortForDisplay orders events by minute, then round, then outgoing key so
// free-form rounds render in match-time order regardless of creation order.
func SortForDisplay(events []Event) []Event {
	out := append([]Event(nil), events...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Minute != out[j].Minute {
			return out[i].Minute < out[j].Minute
		}
		if out[i].Round != out[j].Round {
			return out[i].Round < out[j].Round
		}
		return out[i].Out.Key() < out[j].Out.Key()
	})
	return out
}

// RoundEvents filters the scheduled events of one round.
func RoundEvents(events []Event, round int) []Event {
	out := make([]Event, 0, len(events))
	for _, e := range events {
		if !e.Extra && e.Round == round {
			out = append(out, e)
		}
	}
	return out
}
