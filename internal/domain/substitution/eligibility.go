package substitution

import (
	"sort"

	"github.com/matchdayhq/matchday/internal/domain/player"
)

// OnPitch replays the scheduled rounds before the given round and returns
// who is on the field when that round opens, in a stable order (starters
// first, later entrants after). Eligibility must come from this replay
// rather than static field/bench lists because a player subbed out earlier
// may have re-entered since.
func OnPitch(starters []player.Ref, events []Event, beforeRound int) []player.Ref {
	order := make([]player.Ref, 0, len(starters)+len(events))
	present := make(map[player.Ref]bool, len(starters)+len(events))

	for _, ref := range starters {
		if ref.IsZero() || present[ref] {
			continue
		}
		present[ref] = true
		order = append(order, ref)
	}

	for _, e := range earlierRounds(events, beforeRound) {
		present[e.Out] = false
		if !present[e.In] {
			present[e.In] = true
			order = append(order, e.In)
		}
	}

	out := make([]player.Ref, 0, len(order))
	for _, ref := range order {
		if present[ref] {
			out = append(out, ref)
		}
	}
	return out
}

// EligibleOutgoing lists who may leave the field in the given round: the
// replayed on-pitch set minus players already picked as outgoing in the
// current draft.
func EligibleOutgoing(starters []player.Ref, events []Event, round int, draftOut []player.Ref) []player.Ref {
	return subtract(OnPitch(starters, events, round), draftOut)
}

// EligibleIncoming lists who may enter in the given round: bench players
// not currently on the field plus earlier-round leavers (re-entry), minus
// players already picked as incoming in the current draft.
func EligibleIncoming(starters, bench []player.Ref, events []Event, round int, draftIn []player.Ref) []player.Ref {
	present := make(map[player.Ref]bool, len(starters)+len(events))
	for _, ref := range starters {
		if !ref.IsZero() {
			present[ref] = true
		}
	}

	order := make([]player.Ref, 0, len(bench)+len(events))
	seen := make(map[player.Ref]struct{}, len(bench)+len(events))
	for _, ref := range bench {
		if ref.IsZero() {
			continue
		}
		if _, dup := seen[ref]; dup {
			continue
		}
		seen[ref] = struct{}{}
		order = append(order, ref)
	}

	for _, e := range earlierRounds(events, round) {
		present[e.Out] = false
		present[e.In] = true
		if _, dup := seen[e.Out]; !dup {
			seen[e.Out] = struct{}{}
			order = append(order, e.Out)
		}
	}

	out := make([]player.Ref, 0, len(order))
	for _, ref := range order {
		if !present[ref] {
			out = append(out, ref)
		}
	}
	return subtract(out, draftIn)
}

func earlierRounds(events []Event, beforeRound int) []Event {
	out := make([]Event, 0, len(events))
	for _, e := range events {
		if e.Extra || e.Round >= beforeRound {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Round != out[j].Round {
			return out[i].Round < out[j].Round
		}
		return out[i].Minute < out[j].Minute
	})
	return out
}

func subtract(refs, exclude []player.Ref) []player.Ref {
	if len(exclude) == 0 {
		return refs
	}
	drop := make(map[player.Ref]struct{}, len(exclude))
	for _, ref := range exclude {
		drop[ref] = struct{}{}
	}
	out := make([]player.Ref, 0, len(refs))
	for _, ref := range refs {
		if _, skip := drop[ref]; skip {
			continue
		}
		out = append(out, ref)
	}
	return out
}
