package substitution

import (
	"sort"

	"github.com/matchdayhq/matchday/internal/domain/player"
)

// Accounting is the per-player playing-time result of a finalized match.
type Accounting struct {
	Played map[player.Ref]int
	Bench  map[player.Ref]int
	// Participants lists everyone who touched the field, starters first,
	// then substitutes in entry order.
	Participants []player.Ref
}

// AccountMinutes computes exact minutes played per participant by replaying
// every substitution event (scheduled and extra) in ascending minute order
// over the starting lineup. Starters open an interval at minute zero; an
// outgoing event truncates the player's open interval; an incoming event
// opens a new one, so re-entries accumulate multiple intervals.
func AccountMinutes(starters []player.Ref, events []Event, durationMinutes int) Accounting {
	if durationMinutes < 0 {
		durationMinutes = 0
	}

	type openInterval struct {
		since  int
		active bool
	}

	played := make(map[player.Ref]int, len(starters)+len(events))
	open := make(map[player.Ref]*openInterval, len(starters)+len(events))
	participants := make([]player.Ref, 0, len(starters)+len(events))

	track := func(ref player.Ref) {
		if _, known := played[ref]; !known {
			played[ref] = 0
			participants = append(participants, ref)
		}
	}

	for _, ref := range starters {
		if ref.IsZero() {
			continue
		}
		track(ref)
		open[ref] = &openInterval{since: 0, active: true}
	}

	replay := append([]Event(nil), events...)
	sort.SliceStable(replay, func(i, j int) bool {
		return replay[i].Minute < replay[j].Minute
	})

	for _, e := range replay {
		minute := clampMinute(e.Minute, durationMinutes)

		if iv := open[e.Out]; iv != nil && iv.active {
			played[e.Out] += minute - iv.since
			iv.active = false
		}

		track(e.In)
		if iv := open[e.In]; iv == nil || !iv.active {
			open[e.In] = &openInterval{since: minute, active: true}
		}
	}

	for ref, iv := range open {
		if iv.active {
			played[ref] += durationMinutes - iv.since
			iv.active = false
		}
	}

	bench := make(map[player.Ref]int, len(played))
	for ref, minutes := range played {
		rest := durationMinutes - minutes
		if rest < 0 {
			rest = 0
		}
		bench[ref] = rest
	}

	return Accounting{Played: played, Bench: bench, Participants: participants}
}

// ParticipantSet returns the refs of everyone who started or was ever
// subbed in, the candidate pool for peer voting.
func ParticipantSet(starters []player.Ref, events []Event) map[player.Ref]struct{} {
	out := make(map[player.Ref]struct{}, len(starters)+len(events))
	for _, ref := range starters {
		if !ref.IsZero() {
			out[ref] = struct{}{}
		}
	}
	for _, e := range events {
		if !e.In.IsZero() {
			out[e.In] = struct{}{}
		}
	}
	return out
}

func clampMinute(minute, durationMinutes int) int {
	if minute < 0 {
		return 0
	}
	if minute > durationMinutes {
		return durationMinutes
	}
	return minute
}
