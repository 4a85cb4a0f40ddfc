package player

import "strings"

// Unify merges the season roster with the guests registered for one match
// into a single selectable pool. The two id spaces never collide because
// membership is keyed by Ref, not by raw id.
//
// When a guest shares a display name with a roster player the roster entry
// wins and the guest is suppressed, so pickers never show two identical
// names for what managers treat as the same person.
func Unify(roster []Player, guests []Player) []Player {
	out := make([]Player, 0, len(roster)+len(guests))
	seen := make(map[Ref]struct{}, len(roster)+len(guests))
	rosterNames := make(map[string]struct{}, len(roster))

	for _, p := range roster {
		if _, dup := seen[p.Ref]; dup {
			continue
		}
		seen[p.Ref] = struct{}{}
		rosterNames[normalizeName(p.Name)] = struct{}{}
		out = append(out, p)
	}

	for _, g := range guests {
		if _, dup := seen[g.Ref]; dup {
			continue
		}
		if _, taken := rosterNames[normalizeName(g.Name)]; taken {
			continue
		}
		seen[g.Ref] = struct{}{}
		out = append(out, g)
	}

	return out
}

// Available is the single eligibility predicate consulted by lineup
// assignment and substitution scheduling. Guests are tracked outside the
// absence table, so the absence list only applies to roster players.
func Available(p Player, absentees map[int64]struct{}) bool {
	if p.Injured {
		return false
	}
	if p.Ref.Origin != OriginRoster {
		return true
	}
	_, absent := absentees[p.Ref.ID]
	return !absent
}

func normalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
