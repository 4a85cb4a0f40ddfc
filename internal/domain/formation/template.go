package formation

import (
	"fmt"

	"github.com/matchdayhq/matchday/internal/domain/player"
)

// Template fixes the slot count and the geometric role of every slot for
// one match format. Slot 0 is always the goalkeeper.
type Template struct {
	Key   string
	Label string
	Roles []player.Position
}

func (t Template) Size() int {
	return len(t.Roles)
}

// RoleAt returns the positional role of a slot index.
func (t Template) RoleAt(slot int) (player.Position, bool) {
	if slot < 0 || slot >= len(t.Roles) {
		return "", false
	}
	return t.Roles[slot], true
}

const DefaultKey = "11-433"

var templates = map[string]Template{
	"11-433": {
		Key:   "11-433",
		Label: "4-3-3 (11-a-side)",
		Roles: roles(1, 4, 3, 3),
	},
	"11-442": {
		Key:   "11-442",
		Label: "4-4-2 (11-a-side)",
		Roles: roles(1, 4, 4, 2),
	},
	"11-352": {
		Key:   "11-352",
		Label: "3-5-2 (11-a-side)",
		Roles: roles(1, 3, 5, 2),
	},
	"8-331": {
		Key:   "8-331",
		Label: "3-3-1 (8-a-side)",
		Roles: roles(1, 3, 3, 1),
	},
	"7-231": {
		Key:   "7-231",
		Label: "2-3-1 (7-a-side)",
		Roles: roles(1, 2, 3, 1),
	},
}

func ByKey(key string) (Template, error) {
	t, ok := templates[key]
	if !ok {
		return Template{}, fmt.Errorf("unknown formation template: %s", key)
	}
	return t, nil
}

func Default() Template {
	return templates[DefaultKey]
}

func Keys() []string {
	out := make([]string, 0, len(templates))
	for key := range templates {
		out = append(out, key)
	}
	return out
}

func roles(gk, def, mid, fwd int) []player.Position {
	out := make([]player.Position, 0, gk+def+mid+fwd)
	for i := 0; i < gk; i++ {
		out = append(out, player.PositionGoalkeeper)
	}
	for i := 0; i < def; i++ {
		out = append(out, player.PositionDefender)
	}
	for i := 0; i < mid; i++ {
		out = append(out, player.PositionMidfielder)
	}
	for i := 0; i < fwd; i++ {
		out = append(out, player.PositionForward)
	}
	return out
}
