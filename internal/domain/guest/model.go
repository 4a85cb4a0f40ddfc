package guest

import (
	"fmt"

	"github.com/matchdayhq/matchday/internal/domain/player"
)

// Guest is a one-off player record scoped to a single match. Guest ids live
// in their own sequence and may numerically collide with roster ids.
type Guest struct {
	ID       int64
	MatchID  string
	Name     string
	Position player.Position
	Injured  bool
}

func (g Guest) Validate() error {
	if g.ID <= 0 {
		return fmt.Errorf("guest id must be greater than zero")
	}
	if g.MatchID == "" {
		return fmt.Errorf("guest match id is required")
	}
	if g.Name == "" {
		return fmt.Errorf("guest name is required")
	}
	if _, ok := player.AllPositions[g.Position]; !ok {
		return fmt.Errorf("invalid guest position: %s", g.Position)
	}
	return nil
}

func (g Guest) AsPlayer() player.Player {
	return player.Player{
		Ref:      player.GuestRef(g.ID),
		Name:     g.Name,
		Position: g.Position,
		Injured:  g.Injured,
	}
}
