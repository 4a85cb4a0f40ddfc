package roster

import (
	"fmt"

	"github.com/matchdayhq/matchday/internal/domain/player"
)

// Member is a season-persistent team player record.
type Member struct {
	ID       int64
	TeamID   string
	Name     string
	Position player.Position
	Injured  bool
	Stats    player.Stats
}

func (m Member) Validate() error {
	if m.ID <= 0 {
		return fmt.Errorf("member id must be greater than zero")
	}
	if m.TeamID == "" {
		return fmt.Errorf("member team id is required")
	}
	if m.Name == "" {
		return fmt.Errorf("member name is required")
	}
	if _, ok := player.AllPositions[m.Position]; !ok {
		return fmt.Errorf("invalid member position: %s", m.Position)
	}
	return nil
}

// AsPlayer projects the member into the unified match-time player view.
func (m Member) AsPlayer() player.Player {
	return player.Player{
		Ref:      player.RosterRef(m.ID),
		Name:     m.Name,
		Position: m.Position,
		Injured:  m.Injured,
		Stats:    m.Stats,
	}
}

// StatDelta is one member's stat increment produced by match finalization.
type StatDelta struct {
	MemberID     int64
	Minutes      int
	BenchMinutes int
	Appearances  int
}
