package ledger

import (
	"fmt"
	"time"

	"github.com/matchdayhq/matchday/internal/domain/player"
)

// Reason labels why a ledger entry exists.
type Reason string

const (
	ReasonInitialBalance Reason = "initial_balance"
	ReasonVoteReward     Reason = "vote_reward"
	ReasonAdjustment     Reason = "adjustment"
)

var AllReasons = map[Reason]struct{}{
	ReasonInitialBalance: {},
	ReasonVoteReward:     {},
	ReasonAdjustment:     {},
}

// Entry is one append-only credit movement for a player on a team. A
// player's balance is the running sum of their entries; entries are never
// mutated or deleted.
type Entry struct {
	ID        int64
	TeamID    string
	Player    player.Ref
	Delta     int64
	Reason    Reason
	MatchID   string
	CreatedAt time.Time
}

func (e Entry) Validate() error {
	if e.TeamID == "" {
		return fmt.Errorf("ledger entry team id is required")
	}
	if err := e.Player.Validate(); err != nil {
		return fmt.Errorf("ledger entry player: %w", err)
	}
	if _, ok := AllReasons[e.Reason]; !ok {
		return fmt.Errorf("invalid ledger reason: %s", e.Reason)
	}
	if e.Reason == ReasonVoteReward && e.MatchID == "" {
		return fmt.Errorf("vote reward entry requires a match id")
	}
	return nil
}
