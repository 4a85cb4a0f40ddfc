package vote

import (
	"fmt"
	"time"

	"github.com/matchdayhq/matchday/internal/domain/player"
)

// Ballot is one immutable peer vote. The voter key is either an
// authenticated account id or a roster member key; either way a voter gets
// one ballot per match.
type Ballot struct {
	MatchID   string
	VoterKey  string
	Candidate player.Ref
	CastAt    time.Time
}

func (b Ballot) Validate() error {
	if b.MatchID == "" {
		return fmt.Errorf("ballot match id is required")
	}
	if b.VoterKey == "" {
		return fmt.Errorf("ballot voter key is required")
	}
	if err := b.Candidate.Validate(); err != nil {
		return fmt.Errorf("ballot candidate: %w", err)
	}
	return nil
}
