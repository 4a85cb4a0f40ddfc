package match

import (
	"fmt"
	"time"
)

// Status is the match lifecycle state. A match is editable while draft and
// flips to finalized exactly once; only the score stays mutable afterwards.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusFinalized Status = "finalized"
)

// Match is one fixture of an amateur team.
type Match struct {
	ID           string
	TeamID       string
	Opponent     string
	KickoffAt    time.Time
	Home         bool
	FormationKey string
	// SchemeMinutes lists the pre-agreed substitution trigger minutes in
	// order. An empty list means the free-form scheme where every round
	// carries its own minute.
	SchemeMinutes   []int
	DurationMinutes int
	Status          Status
	GoalsFor        int
	GoalsAgainst    int
	PayoutDone      bool
	FinalizedAt     *time.Time
}

func (m Match) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("match id is required")
	}
	if m.TeamID == "" {
		return fmt.Errorf("match team id is required")
	}
	if m.Opponent == "" {
		return fmt.Errorf("match opponent is required")
	}
	if m.FormationKey == "" {
		return fmt.Errorf("match formation key is required")
	}
	if m.DurationMinutes <= 0 {
		return fmt.Errorf("match duration must be greater than zero")
	}
	for i, minute := range m.SchemeMinutes {
		if minute <= 0 || minute >= m.DurationMinutes {
			return fmt.Errorf("scheme minute %d out of range: %d", i, minute)
		}
		if i > 0 && minute <= m.SchemeMinutes[i-1] {
			return fmt.Errorf("scheme minutes must be strictly increasing")
		}
	}
	return nil
}

// FreeForm reports whether substitution rounds pick their own minutes.
func (m Match) FreeForm() bool {
	return len(m.SchemeMinutes) == 0
}

// ScheduledRounds is the number of rounds under the fixed scheme, zero for
// free-form.
func (m Match) ScheduledRounds() int {
	return len(m.SchemeMinutes)
}

func (m Match) Finalized() bool {
	return m.Status == StatusFinalized
}

// VotingOpen reports whether the peer-voting window is open at the given
// instant. The window starts at finalization and lasts windowDays.
func (m Match) VotingOpen(at time.Time, windowDays int) bool {
	if !m.Finalized() || m.FinalizedAt == nil {
		return false
	}
	deadline := m.FinalizedAt.Add(time.Duration(windowDays) * 24 * time.Hour)
	return !at.Before(*m.FinalizedAt) && at.Before(deadline)
}

// VotingClosed reports whether the window has passed, which is the payout
// precondition.
func (m Match) VotingClosed(at time.Time, windowDays int) bool {
	if !m.Finalized() || m.FinalizedAt == nil {
		return false
	}
	deadline := m.FinalizedAt.Add(time.Duration(windowDays) * 24 * time.Hour)
	return !at.Before(deadline)
}
