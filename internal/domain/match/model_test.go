package match

import (
	"testing"
	"time"
)

func validMatch() Match {
	return Match{
		ID:              "m-1",
		TeamID:          "team-1",
		Opponent:        "FC Altona",
		KickoffAt:       time.Date(2026, 5, 9, 14, 0, 0, 0, time.UTC),
		FormationKey:    "4-4-2",
		SchemeMinutes:   []int{30, 60},
		DurationMinutes: 90,
		Status:          StatusDraft,
	}
}

func TestMatchValidate(t *testing.T) {
	if err := validMatch().Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Match)
	}{
		{"missing id", func(m *Match) { m.ID = "" }},
		{"missing team", func(m *Match) { m.TeamID = "" }},
		{"missing opponent", func(m *Match) { m.Opponent = "" }},
		{"missing formation", func(m *Match) { m.FormationKey = "" }},
		{"zero duration", func(m *Match) { m.DurationMinutes = 0 }},
		{"scheme minute zero", func(m *Match) { m.SchemeMinutes = []int{0, 30} }},
		{"scheme minute at full time", func(m *Match) { m.SchemeMinutes = []int{30, 90} }},
		{"scheme minutes not increasing", func(m *Match) { m.SchemeMinutes = []int{60, 30} }},
		{"scheme minutes repeated", func(m *Match) { m.SchemeMinutes = []int{30, 30} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validMatch()
			tt.mutate(&m)
			if err := m.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestMatchFreeForm(t *testing.T) {
	m := validMatch()
	if m.FreeForm() {
		t.Fatalf("fixed scheme is not free-form")
	}
	if m.ScheduledRounds() != 2 {
		t.Fatalf("scheduled rounds: got %d want 2", m.ScheduledRounds())
	}

	m.SchemeMinutes = nil
	if !m.FreeForm() {
		t.Fatalf("empty scheme means free-form")
	}
	if m.ScheduledRounds() != 0 {
		t.Fatalf("free-form has no scheduled rounds")
	}
}

func TestVotingWindow(t *testing.T) {
	finalized := time.Date(2026, 5, 9, 16, 0, 0, 0, time.UTC)
	deadline := finalized.Add(4 * 24 * time.Hour)

	m := validMatch()
	m.Status = StatusFinalized
	m.FinalizedAt = &finalized

	if !m.VotingOpen(finalized, 4) {
		t.Fatalf("window opens at finalization")
	}
	if !m.VotingOpen(deadline.Add(-time.Second), 4) {
		t.Fatalf("window stays open until the deadline")
	}
	if m.VotingOpen(deadline, 4) {
		t.Fatalf("window is closed exactly at the deadline")
	}
	if m.VotingClosed(deadline.Add(-time.Second), 4) {
		t.Fatalf("closed must be false while the window is open")
	}
	if !m.VotingClosed(deadline, 4) {
		t.Fatalf("closed must be true from the deadline on")
	}
}

func TestVotingWindow_DraftMatch(t *testing.T) {
	m := validMatch()
	at := time.Now()
	if m.VotingOpen(at, 4) {
		t.Fatalf("a draft match never opens voting")
	}
	if m.VotingClosed(at, 4) {
		t.Fatalf("a draft match never reports a closed window")
	}
}
