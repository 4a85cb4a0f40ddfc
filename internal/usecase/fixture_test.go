package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/matchdayhq/matchday/internal/domain/match"
	"github.com/matchdayhq/matchday/internal/domain/player"
	"github.com/matchdayhq/matchday/internal/infrastructure/repository/memory"
	idgen "github.com/matchdayhq/matchday/internal/platform/id"
	"github.com/matchdayhq/matchday/internal/platform/logging"
)

const testTeamID = memory.TeamIDOldBoys

// testEnv wires every service over the in-memory repositories, the same
// composition the API uses with the memory storage driver.
type testEnv struct {
	matchRepo      *memory.MatchRepository
	rosterRepo     *memory.RosterRepository
	guestRepo      *memory.GuestRepository
	lineupRepo     *memory.LineupRepository
	subRepo        *memory.SubstitutionRepository
	attendanceRepo *memory.AttendanceRepository
	voteRepo       *memory.VoteRepository
	ledgerRepo     *memory.LedgerRepository

	roster    *RosterService
	matches   *MatchService
	lineups   *LineupService
	subs      *SubstitutionService
	voting    *VotingService
	dashboard *DashboardService
}

func newTestEnv() *testEnv {
	env := &testEnv{
		matchRepo:      memory.NewMatchRepository(nil),
		rosterRepo:     memory.NewRosterRepository(memory.SeedMembers()),
		guestRepo:      memory.NewGuestRepository(),
		lineupRepo:     memory.NewLineupRepository(),
		subRepo:        memory.NewSubstitutionRepository(),
		attendanceRepo: memory.NewAttendanceRepository(),
		voteRepo:       memory.NewVoteRepository(),
		ledgerRepo:     memory.NewLedgerRepository(),
	}

	env.roster = NewRosterService(env.rosterRepo, env.guestRepo, env.matchRepo)
	env.matches = NewMatchService(env.matchRepo, env.rosterRepo, env.lineupRepo, env.subRepo, env.roster, idgen.NewRandomGenerator())
	env.lineups = NewLineupService(env.matchRepo, env.lineupRepo, env.attendanceRepo, env.roster)
	env.subs = NewSubstitutionService(env.matchRepo, env.lineupRepo, env.subRepo, env.attendanceRepo, env.roster)
	env.voting = NewVotingService(env.matchRepo, env.lineupRepo, env.subRepo, env.voteRepo, env.ledgerRepo,
		VotingRules{WindowDays: 4, Rewards: []int64{5, 3, 1}, InitialCredits: 100}, logging.NewNop())
	env.dashboard = NewDashboardService(env.matchRepo, env.rosterRepo, env.ledgerRepo)

	return env
}

// setNow pins the clock of every time-sensitive service.
func (e *testEnv) setNow(at time.Time) {
	clock := func() time.Time { return at }
	e.matches.now = clock
	e.voting.now = clock
	e.dashboard.now = clock
}

func (e *testEnv) createMatch(t *testing.T, formationKey string, scheme []int, duration int) match.Match {
	t.Helper()

	m, err := e.matches.Create(context.Background(), CreateMatchInput{
		TeamID:          testTeamID,
		Opponent:        "Harbor United",
		KickoffAt:       time.Date(2026, 9, 5, 10, 30, 0, 0, time.UTC),
		FormationKey:    formationKey,
		SchemeMinutes:   scheme,
		DurationMinutes: duration,
	})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}
	return m
}

// fillLineup assigns roster members to slots 0..n-1 in order.
func (e *testEnv) fillLineup(t *testing.T, matchID string, memberIDs ...int64) {
	t.Helper()

	for slot, id := range memberIDs {
		sheet, err := e.lineups.Assign(context.Background(), matchID, slot, player.RosterRef(id))
		if err != nil {
			t.Fatalf("assign slot %d: %v", slot, err)
		}
		if sheet.At(slot) != player.RosterRef(id) {
			t.Fatalf("slot %d not filled with member %d", slot, id)
		}
	}
}
