package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/matchdayhq/matchday/internal/domain/ledger"
	"github.com/matchdayhq/matchday/internal/domain/match"
	"github.com/matchdayhq/matchday/internal/domain/player"
	"github.com/matchdayhq/matchday/internal/domain/vote"
	ledgermock "github.com/matchdayhq/matchday/internal/mocks/domain/ledger"
	matchmock "github.com/matchdayhq/matchday/internal/mocks/domain/match"
	"github.com/matchdayhq/matchday/internal/infrastructure/repository/memory"
	"github.com/matchdayhq/matchday/internal/platform/logging"
)

func settledMatch(finalizedAt time.Time) match.Match {
	return match.Match{
		ID:              "m-001",
		TeamID:          testTeamID,
		Opponent:        "Harbor United",
		KickoffAt:       finalizedAt.Add(-2 * time.Hour),
		FormationKey:    "8-331",
		DurationMinutes: 60,
		Status:          match.StatusFinalized,
		FinalizedAt:     &finalizedAt,
	}
}

func TestVotingService_Payout_LedgerFailureAfterClaimUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	finalizedAt := time.Date(2026, 9, 5, 12, 0, 0, 0, time.UTC)

	matchRepo := matchmock.NewRepository(t)
	ledgerRepo := ledgermock.NewRepository(t)
	voteRepo := memory.NewVoteRepository()

	ballot := vote.Ballot{MatchID: "m-001", VoterKey: "user-1", Candidate: player.RosterRef(1)}
	if err := voteRepo.Create(ctx, ballot); err != nil {
		t.Fatalf("seed ballot: %v", err)
	}

	service := NewVotingService(matchRepo, memory.NewLineupRepository(), memory.NewSubstitutionRepository(),
		voteRepo, ledgerRepo, VotingRules{WindowDays: 4, Rewards: []int64{5, 3, 1}}, logging.NewNop())
	service.now = func() time.Time { return finalizedAt.Add(5 * 24 * time.Hour) }

	matchRepo.
		On("GetByID", mock.Anything, "m-001").
		Return(settledMatch(finalizedAt), true, nil).
		Once()
	matchRepo.
		On("ClaimPayout", mock.Anything, "m-001").
		Return(true, nil).
		Once()
	ledgerRepo.
		On("Append", mock.Anything, mock.MatchedBy(func(entries []ledger.Entry) bool {
			return len(entries) == 1 && entries[0].Reason == ledger.ReasonVoteReward
		})).
		Return(errors.New("connection reset")).
		Once()

	if _, err := service.Payout(ctx, "m-001"); err == nil {
		t.Fatalf("expected the append failure to surface")
	}
}

func TestVotingService_Payout_LosesClaimRaceUsingMockery(t *testing.T) {
	t.Parallel()

	finalizedAt := time.Date(2026, 9, 5, 12, 0, 0, 0, time.UTC)

	matchRepo := matchmock.NewRepository(t)
	ledgerRepo := ledgermock.NewRepository(t)

	service := NewVotingService(matchRepo, memory.NewLineupRepository(), memory.NewSubstitutionRepository(),
		memory.NewVoteRepository(), ledgerRepo, VotingRules{WindowDays: 4, Rewards: []int64{5, 3, 1}}, logging.NewNop())
	service.now = func() time.Time { return finalizedAt.Add(5 * 24 * time.Hour) }

	matchRepo.
		On("GetByID", mock.Anything, "m-001").
		Return(settledMatch(finalizedAt), true, nil).
		Once()
	matchRepo.
		On("ClaimPayout", mock.Anything, "m-001").
		Return(false, nil).
		Once()

	result, err := service.Payout(context.Background(), "m-001")
	if err != nil {
		t.Fatalf("payout: %v", err)
	}
	if result.Claimed {
		t.Fatalf("losing the claim race must report Claimed=false")
	}
}
