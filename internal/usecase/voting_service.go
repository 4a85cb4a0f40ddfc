package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/matchdayhq/matchday/internal/domain/ledger"
	"github.com/matchdayhq/matchday/internal/domain/lineup"
	"github.com/matchdayhq/matchday/internal/domain/match"
	"github.com/matchdayhq/matchday/internal/domain/player"
	"github.com/matchdayhq/matchday/internal/domain/substitution"
	"github.com/matchdayhq/matchday/internal/domain/vote"
	"github.com/matchdayhq/matchday/internal/platform/logging"
)

const (
	defaultVotingWindowDays = 4
	defaultSweepWorkers     = 4
)

// VotingRules parameterizes the peer-voting reward scheme.
type VotingRules struct {
	WindowDays     int
	Rewards        []int64
	InitialCredits int64
}

func DefaultVotingRules() VotingRules {
	return VotingRules{
		WindowDays: defaultVotingWindowDays,
		Rewards:    []int64{5, 3, 1},
	}
}

type PayoutResult struct {
	MatchID string
	Claimed bool
	Awards  []vote.Award
}

type SweepResult struct {
	Due     int
	Paid    int
	Skipped int
	Failed  int
}

// VotingService aggregates peer votes into a ranked podium and converts
// the result into append-only credit ledger entries. Payout runs lazily
// and claims the match's payout flag first, so racing runs settle on a
// single winner.
type VotingService struct {
	matchRepo  match.Repository
	lineupRepo lineup.Repository
	subRepo    substitution.Repository
	voteRepo   vote.Repository
	ledgerRepo ledger.Repository
	rules      VotingRules
	logger     *logging.Logger
	now        func() time.Time
}

func NewVotingService(
	matchRepo match.Repository,
	lineupRepo lineup.Repository,
	subRepo substitution.Repository,
	voteRepo vote.Repository,
	ledgerRepo ledger.Repository,
	rules VotingRules,
	logger *logging.Logger,
) *VotingService {
	if rules.WindowDays <= 0 {
		rules.WindowDays = defaultVotingWindowDays
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &VotingService{
		matchRepo:  matchRepo,
		lineupRepo: lineupRepo,
		subRepo:    subRepo,
		voteRepo:   voteRepo,
		ledgerRepo: ledgerRepo,
		rules:      rules,
		logger:     logger,
		now:        time.Now,
	}
}

// SubmitVote records one ballot. Rejected without a record: closed window,
// duplicate voter, self-vote, or a candidate who never touched the field.
func (s *VotingService) SubmitVote(ctx context.Context, matchID, voterKey string, candidate player.Ref) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.VotingService.SubmitVote")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	voterKey = strings.TrimSpace(voterKey)
	if matchID == "" {
		return fmt.Errorf("%w: match_id is required", ErrInvalidInput)
	}
	if voterKey == "" {
		return fmt.Errorf("%w: voter key is required", ErrInvalidInput)
	}
	if err := candidate.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if voterKey == candidate.Key() {
		return fmt.Errorf("%w: voting for yourself is not allowed", ErrInvalidInput)
	}

	m, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	if !m.VotingOpen(s.now(), s.rules.WindowDays) {
		return fmt.Errorf("%w: match=%s", ErrVotingClosed, matchID)
	}

	voted, err := s.voteRepo.HasVoted(ctx, matchID, voterKey)
	if err != nil {
		return fmt.Errorf("check existing vote: %w", err)
	}
	if voted {
		return fmt.Errorf("%w: match=%s voter=%s", ErrAlreadyVoted, matchID, voterKey)
	}

	participants, err := s.participants(ctx, m)
	if err != nil {
		return err
	}
	if _, played := participants[candidate]; !played {
		return fmt.Errorf("%w: candidate %s did not play in this match", ErrInvalidInput, candidate.Key())
	}

	ballot := vote.Ballot{
		MatchID:   matchID,
		VoterKey:  voterKey,
		Candidate: candidate,
		CastAt:    s.now().UTC(),
	}
	if err := s.voteRepo.Create(ctx, ballot); err != nil {
		return fmt.Errorf("create ballot: %w", err)
	}

	return nil
}

// Podium returns the current ranked tally for a finalized match.
func (s *VotingService) Podium(ctx context.Context, matchID string) ([]vote.PodiumEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.VotingService.Podium")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return nil, fmt.Errorf("%w: match_id is required", ErrInvalidInput)
	}

	m, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	if !m.Finalized() {
		return nil, fmt.Errorf("%w: match has no podium before finalize", ErrInvalidInput)
	}

	ballots, err := s.voteRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("list ballots: %w", err)
	}

	return vote.ComputePodium(ballots), nil
}

// Payout settles one finalized match past its voting window. The payout
// flag is claimed first and unconditionally, zero-vote matches included,
// so the step never reruns for the same match; losing a race is reported
// as Claimed=false, not an error.
func (s *VotingService) Payout(ctx context.Context, matchID string) (PayoutResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.VotingService.Payout")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return PayoutResult{}, fmt.Errorf("%w: match_id is required", ErrInvalidInput)
	}

	m, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return PayoutResult{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return PayoutResult{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	if !m.Finalized() {
		return PayoutResult{}, fmt.Errorf("%w: match is not finalized", ErrInvalidInput)
	}
	if !m.VotingClosed(s.now(), s.rules.WindowDays) {
		return PayoutResult{}, fmt.Errorf("%w: voting window is still open", ErrInvalidInput)
	}
	if m.PayoutDone {
		return PayoutResult{MatchID: matchID, Claimed: false}, nil
	}

	claimed, err := s.matchRepo.ClaimPayout(ctx, matchID)
	if err != nil {
		return PayoutResult{}, fmt.Errorf("claim payout flag: %w", err)
	}
	if !claimed {
		return PayoutResult{MatchID: matchID, Claimed: false}, nil
	}

	ballots, err := s.voteRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return PayoutResult{}, fmt.Errorf("list ballots: %w", err)
	}

	awards := vote.Payouts(vote.ComputePodium(ballots), s.rules.Rewards)
	if len(awards) == 0 {
		return PayoutResult{MatchID: matchID, Claimed: true}, nil
	}

	entries := make([]ledger.Entry, 0, len(awards))
	for _, award := range awards {
		entries = append(entries, ledger.Entry{
			TeamID:    m.TeamID,
			Player:    award.Candidate,
			Delta:     award.Amount,
			Reason:    ledger.ReasonVoteReward,
			MatchID:   matchID,
			CreatedAt: s.now().UTC(),
		})
	}
	if err := s.ledgerRepo.Append(ctx, entries); err != nil {
		// The flag is already set; flag-first ordering trades a lost
		// payout on this failure path for never paying twice.
		s.logger.ErrorContext(ctx, "payout ledger append failed after claim",
			"match_id", matchID,
			"error", err,
		)
		return PayoutResult{}, fmt.Errorf("append payout entries: %w", err)
	}

	return PayoutResult{MatchID: matchID, Claimed: true, Awards: awards}, nil
}

// SweepPayouts settles every due match of a team through a bounded worker
// pool. Individual failures are counted, not fatal.
func (s *VotingService) SweepPayouts(ctx context.Context, teamID string, workers int) (SweepResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.VotingService.SweepPayouts")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return SweepResult{}, fmt.Errorf("%w: team_id is required", ErrInvalidInput)
	}
	if workers <= 0 {
		workers = defaultSweepWorkers
	}

	due, err := s.matchRepo.ListPayoutDue(ctx, teamID, s.now(), s.rules.WindowDays)
	if err != nil {
		return SweepResult{}, fmt.Errorf("list payout-due matches: %w", err)
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return SweepResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		result = SweepResult{Due: len(due)}
	)
	for _, m := range due {
		m := m
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()

			payout, payErr := s.Payout(ctx, m.ID)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case payErr != nil:
				result.Failed++
				s.logger.WarnContext(ctx, "payout sweep item failed", "match_id", m.ID, "error", payErr)
			case payout.Claimed:
				result.Paid++
			default:
				result.Skipped++
			}
		}); err != nil {
			wg.Done()
			mu.Lock()
			result.Failed++
			mu.Unlock()
		}
	}
	wg.Wait()

	return result, nil
}

// Balance returns the running credit sum for a player, seeding the
// initial-balance entry on first access.
func (s *VotingService) Balance(ctx context.Context, teamID string, ref player.Ref) (int64, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.VotingService.Balance")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return 0, fmt.Errorf("%w: team_id is required", ErrInvalidInput)
	}
	if err := ref.Validate(); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	sum, exists, err := s.ledgerRepo.SumByPlayer(ctx, teamID, ref)
	if err != nil {
		return 0, fmt.Errorf("sum ledger entries: %w", err)
	}
	if exists {
		return sum, nil
	}

	seed := ledger.Entry{
		TeamID:    teamID,
		Player:    ref,
		Delta:     s.rules.InitialCredits,
		Reason:    ledger.ReasonInitialBalance,
		CreatedAt: s.now().UTC(),
	}
	if err := s.ledgerRepo.Append(ctx, []ledger.Entry{seed}); err != nil {
		return 0, fmt.Errorf("seed initial balance: %w", err)
	}

	return s.rules.InitialCredits, nil
}

// Statement lists a player's ledger entries, newest last.
func (s *VotingService) Statement(ctx context.Context, teamID string, ref player.Ref) ([]ledger.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.VotingService.Statement")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return nil, fmt.Errorf("%w: team_id is required", ErrInvalidInput)
	}
	if err := ref.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	entries, err := s.ledgerRepo.ListByPlayer(ctx, teamID, ref)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}

	return entries, nil
}

func (s *VotingService) participants(ctx context.Context, m match.Match) (map[player.Ref]struct{}, error) {
	assignments, err := s.lineupRepo.ListByMatch(ctx, m.ID)
	if err != nil {
		return nil, fmt.Errorf("list lineup: %w", err)
	}
	starters := make([]player.Ref, 0, len(assignments))
	for _, a := range assignments {
		starters = append(starters, a.Ref)
	}

	events, err := s.subRepo.ListByMatch(ctx, m.ID)
	if err != nil {
		return nil, fmt.Errorf("list substitution events: %w", err)
	}

	return substitution.ParticipantSet(starters, events), nil
}
