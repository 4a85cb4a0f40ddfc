package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/matchdayhq/matchday/internal/domain/formation"
	"github.com/matchdayhq/matchday/internal/domain/lineup"
	"github.com/matchdayhq/matchday/internal/domain/match"
	"github.com/matchdayhq/matchday/internal/domain/player"
	"github.com/matchdayhq/matchday/internal/domain/roster"
	"github.com/matchdayhq/matchday/internal/domain/substitution"
	idgen "github.com/matchdayhq/matchday/internal/platform/id"
)

const defaultMatchDurationMinutes = 90

type CreateMatchInput struct {
	TeamID          string
	Opponent        string
	KickoffAt       time.Time
	Home            bool
	FormationKey    string
	SchemeMinutes   []int
	DurationMinutes int
}

// FinalizeLine is one participant's playing-time result.
type FinalizeLine struct {
	Ref     player.Ref
	Name    string
	Starter bool
	Played  int
	Bench   int
}

type FinalizeResult struct {
	MatchID         string
	DurationMinutes int
	StatsApplied    bool
	Lines           []FinalizeLine
}

// MatchService owns the match lifecycle: creation, score keeping, and the
// one-shot finalization that turns the substitution history into per-player
// minutes.
type MatchService struct {
	matchRepo  match.Repository
	rosterRepo roster.Repository
	lineupRepo lineup.Repository
	subRepo    substitution.Repository
	resolver   playerResolver
	ids        idgen.Generator
	now        func() time.Time
}

func NewMatchService(
	matchRepo match.Repository,
	rosterRepo roster.Repository,
	lineupRepo lineup.Repository,
	subRepo substitution.Repository,
	resolver playerResolver,
	ids idgen.Generator,
) *MatchService {
	return &MatchService{
		matchRepo:  matchRepo,
		rosterRepo: rosterRepo,
		lineupRepo: lineupRepo,
		subRepo:    subRepo,
		resolver:   resolver,
		ids:        ids,
		now:        time.Now,
	}
}

func (s *MatchService) Create(ctx context.Context, input CreateMatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Create")
	defer span.End()

	input.TeamID = strings.TrimSpace(input.TeamID)
	input.Opponent = strings.TrimSpace(input.Opponent)
	input.FormationKey = strings.TrimSpace(input.FormationKey)

	if input.TeamID == "" {
		return match.Match{}, fmt.Errorf("%w: team_id is required", ErrInvalidInput)
	}
	if input.Opponent == "" {
		return match.Match{}, fmt.Errorf("%w: opponent is required", ErrInvalidInput)
	}
	if input.FormationKey == "" {
		input.FormationKey = formation.DefaultKey
	}
	if _, err := formation.ByKey(input.FormationKey); err != nil {
		return match.Match{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if input.DurationMinutes == 0 {
		input.DurationMinutes = defaultMatchDurationMinutes
	}

	matchID, err := s.ids.NewID()
	if err != nil {
		return match.Match{}, fmt.Errorf("generate match id: %w", err)
	}

	m := match.Match{
		ID:              matchID,
		TeamID:          input.TeamID,
		Opponent:        input.Opponent,
		KickoffAt:       input.KickoffAt.UTC(),
		Home:            input.Home,
		FormationKey:    input.FormationKey,
		SchemeMinutes:   append([]int(nil), input.SchemeMinutes...),
		DurationMinutes: input.DurationMinutes,
		Status:          match.StatusDraft,
	}
	if err := m.Validate(); err != nil {
		return match.Match{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.matchRepo.Create(ctx, m); err != nil {
		return match.Match{}, fmt.Errorf("create match: %w", err)
	}

	return m, nil
}

func (s *MatchService) Get(ctx context.Context, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Get")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match_id is required", ErrInvalidInput)
	}

	m, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	return m, nil
}

func (s *MatchService) ListByTeam(ctx context.Context, teamID string) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListByTeam")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return nil, fmt.Errorf("%w: team_id is required", ErrInvalidInput)
	}

	matches, err := s.matchRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	return matches, nil
}

// SetScore records or corrects the result. Score correction stays allowed
// after finalization; it is the only post-finalize mutation.
func (s *MatchService) SetScore(ctx context.Context, matchID string, goalsFor, goalsAgainst int) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.SetScore")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match_id is required", ErrInvalidInput)
	}
	if goalsFor < 0 || goalsAgainst < 0 {
		return match.Match{}, fmt.Errorf("%w: score cannot be negative", ErrInvalidInput)
	}

	m, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	if err := s.matchRepo.SetScore(ctx, matchID, goalsFor, goalsAgainst); err != nil {
		return match.Match{}, fmt.Errorf("set score: %w", err)
	}

	m.GoalsFor = goalsFor
	m.GoalsAgainst = goalsAgainst
	return m, nil
}

// Finalize replays the full substitution history into per-player minutes,
// optionally commits the stat deltas to the roster, and flips the match to
// finalized. Stat persistence and the status flip form one logical
// transaction: a failed stat write aborts before the flip so the whole
// finalize can be retried.
func (s *MatchService) Finalize(ctx context.Context, matchID string, applyStats bool) (FinalizeResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Finalize")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return FinalizeResult{}, fmt.Errorf("%w: match_id is required", ErrInvalidInput)
	}

	m, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return FinalizeResult{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return FinalizeResult{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	if m.Finalized() {
		return FinalizeResult{}, fmt.Errorf("%w: match=%s", ErrMatchFinalized, matchID)
	}

	tmpl, err := formation.ByKey(m.FormationKey)
	if err != nil {
		return FinalizeResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	assignments, err := s.lineupRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return FinalizeResult{}, fmt.Errorf("list lineup: %w", err)
	}
	sheet := lineup.SheetFromAssignments(tmpl.Size(), assignments)
	starters := sheet.Starters()
	if len(starters) == 0 {
		return FinalizeResult{}, fmt.Errorf("%w: cannot finalize a match without starters", ErrInvalidInput)
	}

	events, err := s.subRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return FinalizeResult{}, fmt.Errorf("list substitution events: %w", err)
	}

	acct := substitution.AccountMinutes(starters, events, m.DurationMinutes)

	pool, err := s.resolver.ResolvePlayers(ctx, matchID)
	if err != nil {
		return FinalizeResult{}, err
	}
	names := make(map[player.Ref]string, len(pool))
	for _, p := range pool {
		names[p.Ref] = p.Name
	}

	starterSet := make(map[player.Ref]struct{}, len(starters))
	for _, ref := range starters {
		starterSet[ref] = struct{}{}
	}

	result := FinalizeResult{
		MatchID:         matchID,
		DurationMinutes: m.DurationMinutes,
		StatsApplied:    applyStats,
		Lines:           make([]FinalizeLine, 0, len(acct.Participants)),
	}
	deltas := make([]roster.StatDelta, 0, len(acct.Participants))
	for _, ref := range acct.Participants {
		_, started := starterSet[ref]
		line := FinalizeLine{
			Ref:     ref,
			Name:    names[ref],
			Starter: started,
			Played:  acct.Played[ref],
			Bench:   acct.Bench[ref],
		}
		result.Lines = append(result.Lines, line)

		// Guests are match-scoped and carry no season stat row.
		if ref.Origin == player.OriginRoster {
			deltas = append(deltas, roster.StatDelta{
				MemberID:     ref.ID,
				Minutes:      line.Played,
				BenchMinutes: line.Bench,
				Appearances:  1,
			})
		}
	}

	if applyStats && len(deltas) > 0 {
		if err := s.rosterRepo.ApplyStatDeltas(ctx, m.TeamID, deltas); err != nil {
			return FinalizeResult{}, fmt.Errorf("apply stat deltas: %w", err)
		}
	}

	flipped, err := s.matchRepo.MarkFinalized(ctx, matchID, s.now().UTC())
	if err != nil {
		return FinalizeResult{}, fmt.Errorf("mark match finalized: %w", err)
	}
	if !flipped {
		return FinalizeResult{}, fmt.Errorf("%w: match=%s", ErrMatchFinalized, matchID)
	}

	return result, nil
}
