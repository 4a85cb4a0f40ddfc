package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/matchdayhq/matchday/internal/domain/attendance"
	"github.com/matchdayhq/matchday/internal/domain/formation"
	"github.com/matchdayhq/matchday/internal/domain/lineup"
	"github.com/matchdayhq/matchday/internal/domain/match"
	"github.com/matchdayhq/matchday/internal/domain/player"
	"github.com/matchdayhq/matchday/internal/domain/substitution"
)

// RoundDraft is the editable view of one substitution round.
type RoundDraft struct {
	Round    int
	Minute   int
	FreeForm bool
	Pairs    []substitution.Pair
}

// SubstitutionService manages during-match substitution rounds under the
// match's scheme. Eligibility always comes from a fresh replay of the
// persisted rounds, never from a cached field/bench split.
type SubstitutionService struct {
	matchRepo      match.Repository
	lineupRepo     lineup.Repository
	subRepo        substitution.Repository
	attendanceRepo attendance.Repository
	resolver       playerResolver
}

func NewSubstitutionService(
	matchRepo match.Repository,
	lineupRepo lineup.Repository,
	subRepo substitution.Repository,
	attendanceRepo attendance.Repository,
	resolver playerResolver,
) *SubstitutionService {
	return &SubstitutionService{
		matchRepo:      matchRepo,
		lineupRepo:     lineupRepo,
		subRepo:        subRepo,
		attendanceRepo: attendanceRepo,
		resolver:       resolver,
	}
}

// ListEvents returns all events of a match in display order: sorted by
// minute, as the free-form scheme shows rounds by match time rather than
// creation order.
func (s *SubstitutionService) ListEvents(ctx context.Context, matchID string) ([]substitution.Event, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SubstitutionService.ListEvents")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return nil, fmt.Errorf("%w: match_id is required", ErrInvalidInput)
	}

	events, err := s.subRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("list substitution events: %w", err)
	}

	return substitution.SortForDisplay(events), nil
}

// NextRound returns the number a newly created free-form round would take.
func (s *SubstitutionService) NextRound(ctx context.Context, matchID string) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SubstitutionService.NextRound")
	defer span.End()

	m, events, err := s.loadDraftMatchEvents(ctx, matchID)
	if err != nil {
		return 0, err
	}
	if !m.FreeForm() {
		return 0, fmt.Errorf("%w: match uses a fixed substitution scheme", ErrInvalidInput)
	}

	return substitution.NextRound(events), nil
}

// OpenRound loads the existing pairs of a round into an editable draft.
func (s *SubstitutionService) OpenRound(ctx context.Context, matchID string, round int) (RoundDraft, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SubstitutionService.OpenRound")
	defer span.End()

	m, events, err := s.loadDraftMatchEvents(ctx, matchID)
	if err != nil {
		return RoundDraft{}, err
	}
	if err := s.checkRoundNumber(m, round); err != nil {
		return RoundDraft{}, err
	}

	draft := RoundDraft{Round: round, FreeForm: m.FreeForm()}
	if !m.FreeForm() {
		draft.Minute = m.SchemeMinutes[round-1]
	}

	for _, e := range substitution.RoundEvents(events, round) {
		draft.Minute = e.Minute
		draft.Pairs = append(draft.Pairs, substitution.Pair{Out: e.Out, In: e.In})
	}

	return draft, nil
}

// EligibleOutgoing lists who can leave the field in the given round,
// excluding players already used as outgoing in the caller's draft.
func (s *SubstitutionService) EligibleOutgoing(ctx context.Context, matchID string, round int, draftOut []player.Ref) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SubstitutionService.EligibleOutgoing")
	defer span.End()

	m, events, err := s.loadDraftMatchEvents(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if err := s.checkRoundNumber(m, round); err != nil {
		return nil, err
	}

	starters, _, pool, err := s.loadField(ctx, m)
	if err != nil {
		return nil, err
	}

	refs := substitution.EligibleOutgoing(starters, events, round, draftOut)
	return resolveRefs(pool, refs), nil
}

// EligibleIncoming lists who can enter in the given round: available bench
// players not on the field plus earlier leavers, minus the caller's draft.
func (s *SubstitutionService) EligibleIncoming(ctx context.Context, matchID string, round int, draftIn []player.Ref) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SubstitutionService.EligibleIncoming")
	defer span.End()

	m, events, err := s.loadDraftMatchEvents(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if err := s.checkRoundNumber(m, round); err != nil {
		return nil, err
	}

	starters, bench, pool, err := s.loadField(ctx, m)
	if err != nil {
		return nil, err
	}

	refs := substitution.EligibleIncoming(starters, bench, events, round, draftIn)
	return resolveRefs(pool, refs), nil
}

// CommitRound validates the draft and atomically replaces all events of
// the round. A rejected draft leaves the previously committed pair set
// untouched; there is no partial commit.
func (s *SubstitutionService) CommitRound(ctx context.Context, matchID string, round, minute int, pairs []substitution.Pair) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SubstitutionService.CommitRound")
	defer span.End()

	m, _, err := s.loadDraftMatchEvents(ctx, matchID)
	if err != nil {
		return err
	}
	if err := s.checkRoundNumber(m, round); err != nil {
		return err
	}

	if m.FreeForm() {
		if minute <= 0 || minute > m.DurationMinutes {
			return fmt.Errorf("%w: round minute must be within match duration", ErrInvalidInput)
		}
	} else {
		// Fixed scheme rounds always commit at their trigger minute.
		minute = m.SchemeMinutes[round-1]
	}

	if err := substitution.ValidatePairs(pairs); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.subRepo.ReplaceRound(ctx, matchID, round, minute, pairs); err != nil {
		return fmt.Errorf("replace substitution round: %w", err)
	}

	return nil
}

// AddExtra records an ad-hoc swap outside any scheduled round. Extras skip
// round eligibility and only require a complete, non-self pair.
func (s *SubstitutionService) AddExtra(ctx context.Context, matchID string, minute int, pair substitution.Pair) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SubstitutionService.AddExtra")
	defer span.End()

	m, _, err := s.loadDraftMatchEvents(ctx, matchID)
	if err != nil {
		return err
	}
	if minute < 0 || minute > m.DurationMinutes {
		return fmt.Errorf("%w: minute must be within match duration", ErrInvalidInput)
	}
	if err := substitution.ValidatePairs([]substitution.Pair{pair}); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.subRepo.AppendExtra(ctx, matchID, minute, pair); err != nil {
		return fmt.Errorf("append extra substitution: %w", err)
	}

	return nil
}

func (s *SubstitutionService) loadDraftMatchEvents(ctx context.Context, matchID string) (match.Match, []substitution.Event, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, nil, fmt.Errorf("%w: match_id is required", ErrInvalidInput)
	}

	m, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, nil, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return match.Match{}, nil, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	if m.Finalized() {
		return match.Match{}, nil, fmt.Errorf("%w: match=%s", ErrMatchFinalized, matchID)
	}

	events, err := s.subRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return match.Match{}, nil, fmt.Errorf("list substitution events: %w", err)
	}

	return m, events, nil
}

func (s *SubstitutionService) checkRoundNumber(m match.Match, round int) error {
	if round < 1 {
		return fmt.Errorf("%w: round must be at least 1", ErrInvalidInput)
	}
	if !m.FreeForm() && round > m.ScheduledRounds() {
		return fmt.Errorf("%w: scheme has only %d round(s)", ErrInvalidInput, m.ScheduledRounds())
	}
	return nil
}

// loadField returns the starters, the available bench, and the full
// resolved pool of the match.
func (s *SubstitutionService) loadField(ctx context.Context, m match.Match) ([]player.Ref, []player.Ref, []player.Player, error) {
	tmpl, err := formation.ByKey(m.FormationKey)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	assignments, err := s.lineupRepo.ListByMatch(ctx, m.ID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("list lineup: %w", err)
	}
	sheet := lineup.SheetFromAssignments(tmpl.Size(), assignments)
	starters := sheet.Starters()

	pool, err := s.resolver.ResolvePlayers(ctx, m.ID)
	if err != nil {
		return nil, nil, nil, err
	}
	absences, err := s.attendanceRepo.ListByMatch(ctx, m.ID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("list absences: %w", err)
	}
	absentees := attendance.MemberSet(absences)

	bench := make([]player.Ref, 0, len(pool))
	for _, p := range pool {
		if sheet.IsOccupied(p.Ref) {
			continue
		}
		if !player.Available(p, absentees) {
			continue
		}
		bench = append(bench, p.Ref)
	}

	return starters, bench, pool, nil
}

func resolveRefs(pool []player.Player, refs []player.Ref) []player.Player {
	byRef := make(map[player.Ref]player.Player, len(pool))
	for _, p := range pool {
		byRef[p.Ref] = p
	}

	out := make([]player.Player, 0, len(refs))
	for _, ref := range refs {
		if p, ok := byRef[ref]; ok {
			out = append(out, p)
			continue
		}
		// Refs can outlive the pool entry that produced them (a removed
		// guest already subbed in); keep the ref visible either way.
		out = append(out, player.Player{Ref: ref, Name: ref.Key()})
	}
	return out
}
