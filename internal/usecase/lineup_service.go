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
)

// playerResolver yields the unified roster+guest pool for a match.
// Implemented by RosterService.
type playerResolver interface {
	ResolvePlayers(ctx context.Context, matchID string) ([]player.Player, error)
}

// LineupService maintains the pre-match slot assignments. Every structural
// decision reloads persisted state first; nothing here trusts an in-memory
// snapshot across calls, since several club members may edit the same
// match concurrently.
type LineupService struct {
	matchRepo      match.Repository
	lineupRepo     lineup.Repository
	attendanceRepo attendance.Repository
	resolver       playerResolver
}

func NewLineupService(
	matchRepo match.Repository,
	lineupRepo lineup.Repository,
	attendanceRepo attendance.Repository,
	resolver playerResolver,
) *LineupService {
	return &LineupService{
		matchRepo:      matchRepo,
		lineupRepo:     lineupRepo,
		attendanceRepo: attendanceRepo,
		resolver:       resolver,
	}
}

// ListAvailable filters the unified pool through the single availability
// predicate: not injured and, for roster players, not on the match's
// absence list.
func (s *LineupService) ListAvailable(ctx context.Context, matchID string) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.ListAvailable")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return nil, fmt.Errorf("%w: match_id is required", ErrInvalidInput)
	}

	pool, absentees, err := s.loadPool(ctx, matchID)
	if err != nil {
		return nil, err
	}

	out := make([]player.Player, 0, len(pool))
	for _, p := range pool {
		if player.Available(p, absentees) {
			out = append(out, p)
		}
	}

	return out, nil
}

func (s *LineupService) ListAbsences(ctx context.Context, matchID string) ([]attendance.Absence, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.ListAbsences")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return nil, fmt.Errorf("%w: match_id is required", ErrInvalidInput)
	}

	absences, err := s.attendanceRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("list absences: %w", err)
	}

	return absences, nil
}

// SetAbsences replaces the match's absence list. Absent players already
// holding a slot are dropped from the lineup in the same pass.
func (s *LineupService) SetAbsences(ctx context.Context, matchID string, absences []attendance.Absence) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.SetAbsences")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return fmt.Errorf("%w: match_id is required", ErrInvalidInput)
	}

	m, err := s.getDraftMatch(ctx, matchID)
	if err != nil {
		return err
	}

	for i := range absences {
		absences[i].MatchID = matchID
		if err := absences[i].Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	if err := s.attendanceRepo.ReplaceForMatch(ctx, matchID, absences); err != nil {
		return fmt.Errorf("replace absences: %w", err)
	}

	sheet, tmpl, err := s.loadSheet(ctx, m)
	if err != nil {
		return err
	}

	absentees := attendance.MemberSet(absences)
	changed := false
	for slot := 0; slot < tmpl.Size(); slot++ {
		ref := sheet.At(slot)
		if ref.Origin != player.OriginRoster {
			continue
		}
		if _, absent := absentees[ref.ID]; absent {
			sheet.Unassign(slot)
			changed = true
		}
	}
	if !changed {
		return nil
	}

	if err := s.lineupRepo.ReplaceForMatch(ctx, matchID, lineup.AssignmentsFromSheet(matchID, sheet)); err != nil {
		return fmt.Errorf("save lineup after absence change: %w", err)
	}

	return nil
}

// Sheet returns the current slot assignments and the match's formation.
func (s *LineupService) Sheet(ctx context.Context, matchID string) (*lineup.Sheet, formation.Template, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.Sheet")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return nil, formation.Template{}, fmt.Errorf("%w: match_id is required", ErrInvalidInput)
	}

	m, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return nil, formation.Template{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return nil, formation.Template{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	sheet, tmpl, err := s.loadSheet(ctx, m)
	if err != nil {
		return nil, formation.Template{}, err
	}

	return sheet, tmpl, nil
}

// Assign places a player into a slot. Refused placements (unavailable
// player, occupied slot, player already holding another slot) are silent
// no-ops that return the unchanged sheet: the UI pre-filters them, the
// engine just refuses to corrupt state when it does not.
func (s *LineupService) Assign(ctx context.Context, matchID string, slot int, ref player.Ref) (*lineup.Sheet, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.Assign")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return nil, fmt.Errorf("%w: match_id is required", ErrInvalidInput)
	}
	if err := ref.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	m, err := s.getDraftMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	sheet, _, err := s.loadSheet(ctx, m)
	if err != nil {
		return nil, err
	}

	pool, absentees, err := s.loadPool(ctx, matchID)
	if err != nil {
		return nil, err
	}

	candidate, inPool := findByRef(pool, ref)
	if !inPool || !player.Available(candidate, absentees) {
		return sheet, nil
	}

	if !sheet.Assign(slot, ref) {
		return sheet, nil
	}

	if err := s.lineupRepo.ReplaceForMatch(ctx, matchID, lineup.AssignmentsFromSheet(matchID, sheet)); err != nil {
		return nil, fmt.Errorf("save lineup: %w", err)
	}

	return sheet, nil
}

func (s *LineupService) Unassign(ctx context.Context, matchID string, slot int) (*lineup.Sheet, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.Unassign")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return nil, fmt.Errorf("%w: match_id is required", ErrInvalidInput)
	}

	m, err := s.getDraftMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}

	sheet, _, err := s.loadSheet(ctx, m)
	if err != nil {
		return nil, err
	}

	if sheet.At(slot).IsZero() {
		return sheet, nil
	}
	sheet.Unassign(slot)

	if err := s.lineupRepo.ReplaceForMatch(ctx, matchID, lineup.AssignmentsFromSheet(matchID, sheet)); err != nil {
		return nil, fmt.Errorf("save lineup: %w", err)
	}

	return sheet, nil
}

func (s *LineupService) loadSheet(ctx context.Context, m match.Match) (*lineup.Sheet, formation.Template, error) {
	tmpl, err := formation.ByKey(m.FormationKey)
	if err != nil {
		return nil, formation.Template{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	assignments, err := s.lineupRepo.ListByMatch(ctx, m.ID)
	if err != nil {
		return nil, formation.Template{}, fmt.Errorf("list lineup: %w", err)
	}

	return lineup.SheetFromAssignments(tmpl.Size(), assignments), tmpl, nil
}

func (s *LineupService) loadPool(ctx context.Context, matchID string) ([]player.Player, map[int64]struct{}, error) {
	pool, err := s.resolver.ResolvePlayers(ctx, matchID)
	if err != nil {
		return nil, nil, err
	}

	absences, err := s.attendanceRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, nil, fmt.Errorf("list absences: %w", err)
	}

	return pool, attendance.MemberSet(absences), nil
}

func (s *LineupService) getDraftMatch(ctx context.Context, matchID string) (match.Match, error) {
	m, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	if m.Finalized() {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrMatchFinalized, matchID)
	}
	return m, nil
}

func findByRef(pool []player.Player, ref player.Ref) (player.Player, bool) {
	for _, p := range pool {
		if p.Ref == ref {
			return p, true
		}
	}
	return player.Player{}, false
}
