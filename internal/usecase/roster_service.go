package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/matchdayhq/matchday/internal/domain/guest"
	"github.com/matchdayhq/matchday/internal/domain/match"
	"github.com/matchdayhq/matchday/internal/domain/player"
	"github.com/matchdayhq/matchday/internal/domain/roster"
)

// RosterService manages season roster members, match guests, and the
// unified player pool both feed into.
type RosterService struct {
	rosterRepo roster.Repository
	guestRepo  guest.Repository
	matchRepo  match.Repository
}

func NewRosterService(
	rosterRepo roster.Repository,
	guestRepo guest.Repository,
	matchRepo match.Repository,
) *RosterService {
	return &RosterService{
		rosterRepo: rosterRepo,
		guestRepo:  guestRepo,
		matchRepo:  matchRepo,
	}
}

func (s *RosterService) ListMembers(ctx context.Context, teamID string) ([]roster.Member, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.ListMembers")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return nil, fmt.Errorf("%w: team_id is required", ErrInvalidInput)
	}

	members, err := s.rosterRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("list roster members: %w", err)
	}

	return members, nil
}

func (s *RosterService) SetInjured(ctx context.Context, teamID string, memberID int64, injured bool) (roster.Member, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.SetInjured")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return roster.Member{}, fmt.Errorf("%w: team_id is required", ErrInvalidInput)
	}
	if memberID <= 0 {
		return roster.Member{}, fmt.Errorf("%w: member_id must be greater than zero", ErrInvalidInput)
	}

	member, exists, err := s.rosterRepo.GetByID(ctx, teamID, memberID)
	if err != nil {
		return roster.Member{}, fmt.Errorf("get roster member: %w", err)
	}
	if !exists {
		return roster.Member{}, fmt.Errorf("%w: member=%d", ErrNotFound, memberID)
	}

	if err := s.rosterRepo.SetInjured(ctx, teamID, memberID, injured); err != nil {
		return roster.Member{}, fmt.Errorf("set injured flag: %w", err)
	}

	member.Injured = injured
	return member, nil
}

type AddGuestInput struct {
	MatchID  string
	Name     string
	Position player.Position
	Injured  bool
}

func (s *RosterService) AddGuest(ctx context.Context, input AddGuestInput) (guest.Guest, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.AddGuest")
	defer span.End()

	input.MatchID = strings.TrimSpace(input.MatchID)
	input.Name = strings.TrimSpace(input.Name)
	if input.MatchID == "" {
		return guest.Guest{}, fmt.Errorf("%w: match_id is required", ErrInvalidInput)
	}
	if input.Name == "" {
		return guest.Guest{}, fmt.Errorf("%w: guest name is required", ErrInvalidInput)
	}
	if _, ok := player.AllPositions[input.Position]; !ok {
		return guest.Guest{}, fmt.Errorf("%w: invalid position %s", ErrInvalidInput, input.Position)
	}

	m, err := s.draftMatch(ctx, input.MatchID)
	if err != nil {
		return guest.Guest{}, err
	}

	created, err := s.guestRepo.Create(ctx, guest.Guest{
		MatchID:  m.ID,
		Name:     input.Name,
		Position: input.Position,
		Injured:  input.Injured,
	})
	if err != nil {
		return guest.Guest{}, fmt.Errorf("create guest: %w", err)
	}

	return created, nil
}

func (s *RosterService) RemoveGuest(ctx context.Context, matchID string, guestID int64) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.RemoveGuest")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return fmt.Errorf("%w: match_id is required", ErrInvalidInput)
	}
	if guestID <= 0 {
		return fmt.Errorf("%w: guest_id must be greater than zero", ErrInvalidInput)
	}

	if _, err := s.draftMatch(ctx, matchID); err != nil {
		return err
	}

	if err := s.guestRepo.Delete(ctx, matchID, guestID); err != nil {
		return fmt.Errorf("delete guest: %w", err)
	}

	return nil
}

func (s *RosterService) ListGuests(ctx context.Context, matchID string) ([]guest.Guest, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.ListGuests")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return nil, fmt.Errorf("%w: match_id is required", ErrInvalidInput)
	}

	guests, err := s.guestRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("list guests: %w", err)
	}

	return guests, nil
}

// ResolvePlayers merges the match team's roster with the match guests into
// the unified selectable pool. Missing guest data degrades to roster-only.
func (s *RosterService) ResolvePlayers(ctx context.Context, matchID string) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.ResolvePlayers")
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

	members, err := s.rosterRepo.ListByTeam(ctx, m.TeamID)
	if err != nil {
		return nil, fmt.Errorf("list roster members: %w", err)
	}
	guests, err := s.guestRepo.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("list guests: %w", err)
	}

	rosterPlayers := make([]player.Player, 0, len(members))
	for _, member := range members {
		rosterPlayers = append(rosterPlayers, member.AsPlayer())
	}
	guestPlayers := make([]player.Player, 0, len(guests))
	for _, g := range guests {
		guestPlayers = append(guestPlayers, g.AsPlayer())
	}

	return player.Unify(rosterPlayers, guestPlayers), nil
}

func (s *RosterService) draftMatch(ctx context.Context, matchID string) (match.Match, error) {
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
