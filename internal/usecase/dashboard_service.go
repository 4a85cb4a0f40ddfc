package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/matchdayhq/matchday/internal/domain/ledger"
	"github.com/matchdayhq/matchday/internal/domain/match"
	"github.com/matchdayhq/matchday/internal/domain/player"
	"github.com/matchdayhq/matchday/internal/domain/roster"
)

const (
	defaultDashboardMatches = 5
	defaultDashboardLeaders = 5
)

// MinutesLeader is one row of the dashboard minutes table.
type MinutesLeader struct {
	MemberID int64
	Name     string
	Minutes  int
}

// CreditBalance is one roster member's running credit sum.
type CreditBalance struct {
	MemberID int64
	Name     string
	Credits  int64
}

// Dashboard is the aggregate view a team page renders in one request.
type Dashboard struct {
	TeamID         string
	UpcomingCount  int
	Upcoming       []match.Match
	MinutesLeaders []MinutesLeader
	Balances       []CreditBalance
}

// DashboardService assembles the team overview. The three sections read
// from independent repositories, so they load concurrently.
type DashboardService struct {
	matchRepo  match.Repository
	rosterRepo roster.Repository
	ledgerRepo ledger.Repository
	now        func() time.Time
}

func NewDashboardService(matchRepo match.Repository, rosterRepo roster.Repository, ledgerRepo ledger.Repository) *DashboardService {
	return &DashboardService{
		matchRepo:  matchRepo,
		rosterRepo: rosterRepo,
		ledgerRepo: ledgerRepo,
		now:        time.Now,
	}
}

// TeamDashboard loads upcoming matches, the minutes leaderboard, and
// credit balances for one team.
func (s *DashboardService) TeamDashboard(ctx context.Context, teamID string) (Dashboard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DashboardService.TeamDashboard")
	defer span.End()

	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return Dashboard{}, fmt.Errorf("%w: team_id is required", ErrInvalidInput)
	}

	var (
		upcoming []match.Match
		members  []roster.Member
	)

	p := pool.New().WithContext(ctx).WithCancelOnError()
	p.Go(func(ctx context.Context) error {
		matches, err := s.matchRepo.ListByTeam(ctx, teamID)
		if err != nil {
			return fmt.Errorf("list matches: %w", err)
		}
		upcoming = upcomingMatches(matches, s.now(), defaultDashboardMatches)
		return nil
	})
	p.Go(func(ctx context.Context) error {
		var err error
		members, err = s.rosterRepo.ListByTeam(ctx, teamID)
		if err != nil {
			return fmt.Errorf("list roster: %w", err)
		}
		return nil
	})
	if err := p.Wait(); err != nil {
		return Dashboard{}, err
	}

	balances, err := s.loadBalances(ctx, teamID, members)
	if err != nil {
		return Dashboard{}, err
	}

	return Dashboard{
		TeamID:         teamID,
		UpcomingCount:  len(upcoming),
		Upcoming:       upcoming,
		MinutesLeaders: minutesLeaders(members, defaultDashboardLeaders),
		Balances:       balances,
	}, nil
}

// loadBalances fans out one ledger sum per member. Members with no ledger
// history yet show as zero; the initial grant is only booked when the
// balance endpoint is hit for them.
func (s *DashboardService) loadBalances(ctx context.Context, teamID string, members []roster.Member) ([]CreditBalance, error) {
	balances := make([]CreditBalance, len(members))

	p := pool.New().WithContext(ctx).WithCancelOnError()
	for i, m := range members {
		i, m := i, m
		p.Go(func(ctx context.Context) error {
			sum, _, err := s.ledgerRepo.SumByPlayer(ctx, teamID, player.RosterRef(m.ID))
			if err != nil {
				return fmt.Errorf("sum credits member=%d: %w", m.ID, err)
			}
			balances[i] = CreditBalance{MemberID: m.ID, Name: m.Name, Credits: sum}
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(balances, func(i, j int) bool {
		if balances[i].Credits != balances[j].Credits {
			return balances[i].Credits > balances[j].Credits
		}
		return balances[i].Name < balances[j].Name
	})
	return balances, nil
}

func upcomingMatches(matches []match.Match, at time.Time, limit int) []match.Match {
	out := make([]match.Match, 0, limit)
	for _, m := range matches {
		if m.Finalized() || m.KickoffAt.Before(at) {
			continue
		}
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].KickoffAt.Before(out[j].KickoffAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func minutesLeaders(members []roster.Member, limit int) []MinutesLeader {
	leaders := make([]MinutesLeader, 0, len(members))
	for _, m := range members {
		leaders = append(leaders, MinutesLeader{MemberID: m.ID, Name: m.Name, Minutes: m.Stats.Minutes})
	}
	sort.SliceStable(leaders, func(i, j int) bool {
		if leaders[i].Minutes != leaders[j].Minutes {
			return leaders[i].Minutes > leaders[j].Minutes
		}
		return leaders[i].Name < leaders[j].Name
	})
	if len(leaders) > limit {
		leaders = leaders[:limit]
	}
	return leaders
}
