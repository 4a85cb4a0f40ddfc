package httpapi

import (
	"fmt"
	"strconv"
	"time"

	"github.com/matchdayhq/matchday/internal/domain/formation"
	"github.com/matchdayhq/matchday/internal/domain/guest"
	"github.com/matchdayhq/matchday/internal/domain/ledger"
	"github.com/matchdayhq/matchday/internal/domain/lineup"
	"github.com/matchdayhq/matchday/internal/domain/match"
	"github.com/matchdayhq/matchday/internal/domain/player"
	"github.com/matchdayhq/matchday/internal/domain/roster"
	"github.com/matchdayhq/matchday/internal/domain/substitution"
	"github.com/matchdayhq/matchday/internal/domain/vote"
	"github.com/matchdayhq/matchday/internal/usecase"
)

type playerRefDTO struct {
	Origin string `json:"origin" validate:"required,oneof=roster guest"`
	ID     int64  `json:"id" validate:"required,gt=0"`
}

func refToDTO(ref player.Ref) playerRefDTO {
	return playerRefDTO{Origin: string(ref.Origin), ID: ref.ID}
}

func (d playerRefDTO) toDomain() player.Ref {
	return player.Ref{Origin: player.Origin(d.Origin), ID: d.ID}
}

// parsePlayerRef builds a ref from path segments such as /players/roster/7.
func parsePlayerRef(origin, rawID string) (player.Ref, error) {
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return player.Ref{}, fmt.Errorf("%w: invalid player id: %s", usecase.ErrInvalidInput, rawID)
	}
	ref := player.Ref{Origin: player.Origin(origin), ID: id}
	if err := ref.Validate(); err != nil {
		return player.Ref{}, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
	}
	return ref, nil
}

type playerDTO struct {
	Origin   string `json:"origin"`
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Injured  bool   `json:"injured"`
}

func playerToDTO(p player.Player) playerDTO {
	return playerDTO{
		Origin:   string(p.Ref.Origin),
		ID:       p.Ref.ID,
		Name:     p.Name,
		Position: string(p.Position),
		Injured:  p.Injured,
	}
}

func playersToDTO(players []player.Player) []playerDTO {
	out := make([]playerDTO, 0, len(players))
	for _, p := range players {
		out = append(out, playerToDTO(p))
	}
	return out
}

type statsDTO struct {
	Goals        int `json:"goals"`
	Assists      int `json:"assists"`
	Minutes      int `json:"minutes"`
	BenchMinutes int `json:"bench_minutes"`
	Appearances  int `json:"appearances"`
	YellowCards  int `json:"yellow_cards"`
	RedCards     int `json:"red_cards"`
}

type memberDTO struct {
	ID       int64    `json:"id"`
	Name     string   `json:"name"`
	Position string   `json:"position"`
	Injured  bool     `json:"injured"`
	Stats    statsDTO `json:"stats"`
}

func memberToDTO(m roster.Member) memberDTO {
	return memberDTO{
		ID:       m.ID,
		Name:     m.Name,
		Position: string(m.Position),
		Injured:  m.Injured,
		Stats: statsDTO{
			Goals:        m.Stats.Goals,
			Assists:      m.Stats.Assists,
			Minutes:      m.Stats.Minutes,
			BenchMinutes: m.Stats.BenchMinutes,
			Appearances:  m.Stats.Appearances,
			YellowCards:  m.Stats.YellowCards,
			RedCards:     m.Stats.RedCards,
		},
	}
}

type guestDTO struct {
	ID       int64  `json:"id"`
	MatchID  string `json:"match_id"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Injured  bool   `json:"injured"`
}

func guestToDTO(g guest.Guest) guestDTO {
	return guestDTO{
		ID:       g.ID,
		MatchID:  g.MatchID,
		Name:     g.Name,
		Position: string(g.Position),
		Injured:  g.Injured,
	}
}

type matchDTO struct {
	ID              string     `json:"id"`
	TeamID          string     `json:"team_id"`
	Opponent        string     `json:"opponent"`
	KickoffAt       time.Time  `json:"kickoff_at"`
	Home            bool       `json:"home"`
	FormationKey    string     `json:"formation_key"`
	SchemeMinutes   []int      `json:"scheme_minutes,omitempty"`
	DurationMinutes int        `json:"duration_minutes"`
	Status          string     `json:"status"`
	GoalsFor        int        `json:"goals_for"`
	GoalsAgainst    int        `json:"goals_against"`
	PayoutDone      bool       `json:"payout_done"`
	FinalizedAt     *time.Time `json:"finalized_at,omitempty"`
}

func matchToDTO(m match.Match) matchDTO {
	return matchDTO{
		ID:              m.ID,
		TeamID:          m.TeamID,
		Opponent:        m.Opponent,
		KickoffAt:       m.KickoffAt,
		Home:            m.Home,
		FormationKey:    m.FormationKey,
		SchemeMinutes:   m.SchemeMinutes,
		DurationMinutes: m.DurationMinutes,
		Status:          string(m.Status),
		GoalsFor:        m.GoalsFor,
		GoalsAgainst:    m.GoalsAgainst,
		PayoutDone:      m.PayoutDone,
		FinalizedAt:     m.FinalizedAt,
	}
}

func matchesToDTO(matches []match.Match) []matchDTO {
	out := make([]matchDTO, 0, len(matches))
	for _, m := range matches {
		out = append(out, matchToDTO(m))
	}
	return out
}

type slotDTO struct {
	Slot   int           `json:"slot"`
	Role   string        `json:"role"`
	Player *playerRefDTO `json:"player,omitempty"`
}

type sheetDTO struct {
	FormationKey   string    `json:"formation_key"`
	FormationLabel string    `json:"formation_label"`
	Slots          []slotDTO `json:"slots"`
}

func sheetToDTO(sheet *lineup.Sheet, tpl formation.Template) sheetDTO {
	slots := make([]slotDTO, 0, sheet.Size())
	for i, ref := range sheet.Slots() {
		role, _ := tpl.RoleAt(i)
		slot := slotDTO{Slot: i, Role: string(role)}
		if !ref.IsZero() {
			dto := refToDTO(ref)
			slot.Player = &dto
		}
		slots = append(slots, slot)
	}

	return sheetDTO{
		FormationKey:   tpl.Key,
		FormationLabel: tpl.Label,
		Slots:          slots,
	}
}

type formationDTO struct {
	Key   string   `json:"key"`
	Label string   `json:"label"`
	Size  int      `json:"size"`
	Roles []string `json:"roles"`
}

func formationToDTO(tpl formation.Template) formationDTO {
	roles := make([]string, 0, len(tpl.Roles))
	for _, role := range tpl.Roles {
		roles = append(roles, string(role))
	}
	return formationDTO{Key: tpl.Key, Label: tpl.Label, Size: tpl.Size(), Roles: roles}
}

type absenceDTO struct {
	MemberID int64  `json:"member_id"`
	Note     string `json:"note,omitempty"`
}

type substitutionEventDTO struct {
	Round  int          `json:"round,omitempty"`
	Minute int          `json:"minute"`
	Out    playerRefDTO `json:"out"`
	In     playerRefDTO `json:"in"`
	Extra  bool         `json:"extra"`
}

func eventToDTO(e substitution.Event) substitutionEventDTO {
	return substitutionEventDTO{
		Round:  e.Round,
		Minute: e.Minute,
		Out:    refToDTO(e.Out),
		In:     refToDTO(e.In),
		Extra:  e.Extra,
	}
}

type roundDraftDTO struct {
	Round    int                `json:"round"`
	Minute   int                `json:"minute"`
	FreeForm bool               `json:"free_form"`
	Pairs    []substitutionPair `json:"pairs"`
}

type substitutionPair struct {
	Out playerRefDTO `json:"out" validate:"required"`
	In  playerRefDTO `json:"in" validate:"required"`
}

func draftToDTO(d usecase.RoundDraft) roundDraftDTO {
	pairs := make([]substitutionPair, 0, len(d.Pairs))
	for _, p := range d.Pairs {
		pairs = append(pairs, substitutionPair{Out: refToDTO(p.Out), In: refToDTO(p.In)})
	}
	return roundDraftDTO{Round: d.Round, Minute: d.Minute, FreeForm: d.FreeForm, Pairs: pairs}
}

func pairsToDomain(pairs []substitutionPair) []substitution.Pair {
	out := make([]substitution.Pair, 0, len(pairs))
	for _, p := range pairs {
		out = append(out, substitution.Pair{Out: p.Out.toDomain(), In: p.In.toDomain()})
	}
	return out
}

type finalizeLineDTO struct {
	Player  playerRefDTO `json:"player"`
	Name    string       `json:"name"`
	Starter bool         `json:"starter"`
	Played  int          `json:"played_minutes"`
	Bench   int          `json:"bench_minutes"`
}

type finalizeResultDTO struct {
	MatchID         string            `json:"match_id"`
	DurationMinutes int               `json:"duration_minutes"`
	StatsApplied    bool              `json:"stats_applied"`
	Lines           []finalizeLineDTO `json:"lines"`
}

func finalizeResultToDTO(res usecase.FinalizeResult) finalizeResultDTO {
	lines := make([]finalizeLineDTO, 0, len(res.Lines))
	for _, l := range res.Lines {
		lines = append(lines, finalizeLineDTO{
			Player:  refToDTO(l.Ref),
			Name:    l.Name,
			Starter: l.Starter,
			Played:  l.Played,
			Bench:   l.Bench,
		})
	}
	return finalizeResultDTO{
		MatchID:         res.MatchID,
		DurationMinutes: res.DurationMinutes,
		StatsApplied:    res.StatsApplied,
		Lines:           lines,
	}
}

type podiumEntryDTO struct {
	Player playerRefDTO `json:"player"`
	Votes  int          `json:"votes"`
	Rank   int          `json:"rank"`
}

func podiumToDTO(entries []vote.PodiumEntry) []podiumEntryDTO {
	out := make([]podiumEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, podiumEntryDTO{Player: refToDTO(e.Candidate), Votes: e.Votes, Rank: e.Rank})
	}
	return out
}

type awardDTO struct {
	Player playerRefDTO `json:"player"`
	Rank   int          `json:"rank"`
	Amount int64        `json:"amount"`
}

type payoutResultDTO struct {
	MatchID string     `json:"match_id"`
	Claimed bool       `json:"claimed"`
	Awards  []awardDTO `json:"awards,omitempty"`
}

func payoutResultToDTO(res usecase.PayoutResult) payoutResultDTO {
	awards := make([]awardDTO, 0, len(res.Awards))
	for _, a := range res.Awards {
		awards = append(awards, awardDTO{Player: refToDTO(a.Candidate), Rank: a.Rank, Amount: a.Amount})
	}
	return payoutResultDTO{MatchID: res.MatchID, Claimed: res.Claimed, Awards: awards}
}

type ledgerEntryDTO struct {
	ID        int64     `json:"id"`
	Player    playerRefDTO `json:"player"`
	Delta     int64     `json:"delta"`
	Reason    string    `json:"reason"`
	MatchID   string    `json:"match_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func ledgerEntriesToDTO(entries []ledger.Entry) []ledgerEntryDTO {
	out := make([]ledgerEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, ledgerEntryDTO{
			ID:        e.ID,
			Player:    refToDTO(e.Player),
			Delta:     e.Delta,
			Reason:    string(e.Reason),
			MatchID:   e.MatchID,
			CreatedAt: e.CreatedAt,
		})
	}
	return out
}

type dashboardDTO struct {
	TeamID         string             `json:"team_id"`
	UpcomingCount  int                `json:"upcoming_count"`
	Upcoming       []matchDTO         `json:"upcoming"`
	MinutesLeaders []minutesLeaderDTO `json:"minutes_leaders"`
	Balances       []creditBalanceDTO `json:"balances"`
}

type minutesLeaderDTO struct {
	MemberID int64  `json:"member_id"`
	Name     string `json:"name"`
	Minutes  int    `json:"minutes"`
}

type creditBalanceDTO struct {
	MemberID int64  `json:"member_id"`
	Name     string `json:"name"`
	Credits  int64  `json:"credits"`
}

func dashboardToDTO(d usecase.Dashboard) dashboardDTO {
	leaders := make([]minutesLeaderDTO, 0, len(d.MinutesLeaders))
	for _, l := range d.MinutesLeaders {
		leaders = append(leaders, minutesLeaderDTO{MemberID: l.MemberID, Name: l.Name, Minutes: l.Minutes})
	}
	balances := make([]creditBalanceDTO, 0, len(d.Balances))
	for _, b := range d.Balances {
		balances = append(balances, creditBalanceDTO{MemberID: b.MemberID, Name: b.Name, Credits: b.Credits})
	}
	return dashboardDTO{
		TeamID:         d.TeamID,
		UpcomingCount:  d.UpcomingCount,
		Upcoming:       matchesToDTO(d.Upcoming),
		MinutesLeaders: leaders,
		Balances:       balances,
	}
}
