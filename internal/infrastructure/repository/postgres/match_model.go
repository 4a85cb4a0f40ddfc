package postgres

import (
	"time"

	"github.com/lib/pq"

	"github.com/matchdayhq/matchday/internal/domain/match"
)

type matchTableModel struct {
	ID              string        `db:"id"`
	TeamID          string        `db:"team_id"`
	Opponent        string        `db:"opponent"`
	KickoffAt       time.Time     `db:"kickoff_at"`
	Home            bool          `db:"home"`
	FormationKey    string        `db:"formation_key"`
	SchemeMinutes   pq.Int64Array `db:"scheme_minutes"`
	DurationMinutes int           `db:"duration_minutes"`
	Status          string        `db:"status"`
	GoalsFor        int           `db:"goals_for"`
	GoalsAgainst    int           `db:"goals_against"`
	PayoutDone      bool          `db:"payout_done"`
	FinalizedAt     *time.Time    `db:"finalized_at"`
	CreatedAt       time.Time     `db:"created_at"`
	UpdatedAt       time.Time     `db:"updated_at"`
}

func (row matchTableModel) toDomain() match.Match {
	scheme := make([]int, 0, len(row.SchemeMinutes))
	for _, m := range row.SchemeMinutes {
		scheme = append(scheme, int(m))
	}

	return match.Match{
		ID:              row.ID,
		TeamID:          row.TeamID,
		Opponent:        row.Opponent,
		KickoffAt:       row.KickoffAt,
		Home:            row.Home,
		FormationKey:    row.FormationKey,
		SchemeMinutes:   scheme,
		DurationMinutes: row.DurationMinutes,
		Status:          match.Status(row.Status),
		GoalsFor:        row.GoalsFor,
		GoalsAgainst:    row.GoalsAgainst,
		PayoutDone:      row.PayoutDone,
		FinalizedAt:     row.FinalizedAt,
	}
}

func schemeMinutesArray(minutes []int) pq.Int64Array {
	out := make(pq.Int64Array, 0, len(minutes))
	for _, m := range minutes {
		out = append(out, int64(m))
	}
	return out
}
