package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/matchdayhq/matchday/internal/domain/player"
	"github.com/matchdayhq/matchday/internal/domain/roster"
	qb "github.com/matchdayhq/matchday/internal/platform/querybuilder"
)

type rosterMemberTableModel struct {
	ID           int64     `db:"id"`
	TeamID       string    `db:"team_id"`
	Name         string    `db:"name"`
	Position     string    `db:"position"`
	Injured      bool      `db:"injured"`
	Goals        int       `db:"goals"`
	Assists      int       `db:"assists"`
	Minutes      int       `db:"minutes"`
	BenchMinutes int       `db:"bench_minutes"`
	Appearances  int       `db:"appearances"`
	YellowCards  int       `db:"yellow_cards"`
	RedCards     int       `db:"red_cards"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (row rosterMemberTableModel) toDomain() roster.Member {
	return roster.Member{
		ID:       row.ID,
		TeamID:   row.TeamID,
		Name:     row.Name,
		Position: player.Position(row.Position),
		Injured:  row.Injured,
		Stats: player.Stats{
			Goals:        row.Goals,
			Assists:      row.Assists,
			Minutes:      row.Minutes,
			BenchMinutes: row.BenchMinutes,
			Appearances:  row.Appearances,
			YellowCards:  row.YellowCards,
			RedCards:     row.RedCards,
		},
	}
}

type RosterRepository struct {
	db *sqlx.DB
}

func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

func (r *RosterRepository) ListByTeam(ctx context.Context, teamID string) ([]roster.Member, error) {
	query, args, err := qb.Select("*").From("roster_members").
		Where(qb.Eq("team_id", teamID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list roster query: %w", err)
	}

	var rows []rosterMemberTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list roster members: %w", err)
	}

	out := make([]roster.Member, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *RosterRepository) GetByID(ctx context.Context, teamID string, memberID int64) (roster.Member, bool, error) {
	query, args, err := qb.Select("*").From("roster_members").
		Where(
			qb.Eq("team_id", teamID),
			qb.Eq("id", memberID),
		).
		ToSQL()
	if err != nil {
		return roster.Member{}, false, fmt.Errorf("build get member query: %w", err)
	}

	var row rosterMemberTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return roster.Member{}, false, nil
		}
		return roster.Member{}, false, fmt.Errorf("get roster member: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *RosterRepository) SetInjured(ctx context.Context, teamID string, memberID int64, injured bool) error {
	const updateQuery = `
UPDATE roster_members
SET injured = $3, updated_at = NOW()
WHERE team_id = $1
  AND id = $2`

	res, err := r.db.ExecContext(ctx, updateQuery, teamID, memberID, injured)
	if err != nil {
		return fmt.Errorf("update injured flag: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read injured update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("unknown member: %d", memberID)
	}

	return nil
}

func (r *RosterRepository) ApplyStatDeltas(ctx context.Context, teamID string, deltas []roster.StatDelta) error {
	if len(deltas) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for stat deltas: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const updateQuery = `
UPDATE roster_members
SET minutes = minutes + $3,
    bench_minutes = bench_minutes + $4,
    appearances = appearances + $5,
    updated_at = NOW()
WHERE team_id = $1
  AND id = $2`

	for _, d := range deltas {
		res, err := tx.ExecContext(ctx, updateQuery, teamID, d.MemberID, d.Minutes, d.BenchMinutes, d.Appearances)
		if err != nil {
			return fmt.Errorf("apply stat delta member=%d: %w", d.MemberID, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("read stat delta result: %w", err)
		}
		if affected == 0 {
			return fmt.Errorf("unknown member in stat batch: %d", d.MemberID)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit stat deltas: %w", err)
	}

	return nil
}
