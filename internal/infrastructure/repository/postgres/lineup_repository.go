package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/matchdayhq/matchday/internal/domain/lineup"
	"github.com/matchdayhq/matchday/internal/domain/player"
	qb "github.com/matchdayhq/matchday/internal/platform/querybuilder"
)

type lineupSlotTableModel struct {
	MatchID      string `db:"match_id"`
	Slot         int    `db:"slot"`
	PlayerOrigin string `db:"player_origin"`
	PlayerID     int64  `db:"player_id"`
}

type LineupRepository struct {
	db *sqlx.DB
}

func NewLineupRepository(db *sqlx.DB) *LineupRepository {
	return &LineupRepository{db: db}
}

func (r *LineupRepository) ListByMatch(ctx context.Context, matchID string) ([]lineup.Assignment, error) {
	query, args, err := qb.Select("match_id", "slot", "player_origin", "player_id").
		From("lineup_slots").
		Where(qb.Eq("match_id", matchID)).
		OrderBy("slot").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list lineup query: %w", err)
	}

	var rows []lineupSlotTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list lineup slots: %w", err)
	}

	out := make([]lineup.Assignment, 0, len(rows))
	for _, row := range rows {
		out = append(out, lineup.Assignment{
			MatchID: row.MatchID,
			Slot:    row.Slot,
			Ref:     player.Ref{Origin: player.Origin(row.PlayerOrigin), ID: row.PlayerID},
		})
	}

	return out, nil
}

func (r *LineupRepository) ReplaceForMatch(ctx context.Context, matchID string, assignments []lineup.Assignment) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for lineup replace: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const deleteQuery = `DELETE FROM lineup_slots WHERE match_id = $1`
	if _, err := tx.ExecContext(ctx, deleteQuery, matchID); err != nil {
		return fmt.Errorf("clear lineup slots: %w", err)
	}

	const insertQuery = `
INSERT INTO lineup_slots (match_id, slot, player_origin, player_id)
VALUES ($1, $2, $3, $4)`
	for _, a := range assignments {
		if _, err := tx.ExecContext(ctx, insertQuery, matchID, a.Slot, string(a.Ref.Origin), a.Ref.ID); err != nil {
			return fmt.Errorf("insert lineup slot %d: %w", a.Slot, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit lineup replace: %w", err)
	}

	return nil
}
