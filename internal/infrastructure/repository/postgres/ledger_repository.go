package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/matchdayhq/matchday/internal/domain/ledger"
	"github.com/matchdayhq/matchday/internal/domain/player"
	qb "github.com/matchdayhq/matchday/internal/platform/querybuilder"
)

type ledgerEntryTableModel struct {
	ID           int64          `db:"id"`
	TeamID       string         `db:"team_id"`
	PlayerOrigin string         `db:"player_origin"`
	PlayerID     int64          `db:"player_id"`
	Delta        int64          `db:"delta"`
	Reason       string         `db:"reason"`
	MatchID      sql.NullString `db:"match_id"`
	CreatedAt    time.Time      `db:"created_at"`
}

func (row ledgerEntryTableModel) toDomain() ledger.Entry {
	return ledger.Entry{
		ID:        row.ID,
		TeamID:    row.TeamID,
		Player:    player.Ref{Origin: player.Origin(row.PlayerOrigin), ID: row.PlayerID},
		Delta:     row.Delta,
		Reason:    ledger.Reason(row.Reason),
		MatchID:   row.MatchID.String,
		CreatedAt: row.CreatedAt,
	}
}

type LedgerRepository struct {
	db *sqlx.DB
}

func NewLedgerRepository(db *sqlx.DB) *LedgerRepository {
	return &LedgerRepository{db: db}
}

func (r *LedgerRepository) Append(ctx context.Context, entries []ledger.Entry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for ledger append: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const insertQuery = `
INSERT INTO credit_ledger (team_id, player_origin, player_id, delta, reason, match_id, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for _, e := range entries {
		matchID := sql.NullString{String: e.MatchID, Valid: e.MatchID != ""}
		if _, err := tx.ExecContext(ctx, insertQuery,
			e.TeamID, string(e.Player.Origin), e.Player.ID,
			e.Delta, string(e.Reason), matchID, e.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert ledger entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit ledger append: %w", err)
	}

	return nil
}

func (r *LedgerRepository) ListByPlayer(ctx context.Context, teamID string, ref player.Ref) ([]ledger.Entry, error) {
	query, args, err := qb.Select("*").From("credit_ledger").
		Where(
			qb.Eq("team_id", teamID),
			qb.Eq("player_origin", string(ref.Origin)),
			qb.Eq("player_id", ref.ID),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list ledger query: %w", err)
	}

	var rows []ledgerEntryTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}

	out := make([]ledger.Entry, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *LedgerRepository) SumByPlayer(ctx context.Context, teamID string, ref player.Ref) (int64, bool, error) {
	query, args, err := qb.Select("COALESCE(SUM(delta), 0) AS total", "COUNT(1) AS entries").
		From("credit_ledger").
		Where(
			qb.Eq("team_id", teamID),
			qb.Eq("player_origin", string(ref.Origin)),
			qb.Eq("player_id", ref.ID),
		).
		ToSQL()
	if err != nil {
		return 0, false, fmt.Errorf("build sum ledger query: %w", err)
	}

	var row struct {
		Total   int64 `db:"total"`
		Entries int64 `db:"entries"`
	}
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return 0, false, fmt.Errorf("sum ledger entries: %w", err)
	}

	return row.Total, row.Entries > 0, nil
}
