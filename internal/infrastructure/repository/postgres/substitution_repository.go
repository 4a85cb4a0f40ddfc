package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/matchdayhq/matchday/internal/domain/player"
	"github.com/matchdayhq/matchday/internal/domain/substitution"
	qb "github.com/matchdayhq/matchday/internal/platform/querybuilder"
)

type substitutionEventTableModel struct {
	ID        int64  `db:"id"`
	MatchID   string `db:"match_id"`
	Round     int    `db:"round"`
	Minute    int    `db:"minute"`
	OutOrigin string `db:"out_origin"`
	OutID     int64  `db:"out_id"`
	InOrigin  string `db:"in_origin"`
	InID      int64  `db:"in_id"`
	Extra     bool   `db:"extra"`
}

func (row substitutionEventTableModel) toDomain() substitution.Event {
	return substitution.Event{
		MatchID: row.MatchID,
		Round:   row.Round,
		Minute:  row.Minute,
		Out:     player.Ref{Origin: player.Origin(row.OutOrigin), ID: row.OutID},
		In:      player.Ref{Origin: player.Origin(row.InOrigin), ID: row.InID},
		Extra:   row.Extra,
	}
}

type SubstitutionRepository struct {
	db *sqlx.DB
}

func NewSubstitutionRepository(db *sqlx.DB) *SubstitutionRepository {
	return &SubstitutionRepository{db: db}
}

func (r *SubstitutionRepository) ListByMatch(ctx context.Context, matchID string) ([]substitution.Event, error) {
	query, args, err := qb.Select("*").From("substitution_events").
		Where(qb.Eq("match_id", matchID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list events query: %w", err)
	}

	var rows []substitutionEventTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list substitution events: %w", err)
	}

	out := make([]substitution.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *SubstitutionRepository) ReplaceRound(ctx context.Context, matchID string, round, minute int, pairs []substitution.Pair) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for round replace: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const deleteQuery = `
DELETE FROM substitution_events
WHERE match_id = $1
  AND round = $2
  AND extra = FALSE`
	if _, err := tx.ExecContext(ctx, deleteQuery, matchID, round); err != nil {
		return fmt.Errorf("clear round events: %w", err)
	}

	const insertQuery = `
INSERT INTO substitution_events (match_id, round, minute, out_origin, out_id, in_origin, in_id, extra)
VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE)`
	for _, p := range pairs {
		if _, err := tx.ExecContext(ctx, insertQuery,
			matchID, round, minute,
			string(p.Out.Origin), p.Out.ID,
			string(p.In.Origin), p.In.ID,
		); err != nil {
			return fmt.Errorf("insert round event: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit round replace: %w", err)
	}

	return nil
}

func (r *SubstitutionRepository) AppendExtra(ctx context.Context, matchID string, minute int, pair substitution.Pair) error {
	const insertQuery = `
INSERT INTO substitution_events (match_id, round, minute, out_origin, out_id, in_origin, in_id, extra)
VALUES ($1, 0, $2, $3, $4, $5, $6, TRUE)`

	if _, err := r.db.ExecContext(ctx, insertQuery,
		matchID, minute,
		string(pair.Out.Origin), pair.Out.ID,
		string(pair.In.Origin), pair.In.ID,
	); err != nil {
		return fmt.Errorf("insert extra event: %w", err)
	}

	return nil
}
