package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/matchdayhq/matchday/internal/domain/guest"
	"github.com/matchdayhq/matchday/internal/domain/player"
	qb "github.com/matchdayhq/matchday/internal/platform/querybuilder"
)

type guestTableModel struct {
	ID        int64     `db:"id"`
	MatchID   string    `db:"match_id"`
	Name      string    `db:"name"`
	Position  string    `db:"position"`
	Injured   bool      `db:"injured"`
	CreatedAt time.Time `db:"created_at"`
}

type GuestRepository struct {
	db *sqlx.DB
}

func NewGuestRepository(db *sqlx.DB) *GuestRepository {
	return &GuestRepository{db: db}
}

func (r *GuestRepository) ListByMatch(ctx context.Context, matchID string) ([]guest.Guest, error) {
	query, args, err := qb.Select("*").From("guest_players").
		Where(qb.Eq("match_id", matchID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list guests query: %w", err)
	}

	var rows []guestTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list guests: %w", err)
	}

	out := make([]guest.Guest, 0, len(rows))
	for _, row := range rows {
		out = append(out, guest.Guest{
			ID:       row.ID,
			MatchID:  row.MatchID,
			Name:     row.Name,
			Position: player.Position(row.Position),
			Injured:  row.Injured,
		})
	}

	return out, nil
}

func (r *GuestRepository) Create(ctx context.Context, g guest.Guest) (guest.Guest, error) {
	const insertQuery = `
INSERT INTO guest_players (match_id, name, position, injured)
VALUES ($1, $2, $3, $4)
RETURNING id`

	var id int64
	if err := r.db.GetContext(ctx, &id, insertQuery, g.MatchID, g.Name, string(g.Position), g.Injured); err != nil {
		return guest.Guest{}, fmt.Errorf("insert guest: %w", err)
	}
	g.ID = id

	return g, nil
}

func (r *GuestRepository) Delete(ctx context.Context, matchID string, guestID int64) error {
	const deleteQuery = `
DELETE FROM guest_players
WHERE match_id = $1
  AND id = $2`

	if _, err := r.db.ExecContext(ctx, deleteQuery, matchID, guestID); err != nil {
		return fmt.Errorf("delete guest: %w", err)
	}

	return nil
}
