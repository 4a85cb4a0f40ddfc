package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/matchdayhq/matchday/internal/domain/match"
	qb "github.com/matchdayhq/matchday/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(qb.Eq("id", matchID)).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build get match query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *MatchRepository) ListByTeam(ctx context.Context, teamID string) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(qb.Eq("team_id", teamID)).
		OrderBy("kickoff_at").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *MatchRepository) Create(ctx context.Context, m match.Match) error {
	const insertQuery = `
INSERT INTO matches (id, team_id, opponent, kickoff_at, home, formation_key, scheme_minutes, duration_minutes, status, goals_for, goals_against, payout_done)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	if _, err := r.db.ExecContext(ctx, insertQuery,
		m.ID, m.TeamID, m.Opponent, m.KickoffAt, m.Home, m.FormationKey,
		schemeMinutesArray(m.SchemeMinutes), m.DurationMinutes, string(m.Status),
		m.GoalsFor, m.GoalsAgainst, m.PayoutDone,
	); err != nil {
		return fmt.Errorf("insert match: %w", err)
	}

	return nil
}

func (r *MatchRepository) SetScore(ctx context.Context, matchID string, goalsFor, goalsAgainst int) error {
	const updateQuery = `
UPDATE matches
SET goals_for = $2, goals_against = $3, updated_at = NOW()
WHERE id = $1`

	res, err := r.db.ExecContext(ctx, updateQuery, matchID, goalsFor, goalsAgainst)
	if err != nil {
		return fmt.Errorf("update match score: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read score update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("unknown match: %s", matchID)
	}

	return nil
}

func (r *MatchRepository) MarkFinalized(ctx context.Context, matchID string, at time.Time) (bool, error) {
	const updateQuery = `
UPDATE matches
SET status = $2, finalized_at = $3, updated_at = NOW()
WHERE id = $1
  AND status = $4`

	res, err := r.db.ExecContext(ctx, updateQuery, matchID, string(match.StatusFinalized), at.UTC(), string(match.StatusDraft))
	if err != nil {
		return false, fmt.Errorf("mark match finalized: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("read finalize result: %w", err)
	}

	return affected == 1, nil
}

func (r *MatchRepository) ClaimPayout(ctx context.Context, matchID string) (bool, error) {
	// The conditional write is the whole idempotency guard: only one of
	// any number of racing payout runs sees an affected row.
	const updateQuery = `
UPDATE matches
SET payout_done = TRUE, updated_at = NOW()
WHERE id = $1
  AND payout_done = FALSE`

	res, err := r.db.ExecContext(ctx, updateQuery, matchID)
	if err != nil {
		return false, fmt.Errorf("claim match payout: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("read payout claim result: %w", err)
	}

	return affected == 1, nil
}

func (r *MatchRepository) ListPayoutDue(ctx context.Context, teamID string, closedBefore time.Time, windowDays int) ([]match.Match, error) {
	cutoff := closedBefore.Add(-time.Duration(windowDays) * 24 * time.Hour)

	query, args, err := qb.Select("*").From("matches").
		Where(
			qb.Eq("team_id", teamID),
			qb.Eq("status", string(match.StatusFinalized)),
			qb.Eq("payout_done", false),
			qb.Le("finalized_at", cutoff),
		).
		OrderBy("kickoff_at").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build payout due query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list payout due matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}
