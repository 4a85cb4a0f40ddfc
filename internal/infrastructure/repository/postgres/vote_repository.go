package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/matchdayhq/matchday/internal/domain/player"
	"github.com/matchdayhq/matchday/internal/domain/vote"
	qb "github.com/matchdayhq/matchday/internal/platform/querybuilder"
)

type voteBallotTableModel struct {
	ID              int64     `db:"id"`
	MatchID         string    `db:"match_id"`
	VoterKey        string    `db:"voter_key"`
	CandidateOrigin string    `db:"candidate_origin"`
	CandidateID     int64     `db:"candidate_id"`
	CastAt          time.Time `db:"cast_at"`
}

type VoteRepository struct {
	db *sqlx.DB
}

func NewVoteRepository(db *sqlx.DB) *VoteRepository {
	return &VoteRepository{db: db}
}

func (r *VoteRepository) ListByMatch(ctx context.Context, matchID string) ([]vote.Ballot, error) {
	query, args, err := qb.Select("*").From("vote_ballots").
		Where(qb.Eq("match_id", matchID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list ballots query: %w", err)
	}

	var rows []voteBallotTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list ballots: %w", err)
	}

	out := make([]vote.Ballot, 0, len(rows))
	for _, row := range rows {
		out = append(out, vote.Ballot{
			MatchID:   row.MatchID,
			VoterKey:  row.VoterKey,
			Candidate: player.Ref{Origin: player.Origin(row.CandidateOrigin), ID: row.CandidateID},
			CastAt:    row.CastAt,
		})
	}

	return out, nil
}

func (r *VoteRepository) HasVoted(ctx context.Context, matchID, voterKey string) (bool, error) {
	query, args, err := qb.Select("COUNT(1)").From("vote_ballots").
		Where(
			qb.Eq("match_id", matchID),
			qb.Eq("voter_key", voterKey),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build has voted query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return false, fmt.Errorf("count ballots: %w", err)
	}

	return count > 0, nil
}

func (r *VoteRepository) Create(ctx context.Context, b vote.Ballot) error {
	// The unique index on (match_id, voter_key) is the authoritative
	// one-vote-per-voter guard; the service-level HasVoted check only
	// exists for the friendlier error message.
	const insertQuery = `
INSERT INTO vote_ballots (match_id, voter_key, candidate_origin, candidate_id, cast_at)
VALUES ($1, $2, $3, $4, $5)`

	if _, err := r.db.ExecContext(ctx, insertQuery,
		b.MatchID, b.VoterKey,
		string(b.Candidate.Origin), b.Candidate.ID,
		b.CastAt,
	); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("ballot already cast: match=%s voter=%s", b.MatchID, b.VoterKey)
		}
		return fmt.Errorf("insert ballot: %w", err)
	}

	return nil
}
