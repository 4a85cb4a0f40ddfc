package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/matchdayhq/matchday/internal/domain/attendance"
	qb "github.com/matchdayhq/matchday/internal/platform/querybuilder"
)

type absenceTableModel struct {
	MatchID  string `db:"match_id"`
	MemberID int64  `db:"member_id"`
	Note     string `db:"note"`
}

type AttendanceRepository struct {
	db *sqlx.DB
}

func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

func (r *AttendanceRepository) ListByMatch(ctx context.Context, matchID string) ([]attendance.Absence, error) {
	query, args, err := qb.Select("match_id", "member_id", "note").
		From("match_absences").
		Where(qb.Eq("match_id", matchID)).
		OrderBy("member_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list absences query: %w", err)
	}

	var rows []absenceTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list absences: %w", err)
	}

	out := make([]attendance.Absence, 0, len(rows))
	for _, row := range rows {
		out = append(out, attendance.Absence{MatchID: row.MatchID, MemberID: row.MemberID, Note: row.Note})
	}

	return out, nil
}

func (r *AttendanceRepository) ReplaceForMatch(ctx context.Context, matchID string, absences []attendance.Absence) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for absence replace: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const deleteQuery = `DELETE FROM match_absences WHERE match_id = $1`
	if _, err := tx.ExecContext(ctx, deleteQuery, matchID); err != nil {
		return fmt.Errorf("clear absences: %w", err)
	}

	const insertQuery = `
INSERT INTO match_absences (match_id, member_id, note)
VALUES ($1, $2, $3)`
	for _, a := range absences {
		if _, err := tx.ExecContext(ctx, insertQuery, matchID, a.MemberID, a.Note); err != nil {
			return fmt.Errorf("insert absence member=%d: %w", a.MemberID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit absence replace: %w", err)
	}

	return nil
}
