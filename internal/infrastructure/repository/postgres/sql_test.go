package postgres

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestIsNotFound(t *testing.T) {
	t.Run("matches wrapped ErrNoRows", func(t *testing.T) {
		err := fmt.Errorf("get match: %w", sql.ErrNoRows)
		if !isNotFound(err) {
			t.Fatalf("expected true for wrapped sql.ErrNoRows")
		}
	})

	t.Run("ignores unrelated error", func(t *testing.T) {
		if isNotFound(fmt.Errorf("pq: relation matches does not exist")) {
			t.Fatalf("expected false for unrelated error")
		}
	})
}

func TestIsUniqueViolation(t *testing.T) {
	t.Run("matches 23505", func(t *testing.T) {
		err := fmt.Errorf("insert ballot: %w", &pq.Error{Code: "23505"})
		if !isUniqueViolation(err) {
			t.Fatalf("expected true for unique violation")
		}
	})

	t.Run("ignores other pq codes", func(t *testing.T) {
		err := fmt.Errorf("insert ballot: %w", &pq.Error{Code: "23503"})
		if isUniqueViolation(err) {
			t.Fatalf("expected false for foreign key violation")
		}
	})

	t.Run("ignores plain errors", func(t *testing.T) {
		if isUniqueViolation(fmt.Errorf("boom")) {
			t.Fatalf("expected false for non-pq error")
		}
	})
}
