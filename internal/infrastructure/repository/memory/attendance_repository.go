package memory

import (
	"context"
	"sync"

	"github.com/matchdayhq/matchday/internal/domain/attendance"
)

type AttendanceRepository struct {
	mu      sync.RWMutex
	byMatch map[string][]attendance.Absence
}

func NewAttendanceRepository() *AttendanceRepository {
	return &AttendanceRepository{byMatch: make(map[string][]attendance.Absence)}
}

func (r *AttendanceRepository) ListByMatch(_ context.Context, matchID string) ([]attendance.Absence, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]attendance.Absence(nil), r.byMatch[matchID]...), nil
}

func (r *AttendanceRepository) ReplaceForMatch(_ context.Context, matchID string, absences []attendance.Absence) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byMatch[matchID] = append([]attendance.Absence(nil), absences...)
	return nil
}
