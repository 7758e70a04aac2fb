package memory

import (
	"context"
	"sort"
	"time"

	"github.com/cmlabs-hris/employee-management-go/internal/domain/attendance"
	"github.com/cmlabs-hris/employee-management-go/internal/domain/breaks"
)

type attendanceRepository struct {
	s *Store
}

func (r *attendanceRepository) Create(ctx context.Context, employeeID string, clockIn time.Time) (attendance.Session, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.sessions {
		if existing.EmployeeID == employeeID && existing.IsOpen() {
			return attendance.Session{}, attendance.ErrAlreadyClockedIn
		}
	}

	session := attendance.Session{
		ID:         newID(),
		EmployeeID: employeeID,
		ClockIn:    clockIn,
		CreatedAt:  r.s.Now(),
	}
	r.s.sessions[session.ID] = session
	return session, nil
}

func (r *attendanceRepository) GetOpenSession(ctx context.Context, employeeID string) (attendance.Session, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, session := range r.s.sessions {
		if session.EmployeeID == employeeID && session.IsOpen() {
			return session, nil
		}
	}
	return attendance.Session{}, attendance.ErrNoActiveSession
}

func (r *attendanceRepository) Close(ctx context.Context, id string, clockOut time.Time, totalHours float64) (attendance.Session, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	session, ok := r.s.sessions[id]
	if !ok || !session.IsOpen() {
		return attendance.Session{}, attendance.ErrNoActiveSession
	}
	session.ClockOut = &clockOut
	session.TotalHours = &totalHours
	r.s.sessions[id] = session
	return session, nil
}

// sessions returns the employee's sessions newest first. An empty employeeID matches all.
func (r *attendanceRepository) sessions(employeeID string, match func(attendance.Session) bool) []attendance.Session {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make([]attendance.Session, 0)
	for _, session := range r.s.sessions {
		if (employeeID == "" || session.EmployeeID == employeeID) && match(session) {
			result = append(result, session)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ClockIn.After(result[j].ClockIn) })
	return result
}

func (r *attendanceRepository) GetLatestStartedBetween(ctx context.Context, employeeID string, from, to time.Time) (*attendance.Session, error) {
	found := r.sessions(employeeID, func(s attendance.Session) bool {
		return !s.ClockIn.Before(from) && s.ClockIn.Before(to)
	})
	if len(found) == 0 {
		return nil, nil
	}
	return &found[0], nil
}

func (r *attendanceRepository) ListByEmployee(ctx context.Context, employeeID string, limit int) ([]attendance.Session, error) {
	found := r.sessions(employeeID, func(attendance.Session) bool { return true })
	if limit > 0 && len(found) > limit {
		found = found[:limit]
	}
	return found, nil
}

func (r *attendanceRepository) ListOpenStartedBefore(ctx context.Context, before time.Time) ([]attendance.Session, error) {
	found := r.sessions("", func(s attendance.Session) bool {
		return s.IsOpen() && s.ClockIn.Before(before)
	})
	sort.Slice(found, func(i, j int) bool { return found[i].ClockIn.Before(found[j].ClockIn) })
	return found, nil
}

type breakRepository struct {
	s *Store
}

func (r *breakRepository) Create(ctx context.Context, employeeID string, attendanceID string, start time.Time) (breaks.Break, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.breaks {
		if existing.EmployeeID == employeeID && existing.IsOpen() {
			return breaks.Break{}, breaks.ErrBreakInProgress
		}
	}

	b := breaks.Break{
		ID:           newID(),
		EmployeeID:   employeeID,
		AttendanceID: attendanceID,
		BreakStart:   start,
	}
	r.s.breaks[b.ID] = b
	return b, nil
}

func (r *breakRepository) GetOpen(ctx context.Context, employeeID string) (breaks.Break, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, b := range r.s.breaks {
		if b.EmployeeID == employeeID && b.IsOpen() {
			return b, nil
		}
	}
	return breaks.Break{}, breaks.ErrNoActiveBreak
}

func (r *breakRepository) Close(ctx context.Context, id string, end time.Time, durationMinutes float64) (breaks.Break, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.breaks[id]
	if !ok || !b.IsOpen() {
		return breaks.Break{}, breaks.ErrNoActiveBreak
	}
	b.BreakEnd = &end
	b.DurationMinutes = &durationMinutes
	r.s.breaks[id] = b
	return b, nil
}

func (r *breakRepository) ListByEmployee(ctx context.Context, employeeID string, limit int) ([]breaks.Break, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make([]breaks.Break, 0)
	for _, b := range r.s.breaks {
		if b.EmployeeID == employeeID {
			result = append(result, b)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].BreakStart.After(result[j].BreakStart) })
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}
