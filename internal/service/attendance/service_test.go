package attendance

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/employee-management-go/internal/domain/attendance"
	"github.com/cmlabs-hris/employee-management-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const employeeID = "7f1c2e34-5a6b-4c7d-8e9f-0a1b2c3d4e5f"

var morning = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (*AttendanceServiceImpl, *memory.Store, *memory.Clock) {
	t.Helper()

	store := memory.NewStore()
	clock := memory.NewClock(morning)
	store.Now = clock.Now

	svc := &AttendanceServiceImpl{
		tx:                   store.Transactor(),
		AttendanceRepository: store.Attendance(),
		BreakRepository:      store.Breaks(),
		loc:                  time.UTC,
		now:                  clock.Now,
	}
	return svc, store, clock
}

func TestAttendanceService_ClockInClockOut(t *testing.T) {
	svc, _, clock := newTestService(t)
	ctx := context.Background()

	in, err := svc.ClockIn(ctx, employeeID)
	require.NoError(t, err)
	assert.True(t, in.IsOpen)
	assert.Equal(t, morning, in.ClockIn)

	clock.Advance(8*time.Hour + 30*time.Minute)

	out, err := svc.ClockOut(ctx, employeeID)
	require.NoError(t, err)
	assert.False(t, out.IsOpen)
	require.NotNil(t, out.TotalHours)
	assert.InDelta(t, 8.5, *out.TotalHours, 0.01)
	assert.False(t, out.BreakClosed)
}

func TestAttendanceService_ClockIn_AlreadyClockedIn(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.ClockIn(ctx, employeeID)
	require.NoError(t, err)

	_, err = svc.ClockIn(ctx, employeeID)
	assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)
}

func TestAttendanceService_ClockOut_NoActiveSession(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.ClockOut(context.Background(), employeeID)
	assert.ErrorIs(t, err, attendance.ErrNoActiveSession)
}

func TestAttendanceService_ClockIn_Concurrent(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	const attempts = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.ClockIn(ctx, employeeID); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			} else {
				assert.ErrorIs(t, err, attendance.ErrAlreadyClockedIn)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)

	sessions, err := store.Attendance().ListByEmployee(ctx, employeeID, 0)
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
}

func TestAttendanceService_ClockOut_ClosesOpenBreak(t *testing.T) {
	svc, store, clock := newTestService(t)
	ctx := context.Background()

	in, err := svc.ClockIn(ctx, employeeID)
	require.NoError(t, err)

	clock.Advance(2 * time.Hour)
	_, err = store.Breaks().Create(ctx, employeeID, in.ID, clock.Now())
	require.NoError(t, err)

	clock.Advance(20 * time.Minute)
	out, err := svc.ClockOut(ctx, employeeID)
	require.NoError(t, err)
	assert.True(t, out.BreakClosed)

	history, err := store.Breaks().ListByEmployee(ctx, employeeID, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.NotNil(t, history[0].BreakEnd)
	assert.Equal(t, *out.ClockOut, *history[0].BreakEnd)
	assert.InDelta(t, 20.0, *history[0].DurationMinutes, 0.001)
}

func TestAttendanceService_GetToday(t *testing.T) {
	svc, _, clock := newTestService(t)
	ctx := context.Background()

	today, err := svc.GetToday(ctx, employeeID)
	require.NoError(t, err)
	assert.Nil(t, today)

	_, err = svc.ClockIn(ctx, employeeID)
	require.NoError(t, err)

	today, err = svc.GetToday(ctx, employeeID)
	require.NoError(t, err)
	require.NotNil(t, today)
	assert.True(t, today.IsOpen)

	clock.Advance(24 * time.Hour)
	today, err = svc.GetToday(ctx, employeeID)
	require.NoError(t, err)
	assert.Nil(t, today)
}

func TestAttendanceService_History(t *testing.T) {
	svc, _, clock := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.ClockIn(ctx, employeeID)
		require.NoError(t, err)
		clock.Advance(time.Hour)
		_, err = svc.ClockOut(ctx, employeeID)
		require.NoError(t, err)
		clock.Advance(time.Hour)
	}

	history, err := svc.History(ctx, employeeID, 2)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.True(t, history[0].ClockIn.After(history[1].ClockIn))
}

func TestAttendanceService_CloseStaleSessions(t *testing.T) {
	svc, store, clock := newTestService(t)
	ctx := context.Background()

	in, err := svc.ClockIn(ctx, employeeID)
	require.NoError(t, err)

	clock.Advance(15 * time.Hour)
	_, err = store.Breaks().Create(ctx, employeeID, in.ID, clock.Now())
	require.NoError(t, err)

	clock.Advance(5 * time.Hour)

	closed, err := svc.CloseStaleSessions(ctx, 16*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, closed)

	sessions, err := store.Attendance().ListByEmployee(ctx, employeeID, 1)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	require.NotNil(t, sessions[0].ClockOut)
	assert.Equal(t, morning.Add(16*time.Hour), *sessions[0].ClockOut)
	assert.InDelta(t, 16.0, *sessions[0].TotalHours, 0.001)

	_, err = store.Breaks().GetOpen(ctx, employeeID)
	assert.Error(t, err)

	closed, err = svc.CloseStaleSessions(ctx, 16*time.Hour)
	require.NoError(t, err)
	assert.Zero(t, closed)
}
