package breaks

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/employee-management-go/internal/domain/breaks"
	"github.com/cmlabs-hris/employee-management-go/internal/pkg/apperr"
	"github.com/cmlabs-hris/employee-management-go/internal/repository/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const employeeID = "7f1c2e34-5a6b-4c7d-8e9f-0a1b2c3d4e5f"

func newTestService(t *testing.T) (*BreakServiceImpl, *memory.Store, *memory.Clock) {
	t.Helper()

	store := memory.NewStore()
	clock := memory.NewClock(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	store.Now = clock.Now

	svc := &BreakServiceImpl{
		tx:                   store.Transactor(),
		BreakRepository:      store.Breaks(),
		AttendanceRepository: store.Attendance(),
		now:                  clock.Now,
	}
	return svc, store, clock
}

func TestBreakService_StartBreak_NotClockedIn(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.StartBreak(context.Background(), employeeID)
	assert.ErrorIs(t, err, breaks.ErrNotClockedIn)

	kind, ok := apperr.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, apperr.KindPrecondition, kind)
}

func TestBreakService_StartAndEnd(t *testing.T) {
	svc, store, clock := newTestService(t)
	ctx := context.Background()

	session, err := store.Attendance().Create(ctx, employeeID, clock.Now())
	require.NoError(t, err)

	clock.Advance(3 * time.Hour)
	started, err := svc.StartBreak(ctx, employeeID)
	require.NoError(t, err)
	assert.Equal(t, session.ID, started.AttendanceID)
	assert.Nil(t, started.BreakEnd)

	_, err = svc.StartBreak(ctx, employeeID)
	assert.ErrorIs(t, err, breaks.ErrBreakInProgress)

	clock.Advance(15*time.Minute + 30*time.Second)
	ended, err := svc.EndBreak(ctx, employeeID)
	require.NoError(t, err)
	require.NotNil(t, ended.DurationMinutes)
	assert.InDelta(t, 15.5, *ended.DurationMinutes, 0.001)

	_, err = svc.EndBreak(ctx, employeeID)
	assert.ErrorIs(t, err, breaks.ErrNoActiveBreak)
}

func TestBreakService_History(t *testing.T) {
	svc, store, clock := newTestService(t)
	ctx := context.Background()

	_, err := store.Attendance().Create(ctx, employeeID, clock.Now())
	require.NoError(t, err)

	for i := 0; i < 12; i++ {
		_, err := svc.StartBreak(ctx, employeeID)
		require.NoError(t, err)
		clock.Advance(5 * time.Minute)
		_, err = svc.EndBreak(ctx, employeeID)
		require.NoError(t, err)
		clock.Advance(5 * time.Minute)
	}

	history, err := svc.History(ctx, employeeID, 0)
	require.NoError(t, err)
	assert.Len(t, history, breaks.DefaultHistoryLimit)
}
