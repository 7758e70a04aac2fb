package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorIs(t *testing.T) {
	sentinel := Conflict("AlreadyClockedIn", "already clocked in")

	wrapped := fmt.Errorf("clock in: %w", sentinel)
	assert.ErrorIs(t, wrapped, sentinel)

	copyErr := &Error{Kind: KindConflict, Code: "AlreadyClockedIn", Message: "different text"}
	assert.ErrorIs(t, copyErr, sentinel)

	other := Conflict("BreakInProgress", "break in progress")
	assert.NotErrorIs(t, wrapped, other)
}

func TestKindOf(t *testing.T) {
	kind, ok := KindOf(fmt.Errorf("wrap: %w", NotFound("TaskNotFound", "task not found")))
	require.True(t, ok)
	assert.Equal(t, KindNotFound, kind)

	_, ok = KindOf(errors.New("plain"))
	assert.False(t, ok)
}

func TestDependencyUnwraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := Dependency(cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "data store unavailable: connection refused", err.Error())

	appErr, ok := As(fmt.Errorf("x: %w", err))
	require.True(t, ok)
	assert.Equal(t, KindDependency, appErr.Kind)
}
