package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProductivityScore(t *testing.T) {
	tests := []struct {
		hours float64
		tasks int
		want  int
	}{
		{0, 0, 0},
		{8, 0, 80},
		{6.25, 1, 78},
		{4.04, 2, 70},
		{9, 3, 100},
		{12, 0, 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ProductivityScore(tt.hours, tt.tasks), "hours=%v tasks=%d", tt.hours, tt.tasks)
	}
}

func TestCalendarDate(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*3600)

	late := time.Date(2025, 3, 10, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC), CalendarDate(late, jakarta))
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), CalendarDate(late, time.UTC))
}

func TestDayBounds(t *testing.T) {
	jakarta := time.FixedZone("WIB", 7*3600)

	from, to := DayBounds(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), jakarta)
	assert.Equal(t, time.Date(2025, 3, 9, 17, 0, 0, 0, time.UTC), from.UTC())
	assert.Equal(t, 24*time.Hour, to.Sub(from))
}
