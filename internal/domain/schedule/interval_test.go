package schedule

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	m, err := ParseClock("09:30")
	require.NoError(t, err)
	require.Equal(t, Minute(9*60+30), m)
	require.Equal(t, "09:30", m.String())

	_, err = ParseClock("9:30am")
	require.Error(t, err)

	_, err = ParseClock("25:00")
	require.Error(t, err)
}

func TestNewIntervalRejectsInvertedWindow(t *testing.T) {
	_, err := NewInterval("14:00", "13:00")
	require.Error(t, err)

	// zero-length is also invalid, the window is half-open
	_, err = NewInterval("14:00", "14:00")
	require.Error(t, err)
}

func TestOverlapsIsHalfOpen(t *testing.T) {
	a, err := NewInterval("10:00", "11:00")
	require.NoError(t, err)
	b, err := NewInterval("11:00", "12:00")
	require.NoError(t, err)

	// back-to-back bookings share an endpoint but never conflict
	require.False(t, a.Overlaps(b))
	require.False(t, b.Overlaps(a))

	c, err := NewInterval("10:30", "11:30")
	require.NoError(t, err)
	require.True(t, a.Overlaps(c))
	require.True(t, c.Overlaps(a))
	require.True(t, b.Overlaps(c))
}

func TestContains(t *testing.T) {
	day, _ := NewInterval("09:00", "17:00")
	inner, _ := NewInterval("09:00", "10:00")
	edge, _ := NewInterval("16:00", "17:00")
	outside, _ := NewInterval("16:30", "17:30")

	require.True(t, day.Contains(inner))
	require.True(t, day.Contains(edge))
	require.False(t, day.Contains(outside))
	require.False(t, inner.Contains(day))
}
