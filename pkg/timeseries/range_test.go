package timeseries

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doodlesbykumbi/hydra-in-go/pkg/fault"
)

func TestTimesMinutes(t *testing.T) {
	start := time.Date(2000, time.July, 10, 0, 0, 0, 0, time.UTC)
	times, err := Times(start, start.Add(75*time.Minute), UnitMinutes, 1, 1000)
	require.NoError(t, err)
	assert.Len(t, times, 76)
	assert.Equal(t, start, times[0])
	assert.Equal(t, start.Add(75*time.Minute), times[75])
}

func TestTimesMonthsStayOnCalendar(t *testing.T) {
	start := time.Date(2000, time.January, 31, 0, 0, 0, 0, time.UTC)
	times, err := Times(start, start.AddDate(0, 3, 0), UnitMonths, 1, 100)
	require.NoError(t, err)
	require.Len(t, times, 4)
	assert.Equal(t, time.Date(2000, time.May, 1, 0, 0, 0, 0, time.UTC), times[3])
}

func TestTimesValidation(t *testing.T) {
	start := time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

	_, err := Times(start, start.Add(time.Hour), UnitMinutes, 0, 100)
	assert.True(t, fault.IsValidation(err))

	_, err = Times(start, start.Add(time.Hour), UnitSeconds, 1, 100)
	assert.True(t, fault.IsValidation(err), "more than max timesteps")

	times, err := Times(start, start.Add(-time.Hour), UnitMinutes, 1, 100)
	require.NoError(t, err)
	assert.Empty(t, times)
}

func TestOffsets(t *testing.T) {
	offsets, err := Offsets(0, 5, 0.5, 100)
	require.NoError(t, err)
	assert.Len(t, offsets, 11)
	assert.Equal(t, 5.0, offsets[10])

	_, err = Offsets(0, 5, 0, 100)
	assert.True(t, fault.IsValidation(err))
}

func TestUnitString(t *testing.T) {
	u, err := UnitString("Minutes")
	require.NoError(t, err)
	assert.Equal(t, UnitMinutes, u)
	assert.Equal(t, "weeks", UnitWeeks.String())

	_, err = UnitString("fortnights")
	assert.Error(t, err)
}
