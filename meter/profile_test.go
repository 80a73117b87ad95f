package meter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileFor(t *testing.T) {
	solar, err := ProfileFor(ClassSolar)
	require.NoError(t, err)
	assert.Equal(t, 5.0, solar.BaseOutput)
	assert.Equal(t, 2.0, solar.Variance)
	assert.True(t, solar.IsProducer)
	assert.Equal(t, CarbonGreen, solar.Carbon)
	assert.Equal(t, "SOLAR", solar.Prefix)

	_, err = ProfileFor(Class("WINDMILL"))
	assert.ErrorIs(t, err, ErrInvalidClass)
}

func TestFactorAt(t *testing.T) {
	solar, err := ProfileFor(ClassSolar)
	require.NoError(t, err)
	hostel, err := ProfileFor(ClassHostel)
	require.NoError(t, err)
	lab, err := ProfileFor(ClassLab)
	require.NoError(t, err)

	f, err := solar.FactorAt(12)
	require.NoError(t, err)
	assert.Equal(t, 1.0, f, "Solar peaks at noon")

	f, err = solar.FactorAt(0)
	require.NoError(t, err)
	assert.Zero(t, f, "No solar production at midnight")

	f, err = hostel.FactorAt(0)
	require.NoError(t, err)
	assert.Equal(t, 0.3, f)

	f, err = hostel.FactorAt(19)
	require.NoError(t, err)
	assert.Equal(t, 1.2, f, "Hostel load peaks in the evening")

	f, err = lab.FactorAt(9)
	require.NoError(t, err)
	assert.Equal(t, 1.0, f, "Lab load peaks in working hours")
}

func TestFactorAt_OutOfRange(t *testing.T) {
	solar, err := ProfileFor(ClassSolar)
	require.NoError(t, err)

	for _, hour := range []int{-1, 24, 100} {
		_, err := solar.FactorAt(hour)
		assert.ErrorIs(t, err, ErrInvalidHour, "Out-of-range hours are rejected, not clamped")
	}
}

func TestProfileFactorsNonNegative(t *testing.T) {
	for _, class := range []Class{ClassSolar, ClassHostel, ClassLab} {
		profile, err := ProfileFor(class)
		require.NoError(t, err)
		for hour, factor := range profile.HourlyFactors {
			assert.GreaterOrEqual(t, factor, 0.0, "class %s hour %d", class, hour)
			assert.LessOrEqual(t, factor, 1.2, "class %s hour %d", class, hour)
		}
	}
}
