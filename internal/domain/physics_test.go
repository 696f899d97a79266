package domain

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoughnessLength(t *testing.T) {
	t.Run("matches the log-profile formula", func(t *testing.T) {
		// z1=2, z2=10, k=0.4, U1=5, U2=7, u*=0.3
		expected := (10.0 - 2.0) / (math.Exp(0.4*7/0.3) - math.Exp(0.4*5/0.3))
		assert.InEpsilon(t, expected, RoughnessLength(5, 7, 0.3), 1e-12)
	})

	t.Run("equal wind speeds give an infinite result, unguarded", func(t *testing.T) {
		assert.True(t, math.IsInf(RoughnessLength(5, 5, 0.3), 1))
	})

	t.Run("zero friction velocity gives NaN, unguarded", func(t *testing.T) {
		assert.True(t, math.IsNaN(RoughnessLength(5, 7, 0)))
	})
}

func TestHeatCapacity(t *testing.T) {
	t.Run("known value", func(t *testing.T) {
		expected := 2054.0 + 3.340e5*0.054*5.77/(253.15*253.15)
		assert.InEpsilon(t, expected, HeatCapacity(5.77, 253.15), 1e-12)
	})

	t.Run("fresh ice has no brine correction", func(t *testing.T) {
		assert.Equal(t, FreshIceHeatCapacity, HeatCapacity(0, 260))
	})

	t.Run("decreases as temperature magnitude grows", func(t *testing.T) {
		s := 5.0
		c250 := HeatCapacity(s, 250)
		c260 := HeatCapacity(s, 260)
		c270 := HeatCapacity(s, 270)
		assert.Greater(t, c250, c260)
		assert.Greater(t, c260, c270)
	})

	t.Run("increases with salinity", func(t *testing.T) {
		assert.Greater(t, HeatCapacity(6, 260), HeatCapacity(2, 260))
	})
}

func TestVolumetricHeatCapacity(t *testing.T) {
	assert.InEpsilon(t, 2.7e6, VolumetricHeatCapacity(3000, 900), 1e-12)
}

func TestHeatCapacityCorrectionSeries(t *testing.T) {
	var surft Series
	surft.Append(at(time.January, 15), -20.0)
	surft.Append(at(time.February, 1), math.NaN()) // dropped, no valid temperature
	surft.Append(at(time.May, 15), -5.0)

	out := HeatCapacityCorrectionSeries(surft, 5.5)
	require.Equal(t, 2, out.Len())

	expectedWinter := HeatCapacityCorrection(5.5, -20+KelvinOffset)
	assert.InEpsilon(t, expectedWinter, out.Samples[0].Values[0], 1e-12)
	assert.True(t, out.Samples[0].Values[0] > out.Samples[1].Values[0],
		"correction term should shrink as the surface warms toward summer")
}
