package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScorePressure_TightGapAheadRaisesPressure(t *testing.T) {
	laps := []LapRecord{
		makeLap("AAA", 1, 90.0, 1),
		makeLap("BBB", 1, 90.0, 2),
	}
	telemetry := AggregateTelemetry([]TelemetrySample{
		makeSample("AAA", 1, 300, 5),   // half a car length behind the leader... of traffic
		makeSample("BBB", 1, 300, 800), // open road
	})

	table := ScorePressure(laps, telemetry, DefaultScoringConfig())
	a, ok := table.Lookup("AAA", 1)
	require.True(t, ok)
	b, ok := table.Lookup("BBB", 1)
	require.True(t, ok)
	assert.Greater(t, a, b)
}

func TestScorePressure_GapBehindComesFromFollower(t *testing.T) {
	// BBB runs close behind AAA: AAA's gap-behind is BBB's measured gap
	// ahead, so both cars read elevated pressure versus a lonely CCC.
	laps := []LapRecord{
		makeLap("AAA", 1, 90.0, 1),
		makeLap("BBB", 1, 90.0, 2),
		makeLap("CCC", 1, 90.0, 3),
	}
	telemetry := AggregateTelemetry([]TelemetrySample{
		makeSample("AAA", 1, 300, 900),
		makeSample("BBB", 1, 300, 3),
		makeSample("CCC", 1, 300, 850),
	})

	table := ScorePressure(laps, telemetry, DefaultScoringConfig())
	a, _ := table.Lookup("AAA", 1)
	c, _ := table.Lookup("CCC", 1)
	assert.Greater(t, a, c, "leader defending against a close follower outranks a lonely backmarker's position pressure")
}

func TestScorePressure_WornTyresRaisePressure(t *testing.T) {
	fresh := makeLap("AAA", 1, 90.0, 1)
	fresh.TyreLife = 1
	worn := makeLap("BBB", 1, 90.0, 2)
	worn.TyreLife = 30

	table := ScorePressure([]LapRecord{fresh, worn}, nil, DefaultScoringConfig())
	a, _ := table.Lookup("AAA", 1)
	b, _ := table.Lookup("BBB", 1)
	assert.Greater(t, b, a)
}

func TestScorePressure_ScoresWithinUnitInterval(t *testing.T) {
	laps := []LapRecord{
		makeLap("AAA", 1, 90.0, 1),
		makeLap("AAA", 2, 91.0, 1),
		makeLap("BBB", 1, 92.0, 2),
		makeLap("BBB", 2, 93.0, nan()), // unknown position
	}
	table := ScorePressure(laps, nil, DefaultScoringConfig())
	require.Len(t, table.Rows, 4)
	for _, row := range table.Rows {
		assert.GreaterOrEqual(t, row.Score, 0.0)
		assert.LessOrEqual(t, row.Score, 1.0)
	}
}
