package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scoreTableOf builds a score table directly for builder tests.
func scoreTableOf(dimension string, rows map[LapKey]float64) *ScoreTable {
	t := &ScoreTable{Dimension: dimension, index: rows}
	for k, v := range rows {
		t.Rows = append(t.Rows, ScoreRow{Driver: k.Driver, Lap: k.Lap, Score: v})
	}
	return t
}

func onlyAggressiveness(rows map[LapKey]float64) map[string]*ScoreTable {
	return map[string]*ScoreTable{DimAggressiveness: scoreTableOf(DimAggressiveness, rows)}
}

func TestBuildLapDataset_LapLocalRenormalization(t *testing.T) {
	laps := []LapRecord{
		makeLap("AAA", 5, 90.0, 1),
		makeLap("BBB", 5, 91.0, 2),
	}
	scores := onlyAggressiveness(map[LapKey]float64{
		{Driver: "AAA", Lap: 5}: 0.80,
		{Driver: "BBB", Lap: 5}: 0.40,
	})

	dataset := BuildLapDataset(laps, scores, DefaultScoringConfig())
	entry, ok := dataset.LapData[5]
	require.True(t, ok)
	require.Len(t, entry.Drivers, 2)

	// Session-wide 0.80/0.40 rescale to exactly 1.0/0.0 within the lap.
	assert.Equal(t, 1.0, entry.Drivers[0].Emotions[DimAggressiveness])
	assert.Equal(t, 0.0, entry.Drivers[1].Emotions[DimAggressiveness])
}

func TestBuildLapDataset_MissingDimensionDefaultsToMidpoint(t *testing.T) {
	laps := []LapRecord{
		makeLap("AAA", 1, 90.0, 1),
		makeLap("BBB", 1, 91.0, 2),
	}
	scores := onlyAggressiveness(map[LapKey]float64{
		{Driver: "AAA", Lap: 1}: 0.7,
		{Driver: "BBB", Lap: 1}: 0.2,
	})

	dataset := BuildLapDataset(laps, scores, DefaultScoringConfig())
	for _, driver := range dataset.LapData[1].Drivers {
		// No confidence table was supplied at all.
		assert.Equal(t, 0.5, driver.Emotions[DimConfidence])
	}
}

func TestBuildLapDataset_IdenticalValuesCollapseToMidpoint(t *testing.T) {
	laps := []LapRecord{
		makeLap("AAA", 1, 90.0, 1),
		makeLap("BBB", 1, 91.0, 2),
	}
	scores := onlyAggressiveness(map[LapKey]float64{
		{Driver: "AAA", Lap: 1}: 0.6,
		{Driver: "BBB", Lap: 1}: 0.6,
	})

	dataset := BuildLapDataset(laps, scores, DefaultScoringConfig())
	for _, driver := range dataset.LapData[1].Drivers {
		assert.Equal(t, 0.5, driver.Emotions[DimAggressiveness])
	}
}

func TestBuildLapDataset_LoneDriverWithValueGetsOne(t *testing.T) {
	laps := []LapRecord{makeLap("AAA", 1, 90.0, 1)}
	scores := onlyAggressiveness(map[LapKey]float64{
		{Driver: "AAA", Lap: 1}: 0.37,
	})

	dataset := BuildLapDataset(laps, scores, DefaultScoringConfig())
	driver := dataset.LapData[1].Drivers[0]
	assert.Equal(t, 1.0, driver.Emotions[DimAggressiveness])
	// The other four dimensions are undefined for this driver.
	assert.Equal(t, 0.5, driver.Emotions[DimPressure])
}

func TestBuildLapDataset_DriversOrderedByPosition(t *testing.T) {
	laps := []LapRecord{
		makeLap("CCC", 1, 92.0, 3),
		makeLap("AAA", 1, 90.0, 1),
		makeLap("BBB", 1, 91.0, 2),
	}
	dataset := BuildLapDataset(laps, map[string]*ScoreTable{}, DefaultScoringConfig())

	entry := dataset.LapData[1]
	require.Len(t, entry.Drivers, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{
		entry.Drivers[0].Position, entry.Drivers[1].Position, entry.Drivers[2].Position,
	})
	assert.Equal(t, "AAA", entry.Drivers[0].Driver)
}

func TestBuildLapDataset_LapsWithoutPositionedDriversOmitted(t *testing.T) {
	noPosition := makeLap("AAA", 2, 90.0, nan())
	laps := []LapRecord{
		makeLap("AAA", 1, 90.0, 1),
		noPosition,
	}
	dataset := BuildLapDataset(laps, map[string]*ScoreTable{}, DefaultScoringConfig())

	assert.Equal(t, []int{1}, dataset.AvailableLaps)
	_, ok := dataset.LapData[2]
	assert.False(t, ok)
}

func TestBuildLapDataset_InvalidLapTimeExcludesLapEntirely(t *testing.T) {
	// The only positioned driver on lap 10 has a zero lap time, so lap 10
	// must not appear at all.
	zeroTime := makeLap("AAA", 10, 0, 1)
	laps := []LapRecord{
		makeLap("AAA", 9, 90.0, 1),
		zeroTime,
	}
	dataset := BuildLapDataset(laps, map[string]*ScoreTable{}, DefaultScoringConfig())

	assert.Equal(t, []int{9}, dataset.AvailableLaps)
	_, ok := dataset.LapData[10]
	assert.False(t, ok)
}

func TestBuildLapDataset_ColorsAssigned(t *testing.T) {
	laps := []LapRecord{
		makeLap("VER", 1, 90.0, 1),
		makeLap("ZZZ", 1, 91.0, 2),
	}
	dataset := BuildLapDataset(laps, map[string]*ScoreTable{}, DefaultScoringConfig())

	entry := dataset.LapData[1]
	assert.Equal(t, "#0600EF", entry.Drivers[0].Color)
	assert.Equal(t, "#808080", entry.Drivers[1].Color)
}

func TestBuildLapDataset_AvailableLapsSortedAndMatchKeys(t *testing.T) {
	laps := []LapRecord{
		makeLap("AAA", 3, 90.0, 1),
		makeLap("AAA", 1, 90.0, 1),
		makeLap("AAA", 2, 90.0, 1),
	}
	dataset := BuildLapDataset(laps, map[string]*ScoreTable{}, DefaultScoringConfig())

	assert.Equal(t, []int{1, 2, 3}, dataset.AvailableLaps)
	assert.Len(t, dataset.LapData, 3)
	for _, lap := range dataset.AvailableLaps {
		_, ok := dataset.LapData[lap]
		assert.True(t, ok)
	}
}
