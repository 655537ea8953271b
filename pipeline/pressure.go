package pipeline

import (
	"math"

	"github.com/sirupsen/logrus"
)

// ScorePressure scores how boxed-in each driver was on each lap: tight gaps
// to the cars ahead and behind, worn tyres, a poor running position, the
// late phase of the race, and heavy braking.
//
// The gap to the car behind is derived by inverting the "ahead" relation:
// the follower at position P+1 measured its gap to this car, so that gap is
// re-joined on (lap, position). A position with no follower row on the lap
// falls back to the open-road sentinel.
func ScorePressure(laps []LapRecord, telemetry map[LapKey]LapTelemetrySummary, cfg *ScoringConfig) *ScoreTable {
	rows := sortedValidLaps(laps)
	n := len(rows)

	totalDrivers := float64(driverCount(rows))
	maxLap := float64(maxLapNumber(rows))

	brakeRatio := telemetryColumn(rows, telemetry, func(s *LapTelemetrySummary) float64 { return s.BrakeOnRatio })
	gapAhead := telemetryColumn(rows, telemetry, func(s *LapTelemetrySummary) float64 { return s.AvgGapAhead })
	fillConst(brakeRatio, 0.1)
	fillConst(gapAhead, openRoadGap)

	gapBehind := deriveGapBehind(rows, telemetry)

	tyreLife := make([]float64, n)
	for i, r := range rows {
		tyreLife[i] = orZero(r.TyreLife)
	}
	tyreMax := math.Max(1.0, nanMax(tyreLife))

	gapAheadC := make([]float64, n)
	gapBehindC := make([]float64, n)
	tyreC := make([]float64, n)
	positionC := make([]float64, n)
	phaseC := make([]float64, n)
	brakeC := make([]float64, n)
	for i, r := range rows {
		gapAheadC[i] = 1.0 / (1.0 + gapAhead[i])
		gapBehindC[i] = 1.0 / (1.0 + gapBehind[i])
		tyreC[i] = tyreLife[i] / tyreMax
		position := r.Position
		if math.IsNaN(position) {
			position = totalDrivers
		}
		// Cars further back read more pressure.
		positionC[i] = position / totalDrivers
		phaseC[i] = float64(r.Lap) / maxLap
		brakeC[i] = clamp(brakeRatio[i], 0.0, 1.0)
	}

	gapAheadC = Normalize(gapAheadC)
	gapBehindC = Normalize(gapBehindC)
	tyreC = Normalize(tyreC)
	positionC = Normalize(positionC)
	phaseC = Normalize(phaseC)
	brakeC = Normalize(brakeC)

	w := cfg.Pressure
	raw := make([]float64, n)
	for i := range rows {
		raw[i] = w.GapAhead*gapAheadC[i] + w.GapBehind*gapBehindC[i] + w.TyreWear*tyreC[i] +
			w.LapPhase*phaseC[i] + w.Position*positionC[i] + w.Brake*brakeC[i]
	}

	return newScoreTable(DimPressure, rows, clip01(Normalize(raw)))
}

// deriveGapBehind inverts the gap-ahead relation: for each positioned row,
// the car one position further back on the same lap measured its gap to
// this car. Laps with no follower row, or followers with no gap telemetry,
// fall back to the open-road sentinel.
func deriveGapBehind(rows []LapRecord, telemetry map[LapKey]LapTelemetrySummary) []float64 {
	type lapPosition struct {
		lap      int
		position int
	}
	followerGap := make(map[lapPosition]float64, len(rows))
	for _, r := range rows {
		if math.IsNaN(r.Position) || r.Position < 2 {
			continue
		}
		key := lapPosition{lap: r.Lap, position: int(r.Position) - 1}
		if _, exists := followerGap[key]; exists {
			// Duplicate position on the same lap; first row in (driver,
			// lap) order wins.
			logrus.Debugf("duplicate follower at lap %d position %d (driver %s)", r.Lap, key.position, r.Driver)
			continue
		}
		gap := math.NaN()
		if s, ok := telemetry[LapKey{Driver: r.Driver, Lap: r.Lap}]; ok {
			gap = s.AvgGapAhead
		}
		followerGap[key] = gap
	}

	out := make([]float64, len(rows))
	for i, r := range rows {
		gap := math.NaN()
		if !math.IsNaN(r.Position) {
			if g, ok := followerGap[lapPosition{lap: r.Lap, position: int(r.Position)}]; ok {
				gap = g
			}
		}
		if math.IsNaN(gap) {
			gap = openRoadGap
		}
		out[i] = gap
	}
	return out
}
