package pipeline

import "math"

// ScoreFrustration scores how badly each lap went for its driver: time
// lost against the driver's own best lap, positions dropped since the
// previous lap, the density of race control incidents on that lap, and
// the disruption of a pit stop.
func ScoreFrustration(laps []LapRecord, events []RaceControlEvent, cfg *ScoringConfig) *ScoreTable {
	rows := sortedValidLaps(laps)
	n := len(rows)

	driverBest := make(map[string]float64)
	for _, r := range rows {
		if best, ok := driverBest[r.Driver]; !ok || r.LapTime < best {
			driverBest[r.Driver] = r.LapTime
		}
	}

	relativeLoss := make([]float64, n)
	for i, r := range rows {
		best := driverBest[r.Driver]
		loss := (r.LapTime - best) / best
		if math.IsNaN(loss) || loss < 0 {
			loss = 0
		}
		relativeLoss[i] = loss
	}

	positionsLost := positionDeltas(rows)
	for i, d := range positionsLost {
		if d < 0 {
			positionsLost[i] = 0
		}
	}

	intensity := LapEventIntensity(events)
	raceControl := make([]float64, n)
	for i, r := range rows {
		raceControl[i] = intensity[r.Lap]
	}

	lossComponent := Normalize(relativeLoss)
	positionComponent := Normalize(positionsLost)
	raceControlComponent := Normalize(raceControl)

	w := cfg.Frustration
	raw := make([]float64, n)
	for i, r := range rows {
		pitFlag := 0.0
		if r.IsPitLap() {
			pitFlag = 1.0
		}
		raw[i] = w.Loss*lossComponent[i] + w.PositionsLost*positionComponent[i] +
			w.RaceControl*raceControlComponent[i] + w.Pit*pitFlag
	}

	return newScoreTable(DimFrustration, rows, clip01(Normalize(raw)))
}
