package pipeline

import (
	"math"
	"sort"
)

// ScoreConfidence scores how settled each driver looked on each lap:
// sector times close to the driver's own session bests, low rolling lap
// time variability, committed throttle, smooth brake usage, and no pit
// stop disruption.
func ScoreConfidence(laps []LapRecord, telemetry map[LapKey]LapTelemetrySummary, cfg *ScoringConfig) *ScoreTable {
	rows := sortedValidLaps(laps)
	n := len(rows)

	bestSectors := driverBestSectors(rows)

	sectorConsistency := make([]float64, n)
	for i, r := range rows {
		sectorConsistency[i] = sectorConsistencyFor(&r, bestSectors[r.Driver])
	}

	lapTimes := make([]float64, n)
	for i, r := range rows {
		lapTimes[i] = r.LapTime
	}
	lapVariability := groupedRolling(rows, lapTimes, 3)

	brakeVariability := rollingBrakeVariability(telemetry)

	avgThrottle := telemetryColumn(rows, telemetry, func(s *LapTelemetrySummary) float64 { return s.AvgThrottle })
	brakeVar := make([]float64, n)
	for i, r := range rows {
		if v, ok := brakeVariability[LapKey{Driver: r.Driver, Lap: r.Lap}]; ok {
			brakeVar[i] = v
		} else {
			brakeVar[i] = math.NaN()
		}
	}
	fillMean(avgThrottle, 50.0)
	fillMean(brakeVar, defaultVariability)

	w := cfg.Confidence
	raw := make([]float64, n)
	for i, r := range rows {
		lapConsistencyFactor := 1.0 - clamp(lapVariability[i], 0.0, 1.0)
		throttleFactor := clamp(avgThrottle[i]/100.0, 0.0, 1.0)
		brakeSmoothnessFactor := 1.0 - clamp(brakeVar[i], 0.0, 1.0)
		pitFactor := 1.0
		if r.IsPitLap() {
			pitFactor = 0.6
		}

		raw[i] = w.LapConsistency*lapConsistencyFactor + w.SectorConsistency*sectorConsistency[i] +
			w.Throttle*throttleFactor + w.BrakeSmoothness*brakeSmoothnessFactor + w.Pit*pitFactor
	}

	return newScoreTable(DimConfidence, rows, clip01(Normalize(raw)))
}

// driverBestSectors finds each driver's best time per sector across the
// session. A best of exactly zero is treated as missing.
func driverBestSectors(rows []LapRecord) map[string][3]float64 {
	best := make(map[string][3]float64)
	for _, r := range rows {
		b, ok := best[r.Driver]
		if !ok {
			b = [3]float64{math.NaN(), math.NaN(), math.NaN()}
		}
		for k, s := range [3]float64{r.Sector1, r.Sector2, r.Sector3} {
			if math.IsNaN(s) {
				continue
			}
			if math.IsNaN(b[k]) || s < b[k] {
				b[k] = s
			}
		}
		best[r.Driver] = b
	}
	for driver, b := range best {
		for k := range b {
			if b[k] == 0 {
				b[k] = math.NaN()
			}
		}
		best[driver] = b
	}
	return best
}

// sectorConsistencyFor measures how close a lap's sectors sat to the
// driver's bests: per sector 1 - |time - best| / best, with missing or
// non-finite deviations replaced by 0.1, averaged over the three sectors
// and clipped to [0.1, 1.0].
func sectorConsistencyFor(r *LapRecord, best [3]float64) float64 {
	sectors := [3]float64{r.Sector1, r.Sector2, r.Sector3}
	sum := 0.0
	for k := range sectors {
		dev := 1.0 - math.Abs(sectors[k]-best[k])/best[k]
		if math.IsNaN(dev) || math.IsInf(dev, 0) {
			dev = 0.1
		}
		sum += dev
	}
	return clamp(sum/3.0, 0.1, 1.0)
}

// rollingBrakeVariability computes the 3-lap rolling coefficient of
// variation of the brake-on ratio per driver, over every lap present in
// telemetry (not just valid timing laps).
func rollingBrakeVariability(telemetry map[LapKey]LapTelemetrySummary) map[LapKey]float64 {
	keys := make([]LapKey, 0, len(telemetry))
	for k := range telemetry {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Driver != keys[j].Driver {
			return keys[i].Driver < keys[j].Driver
		}
		return keys[i].Lap < keys[j].Lap
	})

	out := make(map[LapKey]float64, len(keys))
	start := 0
	for i := 1; i <= len(keys); i++ {
		if i == len(keys) || keys[i].Driver != keys[start].Driver {
			ratios := make([]float64, i-start)
			for j, k := range keys[start:i] {
				ratios[j] = telemetry[k].BrakeOnRatio
			}
			for j, v := range rollingVariability(ratios, 3) {
				out[keys[start+j]] = v
			}
			start = i
		}
	}
	return out
}
