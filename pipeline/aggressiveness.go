package pipeline

import "math"

// ScoreAggressiveness scores how hard each driver pushed on each lap.
//
// Lap times are first corrected for fuel load (a linear burn from the
// configured initial load down to zero over the race distance) and tyre
// degradation (compound rate times tyre age), then normalized against the
// session's best corrected time. The corrected pace combines with throttle
// usage, remaining tyre life, proximity to the car ahead, DRS usage, brake
// discipline, and a position bonus for title contenders running inside the
// cutoff.
func ScoreAggressiveness(laps []LapRecord, telemetry map[LapKey]LapTelemetrySummary, cfg *ScoringConfig) *ScoreTable {
	// Race length and field size come from the unfiltered table so invalid
	// laps still count toward the race distance.
	totalRaceLaps := maxLapNumber(laps)
	totalDrivers := driverCount(laps)

	rows := sortedValidLaps(laps)
	n := len(rows)

	corrected := make([]float64, n)
	for i, r := range rows {
		remainingFuel := cfg.Constants.InitialFuelLoad - float64(r.Lap)*(cfg.Constants.InitialFuelLoad/float64(totalRaceLaps))
		fuelPenalty := cfg.Constants.FuelPenaltyPerUnit * remainingFuel
		degPenalty := cfg.Constants.DegRate(r.Compound) * orZero(r.TyreLife)
		corrected[i] = r.LapTime - fuelPenalty - degPenalty
	}
	best := sessionBestCorrected(corrected)

	avgThrottle := telemetryColumn(rows, telemetry, func(s *LapTelemetrySummary) float64 { return s.AvgThrottle })
	brakeRatio := telemetryColumn(rows, telemetry, func(s *LapTelemetrySummary) float64 { return s.BrakeOnRatio })
	drsCount := telemetryColumn(rows, telemetry, func(s *LapTelemetrySummary) float64 { return s.DRSCount })
	gapAhead := telemetryColumn(rows, telemetry, func(s *LapTelemetrySummary) float64 { return s.AvgGapAhead })
	fillMean(avgThrottle, 50.0)
	fillMean(brakeRatio, 0.1)
	fillConst(drsCount, 0.0)
	fillConst(gapAhead, openRoadGap)

	w := cfg.Aggressiveness
	raw := make([]float64, n)
	for i, r := range rows {
		throttleFactor := clamp(avgThrottle[i], 0.0, 100.0) / 100.0

		tyreFactor := 1.0 - orZero(r.TyreLife)/cfg.Constants.ExpectedTyreLife(r.Compound)
		if tyreFactor < 0.1 {
			tyreFactor = 0.1
		}

		timeFactor := 1.0
		if normalized := corrected[i] / best; normalized != 0 && !math.IsNaN(normalized) {
			timeFactor = 1.0 / normalized
		}

		gapFactor := math.Exp(-gapAhead[i] / cfg.Constants.GapDecayScale)

		drsFactor := 2.0*drsCount[i]/cfg.Constants.MaxDRSSamples + 0.3
		if drsFactor > 1.0 {
			drsFactor = 1.0
		}

		brakeFactor := 1.0 - clamp(brakeRatio[i], 0.0, 1.0)

		positionFactor := 0.8
		if cfg.IsContender(r.Driver) && !math.IsNaN(r.Position) && r.Position <= float64(cfg.ContenderPositionCutoff) {
			positionFactor = 1.2 - r.Position/float64(totalDrivers)
		}

		raw[i] = w.Throttle*throttleFactor + w.Tyre*tyreFactor + w.Time*timeFactor +
			w.Gap*gapFactor + w.DRS*drsFactor + w.Brake*brakeFactor + w.Position*positionFactor
	}

	return newScoreTable(DimAggressiveness, rows, clip01(Normalize(raw)))
}

// sessionBestCorrected picks the reference corrected time: the session
// minimum, falling back to the minimum over non-zero values when that is
// non-positive, and finally to 1.0 so the time factor stays defined.
func sessionBestCorrected(corrected []float64) float64 {
	best := nanMin(corrected)
	if math.IsNaN(best) || best <= 0 {
		best = math.NaN()
		for _, v := range corrected {
			if v == 0 || math.IsNaN(v) {
				continue
			}
			if math.IsNaN(best) || v < best {
				best = v
			}
		}
	}
	if math.IsNaN(best) || best <= 0 {
		best = 1.0
	}
	return best
}
