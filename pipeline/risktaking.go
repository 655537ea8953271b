package pipeline

import "math"

// ScoreRiskTaking scores how much each driver left on the table each lap:
// outright top speed, sustained engine load, DRS exposure, time spent off
// the brakes, positions won since the previous lap, and the late phase of
// the race.
func ScoreRiskTaking(laps []LapRecord, telemetry map[LapKey]LapTelemetrySummary, cfg *ScoringConfig) *ScoreTable {
	rows := sortedValidLaps(laps)
	n := len(rows)

	maxLap := float64(maxLapNumber(rows))

	positionsGained := positionDeltas(rows)
	for i, d := range positionsGained {
		if gained := -d; gained > 0 {
			positionsGained[i] = gained
		} else {
			positionsGained[i] = 0
		}
	}

	maxSpeed := telemetryColumn(rows, telemetry, func(s *LapTelemetrySummary) float64 { return s.MaxSpeed })
	avgRPM := telemetryColumn(rows, telemetry, func(s *LapTelemetrySummary) float64 { return s.AvgRPM })
	drsFraction := telemetryColumn(rows, telemetry, func(s *LapTelemetrySummary) float64 { return s.DRSFraction })
	brakeRatio := telemetryColumn(rows, telemetry, func(s *LapTelemetrySummary) float64 { return s.BrakeOnRatio })
	fillMean(maxSpeed, math.NaN())
	fillMean(avgRPM, math.NaN())
	fillConst(drsFraction, 0.0)
	fillConst(brakeRatio, 0.5)

	brakeOff := make([]float64, n)
	phase := make([]float64, n)
	for i, r := range rows {
		brakeOff[i] = 1.0 - brakeRatio[i]
		phase[i] = float64(r.Lap) / maxLap
	}

	speedC := Normalize(maxSpeed)
	rpmC := Normalize(avgRPM)
	drsC := Normalize(drsFraction)
	brakeOffC := Normalize(brakeOff)
	gainC := Normalize(positionsGained)
	phaseC := Normalize(phase)

	w := cfg.RiskTaking
	raw := make([]float64, n)
	for i := range rows {
		raw[i] = w.Speed*speedC[i] + w.RPM*rpmC[i] + w.DRS*drsC[i] +
			w.BrakeOff*brakeOffC[i] + w.PositionsGained*gainC[i] + w.LapPhase*phaseC[i]
	}

	return newScoreTable(DimRiskTaking, rows, clip01(Normalize(raw)))
}
