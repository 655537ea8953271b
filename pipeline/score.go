package pipeline

import "math"

// ScoreRow is one emitted (driver, lap) score for a single emotion dimension.
type ScoreRow struct {
	Driver string
	Lap    int
	Score  float64
}

// ScoreTable holds one emotion dimension's scores, keyed by (driver, lap)
// and ordered by driver then lap. Immutable once emitted by its scorer.
type ScoreTable struct {
	Dimension string
	Rows      []ScoreRow
	index     map[LapKey]float64
}

// newScoreTable pairs the filtered lap rows with their computed scores.
// laps must already be in (driver, lap) order.
func newScoreTable(dimension string, laps []LapRecord, scores []float64) *ScoreTable {
	t := &ScoreTable{
		Dimension: dimension,
		Rows:      make([]ScoreRow, 0, len(laps)),
		index:     make(map[LapKey]float64, len(laps)),
	}
	for i, r := range laps {
		t.Rows = append(t.Rows, ScoreRow{Driver: r.Driver, Lap: r.Lap, Score: scores[i]})
		t.index[LapKey{Driver: r.Driver, Lap: r.Lap}] = scores[i]
	}
	return t
}

// Lookup returns the score for a (driver, lap), if one was emitted.
func (t *ScoreTable) Lookup(driver string, lap int) (float64, bool) {
	score, ok := t.index[LapKey{Driver: driver, Lap: lap}]
	return score, ok
}

// telemetryColumn extracts one summary field for each lap row, NaN where the
// (driver, lap) has no telemetry summary. Callers apply the column's
// documented fallback afterwards.
func telemetryColumn(laps []LapRecord, telemetry map[LapKey]LapTelemetrySummary, field func(*LapTelemetrySummary) float64) []float64 {
	out := make([]float64, len(laps))
	for i, r := range laps {
		if s, ok := telemetry[LapKey{Driver: r.Driver, Lap: r.Lap}]; ok {
			out[i] = field(&s)
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}

// positionDeltas computes the per-driver lap-to-lap change in running
// position over rows already sorted by (driver, lap). The first lap of each
// driver, and any lap where either position is unknown, yields 0.
func positionDeltas(rows []LapRecord) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		if i == 0 || rows[i-1].Driver != r.Driver {
			continue
		}
		prev := rows[i-1].Position
		if math.IsNaN(prev) || math.IsNaN(r.Position) {
			continue
		}
		out[i] = r.Position - prev
	}
	return out
}

// groupedRolling applies rollingVariability within each driver's contiguous
// run of rows. values and rows are parallel and sorted by (driver, lap).
func groupedRolling(rows []LapRecord, values []float64, window int) []float64 {
	out := make([]float64, len(values))
	start := 0
	for i := 1; i <= len(rows); i++ {
		if i == len(rows) || rows[i].Driver != rows[start].Driver {
			copy(out[start:i], rollingVariability(values[start:i], window))
			start = i
		}
	}
	return out
}
