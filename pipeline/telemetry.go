package pipeline

import "math"

// LapKey identifies one (driver, lap) combination across all per-lap tables.
type LapKey struct {
	Driver string
	Lap    int
}

// LapTelemetrySummary is the grouped reduction of one lap's telemetry
// samples. Scorers join these onto the lap table; a (driver, lap) with no
// samples has no summary and takes the scorer's documented fallbacks instead.
type LapTelemetrySummary struct {
	Driver       string
	Lap          int
	AvgThrottle  float64 // mean throttle percentage, NaN if never reported
	BrakeOnRatio float64 // fraction of samples with the brake applied
	DRSCount     float64 // number of samples with DRS active
	DRSFraction  float64 // fraction of samples with DRS active
	AvgGapAhead  float64 // mean distance to the car ahead, metres
	MaxSpeed     float64 // km/h, NaN if never reported
	AvgRPM       float64 // NaN if never reported
	MaxDistance  float64 // metres covered, NaN if never reported
}

// openRoadGap is the sentinel gap for a lap with no distance-to-car-ahead
// data: far enough that every gap-derived factor reads as "clear track".
const openRoadGap = 1000.0

type telemetryAccumulator struct {
	samples     int
	throttleSum float64
	throttleN   int
	brakeOn     int
	drsActive   int
	gapSum      float64
	gapN        int
	maxSpeed    float64
	rpmSum      float64
	rpmN        int
	maxDistance float64
}

// AggregateTelemetry reduces raw samples into one LapTelemetrySummary per
// (driver, lap) present in the input. Purely functional: the input is not
// modified and no summary row is invented for absent combinations.
func AggregateTelemetry(samples []TelemetrySample) map[LapKey]LapTelemetrySummary {
	accs := make(map[LapKey]*telemetryAccumulator)
	for _, s := range samples {
		key := LapKey{Driver: s.Driver, Lap: s.Lap}
		acc, ok := accs[key]
		if !ok {
			acc = &telemetryAccumulator{maxSpeed: math.NaN(), maxDistance: math.NaN()}
			accs[key] = acc
		}
		acc.samples++
		if !math.IsNaN(s.Throttle) {
			acc.throttleSum += s.Throttle
			acc.throttleN++
		}
		if s.Brake {
			acc.brakeOn++
		}
		if s.DRS > 0 {
			acc.drsActive++
		}
		if !math.IsNaN(s.GapAhead) {
			acc.gapSum += s.GapAhead
			acc.gapN++
		}
		if !math.IsNaN(s.Speed) && (math.IsNaN(acc.maxSpeed) || s.Speed > acc.maxSpeed) {
			acc.maxSpeed = s.Speed
		}
		if !math.IsNaN(s.RPM) {
			acc.rpmSum += s.RPM
			acc.rpmN++
		}
		if !math.IsNaN(s.Distance) && (math.IsNaN(acc.maxDistance) || s.Distance > acc.maxDistance) {
			acc.maxDistance = s.Distance
		}
	}

	summaries := make(map[LapKey]LapTelemetrySummary, len(accs))
	for key, acc := range accs {
		summary := LapTelemetrySummary{
			Driver:       key.Driver,
			Lap:          key.Lap,
			AvgThrottle:  ratioOrNaN(acc.throttleSum, acc.throttleN),
			BrakeOnRatio: float64(acc.brakeOn) / float64(acc.samples),
			DRSCount:     float64(acc.drsActive),
			DRSFraction:  float64(acc.drsActive) / float64(acc.samples),
			AvgGapAhead:  ratioOrNaN(acc.gapSum, acc.gapN),
			MaxSpeed:     acc.maxSpeed,
			AvgRPM:       ratioOrNaN(acc.rpmSum, acc.rpmN),
			MaxDistance:  acc.maxDistance,
		}
		// A lap that never saw the car ahead reads as open road.
		if math.IsNaN(summary.AvgGapAhead) {
			summary.AvgGapAhead = openRoadGap
		}
		summaries[key] = summary
	}
	return summaries
}

func ratioOrNaN(sum float64, n int) float64 {
	if n == 0 {
		return math.NaN()
	}
	return sum / float64(n)
}
