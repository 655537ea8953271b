package pipeline

import "math"

// makeLap builds a minimal valid lap row for scorer tests.
func makeLap(driver string, lap int, lapTime float64, position float64) LapRecord {
	return LapRecord{
		Driver:   driver,
		Lap:      lap,
		LapTime:  lapTime,
		Sector1:  lapTime * 0.3,
		Sector2:  lapTime * 0.4,
		Sector3:  lapTime * 0.3,
		Compound: CompoundMedium,
		TyreLife: float64(lap),
		Position: position,
	}
}

// makeSample builds one telemetry sample with sane mid-range values.
func makeSample(driver string, lap int, speed float64, gapAhead float64) TelemetrySample {
	return TelemetrySample{
		Driver:   driver,
		Lap:      lap,
		Throttle: 60,
		Brake:    false,
		DRS:      0,
		Speed:    speed,
		RPM:      11000,
		Distance: 5000,
		GapAhead: gapAhead,
	}
}

func nan() float64 { return math.NaN() }
