package pipeline

import (
	"math"
	"sort"
)

// Compound is an official tyre compound name. Unknown or missing compounds
// are represented by the empty string and fall back to the configured
// default degradation rate and service life.
type Compound string

const (
	CompoundSoft         Compound = "SOFT"
	CompoundMedium       Compound = "MEDIUM"
	CompoundHard         Compound = "HARD"
	CompoundIntermediate Compound = "INTERMEDIATE"
	CompoundWet          Compound = "WET"
)

// LapRecord is one timing row per (driver, lap). Missing numeric fields are
// NaN; a lap counts as valid for scoring only when LapTime is finite and
// strictly positive.
type LapRecord struct {
	Driver   string
	Lap      int
	LapTime  float64 // seconds
	Sector1  float64 // seconds
	Sector2  float64 // seconds
	Sector3  float64 // seconds
	Compound Compound
	TyreLife float64 // laps on the current tyre set
	Position float64 // 1-based running position, NaN when unknown
	PitIn    bool    // pit-in timestamp recorded this lap
	PitOut   bool    // pit-out timestamp recorded this lap
}

// IsPitLap reports whether either pit timestamp was recorded for the lap.
func (r *LapRecord) IsPitLap() bool {
	return r.PitIn || r.PitOut
}

// TelemetrySample is one high-frequency car data row. Scorers never consume
// samples directly; they go through AggregateTelemetry.
type TelemetrySample struct {
	Driver   string
	Lap      int
	Throttle float64 // percent, 0-100
	Brake    bool
	DRS      float64 // activation level, >0 means active
	Speed    float64 // km/h
	RPM      float64
	Distance float64 // metres along the lap
	GapAhead float64 // metres to the car ahead, NaN when unavailable
}

// RaceControlEvent is one officially logged incident message. Lap 0 groups
// messages that carry no lap association.
type RaceControlEvent struct {
	Lap      int
	Category string
	Message  string
}

// SessionData bundles the three source tables for a single session. All
// three are read-only once returned by a SessionProvider.
type SessionData struct {
	Laps        []LapRecord
	Telemetry   []TelemetrySample
	RaceControl []RaceControlEvent
}

// sortedValidLaps returns the laps with a finite, strictly positive lap
// time, ordered by driver then lap number. Every scorer and the dataset
// builder start from this view; the input slice is never modified.
func sortedValidLaps(laps []LapRecord) []LapRecord {
	valid := make([]LapRecord, 0, len(laps))
	for _, r := range laps {
		if !math.IsNaN(r.LapTime) && r.LapTime > 0 {
			valid = append(valid, r)
		}
	}
	sort.SliceStable(valid, func(i, j int) bool {
		if valid[i].Driver != valid[j].Driver {
			return valid[i].Driver < valid[j].Driver
		}
		return valid[i].Lap < valid[j].Lap
	})
	return valid
}

// maxLapNumber returns the highest lap number in the table, floored at 1 so
// it is safe as a divisor.
func maxLapNumber(laps []LapRecord) int {
	max := 1
	for _, r := range laps {
		if r.Lap > max {
			max = r.Lap
		}
	}
	return max
}

// driverCount returns the number of distinct drivers, floored at 1.
func driverCount(laps []LapRecord) int {
	seen := make(map[string]struct{}, 32)
	for _, r := range laps {
		seen[r.Driver] = struct{}{}
	}
	if len(seen) == 0 {
		return 1
	}
	return len(seen)
}
