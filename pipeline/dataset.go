package pipeline

import (
	"math"
	"sort"

	"github.com/sirupsen/logrus"
)

// lapRangeFloor keeps the per-lap rescale denominator away from zero when
// every driver in a lap shares the same underlying value.
const lapRangeFloor = 1e-6

// DriverEntry is one driver's row within a lap of the output dataset.
type DriverEntry struct {
	Driver   string             `json:"driver"`
	Position int                `json:"position"`
	Color    string             `json:"color"`
	Emotions map[string]float64 `json:"emotions"`
}

// LapEntry holds one lap's drivers, ordered by ascending running position,
// with lap-locally renormalized emotion values.
type LapEntry struct {
	Lap     int           `json:"lap"`
	Drivers []DriverEntry `json:"drivers"`
}

// Dataset is the terminal output artifact. AvailableLaps is the sorted key
// set of LapData: exactly the laps with at least one valid driver entry.
type Dataset struct {
	AvailableLaps []int            `json:"available_laps"`
	LapData       map[int]LapEntry `json:"lap_data"`
}

// BuildLapDataset pivots the five score tables into per-lap driver lists.
// Only laps with at least one driver in a valid running position appear;
// drivers are ordered by position and every emotion dimension is rescaled
// to that lap's own [0, 1] range. A driver with no score for a dimension
// lands on the neutral midpoint 0.5.
func BuildLapDataset(laps []LapRecord, scores map[string]*ScoreTable, cfg *ScoringConfig) *Dataset {
	rows := sortedValidLaps(laps)

	byLap := make(map[int][]LapRecord)
	for _, r := range rows {
		byLap[r.Lap] = append(byLap[r.Lap], r)
	}
	lapNumbers := make([]int, 0, len(byLap))
	for lap := range byLap {
		lapNumbers = append(lapNumbers, lap)
	}
	sort.Ints(lapNumbers)

	dataset := &Dataset{
		AvailableLaps: make([]int, 0, len(lapNumbers)),
		LapData:       make(map[int]LapEntry, len(lapNumbers)),
	}

	for _, lap := range lapNumbers {
		active := make([]LapRecord, 0, len(byLap[lap]))
		for _, r := range byLap[lap] {
			if !math.IsNaN(r.Position) && r.Position > 0 {
				active = append(active, r)
			}
		}
		if len(active) == 0 {
			logrus.Debugf("lap %d has no drivers in a valid running position; omitted", lap)
			continue
		}
		sort.SliceStable(active, func(i, j int) bool {
			return active[i].Position < active[j].Position
		})

		entries := make([]DriverEntry, 0, len(active))
		for _, r := range active {
			emotions := make(map[string]float64, len(EmotionDimensions))
			for _, dim := range EmotionDimensions {
				value := math.NaN()
				if table, ok := scores[dim]; ok {
					if score, found := table.Lookup(r.Driver, lap); found {
						value = score
					}
				}
				emotions[dim] = value
			}
			entries = append(entries, DriverEntry{
				Driver:   r.Driver,
				Position: int(r.Position),
				Color:    cfg.Color(r.Driver),
				Emotions: emotions,
			})
		}

		renormalizeLapEmotions(entries)
		dataset.LapData[lap] = LapEntry{Lap: lap, Drivers: entries}
		dataset.AvailableLaps = append(dataset.AvailableLaps, lap)
	}

	return dataset
}

// renormalizeLapEmotions rescales each emotion dimension to the lap's own
// [0, 1] range. This lap-local pass is layered on top of each scorer's
// session-wide normalization: session-wide keeps magnitudes comparable
// across laps, lap-local makes the same lap's drivers comparable.
//
// Degenerate cases: a driver with no value for a dimension resolves to
// exactly 0.5; a lone defined value maps to 1.0; several drivers sharing an
// identical value all map to 0.5.
func renormalizeLapEmotions(entries []DriverEntry) {
	for _, dim := range EmotionDimensions {
		min, max := math.Inf(1), math.Inf(-1)
		defined := 0
		for i := range entries {
			v := entries[i].Emotions[dim]
			if math.IsNaN(v) {
				continue
			}
			defined++
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
		degenerate := defined > 0 && max-min < lapRangeFloor
		span := math.Max(max-min, lapRangeFloor)
		for i := range entries {
			v := entries[i].Emotions[dim]
			switch {
			case math.IsNaN(v):
				entries[i].Emotions[dim] = 0.5
			case degenerate && defined == 1:
				entries[i].Emotions[dim] = 1.0
			case degenerate:
				entries[i].Emotions[dim] = 0.5
			default:
				entries[i].Emotions[dim] = clamp((v-min)/span, 0.0, 1.0)
			}
		}
	}
}
