package pipeline

// LapEventIntensity reduces race control messages to a per-lap intensity:
// the message count for the lap divided by the maximum count over all laps.
// Messages without a lap association are grouped under lap 0 and so never
// reach a scored lap, but they still participate in the maximum. An empty
// event table yields an empty map, which downstream reads as all-zero.
func LapEventIntensity(events []RaceControlEvent) map[int]float64 {
	counts := make(map[int]int)
	for _, e := range events {
		counts[e.Lap]++
	}
	max := 0
	for _, n := range counts {
		if n > max {
			max = n
		}
	}
	if max == 0 {
		return map[int]float64{}
	}
	intensity := make(map[int]float64, len(counts))
	for lap, n := range counts {
		intensity[lap] = float64(n) / float64(max)
	}
	return intensity
}
