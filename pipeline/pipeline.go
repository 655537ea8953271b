package pipeline

import (
	"errors"

	"github.com/sirupsen/logrus"
)

// GenerateDataset runs the full scoring pipeline over one session's tables:
// telemetry aggregation, the five emotion scorers, and the lap dataset
// build with its lap-local renormalization. Deterministic: identical inputs
// produce an identical dataset.
func GenerateDataset(data *SessionData, cfg *ScoringConfig) (*Dataset, error) {
	if data == nil || len(data.Laps) == 0 {
		return nil, errors.New("session contains no laps")
	}

	telemetry := AggregateTelemetry(data.Telemetry)
	logrus.Debugf("aggregated telemetry for %d (driver, lap) combinations", len(telemetry))

	scores := map[string]*ScoreTable{
		DimAggressiveness: ScoreAggressiveness(data.Laps, telemetry, cfg),
		DimConfidence:     ScoreConfidence(data.Laps, telemetry, cfg),
		DimFrustration:    ScoreFrustration(data.Laps, data.RaceControl, cfg),
		DimPressure:       ScorePressure(data.Laps, telemetry, cfg),
		DimRiskTaking:     ScoreRiskTaking(data.Laps, telemetry, cfg),
	}
	for _, dim := range EmotionDimensions {
		logrus.Debugf("%s: %d scored laps", dim, len(scores[dim].Rows))
	}

	return BuildLapDataset(data.Laps, scores, cfg), nil
}
