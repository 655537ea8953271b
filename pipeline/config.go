package pipeline

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Emotion dimension names, fixed by the output contract.
const (
	DimAggressiveness = "aggressiveness"
	DimConfidence     = "confidence"
	DimFrustration    = "frustration"
	DimPressure       = "pressure"
	DimRiskTaking     = "risk_taking"
)

// EmotionDimensions lists the five dimensions in output order.
var EmotionDimensions = []string{
	DimAggressiveness,
	DimConfidence,
	DimFrustration,
	DimPressure,
	DimRiskTaking,
}

// weightSumTolerance is the allowed deviation of a weight set from 1.0.
const weightSumTolerance = 1e-6

// AggressivenessWeights are the convex-combination weights for the
// aggressiveness factors. Must sum to 1.0.
type AggressivenessWeights struct {
	Throttle float64 `yaml:"throttle"`
	Tyre     float64 `yaml:"tyre"`
	Time     float64 `yaml:"time"`
	Gap      float64 `yaml:"gap"`
	DRS      float64 `yaml:"drs"`
	Brake    float64 `yaml:"brake"`
	Position float64 `yaml:"position"`
}

func (w AggressivenessWeights) sum() float64 {
	return w.Throttle + w.Tyre + w.Time + w.Gap + w.DRS + w.Brake + w.Position
}

// ConfidenceWeights are the convex-combination weights for the confidence
// factors. Must sum to 1.0.
type ConfidenceWeights struct {
	LapConsistency    float64 `yaml:"lap_consistency"`
	SectorConsistency float64 `yaml:"sector_consistency"`
	Throttle          float64 `yaml:"throttle"`
	BrakeSmoothness   float64 `yaml:"brake_smoothness"`
	Pit               float64 `yaml:"pit"`
}

func (w ConfidenceWeights) sum() float64 {
	return w.LapConsistency + w.SectorConsistency + w.Throttle + w.BrakeSmoothness + w.Pit
}

// FrustrationWeights are the convex-combination weights for the frustration
// components. Must sum to 1.0.
type FrustrationWeights struct {
	Loss          float64 `yaml:"loss"`
	PositionsLost float64 `yaml:"positions_lost"`
	RaceControl   float64 `yaml:"race_control"`
	Pit           float64 `yaml:"pit"`
}

func (w FrustrationWeights) sum() float64 {
	return w.Loss + w.PositionsLost + w.RaceControl + w.Pit
}

// PressureWeights are the convex-combination weights for the pressure
// components. Must sum to 1.0.
type PressureWeights struct {
	GapAhead  float64 `yaml:"gap_ahead"`
	GapBehind float64 `yaml:"gap_behind"`
	TyreWear  float64 `yaml:"tyre_wear"`
	LapPhase  float64 `yaml:"lap_phase"`
	Position  float64 `yaml:"position"`
	Brake     float64 `yaml:"brake"`
}

func (w PressureWeights) sum() float64 {
	return w.GapAhead + w.GapBehind + w.TyreWear + w.LapPhase + w.Position + w.Brake
}

// RiskTakingWeights are the convex-combination weights for the risk-taking
// components. Must sum to 1.0.
type RiskTakingWeights struct {
	Speed           float64 `yaml:"speed"`
	RPM             float64 `yaml:"rpm"`
	DRS             float64 `yaml:"drs"`
	BrakeOff        float64 `yaml:"brake_off"`
	PositionsGained float64 `yaml:"positions_gained"`
	LapPhase        float64 `yaml:"lap_phase"`
}

func (w RiskTakingWeights) sum() float64 {
	return w.Speed + w.RPM + w.DRS + w.BrakeOff + w.PositionsGained + w.LapPhase
}

// PhysicalConstants are the tuning constants behind the scoring formulas.
type PhysicalConstants struct {
	InitialFuelLoad    float64 `yaml:"initial_fuel_load"`     // fuel units at lights out
	FuelPenaltyPerUnit float64 `yaml:"fuel_penalty_per_unit"` // seconds of lap time per remaining fuel unit
	GapDecayScale      float64 `yaml:"gap_decay_scale"`       // metres; e-folding scale of the gap factor
	MaxDRSSamples      float64 `yaml:"max_drs_samples"`       // saturation point of the DRS usage factor

	DegRates       map[string]float64 `yaml:"deg_rates"`        // per-lap lap time penalty by compound
	DefaultDegRate float64            `yaml:"default_deg_rate"` // for unknown compounds

	ExpectedLife        map[string]float64 `yaml:"expected_life"`         // service life in laps by compound
	DefaultExpectedLife float64            `yaml:"default_expected_life"` // for unknown compounds
}

// DegRate returns the per-lap degradation penalty for a compound.
func (c *PhysicalConstants) DegRate(compound Compound) float64 {
	if r, ok := c.DegRates[string(compound)]; ok {
		return r
	}
	return c.DefaultDegRate
}

// ExpectedTyreLife returns the expected service life in laps for a compound.
func (c *PhysicalConstants) ExpectedTyreLife(compound Compound) float64 {
	if l, ok := c.ExpectedLife[string(compound)]; ok {
		return l
	}
	return c.DefaultExpectedLife
}

// ScoringConfig bundles every tunable input of the pipeline: the five
// weight sets, the physical constants, the title-contender list, and the
// display color table. Loadable from YAML via LoadScoringBundle; fields
// absent from the YAML keep their defaults.
type ScoringConfig struct {
	Aggressiveness AggressivenessWeights `yaml:"aggressiveness"`
	Confidence     ConfidenceWeights     `yaml:"confidence"`
	Frustration    FrustrationWeights    `yaml:"frustration"`
	Pressure       PressureWeights       `yaml:"pressure"`
	RiskTaking     RiskTakingWeights     `yaml:"risk_taking"`

	Constants PhysicalConstants `yaml:"constants"`

	// TitleContenders receive the position-aware aggressiveness bonus when
	// running at or above ContenderPositionCutoff. The cutoff is fixed
	// rather than derived from field size; see DESIGN.md.
	TitleContenders         []string `yaml:"title_contenders"`
	ContenderPositionCutoff int      `yaml:"contender_position_cutoff"`

	TeamColors   map[string]string `yaml:"team_colors"` // driver code -> hex RGB
	DefaultColor string            `yaml:"default_color"`
}

// DefaultScoringConfig returns the built-in scoring configuration.
func DefaultScoringConfig() *ScoringConfig {
	return &ScoringConfig{
		Aggressiveness: AggressivenessWeights{
			Throttle: 0.25, Tyre: 0.15, Time: 0.20, Gap: 0.20, DRS: 0.15, Brake: 0.05, Position: 0.15,
		},
		Confidence: ConfidenceWeights{
			LapConsistency: 0.35, SectorConsistency: 0.25, Throttle: 0.20, BrakeSmoothness: 0.15, Pit: 0.05,
		},
		Frustration: FrustrationWeights{
			Loss: 0.55, PositionsLost: 0.25, RaceControl: 0.15, Pit: 0.05,
		},
		Pressure: PressureWeights{
			GapAhead: 0.30, GapBehind: 0.20, TyreWear: 0.20, LapPhase: 0.15, Position: 0.10, Brake: 0.05,
		},
		RiskTaking: RiskTakingWeights{
			Speed: 0.35, RPM: 0.20, DRS: 0.20, BrakeOff: 0.15, PositionsGained: 0.07, LapPhase: 0.03,
		},
		Constants: PhysicalConstants{
			InitialFuelLoad:    110.0,
			FuelPenaltyPerUnit: 0.035,
			GapDecayScale:      10.0,
			MaxDRSSamples:      200.0,
			DegRates: map[string]float64{
				string(CompoundSoft):         0.12,
				string(CompoundMedium):       0.06,
				string(CompoundHard):         0.03,
				string(CompoundIntermediate): 0.09,
				string(CompoundWet):          0.15,
			},
			DefaultDegRate: 0.06,
			ExpectedLife: map[string]float64{
				string(CompoundSoft):         15,
				string(CompoundMedium):       30,
				string(CompoundHard):         45,
				string(CompoundIntermediate): 20,
				string(CompoundWet):          10,
			},
			DefaultExpectedLife: 30,
		},
		TitleContenders:         []string{"VER", "HAM"},
		ContenderPositionCutoff: 5,
		TeamColors: map[string]string{
			"HAM": "#00D2BE", "BOT": "#00D2BE",
			"VER": "#0600EF", "PER": "#0600EF",
			"LEC": "#DC0000", "SAI": "#DC0000",
			"NOR": "#FF8700", "RIC": "#FF8700",
			"ALO": "#0090FF", "OCO": "#0090FF",
			"VET": "#006F62", "STR": "#006F62",
			"GAS": "#2B4562", "TSU": "#2B4562",
			"LAT": "#005AFF", "GIO": "#B12040",
			"MSC": "#FFFFFF",
		},
		DefaultColor: "#808080",
	}
}

// LoadScoringBundle reads a YAML scoring configuration, overlaying it on the
// defaults so partial files only override what they name.
func LoadScoringBundle(path string) (*ScoringConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scoring config: %w", err)
	}
	cfg := DefaultScoringConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing scoring config: %w", err)
	}
	return cfg, nil
}

// Validate checks that every weight set sums to 1.0 within tolerance and
// that the physical constants are usable.
func (c *ScoringConfig) Validate() error {
	sums := []struct {
		name string
		sum  float64
	}{
		{DimAggressiveness, c.Aggressiveness.sum()},
		{DimConfidence, c.Confidence.sum()},
		{DimFrustration, c.Frustration.sum()},
		{DimPressure, c.Pressure.sum()},
		{DimRiskTaking, c.RiskTaking.sum()},
	}
	for _, s := range sums {
		if math.Abs(s.sum-1.0) > weightSumTolerance {
			return fmt.Errorf("%s weights sum to %.6f, want 1.0", s.name, s.sum)
		}
	}
	if c.Constants.InitialFuelLoad <= 0 {
		return fmt.Errorf("initial_fuel_load must be positive, got %v", c.Constants.InitialFuelLoad)
	}
	if c.Constants.GapDecayScale <= 0 {
		return fmt.Errorf("gap_decay_scale must be positive, got %v", c.Constants.GapDecayScale)
	}
	if c.Constants.MaxDRSSamples <= 0 {
		return fmt.Errorf("max_drs_samples must be positive, got %v", c.Constants.MaxDRSSamples)
	}
	if c.Constants.DefaultExpectedLife <= 0 {
		return fmt.Errorf("default_expected_life must be positive, got %v", c.Constants.DefaultExpectedLife)
	}
	for compound, life := range c.Constants.ExpectedLife {
		if life <= 0 {
			return fmt.Errorf("expected_life for %s must be positive, got %v", compound, life)
		}
	}
	if c.ContenderPositionCutoff < 1 {
		return fmt.Errorf("contender_position_cutoff must be at least 1, got %d", c.ContenderPositionCutoff)
	}
	return nil
}

// IsContender reports whether a driver receives the position-aware
// aggressiveness bonus.
func (c *ScoringConfig) IsContender(driver string) bool {
	for _, d := range c.TitleContenders {
		if d == driver {
			return true
		}
	}
	return false
}

// Color returns the display color for a driver, or the neutral default for
// drivers absent from the table.
func (c *ScoringConfig) Color(driver string) string {
	if color, ok := c.TeamColors[driver]; ok {
		return color
	}
	return c.DefaultColor
}
