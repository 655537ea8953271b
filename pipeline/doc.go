// Package pipeline derives five heuristic emotion scores (aggressiveness,
// confidence, frustration, pressure, risk_taking) per driver per lap from
// session timing and telemetry tables, and assembles them into the JSON
// dataset consumed by the visualization front end.
//
// # Reading Guide
//
// Start with these three files to understand the data flow:
//   - session.go: the three source row types and lap filtering
//   - telemetry.go: per-(driver, lap) telemetry aggregation
//   - pipeline.go: GenerateDataset, the end-to-end batch sequence
//
// # Architecture
//
// The pipeline is a single-threaded batch of full-table transforms. Each of
// the five scorers (aggressiveness.go .. risktaking.go) independently
// filters the lap table to valid laps, joins the telemetry aggregates (or
// race control intensities), combines a fixed set of factors under convex
// weights, and min-max normalizes the result session-wide. dataset.go then
// pivots the five score tables per lap and applies a second, lap-local
// renormalization so each lap's drivers span [0, 1].
//
// Missing data never fails a transform: absent telemetry falls back to
// column means or fixed defaults, and rows without a valid lap time are
// silently excluded. The only fatal condition is a session with no laps.
//
// Tunables (weights, physical constants, contenders, colors) live in
// ScoringConfig with YAML overrides; acquisition is abstracted behind the
// SessionProvider interface with a CSV-directory implementation.
package pipeline
