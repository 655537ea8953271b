package pipeline

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// SessionConfig identifies one session to load.
type SessionConfig struct {
	Year    int
	Event   string // Grand Prix name, e.g. "Abu Dhabi"
	Session string // session identifier, e.g. "R", "Q", "FP1"
}

// SessionProvider supplies the three source tables for a session. The
// pipeline treats acquisition as a black box; the only contract is that a
// session with zero laps is an error, not an empty table.
type SessionProvider interface {
	LoadSession(cfg SessionConfig) (*SessionData, error)
}

// CSVProvider loads session tables from a local directory of CSV files,
// one subdirectory per session: <data-dir>/<year>_<event>_<session>/ with
// laps.csv, telemetry.csv, and race_control.csv inside. telemetry.csv and
// race_control.csv may be absent (sparse timing data is expected);
// laps.csv is required.
type CSVProvider struct {
	DataDir string
}

// NewCSVProvider returns a provider rooted at dataDir.
func NewCSVProvider(dataDir string) *CSVProvider {
	return &CSVProvider{DataDir: dataDir}
}

// SessionDir returns the directory holding one session's table files.
// Spaces in the event name become underscores.
func (p *CSVProvider) SessionDir(cfg SessionConfig) string {
	event := strings.ReplaceAll(cfg.Event, " ", "_")
	return filepath.Join(p.DataDir, fmt.Sprintf("%d_%s_%s", cfg.Year, event, cfg.Session))
}

// LoadSession reads the session tables. The data directory is created if
// absent (the cache precondition), unreadable or header-less files are
// errors, and malformed data rows are skipped at debug level. A session
// yielding zero lap rows is a fatal acquisition failure.
func (p *CSVProvider) LoadSession(cfg SessionConfig) (*SessionData, error) {
	if err := os.MkdirAll(p.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	dir := p.SessionDir(cfg)

	laps, err := loadLapTable(filepath.Join(dir, "laps.csv"))
	if err != nil {
		return nil, err
	}
	if len(laps) == 0 {
		return nil, fmt.Errorf("session %d %s (%s) returned no laps; check event/session parameters",
			cfg.Year, cfg.Event, cfg.Session)
	}

	telemetry, err := loadTelemetryTable(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		return nil, err
	}
	raceControl, err := loadRaceControlTable(filepath.Join(dir, "race_control.csv"))
	if err != nil {
		return nil, err
	}

	logrus.Infof("Loaded %d laps, %d telemetry samples, %d race control messages",
		len(laps), len(telemetry), len(raceControl))
	return &SessionData{Laps: laps, Telemetry: telemetry, RaceControl: raceControl}, nil
}

// columnIndex maps a CSV header row to column positions.
type columnIndex map[string]int

func (c columnIndex) value(row []string, name string) string {
	i, ok := c[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// floatOrNaN parses a cell into a float64, mapping blanks and garbage to NaN.
func (c columnIndex) floatOrNaN(row []string, name string) float64 {
	cell := c.value(row, name)
	if cell == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}

// boolCell parses a cell as a boolean. Accepts true/false in any case and
// numeric forms; blanks and garbage read as false.
func (c columnIndex) boolCell(row []string, name string) bool {
	cell := strings.ToLower(c.value(row, name))
	switch cell {
	case "", "0", "0.0", "false":
		return false
	case "true":
		return true
	}
	if v, err := strconv.ParseFloat(cell, 64); err == nil {
		return v != 0
	}
	return false
}

// openTable opens a CSV file and reads its header row.
func openTable(path string, required []string) (*csv.Reader, columnIndex, *os.File, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opening %s: %w", filepath.Base(path), err)
	}
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		_ = file.Close()
		return nil, nil, nil, fmt.Errorf("reading %s header: %w", filepath.Base(path), err)
	}
	index := make(columnIndex, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range required {
		if _, ok := index[name]; !ok {
			_ = file.Close()
			return nil, nil, nil, fmt.Errorf("%s is missing required column %q", filepath.Base(path), name)
		}
	}
	return reader, index, file, nil
}

func loadLapTable(path string) ([]LapRecord, error) {
	reader, cols, file, err := openTable(path, []string{"driver", "lap"})
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	var laps []LapRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			logrus.Debugf("skipping malformed lap row: %v", err)
			continue
		}
		driver := cols.value(row, "driver")
		lap, lapErr := strconv.Atoi(cols.value(row, "lap"))
		if driver == "" || lapErr != nil || lap < 1 {
			logrus.Debugf("skipping lap row with invalid key: driver=%q lap=%q", driver, cols.value(row, "lap"))
			continue
		}
		laps = append(laps, LapRecord{
			Driver:   driver,
			Lap:      lap,
			LapTime:  cols.floatOrNaN(row, "lap_time"),
			Sector1:  cols.floatOrNaN(row, "sector1_time"),
			Sector2:  cols.floatOrNaN(row, "sector2_time"),
			Sector3:  cols.floatOrNaN(row, "sector3_time"),
			Compound: Compound(strings.ToUpper(cols.value(row, "compound"))),
			TyreLife: cols.floatOrNaN(row, "tyre_life"),
			Position: cols.floatOrNaN(row, "position"),
			PitIn:    cols.value(row, "pit_in_time") != "",
			PitOut:   cols.value(row, "pit_out_time") != "",
		})
	}
	return laps, nil
}

func loadTelemetryTable(path string) ([]TelemetrySample, error) {
	reader, cols, file, err := openTable(path, []string{"driver", "lap"})
	if errors.Is(err, fs.ErrNotExist) {
		logrus.Warnf("no telemetry table at %s; scoring from timing data only", path)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	var samples []TelemetrySample
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			logrus.Debugf("skipping malformed telemetry row: %v", err)
			continue
		}
		driver := cols.value(row, "driver")
		lap, lapErr := strconv.Atoi(cols.value(row, "lap"))
		if driver == "" || lapErr != nil || lap < 1 {
			logrus.Debugf("skipping telemetry row with invalid key: driver=%q lap=%q", driver, cols.value(row, "lap"))
			continue
		}
		samples = append(samples, TelemetrySample{
			Driver:   driver,
			Lap:      lap,
			Throttle: cols.floatOrNaN(row, "throttle"),
			Brake:    cols.boolCell(row, "brake"),
			DRS:      cols.floatOrNaN(row, "drs"),
			Speed:    cols.floatOrNaN(row, "speed"),
			RPM:      cols.floatOrNaN(row, "rpm"),
			Distance: cols.floatOrNaN(row, "distance"),
			GapAhead: cols.floatOrNaN(row, "distance_to_driver_ahead"),
		})
	}
	return samples, nil
}

func loadRaceControlTable(path string) ([]RaceControlEvent, error) {
	reader, cols, file, err := openTable(path, nil)
	if errors.Is(err, fs.ErrNotExist) {
		logrus.Debugf("no race control table at %s", path)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	var events []RaceControlEvent
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			logrus.Debugf("skipping malformed race control row: %v", err)
			continue
		}
		// A missing or unparseable lap groups under lap 0.
		lap, _ := strconv.Atoi(cols.value(row, "lap"))
		if lap < 0 {
			lap = 0
		}
		events = append(events, RaceControlEvent{
			Lap:      lap,
			Category: cols.value(row, "category"),
			Message:  cols.value(row, "message"),
		})
	}
	return events, nil
}
