// Package synth is the synthesis engine: it builds the shared identifier
// pools, the sensor and actuator tables, and the per-device reading, command,
// diagnostic and control-loop streams, forwarding every record to a tabular
// sink. All randomness flows through one seeded source, so a fixed seed and
// fixed parameters reproduce the exact same tables.
package synth

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"plantgen/internal/model"
	"plantgen/internal/refpool"
	"plantgen/internal/sink"
)

// Params are the run parameters supplied by the configuration front-end.
type Params struct {
	Sensors             int
	Actuators           int
	ReadingsPerSensor   int
	CommandsPerActuator int
	Loops               int
	// DiagnosticsPerDevice is the number of diagnostic samples per device
	// across the diagnostics window.
	DiagnosticsPerDevice int

	// WindowStart/WindowEnd bound readings and commands. The diagnostics
	// window is typically longer.
	WindowStart      time.Time
	WindowEnd        time.Time
	DiagnosticsStart time.Time
	DiagnosticsEnd   time.Time

	Seed int64
}

// Validate rejects parameter sets that would produce empty or mismatched
// tables. It runs before any record is written.
func (p Params) Validate() error {
	counts := []struct {
		name string
		v    int
	}{
		{"sensors", p.Sensors},
		{"actuators", p.Actuators},
		{"readings_per_sensor", p.ReadingsPerSensor},
		{"commands_per_actuator", p.CommandsPerActuator},
		{"loops", p.Loops},
		{"diagnostics_per_device", p.DiagnosticsPerDevice},
	}
	for _, c := range counts {
		if c.v <= 0 {
			return fmt.Errorf("synth: %s must be positive, got %d", c.name, c.v)
		}
	}
	if !p.WindowStart.Before(p.WindowEnd) {
		return fmt.Errorf("synth: window start %s is not before end %s", p.WindowStart, p.WindowEnd)
	}
	if !p.DiagnosticsStart.Before(p.DiagnosticsEnd) {
		return fmt.Errorf("synth: diagnostics window start %s is not before end %s", p.DiagnosticsStart, p.DiagnosticsEnd)
	}
	return nil
}

// Summary reports what one run produced.
type Summary struct {
	Seed             int64          `json:"seed"`
	WindowStart      time.Time      `json:"window_start"`
	WindowEnd        time.Time      `json:"window_end"`
	DiagnosticsStart time.Time      `json:"diagnostics_start"`
	DiagnosticsEnd   time.Time      `json:"diagnostics_end"`
	Counts           map[string]int `json:"record_counts"`
	Elapsed          string         `json:"elapsed"`
}

// Generator owns the identifier pools, the retained device tables and the
// seeded RNG for one run. Construct with New, run with Run; a Generator is
// single-use and not safe for concurrent use.
type Generator struct {
	params Params
	rng    *rand.Rand
	pool   *refpool.Pool
	out    sink.Sink
	log    zerolog.Logger

	// Device tables are the only data retained for the whole run; every
	// downstream generator reads them, none mutates them.
	sensors   []model.Sensor
	actuators []model.Actuator

	counts map[string]int
}

// New validates params, seeds the RNG, and builds the shared reference pools.
func New(params Params, out sink.Sink, log zerolog.Logger) (*Generator, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	rng := rand.New(rand.NewSource(params.Seed))
	return &Generator{
		params: params,
		rng:    rng,
		pool:   refpool.New(rng),
		out:    out,
		log:    log,
		counts: make(map[string]int),
	}, nil
}

// Pool exposes the run's reference pools.
func (g *Generator) Pool() *refpool.Pool { return g.pool }

// Sensors returns the retained sensor table. Valid after GenerateSensors.
func (g *Generator) Sensors() []model.Sensor { return g.sensors }

// Actuators returns the retained actuator table. Valid after
// GenerateActuators.
func (g *Generator) Actuators() []model.Actuator { return g.actuators }

// Run executes the full synthesis in dependency order: devices first, then
// the event streams and the stages that consume both device tables.
func (g *Generator) Run() (Summary, error) {
	started := time.Now()

	g.log.Info().Int("count", g.params.Sensors).Msg("generating sensors")
	if err := g.GenerateSensors(); err != nil {
		return Summary{}, err
	}

	g.log.Info().Int("count", g.params.Actuators).Msg("generating actuators")
	if err := g.GenerateActuators(); err != nil {
		return Summary{}, err
	}

	g.log.Info().
		Int("count", g.params.Sensors*g.params.ReadingsPerSensor).
		Msg("generating sensor readings")
	if err := g.GenerateReadings(); err != nil {
		return Summary{}, err
	}

	g.log.Info().
		Int("count", g.params.Actuators*g.params.CommandsPerActuator).
		Msg("generating actuator commands")
	if err := g.GenerateCommands(); err != nil {
		return Summary{}, err
	}

	g.log.Info().Msg("generating device diagnostics")
	if err := g.GenerateDiagnostics(); err != nil {
		return Summary{}, err
	}

	g.log.Info().Int("count", g.params.Loops).Msg("generating control loops")
	if err := g.GenerateControlLoops(); err != nil {
		return Summary{}, err
	}

	summary := Summary{
		Seed:             g.params.Seed,
		WindowStart:      g.params.WindowStart,
		WindowEnd:        g.params.WindowEnd,
		DiagnosticsStart: g.params.DiagnosticsStart,
		DiagnosticsEnd:   g.params.DiagnosticsEnd,
		Counts:           g.counts,
		Elapsed:          time.Since(started).String(),
	}
	g.log.Info().Str("elapsed", summary.Elapsed).Msg("data generation complete")
	return summary, nil
}

// emit forwards one record to the sink and counts it.
func (g *Generator) emit(rec model.Tabular) error {
	if err := g.out.Write(rec); err != nil {
		return fmt.Errorf("write %s record: %w", rec.TableName(), err)
	}
	g.counts[rec.TableName()]++
	return nil
}
