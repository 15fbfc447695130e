// Package config is the configuration front-end: it supplies entity counts,
// the output location and format, and the time windows for a run. Values
// come from an optional YAML file with CLI flags layered on top; defaults
// mirror a typical demo dataset.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config mirrors config.yaml.
type Config struct {
	Seed   int64  `yaml:"seed"`
	Output Output `yaml:"output"`
	Counts Counts `yaml:"counts"`
	Window Window `yaml:"window"`
}

type Output struct {
	Dir    string `yaml:"dir"`
	Format string `yaml:"format"` // csv | jsonl | sqlite
	// SQLitePath is the database file when format is sqlite.
	SQLitePath string `yaml:"sqlite_path"`
	// MQTTBroker, when set, additionally streams every record to the broker.
	MQTTBroker      string `yaml:"mqtt_broker"`
	MQTTTopicPrefix string `yaml:"mqtt_topic_prefix"`
}

type Counts struct {
	Sensors              int `yaml:"sensors"`
	Actuators            int `yaml:"actuators"`
	ReadingsPerSensor    int `yaml:"readings_per_sensor"`
	CommandsPerActuator  int `yaml:"commands_per_actuator"`
	Loops                int `yaml:"loops"`
	DiagnosticsPerDevice int `yaml:"diagnostics_per_device"`
}

type Window struct {
	Start time.Time `yaml:"start"`
	End   time.Time `yaml:"end"`
	// DiagnosticsDays is how far before End the diagnostics window opens.
	DiagnosticsDays int `yaml:"diagnostics_days"`
}

// Default returns the configuration used when no file or flags override it.
func Default() Config {
	return Config{
		Seed: 42,
		Output: Output{
			Dir:             "data",
			Format:          "csv",
			MQTTTopicPrefix: "plantgen",
		},
		Counts: Counts{
			Sensors:              100,
			Actuators:            100,
			ReadingsPerSensor:    1000,
			CommandsPerActuator:  100,
			Loops:                50,
			DiagnosticsPerDevice: 10,
		},
		Window: Window{DiagnosticsDays: 30},
	}
}

// Load reads a YAML config file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyWindowDefaults fills the time window relative to now: the run window
// defaults to the last 7 days, the diagnostics window to the last 30.
func (c *Config) ApplyWindowDefaults(now time.Time) {
	if c.Window.End.IsZero() {
		c.Window.End = now
	}
	if c.Window.Start.IsZero() {
		c.Window.Start = c.Window.End.AddDate(0, 0, -7)
	}
	if c.Window.DiagnosticsDays <= 0 {
		c.Window.DiagnosticsDays = 30
	}
	if c.Output.SQLitePath == "" {
		c.Output.SQLitePath = c.Output.Dir + "/plantgen.sqlite"
	}
}

// DiagnosticsWindow derives the diagnostics window from the run window end.
func (c Config) DiagnosticsWindow() (time.Time, time.Time) {
	return c.Window.End.AddDate(0, 0, -c.Window.DiagnosticsDays), c.Window.End
}

// Validate rejects configurations that would produce empty or mismatched
// tables, before any output is written.
func (c Config) Validate() error {
	counts := []struct {
		name string
		v    int
	}{
		{"sensors", c.Counts.Sensors},
		{"actuators", c.Counts.Actuators},
		{"readings_per_sensor", c.Counts.ReadingsPerSensor},
		{"commands_per_actuator", c.Counts.CommandsPerActuator},
		{"loops", c.Counts.Loops},
		{"diagnostics_per_device", c.Counts.DiagnosticsPerDevice},
	}
	for _, cnt := range counts {
		if cnt.v <= 0 {
			return fmt.Errorf("config: %s must be positive, got %d", cnt.name, cnt.v)
		}
	}
	switch c.Output.Format {
	case "csv", "jsonl", "sqlite":
	default:
		return fmt.Errorf("config: unsupported output format %q", c.Output.Format)
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("config: output dir must be set")
	}
	if !c.Window.Start.Before(c.Window.End) {
		return fmt.Errorf("config: window start %s is not before end %s", c.Window.Start, c.Window.End)
	}
	return nil
}
