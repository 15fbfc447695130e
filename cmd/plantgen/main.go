package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"plantgen/internal/config"
	"plantgen/internal/sink"
	"plantgen/internal/synth"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgPath string

	cmd := &cobra.Command{
		Use:   "plantgen",
		Short: "Generate ISA-95 Level 1 fixture data",
		Long: `plantgen synthesizes a referentially-consistent six-table dataset for an
industrial sensing/actuation layer: sensors, actuators, sensor readings,
actuator commands, device diagnostics and control loops. Runs are
deterministic for a fixed seed and explicit time window.`,
		Example: `  # 100 sensors/actuators, CSV tables under ./data
  $ plantgen

  # small deterministic fixture
  $ plantgen --sensors 5 --actuators 5 --readings 10 --commands 5 --loops 3 --seed 7

  # SQLite output plus MQTT streaming
  $ plantgen --format sqlite --mqtt-broker tcp://localhost:1883`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, cfgPath)
		},
	}

	cmd.Flags().StringVar(&cfgPath, "config", "", "path to YAML config (optional)")
	cmd.Flags().String("out", "data", "output directory")
	cmd.Flags().String("format", "csv", "output format: csv, jsonl or sqlite")
	cmd.Flags().String("mqtt-broker", "", "additionally stream records to this MQTT broker")
	cmd.Flags().Int64("seed", 42, "random seed")
	cmd.Flags().Int("sensors", 100, "number of sensors")
	cmd.Flags().Int("actuators", 100, "number of actuators")
	cmd.Flags().Int("readings", 1000, "readings per sensor")
	cmd.Flags().Int("commands", 100, "commands per actuator")
	cmd.Flags().Int("loops", 50, "number of control loops")
	cmd.Flags().Int("diagnostics", 10, "diagnostic records per device")
	cmd.CompletionOptions.DisableDefaultCmd = true
	return cmd
}

func run(cmd *cobra.Command, cfgPath string) error {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg := config.Default()
	if cfgPath != "" {
		loaded, err := config.Load(cfgPath)
		if err != nil {
			log.Error().Err(err).Msg("load config")
			return err
		}
		cfg = loaded
	}
	applyFlags(cmd, &cfg)
	cfg.ApplyWindowDefaults(time.Now())
	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("invalid configuration")
		return err
	}

	out, err := buildSink(cfg)
	if err != nil {
		log.Error().Err(err).Msg("open sink")
		return err
	}

	diagStart, diagEnd := cfg.DiagnosticsWindow()
	params := synth.Params{
		Sensors:              cfg.Counts.Sensors,
		Actuators:            cfg.Counts.Actuators,
		ReadingsPerSensor:    cfg.Counts.ReadingsPerSensor,
		CommandsPerActuator:  cfg.Counts.CommandsPerActuator,
		Loops:                cfg.Counts.Loops,
		DiagnosticsPerDevice: cfg.Counts.DiagnosticsPerDevice,
		WindowStart:          cfg.Window.Start,
		WindowEnd:            cfg.Window.End,
		DiagnosticsStart:     diagStart,
		DiagnosticsEnd:       diagEnd,
		Seed:                 cfg.Seed,
	}

	gen, err := synth.New(params, out, log)
	if err != nil {
		out.Close()
		log.Error().Err(err).Msg("invalid parameters")
		return err
	}

	summary, err := gen.Run()
	if err != nil {
		out.Close()
		log.Error().Err(err).Msg("generation failed, output should be discarded")
		return err
	}
	if err := out.Close(); err != nil {
		log.Error().Err(err).Msg("close sink")
		return err
	}

	manifestPath := filepath.Join(cfg.Output.Dir, "manifest.json")
	if err := sink.WriteManifest(manifestPath, summary); err != nil {
		log.Error().Err(err).Msg("write manifest")
		return err
	}
	log.Info().Str("manifest", manifestPath).Msg("done")
	return nil
}

// applyFlags layers explicitly set flags over the file config.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("out") {
		cfg.Output.Dir, _ = f.GetString("out")
	}
	if f.Changed("format") {
		cfg.Output.Format, _ = f.GetString("format")
	}
	if f.Changed("mqtt-broker") {
		cfg.Output.MQTTBroker, _ = f.GetString("mqtt-broker")
	}
	if f.Changed("seed") {
		cfg.Seed, _ = f.GetInt64("seed")
	}
	if f.Changed("sensors") {
		cfg.Counts.Sensors, _ = f.GetInt("sensors")
	}
	if f.Changed("actuators") {
		cfg.Counts.Actuators, _ = f.GetInt("actuators")
	}
	if f.Changed("readings") {
		cfg.Counts.ReadingsPerSensor, _ = f.GetInt("readings")
	}
	if f.Changed("commands") {
		cfg.Counts.CommandsPerActuator, _ = f.GetInt("commands")
	}
	if f.Changed("loops") {
		cfg.Counts.Loops, _ = f.GetInt("loops")
	}
	if f.Changed("diagnostics") {
		cfg.Counts.DiagnosticsPerDevice, _ = f.GetInt("diagnostics")
	}
}

// buildSink assembles the configured sink, layering MQTT streaming on top of
// the file or database sink when a broker is set.
func buildSink(cfg config.Config) (sink.Sink, error) {
	var base sink.Sink
	var err error
	switch cfg.Output.Format {
	case "csv":
		base, err = sink.NewCSVDir(cfg.Output.Dir)
	case "jsonl":
		base, err = sink.NewJSONLDir(cfg.Output.Dir)
	case "sqlite":
		if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", cfg.Output.Dir, err)
		}
		base, err = sink.NewSQLite(cfg.Output.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported output format %q", cfg.Output.Format)
	}
	if err != nil {
		return nil, err
	}
	if cfg.Output.MQTTBroker == "" {
		return base, nil
	}
	mq, err := sink.NewMQTT(cfg.Output.MQTTBroker, cfg.Output.MQTTTopicPrefix)
	if err != nil {
		base.Close()
		return nil, err
	}
	return sink.Multi{base, mq}, nil
}
