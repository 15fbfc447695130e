package synth

import (
	"math"
	"math/rand"

	"plantgen/internal/catalog"
	"plantgen/internal/model"
	"plantgen/internal/refpool"
)

const (
	probLowQuality     = 0.05
	probAbnormalStatus = 0.03
	probBatchRef       = 0.8
	probStateRef       = 0.9
	probStepRef        = 0.7
	probClusterPoint   = 0.6

	readingProgressEvery = 100000
	commandProgressEvery = 10000
)

// GenerateReadings emits ReadingsPerSensor readings for every sensor,
// evenly spaced over the run window. Values follow the sensor's synthesized
// trend curve and are always inside its measurement range; timestamps are
// non-decreasing per sensor.
func (g *Generator) GenerateReadings() error {
	if len(g.sensors) == 0 {
		return errNoSensors
	}

	total := 0
	for _, s := range g.sensors {
		pts := Series(g.rng,
			s.MeasurementRangeMin, s.MeasurementRangeMax,
			g.params.WindowStart, g.params.WindowEnd,
			g.params.ReadingsPerSensor, true)

		for _, pt := range pts {
			r := model.Reading{
				ReadingID: refpool.NewID(g.rng, "READ", 12),
				SensorID:  s.SensorID,
				Timestamp: pt.Timestamp,
				Value:     pt.Value,
			}

			if g.rng.Float64() < probLowQuality {
				r.QualityIndicator = round1(50 + 35*g.rng.Float64())
			} else {
				r.QualityIndicator = round1(85 + 15*g.rng.Float64())
			}

			if g.rng.Float64() < probAbnormalStatus {
				r.StatusCode = 1 + g.rng.Intn(4)
			}

			if g.rng.Float64() < probBatchRef {
				batch, err := refpool.Pick(g.rng, g.pool.Batches)
				if err != nil {
					return err
				}
				r.BatchID = batch
			}
			if g.rng.Float64() < probStateRef {
				state, err := refpool.Pick(g.rng, g.pool.EquipmentStates)
				if err != nil {
					return err
				}
				r.EquipmentStateID = state
			}

			if err := g.emit(&r); err != nil {
				return err
			}
			total++
			if total%readingProgressEvery == 0 {
				g.log.Info().Int("readings", total).Msg("progress")
			}
		}
	}
	g.log.Info().Int("readings", total).Msg("sensor readings generated")
	return nil
}

// GenerateCommands emits CommandsPerActuator commands for every actuator at
// independently drawn, chronologically sorted timestamps. Command types come
// from the subtype's vocabulary and values follow the type's policy.
func (g *Generator) GenerateCommands() error {
	if len(g.actuators) == 0 {
		return errNoActuators
	}

	total := 0
	for _, a := range g.actuators {
		vocab := catalog.CommandVocabulary(a.ActuatorType)
		times := SortedUniformTimes(g.rng,
			g.params.WindowStart, g.params.WindowEnd,
			g.params.CommandsPerActuator)
		binary := a.ControlRangeMin == 0 && a.ControlRangeMax == 1

		for _, ts := range times {
			commandType := catalog.Choice(g.rng, vocab)
			c := model.Command{
				CommandID:    refpool.NewID(g.rng, "CMD", 12),
				ActuatorID:   a.ActuatorID,
				Timestamp:    ts,
				CommandValue: commandValue(g.rng, commandType, a.ControlRangeMin, a.ControlRangeMax, binary),
				CommandType:  commandType,
				ControlMode:  catalog.CommandModes.Pick(g.rng),
			}

			if c.ControlMode == "Manual" {
				operator, err := refpool.Pick(g.rng, g.pool.Operators)
				if err != nil {
					return err
				}
				c.OperatorID = operator
			}

			if g.rng.Float64() < probBatchRef {
				batch, err := refpool.Pick(g.rng, g.pool.Batches)
				if err != nil {
					return err
				}
				c.BatchID = batch
				// A step reference is only plausible inside a batch.
				if g.rng.Float64() < probStepRef {
					step, err := refpool.Pick(g.rng, g.pool.Steps)
					if err != nil {
						return err
					}
					c.StepID = step
				}
			}

			if err := g.emit(&c); err != nil {
				return err
			}
			total++
			if total%commandProgressEvery == 0 {
				g.log.Info().Int("commands", total).Msg("progress")
			}
		}
	}
	g.log.Info().Int("commands", total).Msg("actuator commands generated")
	return nil
}

// commandValue applies the type-dependent value policy: open/start drive to
// range max, close/stop to range min, reset to a 10% home position (0 for
// binary devices), and everything else is either a clustered setpoint at a
// round fraction of the range or uniform within it. Binary actuators only
// ever emit integers.
func commandValue(rng *rand.Rand, commandType string, min, max float64, binary bool) float64 {
	span := max - min
	var v float64
	switch commandType {
	case "open", "start":
		v = max
	case "close", "stop":
		v = min
	case "reset":
		if binary {
			v = 0
		} else {
			v = min + span*0.1
		}
	default:
		if rng.Float64() < probClusterPoint {
			clusters := []float64{min, min + span*0.25, min + span*0.5, min + span*0.75, max}
			v = clusters[rng.Intn(len(clusters))]
		} else {
			v = min + rng.Float64()*span
		}
	}
	if binary {
		return math.Round(v)
	}
	return round2(v)
}
