package synth

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"plantgen/internal/catalog"
	"plantgen/internal/model"
	"plantgen/internal/refpool"
)

// ErrNoEligibleDevices is returned when, even after allow-list fallback,
// there are no sensors or actuators to compose loops from.
var ErrNoEligibleDevices = errors.New("synth: no eligible sensors and actuators to create control loops")

// Preference for the sensor's equipment when a loop's devices sit on
// different assets.
const probSensorEquipment = 0.7

// GenerateControlLoops pairs process-variable sensors with control-output
// actuators into loops. Devices are sampled without replacement, so no
// sensor or actuator appears in two loops. The requested count is clamped to
// the number of eligible devices; zero eligible devices is an error.
func (g *Generator) GenerateControlLoops() error {
	if len(g.sensors) == 0 {
		return errNoSensors
	}
	if len(g.actuators) == 0 {
		return errNoActuators
	}

	pvSensors := filterSensors(g.sensors, catalog.ProcessVariableSensorTypes)
	if len(pvSensors) == 0 {
		g.log.Warn().Msg("no process-variable sensors found, using all sensors")
		pvSensors = g.sensors
	}

	cvActuators := filterActuators(g.actuators, catalog.ControlOutputActuatorTypes)
	if len(cvActuators) == 0 {
		g.log.Warn().Msg("no control-output actuators found, using all actuators")
		cvActuators = g.actuators
	}

	numLoops := g.params.Loops
	if len(pvSensors) < numLoops {
		numLoops = len(pvSensors)
	}
	if len(cvActuators) < numLoops {
		numLoops = len(cvActuators)
	}
	if numLoops == 0 {
		return ErrNoEligibleDevices
	}
	if numLoops < g.params.Loops {
		g.log.Warn().
			Int("requested", g.params.Loops).
			Int("feasible", numLoops).
			Msg("clamping loop count to eligible devices")
	}

	sampledSensors := sampleSensors(g.rng, pvSensors, numLoops)
	sampledActuators := sampleActuators(g.rng, cvActuators, numLoops)

	// Pair each sampled sensor with an unused sampled actuator, preferring
	// one on the same equipment. Every actuator is consumed exactly once.
	remaining := make([]model.Actuator, len(sampledActuators))
	copy(remaining, sampledActuators)

	for i, sensor := range sampledSensors {
		var actuator model.Actuator
		var equipment string

		if idx := sameEquipmentIndex(g.rng, remaining, sensor.EquipmentID); idx >= 0 {
			actuator = remaining[idx]
			equipment = sensor.EquipmentID
			remaining = append(remaining[:idx], remaining[idx+1:]...)
		} else {
			actuator = remaining[0]
			remaining = remaining[1:]
			if g.rng.Float64() < probSensorEquipment {
				equipment = sensor.EquipmentID
			} else {
				equipment = actuator.EquipmentID
			}
		}

		controllerType := catalog.ControllerTypes.Pick(g.rng)
		p, iv, d := tuning(g.rng, controllerType)

		span := sensor.MeasurementRangeMax - sensor.MeasurementRangeMin
		loop := model.ControlLoop{
			LoopID:                  refpool.NewID(g.rng, "LOOP", 8),
			LoopName:                loopName(sensor.SensorType, actuator.ActuatorType, i+1),
			ProcessVariableSensorID: sensor.SensorID,
			ControlOutputActuatorID: actuator.ActuatorID,
			ControllerType:          controllerType,
			ControlMode:             catalog.LoopModes.Pick(g.rng),
			SetpointValue:           round2(sensor.MeasurementRangeMin + span*(0.3+0.4*g.rng.Float64())),
			SetpointUnit:            sensor.MeasurementUnit,
			PValue:                  p,
			IValue:                  iv,
			DValue:                  d,
			EquipmentID:             equipment,
			Status:                  catalog.LoopStatuses.Pick(g.rng),
		}
		if err := g.emit(&loop); err != nil {
			return err
		}
	}
	g.log.Info().Int("loops", numLoops).Msg("control loops generated")
	return nil
}

// loopName matches the (sensor, actuator) subtype pair against the curated
// compatibility table, falling back to a generic label.
func loopName(sensorType, actuatorType string, seq int) string {
	pairs := []struct {
		sensor    string
		actuators []string
		label     string
	}{
		{"temperature", []string{"heater", "valve"}, "Temperature Control"},
		{"flow", []string{"valve", "pump"}, "Flow Control"},
		{"pressure", []string{"valve", "compressor"}, "Pressure Control"},
		{"level", []string{"valve", "pump"}, "Level Control"},
		{"ph", []string{"pump", "valve", "doser"}, "pH Control"},
		{"speed", []string{"motor", "fan"}, "Speed Control"},
		{"position", []string{"positioner", "motor"}, "Position Control"},
	}
	for _, p := range pairs {
		if p.sensor != sensorType {
			continue
		}
		for _, a := range p.actuators {
			if a == actuatorType {
				return fmt.Sprintf("%s %d", p.label, seq)
			}
		}
	}
	return fmt.Sprintf("%s-%s Control %d", capitalize(sensorType), capitalize(actuatorType), seq)
}

// tuning draws the PID-style triple for a controller type.
func tuning(rng *rand.Rand, controllerType string) (p, i, d float64) {
	switch controllerType {
	case "PID":
		return round2(0.5 + 9.5*rng.Float64()),
			round3(0.05 + 1.95*rng.Float64()),
			round3(0.5 * rng.Float64())
	case "On-Off":
		return 1, 0, 0
	default:
		return round2(0.1 + 19.9*rng.Float64()),
			round3(5 * rng.Float64()),
			round3(2 * rng.Float64())
	}
}

func filterSensors(sensors []model.Sensor, allowed []string) []model.Sensor {
	var out []model.Sensor
	for _, s := range sensors {
		if containsString(allowed, s.SensorType) {
			out = append(out, s)
		}
	}
	return out
}

func filterActuators(actuators []model.Actuator, allowed []string) []model.Actuator {
	var out []model.Actuator
	for _, a := range actuators {
		if containsString(allowed, a.ActuatorType) {
			out = append(out, a)
		}
	}
	return out
}

func sampleSensors(rng *rand.Rand, sensors []model.Sensor, n int) []model.Sensor {
	out := make([]model.Sensor, 0, n)
	for _, idx := range rng.Perm(len(sensors))[:n] {
		out = append(out, sensors[idx])
	}
	return out
}

func sampleActuators(rng *rand.Rand, actuators []model.Actuator, n int) []model.Actuator {
	out := make([]model.Actuator, 0, n)
	for _, idx := range rng.Perm(len(actuators))[:n] {
		out = append(out, actuators[idx])
	}
	return out
}

// sameEquipmentIndex returns the index of a random actuator sharing the
// given equipment reference, or -1 when none does.
func sameEquipmentIndex(rng *rand.Rand, actuators []model.Actuator, equipmentID string) int {
	var candidates []int
	for i, a := range actuators {
		if a.EquipmentID == equipmentID {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return -1
	}
	return candidates[rng.Intn(len(candidates))]
}

func containsString(items []string, v string) bool {
	for _, s := range items {
		if s == v {
			return true
		}
	}
	return false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
