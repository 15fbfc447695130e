package synth

import (
	"errors"
	"fmt"
	"math/rand"

	"plantgen/internal/catalog"
	"plantgen/internal/model"
	"plantgen/internal/refpool"
)

// Install dates fall uniformly 30-1825 days before the window end; sensor
// calibration comes due between 30 days ago and a year out.
const (
	installMinDays = 30
	installMaxDays = 1825
	calibMinDays   = -30
	calibMaxDays   = 365
)

// GenerateSensors builds the sensor table. The table is retained for the
// rest of the run; every downstream generator reads it.
func (g *Generator) GenerateSensors() error {
	now := g.params.WindowEnd
	for i := 0; i < g.params.Sensors; i++ {
		equipment, err := refpool.Pick(g.rng, g.pool.Equipment)
		if err != nil {
			return fmt.Errorf("sensor %d: %w", i, err)
		}
		sensorType := catalog.Choice(g.rng, catalog.SensorTypes)
		rangeMin, rangeMax := catalog.SensorRange(g.rng, sensorType)

		s := model.Sensor{
			SensorID:            refpool.NewID(g.rng, "SEN", 8),
			EquipmentID:         equipment,
			SensorType:          sensorType,
			Manufacturer:        catalog.Choice(g.rng, catalog.SensorManufacturers),
			ModelNumber:         modelNumber(g.rng, "M", "ABCDE"),
			InstallationDate:    now.AddDate(0, 0, -randInt(g.rng, installMinDays, installMaxDays)),
			CalibrationDueDate:  now.AddDate(0, 0, randInt(g.rng, calibMinDays, calibMaxDays)),
			LocationX:           round2(g.rng.Float64() * 100),
			LocationY:           round2(g.rng.Float64() * 100),
			LocationZ:           round2(g.rng.Float64() * 10),
			MeasurementUnit:     catalog.SensorUnit(sensorType),
			MeasurementRangeMin: round2(rangeMin),
			MeasurementRangeMax: round2(rangeMax),
			Accuracy:            round2(0.1 + 1.9*g.rng.Float64()),
			Status:              catalog.Choice(g.rng, catalog.SensorStatuses),
		}
		if s.MeasurementRangeMin >= s.MeasurementRangeMax {
			return fmt.Errorf("sensor %s: degenerate range [%g, %g]", s.SensorID, s.MeasurementRangeMin, s.MeasurementRangeMax)
		}
		g.sensors = append(g.sensors, s)
		if err := g.emit(&s); err != nil {
			return err
		}
	}
	return nil
}

// GenerateActuators builds the actuator table, retained like the sensor one.
func (g *Generator) GenerateActuators() error {
	now := g.params.WindowEnd
	for i := 0; i < g.params.Actuators; i++ {
		equipment, err := refpool.Pick(g.rng, g.pool.Equipment)
		if err != nil {
			return fmt.Errorf("actuator %d: %w", i, err)
		}
		actuatorType := catalog.Choice(g.rng, catalog.ActuatorTypes)
		rangeMin, rangeMax := catalog.ActuatorRange(g.rng, actuatorType)

		a := model.Actuator{
			ActuatorID:       refpool.NewID(g.rng, "ACT", 8),
			EquipmentID:      equipment,
			ActuatorType:     actuatorType,
			Manufacturer:     catalog.Choice(g.rng, catalog.ActuatorManufacturers),
			ModelNumber:      modelNumber(g.rng, "A", "XYZSP"),
			InstallationDate: now.AddDate(0, 0, -randInt(g.rng, installMinDays, installMaxDays)),
			LocationX:        round2(g.rng.Float64() * 100),
			LocationY:        round2(g.rng.Float64() * 100),
			LocationZ:        round2(g.rng.Float64() * 10),
			ControlRangeMin:  round2(rangeMin),
			ControlRangeMax:  round2(rangeMax),
			ControlUnit:      catalog.ActuatorUnit(actuatorType),
			Status:           catalog.Choice(g.rng, catalog.ActuatorStatuses),
		}
		if a.ControlRangeMin >= a.ControlRangeMax {
			return fmt.Errorf("actuator %s: degenerate range [%g, %g]", a.ActuatorID, a.ControlRangeMin, a.ControlRangeMax)
		}
		g.actuators = append(g.actuators, a)
		if err := g.emit(&a); err != nil {
			return err
		}
	}
	return nil
}

var errNoSensors = errors.New("synth: sensor table not generated yet")
var errNoActuators = errors.New("synth: actuator table not generated yet")

// modelNumber builds a cosmetic model number like M4821-C37.
func modelNumber(rng *rand.Rand, prefix, letters string) string {
	return fmt.Sprintf("%s%d-%c%d",
		prefix,
		1000+rng.Intn(9000),
		letters[rng.Intn(len(letters))],
		10+rng.Intn(90))
}

// randInt returns a uniform integer in [lo, hi], inclusive on both ends.
func randInt(rng *rand.Rand, lo, hi int) int {
	return lo + rng.Intn(hi-lo+1)
}
