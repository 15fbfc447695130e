package synth

import (
	"math/rand"
	"testing"

	"github.com/rs/zerolog"

	"plantgen/internal/catalog"
	"plantgen/internal/model"
	"plantgen/internal/refpool"
)

func TestControlLoopsNeverReuseDevices(t *testing.T) {
	t.Parallel()
	p := testParams()
	p.Sensors = 30
	p.Actuators = 30
	p.Loops = 10
	_, out := runGenerator(t, p)

	seenSensor := make(map[string]bool)
	seenActuator := make(map[string]bool)
	for _, rec := range out.table("control_loops") {
		l := rec.(*model.ControlLoop)
		if seenSensor[l.ProcessVariableSensorID] {
			t.Fatalf("sensor %s appears in more than one loop", l.ProcessVariableSensorID)
		}
		if seenActuator[l.ControlOutputActuatorID] {
			t.Fatalf("actuator %s appears in more than one loop", l.ControlOutputActuatorID)
		}
		seenSensor[l.ProcessVariableSensorID] = true
		seenActuator[l.ControlOutputActuatorID] = true
	}
}

func TestControlLoopDevicesSatisfyAllowLists(t *testing.T) {
	t.Parallel()
	p := testParams()
	p.Sensors = 40
	p.Actuators = 40
	p.Loops = 10
	gen, out := runGenerator(t, p)

	sensors := make(map[string]model.Sensor)
	for _, s := range gen.Sensors() {
		sensors[s.SensorID] = s
	}
	actuators := make(map[string]model.Actuator)
	for _, a := range gen.Actuators() {
		actuators[a.ActuatorID] = a
	}

	// With eligible devices present, every loop must draw from the
	// allow-listed subtypes; the fallback only engages on an empty filter.
	eligibleSensors := len(filterSensors(gen.Sensors(), catalog.ProcessVariableSensorTypes)) > 0
	eligibleActuators := len(filterActuators(gen.Actuators(), catalog.ControlOutputActuatorTypes)) > 0

	for _, rec := range out.table("control_loops") {
		l := rec.(*model.ControlLoop)
		if st := sensors[l.ProcessVariableSensorID].SensorType; eligibleSensors &&
			!containsString(catalog.ProcessVariableSensorTypes, st) {
			t.Fatalf("loop %s uses sensor subtype %q outside the process-variable allow-list", l.LoopID, st)
		}
		if at := actuators[l.ControlOutputActuatorID].ActuatorType; eligibleActuators &&
			!containsString(catalog.ControlOutputActuatorTypes, at) {
			t.Fatalf("loop %s uses actuator subtype %q outside the control-output allow-list", l.LoopID, at)
		}
	}
}

func TestControlLoopsFallBackWhenNoEligibleSubtypes(t *testing.T) {
	t.Parallel()
	out := &recordSink{}
	gen, err := New(testParams(), out, zerolog.Nop())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	// Only ineligible subtypes on both sides: the allow-list filters come up
	// empty and loops must still be composed from the full tables.
	for i := 0; i < 4; i++ {
		gen.sensors = append(gen.sensors, model.Sensor{
			SensorID:            refpool.NewID(gen.rng, "SEN", 8),
			EquipmentID:         gen.pool.Equipment[i],
			SensorType:          "vibration",
			MeasurementUnit:     "mm/s",
			MeasurementRangeMin: 0,
			MeasurementRangeMax: 50,
			Status:              "Active",
		})
		gen.actuators = append(gen.actuators, model.Actuator{
			ActuatorID:      refpool.NewID(gen.rng, "ACT", 8),
			EquipmentID:     gen.pool.Equipment[i],
			ActuatorType:    "relay",
			ControlRangeMin: 0,
			ControlRangeMax: 1,
			Status:          "Active",
		})
	}

	if err := gen.GenerateControlLoops(); err != nil {
		t.Fatalf("GenerateControlLoops failed: %v", err)
	}
	loops := out.table("control_loops")
	if len(loops) != 3 {
		t.Fatalf("expected 3 loops from the fallback tables, got %d", len(loops))
	}
	sensorIDs := make(map[string]bool)
	for _, s := range gen.sensors {
		sensorIDs[s.SensorID] = true
	}
	for _, rec := range loops {
		l := rec.(*model.ControlLoop)
		if !sensorIDs[l.ProcessVariableSensorID] {
			t.Fatalf("loop %s references unknown sensor %s", l.LoopID, l.ProcessVariableSensorID)
		}
	}
}

func TestControlLoopCountClampsToEligibleDevices(t *testing.T) {
	t.Parallel()
	p := testParams()
	p.Sensors = 3
	p.Actuators = 3
	p.Loops = 50
	_, out := runGenerator(t, p)

	if got := len(out.table("control_loops")); got > 3 {
		t.Fatalf("expected at most 3 loops for 3 devices, got %d", got)
	}
	if got := len(out.table("control_loops")); got == 0 {
		t.Fatal("expected at least one loop")
	}
}

func TestControlLoopSetpointWithinSensorRange(t *testing.T) {
	t.Parallel()
	gen, out := runGenerator(t, testParams())

	sensors := make(map[string]model.Sensor)
	for _, s := range gen.Sensors() {
		sensors[s.SensorID] = s
	}
	for _, rec := range out.table("control_loops") {
		l := rec.(*model.ControlLoop)
		s := sensors[l.ProcessVariableSensorID]
		if l.SetpointValue < s.MeasurementRangeMin || l.SetpointValue > s.MeasurementRangeMax {
			t.Fatalf("loop %s setpoint %g outside sensor range [%g, %g]",
				l.LoopID, l.SetpointValue, s.MeasurementRangeMin, s.MeasurementRangeMax)
		}
		if l.SetpointUnit != s.MeasurementUnit {
			t.Fatalf("loop %s setpoint unit %q differs from sensor unit %q",
				l.LoopID, l.SetpointUnit, s.MeasurementUnit)
		}
	}
}

func TestControlLoopEquipmentComesFromItsDevices(t *testing.T) {
	t.Parallel()
	gen, out := runGenerator(t, testParams())

	sensors := make(map[string]model.Sensor)
	for _, s := range gen.Sensors() {
		sensors[s.SensorID] = s
	}
	actuators := make(map[string]model.Actuator)
	for _, a := range gen.Actuators() {
		actuators[a.ActuatorID] = a
	}
	for _, rec := range out.table("control_loops") {
		l := rec.(*model.ControlLoop)
		se := sensors[l.ProcessVariableSensorID].EquipmentID
		ae := actuators[l.ControlOutputActuatorID].EquipmentID
		if l.EquipmentID != se && l.EquipmentID != ae {
			t.Fatalf("loop %s equipment %s belongs to neither device (%s, %s)",
				l.LoopID, l.EquipmentID, se, ae)
		}
	}
}

func TestLoopNameKnownPairs(t *testing.T) {
	t.Parallel()
	cases := []struct {
		sensor, actuator, want string
	}{
		{"temperature", "heater", "Temperature Control 1"},
		{"temperature", "valve", "Temperature Control 2"},
		{"flow", "pump", "Flow Control 3"},
		{"pressure", "compressor", "Pressure Control 4"},
		{"level", "valve", "Level Control 5"},
		{"ph", "doser", "pH Control 6"},
		{"speed", "fan", "Speed Control 7"},
		{"position", "positioner", "Position Control 8"},
	}
	for i, tc := range cases {
		if got := loopName(tc.sensor, tc.actuator, i+1); got != tc.want {
			t.Errorf("loopName(%s, %s) = %q, want %q", tc.sensor, tc.actuator, got, tc.want)
		}
	}
}

func TestLoopNameFallback(t *testing.T) {
	t.Parallel()
	if got := loopName("oxygen", "conveyor", 4); got != "Oxygen-Conveyor Control 4" {
		t.Fatalf("unexpected fallback loop name %q", got)
	}
	// A compatible sensor with an off-table actuator still falls back.
	if got := loopName("temperature", "pump", 1); got != "Temperature-Pump Control 1" {
		t.Fatalf("unexpected fallback loop name %q", got)
	}
}

func TestTuningPerControllerType(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(21))

	for i := 0; i < 100; i++ {
		p, iv, d := tuning(rng, "PID")
		if p < 0.5 || p > 10 {
			t.Fatalf("PID P gain %g outside [0.5, 10]", p)
		}
		if iv < 0.05 || iv > 2 {
			t.Fatalf("PID I gain %g outside [0.05, 2]", iv)
		}
		if d < 0 || d > 0.5 {
			t.Fatalf("PID D gain %g outside [0, 0.5]", d)
		}
	}

	p, iv, d := tuning(rng, "On-Off")
	if p != 1 || iv != 0 || d != 0 {
		t.Fatalf("On-Off tuning = (%g, %g, %g), want (1, 0, 0)", p, iv, d)
	}
}

func TestSameEquipmentIndex(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewSource(23))
	actuators := []model.Actuator{
		{ActuatorID: "A1", EquipmentID: "EQ-1001"},
		{ActuatorID: "A2", EquipmentID: "EQ-1002"},
		{ActuatorID: "A3", EquipmentID: "EQ-1001"},
	}

	for i := 0; i < 50; i++ {
		idx := sameEquipmentIndex(rng, actuators, "EQ-1001")
		if idx != 0 && idx != 2 {
			t.Fatalf("expected index 0 or 2, got %d", idx)
		}
	}
	if idx := sameEquipmentIndex(rng, actuators, "EQ-9999"); idx != -1 {
		t.Fatalf("expected -1 for unknown equipment, got %d", idx)
	}
}
