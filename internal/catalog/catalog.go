// Package catalog holds the static vocabularies of the plant model: device
// subtypes, units, nominal ranges, command and diagnostic vocabularies, and
// the weighted enumerations used across generators. Lookups never fail on an
// unknown subtype; they fall back to a generic unit or range.
package catalog

import (
	"math/rand"
)

// SensorTypes is the subtype vocabulary for sensors.
var SensorTypes = []string{
	"temperature", "pressure", "flow", "level", "ph", "conductivity",
	"vibration", "speed", "torque", "current", "voltage", "weight",
	"humidity", "oxygen", "co2", "position", "proximity", "rpm",
}

// ActuatorTypes is the subtype vocabulary for actuators.
var ActuatorTypes = []string{
	"valve", "motor", "pump", "heater", "fan", "agitator", "conveyor",
	"damper", "cylinder", "positioner", "relay", "switch", "mixer",
	"doser", "compressor", "blower",
}

// SensorManufacturers and ActuatorManufacturers are cosmetic vendor pools.
var SensorManufacturers = []string{
	"Siemens", "ABB", "Emerson", "Honeywell", "Endress+Hauser",
	"Yokogawa", "Schneider Electric", "Omron", "Rockwell Automation",
	"WIKA", "Vega", "ifm electronic", "Pepperl+Fuchs", "Sick AG",
}

var ActuatorManufacturers = []string{
	"Siemens", "ABB", "Emerson", "Honeywell", "Schneider Electric",
	"Festo", "SMC", "Bürkert", "Danfoss", "Asco", "Parker", "Rotork",
	"Auma", "Allen-Bradley", "SEW-Eurodrive", "WEG",
}

// SensorStatuses and ActuatorStatuses are the device status enums.
var SensorStatuses = []string{"Active", "Maintenance", "Calibration Due", "Fault", "Standby", "Offline"}

var ActuatorStatuses = []string{"Active", "Maintenance", "Fault", "Standby", "Offline", "Reserved"}

const (
	defaultUnit     = "unit"
	defaultRangeMin = 0.0
	defaultRangeMax = 100.0
)

var sensorUnits = map[string]string{
	"temperature": "°C", "pressure": "bar", "flow": "m³/h", "level": "%",
	"ph": "pH", "conductivity": "µS/cm", "vibration": "mm/s", "speed": "rpm",
	"torque": "Nm", "current": "A", "voltage": "V", "weight": "kg",
	"humidity": "%RH", "oxygen": "%", "co2": "ppm", "position": "mm",
	"proximity": "mm", "rpm": "rpm",
}

var sensorRanges = map[string][2]float64{
	"temperature": {0, 150}, "pressure": {0, 25}, "flow": {0, 100},
	"level": {0, 100}, "ph": {0, 14}, "conductivity": {0, 2000},
	"vibration": {0, 50}, "speed": {0, 3000}, "torque": {0, 500},
	"current": {0, 100}, "voltage": {0, 440}, "weight": {0, 2000},
	"humidity": {0, 100}, "oxygen": {0, 25}, "co2": {0, 5000},
	"position": {0, 1000}, "proximity": {0, 50}, "rpm": {0, 5000},
}

var actuatorUnits = map[string]string{
	"valve": "%", "motor": "rpm", "pump": "m³/h", "heater": "°C", "fan": "%",
	"agitator": "%", "conveyor": "m/s", "damper": "%", "cylinder": "mm",
	"positioner": "°", "relay": "binary", "switch": "binary", "mixer": "%",
	"doser": "L/min", "compressor": "bar", "blower": "%",
}

var actuatorRanges = map[string][2]float64{
	"valve": {0, 100}, "motor": {0, 3000}, "pump": {0, 500},
	"heater": {0, 500}, "fan": {0, 100}, "agitator": {0, 100},
	"conveyor": {0, 10}, "damper": {0, 100}, "cylinder": {0, 1000},
	"positioner": {0, 360}, "relay": {0, 1}, "switch": {0, 1},
	"mixer": {0, 100}, "doser": {0, 50}, "compressor": {0, 200},
	"blower": {0, 100},
}

// SensorUnit returns the measurement unit for a sensor subtype.
func SensorUnit(sensorType string) string {
	if u, ok := sensorUnits[sensorType]; ok {
		return u
	}
	return defaultUnit
}

// ActuatorUnit returns the control unit for an actuator subtype.
func ActuatorUnit(actuatorType string) string {
	if u, ok := actuatorUnits[actuatorType]; ok {
		return u
	}
	return defaultUnit
}

// SensorRange returns the nominal measurement range for a sensor subtype,
// widened by a small random jitter so devices of the same subtype do not
// share identical ranges. The minimum never drops below zero.
func SensorRange(rng *rand.Rand, sensorType string) (float64, float64) {
	min, max := defaultRangeMin, defaultRangeMax
	if r, ok := sensorRanges[sensorType]; ok {
		min, max = r[0], r[1]
	}
	min = maxf(0, min-rng.Float64()*min/5)
	max = max + rng.Float64()*max/5
	return min, max
}

// ActuatorRange returns the nominal control range for an actuator subtype,
// widened at the top end only. Binary subtypes (relay, switch) are returned
// unjittered: their [0,1] range is a contract, not a nominal envelope.
func ActuatorRange(rng *rand.Rand, actuatorType string) (float64, float64) {
	min, max := defaultRangeMin, defaultRangeMax
	if r, ok := actuatorRanges[actuatorType]; ok {
		min, max = r[0], r[1]
	}
	if IsBinaryActuator(actuatorType) {
		return min, max
	}
	max = max + rng.Float64()*max/10
	return min, max
}

// IsBinaryActuator reports whether the subtype is an on/off device. Binary
// actuators only emit integer command values.
func IsBinaryActuator(actuatorType string) bool {
	return actuatorType == "relay" || actuatorType == "switch"
}

// CommandTypes is the full command vocabulary used when a subtype has no
// specific one.
var CommandTypes = []string{"position", "speed", "open", "close", "start", "stop", "setpoint", "reset"}

var commandVocabularies = map[string][]string{
	"valve":      {"open", "close", "position"},
	"damper":     {"open", "close", "position"},
	"motor":      {"start", "stop", "speed"},
	"pump":       {"start", "stop", "speed"},
	"fan":        {"start", "stop", "speed"},
	"agitator":   {"start", "stop", "speed"},
	"conveyor":   {"start", "stop", "speed"},
	"mixer":      {"start", "stop", "speed"},
	"blower":     {"start", "stop", "speed"},
	"heater":     {"start", "stop", "setpoint"},
	"compressor": {"start", "stop", "setpoint"},
	"cylinder":   {"position", "reset"},
	"positioner": {"position", "reset"},
	"relay":      {"open", "close"},
	"switch":     {"open", "close"},
}

// CommandVocabulary returns the command types appropriate for an actuator
// subtype, falling back to the full vocabulary.
func CommandVocabulary(actuatorType string) []string {
	if v, ok := commandVocabularies[actuatorType]; ok {
		return v
	}
	return CommandTypes
}

// CommandModes is the control-mode vocabulary for actuator commands with its
// weighting (Auto dominates).
var CommandModes = Weighted{
	Items:   []string{"Auto", "Manual", "Cascade", "Supervised"},
	Weights: []float64{0.7, 0.2, 0.05, 0.05},
}

// SensorDiagnostics and ActuatorDiagnostics are the diagnostic-type
// vocabularies per device kind.
var SensorDiagnostics = []string{
	"Calibration Check", "Signal Quality Test", "Range Verification",
	"Response Time Test", "Interference Check", "Power Supply Test",
	"Communication Test", "Self-Diagnostic", "Drift Analysis",
}

var ActuatorDiagnostics = []string{
	"Movement Test", "Response Time Test", "Leak Test", "Position Verification",
	"Torque Test", "Speed Test", "Current Draw Test", "Self-Diagnostic",
	"Feedback Verification", "Lubrication Check", "Wear Analysis",
}

// DiagnosticMessages maps a severity level to its message vocabulary.
var DiagnosticMessages = map[int][]string{
	0: {"Normal operation", "No issues detected", "All parameters within normal range",
		"Device functioning correctly", "Diagnostic passed"},
	1: {"Minor deviation detected", "Parameter near warning threshold", "Slight performance degradation",
		"Recommend monitoring", "Non-critical warning"},
	2: {"Parameter outside optimal range", "Performance degradation detected", "Maintenance recommended",
		"Minor issue detected", "Device requires attention"},
	3: {"Significant deviation detected", "Multiple parameters out of range", "Performance significantly degraded",
		"Maintenance required soon", "Device operating outside specifications"},
	4: {"Major issue detected", "Device may fail soon", "Immediate maintenance required",
		"Performance severely degraded", "Reliability compromised"},
	5: {"Critical failure detected", "Device non-operational", "Emergency maintenance required",
		"Safety risk possible", "Replace device immediately"},
}

// ProcessVariableSensorTypes lists sensor subtypes eligible as a control
// loop's process variable.
var ProcessVariableSensorTypes = []string{
	"temperature", "pressure", "flow", "level", "ph", "conductivity",
	"speed", "position", "weight", "humidity", "oxygen", "co2",
}

// ControlOutputActuatorTypes lists actuator subtypes eligible as a control
// loop's control output.
var ControlOutputActuatorTypes = []string{
	"valve", "motor", "pump", "heater", "fan", "agitator",
	"damper", "positioner", "doser", "compressor",
}

// ControllerTypes is the controller-type vocabulary with its weighting.
var ControllerTypes = Weighted{
	Items:   []string{"PID", "Cascade", "Feedforward", "On-Off", "Ratio", "Model Predictive", "Fuzzy Logic"},
	Weights: []float64{0.6, 0.15, 0.1, 0.05, 0.05, 0.03, 0.02},
}

// LoopModes is the control-mode vocabulary for loops.
var LoopModes = Weighted{
	Items:   []string{"Auto", "Manual", "Cascade", "Supervised"},
	Weights: []float64{0.7, 0.15, 0.1, 0.05},
}

// LoopStatuses is the loop status vocabulary.
var LoopStatuses = Weighted{
	Items:   []string{"Active", "Tuning", "Inactive", "Fault"},
	Weights: []float64{0.85, 0.05, 0.07, 0.03},
}

// Weighted is a vocabulary with per-item selection weights.
type Weighted struct {
	Items   []string
	Weights []float64
}

// Pick draws one item with probability proportional to its weight.
func (w Weighted) Pick(rng *rand.Rand) string {
	total := 0.0
	for _, wt := range w.Weights {
		total += wt
	}
	x := rng.Float64() * total
	for i, wt := range w.Weights {
		x -= wt
		if x < 0 {
			return w.Items[i]
		}
	}
	return w.Items[len(w.Items)-1]
}

// Choice returns a uniformly chosen element.
func Choice(rng *rand.Rand, items []string) string {
	return items[rng.Intn(len(items))]
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
