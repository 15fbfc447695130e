package model

import (
	"strconv"
	"time"
)

// TimeLayout is the timestamp format used in every persisted table.
const TimeLayout = "2006-01-02 15:04:05.000"

// DateLayout is the format for date-only fields such as installation dates.
const DateLayout = "2006-01-02"

// Tabular is one persistable record of a named table. Header and Row are a
// stable contract for downstream consumers: field names and order never
// change between runs.
type Tabular interface {
	TableName() string
	Header() []string
	Row() []string
}

// Sensor is one row of the sensors table.
type Sensor struct {
	SensorID            string    `json:"sensor_id" gorm:"column:sensor_id;primaryKey"`
	EquipmentID         string    `json:"equipment_id" gorm:"column:equipment_id;index"`
	SensorType          string    `json:"sensor_type" gorm:"column:sensor_type"`
	Manufacturer        string    `json:"manufacturer" gorm:"column:manufacturer"`
	ModelNumber         string    `json:"model_number" gorm:"column:model_number"`
	InstallationDate    time.Time `json:"installation_date" gorm:"column:installation_date"`
	CalibrationDueDate  time.Time `json:"calibration_due_date" gorm:"column:calibration_due_date"`
	LocationX           float64   `json:"location_x" gorm:"column:location_x"`
	LocationY           float64   `json:"location_y" gorm:"column:location_y"`
	LocationZ           float64   `json:"location_z" gorm:"column:location_z"`
	MeasurementUnit     string    `json:"measurement_unit" gorm:"column:measurement_unit"`
	MeasurementRangeMin float64   `json:"measurement_range_min" gorm:"column:measurement_range_min"`
	MeasurementRangeMax float64   `json:"measurement_range_max" gorm:"column:measurement_range_max"`
	Accuracy            float64   `json:"accuracy" gorm:"column:accuracy"`
	Status              string    `json:"status" gorm:"column:status"`
}

func (Sensor) TableName() string { return "sensors" }

func (Sensor) Header() []string {
	return []string{
		"sensor_id", "equipment_id", "sensor_type", "manufacturer", "model_number",
		"installation_date", "calibration_due_date", "location_x", "location_y",
		"location_z", "measurement_unit", "measurement_range_min",
		"measurement_range_max", "accuracy", "status",
	}
}

func (s Sensor) Row() []string {
	return []string{
		s.SensorID, s.EquipmentID, s.SensorType, s.Manufacturer, s.ModelNumber,
		s.InstallationDate.Format(DateLayout), s.CalibrationDueDate.Format(DateLayout),
		ftoa(s.LocationX), ftoa(s.LocationY), ftoa(s.LocationZ),
		s.MeasurementUnit, ftoa(s.MeasurementRangeMin), ftoa(s.MeasurementRangeMax),
		ftoa(s.Accuracy), s.Status,
	}
}

// Actuator is one row of the actuators table.
type Actuator struct {
	ActuatorID       string    `json:"actuator_id" gorm:"column:actuator_id;primaryKey"`
	EquipmentID      string    `json:"equipment_id" gorm:"column:equipment_id;index"`
	ActuatorType     string    `json:"actuator_type" gorm:"column:actuator_type"`
	Manufacturer     string    `json:"manufacturer" gorm:"column:manufacturer"`
	ModelNumber      string    `json:"model_number" gorm:"column:model_number"`
	InstallationDate time.Time `json:"installation_date" gorm:"column:installation_date"`
	LocationX        float64   `json:"location_x" gorm:"column:location_x"`
	LocationY        float64   `json:"location_y" gorm:"column:location_y"`
	LocationZ        float64   `json:"location_z" gorm:"column:location_z"`
	ControlRangeMin  float64   `json:"control_range_min" gorm:"column:control_range_min"`
	ControlRangeMax  float64   `json:"control_range_max" gorm:"column:control_range_max"`
	ControlUnit      string    `json:"control_unit" gorm:"column:control_unit"`
	Status           string    `json:"status" gorm:"column:status"`
}

func (Actuator) TableName() string { return "actuators" }

func (Actuator) Header() []string {
	return []string{
		"actuator_id", "equipment_id", "actuator_type", "manufacturer",
		"model_number", "installation_date", "location_x", "location_y",
		"location_z", "control_range_min", "control_range_max", "control_unit",
		"status",
	}
}

func (a Actuator) Row() []string {
	return []string{
		a.ActuatorID, a.EquipmentID, a.ActuatorType, a.Manufacturer, a.ModelNumber,
		a.InstallationDate.Format(DateLayout),
		ftoa(a.LocationX), ftoa(a.LocationY), ftoa(a.LocationZ),
		ftoa(a.ControlRangeMin), ftoa(a.ControlRangeMax), a.ControlUnit, a.Status,
	}
}

// Reading is one row of the sensor_readings table. BatchID and
// EquipmentStateID are empty when the reading is not associated with one.
type Reading struct {
	ReadingID        string    `json:"reading_id" gorm:"column:reading_id;primaryKey"`
	SensorID         string    `json:"sensor_id" gorm:"column:sensor_id;index"`
	Timestamp        time.Time `json:"timestamp" gorm:"column:timestamp"`
	Value            float64   `json:"value" gorm:"column:value"`
	QualityIndicator float64   `json:"quality_indicator" gorm:"column:quality_indicator"`
	StatusCode       int       `json:"status_code" gorm:"column:status_code"`
	BatchID          string    `json:"batch_id" gorm:"column:batch_id"`
	EquipmentStateID string    `json:"equipment_state_id" gorm:"column:equipment_state_id"`
}

func (Reading) TableName() string { return "sensor_readings" }

func (Reading) Header() []string {
	return []string{
		"reading_id", "sensor_id", "timestamp", "value", "quality_indicator",
		"status_code", "batch_id", "equipment_state_id",
	}
}

func (r Reading) Row() []string {
	return []string{
		r.ReadingID, r.SensorID, r.Timestamp.Format(TimeLayout), ftoa(r.Value),
		ftoa(r.QualityIndicator), strconv.Itoa(r.StatusCode), r.BatchID,
		r.EquipmentStateID,
	}
}

// Command is one row of the actuator_commands table. OperatorID is set only
// for manual commands; StepID only when BatchID is set.
type Command struct {
	CommandID    string    `json:"command_id" gorm:"column:command_id;primaryKey"`
	ActuatorID   string    `json:"actuator_id" gorm:"column:actuator_id;index"`
	Timestamp    time.Time `json:"timestamp" gorm:"column:timestamp"`
	CommandValue float64   `json:"command_value" gorm:"column:command_value"`
	CommandType  string    `json:"command_type" gorm:"column:command_type"`
	ControlMode  string    `json:"control_mode" gorm:"column:control_mode"`
	OperatorID   string    `json:"operator_id" gorm:"column:operator_id"`
	BatchID      string    `json:"batch_id" gorm:"column:batch_id"`
	StepID       string    `json:"step_id" gorm:"column:step_id"`
}

func (Command) TableName() string { return "actuator_commands" }

func (Command) Header() []string {
	return []string{
		"command_id", "actuator_id", "timestamp", "command_value", "command_type",
		"control_mode", "operator_id", "batch_id", "step_id",
	}
}

func (c Command) Row() []string {
	return []string{
		c.CommandID, c.ActuatorID, c.Timestamp.Format(TimeLayout),
		ftoa(c.CommandValue), c.CommandType, c.ControlMode, c.OperatorID,
		c.BatchID, c.StepID,
	}
}

// Diagnostic is one row of the device_diagnostics table. BatteryLevel is nil
// for wired devices.
type Diagnostic struct {
	DiagnosticID         string    `json:"diagnostic_id" gorm:"column:diagnostic_id;primaryKey"`
	DeviceID             string    `json:"device_id" gorm:"column:device_id;index"`
	Timestamp            time.Time `json:"timestamp" gorm:"column:timestamp"`
	DiagnosticType       string    `json:"diagnostic_type" gorm:"column:diagnostic_type"`
	StatusCode           int       `json:"status_code" gorm:"column:status_code"`
	DiagnosticMessage    string    `json:"diagnostic_message" gorm:"column:diagnostic_message"`
	SeverityLevel        int       `json:"severity_level" gorm:"column:severity_level"`
	BatteryLevel         *float64  `json:"battery_level" gorm:"column:battery_level"`
	CommunicationQuality float64   `json:"communication_quality" gorm:"column:communication_quality"`
	InternalTemperature  float64   `json:"internal_temperature" gorm:"column:internal_temperature"`
	MaintenanceRequired  bool      `json:"maintenance_required" gorm:"column:maintenance_required"`
}

func (Diagnostic) TableName() string { return "device_diagnostics" }

func (Diagnostic) Header() []string {
	return []string{
		"diagnostic_id", "device_id", "timestamp", "diagnostic_type",
		"status_code", "diagnostic_message", "severity_level", "battery_level",
		"communication_quality", "internal_temperature", "maintenance_required",
	}
}

func (d Diagnostic) Row() []string {
	battery := ""
	if d.BatteryLevel != nil {
		battery = ftoa(*d.BatteryLevel)
	}
	maint := "0"
	if d.MaintenanceRequired {
		maint = "1"
	}
	return []string{
		d.DiagnosticID, d.DeviceID, d.Timestamp.Format(TimeLayout),
		d.DiagnosticType, strconv.Itoa(d.StatusCode), d.DiagnosticMessage,
		strconv.Itoa(d.SeverityLevel), battery, ftoa(d.CommunicationQuality),
		ftoa(d.InternalTemperature), maint,
	}
}

// ControlLoop is one row of the control_loops table.
type ControlLoop struct {
	LoopID                  string  `json:"loop_id" gorm:"column:loop_id;primaryKey"`
	LoopName                string  `json:"loop_name" gorm:"column:loop_name"`
	ProcessVariableSensorID string  `json:"process_variable_sensor_id" gorm:"column:process_variable_sensor_id"`
	ControlOutputActuatorID string  `json:"control_output_actuator_id" gorm:"column:control_output_actuator_id"`
	ControllerType          string  `json:"controller_type" gorm:"column:controller_type"`
	ControlMode             string  `json:"control_mode" gorm:"column:control_mode"`
	SetpointValue           float64 `json:"setpoint_value" gorm:"column:setpoint_value"`
	SetpointUnit            string  `json:"setpoint_unit" gorm:"column:setpoint_unit"`
	PValue                  float64 `json:"p_value" gorm:"column:p_value"`
	IValue                  float64 `json:"i_value" gorm:"column:i_value"`
	DValue                  float64 `json:"d_value" gorm:"column:d_value"`
	EquipmentID             string  `json:"equipment_id" gorm:"column:equipment_id"`
	Status                  string  `json:"status" gorm:"column:status"`
}

func (ControlLoop) TableName() string { return "control_loops" }

func (ControlLoop) Header() []string {
	return []string{
		"loop_id", "loop_name", "process_variable_sensor_id",
		"control_output_actuator_id", "controller_type", "control_mode",
		"setpoint_value", "setpoint_unit", "p_value", "i_value", "d_value",
		"equipment_id", "status",
	}
}

func (l ControlLoop) Row() []string {
	return []string{
		l.LoopID, l.LoopName, l.ProcessVariableSensorID,
		l.ControlOutputActuatorID, l.ControllerType, l.ControlMode,
		ftoa(l.SetpointValue), l.SetpointUnit, ftoa(l.PValue), ftoa(l.IValue),
		ftoa(l.DValue), l.EquipmentID, l.Status,
	}
}

func ftoa(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
