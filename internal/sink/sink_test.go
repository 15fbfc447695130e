package sink

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"plantgen/internal/model"
)

func sampleReading(id string, value float64) *model.Reading {
	return &model.Reading{
		ReadingID:        id,
		SensorID:         "SEN-AABBCCDD",
		Timestamp:        time.Date(2024, 2, 1, 12, 30, 0, 0, time.UTC),
		Value:            value,
		QualityIndicator: 97.5,
		StatusCode:       1,
		BatchID:          "BATCH-11223344",
		EquipmentStateID: "STATE-55667788",
	}
}

func sampleSensor() *model.Sensor {
	return &model.Sensor{
		SensorID:            "SEN-AABBCCDD",
		EquipmentID:         "EQ-99887766",
		SensorType:          "temperature",
		Manufacturer:        "Siemens",
		ModelNumber:         "M-AB1234",
		InstallationDate:    time.Date(2022, 6, 15, 0, 0, 0, 0, time.UTC),
		CalibrationDueDate:  time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
		MeasurementUnit:     "°C",
		MeasurementRangeMin: 0,
		MeasurementRangeMax: 150,
		Accuracy:            0.5,
		Status:              "Active",
	}
}

func TestCSVDirWritesHeaderOncePerTable(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	s, err := NewCSVDir(dir)
	if err != nil {
		t.Fatalf("NewCSVDir failed: %v", err)
	}

	recs := []model.Tabular{
		sampleSensor(),
		sampleReading("READ-000000000001", 21.5),
		sampleReading("READ-000000000002", 22.75),
	}
	for _, rec := range recs {
		if err := s.Write(rec); err != nil {
			t.Fatalf("Write failed: %v", err)
		}
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	f, err := os.Open(filepath.Join(dir, "sensor_readings.csv"))
	if err != nil {
		t.Fatalf("open readings csv: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("parse readings csv: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d rows", len(rows))
	}
	if strings.Join(rows[0], ",") != strings.Join(model.Reading{}.Header(), ",") {
		t.Fatalf("unexpected header %v", rows[0])
	}
	if rows[1][0] != "READ-000000000001" || rows[2][3] != "22.75" {
		t.Fatalf("unexpected row content: %v / %v", rows[1], rows[2])
	}

	if _, err := os.Stat(filepath.Join(dir, "sensors.csv")); err != nil {
		t.Fatalf("sensors table missing: %v", err)
	}
}

func TestJSONLDirRoundTrip(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	s, err := NewJSONLDir(dir)
	if err != nil {
		t.Fatalf("NewJSONLDir failed: %v", err)
	}
	if err := s.Write(sampleReading("READ-000000000003", 19.25)); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	b, err := os.ReadFile(filepath.Join(dir, "sensor_readings.jsonl"))
	if err != nil {
		t.Fatalf("read jsonl: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(b), "\n"), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	var got model.Reading
	if err := json.Unmarshal([]byte(lines[0]), &got); err != nil {
		t.Fatalf("parse line: %v", err)
	}
	if got.ReadingID != "READ-000000000003" || got.Value != 19.25 {
		t.Fatalf("unexpected record %+v", got)
	}
}

func TestMultiFansOutToAllSinks(t *testing.T) {
	t.Parallel()
	a, err := NewCSVDir(t.TempDir())
	if err != nil {
		t.Fatalf("NewCSVDir failed: %v", err)
	}
	b, err := NewJSONLDir(t.TempDir())
	if err != nil {
		t.Fatalf("NewJSONLDir failed: %v", err)
	}
	m := Multi{a, b}
	if err := m.Write(sampleSensor()); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(a.dir, "sensors.csv")); err != nil {
		t.Fatalf("csv member missed record: %v", err)
	}
	if _, err := os.Stat(filepath.Join(b.dir, "sensors.jsonl")); err != nil {
		t.Fatalf("jsonl member missed record: %v", err)
	}
}

func TestSQLiteRoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "test.sqlite")
	s, err := NewSQLite(path)
	if err != nil {
		t.Fatalf("NewSQLite failed: %v", err)
	}
	if err := s.Write(sampleSensor()); err != nil {
		t.Fatalf("Write sensor failed: %v", err)
	}
	if err := s.Write(sampleReading("READ-000000000004", 33.5)); err != nil {
		t.Fatalf("Write reading failed: %v", err)
	}

	var count int64
	if err := s.db.Model(&model.Reading{}).Count(&count).Error; err != nil {
		t.Fatalf("count readings: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 reading, got %d", count)
	}
	var got model.Sensor
	if err := s.db.First(&got, "sensor_id = ?", "SEN-AABBCCDD").Error; err != nil {
		t.Fatalf("query sensor: %v", err)
	}
	if got.SensorType != "temperature" {
		t.Fatalf("unexpected sensor %+v", got)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
}

func TestWriteManifest(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "manifest.json")
	summary := map[string]any{"seed": 42, "counts": map[string]int{"sensors": 5}}
	if err := WriteManifest(path, summary); err != nil {
		t.Fatalf("WriteManifest failed: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("parse manifest: %v", err)
	}
	if got["seed"].(float64) != 42 {
		t.Fatalf("unexpected manifest %v", got)
	}
}
