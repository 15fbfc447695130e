package synth

import (
	"math/rand"

	"plantgen/internal/catalog"
	"plantgen/internal/model"
	"plantgen/internal/refpool"
)

const (
	healthFloor  = 50.0
	probWireless = 0.3
	probRecharge = 0.2

	diagnosticsProgressEvery = 10000
)

// deviceRef is the unified device view diagnostics iterate over.
type deviceRef struct {
	id      string
	kind    string // "sensor" | "actuator"
	subtype string
	status  string
}

// GenerateDiagnostics emits DiagnosticsPerDevice records for every sensor
// and actuator over the diagnostics window. Each device carries a latent
// health score that starts at 100 and decays across the sequence, faster for
// devices already in Maintenance or Fault status; severity, status code and
// message all derive from that score. The score never drops below 50.
func (g *Generator) GenerateDiagnostics() error {
	if len(g.sensors) == 0 {
		return errNoSensors
	}
	if len(g.actuators) == 0 {
		return errNoActuators
	}

	devices := make([]deviceRef, 0, len(g.sensors)+len(g.actuators))
	for _, s := range g.sensors {
		devices = append(devices, deviceRef{id: s.SensorID, kind: "sensor", subtype: s.SensorType, status: s.Status})
	}
	for _, a := range g.actuators {
		devices = append(devices, deviceRef{id: a.ActuatorID, kind: "actuator", subtype: a.ActuatorType, status: a.Status})
	}

	n := g.params.DiagnosticsPerDevice
	total := 0
	for _, dev := range devices {
		vocabulary := catalog.SensorDiagnostics
		if dev.kind == "actuator" {
			vocabulary = catalog.ActuatorDiagnostics
		}

		times := SortedUniformTimes(g.rng, g.params.DiagnosticsStart, g.params.DiagnosticsEnd, n)

		health := 100.0
		rate := 0.1 + 1.9*g.rng.Float64()
		factor := 1.0
		if dev.status == "Maintenance" || dev.status == "Fault" {
			factor = 2.0
		}
		wireless := g.rng.Float64() < probWireless

		for i := 0; i < n; i++ {
			// Position in the sequence; a single-sample sequence sits at 0.
			t := 0.0
			if n > 1 {
				t = float64(i) / float64(n-1)
			}

			decrease := rate * factor * t
			decrease += (g.rng.Float64() - 0.5) * decrease
			health -= decrease
			if health < healthFloor {
				health = healthFloor
			}

			severity := severityFor(g.rng, health)

			d := model.Diagnostic{
				DiagnosticID:        refpool.NewID(g.rng, "DIAG", 12),
				DeviceID:            dev.id,
				Timestamp:           times[i],
				DiagnosticType:      catalog.Choice(g.rng, vocabulary),
				StatusCode:          severity,
				DiagnosticMessage:   catalog.Choice(g.rng, catalog.DiagnosticMessages[severity]),
				SeverityLevel:       severity,
				MaintenanceRequired: severity >= 3,
			}

			if wireless {
				level := batteryLevel(g.rng, t)
				d.BatteryLevel = &level
			}

			comm := 100 - 20*t + (g.rng.Float64()*20 - 15)
			d.CommunicationQuality = round1(clamp(comm, 60, 100))

			if dev.kind == "sensor" {
				d.InternalTemperature = round1(25 + 5*t + (g.rng.Float64()*8 - 3))
			} else {
				d.InternalTemperature = round1(30 + 8*t + (g.rng.Float64()*11 - 3))
			}

			if err := g.emit(&d); err != nil {
				return err
			}
			total++
			if total%diagnosticsProgressEvery == 0 {
				g.log.Info().Int("diagnostics", total).Msg("progress")
			}
		}
	}
	g.log.Info().Int("diagnostics", total).Msg("device diagnostics generated")
	return nil
}

// severityFor draws a severity level from a health-banded candidate set.
// Lower health bands skew the candidates toward the high severities, so the
// expected severity rises monotonically as health decays.
func severityFor(rng *rand.Rand, health float64) int {
	var candidates []int
	switch {
	case health > 95:
		candidates = []int{0}
	case health > 90:
		candidates = []int{0, 0, 0, 1}
	case health > 80:
		candidates = []int{0, 0, 1, 1, 2}
	case health > 70:
		candidates = []int{0, 1, 1, 2, 2}
	case health > 60:
		candidates = []int{1, 2, 2, 3, 3}
	default:
		candidates = []int{2, 3, 3, 4, 4, 5}
	}
	return candidates[rng.Intn(len(candidates))]
}

// batteryLevel models a wireless device's battery: decaying from 100 toward
// 50 across the window, with occasional partial recharges, clamped to
// [5, 100].
func batteryLevel(rng *rand.Rand, t float64) float64 {
	base := 100 - 50*t
	if rng.Float64() < probRecharge {
		base += 30 + 50*rng.Float64()
		if base > 100 {
			base = 100
		}
	}
	level := base + (rng.Float64()*20 - 10)
	return round1(clamp(level, 5, 100))
}
