package services

import (
	"fmt"

	"github.com/denizozkan/sensorhub/internal/models"
)

// TriggerRule derives alerts from committed readings. Rules run after a
// batch commits and never affect the ingestion outcome; new threshold rules
// can be added without touching the pipeline.
type TriggerRule interface {
	Name() string

	// Evaluate inspects one committed reading and reports whether an alert
	// should be raised, with its severity and message.
	Evaluate(reading models.SensorData) (severity, message string, triggered bool)
}

// ThresholdRule raises an alert when a reading of the matching unit falls
// outside [Min, Max].
type ThresholdRule struct {
	RuleName string
	Unit     string
	Min      float64
	Max      float64
	Severity string
}

func (r ThresholdRule) Name() string {
	if r.RuleName != "" {
		return r.RuleName
	}
	return "threshold:" + r.Unit
}

func (r ThresholdRule) Evaluate(reading models.SensorData) (string, string, bool) {
	if reading.Unit != r.Unit {
		return "", "", false
	}
	if reading.Value >= r.Min && reading.Value <= r.Max {
		return "", "", false
	}

	severity := r.Severity
	if !models.ValidSeverity(severity) {
		severity = models.SeverityWarning
	}
	message := fmt.Sprintf("Reading %g %s is outside the allowed range [%g, %g]",
		reading.Value, reading.Unit, r.Min, r.Max)
	return severity, message, true
}
