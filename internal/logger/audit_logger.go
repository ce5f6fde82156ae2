// Package logger provides audit logging.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// AuditLogger records changes to saved scenarios.
type AuditLogger struct {
	*logrus.Entry
}

// NewAuditLogger creates a new audit logger.
func NewAuditLogger(baseLogger *logrus.Logger) *AuditLogger {
	return &AuditLogger{
		Entry: baseLogger.WithField("component", "audit"),
	}
}

// LogScenarioSaved logs a newly stored scenario.
func (al *AuditLogger) LogScenarioSaved(scenarioID, name string, createdAt time.Time) {
	al.WithFields(logrus.Fields{
		"event_type":  "saved",
		"scenario_id": scenarioID,
		"name":        name,
		"timestamp":   createdAt.Unix(),
	}).Info("Scenario saved")
}

// LogScenarioDuplicated logs a scenario copy.
func (al *AuditLogger) LogScenarioDuplicated(sourceID, copyID, name string) {
	al.WithFields(logrus.Fields{
		"event_type":  "duplicated",
		"source_id":   sourceID,
		"scenario_id": copyID,
		"name":        name,
	}).Info("Scenario duplicated")
}

// LogScenarioDeleted logs a scenario removal.
func (al *AuditLogger) LogScenarioDeleted(scenarioID string) {
	al.WithFields(logrus.Fields{
		"event_type":  "deleted",
		"scenario_id": scenarioID,
	}).Info("Scenario deleted")
}

// LogScenarioSweep logs a scheduled cleanup pass.
func (al *AuditLogger) LogScenarioSweep(remaining int) {
	al.WithFields(logrus.Fields{
		"event_type": "sweep",
		"remaining":  remaining,
	}).Debug("Expired scenarios swept")
}
