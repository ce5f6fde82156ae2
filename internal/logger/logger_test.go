package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLogger() (*logrus.Logger, *bytes.Buffer) {
	log := logrus.New()
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.DebugLevel)
	return log, buf
}

func parseLogOutput(buf *bytes.Buffer) map[string]interface{} {
	var logEntry map[string]interface{}
	err := json.Unmarshal(buf.Bytes(), &logEntry)
	if err != nil {
		return nil
	}
	return logEntry
}

func TestNewLoggerLevelAndFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewLoggerWithOutput("debug", "json", buf)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	log.WithField("k", "v").Info("hello")
	entry := parseLogOutput(buf)
	require.NotNil(t, entry)
	assert.Equal(t, "v", entry["k"])
}

func TestNewLoggerInvalidLevelDefaultsToInfo(t *testing.T) {
	log := NewLoggerWithOutput("chatty", "text", &bytes.Buffer{})
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}

func TestSimulationLoggerCompleted(t *testing.T) {
	log, buf := setupTestLogger()
	simLogger := NewSimulationLogger(log)

	simLogger.LogSimulationCompleted(1000, 912.5, 38.2, 0, 2600, 4.2)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "simulation", logEntry["component"])
	assert.Equal(t, float64(1000), logEntry["num_trials"])
	assert.Equal(t, 38.2, logEntry["profitable_percentage"])
}

func TestSimulationLoggerStarted(t *testing.T) {
	log, buf := setupTestLogger()
	simLogger := NewSimulationLogger(log)

	simLogger.LogSimulationStarted(1000, 100, 2.0, 0.45, 20, 1000, true)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, 0.45, logEntry["win_probability"])
	assert.Equal(t, true, logEntry["seeded"])
}

func TestSimulationLoggerRejected(t *testing.T) {
	log, buf := setupTestLogger()
	simLogger := NewSimulationLogger(log)

	simLogger.LogSimulationRejected("validation", errors.New("odds must be greater than 1"))

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "warning", logEntry["level"])
	assert.Equal(t, "odds must be greater than 1", logEntry["error"])
}

func TestAuditLoggerScenarioSaved(t *testing.T) {
	log, buf := setupTestLogger()
	auditLogger := NewAuditLogger(log)

	auditLogger.LogScenarioSaved("abc", "Conservative", time.Date(2025, 5, 10, 12, 0, 0, 0, time.UTC))

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "saved", logEntry["event_type"])
	assert.Equal(t, "Conservative", logEntry["name"])
}

func TestAuditLoggerScenarioDeleted(t *testing.T) {
	log, buf := setupTestLogger()
	auditLogger := NewAuditLogger(log)

	auditLogger.LogScenarioDeleted("abc")

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "deleted", logEntry["event_type"])
	assert.Equal(t, "audit", logEntry["component"])
}

func TestAPILoggerServerErrorLevel(t *testing.T) {
	log, buf := setupTestLogger()
	apiLogger := NewAPILogger(log)

	apiLogger.LogRequest("req-1", "POST", "/api/simulations", 500, 12*time.Millisecond)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "error", logEntry["level"])
	assert.Equal(t, float64(12), logEntry["duration_ms"])
}

func BenchmarkSimulationLoggerCompleted(b *testing.B) {
	log := logrus.New()
	log.SetOutput(&bytes.Buffer{})
	simLogger := NewSimulationLogger(log)

	for i := 0; i < b.N; i++ {
		simLogger.LogSimulationCompleted(1000, 912.5, 38.2, 0, 2600, 4.2)
	}
}
