// Package logger provides HTTP request logging.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// APILogger logs HTTP traffic.
type APILogger struct {
	*logrus.Entry
}

// NewAPILogger creates a new API logger.
func NewAPILogger(baseLogger *logrus.Logger) *APILogger {
	return &APILogger{
		Entry: baseLogger.WithField("component", "api"),
	}
}

// LogRequest logs a completed request. Server errors are logged at error level.
func (al *APILogger) LogRequest(requestID, method, path string, status int, duration time.Duration) {
	entry := al.WithFields(logrus.Fields{
		"request_id":  requestID,
		"method":      method,
		"path":        path,
		"status":      status,
		"duration_ms": float64(duration.Microseconds()) / 1000,
	})
	if status >= 500 {
		entry.Error("Request failed")
		return
	}
	entry.Info("Request handled")
}
