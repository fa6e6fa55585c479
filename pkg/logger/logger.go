package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

var (
	// InfoLogger writes informational entries to stdout
	InfoLogger *logrus.Logger
	// ErrorLogger writes error entries to stderr
	ErrorLogger *logrus.Logger
)

func init() {
	InfoLogger = logrus.New()
	InfoLogger.SetOutput(os.Stdout)
	InfoLogger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	InfoLogger.SetLevel(logrus.InfoLevel)

	ErrorLogger = logrus.New()
	ErrorLogger.SetOutput(os.Stderr)
	ErrorLogger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	ErrorLogger.SetLevel(logrus.ErrorLevel)
}

// Info logs an informational message with optional structured fields
func Info(msg string, fields map[string]interface{}) {
	if fields == nil {
		InfoLogger.Info(msg)
		return
	}
	InfoLogger.WithFields(fields).Info(msg)
}

// Error logs an error message with optional structured fields
func Error(msg string, fields map[string]interface{}) {
	if fields == nil {
		ErrorLogger.Error(msg)
		return
	}
	ErrorLogger.WithFields(fields).Error(msg)
}
