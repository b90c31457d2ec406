// Package logger wraps a package-level logrus.Logger behind the same
// Info/Warning/Error/active-gated call shape as the teacher's own logger
// package, upgraded from a bare *log.Logger per the rest of the pack's use
// of structured logging.
package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

type Logger struct {
	entry  *logrus.Entry
	active bool
}

var ldmLogger Logger

// InitializeLogger enables or disables logging and, when active, appends
// JSON log lines to logfilename.
func InitializeLogger(active bool, logfilename string) {
	if !active {
		ldmLogger = Logger{active: false}
		return
	}

	file, err := os.OpenFile(logfilename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0666)
	if err != nil {
		logrus.Fatal(err)
	}

	base := logrus.New()
	base.SetOutput(file)
	base.SetFormatter(&logrus.JSONFormatter{})

	ldmLogger = Logger{entry: base.WithField("component", "ldm"), active: true}
}

func (logger Logger) Info(msg string) {
	if logger.active {
		logger.entry.Info(msg)
	}
}

func (logger Logger) Warning(msg string) {
	if logger.active {
		logger.entry.Warning(msg)
	}
}

func (logger Logger) Error(msg any) {
	if logger.active {
		logger.entry.Error(msg)
	}
}

// Get returns the package-level logger configured by InitializeLogger.
func Get() Logger {
	return ldmLogger
}
