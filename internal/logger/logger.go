package logger

import (
	"sync"
)

// Log levels used across the application.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

var (
	// globalLogger holds the singleton logger instance.
	globalLogger *Logger
	once         sync.Once
)

// Init returns the singleton logger, creating it on the first call with the
// given level and log file. An empty logFile keeps the log on the console
// only. Subsequent calls ignore the arguments and return the already
// initialized instance.
func Init(level, logFile string) *Logger {
	once.Do(func() {
		globalLogger = newZapLogger(level, logFile)
	})
	return globalLogger
}

// Get returns the singleton logger, initializing a console-only instance
// when Init has not run yet.
func Get(level string) *Logger {
	return Init(level, "")
}
