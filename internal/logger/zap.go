package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap's SugaredLogger.
type Logger struct {
	*zap.SugaredLogger
}

// defaultZapLevel defines the fallback log level when an unknown level string is provided.
const defaultZapLevel = zapcore.DebugLevel

// fileTimeLayout is the timestamp format of station log file entries.
const fileTimeLayout = "2006-01-02 15:04:05"

// toZapLevel converts a textual level to zapcore.Level using known level constants.
func toZapLevel(levelStr string) zapcore.Level {
	switch levelStr {
	case InfoLevel:
		return zapcore.InfoLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return defaultZapLevel
	}
}

// newConsoleCore builds a zapcore.Core with a console encoder targeting stdout.
func newConsoleCore(level zapcore.Level) zapcore.Core {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = ""
	cfg.EncodeTime = zapcore.RFC3339TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder

	encoder := zapcore.NewConsoleEncoder(cfg)
	ws := zapcore.Lock(os.Stdout) // thread-safe writer
	return zapcore.NewCore(encoder, zapcore.AddSync(ws), zap.NewAtomicLevelAt(level))
}

// newFileCore builds a zapcore.Core appending timestamped entries to the
// given file, creating parent directories as needed.
func newFileCore(level zapcore.Level, path string) (zapcore.Core, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}

	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout(fileTimeLayout)
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder

	encoder := zapcore.NewConsoleEncoder(cfg)
	return zapcore.NewCore(encoder, zapcore.AddSync(f), zap.NewAtomicLevelAt(level)), nil
}

// newZapLogger constructs a sugared zap logger with the provided level
// string. A non-empty logFile adds a second core so entries land both on
// the console and in the station log file; if the file cannot be opened
// the logger stays console-only.
func newZapLogger(levelStr, logFile string) *Logger {
	level := toZapLevel(levelStr)
	consoleCore := newConsoleCore(level)

	if logFile == "" {
		return &Logger{SugaredLogger: zap.New(consoleCore).Sugar()}
	}

	fileCore, err := newFileCore(level, logFile)
	if err != nil {
		log := &Logger{SugaredLogger: zap.New(consoleCore).Sugar()}
		log.Warnw("log file unavailable, console only", "path", logFile, "err", err)
		return log
	}
	return &Logger{SugaredLogger: zap.New(zapcore.NewTee(consoleCore, fileCore)).Sugar()}
}
