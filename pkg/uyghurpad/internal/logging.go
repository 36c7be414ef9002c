package internal

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	logFile     *os.File
	logDir      = "logs"
	logFilename = "uyghurpad.log"

	setupOnce   sync.Once
	multiWriter io.Writer = os.Stdout

	loggerOnce sync.Once
	logger     *slog.Logger
	levelVar   = &slog.LevelVar{}

	internalLoggerOnce sync.Once
	internalLogger     *slog.Logger
	internalLevelVar   = &slog.LevelVar{}
)

// SetLogFile chooses where the JSON log is appended. A bare filename lands
// under logs/, a path with a directory component is used as given. Must be
// called before the first logger is requested.
func SetLogFile(path string) {
	if path == "" {
		return
	}
	if dir := filepath.Dir(path); dir != "." {
		logDir = dir
	}
	logFilename = filepath.Base(path)
}

func setup() {
	setupOnce.Do(func() {
		if err := os.MkdirAll(logDir, 0755); err != nil {
			slog.Warn("log directory unavailable, logging to stdout only", "dir", logDir, "error", err)
			return
		}

		f, err := os.OpenFile(filepath.Join(logDir, logFilename), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			slog.Warn("log file unavailable, logging to stdout only", "file", logFilename, "error", err)
			return
		}

		logFile = f
		multiWriter = io.MultiWriter(os.Stdout, logFile)
	})
}

func newJSONLogger(level *slog.LevelVar) *slog.Logger {
	setup()
	return slog.New(slog.NewJSONHandler(multiWriter, &slog.HandlerOptions{Level: level}))
}

// GetLogger returns the application logger.
func GetLogger() *slog.Logger {
	loggerOnce.Do(func() {
		logger = newJSONLogger(levelVar)
	})
	return logger
}

// GetInternalLogger returns the logger used by the SDL view layer.
func GetInternalLogger() *slog.Logger {
	internalLoggerOnce.Do(func() {
		internalLogger = newJSONLogger(internalLevelVar).With("component", "view")
	})
	return internalLogger
}

func SetLogLevel(level slog.Level) {
	levelVar.Set(level)
}

func SetInternalLogLevel(level slog.Level) {
	internalLevelVar.Set(level)
}

// ParseLogLevel maps a config string onto a slog level, defaulting to info.
func ParseLogLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// SetRawLogLevel applies a config level string to both loggers.
func SetRawLogLevel(rawLevel string) {
	level := ParseLogLevel(rawLevel)
	SetLogLevel(level)
	SetInternalLogLevel(level)
}

func CloseLogger() {
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}
