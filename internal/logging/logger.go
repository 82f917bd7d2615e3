// Package logging provides structured logging to a file so the terminal UI stays clean.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logger configuration
type Config struct {
	File    string // Log file path (default: <data dir>/friday_<date>.log)
	Dir     string // Directory used when File is empty
	Level   string // debug, info, warn, error
	Console bool   // Also log to stderr
}

// Logger wraps zerolog with file output
type Logger struct {
	zlog    zerolog.Logger
	file    *os.File
	logPath string
}

// New creates a Logger writing to the configured file
func New(cfg Config) (*Logger, error) {
	logPath := cfg.File
	if logPath == "" {
		logPath = filepath.Join(cfg.Dir, fmt.Sprintf("friday_%s.log", time.Now().Format("2006-01-02")))
	}

	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	var w io.Writer = file
	if cfg.Console {
		w = io.MultiWriter(file, zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	}

	l := NewWithWriter(w, cfg.Level)
	l.file = file
	l.logPath = logPath
	l.zlog.Info().Str("component", "logging").Str("logFile", logPath).Msg("Logger initialized")
	return l, nil
}

// NewWithWriter creates a Logger on an arbitrary writer
func NewWithWriter(w io.Writer, level string) *Logger {
	return &Logger{
		zlog: zerolog.New(w).Level(ParseLevel(level)).With().
			Timestamp().
			Str("app", "friday").
			Logger(),
	}
}

// Nop returns a Logger that discards everything
func Nop() *Logger {
	return &Logger{zlog: zerolog.Nop()}
}

// ParseLevel maps a level name to zerolog, defaulting to info
func ParseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	}
	return zerolog.InfoLevel
}

// Component returns a zerolog.Logger with the component field set
func (l *Logger) Component(name string) zerolog.Logger {
	return l.zlog.With().Str("component", name).Logger()
}

// Path returns the current log file path
func (l *Logger) Path() string {
	return l.logPath
}

// Close closes the log file
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	l.zlog.Info().Str("component", "logging").Msg("Logger shutting down")
	return l.file.Close()
}
