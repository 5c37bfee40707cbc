// Package common provides shared constants, types, and utilities
// used across the Network Settings application.
package common

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogLevel represents the severity level of a log message.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l LogLevel) logrusLevel() logrus.Level {
	switch l {
	case LevelDebug:
		return logrus.DebugLevel
	case LevelWarn:
		return logrus.WarnLevel
	case LevelError:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// AppLogger is the application logger. It writes to stdout and, once file
// logging is enabled, to a size-rotated file under the config directory.
type AppLogger struct {
	mu      sync.Mutex
	logger  *logrus.Logger
	rotator *lumberjack.Logger
}

// LogConfig holds configuration options for the logger.
type LogConfig struct {
	Level       LogLevel
	EnableFile  bool
	MaxFileSize int // in megabytes, default 5
	MaxBackups  int // number of rotated files to keep, default 5
}

var (
	defaultLogger *AppLogger
	loggerOnce    sync.Once
)

const (
	defaultMaxFileSize = 5
	defaultMaxBackups  = 5
)

func newLogrus(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006/01/02 15:04:05",
		DisableColors:   true,
	})
	return l
}

// GetLogger returns the singleton logger instance.
func GetLogger() *AppLogger {
	loggerOnce.Do(func() {
		defaultLogger = &AppLogger{logger: newLogrus(os.Stdout)}
	})
	return defaultLogger
}

// InitLogger initializes the logger with custom configuration.
// Should be called early in application startup.
func InitLogger(config LogConfig) error {
	logger := GetLogger()
	logger.SetLevel(config.Level)

	if !config.EnableFile {
		return nil
	}

	maxSize := config.MaxFileSize
	if maxSize <= 0 {
		maxSize = defaultMaxFileSize
	}
	maxBackups := config.MaxBackups
	if maxBackups <= 0 {
		maxBackups = defaultMaxBackups
	}
	return logger.EnableFileLogging(GetLogDir(), maxSize, maxBackups)
}

// SetLevel sets the minimum log level.
func (l *AppLogger) SetLevel(level LogLevel) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger.SetLevel(level.logrusLevel())
}

// SetOutput sets the log output destination.
func (l *AppLogger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger.SetOutput(w)
}

// EnableFileLogging mirrors log output into logDir/LogFileName, rotating the
// file once it grows past maxSizeMB.
func (l *AppLogger) EnableFileLogging(logDir string, maxSizeMB, maxBackups int) error {
	if logDir == "" {
		return fmt.Errorf("log directory is not available")
	}

	// Refuse symlinked locations so the log cannot be redirected elsewhere.
	if isSymlink(logDir) {
		return fmt.Errorf("security error: log directory is a symlink")
	}
	if err := os.MkdirAll(logDir, 0700); err != nil {
		return err
	}

	logPath := filepath.Join(logDir, LogFileName)
	if isSymlink(logPath) {
		return fmt.Errorf("security error: log file is a symlink")
	}

	rotator := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
		MaxAge:     30,
		Compress:   true,
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.rotator != nil {
		l.rotator.Close()
	}
	l.rotator = rotator
	l.logger.SetOutput(io.MultiWriter(os.Stdout, rotator))
	return nil
}

// entry returns a logrus entry annotated with the caller of the public
// logging helper.
func (l *AppLogger) entry(skip int) *logrus.Entry {
	e := logrus.NewEntry(l.logger)
	if _, file, line, ok := runtime.Caller(skip); ok {
		e = e.WithField("caller", fmt.Sprintf("%s:%d", filepath.Base(file), line))
	}
	return e
}

func (l *AppLogger) log(level LogLevel, msg string, args ...interface{}) {
	e := l.entry(3)
	if len(args) > 0 {
		e.Logf(level.logrusLevel(), msg, args...)
		return
	}
	e.Log(level.logrusLevel(), msg)
}

// Debug logs a debug message.
func (l *AppLogger) Debug(msg string, args ...interface{}) {
	l.log(LevelDebug, msg, args...)
}

// Info logs an informational message.
func (l *AppLogger) Info(msg string, args ...interface{}) {
	l.log(LevelInfo, msg, args...)
}

// Warn logs a warning message.
func (l *AppLogger) Warn(msg string, args ...interface{}) {
	l.log(LevelWarn, msg, args...)
}

// Error logs an error message.
func (l *AppLogger) Error(msg string, args ...interface{}) {
	l.log(LevelError, msg, args...)
}

// WithFields returns an entry carrying structured fields.
func (l *AppLogger) WithFields(fields logrus.Fields) *logrus.Entry {
	return l.entry(2).WithFields(fields)
}

// Shorthand functions for default logger.

// LogDebug logs a debug message to the default logger.
func LogDebug(msg string, args ...interface{}) {
	GetLogger().log(LevelDebug, msg, args...)
}

// LogInfo logs an info message to the default logger.
func LogInfo(msg string, args ...interface{}) {
	GetLogger().log(LevelInfo, msg, args...)
}

// LogWarn logs a warning message to the default logger.
func LogWarn(msg string, args ...interface{}) {
	GetLogger().log(LevelWarn, msg, args...)
}

// LogError logs an error message to the default logger.
func LogError(msg string, args ...interface{}) {
	GetLogger().log(LevelError, msg, args...)
}

// LogWith returns an entry of the default logger carrying fields.
func LogWith(fields logrus.Fields) *logrus.Entry {
	return GetLogger().entry(2).WithFields(fields)
}

// Close closes the log file. Should be called on application shutdown.
func (l *AppLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.rotator == nil {
		return nil
	}
	err := l.rotator.Close()
	l.rotator = nil
	l.logger.SetOutput(os.Stdout)
	return err
}

// CloseLogger closes the default logger.
func CloseLogger() error {
	return GetLogger().Close()
}
