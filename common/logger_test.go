package common

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(buf *bytes.Buffer, level LogLevel) *AppLogger {
	l := &AppLogger{logger: newLogrus(buf)}
	l.SetLevel(level)
	return l
}

func TestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    LogLevel
		expected string
	}{
		{LevelDebug, "DEBUG"},
		{LevelInfo, "INFO"},
		{LevelWarn, "WARN"},
		{LevelError, "ERROR"},
		{LogLevel(99), "UNKNOWN"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.level.String())
		})
	}
}

func TestAppLogger_SetLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, LevelInfo)

	logger.SetLevel(LevelDebug)
	assert.Equal(t, logrus.DebugLevel, logger.logger.GetLevel())
}

func TestAppLogger_LogFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, LevelWarn)

	logger.Debug("debug message")
	logger.Info("info message")
	assert.Zero(t, buf.Len(), "debug/info messages should be filtered when level is warn")

	logger.Warn("warn message")
	assert.Contains(t, buf.String(), "level=warning")

	buf.Reset()
	logger.Error("error message")
	assert.Contains(t, buf.String(), "level=error")
}

func TestAppLogger_LogFormatting(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, LevelDebug)

	logger.Info("Test message with %s", "formatting")

	output := buf.String()
	assert.Contains(t, output, "level=info")
	assert.Contains(t, output, "Test message with formatting")
	assert.Contains(t, output, "logger_test.go:")
}

func TestAppLogger_WithFields(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, LevelDebug)

	logger.WithFields(logrus.Fields{"path": "/net/connman/technology/wifi"}).Info("registered")

	assert.Contains(t, buf.String(), "path=/net/connman/technology/wifi")
}

func TestAppLogger_EnableFileLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, LevelInfo)
	dir := filepath.Join(t.TempDir(), "logs")

	require.NoError(t, logger.EnableFileLogging(dir, 1, 1))
	logger.Info("written to file")
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(filepath.Join(dir, LogFileName))
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "written to file"))
}

func TestAppLogger_EnableFileLoggingRejectsSymlink(t *testing.T) {
	var buf bytes.Buffer
	logger := newTestLogger(&buf, LevelInfo)

	base := t.TempDir()
	target := filepath.Join(base, "real")
	require.NoError(t, os.Mkdir(target, 0700))
	link := filepath.Join(base, "logs")
	require.NoError(t, os.Symlink(target, link))

	err := logger.EnableFileLogging(link, 1, 1)
	assert.Error(t, err)
}

func TestWrapError(t *testing.T) {
	assert.Nil(t, WrapError(nil, "context"))

	err := WrapError(ErrRemoteCall, "GetTechnologies")
	assert.EqualError(t, err, "GetTechnologies: remote call failed")
	assert.True(t, errors.Is(err, ErrRemoteCall))
}

func TestFileExists(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "exists")
	require.NoError(t, err)
	f.Close()

	assert.True(t, FileExists(f.Name()))
	assert.False(t, FileExists("/nonexistent/path/to/file"))
}

func TestNewRunID(t *testing.T) {
	a, b := NewRunID(), NewRunID()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}
