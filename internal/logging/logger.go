// Package logging is a small leveled wrapper around the standard logger.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// LogLevel orders message severities.
type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARN
	ERROR
)

func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a config string ("debug", "info", "warn", "error") to a level.
func ParseLevel(s string) (LogLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DEBUG, nil
	case "", "info":
		return INFO, nil
	case "warn", "warning":
		return WARN, nil
	case "error":
		return ERROR, nil
	}
	return INFO, fmt.Errorf("unknown log level %q", s)
}

type Logger struct {
	mu    sync.Mutex
	out   *log.Logger
	file  *os.File
	level LogLevel
}

// globalLogger writes to stderr until Init says otherwise, so packages can log
// before configuration is loaded.
var globalLogger = &Logger{
	out:   log.New(os.Stderr, "", log.LstdFlags),
	level: INFO,
}

// Init sets the minimum level and the destination. An empty path keeps stderr.
func Init(level LogLevel, path string) error {
	globalLogger.mu.Lock()
	defer globalLogger.mu.Unlock()

	globalLogger.level = level
	if path == "" {
		return nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create log dir: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	if globalLogger.file != nil {
		globalLogger.file.Close()
	}
	globalLogger.file = f
	globalLogger.out = log.New(f, "", log.LstdFlags)
	return nil
}

// SetOutput redirects logging to w.
func SetOutput(w io.Writer) {
	globalLogger.mu.Lock()
	defer globalLogger.mu.Unlock()
	globalLogger.out = log.New(w, "", 0)
}

// Close releases the log file, if any, and falls back to stderr.
func Close() {
	globalLogger.mu.Lock()
	defer globalLogger.mu.Unlock()
	if globalLogger.file != nil {
		globalLogger.file.Close()
		globalLogger.file = nil
	}
	globalLogger.out = log.New(os.Stderr, "", log.LstdFlags)
}

func LogDebug(format string, args ...any) { logMessage(DEBUG, format, args...) }
func LogInfo(format string, args ...any)  { logMessage(INFO, format, args...) }
func LogWarn(format string, args ...any)  { logMessage(WARN, format, args...) }
func LogError(format string, args ...any) { logMessage(ERROR, format, args...) }

func logMessage(level LogLevel, format string, args ...any) {
	globalLogger.mu.Lock()
	defer globalLogger.mu.Unlock()
	if level < globalLogger.level {
		return
	}
	globalLogger.out.Printf("[%s] %s", level, fmt.Sprintf(format, args...))
}
