package logger

import (
	"fmt"
	"io"
	"os"
	"time"
)

// LogLevel represents different logging levels
type LogLevel int

const (
	LogLevelOff LogLevel = iota
	LogLevelError
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
	LogLevelTrace
)

// Logger handles all logging for the emulator
type Logger struct {
	level         LogLevel
	writer        io.Writer
	file          *os.File
	cpuEnabled    bool
	ppuEnabled    bool
	apuEnabled    bool
	mapperEnabled bool
	traceEnabled  bool
}

var globalLogger *Logger

// Initialize sets up the global logger
func Initialize(level LogLevel, filename string) error {
	var writer io.Writer = os.Stdout
	var file *os.File

	if filename != "" {
		f, err := os.Create(filename)
		if err != nil {
			return fmt.Errorf("failed to create log file: %w", err)
		}
		writer = f
		file = f
	}

	globalLogger = &Logger{
		level:  level,
		writer: writer,
		file:   file,
	}

	return nil
}

// Close flushes and closes the log file if one is open
func Close() {
	if globalLogger != nil && globalLogger.file != nil {
		globalLogger.file.Close()
	}
}

// GetLogLevelFromString converts a level name to a LogLevel
func GetLogLevelFromString(s string) LogLevel {
	switch s {
	case "off":
		return LogLevelOff
	case "error":
		return LogLevelError
	case "warn":
		return LogLevelWarn
	case "info":
		return LogLevelInfo
	case "debug":
		return LogLevelDebug
	case "trace":
		return LogLevelTrace
	default:
		return LogLevelInfo
	}
}

// SetCPULogging enables or disables CPU logging
func SetCPULogging(enabled bool) {
	if globalLogger != nil {
		globalLogger.cpuEnabled = enabled
	}
}

// SetPPULogging enables or disables PPU logging
func SetPPULogging(enabled bool) {
	if globalLogger != nil {
		globalLogger.ppuEnabled = enabled
	}
}

// SetAPULogging enables or disables APU logging
func SetAPULogging(enabled bool) {
	if globalLogger != nil {
		globalLogger.apuEnabled = enabled
	}
}

// SetMapperLogging enables or disables mapper logging
func SetMapperLogging(enabled bool) {
	if globalLogger != nil {
		globalLogger.mapperEnabled = enabled
	}
}

// SetTraceLogging enables or disables the CPU instruction tracer
func SetTraceLogging(enabled bool) {
	if globalLogger != nil {
		globalLogger.traceEnabled = enabled
	}
}

// TraceEnabled reports whether the instruction tracer should run.
// Formatting a disassembly line per instruction is expensive, so the
// CPU checks this before doing the work.
func TraceEnabled() bool {
	return globalLogger != nil && globalLogger.traceEnabled
}

func (l *Logger) log(level LogLevel, prefix, format string, args ...interface{}) {
	if l == nil || level > l.level {
		return
	}
	ts := time.Now().Format("15:04:05.000")
	fmt.Fprintf(l.writer, "[%s] %s: %s\n", ts, prefix, fmt.Sprintf(format, args...))
}

// LogError logs an error message
func LogError(format string, args ...interface{}) {
	globalLogger.log(LogLevelError, "ERROR", format, args...)
}

// LogWarn logs a warning message
func LogWarn(format string, args ...interface{}) {
	globalLogger.log(LogLevelWarn, "WARN", format, args...)
}

// LogInfo logs an informational message
func LogInfo(format string, args ...interface{}) {
	globalLogger.log(LogLevelInfo, "INFO", format, args...)
}

// LogDebug logs a debug message
func LogDebug(format string, args ...interface{}) {
	globalLogger.log(LogLevelDebug, "DEBUG", format, args...)
}

// LogCPU logs a CPU message when CPU logging is enabled
func LogCPU(format string, args ...interface{}) {
	if globalLogger != nil && globalLogger.cpuEnabled {
		globalLogger.log(LogLevelDebug, "CPU", format, args...)
	}
}

// LogPPU logs a PPU message when PPU logging is enabled
func LogPPU(format string, args ...interface{}) {
	if globalLogger != nil && globalLogger.ppuEnabled {
		globalLogger.log(LogLevelDebug, "PPU", format, args...)
	}
}

// LogAPU logs an APU message when APU logging is enabled
func LogAPU(format string, args ...interface{}) {
	if globalLogger != nil && globalLogger.apuEnabled {
		globalLogger.log(LogLevelDebug, "APU", format, args...)
	}
}

// LogMapper logs a mapper message when mapper logging is enabled
func LogMapper(format string, args ...interface{}) {
	if globalLogger != nil && globalLogger.mapperEnabled {
		globalLogger.log(LogLevelDebug, "MAPPER", format, args...)
	}
}

// LogTrace emits a raw tracer line with no prefix or timestamp
func LogTrace(line string) {
	if globalLogger == nil || !globalLogger.traceEnabled {
		return
	}
	fmt.Fprintln(globalLogger.writer, line)
}
