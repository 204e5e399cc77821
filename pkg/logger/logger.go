// Package logger provides the structured logger used throughout this
// module: the parser, linker, and translator all report progress and
// recoverable problems through a Logger rather than writing to stdout
// directly, so a caller embedding this library can route it anywhere.
package logger

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Logger is the logging interface every package in this module depends on.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// LoggerConfig configures a StandardLogger.
type LoggerConfig struct {
	Level  string // debug, info, warn, error
	Format string // text, json
}

var levelOrder = map[string]int{"debug": 0, "info": 1, "warn": 2, "error": 3}

// StandardLogger writes leveled, optionally structured log lines to
// stderr.
type StandardLogger struct {
	level  string
	format string
}

// NewLogger builds a Logger from config, defaulting Level to "info" and
// Format to "text" when left empty.
func NewLogger(config LoggerConfig) Logger {
	level := config.Level
	if level == "" {
		level = "info"
	}
	format := config.Format
	if format == "" {
		format = "text"
	}
	return &StandardLogger{level: level, format: format}
}

// NewNoOpLogger returns a Logger that discards everything, for callers
// (tests, library embedders) that don't want log output at all.
func NewNoOpLogger() Logger {
	return noOpLogger{}
}

func (l *StandardLogger) shouldLog(level string) bool {
	want, ok := levelOrder[level]
	if !ok {
		return true
	}
	return want >= levelOrder[l.level]
}

func (l *StandardLogger) log(level, msg string, fields map[string]interface{}) {
	if !l.shouldLog(level) {
		return
	}
	ts := time.Now().Format("2006-01-02 15:04:05")
	var line string
	if l.format == "json" {
		line = l.formatJSON(level, msg, fields, ts)
	} else {
		line = l.formatText(level, msg, fields, ts)
	}
	fmt.Fprintln(os.Stderr, line)
}

func (l *StandardLogger) formatText(level, msg string, fields map[string]interface{}, ts string) string {
	out := fmt.Sprintf("[%s] %s: %s", ts, upper(level), msg)
	for _, k := range sortedKeys(fields) {
		out += fmt.Sprintf(" %s=%v", k, fields[k])
	}
	return out
}

func (l *StandardLogger) formatJSON(level, msg string, fields map[string]interface{}, ts string) string {
	entry := make(map[string]interface{}, len(fields)+3)
	for k, v := range fields {
		entry[k] = v
	}
	entry["timestamp"] = ts
	entry["level"] = level
	entry["message"] = msg
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Sprintf(`{"level":"error","message":"failed to marshal log entry: %s"}`, err.Error())
	}
	return string(data)
}

func (l *StandardLogger) Debug(msg string, fields map[string]interface{}) { l.log("debug", msg, fields) }
func (l *StandardLogger) Info(msg string, fields map[string]interface{})  { l.log("info", msg, fields) }
func (l *StandardLogger) Warn(msg string, fields map[string]interface{})  { l.log("warn", msg, fields) }
func (l *StandardLogger) Error(msg string, fields map[string]interface{}) { l.log("error", msg, fields) }

func upper(level string) string {
	switch level {
	case "debug":
		return "DEBUG"
	case "info":
		return "INFO"
	case "warn":
		return "WARN"
	case "error":
		return "ERROR"
	default:
		return level
	}
}

func sortedKeys(fields map[string]interface{}) []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}

type noOpLogger struct{}

func (noOpLogger) Debug(string, map[string]interface{}) {}
func (noOpLogger) Info(string, map[string]interface{})  {}
func (noOpLogger) Warn(string, map[string]interface{})  {}
func (noOpLogger) Error(string, map[string]interface{}) {}
