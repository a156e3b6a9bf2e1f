package logging

import (
	"encoding/json"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

type Fields map[string]interface{}

var levelRank = map[string]int{"debug": 0, "info": 1, "warn": 2, "error": 3, "fatal": 4}

var (
	mu       sync.Mutex
	logger   = log.New(os.Stderr, "", 0)
	minLevel = levelFromEnv()
)

func levelFromEnv() int {
	if r, ok := levelRank[strings.ToLower(os.Getenv("DDC_LOG_LEVEL"))]; ok {
		return r
	}
	return levelRank["info"]
}

// SetOutput redirects log lines, mainly for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger.SetOutput(w)
}

func output(level, msg string, fields Fields) {
	if levelRank[level] < minLevel {
		return
	}
	// copy so callers can reuse their Fields value
	line := make(Fields, len(fields)+3)
	for k, v := range fields {
		line[k] = v
	}
	line["level"] = level
	line["ts"] = time.Now().UTC().Format(time.RFC3339)
	line["msg"] = msg
	b, err := json.Marshal(line)
	mu.Lock()
	defer mu.Unlock()
	if err != nil {
		// fallback to plain logging
		logger.Printf("%s: %s (%v)\n", level, msg, fields)
		return
	}
	logger.Println(string(b))
}

func withError(err error, fields Fields) Fields {
	if err == nil {
		return fields
	}
	out := make(Fields, len(fields)+1)
	for k, v := range fields {
		out[k] = v
	}
	out["error"] = err.Error()
	return out
}

// Debug logs a diagnostic message; suppressed unless DDC_LOG_LEVEL=debug.
func Debug(msg string, fields Fields) {
	output("debug", msg, fields)
}

// Info logs an informational message with optional fields.
func Info(msg string, fields Fields) {
	output("info", msg, fields)
}

func Warn(msg string, err error, fields Fields) {
	output("warn", msg, withError(err, fields))
}

// Error logs an error message and includes the error text in the fields.
func Error(msg string, err error, fields Fields) {
	output("error", msg, withError(err, fields))
}

// Fatal logs a fatal error and exits the process.
func Fatal(msg string, err error, fields Fields) {
	output("fatal", msg, withError(err, fields))
	os.Exit(1)
}
