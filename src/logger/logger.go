// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/H0llyW00dzZ/mcp-prompt-server/src/internal/helper/gc"
)

// Log levels emitted by StructuredLogger.
const (
	LevelInfo  = "info"
	LevelError = "error"
)

// Output formats accepted by New.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Logger defines the interface for logging operations.
// It provides methods for different log levels and formatted output.
//
// This interface supports both stdio [MCP] serving and the HTTP server, allowing
// seamless switching between human-readable output and structured logging.
//
// [MCP]: https://modelcontextprotocol.io/docs/getting-started/intro
type Logger interface {
	// Printf formats and prints an informational message.
	Printf(format string, v ...any)
	// Println prints an informational message with a newline.
	Println(v ...any)
	// Errorf formats and prints an error message.
	Errorf(format string, v ...any)
	// SetOutput sets the output destination for the logger.
	SetOutput(w io.Writer)
}

// New returns a Logger for the given format ("text" or "json") writing to stderr.
// Silent loggers discard every message. Unknown formats fall back to text.
func New(format, component string, silent bool) Logger {
	var w io.Writer = os.Stderr
	if silent {
		w = io.Discard
	}
	if strings.EqualFold(format, FormatJSON) {
		return NewStructuredLogger(w, component, silent)
	}
	l := NewCLILogger()
	l.SetOutput(w)
	return l
}

// CLILogger implements Logger using the standard log package.
// It's designed for human-readable diagnostics on standard error.
type CLILogger struct{ logger *log.Logger }

// NewCLILogger creates a new CLI logger with timestamps disabled.
func NewCLILogger() *CLILogger {
	l := log.New(os.Stderr, "", 0)
	return &CLILogger{logger: l}
}

// Printf formats and prints a log message using fmt.Printf semantics.
func (c *CLILogger) Printf(format string, v ...any) { c.logger.Printf(format, v...) }

// Println prints a log message with a newline.
func (c *CLILogger) Println(v ...any) { c.logger.Println(v...) }

// Errorf prints a log message prefixed with "error: ".
func (c *CLILogger) Errorf(format string, v ...any) { c.logger.Printf("error: "+format, v...) }

// SetOutput sets the output destination for the CLI logger.
func (c *CLILogger) SetOutput(w io.Writer) {
	if w == nil {
		w = io.Discard
	}
	c.logger.SetOutput(w)
}

// StructuredLogger implements Logger by writing one JSON object per line.
//
// Each entry carries "level", "component" (when set) and "message" keys.
// Entries are encoded into pooled buffers and written with a single call,
// so concurrent writers never interleave partial lines.
//
// StructuredLogger is safe for concurrent use by multiple goroutines.
type StructuredLogger struct {
	mu        sync.Mutex
	writer    io.Writer
	component string
	silent    bool
}

// entry is the wire shape of a structured log line.
type entry struct {
	Level     string `json:"level"`
	Component string `json:"component,omitempty"`
	Message   string `json:"message"`
}

// NewStructuredLogger creates a new structured logger.
// A nil writer discards output. Set silent=true to suppress every message,
// which is what the stdio server does when the configuration asks for quiet operation.
func NewStructuredLogger(writer io.Writer, component string, silent bool) *StructuredLogger {
	if writer == nil {
		writer = io.Discard
	}
	return &StructuredLogger{
		writer:    writer,
		component: component,
		silent:    silent,
	}
}

// Printf formats and logs an info entry.
func (s *StructuredLogger) Printf(format string, v ...any) {
	s.write(LevelInfo, fmt.Sprintf(format, v...))
}

// Println logs an info entry built with fmt.Sprint semantics.
func (s *StructuredLogger) Println(v ...any) {
	s.write(LevelInfo, fmt.Sprint(v...))
}

// Errorf formats and logs an error entry.
func (s *StructuredLogger) Errorf(format string, v ...any) {
	s.write(LevelError, fmt.Sprintf(format, v...))
}

// SetOutput sets the output destination for the structured logger.
//
// SetOutput is safe for concurrent use by multiple goroutines.
func (s *StructuredLogger) SetOutput(w io.Writer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if w == nil {
		s.writer = io.Discard
	} else {
		s.writer = w
	}
}

func (s *StructuredLogger) write(level, msg string) {
	if s.silent {
		return
	}

	buf := gc.Default.Get()
	defer gc.Default.Put(buf)

	// json.Encoder appends the trailing newline.
	if err := json.NewEncoder(buf).Encode(entry{
		Level:     level,
		Component: s.component,
		Message:   msg,
	}); err != nil {
		return
	}

	s.mu.Lock()
	_, _ = s.writer.Write(buf.Bytes())
	s.mu.Unlock()
}
