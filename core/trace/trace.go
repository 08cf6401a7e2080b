// Package trace is a standardized event logging framework for the shell.
package trace

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"time"
)

// Entry is a single logged event. Exactly one of the event fields is
// set.
type Entry struct {
	// TimestampMicros is the entry's creation time in microseconds since
	// the Unix epoch.
	TimestampMicros int64 `json:"timestamp_micros"`
	// SessionID ties the entry to one run of the shell.
	SessionID string `json:"session_id,omitempty"`

	Exec       *Exec       `json:"exec,omitempty"`
	ExecError  *ExecError  `json:"exec_error,omitempty"`
	Builtin    *Builtin    `json:"builtin,omitempty"`
	Wait       *Wait       `json:"wait,omitempty"`
	ParseError *ParseError `json:"parse_error,omitempty"`
}

// Event is one of the entry payload types.
type Event interface {
	attach(le *Entry)
}

// Exec records an external command launch.
type Exec struct {
	// Path of the resolved executable.
	Path string `json:"path"`
	// Argv holds the command line, including the command name as Argv[0].
	Argv []string `json:"argv"`
}

func (e *Exec) attach(le *Entry) { le.Exec = e }

// ExecError records an external command that couldn't be launched.
type ExecError struct {
	Argv0 string `json:"argv0"`
	Error string `json:"error"`
}

func (e *ExecError) attach(le *Entry) { le.ExecError = e }

// Builtin records a builtin dispatch.
type Builtin struct {
	Name string   `json:"name"`
	Argv []string `json:"argv"`
	// Error is set when the builtin rejected its invocation.
	Error string `json:"error,omitempty"`
}

func (e *Builtin) attach(le *Entry) { le.Builtin = e }

// Wait records an external command finishing.
type Wait struct {
	PID        int `json:"pid"`
	ExitStatus int `json:"exit_status"`
}

func (e *Wait) attach(le *Entry) { le.Wait = e }

// ParseError records input the shell rejected.
type ParseError struct {
	Line  string `json:"line"`
	Error string `json:"error"`
}

func (e *ParseError) attach(le *Entry) { le.ParseError = e }

// Recorder is a callback that stores entries in an external datastore.
type Recorder func(le *Entry) error

// Logger captures shell events for later analysis.
type Logger struct {
	Record Recorder

	// Now stamps entries. Settable for deterministic tests; nil means
	// time.Now.
	Now func() time.Time
}

// NewJSONLinesLogger creates a Logger that writes newline delimited JSON
// objects to w.
func NewJSONLinesLogger(w io.Writer) *Logger {
	return &Logger{
		Record: func(le *Entry) error {
			entry, err := json.Marshal(le)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(w, string(entry))
			return err
		},
	}
}

// NewNopLogger creates a Logger that drops every entry.
func NewNopLogger() *Logger {
	return &Logger{
		Record: func(le *Entry) error { return nil },
	}
}

func (l *Logger) now() time.Time {
	if l.Now == nil {
		return time.Now()
	}
	return l.Now()
}

// NewSession creates a logger with a fresh session ID attached.
func (l *Logger) NewSession() *SessionLogger {
	return &SessionLogger{Logger: l, sessionID: fmt.Sprintf("%d", rand.Uint64())}
}

// Sessionless creates a logger with no session ID attached.
func (l *Logger) Sessionless() *SessionLogger {
	return &SessionLogger{Logger: l}
}

// SessionLogger logs events with a shared session ID.
type SessionLogger struct {
	*Logger
	sessionID string
}

// Record stamps and stores a single event.
func (l *SessionLogger) Record(event Event) error {
	le := &Entry{
		TimestampMicros: l.now().UnixMicro(),
		SessionID:       l.sessionID,
	}
	event.attach(le)
	return l.Logger.Record(le)
}

var discard = NewNopLogger().Sessionless()

// Discard returns a shared logger that drops everything.
func Discard() *SessionLogger {
	return discard
}

// ReadJSONLinesLog parses a newline delimited JSON log.
func ReadJSONLinesLog(r io.Reader, handler func(le *Entry)) error {
	decoder := json.NewDecoder(r)
	for decoder.More() {
		var logEntry Entry
		if err := decoder.Decode(&logEntry); err != nil {
			return err
		}

		handler(&logEntry)
	}
	return nil
}
