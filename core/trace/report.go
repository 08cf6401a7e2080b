package trace

import (
	"encoding/json"
	"fmt"
)

// Report holds statistics about the logged events.
type Report struct {
	LogEntries     int        `json:"log_entries"`
	InvalidEntries StrCounter `json:"invalid_log_entries,omitempty"`

	Exec       ExecReport       `json:"exec_report"`
	Builtin    BuiltinReport    `json:"builtin_report"`
	Wait       WaitReport       `json:"wait_report"`
	ParseError ParseErrorReport `json:"parse_error_report"`
}

func (r *Report) Update(le *Entry) {
	r.LogEntries++

	switch {
	case le.Exec != nil:
		r.Exec.update(le.Exec)
	case le.ExecError != nil:
		r.Exec.updateError(le.ExecError)
	case le.Builtin != nil:
		r.Builtin.update(le.Builtin)
	case le.Wait != nil:
		r.Wait.update(le.Wait)
	case le.ParseError != nil:
		r.ParseError.update(le.ParseError)
	default:
		r.InvalidEntries.Increment("empty")
	}
}

type ExecReport struct {
	// Name of the command as typed.
	CommandNames StrCounter `json:"command_names"`
	// Path of the resolved command.
	ResolvedPaths StrCounter `json:"resolved_paths"`
	// Commands that couldn't be launched.
	Failures StrCounter `json:"failures"`
}

func (r *ExecReport) update(e *Exec) {
	r.ResolvedPaths.Increment(e.Path)
	if len(e.Argv) > 0 {
		r.CommandNames.Increment(e.Argv[0])
	}
}

func (r *ExecReport) updateError(e *ExecError) {
	r.Failures.Increment(e.Argv0)
}

type BuiltinReport struct {
	Names  StrCounter `json:"names"`
	Errors StrCounter `json:"errors"`
}

func (r *BuiltinReport) update(e *Builtin) {
	r.Names.Increment(e.Name)
	if e.Error != "" {
		r.Errors.Increment(e.Error)
	}
}

type WaitReport struct {
	Count        int        `json:"count"`
	ExitStatuses StrCounter `json:"exit_statuses"`
}

func (r *WaitReport) update(e *Wait) {
	r.Count++
	r.ExitStatuses.Increment(fmt.Sprintf("%d", e.ExitStatus))
}

type ParseErrorReport struct {
	Errors StrCounter `json:"errors"`
}

func (r *ParseErrorReport) update(e *ParseError) {
	r.Errors.Increment(e.Error)
}

// StrCounter counts the number of strings seen.
type StrCounter struct {
	internal map[string]int
}

// Increment adds one to the given key.
func (s *StrCounter) Increment(toAdd string) {
	if s.internal == nil {
		s.internal = make(map[string]int)
	}

	s.internal[toAdd]++
}

// Count returns the number of times the key was seen.
func (s *StrCounter) Count(key string) int {
	return s.internal[key]
}

// MarshalJSON implements a custom JSON marshaler.
func (s StrCounter) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.internal)
}
